package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/quizmaster-app/quizmaster/internal/auth"
	"github.com/quizmaster-app/quizmaster/internal/catalog"
	"github.com/quizmaster-app/quizmaster/internal/config"
	"github.com/quizmaster-app/quizmaster/internal/rbac"
	"github.com/quizmaster-app/quizmaster/internal/score"
	"github.com/quizmaster-app/quizmaster/internal/session"
)

type Deps struct {
	Auth    *auth.AuthService
	Users   *auth.UserStore
	Catalog catalog.Store
	Scores  score.Store
	Engine  *session.Engine
}

// NewRouter wires middleware, auth and all routes.
func NewRouter(cfg config.Config, d Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Logger, middleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Post("/auth/signup", SignupHandler(d.Users))
	r.Post("/auth/login", LoginHandler(d.Auth, d.Users))

	// Protected API (JWT → subject+role in context → RBAC)
	r.Group(func(pr chi.Router) {
		pr.Use(auth.JWTMiddleware(d.Auth))

		// Catalog reads
		pr.With(rbac.Require("catalog:view")).Get("/subjects", ListSubjectsHandler(d.Catalog))
		pr.With(rbac.Require("catalog:view")).Get("/subjects/{subjectID}/chapters", ListChaptersHandler(d.Catalog))
		pr.With(rbac.Require("catalog:view")).Get("/quizzes", ListQuizzesHandler(d.Catalog))

		// Catalog writes (admin)
		pr.With(rbac.Require("catalog:write")).Post("/subjects", CreateSubjectHandler(d.Catalog))
		pr.With(rbac.Require("catalog:write")).Put("/subjects/{subjectID}", UpdateSubjectHandler(d.Catalog))
		pr.With(rbac.Require("catalog:write")).Delete("/subjects/{subjectID}", DeleteSubjectHandler(d.Catalog))
		pr.With(rbac.Require("catalog:write")).Post("/chapters", CreateChapterHandler(d.Catalog))
		pr.With(rbac.Require("catalog:write")).Put("/chapters/{chapterID}", UpdateChapterHandler(d.Catalog))
		pr.With(rbac.Require("catalog:write")).Delete("/chapters/{chapterID}", DeleteChapterHandler(d.Catalog))
		pr.With(rbac.Require("catalog:write")).Post("/quizzes", CreateQuizHandler(d.Catalog))
		pr.With(rbac.Require("catalog:write")).Put("/quizzes/{quizID}", UpdateQuizHandler(d.Catalog))
		pr.With(rbac.Require("catalog:write")).Delete("/quizzes/{quizID}", DeleteQuizHandler(d.Catalog))
		pr.With(rbac.Require("catalog:write")).Post("/quizzes/{quizID}/questions", CreateQuestionHandler(d.Catalog))
		pr.With(rbac.Require("catalog:write")).Get("/quizzes/{quizID}/questions", ListQuestionsHandler(d.Catalog))
		pr.With(rbac.Require("catalog:write")).Put("/questions/{questionID}", UpdateQuestionHandler(d.Catalog))
		pr.With(rbac.Require("catalog:write")).Delete("/questions/{questionID}", DeleteQuestionHandler(d.Catalog))

		// Quiz taking
		pr.With(rbac.Require("quiz:take")).Get("/quizzes/{quizID}/session", StartSessionHandler(d.Engine))
		pr.With(rbac.Require("quiz:take")).Post("/quizzes/{quizID}/submit", SubmitHandler(d.Engine))

		// Scores
		pr.With(rbac.Require("score:view-own")).Get("/scores/me", MyScoresHandler(d.Scores))
		pr.With(rbac.Require("score:admin")).Get("/scores", ListScoresHandler(d.Scores))
		pr.With(rbac.Require("score:admin")).Put("/scores/{scoreID}", UpdateScoreHandler(d.Scores))
		pr.With(rbac.Require("score:admin")).Delete("/scores/{scoreID}", DeleteScoreHandler(d.Scores))

		// Admin dashboard
		pr.With(rbac.Require("stats:view")).Get("/stats/quizzes", QuizStatsHandler(d.Catalog, d.Scores))
		pr.With(rbac.Require("users:manage")).Get("/users", ListUsersHandler(d.Users))
		pr.With(rbac.Require("users:manage")).Put("/users/{userID}", UpdateUserHandler(d.Users))
		pr.With(rbac.Require("users:manage")).Delete("/users/{userID}", DeleteUserHandler(d.Users))
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200) })
	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200) })

	return r
}
