package http_test

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	api "github.com/quizmaster-app/quizmaster/internal/api/http"
	"github.com/quizmaster-app/quizmaster/internal/auth"
	"github.com/quizmaster-app/quizmaster/internal/catalog"
	"github.com/quizmaster-app/quizmaster/internal/config"
	"github.com/quizmaster-app/quizmaster/internal/db"
	"github.com/quizmaster-app/quizmaster/internal/score"
	"github.com/quizmaster-app/quizmaster/internal/session"
)

type testServer struct {
	handler http.Handler
	db      *sql.DB
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	ctx := context.Background()

	dsn := "file:" + filepath.Join(t.TempDir(), "test.db") +
		"?_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)"
	dbh, err := db.Open(ctx, db.DriverSQLite, dsn)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { dbh.Close() })

	cfg := config.Default()
	users := auth.NewUserStore(dbh)
	if err := users.EnsureAdmin(ctx, "admin@example.com", "adminpw"); err != nil {
		t.Fatalf("ensure admin: %v", err)
	}

	cat := catalog.NewSQLStore(dbh)
	scores := score.NewSQLStore(dbh)
	engine := session.NewEngine(cat, scores, session.NewSQLStarts(dbh), users)

	handler := api.NewRouter(cfg, api.Deps{
		Auth:    auth.NewAuthService(cfg.AuthSecret, cfg.TokenTTL),
		Users:   users,
		Catalog: cat,
		Scores:  scores,
		Engine:  engine,
	})
	return &testServer{handler: handler, db: dbh}
}

func (ts *testServer) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	ts.handler.ServeHTTP(w, req)
	return w
}

func (ts *testServer) login(t *testing.T, email, password string) string {
	t.Helper()
	w := ts.do(t, http.MethodPost, "/auth/login", "", map[string]string{
		"email": email, "password": password,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("login %s: status %d: %s", email, w.Code, w.Body)
	}
	var out struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode login: %v", err)
	}
	return out.AccessToken
}

func decodeID(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var out struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode id: %v", err)
	}
	return out.ID
}

// buildCatalog creates subject → chapter → quiz → 2 questions over HTTP as
// the admin, returning the quiz id and question ids.
func (ts *testServer) buildCatalog(t *testing.T, admin string) (string, []string) {
	t.Helper()
	w := ts.do(t, http.MethodPost, "/subjects", admin, map[string]string{"name": "Math"})
	if w.Code != http.StatusCreated {
		t.Fatalf("create subject: %d: %s", w.Code, w.Body)
	}
	subjectID := decodeID(t, w)

	w = ts.do(t, http.MethodPost, "/chapters", admin, map[string]string{"name": "Algebra", "subject_id": subjectID})
	if w.Code != http.StatusCreated {
		t.Fatalf("create chapter: %d: %s", w.Code, w.Body)
	}
	chapterID := decodeID(t, w)

	w = ts.do(t, http.MethodPost, "/quizzes", admin, map[string]string{
		"title": "Algebra Basics", "chapter_id": chapterID, "duration": "01:30",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("create quiz: %d: %s", w.Code, w.Body)
	}
	quizID := decodeID(t, w)

	var questionIDs []string
	for i := 0; i < 2; i++ {
		w = ts.do(t, http.MethodPost, "/quizzes/"+quizID+"/questions", admin, map[string]any{
			"text":         fmt.Sprintf("question %d", i+1),
			"options":      [4]string{"a", "b", "c", "d"},
			"correct_slot": 2,
			"position":     i + 1,
		})
		if w.Code != http.StatusCreated {
			t.Fatalf("create question: %d: %s", w.Code, w.Body)
		}
		questionIDs = append(questionIDs, decodeID(t, w))
	}
	return quizID, questionIDs
}

func TestAuthRequired(t *testing.T) {
	ts := newTestServer(t)
	if w := ts.do(t, http.MethodGet, "/quizzes", "", nil); w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
	if w := ts.do(t, http.MethodGet, "/quizzes", "garbage", nil); w.Code != http.StatusUnauthorized {
		t.Fatalf("bad token status = %d, want 401", w.Code)
	}
}

func TestNonAdminCatalogWriteForbidden(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(t, http.MethodPost, "/auth/signup", "", map[string]string{
		"email": "u@example.com", "password": "pw", "full_name": "U",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("signup: %d: %s", w.Code, w.Body)
	}
	user := ts.login(t, "u@example.com", "pw")

	w = ts.do(t, http.MethodPost, "/subjects", user, map[string]string{"name": "Hax"})
	if w.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", w.Code)
	}
}

func TestQuizTakingFlow(t *testing.T) {
	ts := newTestServer(t)
	admin := ts.login(t, "admin@example.com", "adminpw")
	quizID, questionIDs := ts.buildCatalog(t, admin)

	w := ts.do(t, http.MethodPost, "/auth/signup", "", map[string]string{
		"email": "taker@example.com", "password": "pw", "full_name": "Taker",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("signup: %d: %s", w.Code, w.Body)
	}
	taker := ts.login(t, "taker@example.com", "pw")

	// session payload: time budget present, answer key absent
	w = ts.do(t, http.MethodGet, "/quizzes/"+quizID+"/session", taker, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("session: %d: %s", w.Code, w.Body)
	}
	var sess struct {
		TotalSeconds int `json:"total_seconds"`
		Questions    []struct {
			ID string `json:"id"`
		} `json:"questions"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &sess); err != nil {
		t.Fatalf("decode session: %v", err)
	}
	if sess.TotalSeconds != 5400 || len(sess.Questions) != 2 {
		t.Fatalf("session = %+v", sess)
	}
	if strings.Contains(w.Body.String(), "correct_slot") {
		t.Fatalf("session response leaks answer key: %s", w.Body)
	}

	// one right, one wrong
	w = ts.do(t, http.MethodPost, "/quizzes/"+quizID+"/submit", taker, map[string]any{
		"answers": map[string]int{questionIDs[0]: 2, questionIDs[1]: 3},
	})
	if w.Code != http.StatusOK {
		t.Fatalf("submit: %d: %s", w.Code, w.Body)
	}
	var res struct {
		Score         int `json:"score"`
		QuestionCount int `json:"question_count"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode result: %v", err)
	}
	if res.Score != 1 || res.QuestionCount != 2 {
		t.Fatalf("result = %+v, want 1/2", res)
	}

	// double submission conflicts
	w = ts.do(t, http.MethodPost, "/quizzes/"+quizID+"/submit", taker, map[string]any{
		"answers": map[string]int{questionIDs[0]: 2, questionIDs[1]: 2},
	})
	if w.Code != http.StatusConflict {
		t.Fatalf("resubmit: %d, want 409", w.Code)
	}

	// own scores
	w = ts.do(t, http.MethodGet, "/scores/me", taker, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("scores/me: %d", w.Code)
	}
	var mine []struct {
		Score int `json:"score"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &mine); err != nil {
		t.Fatalf("decode scores: %v", err)
	}
	if len(mine) != 1 || mine[0].Score != 1 {
		t.Fatalf("scores = %+v", mine)
	}

	// admin dashboard stats
	w = ts.do(t, http.MethodGet, "/stats/quizzes", admin, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("stats: %d: %s", w.Code, w.Body)
	}
	var stats []struct {
		Title    string  `json:"title"`
		Attempts int     `json:"attempts"`
		Highest  int     `json:"highest"`
		Lowest   int     `json:"lowest"`
		Average  float64 `json:"average"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &stats); err != nil {
		t.Fatalf("decode stats: %v", err)
	}
	if len(stats) != 1 || stats[0].Attempts != 1 || stats[0].Highest != 1 || stats[0].Average != 1 {
		t.Fatalf("stats = %+v", stats)
	}
}

func TestUnknownQuizIs404(t *testing.T) {
	ts := newTestServer(t)
	admin := ts.login(t, "admin@example.com", "adminpw")

	w := ts.do(t, http.MethodGet, "/quizzes/nope/session", admin, nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}
}

func TestAdminScoreCorrection(t *testing.T) {
	ts := newTestServer(t)
	admin := ts.login(t, "admin@example.com", "adminpw")
	quizID, questionIDs := ts.buildCatalog(t, admin)

	w := ts.do(t, http.MethodPost, "/auth/signup", "", map[string]string{
		"email": "taker@example.com", "password": "pw", "full_name": "Taker",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("signup: %d", w.Code)
	}
	taker := ts.login(t, "taker@example.com", "pw")

	w = ts.do(t, http.MethodPost, "/quizzes/"+quizID+"/submit", taker, map[string]any{
		"answers": map[string]int{questionIDs[0]: 2},
	})
	if w.Code != http.StatusOK {
		t.Fatalf("submit: %d: %s", w.Code, w.Body)
	}

	w = ts.do(t, http.MethodGet, "/scores?quiz_id="+quizID, admin, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("list scores: %d", w.Code)
	}
	var scores []struct {
		ID    string `json:"id"`
		Score int    `json:"score"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &scores); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(scores) != 1 || scores[0].Score != 1 {
		t.Fatalf("scores = %+v", scores)
	}

	w = ts.do(t, http.MethodPut, "/scores/"+scores[0].ID, admin, map[string]int{"score": 2})
	if w.Code != http.StatusOK {
		t.Fatalf("correct score: %d: %s", w.Code, w.Body)
	}

	// takers cannot touch the admin score surface
	w = ts.do(t, http.MethodPut, "/scores/"+scores[0].ID, taker, map[string]int{"score": 99})
	if w.Code != http.StatusForbidden {
		t.Fatalf("taker correction: %d, want 403", w.Code)
	}

	w = ts.do(t, http.MethodDelete, "/scores/"+scores[0].ID, admin, nil)
	if w.Code != http.StatusNoContent {
		t.Fatalf("delete score: %d", w.Code)
	}
}
