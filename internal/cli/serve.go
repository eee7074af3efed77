package cli

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	api "github.com/quizmaster-app/quizmaster/internal/api/http"
	"github.com/quizmaster-app/quizmaster/internal/auth"
	"github.com/quizmaster-app/quizmaster/internal/catalog"
	"github.com/quizmaster-app/quizmaster/internal/config"
	"github.com/quizmaster-app/quizmaster/internal/db"
	"github.com/quizmaster-app/quizmaster/internal/score"
	"github.com/quizmaster-app/quizmaster/internal/session"
)

func newServeCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
			defer cancel()

			dbh, err := db.Open(ctx, db.Driver(cfg.DBDriver), cfg.DBDSN)
			if err != nil {
				return err
			}

			users := auth.NewUserStore(dbh)
			if err := users.EnsureAdmin(ctx, cfg.AdminEmail, cfg.AdminPassword); err != nil {
				return err
			}

			cat := catalog.NewSQLStore(dbh)
			scores := score.NewSQLStore(dbh)
			starts := session.NewSQLStarts(dbh)

			var opts []session.Option
			if cfg.EnforceDeadline {
				opts = append(opts, session.WithDeadline(cfg.SubmitGrace))
			}
			engine := session.NewEngine(cat, scores, starts, users, opts...)

			router := api.NewRouter(cfg, api.Deps{
				Auth:    auth.NewAuthService(cfg.AuthSecret, cfg.TokenTTL),
				Users:   users,
				Catalog: cat,
				Scores:  scores,
				Engine:  engine,
			})

			log.Printf("listening on %s (db=%s)", cfg.HTTPAddr, cfg.DBDriver)
			return http.ListenAndServe(cfg.HTTPAddr, router)
		},
	}
}
