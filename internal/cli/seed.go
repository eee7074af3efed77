package cli

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/quizmaster-app/quizmaster/internal/auth"
	"github.com/quizmaster-app/quizmaster/internal/catalog"
	"github.com/quizmaster-app/quizmaster/internal/config"
	"github.com/quizmaster-app/quizmaster/internal/db"
)

// seed loads a small demo catalog for local runs.
func newSeedCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Insert a demo subject, chapter, quiz and questions",
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

			subject := catalog.Subject{ID: uuid.NewString(), Name: "Mathematics", Description: "Numbers and structure"}
			if err := cat.CreateSubject(ctx, subject); err != nil {
				return err
			}
			chapter := catalog.Chapter{ID: uuid.NewString(), SubjectID: subject.ID, Name: "Algebra", Description: "Equations and expressions"}
			if err := cat.CreateChapter(ctx, chapter); err != nil {
				return err
			}
			quiz := catalog.Quiz{
				ID:        uuid.NewString(),
				ChapterID: chapter.ID,
				Title:     "Algebra Basics",
				Duration:  "00:30",
				Remarks:   "Demo quiz",
			}
			if err := cat.CreateQuiz(ctx, quiz); err != nil {
				return err
			}

			questions := []catalog.Question{
				{
					Text:        "What is 2 + 2?",
					Options:     [4]string{"3", "4", "5", "6"},
					CorrectSlot: 2,
				},
				{
					Text:        "Solve x in x + 3 = 5",
					Options:     [4]string{"1", "2", "3", "4"},
					CorrectSlot: 2,
				},
				{
					Text:        "What is 3 * 3?",
					Options:     [4]string{"6", "9", "12", "3"},
					CorrectSlot: 2,
				},
			}
			for i, q := range questions {
				q.ID = uuid.NewString()
				q.QuizID = quiz.ID
				q.Position = i + 1
				if err := cat.CreateQuestion(ctx, q); err != nil {
					return err
				}
			}

			log.Printf("seeded subject=%q quiz=%q with %d questions", subject.Name, quiz.Title, len(questions))
			return nil
		},
	}
}
