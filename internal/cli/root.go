package cli

import (
	"os"

	"github.com/spf13/cobra"
)

var configPath string

// Execute runs the CLI.
func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	envConfig := os.Getenv("CONFIG_PATH")

	cmd := &cobra.Command{
		Use:   "quizmaster",
		Short: "Quiz-management service: subjects, chapters, timed quizzes and scores",
	}

	cmd.PersistentFlags().StringVar(&configPath, "config", envConfig, "path to YAML config")
	cmd.AddCommand(newServeCmd(&configPath))
	cmd.AddCommand(newSeedCmd(&configPath))
	return cmd
}
