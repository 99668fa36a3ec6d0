// Package commands implements the sanitize CLI.
package commands

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/supergoodsystems/supergood-sanitizer/internal/logger"
)

// NewRootCommand returns the sanitize command with all subcommands attached.
func NewRootCommand() *cobra.Command {
	var logLevel string

	rootCmd := &cobra.Command{
		Use:   "sanitize",
		Short: "Classify captured network events offline",
		Long: `sanitize runs the request classifier over recorded events so that
presets and config files can be tried out before they are deployed.`,
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", os.Getenv("SANITIZER_LOG_LEVEL"), "Log level (trace, debug, info, warn, error)")

	newLogger := func(cmd *cobra.Command) (zerolog.Logger, error) {
		log, _, err := logger.New(logger.Config{Level: logLevel, Output: cmd.ErrOrStderr()})
		return log, err
	}

	rootCmd.AddCommand(NewClassifyCommand(newLogger))
	rootCmd.AddCommand(NewPresetsCommand())
	return rootCmd
}
