package cli

import (
	"fmt"
	"log/slog"

	"github.com/bitfighters/launcher/internal/branding"
	"github.com/bitfighters/launcher/internal/config"
	"github.com/bitfighters/launcher/internal/logging"
	"github.com/spf13/cobra"
)

var (
	buildVersion string
	buildCommit  string
	buildDate    string
)

var (
	logLevel  string
	logger    = logging.Discard()
	closeLogs = func() error { return nil }
)

var rootCmd = &cobra.Command{
	Use:   branding.CLIName(),
	Short: branding.Description(),
	Long: branding.DisplayName() + ` logs you in, keeps the game installed and up to date,
and starts it with your account.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		config.Load()
		s := config.Current()
		if logLevel != "" {
			s.LogLevel = logLevel
		}

		l, closeFn, err := logging.New(logging.Config{Level: s.LogLevel, File: s.LogFile})
		if err != nil {
			return fmt.Errorf("setting up logging: %w", err)
		}
		logger = l.With(slog.String("cmd", cmd.Name()))
		closeLogs = closeFn
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		return closeLogs()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error)")
}

// Execute runs the root command with build info injected via ldflags.
func Execute(version, commit, date string) error {
	buildVersion = version
	buildCommit = commit
	buildDate = date
	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintln(rootCmd.ErrOrStderr(), "Error:", userError(err))
	}
	return err
}
