package cli

import (
	"bufio"
	"context"
	"fmt"

	"github.com/bitfighters/launcher/internal/launcher"
	"github.com/spf13/cobra"
)

var loginRemember bool

func init() {
	loginCmd.Flags().BoolVar(&loginRemember, "remember", true, "Remember the username on this machine")
	rootCmd.AddCommand(loginCmd)
}

var loginCmd = &cobra.Command{
	Use:   "login [username]",
	Short: "Log in to your BitFighters account",
	Long: `Checks your username and password with the BitFighters server. With
--remember (the default) the username is saved, encrypted, so the next
prompt is pre-filled. The password itself is never stored.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		ctx, cancel := signalContext(cmd.Context())
		defer cancel()

		var username string
		if len(args) == 1 {
			username = args[0]
		}
		if err := interactiveLogin(ctx, cmd, a.launcher, username, loginRemember); err != nil {
			return err
		}

		s := a.launcher.Session()
		fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s (id %d)\n", s.Username, s.UserID)
		return nil
	},
}

// interactiveLogin prompts for whatever is missing, pre-filling the
// remembered username, and logs in.
func interactiveLogin(ctx context.Context, cmd *cobra.Command, l *launcher.Launcher, username string, remember bool) error {
	r := bufio.NewReader(stdinReader)
	w := cmd.ErrOrStderr()

	if username == "" {
		saved, _ := l.Start()
		u, err := promptLine(r, w, "Username", saved.Username)
		if err != nil {
			return fmt.Errorf("reading username: %w", err)
		}
		username = u
	}
	password, err := promptPassword(r, w)
	if err != nil {
		return fmt.Errorf("reading password: %w", err)
	}

	return l.Login(ctx, username, password, remember)
}
