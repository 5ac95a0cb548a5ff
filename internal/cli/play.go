package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var playUsername string

func init() {
	playCmd.Flags().StringVarP(&playUsername, "username", "u", "", "Account to play as (default: saved login)")
	rootCmd.AddCommand(playCmd)
}

var playCmd = &cobra.Command{
	Use:     "play",
	Aliases: []string{"launch"},
	Short:   "Log in and start the game",
	Long: `Asks for your password, logs in, and starts the installed game with
your account. The command returns when the game exits.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		ctx, cancel := signalContext(cmd.Context())
		defer cancel()

		if !a.installs.State().IsInstalled() {
			return fmt.Errorf("the game is not installed, run `%s install` first", cmd.Root().Name())
		}

		saved, _ := a.launcher.Start()
		if err := interactiveLogin(ctx, cmd, a.launcher, playUsername, saved.RememberMe); err != nil {
			return err
		}

		exited, err := a.launcher.Launch(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "BitFighters is running as %s\n", a.launcher.Session().Username)

		if err := <-exited; err != nil {
			return fmt.Errorf("game exited: %w", err)
		}
		return nil
	},
}
