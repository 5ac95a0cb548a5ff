package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// printer groups digits in scores.
var printer = message.NewPrinter(language.English)

func init() {
	rootCmd.AddCommand(scoreCmd)
}

var scoreCmd = &cobra.Command{
	Use:   "score <points>",
	Short: "Submit a score for the saved account",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		points, err := strconv.Atoi(args[0])
		if err != nil || points < 0 {
			return fmt.Errorf("score must be a non-negative integer, got %q", args[0])
		}

		a, err := newApp()
		if err != nil {
			return err
		}
		ctx, cancel := signalContext(cmd.Context())
		defer cancel()

		saved, ok := a.launcher.Start()
		if !ok || saved.UserID == 0 {
			return fmt.Errorf("no saved login, run `%s login` first", cmd.Root().Name())
		}

		outcome, err := a.auth.SubmitScore(ctx, saved.UserID, points)
		if err != nil {
			return err
		}
		printer.Fprintf(cmd.OutOrStdout(), "Score %d for %s: %s\n", points, saved.Username, outcome)
		return nil
	},
}
