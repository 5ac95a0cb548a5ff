package cli

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

var newsLimit int

func init() {
	newsCmd.Flags().IntVarP(&newsLimit, "limit", "n", 0, "Maximum entries to show (default from config)")
	rootCmd.AddCommand(newsCmd)
}

var newsCmd = &cobra.Command{
	Use:   "news",
	Short: "Show the latest BitFighters news",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		ctx, cancel := signalContext(cmd.Context())
		defer cancel()

		limit := newsLimit
		if limit <= 0 {
			limit = a.settings.NewsLimit
		}
		entries := a.releases.News(ctx, limit)

		w := cmd.OutOrStdout()
		for i, e := range entries {
			if i > 0 {
				fmt.Fprintln(w)
			}
			fmt.Fprintf(w, "%s  (%s)\n", e.Title, humanize.Time(e.CreatedAt))
			if e.Body != "" {
				fmt.Fprintln(w, e.Body)
			}
		}
		return nil
	},
}
