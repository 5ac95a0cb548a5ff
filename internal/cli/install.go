package cli

import (
	"fmt"
	"path/filepath"

	"github.com/bitfighters/launcher/internal/updater"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

var installRoot string

func init() {
	installCmd.Flags().StringVar(&installRoot, "root", "", "Install into this directory and remember it once the install succeeds")
	rootCmd.AddCommand(installCmd)
}

var installCmd = &cobra.Command{
	Use:     "install",
	Aliases: []string{"update", "download"},
	Short:   "Download and install the game",
	Long: `Downloads the game package and unpacks it into the install root.
Existing files are overwritten, so running it again repairs or updates the
install. Without --root the remembered root is used, or your Documents
folder the first time.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		ctx, cancel := signalContext(cmd.Context())
		defer cancel()

		root := a.installs.TargetRoot()
		if installRoot != "" {
			root, err = filepath.Abs(installRoot)
			if err != nil {
				return fmt.Errorf("resolving %s: %w", installRoot, err)
			}
		}

		surface := a.launcher.RefreshInstallSurface(ctx)
		if surface.VersionKnown {
			fmt.Fprintf(cmd.ErrOrStderr(), "Installing BitFighters %s into %s\n", surface.Version, root)
		}

		w := cmd.ErrOrStderr()
		st, err := a.launcher.Install(ctx, root, func(p updater.Progress) {
			fmt.Fprint(w, "\r"+formatProgress(p))
		})
		fmt.Fprintln(w)
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Installed to %s\n", st.Root)
		return nil
	},
}

// formatProgress renders one progress line.
func formatProgress(p updater.Progress) string {
	rate := ""
	if p.BytesPerSecond > 0 {
		rate = ", " + humanize.Bytes(uint64(p.BytesPerSecond)) + "/s"
	}
	if p.Total <= 0 {
		return fmt.Sprintf("Downloading... %s%s", humanize.Bytes(uint64(p.Received)), rate)
	}
	return fmt.Sprintf("Downloading... %3.0f%% (%s / %s%s)",
		p.Percent(), humanize.Bytes(uint64(p.Received)), humanize.Bytes(uint64(p.Total)), rate)
}

