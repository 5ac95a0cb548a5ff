package cli

import (
	"fmt"
	"io"

	"github.com/bitfighters/launcher/internal/install"
	"github.com/bitfighters/launcher/internal/launcher"
	"github.com/bitfighters/launcher/internal/updater"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(statusCmd)
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the install state and the published version",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		ctx, cancel := signalContext(cmd.Context())
		defer cancel()

		surface := a.launcher.RefreshInstallSurface(ctx)
		saved, remembered := a.launcher.Start()

		w := cmd.OutOrStdout()
		printSurface(w, surface)
		if remembered {
			fmt.Fprintf(w, "Saved login: %s\n", saved.Username)
		} else {
			fmt.Fprintln(w, "Saved login: none")
		}
		if surface.UpdateAvailable {
			updater.PrintUpdateBanner(w, surface.State.Version, surface.Version)
		}
		return nil
	},
}

func printSurface(w io.Writer, s launcher.Surface) {
	published := s.Version
	if !s.VersionKnown {
		published = "unknown (server unreachable)"
	}
	fmt.Fprintf(w, "Published version: %s\n", published)

	fmt.Fprintf(w, "Install: %s\n", s.State.Status)
	fmt.Fprintf(w, "Install root: %s\n", s.State.Root)
	if s.State.Status == install.Installed {
		installed := s.State.Version
		if installed == "" {
			installed = "unknown"
		}
		fmt.Fprintf(w, "Installed version: %s\n", installed)
		fmt.Fprintf(w, "Executable: %s\n", s.State.Executable)
	}
	fmt.Fprintf(w, "Next action: %s\n", s.Action)
}
