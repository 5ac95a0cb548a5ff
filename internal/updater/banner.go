package updater

import (
	"fmt"
	"io"

	"github.com/bitfighters/launcher/internal/branding"
)

// PrintUpdateBanner prints the update notification to w.
func PrintUpdateBanner(w io.Writer, installed, latest string) {
	fmt.Fprintf(w, "\nUpdate available: %s -> %s\n", installed, latest)
	fmt.Fprintf(w, "    Run `%s install` to upgrade\n\n", branding.CLIName())
}
