package cli

import (
	"github.com/bitfighters/launcher/internal/userdata"
	"github.com/spf13/cobra"
)

var doctorFix bool

func init() {
	doctorCmd.Flags().BoolVar(&doctorFix, "fix", false, "Repair permissions and drop a stale install root")
	rootCmd.AddCommand(doctorCmd)
}

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check the launcher's local files",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return userdata.CheckHome(cmd.OutOrStdout(), doctorFix)
	},
}
