package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
)

func init() {
	rootDirCmd.AddCommand(rootSetCmd)
	rootDirCmd.AddCommand(rootShowCmd)
	rootDirCmd.AddCommand(rootClearCmd)
	rootCmd.AddCommand(rootDirCmd)
}

var rootDirCmd = &cobra.Command{
	Use:   "root",
	Short: "Manage the install root",
	Long:  `Show, set, or forget the directory the game is installed under.`,
}

var rootSetCmd = &cobra.Command{
	Use:   "set <dir>",
	Short: "Remember dir as the install root",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		abs, err := filepath.Abs(args[0])
		if err != nil {
			return fmt.Errorf("resolving %s: %w", args[0], err)
		}
		if err := a.installs.PersistRoot(abs); err != nil {
			return err
		}
		st := a.installs.State()
		fmt.Fprintf(cmd.OutOrStdout(), "Install root set to %s (%s)\n", abs, st.Status)
		return nil
	},
}

var rootShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the install root",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		if root, ok := a.installs.LoadRoot(); ok {
			fmt.Fprintln(cmd.OutOrStdout(), root)
			return nil
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s (default)\n", a.installs.DefaultRoot())
		return nil
	},
}

var rootClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Forget the install root",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		if err := a.installs.ClearRoot(); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Install root cleared")
		return nil
	},
}
