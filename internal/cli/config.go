package cli

import (
	"fmt"
	"slices"

	"github.com/bitfighters/launcher/internal/config"
	"github.com/spf13/cobra"
)

func init() {
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configGetCmd)
	rootCmd.AddCommand(configCmd)
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage user settings",
	Long: `Read and write launcher settings stored at ~/.bitfighters/config.yaml.

Keys: base_url, request_timeout, news_limit, package_path, log_level, log_file.
Environment variables prefixed with BITFIGHTERS_ override the file.`,
}

var configKeys = []string{
	config.KeyBaseURL,
	config.KeyRequestTimeout,
	config.KeyNewsLimit,
	config.KeyPackagePath,
	config.KeyLogLevel,
	config.KeyLogFile,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, value := args[0], args[1]
		if !slices.Contains(configKeys, key) {
			return fmt.Errorf("unknown config key %q", key)
		}
		if err := config.Set(key, value); err != nil {
			return fmt.Errorf("setting config key %q: %w", key, err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Set %s = %s\n", key, value)
		return nil
	},
}

var configGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Get a configuration value",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Fprintln(cmd.OutOrStdout(), config.Get(args[0]))
		return nil
	},
}
