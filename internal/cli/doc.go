// Package cli defines the Cobra command tree for the bitfighters launcher.
// Each file registers one top-level command with the root command. Commands
// build a launcher.Launcher from the current settings and only handle flag
// parsing, prompting, and output formatting.
package cli
