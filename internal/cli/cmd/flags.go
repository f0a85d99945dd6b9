// Package cmd implements the peekapi-spillctl subcommands.
package cmd

import "github.com/urfave/cli/v2"

var (
	// FormatFlag selects output format: json, table, yaml.
	FormatFlag = &cli.StringFlag{
		Name:    "format",
		Aliases: []string{"f"},
		Usage:   "Output format: json, table, yaml",
	}

	// FileFlag points at a spill file. It has no default: list, inspect and
	// archive each exit with an error when it is omitted.
	FileFlag = &cli.StringFlag{
		Name:    "file",
		Aliases: []string{"F"},
		Usage:   "Path to a spill file",
	}

	// TUIFlag enables the Bubble Tea pager for commands that support it.
	TUIFlag = &cli.BoolFlag{
		Name:  "tui",
		Usage: "Enable interactive TUI mode (inspect only)",
	}
)

// ReadOnlyFlags returns the flags shared by list and inspect.
func ReadOnlyFlags() []cli.Flag {
	return []cli.Flag{FormatFlag, FileFlag}
}
