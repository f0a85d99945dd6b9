// Command peekapi-spillctl is an operator tool for inspecting and
// draining the local spill files a Client falls back to when its
// ingestion endpoint is unreachable.
//
// Usage:
//
//	peekapi-spillctl <command> [options]
//
// Commands:
//
//	list    --file <path>             list events held in a spill file
//	inspect --file <path> [--tui]     show size/count/time-span detail
//	archive --file <path> --bucket b  upload a spill file's events to S3, then remove it
//	version                           show version information
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	peekapi "github.com/peekapi-dev/sdk-go"
	"github.com/peekapi-dev/sdk-go/internal/cli/cmd"
)

// commit is set via ldflags at build time.
var commit = "unknown"

func main() {
	app := &cli.App{
		Name:    "peekapi-spillctl",
		Usage:   "Inspect and drain peekapi SDK spill files",
		Version: fmt.Sprintf("%s (commit: %s)", peekapi.Version, commit),
		Commands: []*cli.Command{
			cmd.ListCommand(),
			cmd.InspectCommand(),
			cmd.ArchiveCommand(),
			cmd.VersionCommand(peekapi.Version, commit),
		},
	}

	if err := app.Run(os.Args); err != nil {
		var exitCoder cli.ExitCoder
		if errors.As(err, &exitCoder) {
			if msg := exitCoder.Error(); msg != "" {
				fmt.Fprintln(os.Stderr, msg)
			}
			os.Exit(exitCoder.ExitCode())
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
