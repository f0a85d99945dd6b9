package cmd

import (
	"context"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/peekapi-dev/sdk-go/internal/cli/reader"
	"github.com/peekapi-dev/sdk-go/internal/spill"
)

// ArchiveCommand drains a spill file to S3: it uploads every event the
// file currently holds as a single overflow object, then removes the
// local file on a successful upload. This is the operator-triggered
// counterpart to the shipper's own best-effort overflow archiving.
func ArchiveCommand() *cli.Command {
	return &cli.Command{
		Name:      "archive",
		Usage:     "Upload a spill file's events to S3 and remove the local file",
		ArgsUsage: " ",
		Flags: []cli.Flag{
			FileFlag,
			&cli.StringFlag{Name: "bucket", Usage: "S3 bucket to upload to", Required: true},
			&cli.StringFlag{Name: "prefix", Usage: "Key prefix for the uploaded object"},
			&cli.StringFlag{Name: "endpoint", Usage: "Custom S3-compatible endpoint"},
			&cli.BoolFlag{Name: "path-style", Usage: "Use path-style S3 addressing"},
		},
		Action: archiveAction,
	}
}

func archiveAction(c *cli.Context) error {
	path := c.String("file")
	if path == "" {
		return cli.Exit("--file is required", 1)
	}

	events, err := reader.ReadEvents(path)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}
	if len(events) == 0 {
		return cli.Exit("spill file is empty or absent, nothing to archive", 0)
	}

	ctx := context.Background()
	archiver, err := spill.NewArchiver(ctx, spill.ArchiveConfig{
		Bucket:       c.String("bucket"),
		Prefix:       c.String("prefix"),
		Endpoint:     c.String("endpoint"),
		UsePathStyle: c.Bool("path-style"),
	})
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	if err := archiver.Archive(ctx, events); err != nil {
		return cli.Exit(err.Error(), 1)
	}

	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return cli.Exit(err.Error(), 1)
	}

	return nil
}
