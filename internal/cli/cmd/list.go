package cmd

import (
	"github.com/urfave/cli/v2"

	"github.com/peekapi-dev/sdk-go/internal/cli/reader"
	"github.com/peekapi-dev/sdk-go/internal/cli/render"
)

// ListCommand lists the events currently held in a spill file, in their
// thin (list-view) shape.
func ListCommand() *cli.Command {
	return &cli.Command{
		Name:      "list",
		Usage:     "List events held in a spill file",
		ArgsUsage: " ",
		Flags:     ReadOnlyFlags(),
		Action:    listAction,
	}
}

func listAction(c *cli.Context) error {
	path := c.String("file")
	if path == "" {
		return cli.Exit("--file is required", 1)
	}

	r, err := render.NewRenderer(c)
	if err != nil {
		return err
	}

	summaries, err := reader.ListSummaries(path)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	return r.Render(summaries)
}
