package cmd

import (
	"github.com/urfave/cli/v2"

	"github.com/peekapi-dev/sdk-go/internal/cli/reader"
	"github.com/peekapi-dev/sdk-go/internal/cli/render"
)

// InspectCommand prints a deep view of a single spill file: size, event
// count, time span, and a status code / top-path breakdown.
func InspectCommand() *cli.Command {
	return &cli.Command{
		Name:      "inspect",
		Usage:     "Inspect a spill file in detail",
		ArgsUsage: " ",
		Flags:     append(ReadOnlyFlags(), TUIFlag),
		Action:    inspectAction,
	}
}

func inspectAction(c *cli.Context) error {
	path := c.String("file")
	if path == "" {
		return cli.Exit("--file is required", 1)
	}

	r, err := render.NewRenderer(c)
	if err != nil {
		return err
	}

	result, err := reader.Inspect(path)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	if c.Bool("tui") {
		return r.RenderTUI("inspect", result)
	}
	return r.Render(result)
}
