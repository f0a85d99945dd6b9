package cmd

import (
	"github.com/urfave/cli/v2"

	"github.com/peekapi-dev/sdk-go/internal/cli/render"
)

// VersionResponse is the response for the version command.
type VersionResponse struct {
	Version string `json:"version"`
	Commit  string `json:"commit"`
}

// VersionCommand reports the SDK version this build of spillctl ships
// alongside, so operators can correlate spill file formats with the SDK
// that produced them.
func VersionCommand(sdkVersion, commit string) *cli.Command {
	return &cli.Command{
		Name:   "version",
		Usage:  "Show version information",
		Flags:  []cli.Flag{FormatFlag},
		Action: versionAction(sdkVersion, commit),
	}
}

func versionAction(sdkVersion, commit string) cli.ActionFunc {
	return func(c *cli.Context) error {
		r, err := render.NewRenderer(c)
		if err != nil {
			return err
		}
		return r.Render(VersionResponse{Version: sdkVersion, Commit: commit})
	}
}
