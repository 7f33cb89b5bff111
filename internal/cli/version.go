package cli

import (
	"runtime"

	"github.com/spf13/cobra"
)

// Version information, set at build time via -ldflags
// "-X github.com/kochabx/jwekit/internal/cli.Version=x.y.z"
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

type versionInfo struct {
	Version   string `json:"version" yaml:"version"`
	Commit    string `json:"commit" yaml:"commit"`
	BuildDate string `json:"build_date" yaml:"build_date"`
	GoVersion string `json:"go_version" yaml:"go_version"`
	Platform  string `json:"platform" yaml:"platform"`
}

func newVersionCommand(o *Options) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return NewPrinter(o.Output, cmd.OutOrStdout()).PrintVersion(versionInfo{
				Version:   Version,
				Commit:    GitCommit,
				BuildDate: BuildDate,
				GoVersion: runtime.Version(),
				Platform:  runtime.GOOS + "/" + runtime.GOARCH,
			})
		},
	}
}
