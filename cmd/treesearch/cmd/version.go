package cmd

import (
	"encoding/json"
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v2"
)

// Set at build time with -ldflags "-X .../cmd.version=v1.2.3 -X .../cmd.gitCommit=abc".
var (
	version   = "dev"
	gitCommit = "unknown"
)

// Info describes the running binary.
type Info struct {
	Version   string `json:"version" yaml:"version"`
	GitCommit string `json:"gitCommit" yaml:"gitCommit"`
	GoVersion string `json:"goVersion" yaml:"goVersion"`
	Platform  string `json:"platform" yaml:"platform"`
}

// NewVersionCmd returns the version command.
func NewVersionCmd() *cobra.Command {
	var (
		shortPrint bool
		output     string
	)
	versionCmd := &cobra.Command{
		Use:     "version",
		Short:   "Print version info",
		Args:    cobra.NoArgs,
		Example: `treesearch version -o json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if output != "yaml" && output != "json" {
				return fmt.Errorf("output format must be yaml or json")
			}
			if shortPrint {
				fmt.Fprintln(cmd.OutOrStdout(), version)
				return nil
			}

			info := Info{
				Version:   version,
				GitCommit: gitCommit,
				GoVersion: runtime.Version(),
				Platform:  runtime.GOOS + "/" + runtime.GOARCH,
			}
			var (
				marshalled []byte
				err        error
			)
			switch output {
			case "yaml":
				marshalled, err = yaml.Marshal(&info)
				if err != nil {
					return fmt.Errorf("fail to marshal yaml: %w", err)
				}
			case "json":
				marshalled, err = json.Marshal(&info)
				if err != nil {
					return fmt.Errorf("fail to marshal json: %w", err)
				}
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(marshalled))
			return nil
		},
	}
	versionCmd.Flags().BoolVar(&shortPrint, "short", false, "If true, print just the version number.")
	versionCmd.Flags().StringVarP(&output, "output", "o", "yaml", "choose `yaml` or `json` format to print version info")
	return versionCmd
}
