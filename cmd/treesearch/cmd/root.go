// Package cmd implements the treesearch command line.
package cmd

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/njchilds90/go-treesearch/internal/logger"
)

type rootOpts struct {
	cfgFile     string
	debugModeOn bool
	hideLogTime bool
	logToFile   bool
	logDir      string
	colorMode   string
}

var rootOpt rootOpts

const (
	colorModeNever  = "never"
	colorModeAlways = "always"
)

var supportedColorModes = []string{
	colorModeNever,
	colorModeAlways,
}

var longRootCmdDescription = `treesearch finds a value anywhere in a JSON document, as an object
key or as a leaf, walking the document level by level. It also benchmarks
that search against a recursive walk over generated trees.
`

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "treesearch",
		Short:         "Search JSON trees for keys and values",
		Long:          longRootCmdDescription,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if rootOpt.colorMode != colorModeNever && rootOpt.colorMode != colorModeAlways {
				return fmt.Errorf("color mode must be one of %v", supportedColorModes)
			}
			return logger.Init(logger.LogOptions{
				OutputDir:    rootOpt.logDir,
				Verbose:      rootOpt.debugModeOn,
				DisableColor: rootOpt.colorMode == colorModeNever,
				HideLogTime:  rootOpt.hideLogTime,
				LogToFile:    rootOpt.logToFile,
			})
		},
	}

	rootCmd.PersistentFlags().StringVar(&rootOpt.cfgFile, "config", "", "config file (default is $HOME/.treesearch.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&rootOpt.debugModeOn, "debug", "d", false, "turn on debug mode")
	rootCmd.PersistentFlags().BoolVar(&rootOpt.hideLogTime, "hide-time", false, "hide the log time")
	rootCmd.PersistentFlags().BoolVar(&rootOpt.logToFile, "log-to-file", false, "write log message to disk")
	rootCmd.PersistentFlags().StringVar(&rootOpt.logDir, "log-dir", "", "directory for log files, only valid when --log-to-file is set")
	rootCmd.PersistentFlags().StringVar(&rootOpt.colorMode, "color", colorModeAlways, fmt.Sprintf("set the log color mode, the possible values can be %v", supportedColorModes))

	rootCmd.AddCommand(NewSearchCmd(), NewGenerateCmd(), NewBenchCmd(), NewVersionCmd())
	return rootCmd
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		logrus.Errorf("treesearch-%s: %v", version, err)
		os.Exit(1)
	}
}
