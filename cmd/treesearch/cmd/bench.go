package cmd

import (
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/njchilds90/go-treesearch/internal/bench"
	"github.com/njchilds90/go-treesearch/internal/config"
)

var longBenchCmdDescription = `bench generates trees of the configured shape and times generation,
serialization, deserialization, the level-order search and a recursive
search over each one. Every iteration becomes a worksheet of the report.

Settings come from flags, TREESEARCH_* environment variables and the
config file, in that order of precedence.`

// NewBenchCmd returns the bench command.
func NewBenchCmd() *cobra.Command {
	var noProgress bool
	benchCmd := &cobra.Command{
		Use:     "bench",
		Short:   "benchmark level-order against recursive search",
		Long:    longBenchCmdDescription,
		Example: `  treesearch bench --depth 6 --children 4 --iterations 5 --output out/report.xlsx`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := config.NewViper(rootOpt.cfgFile)
			if err != nil {
				return err
			}
			if err := bindBenchFlags(v, cmd); err != nil {
				return err
			}
			cfg, err := config.Load(v)
			if err != nil {
				return err
			}

			h, err := bench.New(cfg, bench.WithOutput(cmd.OutOrStdout()), bench.WithProgress(!noProgress))
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()
			_, err = h.Run(ctx)
			return err
		},
	}

	flags := benchCmd.Flags()
	flags.Int(config.KeyLetters, 5, "size of the alphabet used for keys and strings")
	flags.Int(config.KeyDepth, 5, "levels below the root")
	flags.Int(config.KeyChildren, 5, "entries per container")
	flags.Int(config.KeyIterations, 3, "number of generated trees")
	flags.Int64(config.KeySeed, 1, "seed of the first tree")
	flags.Duration("sample-interval", 0, "CPU/RAM sampling interval")
	flags.StringP(config.KeyOutput, "o", "", "spreadsheet report path")
	flags.String("tree-path", "", "write each generated tree next to this path")
	flags.BoolVar(&noProgress, "no-progress", false, "hide the progress bar")
	return benchCmd
}

// bindBenchFlags lets explicitly set flags override file and environment.
func bindBenchFlags(v *viper.Viper, cmd *cobra.Command) error {
	bindings := map[string]string{
		config.KeyLetters:        config.KeyLetters,
		config.KeyDepth:          config.KeyDepth,
		config.KeyChildren:       config.KeyChildren,
		config.KeyIterations:     config.KeyIterations,
		config.KeySeed:           config.KeySeed,
		config.KeySampleInterval: "sample-interval",
		config.KeyOutput:         config.KeyOutput,
		config.KeyTreePath:       "tree-path",
	}
	for key, flag := range bindings {
		if err := v.BindPFlag(key, cmd.Flags().Lookup(flag)); err != nil {
			return err
		}
	}
	return nil
}
