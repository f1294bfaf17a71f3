package cmd

import (
	"fmt"
	"os"

	"github.com/docker/go-units"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/njchilds90/go-treesearch"
	"github.com/njchilds90/go-treesearch/internal/generate"
)

type generateOpts struct {
	letters  int
	depth    int
	children int
	seed     int64
	output   string
}

// NewGenerateCmd returns the generate command.
func NewGenerateCmd() *cobra.Command {
	opts := &generateOpts{}
	generateCmd := &cobra.Command{
		Use:     "generate",
		Short:   "write a synthetic JSON tree",
		Example: `  treesearch generate --letters 4 --depth 3 --children 5 -o tree.json`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tree, err := generate.Generate(opts.letters, opts.depth, opts.children, generate.WithSeed(opts.seed))
			if err != nil {
				return err
			}
			data, err := treesearch.Marshal(tree)
			if err != nil {
				return err
			}

			if opts.output == "" || opts.output == "-" {
				_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
				return err
			}
			if err := os.WriteFile(opts.output, data, 0o644); err != nil {
				return errors.Wrapf(err, "failed to write %s", opts.output)
			}
			logrus.Infof("wrote %s tree to %s", units.HumanSize(float64(len(data))), opts.output)
			return nil
		},
	}
	generateCmd.Flags().IntVar(&opts.letters, "letters", 5, "size of the alphabet used for keys and strings")
	generateCmd.Flags().IntVar(&opts.depth, "depth", 3, "levels below the root")
	generateCmd.Flags().IntVar(&opts.children, "children", 3, "entries per container")
	generateCmd.Flags().Int64Var(&opts.seed, "seed", 1, "seed for leaf values")
	generateCmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file, stdout when empty")
	return generateCmd
}
