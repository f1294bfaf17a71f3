package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/njchilds90/go-treesearch"
)

var exampleForSearchCmd = `
  treesearch search --file tree.json price
  treesearch search --file tree.json 0.5
  treesearch search --file tree.json '"0"'   # the string "0", not the number
  cat tree.json | treesearch search true
`

type searchOpts struct {
	file  string
	stats bool
}

// NewSearchCmd returns the search command.
func NewSearchCmd() *cobra.Command {
	opts := &searchOpts{}
	searchCmd := &cobra.Command{
		Use:   "search <target>",
		Short: "report whether a key or value occurs in a JSON document",
		Long: `search prints true when the target equals an object key or a leaf value
anywhere in the document and false otherwise. The target is read as a JSON
literal when possible (numbers, true, false, null, quoted strings) and as a
bare string otherwise.`,
		Example: exampleForSearchCmd,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readDocument(opts.file, cmd.InOrStdin())
			if err != nil {
				return err
			}
			root, err := treesearch.Unmarshal(data)
			if err != nil {
				return err
			}

			target := treesearch.ParseLiteral(args[0])
			logrus.Debugf("searching for %s (%s)", target, target.Kind())

			found := treesearch.Search(root, target)
			fmt.Fprintln(cmd.OutOrStdout(), found)

			if opts.stats {
				st := treesearch.Stats(root)
				fmt.Fprintf(cmd.OutOrStdout(), "nodes=%d keys=%d depth=%d max_width=%d\n",
					st.Nodes, st.Keys, st.Depth, st.MaxWidth)
			}
			return nil
		},
	}
	searchCmd.Flags().StringVarP(&opts.file, "file", "f", "", "JSON document to search, '-' or empty reads stdin")
	searchCmd.Flags().BoolVar(&opts.stats, "stats", false, "also print the shape of the document")
	return searchCmd
}

func readDocument(path string, stdin io.Reader) ([]byte, error) {
	if path == "" || path == "-" {
		data, err := io.ReadAll(stdin)
		return data, errors.Wrap(err, "failed to read stdin")
	}
	data, err := os.ReadFile(path)
	return data, errors.Wrapf(err, "failed to read %s", path)
}
