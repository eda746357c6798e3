package main

import (
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/vango-dev/vtree/internal/errors"
	"github.com/vango-dev/vtree/pkg/htmldom"
	"github.com/vango-dev/vtree/pkg/treefile"
	"github.com/vango-dev/vtree/pkg/vdom"
)

func convertCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "convert <html-file>",
		Short: "Convert HTML markup into a tree file",
		Long: `Parse an HTML fragment and write the first top-level element as a
YAML tree document. Whitespace-only text between elements is dropped.
Use "-" to read from stdin.

Examples:
  vtree convert snippet.html
  curl -s https://example.com | vtree convert - -o page.yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var in io.Reader = cmd.InOrStdin()
			if args[0] != "-" {
				f, err := os.Open(args[0])
				if err != nil {
					return errors.New("E100").WithLocation(args[0], 0, 0).Wrap(err)
				}
				defer f.Close()
				in = f
			}

			v, err := convertHTML(in)
			if err != nil {
				return errors.FromError(err, "E103").WithLocation(args[0], 0, 0)
			}

			w, closeOut, err := openOutput(output, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			if err := treefile.Encode(w, v); err != nil {
				closeOut()
				return errors.New("E301").Wrap(err)
			}
			return closeOut()
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Write YAML to a file instead of stdout")

	return cmd
}

// convertHTML adopts the first element of an HTML fragment as a VNode tree.
func convertHTML(r io.Reader) (*vdom.VNode, error) {
	root, err := htmldom.ParseFragment(r)
	if err != nil {
		return nil, errors.New("E103").Wrap(err)
	}
	elm := htmldom.FirstElement(root)
	if elm == nil {
		return nil, errors.New("E103")
	}
	return vdom.ToVNode(elm, htmldom.API), nil
}
