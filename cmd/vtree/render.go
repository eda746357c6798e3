package main

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"golang.org/x/net/html"

	"github.com/vango-dev/vtree/internal/errors"
	"github.com/vango-dev/vtree/pkg/htmldom"
	"github.com/vango-dev/vtree/pkg/modules"
	"github.com/vango-dev/vtree/pkg/reconcile"
	"github.com/vango-dev/vtree/pkg/vdom"
)

func renderCmd() *cobra.Command {
	var (
		output  string
		target  string
		mods    []string
		verbose bool
	)

	cmd := &cobra.Command{
		Use:   "render <tree-file>",
		Short: "Render a tree file to HTML",
		Long: `Render a tree file to HTML by patching it into an empty document.

The tree is reconciled exactly as a live page would be, so modules such
as attributes and style decide what ends up in the markup. Use "-" to
read the tree from stdin.

Examples:
  vtree render page.yaml
  vtree render page.yaml --target html -o page.html
  vtree render page.yaml --modules attributes,logging -v`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := loadTree(args[0], cmd.InOrStdin())
			if err != nil {
				return err
			}
			logger := cliLogger(cmd.ErrOrStderr(), verbose)

			out, err := renderHTML(v, target, mods, logger)
			if err != nil {
				return err
			}

			w, closeOut, err := openOutput(output, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			if _, err := fmt.Fprintln(w, out); err != nil {
				closeOut()
				return errors.New("E301").Wrap(err)
			}
			return closeOut()
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Write HTML to a file instead of stdout")
	cmd.Flags().StringVar(&target, "target", "memdom", "Document to render into: memdom or html")
	cmd.Flags().StringSliceVar(&mods, "modules", nil, "Modules in hook order (default: "+strings.Join(modules.DefaultNames, ",")+")")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Log every lifecycle hook to stderr")

	return cmd
}

// renderHTML patches v into a fresh document of the given kind and
// serializes the result.
func renderHTML(v *vdom.VNode, target string, names []string, logger *slog.Logger) (string, error) {
	switch target {
	case "memdom", "":
		s, err := newStage(names, logger)
		if err != nil {
			return "", err
		}
		s.patch(v)
		return s.html(), nil
	case "html":
		mods, err := modules.ByName(names, htmldom.API, modules.Env{
			Logger:   logger,
			Registry: prometheus.NewRegistry(),
		})
		if err != nil {
			return "", errors.New("E201").Wrap(err)
		}
		body := &html.Node{Type: html.ElementNode, Data: "body"}
		mount := &html.Node{Type: html.ElementNode, Data: "div"}
		body.AppendChild(mount)
		reconcile.New(mods, htmldom.API, reconcile.WithLogger(logger)).Patch(mount, v)
		return htmldom.String(body.FirstChild), nil
	default:
		return "", errors.New("E300").
			WithDetail("Unknown target " + target + ".").
			WithSuggestion("Use --target memdom or --target html")
	}
}
