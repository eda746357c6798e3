package main

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/sergi/go-diff/diffmatchpatch"
	"github.com/spf13/cobra"

	"github.com/vango-dev/vtree/pkg/dom"
)

func diffCmd() *cobra.Command {
	var (
		showHTML bool
		summary  bool
		mods     []string
		verbose  bool
	)

	cmd := &cobra.Command{
		Use:   "diff <old-tree> <new-tree>",
		Short: "Show the operations that turn one tree into another",
		Long: `Patch the old tree into an empty document, then patch the new tree
over it and print every document operation the second patch made.

Nodes are numbered in the order the document first sees them: #1 is the
container and #2 the initial mount point.

Examples:
  vtree diff before.yaml after.yaml
  vtree diff before.yaml after.yaml --html
  vtree diff before.yaml after.yaml --summary`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			oldTree, err := loadTree(args[0], cmd.InOrStdin())
			if err != nil {
				return err
			}
			newTree, err := loadTree(args[1], cmd.InOrStdin())
			if err != nil {
				return err
			}

			s, err := newStage(mods, cliLogger(cmd.ErrOrStderr(), verbose))
			if err != nil {
				return err
			}
			s.patch(oldTree)
			before := s.html()
			ops := s.patch(newTree)
			after := s.html()

			w := cmd.OutOrStdout()
			printOps(w, ops)
			if summary {
				printSummary(w, ops)
			}
			if showHTML {
				fmt.Fprintln(w)
				printHTMLDiff(w, before, after)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&showHTML, "html", false, "Also show a diff of the rendered HTML")
	cmd.Flags().BoolVar(&summary, "summary", false, "Print operation counts after the list")
	cmd.Flags().StringSliceVar(&mods, "modules", nil, "Modules in hook order (default: the standard set)")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Log every lifecycle hook to stderr")

	return cmd
}

func opColor(k dom.OpKind) *color.Color {
	switch k {
	case dom.OpCreateElement, dom.OpCreateText, dom.OpCreateComment:
		return color.New(color.FgGreen)
	case dom.OpRemoveChild, dom.OpRemoveAttr, dom.OpRemoveStyle:
		return color.New(color.FgRed)
	case dom.OpInsertBefore, dom.OpAppendChild:
		return color.New(color.FgCyan)
	default:
		return color.New(color.FgYellow)
	}
}

func printOps(w io.Writer, ops []dom.Op) {
	if len(ops) == 0 {
		fmt.Fprintln(w, "no changes")
		return
	}
	for _, op := range ops {
		opColor(op.Kind).Fprintln(w, op.String())
	}
}

func printSummary(w io.Writer, ops []dom.Op) {
	counts := make(map[dom.OpKind]int)
	structural := 0
	for _, op := range ops {
		counts[op.Kind]++
		if op.IsStructural() {
			structural++
		}
	}
	fmt.Fprintf(w, "\n%d operations, %d structural\n", len(ops), structural)
	for k := dom.OpCreateElement; k <= dom.OpSetProp; k++ {
		if n := counts[k]; n > 0 {
			fmt.Fprintf(w, "  %-14s %d\n", k.String(), n)
		}
	}
}

// printHTMLDiff prints before and after as one stream, deletions in red and
// insertions in green.
func printHTMLDiff(w io.Writer, before, after string) {
	dmp := diffmatchpatch.New()
	diffs := dmp.DiffCleanupSemantic(dmp.DiffMain(before, after, false))

	del := color.New(color.FgRed, color.CrossedOut)
	ins := color.New(color.FgGreen, color.Underline)
	for _, d := range diffs {
		switch d.Type {
		case diffmatchpatch.DiffDelete:
			if color.NoColor {
				fmt.Fprintf(w, "[-%s-]", d.Text)
			} else {
				del.Fprint(w, d.Text)
			}
		case diffmatchpatch.DiffInsert:
			if color.NoColor {
				fmt.Fprintf(w, "{+%s+}", d.Text)
			} else {
				ins.Fprint(w, d.Text)
			}
		default:
			fmt.Fprint(w, d.Text)
		}
	}
	fmt.Fprintln(w)
}
