package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/TheOfficialSeb/Styrene/internal/errors"
	"github.com/TheOfficialSeb/Styrene/pkg/pathpattern"
)

func explainCmd() *cobra.Command {
	var flags patternFlags

	cmd := &cobra.Command{
		Use:   "explain <template>",
		Short: "Show how a template is parsed and compiled",
		Long: `Print the parse tree of a template, every alternative its optional
groups expand to, the capture keys, and the generated pattern.

Examples:
  styrene explain '/users/:id{/*rest}'
  styrene explain '/:"file name".:ext' --sensitive`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tmpl, err := pathpattern.Parse(args[0])
			if err != nil {
				return errors.FromError(err, "P003")
			}
			m, err := compile(args[0], flags.options())
			if err != nil {
				return err
			}

			explain(cmd.OutOrStdout(), tmpl, m)
			return nil
		},
	}

	flags.register(cmd)

	return cmd
}

func explain(w io.Writer, tmpl *pathpattern.Template, m *pathpattern.Matcher) {
	fmt.Fprintf(w, "Template:  %s\n", tmpl.Source)
	fmt.Fprintf(w, "Canonical: %s\n", tmpl.String())

	fmt.Fprintln(w, "\nTree:")
	writeTree(w, tmpl.Nodes, 1)

	fmt.Fprintln(w, "\nAlternatives:")
	n := 0
	for seq := range tmpl.Flatten() {
		n++
		alt := (&pathpattern.Template{Nodes: seq}).String()
		if alt == "" {
			alt = faint("(empty)")
		}
		fmt.Fprintf(w, "  %d. %s\n", n, alt)
	}

	fmt.Fprintln(w, "\nKeys:")
	keys := m.Keys()
	if len(keys) == 0 {
		info(w, "%s", faint("(none)"))
	}
	for i, k := range keys {
		fmt.Fprintf(w, "  %d. %s (%s)\n", i+1, k.Name, k.Kind)
	}

	fmt.Fprintln(w, "\nPattern:")
	info(w, "%s", m.Pattern())
}

func writeTree(w io.Writer, nodes []pathpattern.Node, depth int) {
	indent := strings.Repeat("  ", depth)
	for _, node := range nodes {
		switch n := node.(type) {
		case pathpattern.Text:
			fmt.Fprintf(w, "%sText %s\n", indent, strconv.Quote(n.Value))
		case pathpattern.Param:
			fmt.Fprintf(w, "%sParam %s %s\n", indent, n.Name, faint(fmt.Sprintf("@%d", n.Index)))
		case pathpattern.Wildcard:
			fmt.Fprintf(w, "%sWildcard %s %s\n", indent, n.Name, faint(fmt.Sprintf("@%d", n.Index)))
		case pathpattern.Group:
			fmt.Fprintf(w, "%sGroup\n", indent)
			writeTree(w, n.Nodes, depth+1)
		}
	}
}
