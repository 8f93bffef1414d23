package main

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"

	"github.com/TheOfficialSeb/Styrene/internal/errors"
	"github.com/TheOfficialSeb/Styrene/pkg/pathpattern"
)

// patternFlags are the compile options shared by match and explain.
type patternFlags struct {
	sensitive  bool
	noTrailing bool
	prefix     bool
	delimiter  string
	raw        bool
}

func (f *patternFlags) register(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&f.sensitive, "sensitive", false, "Match case-sensitively")
	cmd.Flags().BoolVar(&f.noTrailing, "no-trailing", false, "Reject a trailing delimiter")
	cmd.Flags().BoolVar(&f.prefix, "prefix", false, "Match a prefix of the path instead of the whole path")
	cmd.Flags().StringVar(&f.delimiter, "delimiter", "/", "Segment delimiter")
	cmd.Flags().BoolVar(&f.raw, "raw", false, "Do not percent-decode captured values")
}

func (f *patternFlags) options() []pathpattern.Option {
	opts := []pathpattern.Option{
		pathpattern.WithSensitive(f.sensitive),
		pathpattern.WithTrailing(!f.noTrailing),
		pathpattern.WithEnd(!f.prefix),
		pathpattern.WithDelimiter(f.delimiter),
	}
	if f.raw {
		opts = append(opts, pathpattern.WithoutDecode())
	}
	return opts
}

// compile compiles template and converts syntax errors into coded
// errors for display.
func compile(template string, opts []pathpattern.Option) (*pathpattern.Matcher, error) {
	m, err := pathpattern.Compile(template, opts...)
	if err != nil {
		return nil, errors.FromError(err, "P003")
	}
	return m, nil
}

// matchResult is one line of match output.
type matchResult struct {
	Input   string             `json:"input"`
	Matched bool               `json:"matched"`
	Path    string             `json:"path,omitempty"`
	Params  pathpattern.Params `json:"params,omitempty"`
}

func matchCmd() *cobra.Command {
	var (
		flags   patternFlags
		asJSON  bool
		require bool
	)

	cmd := &cobra.Command{
		Use:   "match <template> <path>...",
		Short: "Match paths against a template",
		Long: `Compile a template and report, for each path, whether it matches
and what each capture holds.

Param values print as strings and wildcard values as lists of
segments. Captures inside an unused optional group are omitted.

Examples:
  styrene match '/users/:id' /users/42 /users
  styrene match '/files{/*path}' /files/a/b.txt --json
  styrene match '/api' /api/v1/users --prefix`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := compile(args[0], flags.options())
			if err != nil {
				return err
			}

			results := make([]matchResult, 0, len(args)-1)
			missed := 0
			for _, input := range args[1:] {
				res := matchResult{Input: input}
				if mr, ok := m.Match(input); ok {
					res.Matched = true
					res.Path = mr.Path
					res.Params = mr.Params
				} else {
					missed++
				}
				results = append(results, res)
			}

			w := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(w)
				enc.SetIndent("", "  ")
				if err := enc.Encode(results); err != nil {
					return err
				}
			} else {
				printMatches(w, results)
			}

			if require && missed > 0 {
				return fmt.Errorf("%d of %d paths did not match", missed, len(results))
			}
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print results as JSON")
	cmd.Flags().BoolVar(&require, "require", false, "Exit with status 1 unless every path matches")

	return cmd
}

func printMatches(w io.Writer, results []matchResult) {
	width := 0
	for _, r := range results {
		width = max(width, runewidth.StringWidth(r.Input))
	}

	for _, r := range results {
		pad := strings.Repeat(" ", width-runewidth.StringWidth(r.Input))
		if !r.Matched {
			fmt.Fprintf(w, "%s%s  %s\n", r.Input, pad, yellow("no match"))
			continue
		}
		line := r.Input + pad + "  " + green("match")
		if params := formatParams(r.Params); params != "" {
			line += "  " + params
		}
		if r.Path != r.Input {
			line += "  " + faint("("+strconv.Quote(r.Path)+")")
		}
		fmt.Fprintln(w, line)
	}
}

// formatParams renders params sorted by name: id="42" rest=["a" "b"].
func formatParams(params pathpattern.Params) string {
	names := make([]string, 0, len(params))
	for name := range params {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		switch v := params[name].(type) {
		case string:
			parts = append(parts, name+"="+strconv.Quote(v))
		case []string:
			quoted := make([]string, len(v))
			for i, s := range v {
				quoted[i] = strconv.Quote(s)
			}
			parts = append(parts, name+"=["+strings.Join(quoted, " ")+"]")
		}
	}
	return strings.Join(parts, " ")
}
