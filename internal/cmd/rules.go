package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/salmonumbrella/postmock/internal/intercept"
	"github.com/salmonumbrella/postmock/internal/outfmt"
)

type ruleOutput struct {
	Position int      `json:"position"`
	Name     string   `json:"name"`
	Methods  []string `json:"methods"`
	Pattern  string   `json:"pattern"`
	Fallback bool     `json:"fallback,omitempty"`
}

func newRulesCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "rules",
		Short: "List the mock rule table in evaluation order",
		Args:  cobra.NoArgs,
		RunE: runE(app, func(cmd *cobra.Command, _ []string, app *App) error {
			rules := describeRules(app.Router().Rules())

			if isJSON(cmd.Context()) {
				return printJSON(cmd, map[string]any{"rules": rules})
			}

			tw := newTabWriter()
			fmt.Fprintln(tw, "#\tNAME\tMETHOD\tPATH")
			for _, r := range rules {
				methods := strings.Join(r.Methods, ",")
				if r.Fallback {
					methods = "*"
				}
				fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", r.Position, outfmt.SanitizeTab(r.Name), methods, outfmt.SanitizeTab(r.Pattern))
			}
			return tw.Flush()
		}),
	}
}

func describeRules(rules []intercept.Rule) []ruleOutput {
	out := make([]ruleOutput, 0, len(rules))
	for i, r := range rules {
		methods := []string{}
		for _, m := range r.Methods() {
			methods = append(methods, string(m))
		}
		out = append(out, ruleOutput{
			Position: i + 1,
			Name:     r.Name,
			Methods:  methods,
			Pattern:  r.Pattern,
			Fallback: r.IsFallback(),
		})
	}
	return out
}
