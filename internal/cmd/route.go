package cmd

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"sort"

	"github.com/spf13/cobra"

	cerrors "github.com/salmonumbrella/postmock/internal/errors"
	"github.com/salmonumbrella/postmock/internal/filter"
	"github.com/salmonumbrella/postmock/internal/format"
	"github.com/salmonumbrella/postmock/internal/intercept"
	"github.com/salmonumbrella/postmock/internal/transport"
	"github.com/salmonumbrella/postmock/internal/ui"
	"github.com/salmonumbrella/postmock/internal/validation"
)

type routeOutput struct {
	Method  string            `json:"method"`
	Path    string            `json:"path"`
	Rule    string            `json:"rule"`
	Status  int               `json:"status"`
	Headers map[string]string `json:"headers"`
	Body    any               `json:"body"`
}

func newRouteCmd(app *App) *cobra.Command {
	var body string
	cmd := &cobra.Command{
		Use:   "route <METHOD> <PATH>",
		Short: "Show the router's raw answer to a request",
		Long:  "Route a request descriptor through the rule table and print the synthesized response. Nothing is sent over the network.",
		Args:  cobra.ExactArgs(2),
		RunE: runE(app, func(cmd *cobra.Command, args []string, app *App) error {
			method, known := intercept.ParseMethod(args[0])
			path := args[1]
			if err := validation.Path(path); err != nil {
				return err
			}
			if !known && !isJSON(cmd.Context()) {
				ui.FromContext(cmd.Context()).Warning(fmt.Sprintf("%s is not a mocked method. %s.", method, cerrors.SuggestionCheckMethod))
			}

			req := intercept.Request{Method: method, Path: path}
			if cmd.Flags().Changed("body") {
				req.Body = []byte(body)
			}

			router := app.Router()
			rule := router.Match(req)
			resp := router.Route(cmd.Context(), req)

			if isJSON(cmd.Context()) {
				out := routeOutput{
					Method:  string(req.Method),
					Path:    req.Path,
					Rule:    rule.Name,
					Status:  resp.StatusCode,
					Headers: resp.Headers,
					Body:    responseBody(resp),
				}
				if err := printJSON(cmd, out); err != nil {
					return err
				}
			} else {
				if err := printRouteText(rule, resp, app.Query(cmd.Context())); err != nil {
					return err
				}
			}

			if !transport.IsSuccessStatus(resp.StatusCode) {
				return &transport.HTTPError{
					StatusCode: resp.StatusCode,
					Status:     fmt.Sprintf("%d %s", resp.StatusCode, http.StatusText(resp.StatusCode)),
					Body:       string(resp.Body),
					Op:         string(req.Method) + " " + req.Path,
				}
			}
			return nil
		}),
	}
	cmd.Flags().StringVar(&body, "body", "", "Request body (JSON)")
	return cmd
}

// responseBody returns JSON bodies as raw JSON and anything else as text.
func responseBody(resp intercept.Response) any {
	if !resp.HasBody() {
		return nil
	}
	if json.Valid(resp.Body) {
		return json.RawMessage(resp.Body)
	}
	return string(resp.Body)
}

// printRouteText prints the status line, headers and body. A query filters
// JSON bodies.
func printRouteText(rule intercept.Rule, resp intercept.Response, query string) error {
	fmt.Fprintf(os.Stdout, "%d %s  rule=%s  %s\n",
		resp.StatusCode, http.StatusText(resp.StatusCode), rule.Name, format.FormatBytes(len(resp.Body)))

	keys := make([]string, 0, len(resp.Headers))
	for k := range resp.Headers {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(os.Stdout, "%s: %s\n", k, resp.Headers[k])
	}
	if !resp.HasBody() {
		return nil
	}

	body := resp.Body
	if query != "" && json.Valid(body) {
		filtered, err := filter.ApplyToJSON(body, query)
		if err != nil {
			return err
		}
		body = filtered
	}
	fmt.Fprintln(os.Stdout)
	fmt.Fprintln(os.Stdout, string(body))
	return nil
}
