package cmd

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/salmonumbrella/postmock/internal/format"
	"github.com/salmonumbrella/postmock/internal/outfmt"
	"github.com/salmonumbrella/postmock/internal/posts"
	"github.com/salmonumbrella/postmock/internal/result"
	"github.com/salmonumbrella/postmock/internal/ui"
)

func newTabWriter() *tabwriter.Writer {
	return outfmt.NewTabWriter()
}

func isJSON(ctx context.Context) bool {
	mode, ok := ctx.Value(outputModeKey).(outfmt.Mode)
	return ok && mode == outfmt.JSON
}

func printJSON(cmd *cobra.Command, v any) error {
	query, _ := cmd.Context().Value(queryKey).(string)
	return outfmt.PrintJSONFiltered(v, query)
}

// printPostResult reports a post result and turns an Error into a command error.
func printPostResult(cmd *cobra.Command, op string, res result.Result[posts.Post]) error {
	if isJSON(cmd.Context()) {
		if err := printJSON(cmd, res); err != nil {
			return err
		}
		return resultErr(op, res)
	}

	u := ui.FromContext(cmd.Context())
	return result.Match(res, result.Cases[posts.Post, error]{
		Success: func(p posts.Post) error {
			u.Status(true, "SUCCESS", op)
			printPost(p)
			return nil
		},
		Error: func(_ error, message string) error {
			u.Status(false, "ERROR", message)
			return resultErr(op, res)
		},
		Loading: func() error {
			u.Info("LOADING: " + op)
			return nil
		},
	})
}

// printUnitResult reports a result without payload, such as a delete.
func printUnitResult(cmd *cobra.Command, op string, res result.Result[result.Unit]) error {
	if isJSON(cmd.Context()) {
		if err := printJSON(cmd, res); err != nil {
			return err
		}
		return resultErr(op, res)
	}

	u := ui.FromContext(cmd.Context())
	switch res.Kind() {
	case result.KindSuccess:
		u.Status(true, "SUCCESS", op)
	case result.KindError:
		u.Status(false, "ERROR", res.Message())
	default:
		u.Info("LOADING: " + op)
	}
	return resultErr(op, res)
}

const maxBodyWidth = 100

func printPost(p posts.Post) {
	tw := newTabWriter()
	id := "-"
	if p.HasID() {
		id = fmt.Sprint(p.IDValue())
	}
	fmt.Fprintf(tw, "ID\t%s\n", id)
	fmt.Fprintf(tw, "User\t%d\n", p.UserID)
	fmt.Fprintf(tw, "Title\t%s\n", format.OneLine(p.Title))
	fmt.Fprintf(tw, "Body\t%s\n", format.Truncate(format.OneLine(p.Body), maxBodyWidth))
	_ = tw.Flush()
}
