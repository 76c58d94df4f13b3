package cmd

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/salmonumbrella/postmock/internal/format"
	"github.com/salmonumbrella/postmock/internal/posts"
	"github.com/salmonumbrella/postmock/internal/repository"
	"github.com/salmonumbrella/postmock/internal/result"
	"github.com/salmonumbrella/postmock/internal/ui"
)

type demoStep struct {
	Label string
	Run   func(ctx context.Context, repo repository.PostRepository) (demoOutcome, error)
}

type demoOutcome struct {
	Kind    result.Kind
	Summary string
	Result  any
}

type demoStepOutput struct {
	Step    int    `json:"step"`
	Label   string `json:"label"`
	Status  string `json:"status"`
	Summary string `json:"summary"`
	Elapsed string `json:"elapsed"`
	Result  any    `json:"result"`
}

func postOutcome(res result.Result[posts.Post], onSuccess func(posts.Post) string) demoOutcome {
	summary := result.Fold(res,
		onSuccess,
		func(_ error, message string) string { return message },
		func() string { return "loading" },
	)
	return demoOutcome{Kind: res.Kind(), Summary: summary, Result: res}
}

// demoSteps is the walkthrough: the four mocked operations, then a path no
// rule matches.
func demoSteps() []demoStep {
	const (
		fetchID  = 42
		updateID = 5
		deleteID = 99
	)
	return []demoStep{
		{
			Label: fmt.Sprintf("Fetching post %d", fetchID),
			Run: func(ctx context.Context, repo repository.PostRepository) (demoOutcome, error) {
				res, err := repo.FetchPost(ctx, fetchID)
				return postOutcome(res, func(p posts.Post) string {
					return "Fetched post title: " + p.Title
				}), err
			},
		},
		{
			Label: "Creating new post",
			Run: func(ctx context.Context, repo repository.PostRepository) (demoOutcome, error) {
				res, err := repo.CreateNewPost(ctx, posts.New(1, "Mocked Draft", "Repository Test Content"))
				return postOutcome(res, func(p posts.Post) string {
					return fmt.Sprintf("Created post with mock id %d", p.IDValue())
				}), err
			},
		},
		{
			Label: fmt.Sprintf("Updating post %d", updateID),
			Run: func(ctx context.Context, repo repository.PostRepository) (demoOutcome, error) {
				post := posts.New(1, "Revised Title", "Updated content").WithID(updateID)
				res, err := repo.UpdatePost(ctx, updateID, post)
				return postOutcome(res, func(p posts.Post) string {
					return "Updated post title: " + p.Title
				}), err
			},
		},
		{
			Label: fmt.Sprintf("Deleting post %d", deleteID),
			Run: func(ctx context.Context, repo repository.PostRepository) (demoOutcome, error) {
				res, err := repo.DeletePost(ctx, deleteID)
				summary := result.Fold(res,
					func(result.Unit) string { return fmt.Sprintf("Post %d deleted", deleteID) },
					func(_ error, message string) string { return message },
					func() string { return "loading" },
				)
				return demoOutcome{Kind: res.Kind(), Summary: summary, Result: res}, err
			},
		},
		{
			Label: "Fetching post -1 (no matching rule)",
			Run: func(ctx context.Context, repo repository.PostRepository) (demoOutcome, error) {
				res, err := repo.FetchPost(ctx, -1)
				return postOutcome(res, func(p posts.Post) string {
					return "Fetched post title: " + p.Title
				}), err
			},
		},
	}
}

func newDemoCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "demo",
		Short: "Run the mocked call sequence through the repository",
		Long:  "Fetch, create, update and delete posts through the repository, then fetch a path no rule matches to show the fallback becoming an Error result.",
		Args:  cobra.NoArgs,
		RunE: runE(app, func(cmd *cobra.Command, _ []string, app *App) error {
			repo, err := app.Repository()
			if err != nil {
				return err
			}

			jsonMode := isJSON(cmd.Context())
			u := ui.FromContext(cmd.Context())
			steps := demoSteps()
			outputs := make([]demoStepOutput, 0, len(steps))

			if !jsonMode {
				fmt.Println("--- Executing mock API calls via repository ---")
			}
			for i, step := range steps {
				if !jsonMode {
					fmt.Printf("\n[%d] %s...\n", i+1, step.Label)
				}

				start := time.Now()
				outcome, err := step.Run(cmd.Context(), repo)
				if err != nil {
					return err
				}
				elapsed := time.Since(start)

				outputs = append(outputs, demoStepOutput{
					Step:    i + 1,
					Label:   step.Label,
					Status:  outcome.Kind.String(),
					Summary: outcome.Summary,
					Elapsed: format.FormatDuration(elapsed),
					Result:  outcome.Result,
				})
				if !jsonMode {
					u.Status(outcome.Kind == result.KindSuccess, strings.ToUpper(outcome.Kind.String()), outcome.Summary)
					fmt.Printf("    took %s\n", format.FormatDuration(elapsed))
				}
			}

			if jsonMode {
				return printJSON(cmd, map[string]any{"steps": outputs})
			}
			fmt.Println("\n--- Repository execution complete ---")
			return nil
		}),
	}
}
