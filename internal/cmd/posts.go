package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	cerrors "github.com/salmonumbrella/postmock/internal/errors"
	"github.com/salmonumbrella/postmock/internal/posts"
	"github.com/salmonumbrella/postmock/internal/ui"
	"github.com/salmonumbrella/postmock/internal/validation"
)

func newPostsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "posts",
		Aliases: []string{"post"},
		Short:   "Fetch, create, update and delete posts through the repository",
	}
	cmd.AddCommand(newPostsGetCmd(app))
	cmd.AddCommand(newPostsCreateCmd(app))
	cmd.AddCommand(newPostsUpdateCmd(app))
	cmd.AddCommand(newPostsDeleteCmd(app))
	return cmd
}

func parsePostID(arg string) (int, error) {
	id, err := validation.PostID(arg)
	if err != nil {
		return 0, Suggest(err, cerrors.SuggestionCheckID)
	}
	return id, nil
}

func newPostsGetCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Fetch a post",
		Args:  cobra.ExactArgs(1),
		RunE: runE(app, func(cmd *cobra.Command, args []string, app *App) error {
			id, err := parsePostID(args[0])
			if err != nil {
				return err
			}
			repo, err := app.Repository()
			if err != nil {
				return err
			}

			res, err := repo.FetchPost(cmd.Context(), id)
			if err != nil {
				return err
			}
			return printPostResult(cmd, fmt.Sprintf("fetch post %d", id), res)
		}),
	}
}

type postFlags struct {
	userID int
	title  string
	body   string
	dryRun bool
}

func (f *postFlags) register(cmd *cobra.Command) {
	cmd.Flags().IntVar(&f.userID, "user-id", 1, "Author user id")
	cmd.Flags().StringVar(&f.title, "title", "", "Post title")
	cmd.Flags().StringVar(&f.body, "body", "", "Post body")
	cmd.Flags().BoolVar(&f.dryRun, "dry-run", false, "Print the request without sending it")
	_ = cmd.MarkFlagRequired("title")
}

func (f *postFlags) post() (posts.Post, error) {
	if err := validation.PositiveInt("user id", f.userID); err != nil {
		return posts.Post{}, err
	}
	if err := validation.Title(f.title); err != nil {
		return posts.Post{}, err
	}
	if err := validation.Required("body", f.body); err != nil {
		return posts.Post{}, err
	}
	return posts.New(f.userID, f.title, f.body), nil
}

func printDryRunRequest(cmd *cobra.Command, method, path string, body []byte) error {
	items := []string{}
	if body != nil {
		items = append(items, string(body))
	}
	return printDryRunList(cmd, fmt.Sprintf("Would send %s %s:", method, path), "request", items, map[string]any{
		"method": method,
		"path":   path,
	})
}

func newPostsCreateCmd(app *App) *cobra.Command {
	var flags postFlags
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a post",
		Args:  cobra.NoArgs,
		RunE: runE(app, func(cmd *cobra.Command, _ []string, app *App) error {
			post, err := flags.post()
			if err != nil {
				return err
			}
			if flags.dryRun {
				return printDryRunRequest(cmd, "POST", "/posts", posts.Encode(post))
			}
			repo, err := app.Repository()
			if err != nil {
				return err
			}

			res, err := repo.CreateNewPost(cmd.Context(), post)
			if err != nil {
				return err
			}
			return printPostResult(cmd, "create post", res)
		}),
	}
	flags.register(cmd)
	return cmd
}

func newPostsUpdateCmd(app *App) *cobra.Command {
	var flags postFlags
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Replace a post",
		Args:  cobra.ExactArgs(1),
		RunE: runE(app, func(cmd *cobra.Command, args []string, app *App) error {
			id, err := parsePostID(args[0])
			if err != nil {
				return err
			}
			post, err := flags.post()
			if err != nil {
				return err
			}
			post = post.WithID(id)
			if flags.dryRun {
				return printDryRunRequest(cmd, "PUT", "/posts/"+strconv.Itoa(id), posts.Encode(post))
			}
			repo, err := app.Repository()
			if err != nil {
				return err
			}

			res, err := repo.UpdatePost(cmd.Context(), id, post)
			if err != nil {
				return err
			}
			return printPostResult(cmd, fmt.Sprintf("update post %d", id), res)
		}),
	}
	flags.register(cmd)
	return cmd
}

func newPostsDeleteCmd(app *App) *cobra.Command {
	var dryRun bool
	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a post",
		Args:  cobra.ExactArgs(1),
		RunE: runE(app, func(cmd *cobra.Command, args []string, app *App) error {
			id, err := parsePostID(args[0])
			if err != nil {
				return err
			}
			path := "/posts/" + strconv.Itoa(id)
			if dryRun {
				return printDryRunRequest(cmd, "DELETE", path, nil)
			}

			ok, err := app.Confirm(cmd, false, fmt.Sprintf("Delete post %d? [y/N]: ", id), "y", "yes")
			if err != nil {
				return err
			}
			if !ok {
				ui.FromContext(cmd.Context()).Warning("Delete cancelled")
				return nil
			}

			repo, err := app.Repository()
			if err != nil {
				return err
			}
			res, err := repo.DeletePost(cmd.Context(), id)
			if err != nil {
				return err
			}
			return printUnitResult(cmd, fmt.Sprintf("delete post %d", id), res)
		}),
	}
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Print the request without sending it")
	return cmd
}
