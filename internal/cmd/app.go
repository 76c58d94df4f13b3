package cmd

import (
	"context"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/salmonumbrella/postmock/internal/api"
	cerrors "github.com/salmonumbrella/postmock/internal/errors"
	"github.com/salmonumbrella/postmock/internal/intercept"
	"github.com/salmonumbrella/postmock/internal/logging"
	"github.com/salmonumbrella/postmock/internal/outfmt"
	"github.com/salmonumbrella/postmock/internal/repository"
	"github.com/salmonumbrella/postmock/internal/ui"
)

type appKey struct{}

type App struct {
	Flags  *rootFlags
	UI     *ui.UI
	Logger *slog.Logger

	// Service replaces the intercepting api client, for tests.
	Service api.PostService
}

func NewApp() *App {
	flags := rootFlags{
		Color:   envOr("POSTMOCK_COLOR", "auto"),
		Output:  envOr("POSTMOCK_OUTPUT", "text"),
		Latency: envDuration("POSTMOCK_LATENCY", 0),
		Timeout: defaultTimeout(),
	}
	return &App{Flags: &flags}
}

func WithApp(ctx context.Context, app *App) context.Context {
	return context.WithValue(ctx, appKey{}, app)
}

func AppFromContext(ctx context.Context) *App {
	if app, ok := ctx.Value(appKey{}).(*App); ok {
		return app
	}
	return nil
}

// runE wraps a cobra RunE to inject the App and normalize errors.
func runE(app *App, fn func(cmd *cobra.Command, args []string, app *App) error) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		if app == nil {
			app = AppFromContext(cmd.Context())
		}
		if app == nil {
			app = &App{Flags: &rootFlags{}}
		}
		return mapCommandError(fn(cmd, args, app))
	}
}

func (a *App) IsJSON(ctx context.Context) bool {
	return isJSON(ctx)
}

func (a *App) Query(ctx context.Context) string {
	query, _ := ctx.Value(queryKey).(string)
	return query
}

func (a *App) PrintJSON(cmd *cobra.Command, v any) error {
	return outfmt.PrintJSONFiltered(v, a.Query(cmd.Context()))
}

func (a *App) Confirm(cmd *cobra.Command, skip bool, prompt string, accepted ...string) (bool, error) {
	if skip || a.IsJSON(cmd.Context()) || (a.Flags != nil && a.Flags.Yes) {
		return true, nil
	}
	return confirmPrompt(os.Stderr, prompt, accepted...)
}

func (a *App) logger() *slog.Logger {
	if a.Logger != nil {
		return a.Logger
	}
	return logging.Discard()
}

// Router builds the default rule table, logging through the app logger.
func (a *App) Router() *intercept.Router {
	return intercept.NewDefaultRouter(logging.Component(a.logger(), "router"))
}

// ClientConfig describes the intercepting api client for the current flags.
func (a *App) ClientConfig() api.Config {
	cfg := api.Config{
		Router: a.Router(),
		Logger: logging.Component(a.logger(), "api"),
	}
	if a.Flags != nil {
		cfg.Timeout = a.Flags.Timeout
		cfg.Latency = a.Flags.Latency
	}
	return cfg
}

// Repository returns the posts repository over the intercepting client.
func (a *App) Repository() (*repository.Repository, error) {
	if a.Service != nil {
		return repository.New(a.Service), nil
	}
	client, err := api.NewClient(a.ClientConfig())
	if err != nil {
		return nil, cerrors.WithContext(err, "create api client")
	}
	return repository.New(client), nil
}

// Suggest wraps an error with a user-facing suggestion.
func Suggest(err error, suggestion string) error {
	return cerrors.WithSuggestion(err, suggestion)
}
