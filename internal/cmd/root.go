package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/salmonumbrella/postmock/internal/api"
	cerrors "github.com/salmonumbrella/postmock/internal/errors"
	"github.com/salmonumbrella/postmock/internal/logging"
	"github.com/salmonumbrella/postmock/internal/outfmt"
	"github.com/salmonumbrella/postmock/internal/ui"
)

// Version information - set at build time via ldflags
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

type rootFlags struct {
	Color   string
	Output  string
	Debug   bool
	Query   string
	Yes     bool
	NoInput bool
	Latency time.Duration
	Timeout time.Duration
}

type contextKey string

const (
	outputModeKey contextKey = "outputMode"
	queryKey      contextKey = "query"
)

func Execute(args []string) error {
	return ExecuteContext(context.Background(), args)
}

// ExecuteContext runs the CLI; cancelling ctx aborts in-flight calls.
func ExecuteContext(ctx context.Context, args []string) error {
	app := NewApp()
	root := NewRootCmd(app)
	root.SetArgs(args)

	err := root.ExecuteContext(ctx)
	if err != nil {
		if app.Flags.Output == "json" {
			payload := map[string]any{
				"error": map[string]any{
					"message": err.Error(),
				},
			}
			if cerrors.ContainsSuggestion(err) {
				payload["error"].(map[string]any)["suggestion"] = cerrors.GetSuggestion(err)
			}
			_ = outfmt.WriteJSON(os.Stderr, payload)
		} else {
			fmt.Fprintln(os.Stderr, "Error:", err)

			if cerrors.ContainsSuggestion(err) {
				fmt.Fprintln(os.Stderr, "")
				fmt.Fprintln(os.Stderr, "Suggestion:", cerrors.GetSuggestion(err))
			}
		}
	}
	return err
}

func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "postmock",
		Short:         "Posts API client answered by an in-process mock interceptor",
		Version:       fmt.Sprintf("%s (commit %s, built %s)", Version, Commit, Date),
		SilenceUsage:  true,
		SilenceErrors: true,
		Example: strings.TrimSpace(`
  # Posts through the repository (never leaves the process)
  postmock posts get 42
  postmock posts create --user-id 1 --title "Mocked Draft" --body "Repository Test Content"
  postmock posts update 5 --user-id 1 --title "Revised Title" --body "Updated content"
  postmock posts delete 99 --yes

  # Raw router output for any request
  postmock route GET /posts/7
  postmock route PATCH /posts/7

  # Inspect the rule table
  postmock rules

  # Run the demonstration sequence with simulated latency
  postmock demo --latency 200ms

  # JSON output for scripting
  postmock --output=json posts get 42 --query .data.title
`),
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// UI (must come first)
			u := ui.New(app.Flags.Color)
			ctx := ui.WithUI(cmd.Context(), u)
			app.UI = u

			mode, err := outfmt.ParseMode(app.Flags.Output)
			if err != nil {
				return err
			}
			app.Flags.Output = mode.String()
			ctx = context.WithValue(ctx, outputModeKey, mode)

			ctx = context.WithValue(ctx, queryKey, app.Flags.Query)

			if app.Flags.NoInput {
				app.Flags.Yes = true
			}
			if app.Flags.Latency < 0 {
				return fmt.Errorf("--latency must not be negative")
			}
			if app.Flags.Timeout <= 0 {
				return fmt.Errorf("--timeout must be positive")
			}

			logger := logging.Setup(app.Flags.Debug)
			ctx = logging.WithLogger(ctx, logger)
			app.Logger = logger

			ctx = WithApp(ctx, app)
			cmd.SetContext(ctx)
			return nil
		},
	}
	root.PersistentFlags().StringVar(&app.Flags.Color, "color", app.Flags.Color, "Color output: auto|always|never")
	root.PersistentFlags().StringVar(&app.Flags.Output, "output", app.Flags.Output, "Output format: text|json")
	root.PersistentFlags().BoolVar(&app.Flags.Debug, "debug", false, "Enable debug logging")
	root.PersistentFlags().StringVar(&app.Flags.Query, "query", "", "JQ filter expression for JSON output")
	root.PersistentFlags().BoolVarP(&app.Flags.Yes, "yes", "y", envBool("POSTMOCK_YES", false), "Skip confirmation prompts (non-interactive)")
	root.PersistentFlags().BoolVar(&app.Flags.NoInput, "no-input", false, "Alias for --yes (non-interactive)")
	root.PersistentFlags().DurationVar(&app.Flags.Latency, "latency", app.Flags.Latency, "Simulated latency added to every intercepted call")
	root.PersistentFlags().DurationVar(&app.Flags.Timeout, "timeout", app.Flags.Timeout, "Client timeout for each call, latency included")
	_ = root.PersistentFlags().MarkHidden("no-input")

	root.AddCommand(newPostsCmd(app))
	root.AddCommand(newRouteCmd(app))
	root.AddCommand(newRulesCmd(app))
	root.AddCommand(newDemoCmd(app))
	return root
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	v := strings.TrimSpace(strings.ToLower(os.Getenv(key)))
	if v == "" {
		return fallback
	}
	switch v {
	case "1", "true", "yes", "y", "on":
		return true
	case "0", "false", "no", "n", "off":
		return false
	default:
		return fallback
	}
}

// envDuration reads a Go duration such as "250ms". Unparseable values fall back.
func envDuration(key string, fallback time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}

func defaultTimeout() time.Duration {
	return envDuration("POSTMOCK_TIMEOUT", api.DefaultTimeout)
}
