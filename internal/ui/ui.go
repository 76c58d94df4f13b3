// Package ui prints colored status lines for the CLI.
// It handles color output with automatic detection, respects NO_COLOR,
// and provides Success, Error, Warning, and Info message helpers.
package ui

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/muesli/termenv"
)

type UI struct {
	w     io.Writer
	out   *termenv.Output
	color bool
}

type contextKey struct{}

// New creates a UI on stderr with the specified color mode.
// colorMode can be "never", "always", or "auto".
// The NO_COLOR environment variable overrides color=true.
func New(colorMode string) *UI {
	return NewWithWriter(os.Stderr, colorMode)
}

// NewWithWriter creates a UI writing to w.
func NewWithWriter(w io.Writer, colorMode string) *UI {
	out := termenv.NewOutput(w)
	var color bool

	switch colorMode {
	case "never":
		color = false
	case "always":
		color = true
	default: // auto
		color = out.ColorProfile() != termenv.Ascii
	}

	if os.Getenv("NO_COLOR") != "" {
		color = false
	}

	return &UI{w: w, out: out, color: color}
}

func (u *UI) line(msg, color string) {
	if u.color && color != "" {
		fmt.Fprintln(u.w, u.out.String(msg).Foreground(u.out.Color(color)))
		return
	}
	fmt.Fprintln(u.w, msg)
}

// Success prints a success message in green.
func (u *UI) Success(msg string) { u.line(msg, "2") }

// Error prints an error message in red.
func (u *UI) Error(msg string) { u.line(msg, "1") }

// Warning prints a warning message in yellow.
func (u *UI) Warning(msg string) { u.line(msg, "3") }

// Info prints an informational message.
func (u *UI) Info(msg string) { u.line(msg, "") }

// Status prints "LABEL: msg", green when ok and red otherwise.
func (u *UI) Status(ok bool, label, msg string) {
	text := fmt.Sprintf("%s: %s", label, msg)
	if ok {
		u.Success(text)
		return
	}
	u.Error(text)
}

// WithUI stores the UI in the context.
func WithUI(ctx context.Context, u *UI) context.Context {
	return context.WithValue(ctx, contextKey{}, u)
}

// FromContext retrieves the UI from the context.
// If no UI is found in the context, returns New("auto").
func FromContext(ctx context.Context) *UI {
	if u, ok := ctx.Value(contextKey{}).(*UI); ok {
		return u
	}
	return New("auto")
}
