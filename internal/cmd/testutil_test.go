package cmd

import (
	"bytes"
	"io"
	"os"
	"testing"
)

// setupTestEnvironment clears POSTMOCK_* variables so flag defaults are
// predictable, and disables color.
func setupTestEnvironment(t *testing.T) {
	t.Helper()

	for _, key := range []string{"POSTMOCK_OUTPUT", "POSTMOCK_COLOR", "POSTMOCK_LATENCY", "POSTMOCK_TIMEOUT", "POSTMOCK_YES"} {
		t.Setenv(key, "")
	}
	t.Setenv("NO_COLOR", "1")
}

// captureStdout captures stdout output for assertions in tests.
func captureStdout(t *testing.T, fn func()) string {
	t.Helper()

	stdout := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("pipe: %v", err)
	}
	os.Stdout = w

	done := make(chan string)
	go func() {
		var buf bytes.Buffer
		_, _ = io.Copy(&buf, r)
		done <- buf.String()
	}()

	fn()

	_ = w.Close()
	os.Stdout = stdout
	out := <-done
	_ = r.Close()

	return out
}

// captureStderr captures stderr output for assertions in tests.
func captureStderr(t *testing.T, fn func()) string {
	t.Helper()

	stderr := os.Stderr
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("pipe: %v", err)
	}
	os.Stderr = w

	done := make(chan string)
	go func() {
		var buf bytes.Buffer
		_, _ = io.Copy(&buf, r)
		done <- buf.String()
	}()

	fn()

	_ = w.Close()
	os.Stderr = stderr
	out := <-done
	_ = r.Close()

	return out
}

// runCLI executes args and returns stdout, stderr and the command error.
func runCLI(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()

	stderr = captureStderr(t, func() {
		stdout = captureStdout(t, func() {
			err = Execute(args)
		})
	})
	return stdout, stderr, err
}

// newTestApp returns a minimal App for command unit tests.
func newTestApp() *App {
	return &App{Flags: &rootFlags{}}
}
