package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	cerrors "github.com/salmonumbrella/postmock/internal/errors"
)

// errCancelled is returned when the user answers anything but an accepted word.
var errCancelled = fmt.Errorf("cancelled")

func confirmPrompt(w io.Writer, prompt string, accepted ...string) (bool, error) {
	fmt.Fprint(w, prompt)
	scanner := bufio.NewScanner(os.Stdin)
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return false, fmt.Errorf("failed to read confirmation: %w", err)
		}
		if !term.IsTerminal(int(os.Stdin.Fd())) {
			return false, Suggest(fmt.Errorf("confirmation required in non-interactive mode"), cerrors.SuggestionConfirm)
		}
		return false, errCancelled
	}
	response := strings.ToLower(strings.TrimSpace(scanner.Text()))
	for _, ok := range accepted {
		if response == ok {
			return true, nil
		}
	}
	return false, nil
}
