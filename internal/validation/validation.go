// Package validation checks command-line input before it reaches the API.
package validation

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// MaxTitleLength bounds post titles accepted by the CLI.
const MaxTitleLength = 200

// Required checks for empty strings
func Required(name, value string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("%s is required", name)
	}
	return nil
}

// PositiveInt checks that an integer value is greater than zero
func PositiveInt(name string, value int) error {
	if value <= 0 {
		return fmt.Errorf("%s must be positive", name)
	}
	return nil
}

// PostID parses a post id argument. Only ASCII digits are accepted, so the
// id always forms a path the router recognizes.
func PostID(arg string) (int, error) {
	if arg == "" {
		return 0, fmt.Errorf("post id is required")
	}
	for _, r := range arg {
		if r < '0' || r > '9' {
			return 0, fmt.Errorf("invalid post id %q: must be a non-negative integer", arg)
		}
	}
	id, err := strconv.Atoi(arg)
	if err != nil {
		return 0, fmt.Errorf("invalid post id %q: out of range", arg)
	}
	return id, nil
}

// Title checks that a post title is present, printable and not too long.
func Title(title string) error {
	if err := Required("title", title); err != nil {
		return err
	}
	if len([]rune(title)) > MaxTitleLength {
		return fmt.Errorf("title must be at most %d characters", MaxTitleLength)
	}
	for _, r := range title {
		if unicode.IsControl(r) {
			return fmt.Errorf("title must not contain control characters")
		}
	}
	return nil
}

// Path checks that a route path is absolute.
func Path(path string) error {
	if !strings.HasPrefix(path, "/") {
		return fmt.Errorf("invalid path %q: must start with /", path)
	}
	return nil
}
