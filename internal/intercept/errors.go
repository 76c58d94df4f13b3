package intercept

import "fmt"

// PathError reports a path that does not carry a usable numeric id.
type PathError struct {
	Path   string
	Prefix string
	Err    error
}

func (e *PathError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("path %q: invalid id after %q: %v", e.Path, e.Prefix, e.Err)
	}
	return fmt.Sprintf("path %q: expected numeric id after %q", e.Path, e.Prefix)
}

func (e *PathError) Unwrap() error {
	return e.Err
}
