package transport

import (
	"errors"
	"fmt"
	"net/http"
)

// HTTPError represents a completed exchange whose status is outside 2xx.
type HTTPError struct {
	Op         string
	StatusCode int
	Status     string
	Body       string
}

func (e *HTTPError) Error() string {
	switch {
	case e.Op != "" && e.Body != "":
		return fmt.Sprintf("%s failed with status %d: %s", e.Op, e.StatusCode, e.Body)
	case e.Op != "":
		return fmt.Sprintf("%s failed with status %d", e.Op, e.StatusCode)
	case e.Body != "":
		return fmt.Sprintf("HTTP Error %d: %s", e.StatusCode, e.Body)
	default:
		return fmt.Sprintf("HTTP Error %d", e.StatusCode)
	}
}

// IsHTTPStatus checks whether an error represents a specific HTTP status.
func IsHTTPStatus(err error, status int) bool {
	var he *HTTPError
	if errors.As(err, &he) {
		return he.StatusCode == status
	}
	return false
}

// IsNotFound checks for 404 HTTP errors.
func IsNotFound(err error) bool {
	return IsHTTPStatus(err, http.StatusNotFound)
}

// IsServerError checks for 5xx HTTP errors.
func IsServerError(err error) bool {
	var he *HTTPError
	return errors.As(err, &he) && he.StatusCode >= 500 && he.StatusCode <= 599
}

// IsSuccessStatus reports whether code is in the 2xx range.
func IsSuccessStatus(code int) bool {
	return code >= 200 && code <= 299
}
