// Package result provides Result, a closed Success/Error/Loading union used
// to hand API outcomes to application code.
package result

import (
	"encoding/json"
	"fmt"
)

// Kind identifies the active variant of a Result.
type Kind int

const (
	// KindLoading is the zero value: no outcome yet.
	KindLoading Kind = iota
	KindSuccess
	KindError
)

func (k Kind) String() string {
	switch k {
	case KindLoading:
		return "loading"
	case KindSuccess:
		return "success"
	case KindError:
		return "error"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Unit is the payload of operations that succeed without data.
type Unit struct{}

// Result holds exactly one of: a success value, an error with a message, or
// the loading placeholder. Construct it with Success, Error or Loading.
type Result[T any] struct {
	kind    Kind
	value   T
	cause   error
	message string
}

// Success returns a Result carrying v.
func Success[T any](v T) Result[T] {
	return Result[T]{kind: KindSuccess, value: v}
}

// Error returns a failed Result. cause is the underlying error and message
// the human-readable description.
func Error[T any](cause error, message string) Result[T] {
	return Result[T]{kind: KindError, cause: cause, message: message}
}

// Loading returns the placeholder Result.
func Loading[T any]() Result[T] {
	return Result[T]{}
}

// Kind reports the active variant.
func (r Result[T]) Kind() Kind { return r.kind }

func (r Result[T]) IsSuccess() bool { return r.kind == KindSuccess }
func (r Result[T]) IsError() bool   { return r.kind == KindError }
func (r Result[T]) IsLoading() bool { return r.kind == KindLoading }

// Cause returns the underlying error of an Error result, or nil.
func (r Result[T]) Cause() error { return r.cause }

// Message returns the description of an Error result, or "".
func (r Result[T]) Message() string { return r.message }

// Value returns the success payload and whether r is a Success.
func (r Result[T]) Value() (T, bool) {
	if r.kind != KindSuccess {
		var zero T
		return zero, false
	}
	return r.value, true
}

// Cases holds one handler per variant. Every handler must be set.
type Cases[T, R any] struct {
	Success func(T) R
	Error   func(cause error, message string) R
	Loading func() R
}

// Match dispatches r to the handler for its variant.
func Match[T, R any](r Result[T], c Cases[T, R]) R {
	switch r.kind {
	case KindSuccess:
		return c.Success(r.value)
	case KindError:
		return c.Error(r.cause, r.message)
	default:
		return c.Loading()
	}
}

// Fold is Match with positional handlers, so every variant must be handled
// at the call site.
func Fold[T, R any](r Result[T], onSuccess func(T) R, onError func(error, string) R, onLoading func() R) R {
	return Match(r, Cases[T, R]{Success: onSuccess, Error: onError, Loading: onLoading})
}

// Map transforms the success value, leaving other variants untouched.
func Map[T, U any](r Result[T], f func(T) U) Result[U] {
	switch r.kind {
	case KindSuccess:
		return Success(f(r.value))
	case KindError:
		return Error[U](r.cause, r.message)
	default:
		return Loading[U]()
	}
}

func (r Result[T]) String() string {
	switch r.kind {
	case KindSuccess:
		return fmt.Sprintf("Success(%v)", r.value)
	case KindError:
		return fmt.Sprintf("Error(%v, %q)", r.cause, r.message)
	default:
		return "Loading"
	}
}

type jsonResult struct {
	Status  string `json:"status"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
	Cause   string `json:"cause,omitempty"`
}

// MarshalJSON renders the active variant for CLI output.
func (r Result[T]) MarshalJSON() ([]byte, error) {
	out := jsonResult{Status: r.kind.String()}
	switch r.kind {
	case KindSuccess:
		if _, isUnit := any(r.value).(Unit); !isUnit {
			out.Data = r.value
		}
	case KindError:
		out.Message = r.message
		if r.cause != nil {
			out.Cause = r.cause.Error()
		}
	}
	return json.Marshal(out)
}
