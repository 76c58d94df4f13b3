package cmd

import (
	"context"
	"errors"
	"fmt"

	cerrors "github.com/salmonumbrella/postmock/internal/errors"
	"github.com/salmonumbrella/postmock/internal/result"
	"github.com/salmonumbrella/postmock/internal/transport"
)

// ResultError is returned by commands whose call ended in an Error result.
type ResultError struct {
	Op      string
	Message string
	Cause   error
}

func (e *ResultError) Error() string {
	return fmt.Sprintf("%s: %s", e.Op, e.Message)
}

func (e *ResultError) Unwrap() error {
	return e.Cause
}

// resultErr returns a *ResultError for an Error result and nil otherwise.
func resultErr[T any](op string, res result.Result[T]) error {
	if !res.IsError() {
		return nil
	}
	return &ResultError{Op: op, Message: res.Message(), Cause: res.Cause()}
}

// mapCommandError adds common suggestions for known error types.
func mapCommandError(err error) error {
	if err == nil {
		return nil
	}
	if cerrors.ContainsSuggestion(err) {
		return err
	}

	switch {
	case transport.IsNotFound(err):
		return cerrors.WithSuggestion(err, cerrors.SuggestionListRules)
	case transport.IsTimeout(err), errors.Is(err, context.DeadlineExceeded):
		return cerrors.WithSuggestion(err, cerrors.SuggestionTimeout)
	}

	return err
}
