// Package repository turns posts API outcomes into result.Result values, so
// application code never branches on transport errors or status codes.
package repository

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/salmonumbrella/postmock/internal/result"
	"github.com/salmonumbrella/postmock/internal/transport"
)

// ErrEmptyBody is the cause reported when a non-204 success response has no body.
var ErrEmptyBody = errors.New("Empty body received for success response") //nolint:staticcheck // message is part of the result contract

const (
	messageNoContent    = "No content"
	messageUnknownError = "Unknown error"
	messageNetworkError = "Network or unexpected error: "
)

// Call performs one exchange against the posts API.
type Call[T any] func(ctx context.Context) (*transport.Reply[T], error)

// SafeCall runs call once and normalizes its outcome:
//
//  1. call failed: Error(cause, "Network or unexpected error: <cause>")
//  2. status outside 2xx: Error(HTTPError, error body or "Unknown error")
//  3. 2xx with body: Success(body)
//  4. 204 without body: Success(zero T)
//  5. other 2xx without body: Error(ErrEmptyBody, "No content")
//
// Cancellation is not a failure: when call's error wraps context.Canceled,
// SafeCall returns that error and a zero Result. The returned error is nil
// in every other case, including a panicking call.
func SafeCall[T any](ctx context.Context, call Call[T]) (res result.Result[T], err error) {
	defer func() {
		if r := recover(); r != nil {
			cause := fmt.Errorf("unexpected panic: %v", r)
			res, err = result.Error[T](cause, messageNetworkError+cause.Error()), nil
		}
	}()

	reply, err := call(ctx)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return result.Result[T]{}, err
		}
		return result.Error[T](err, messageNetworkError+err.Error()), nil
	}
	if reply == nil {
		return result.Error[T](transport.ErrNoReply, messageNetworkError+transport.ErrNoReply.Error()), nil
	}

	if !reply.IsSuccessful() {
		message := messageUnknownError
		if reply.ErrorBody != nil {
			message = *reply.ErrorBody
		}
		cause := &transport.HTTPError{
			StatusCode: reply.StatusCode,
			Status:     fmt.Sprintf("%d %s", reply.StatusCode, http.StatusText(reply.StatusCode)),
		}
		return result.Error[T](cause, message), nil
	}

	switch {
	case reply.Body != nil:
		return result.Success(*reply.Body), nil
	case reply.StatusCode == http.StatusNoContent:
		var unit T
		return result.Success(unit), nil
	default:
		return result.Error[T](ErrEmptyBody, messageNoContent), nil
	}
}
