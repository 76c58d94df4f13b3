package transport

// Reply is the outcome of one completed exchange. Body is nil when the
// response carried no payload; ErrorBody holds the raw text of a non-2xx
// response body when one was sent.
type Reply[T any] struct {
	StatusCode int
	Body       *T
	ErrorBody  *string
}

// IsSuccessful reports whether the status is in the 2xx range.
func (r *Reply[T]) IsSuccessful() bool {
	return IsSuccessStatus(r.StatusCode)
}

// HasBody reports whether a payload was received.
func (r *Reply[T]) HasBody() bool {
	return r.Body != nil
}
