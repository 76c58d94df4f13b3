package intercept

import (
	"strings"
)

// Method is an HTTP method understood by the rule table.
type Method string

const (
	MethodGet    Method = "GET"
	MethodPost   Method = "POST"
	MethodPut    Method = "PUT"
	MethodDelete Method = "DELETE"
)

// Methods lists the known methods in table order.
func Methods() []Method {
	return []Method{MethodGet, MethodPost, MethodPut, MethodDelete}
}

// ParseMethod normalizes s and reports whether it is one of the known methods.
// Unknown methods are still returned so they can be routed to the fallback.
func ParseMethod(s string) (Method, bool) {
	m := Method(strings.ToUpper(strings.TrimSpace(s)))
	switch m {
	case MethodGet, MethodPost, MethodPut, MethodDelete:
		return m, true
	default:
		return m, false
	}
}

// Request describes one outgoing call. Body is nil when the call carries none.
type Request struct {
	Method Method
	Path   string
	Body   []byte
}

// Response is a synthesized reply. It is never modified after the router returns it.
type Response struct {
	StatusCode int
	Body       []byte
	Headers    map[string]string
}

// Header returns the value of the named header, ignoring case.
func (r Response) Header(name string) string {
	for k, v := range r.Headers {
		if strings.EqualFold(k, name) {
			return v
		}
	}
	return ""
}

// HasBody reports whether the response carries a non-empty body.
func (r Response) HasBody() bool {
	return len(r.Body) > 0
}

const (
	headerContentType = "content-type"
	contentTypeJSON   = "application/json"
)

func jsonResponse(status int, body []byte) Response {
	return Response{
		StatusCode: status,
		Body:       body,
		Headers:    map[string]string{headerContentType: contentTypeJSON},
	}
}
