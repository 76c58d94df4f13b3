package intercept

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"
)

// Transport is an http.RoundTripper that answers every request from a Router.
// Latency, when set, delays each reply while still honouring the request
// context.
type Transport struct {
	Router  *Router
	Latency time.Duration
}

var _ http.RoundTripper = (*Transport)(nil)

// RoundTrip implements http.RoundTripper.
func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	ctx := req.Context()
	if err := ctx.Err(); err != nil {
		closeBody(req)
		return nil, err
	}

	desc, err := DescribeRequest(req)
	if err != nil {
		return nil, err
	}

	if t.Latency > 0 {
		timer := time.NewTimer(t.Latency)
		select {
		case <-timer.C:
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		}
	}

	router := t.Router
	if router == nil {
		router = NewDefaultRouter(nil)
	}
	return toHTTPResponse(req, router.Route(ctx, desc)), nil
}

// DescribeRequest converts an outgoing *http.Request into a Request,
// consuming and closing its body.
func DescribeRequest(req *http.Request) (Request, error) {
	method, _ := ParseMethod(req.Method)
	desc := Request{Method: method}
	if req.URL != nil {
		desc.Path = req.URL.EscapedPath()
	}
	if desc.Path == "" {
		desc.Path = "/"
	}

	if req.Body != nil && req.Body != http.NoBody {
		defer req.Body.Close()
		body, err := io.ReadAll(req.Body)
		if err != nil {
			return Request{}, fmt.Errorf("read request body: %w", err)
		}
		if len(body) > 0 {
			desc.Body = body
		}
	}
	return desc, nil
}

func toHTTPResponse(req *http.Request, resp Response) *http.Response {
	header := make(http.Header, len(resp.Headers))
	for k, v := range resp.Headers {
		header.Set(k, v)
	}
	header.Set("Content-Length", strconv.Itoa(len(resp.Body)))

	var body io.ReadCloser = http.NoBody
	if len(resp.Body) > 0 {
		body = io.NopCloser(bytes.NewReader(resp.Body))
	}

	return &http.Response{
		Status:        fmt.Sprintf("%d Mock Response", resp.StatusCode),
		StatusCode:    resp.StatusCode,
		Proto:         "HTTP/1.1",
		ProtoMajor:    1,
		ProtoMinor:    1,
		Header:        header,
		Body:          body,
		ContentLength: int64(len(resp.Body)),
		Request:       req,
	}
}

func closeBody(req *http.Request) {
	if req.Body != nil {
		_ = req.Body.Close()
	}
}
