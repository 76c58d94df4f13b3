// Package api is a typed client for the posts endpoints. By default every
// call is answered in-process by the intercept router.
package api

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/salmonumbrella/postmock/internal/intercept"
	"github.com/salmonumbrella/postmock/internal/logging"
	"github.com/salmonumbrella/postmock/internal/posts"
	"github.com/salmonumbrella/postmock/internal/result"
	"github.com/salmonumbrella/postmock/internal/transport"
)

const (
	// DefaultBaseURL never resolves; the interceptor answers before any dial.
	DefaultBaseURL = "https://mock.api.com/"

	// DefaultTimeout bounds a whole call, simulated latency included.
	DefaultTimeout = 5 * time.Second

	// MaxResponseSize caps how much of a response body is read.
	MaxResponseSize = 1 << 20
)

// Config describes how to build a Client. The zero value routes every call
// through intercept.NewDefaultRouter.
type Config struct {
	BaseURL string
	Router  *intercept.Router
	Timeout time.Duration
	// Latency is the simulated delay added by the interceptor.
	Latency time.Duration
	// HTTPClient replaces the intercepting client, e.g. with one pointed
	// at a loopback test server.
	HTTPClient *http.Client
	Logger     *slog.Logger
}

// Client issues posts calls and reports each completed exchange as a
// transport.Reply.
type Client struct {
	baseURL *url.URL
	http    *http.Client
	logger  *slog.Logger
}

var _ PostService = (*Client)(nil)

// NewClient creates a client from cfg.
func NewClient(cfg Config) (*Client, error) {
	base := cfg.BaseURL
	if base == "" {
		base = DefaultBaseURL
	}
	if !strings.HasSuffix(base, "/") {
		base += "/"
	}
	u, err := url.Parse(base)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL %q: %w", cfg.BaseURL, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid base URL %q: scheme and host are required", cfg.BaseURL)
	}

	logger := cfg.Logger
	if logger == nil {
		logger = logging.Discard()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = DefaultTimeout
		}
		router := cfg.Router
		if router == nil {
			router = intercept.NewDefaultRouter(logging.Component(logger, "router"))
		}
		httpClient = &http.Client{
			Timeout:   timeout,
			Transport: &intercept.Transport{Router: router, Latency: cfg.Latency},
		}
	}

	return &Client{
		baseURL: u,
		http:    httpClient,
		logger:  logger,
	}, nil
}

// GetPost fetches the post with the given id.
func (c *Client) GetPost(ctx context.Context, id int) (*transport.Reply[posts.Post], error) {
	return doPost(ctx, c, http.MethodGet, postPath(id), nil)
}

// CreatePost submits a new post.
func (c *Client) CreatePost(ctx context.Context, post posts.Post) (*transport.Reply[posts.Post], error) {
	return doPost(ctx, c, http.MethodPost, "posts", posts.Encode(post))
}

// UpdatePost replaces the post with the given id.
func (c *Client) UpdatePost(ctx context.Context, id int, post posts.Post) (*transport.Reply[posts.Post], error) {
	return doPost(ctx, c, http.MethodPut, postPath(id), posts.Encode(post))
}

// DeletePost deletes the post with the given id. A successful reply carries
// no body.
func (c *Client) DeletePost(ctx context.Context, id int) (*transport.Reply[result.Unit], error) {
	return do(ctx, c, http.MethodDelete, postPath(id), nil, func([]byte) (result.Unit, error) {
		return result.Unit{}, nil
	})
}

func postPath(id int) string {
	return "posts/" + strconv.Itoa(id)
}

func doPost(ctx context.Context, c *Client, method, path string, body []byte) (*transport.Reply[posts.Post], error) {
	return do(ctx, c, method, path, body, posts.Decode)
}

// do performs one exchange. Only failures below HTTP semantics, including
// an undecodable success body, are returned as errors.
func do[T any](ctx context.Context, c *Client, method, path string, body []byte, decode func([]byte) (T, error)) (*transport.Reply[T], error) {
	target := c.baseURL.ResolveReference(&url.URL{Path: path})
	op := method + " " + target.Path

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, target.String(), reader)
	if err != nil {
		return nil, transport.NewError(op, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	requestID := uuid.New().String()
	req.Header.Set("X-Request-ID", requestID)

	c.logger.Debug("api request", "op", op, "request_id", requestID)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, transport.NewError(op, err)
	}
	//nolint:errcheck // body is fully read below
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, MaxResponseSize))
	if err != nil {
		return nil, transport.NewError(op, fmt.Errorf("read response body: %w", err))
	}

	c.logger.Debug("api response", "op", op, "status", resp.StatusCode, "bytes", len(data), "request_id", requestID)

	reply := &transport.Reply[T]{StatusCode: resp.StatusCode}
	if !transport.IsSuccessStatus(resp.StatusCode) {
		if len(data) > 0 {
			text := string(data)
			reply.ErrorBody = &text
		}
		return reply, nil
	}

	if len(bytes.TrimSpace(data)) == 0 {
		return reply, nil
	}
	decoded, err := decode(data)
	if err != nil {
		return nil, transport.NewError(op, err)
	}
	reply.Body = &decoded
	return reply, nil
}
