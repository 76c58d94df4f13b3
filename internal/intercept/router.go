// Package intercept answers outgoing HTTP calls from an ordered rule table
// without touching the network.
package intercept

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/salmonumbrella/postmock/internal/logging"
)

// MethodPredicate reports whether a rule applies to a request method.
type MethodPredicate func(Method) bool

// PathPredicate reports whether a rule applies to a request path.
type PathPredicate func(string) bool

// Builder produces the response for a matched request. An error is turned
// into a 500 response by the router.
type Builder func(Request) (Response, error)

// Rule is one entry of the router's table.
type Rule struct {
	Name    string
	Pattern string // human-readable path pattern, for listings
	Method  MethodPredicate
	Path    PathPredicate
	Build   Builder

	fallback bool
}

func (r Rule) matches(req Request) bool {
	return r.Method(req.Method) && r.Path(req.Path)
}

// Methods returns the known methods the rule accepts.
func (r Rule) Methods() []Method {
	var out []Method
	for _, m := range Methods() {
		if r.Method(m) {
			out = append(out, m)
		}
	}
	return out
}

// IsFallback reports whether r is the not-found rule appended by NewRouter.
// A caller rule with the same name is not the fallback.
func (r Rule) IsFallback() bool {
	return r.fallback
}

const fallbackRuleName = "not-found"

const (
	notFoundBody      = `{"error": "Not Found"}`
	internalErrorBody = `{"error": "Internal Server Error"}`
)

// NotFoundRule matches every request and answers 404.
func NotFoundRule() Rule {
	return Rule{
		Name:    fallbackRuleName,
		Pattern: "*",
		Method:  AnyMethod(),
		Path:    AnyPath(),
		Build: func(Request) (Response, error) {
			return jsonResponse(http.StatusNotFound, []byte(notFoundBody)), nil
		},
	}
}

func fallbackRule() Rule {
	r := NotFoundRule()
	r.fallback = true
	return r
}

// Router maps requests to responses using first-match-wins over a fixed
// rule table. It holds no mutable state and is safe for concurrent use.
type Router struct {
	rules  []Rule
	logger *slog.Logger
}

// NewRouter copies rules and appends the not-found rule. A nil logger means
// the logger is taken from the request context.
func NewRouter(logger *slog.Logger, rules ...Rule) *Router {
	table := make([]Rule, 0, len(rules)+1)
	for _, r := range rules {
		if r.Method == nil || r.Path == nil || r.Build == nil {
			continue
		}
		r.fallback = false
		table = append(table, r)
	}
	table = append(table, fallbackRule())
	return &Router{rules: table, logger: logger}
}

// NewDefaultRouter returns a router over DefaultRules.
func NewDefaultRouter(logger *slog.Logger) *Router {
	return NewRouter(logger, DefaultRules()...)
}

// Rules returns a copy of the rule table, fallback included.
func (r *Router) Rules() []Rule {
	out := make([]Rule, len(r.rules))
	copy(out, r.rules)
	return out
}

// Match returns the first rule whose predicates both accept req. The
// fallback rule guarantees a match.
func (r *Router) Match(req Request) Rule {
	for _, rule := range r.rules {
		if rule.matches(req) {
			return rule
		}
	}
	// Unreachable while the fallback rule is last in the table.
	return fallbackRule()
}

// Route answers req. It always returns a response: a builder that fails or
// panics yields a 500.
func (r *Router) Route(ctx context.Context, req Request) Response {
	log := r.logger
	if log == nil {
		log = logging.FromContext(ctx)
	}

	rule := r.Match(req)
	log.Debug("intercepting request",
		"method", string(req.Method),
		"path", req.Path,
		"rule", rule.Name,
	)
	if rule.IsFallback() {
		log.Debug("no mock rule found, returning 404", "method", string(req.Method), "path", req.Path)
	}

	resp, err := build(rule, req)
	if err != nil {
		log.Warn("mock rule failed to build response",
			"rule", rule.Name,
			"path", req.Path,
			"error", err,
		)
		return jsonResponse(http.StatusInternalServerError, []byte(internalErrorBody))
	}
	return withJSONHeader(resp)
}

func build(rule Rule, req Request) (resp Response, err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("rule %s panicked: %v", rule.Name, p)
		}
	}()
	return rule.Build(req)
}

func withJSONHeader(resp Response) Response {
	headers := make(map[string]string, len(resp.Headers)+1)
	for k, v := range resp.Headers {
		headers[k] = v
	}
	if resp.Header(headerContentType) == "" {
		headers[headerContentType] = contentTypeJSON
	}
	resp.Headers = headers
	return resp
}

// MethodIs matches exactly m.
func MethodIs(m Method) MethodPredicate {
	return func(got Method) bool { return got == m }
}

// AnyMethod matches every method.
func AnyMethod() MethodPredicate {
	return func(Method) bool { return true }
}

// PathEquals matches exactly p.
func PathEquals(p string) PathPredicate {
	return func(got string) bool { return got == p }
}

// AnyPath matches every path.
func AnyPath() PathPredicate {
	return func(string) bool { return true }
}

// PathWithNumericID matches prefix followed by one or more ASCII digits and
// nothing else, e.g. PathWithNumericID("/posts/") matches "/posts/42".
func PathWithNumericID(prefix string) PathPredicate {
	return func(got string) bool {
		suffix, ok := strings.CutPrefix(got, prefix)
		return ok && isDigits(suffix)
	}
}

// IDFromPath parses the numeric suffix of path after prefix.
func IDFromPath(prefix, path string) (int, error) {
	suffix, ok := strings.CutPrefix(path, prefix)
	if !ok || !isDigits(suffix) {
		return 0, &PathError{Path: path, Prefix: prefix}
	}
	id, err := strconv.Atoi(suffix)
	if err != nil {
		return 0, &PathError{Path: path, Prefix: prefix, Err: err}
	}
	return id, nil
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
