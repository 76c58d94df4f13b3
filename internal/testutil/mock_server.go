package testutil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"

	"github.com/salmonumbrella/postmock/internal/intercept"
	"github.com/salmonumbrella/postmock/internal/logging"
)

// MockServer serves a router over a loopback socket.
type MockServer struct {
	Server *httptest.Server
	mu     sync.Mutex
	routes map[string]map[string]http.HandlerFunc // method -> path -> handler
	hits   map[string]int
}

// NewMockServer starts a server in front of router. A nil router means
// intercept.NewDefaultRouter.
func NewMockServer(router *intercept.Router) *MockServer {
	if router == nil {
		router = intercept.NewDefaultRouter(logging.Discard())
	}
	fallback := intercept.Handler(router)

	ms := &MockServer{
		routes: make(map[string]map[string]http.HandlerFunc),
		hits:   make(map[string]int),
	}

	ms.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ms.mu.Lock()
		ms.hits[r.Method+" "+r.URL.Path]++
		handler, found := ms.routes[r.Method][r.URL.Path]
		ms.mu.Unlock()

		if found {
			handler(w, r)
			return
		}
		fallback.ServeHTTP(w, r)
	}))

	return ms
}

// Close shuts down the server.
func (m *MockServer) Close() {
	m.Server.Close()
}

// URL returns the server URL.
func (m *MockServer) URL() string {
	return m.Server.URL
}

// Client returns an http.Client bound to the server.
func (m *MockServer) Client() *http.Client {
	return m.Server.Client()
}

// Hits returns how many requests reached method and path.
func (m *MockServer) Hits(method, path string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.hits[method+" "+path]
}

// Handle registers a handler for a path and method.
func (m *MockServer) Handle(method, path string, handler http.HandlerFunc) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.routes[method] == nil {
		m.routes[method] = make(map[string]http.HandlerFunc)
	}
	m.routes[method][path] = handler
}

// HandleJSON registers a handler that returns JSON.
func (m *MockServer) HandleJSON(method, path string, statusCode int, response any) {
	m.Handle(method, path, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(statusCode)
		//nolint:errcheck // test utility: encoding errors not actionable
		json.NewEncoder(w).Encode(response)
	})
}

// HandleRaw registers a handler that returns body verbatim.
func (m *MockServer) HandleRaw(method, path string, statusCode int, body string) {
	m.Handle(method, path, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(statusCode)
		//nolint:errcheck // test utility: write errors not actionable
		w.Write([]byte(body))
	})
}

// HandleEmpty registers a handler that returns statusCode with no body.
func (m *MockServer) HandleEmpty(method, path string, statusCode int) {
	m.Handle(method, path, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(statusCode)
	})
}

// HandleError registers a handler that returns an error response.
func (m *MockServer) HandleError(method, path string, statusCode int, message string) {
	m.Handle(method, path, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(statusCode)
		//nolint:errcheck // test utility: encoding errors not actionable
		json.NewEncoder(w).Encode(map[string]string{
			"error":   http.StatusText(statusCode),
			"message": message,
		})
	})
}
