package intercept

import (
	"net/http"
	"strconv"
)

// Handler serves the router over HTTP, for tests that need a real socket.
func Handler(router *Router) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		desc, err := DescribeRequest(r)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		resp := router.Route(r.Context(), desc)
		for k, v := range resp.Headers {
			w.Header().Set(k, v)
		}
		if resp.HasBody() {
			w.Header().Set("Content-Length", strconv.Itoa(len(resp.Body)))
		}
		w.WriteHeader(resp.StatusCode)
		if resp.HasBody() {
			_, _ = w.Write(resp.Body)
		}
	})
}
