// Package testutil provides a loopback HTTP server for API client tests.
//
// MockServer serves an intercept.Router over httptest so the client can be
// exercised through a real socket. Handlers registered with Handle,
// HandleJSON, HandleEmpty or HandleError take precedence over the router,
// which lets tests produce replies the default rule table never sends.
//
// Example usage:
//
//	ms := testutil.NewMockServer(nil)
//	defer ms.Close()
//
//	ms.HandleEmpty("GET", "/posts/1", http.StatusOK)
//
//	client, _ := api.NewClient(api.Config{BaseURL: ms.URL(), HTTPClient: ms.Client()})
//	reply, err := client.GetPost(ctx, 1)
package testutil
