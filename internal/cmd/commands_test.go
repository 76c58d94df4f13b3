package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"github.com/salmonumbrella/postmock/internal/api"
	cerrors "github.com/salmonumbrella/postmock/internal/errors"
	"github.com/salmonumbrella/postmock/internal/posts"
	"github.com/salmonumbrella/postmock/internal/result"
	"github.com/salmonumbrella/postmock/internal/transport"
)

func TestPostsGet_JSON(t *testing.T) {
	setupTestEnvironment(t)

	stdout, _, err := runCLI(t, "--output=json", "posts", "get", "42")
	if err != nil {
		t.Fatalf("Execute returned error: %v", err)
	}
	if !strings.Contains(stdout, `"id": 42`) {
		t.Fatalf("stdout lacks id 42: %q", stdout)
	}

	var doc struct {
		Status string `json:"status"`
		Data   struct {
			ID     int    `json:"id"`
			UserID int    `json:"userId"`
			Title  string `json:"title"`
		} `json:"data"`
	}
	if err := json.Unmarshal([]byte(stdout), &doc); err != nil {
		t.Fatalf("stdout is not valid JSON: %v; stdout=%q", err, stdout)
	}
	if doc.Status != "success" || doc.Data.ID != 42 || doc.Data.UserID != 1 {
		t.Fatalf("unexpected document: %+v", doc)
	}
	if doc.Data.Title != "Mocked GET Post 42" {
		t.Errorf("title = %q", doc.Data.Title)
	}
}

func TestPostsGet_Query(t *testing.T) {
	setupTestEnvironment(t)

	stdout, _, err := runCLI(t, "--output=json", "--query", ".data.title", "posts", "get", "7")
	if err != nil {
		t.Fatalf("Execute returned error: %v", err)
	}
	if strings.TrimSpace(stdout) != `"Mocked GET Post 7"` {
		t.Fatalf("stdout = %q", stdout)
	}
}

func TestPostsGet_Text(t *testing.T) {
	setupTestEnvironment(t)

	stdout, stderr, err := runCLI(t, "posts", "get", "42")
	if err != nil {
		t.Fatalf("Execute returned error: %v", err)
	}
	if !strings.Contains(stderr, "SUCCESS: fetch post 42") {
		t.Errorf("stderr = %q", stderr)
	}
	for _, want := range []string{"ID", "42", "Mocked GET Post 42", "generated locally"} {
		if !strings.Contains(stdout, want) {
			t.Errorf("stdout lacks %q: %q", want, stdout)
		}
	}
}

func TestPostsCreateAndUpdate(t *testing.T) {
	tests := []struct {
		name      string
		args      []string
		wantID    float64
		wantTitle string
	}{
		{
			name:      "create",
			args:      []string{"--output=json", "posts", "create", "--title", "Mocked Draft", "--body", "Repository Test Content"},
			wantID:    101,
			wantTitle: "New Post Success",
		},
		{
			name:      "update ignores path id",
			args:      []string{"--output=json", "posts", "update", "77", "--title", "Revised Title", "--body", "Updated content"},
			wantID:    5,
			wantTitle: "Updated Title Mock",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setupTestEnvironment(t)

			stdout, _, err := runCLI(t, tt.args...)
			if err != nil {
				t.Fatalf("Execute returned error: %v", err)
			}
			var doc map[string]any
			if err := json.Unmarshal([]byte(stdout), &doc); err != nil {
				t.Fatalf("stdout is not valid JSON: %v", err)
			}
			data, _ := doc["data"].(map[string]any)
			if data["id"] != tt.wantID || data["title"] != tt.wantTitle {
				t.Fatalf("data = %v", data)
			}
		})
	}
}

func TestPostsCreate_Validation(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"missing title flag", []string{"posts", "create", "--body", "b"}, `"title" not set`},
		{"blank body", []string{"posts", "create", "--title", "t"}, "body is required"},
		{"bad user", []string{"posts", "create", "--title", "t", "--body", "b", "--user-id", "0"}, "user id must be positive"},
		{"control chars", []string{"posts", "create", "--title", "a\tb", "--body", "b"}, "control characters"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setupTestEnvironment(t)

			_, stderr, err := runCLI(t, tt.args...)
			if err == nil {
				t.Fatalf("expected error, got nil")
			}
			if !strings.Contains(stderr, tt.want) {
				t.Fatalf("stderr = %q, want %q", stderr, tt.want)
			}
		})
	}
}

func TestPostsDelete_Yes(t *testing.T) {
	setupTestEnvironment(t)

	stdout, _, err := runCLI(t, "--output=json", "posts", "delete", "99")
	if err != nil {
		t.Fatalf("Execute returned error: %v", err)
	}
	var doc map[string]any
	if err := json.Unmarshal([]byte(stdout), &doc); err != nil {
		t.Fatalf("stdout is not valid JSON: %v", err)
	}
	if doc["status"] != "success" {
		t.Fatalf("status = %v", doc["status"])
	}
	if _, ok := doc["data"]; ok {
		t.Errorf("delete result should carry no data: %v", doc)
	}
}

func TestPostsDelete_PromptDenied(t *testing.T) {
	setupTestEnvironment(t)

	stdin := os.Stdin
	defer func() { os.Stdin = stdin }()
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("pipe: %v", err)
	}
	os.Stdin = r
	_, _ = w.WriteString("n\n")
	_ = w.Close()

	stdout, stderr, err := runCLI(t, "posts", "delete", "99")
	if err != nil {
		t.Fatalf("Execute returned error: %v", err)
	}
	if !strings.Contains(stderr, "Delete post 99? [y/N]") || !strings.Contains(stderr, "Delete cancelled") {
		t.Errorf("stderr = %q", stderr)
	}
	if strings.Contains(stderr, "SUCCESS") || strings.TrimSpace(stdout) != "" {
		t.Errorf("delete ran despite denial: stdout=%q stderr=%q", stdout, stderr)
	}
}

func TestPostsDelete_TextWithYes(t *testing.T) {
	setupTestEnvironment(t)

	_, stderr, err := runCLI(t, "posts", "delete", "-y", "99")
	if err != nil {
		t.Fatalf("Execute returned error: %v", err)
	}
	if !strings.Contains(stderr, "SUCCESS: delete post 99") {
		t.Errorf("stderr = %q", stderr)
	}
}

func TestPostsDryRun_Text(t *testing.T) {
	setupTestEnvironment(t)

	stdout, _, err := runCLI(t, "posts", "update", "5", "--dry-run", "--title", "Revised Title", "--body", "Updated content")
	if err != nil {
		t.Fatalf("Execute returned error: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(stdout), "\n")
	if len(lines) != 2 || lines[0] != "Would send PUT /posts/5:" {
		t.Fatalf("stdout = %q", stdout)
	}
	if !strings.Contains(lines[1], `"id": 5`) || !strings.Contains(lines[1], `"title": "Revised Title"`) {
		t.Errorf("request line = %q", lines[1])
	}
}

func TestRoute(t *testing.T) {
	tests := []struct {
		name       string
		args       []string
		wantStatus float64
		wantRule   string
		wantErr    bool
	}{
		{"get", []string{"GET", "/posts/7"}, 200, "get-post", false},
		{"lowercase method", []string{"get", "/posts/7"}, 200, "get-post", false},
		{"delete", []string{"DELETE", "/posts/7"}, 204, "delete-post", false},
		{"unknown method", []string{"PATCH", "/posts/7"}, 404, "not-found", true},
		{"collection get", []string{"GET", "/posts"}, 404, "not-found", true},
		{"overflowing id", []string{"GET", "/posts/99999999999999999999999"}, 500, "get-post", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setupTestEnvironment(t)

			args := append([]string{"--output=json", "route"}, tt.args...)
			stdout, _, err := runCLI(t, args...)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}

			var doc map[string]any
			if err := json.Unmarshal([]byte(stdout), &doc); err != nil {
				t.Fatalf("stdout is not valid JSON: %v; stdout=%q", err, stdout)
			}
			if doc["status"] != tt.wantStatus || doc["rule"] != tt.wantRule {
				t.Fatalf("doc = %v", doc)
			}
			headers, _ := doc["headers"].(map[string]any)
			if headers["content-type"] != "application/json" {
				t.Errorf("headers = %v", headers)
			}
		})
	}
}

func TestRoute_NotFoundSuggestsRules(t *testing.T) {
	setupTestEnvironment(t)

	stdout, stderr, err := runCLI(t, "route", "GET", "/users/1")
	if err == nil {
		t.Fatalf("expected error, got nil")
	}
	if !strings.Contains(stdout, `{"error": "Not Found"}`) {
		t.Errorf("stdout = %q", stdout)
	}
	if !strings.Contains(stderr, cerrors.SuggestionListRules) {
		t.Errorf("stderr = %q", stderr)
	}
}

func TestRoute_RelativePath(t *testing.T) {
	setupTestEnvironment(t)

	if _, _, err := runCLI(t, "route", "GET", "posts/1"); err == nil {
		t.Fatal("expected error for relative path")
	}
}

func TestRules(t *testing.T) {
	setupTestEnvironment(t)

	stdout, _, err := runCLI(t, "--output=json", "rules")
	if err != nil {
		t.Fatalf("Execute returned error: %v", err)
	}
	var doc struct {
		Rules []ruleOutput `json:"rules"`
	}
	if err := json.Unmarshal([]byte(stdout), &doc); err != nil {
		t.Fatalf("stdout is not valid JSON: %v", err)
	}
	names := make([]string, 0, len(doc.Rules))
	for _, r := range doc.Rules {
		names = append(names, r.Name)
	}
	if got := strings.Join(names, ","); got != "get-post,create-post,update-post,delete-post,not-found" {
		t.Fatalf("rule order = %s", got)
	}
	if !doc.Rules[4].Fallback || doc.Rules[0].Fallback {
		t.Errorf("fallback flags wrong: %+v", doc.Rules)
	}

	text, _, err := runCLI(t, "rules")
	if err != nil {
		t.Fatalf("Execute returned error: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(text), "\n")
	if len(lines) != 6 || !strings.HasPrefix(lines[0], "#") {
		t.Fatalf("text output = %q", text)
	}
	if !strings.Contains(lines[5], "not-found") || !strings.Contains(lines[5], "*") {
		t.Errorf("fallback line = %q", lines[5])
	}
}

func TestDemo_JSON(t *testing.T) {
	setupTestEnvironment(t)

	stdout, _, err := runCLI(t, "--output=json", "demo")
	if err != nil {
		t.Fatalf("Execute returned error: %v", err)
	}
	var doc struct {
		Steps []struct {
			Status  string `json:"status"`
			Summary string `json:"summary"`
		} `json:"steps"`
	}
	if err := json.Unmarshal([]byte(stdout), &doc); err != nil {
		t.Fatalf("stdout is not valid JSON: %v", err)
	}

	want := []struct{ status, summary string }{
		{"success", "Fetched post title: Mocked GET Post 42"},
		{"success", "Created post with mock id 101"},
		{"success", "Updated post title: Updated Title Mock"},
		{"success", "Post 99 deleted"},
		{"error", `{"error": "Not Found"}`},
	}
	if len(doc.Steps) != len(want) {
		t.Fatalf("got %d steps, want %d", len(doc.Steps), len(want))
	}
	for i, w := range want {
		if doc.Steps[i].Status != w.status || doc.Steps[i].Summary != w.summary {
			t.Errorf("step %d = %+v, want %s %q", i+1, doc.Steps[i], w.status, w.summary)
		}
	}
}

func TestDemo_Text(t *testing.T) {
	setupTestEnvironment(t)

	stdout, stderr, err := runCLI(t, "demo")
	if err != nil {
		t.Fatalf("Execute returned error: %v", err)
	}
	if !strings.Contains(stdout, "[5] Fetching post -1") || !strings.Contains(stdout, "Repository execution complete") {
		t.Errorf("stdout = %q", stdout)
	}
	if strings.Count(stderr, "SUCCESS:") != 4 || strings.Count(stderr, "ERROR:") != 1 {
		t.Errorf("stderr = %q", stderr)
	}
}

func TestApp_RepositoryUsesService(t *testing.T) {
	app := newTestApp()
	app.Service = &api.MockPostService{
		GetPostFunc: func(ctx context.Context, id int) (*transport.Reply[posts.Post], error) {
			return &transport.Reply[posts.Post]{StatusCode: http.StatusOK}, nil
		},
	}

	repo, err := app.Repository()
	if err != nil {
		t.Fatalf("Repository: %v", err)
	}
	res, err := repo.FetchPost(context.Background(), 1)
	if err != nil {
		t.Fatalf("FetchPost error = %v", err)
	}
	if !res.IsError() || res.Message() != "No content" {
		t.Fatalf("res = %v, want No content error", res)
	}
}

func TestApp_ConfirmSkips(t *testing.T) {
	cmd := &cobra.Command{}
	cmd.SetContext(context.Background())

	app := newTestApp()
	app.Flags.Yes = true
	ok, err := app.Confirm(cmd, false, "prompt? ")
	if err != nil || !ok {
		t.Fatalf("Confirm with --yes = %v, %v", ok, err)
	}

	app = newTestApp()
	ok, err = app.Confirm(cmd, true, "prompt? ")
	if err != nil || !ok {
		t.Fatalf("Confirm with skip = %v, %v", ok, err)
	}
}

func TestMapCommandError(t *testing.T) {
	notFound := &ResultError{Op: "fetch post 1", Message: "gone", Cause: &transport.HTTPError{StatusCode: http.StatusNotFound}}
	deadline := transport.NewError("GET /posts/1", context.DeadlineExceeded)
	plain := errors.New("plain")
	suggested := cerrors.WithSuggestion(errors.New("x"), "keep me")

	tests := []struct {
		name string
		err  error
		want string
	}{
		{"not found", notFound, cerrors.SuggestionListRules},
		{"deadline", deadline, cerrors.SuggestionTimeout},
		{"plain", plain, ""},
		{"existing suggestion", suggested, "keep me"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := mapCommandError(tt.err)
			if cerrors.GetSuggestion(got) != tt.want {
				t.Errorf("suggestion = %q, want %q", cerrors.GetSuggestion(got), tt.want)
			}
			if !errors.Is(got, tt.err) {
				t.Errorf("mapped error lost the original")
			}
		})
	}

	if mapCommandError(nil) != nil {
		t.Error("mapCommandError(nil) != nil")
	}
}

func TestResultErr(t *testing.T) {
	if err := resultErr("op", result.Success(1)); err != nil {
		t.Errorf("success produced %v", err)
	}
	if err := resultErr("op", result.Loading[int]()); err != nil {
		t.Errorf("loading produced %v", err)
	}

	cause := errors.New("boom")
	err := resultErr("fetch post 3", result.Error[int](cause, "Network or unexpected error: boom"))
	var re *ResultError
	if !errors.As(err, &re) {
		t.Fatalf("err = %T, want *ResultError", err)
	}
	if err.Error() != "fetch post 3: Network or unexpected error: boom" {
		t.Errorf("Error() = %q", err.Error())
	}
	if !errors.Is(err, cause) {
		t.Error("ResultError does not unwrap to its cause")
	}
}

func TestRoute_TextQueryFiltersBody(t *testing.T) {
	setupTestEnvironment(t)

	stdout, _, err := runCLI(t, "--query", ".title", "route", "GET", "/posts/3")
	if err != nil {
		t.Fatalf("Execute returned error: %v", err)
	}
	if !strings.HasPrefix(stdout, "200 OK  rule=get-post") {
		t.Errorf("status line = %q", stdout)
	}
	if !strings.Contains(stdout, "content-type: application/json") {
		t.Errorf("stdout lacks header: %q", stdout)
	}
	if !strings.HasSuffix(strings.TrimSpace(stdout), `"Mocked GET Post 3"`) {
		t.Errorf("body not filtered: %q", stdout)
	}
}

func TestQuery_StructuredOutputs(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"rules", []string{"--output=json", "--query", ".rules[0].name", "rules"}, `"get-post"`},
		{"rules fallback", []string{"--output=json", "--query", ".rules[4].fallback", "rules"}, `true`},
		{"demo", []string{"--output=json", "--query", ".steps[0].status", "demo"}, `"success"`},
		{"demo last step", []string{"--output=json", "--query", ".steps[4].result.status", "demo"}, `"error"`},
		{"dry run", []string{"--output=json", "--query", ".request | type", "posts", "update", "5", "--dry-run", "--title", "t", "--body", "b"}, `"array"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setupTestEnvironment(t)

			stdout, stderr, err := runCLI(t, tt.args...)
			if err != nil {
				t.Fatalf("Execute returned error: %v; stderr=%q", err, stderr)
			}
			if strings.TrimSpace(stdout) != tt.want {
				t.Fatalf("stdout = %q, want %s", stdout, tt.want)
			}
		})
	}
}
