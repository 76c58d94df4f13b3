package posts

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestEncode(t *testing.T) {
	tests := []struct {
		name string
		post Post
		want string
	}{
		{
			name: "with id",
			post: New(1, "Title", "Body").WithID(42),
			want: `{"id": 42, "userId": 1, "title": "Title", "body": "Body"}`,
		},
		{
			name: "without id",
			post: New(7, "Draft", "Content"),
			want: `{"id": null, "userId": 7, "title": "Draft", "body": "Content"}`,
		},
		{
			name: "escapes quotes",
			post: New(1, `say "hi"`, "line\nbreak"),
			want: `{"id": null, "userId": 1, "title": "say \"hi\"", "body": "line\nbreak"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := string(Encode(tt.post))
			if got != tt.want {
				t.Errorf("Encode() = %s, want %s", got, tt.want)
			}
			if !json.Valid([]byte(got)) {
				t.Errorf("Encode() produced invalid JSON: %s", got)
			}
		})
	}
}

func TestDecode(t *testing.T) {
	p, err := Decode([]byte(`{"id": 5, "userId": 1, "title": "Updated Title Mock", "body": "Mocked PUT successful"}`))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if !p.HasID() || p.IDValue() != 5 {
		t.Errorf("ID = %v, want 5", p.ID)
	}
	if p.Title != "Updated Title Mock" {
		t.Errorf("Title = %q", p.Title)
	}
}

func TestDecode_NullID(t *testing.T) {
	p, err := Decode([]byte(`{"id": null, "userId": 3, "title": "t", "body": "b"}`))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if p.HasID() {
		t.Errorf("expected no id, got %d", p.IDValue())
	}
}

func TestDecode_MissingFields(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"missing userId", `{"id": 1, "title": "t", "body": "b"}`},
		{"missing title", `{"id": 1, "userId": 1, "body": "b"}`},
		{"missing body", `{"id": 1, "userId": 1, "title": "t"}`},
		{"error shape", `{"error": "Not Found"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode([]byte(tt.input))
			if !errors.Is(err, ErrMissingField) {
				t.Errorf("Decode() error = %v, want ErrMissingField", err)
			}
		})
	}
}

func TestDecode_Malformed(t *testing.T) {
	if _, err := Decode([]byte(`{"id": `)); err == nil {
		t.Fatal("expected error for truncated JSON")
	}
}

func TestPost_JSONRoundTrip(t *testing.T) {
	in := New(2, "a", "b").WithID(9)
	data, err := json.Marshal(in)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	var out Post
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if out.IDValue() != 9 || out.UserID != 2 || out.Title != "a" || out.Body != "b" {
		t.Errorf("round trip mismatch: %+v", out)
	}
}
