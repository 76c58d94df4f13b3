// Package posts defines the Post resource and its JSON encoding.
package posts

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
)

// Post is the single resource exposed by the mock API.
// A nil ID marks a post that has not been assigned an id yet.
type Post struct {
	ID     *int   `json:"id"`
	UserID int    `json:"userId"`
	Title  string `json:"title"`
	Body   string `json:"body"`
}

// ErrMissingField indicates a required field was absent from an encoded post.
var ErrMissingField = errors.New("missing required field")

// New returns an unsaved post.
func New(userID int, title, body string) Post {
	return Post{UserID: userID, Title: title, Body: body}
}

// WithID returns a copy of p addressed by id.
func (p Post) WithID(id int) Post {
	p.ID = &id
	return p
}

// HasID reports whether the post has been assigned an id.
func (p Post) HasID() bool {
	return p.ID != nil
}

// IDValue returns the post id, or 0 when unassigned.
func (p Post) IDValue() int {
	if p.ID == nil {
		return 0
	}
	return *p.ID
}

// Encode renders p in the canonical template layout:
//
//	{"id": 42, "userId": 1, "title": "...", "body": "..."}
func Encode(p Post) []byte {
	var buf bytes.Buffer
	buf.WriteString(`{"id": `)
	if p.ID != nil {
		buf.WriteString(strconv.Itoa(*p.ID))
	} else {
		buf.WriteString("null")
	}
	buf.WriteString(`, "userId": `)
	buf.WriteString(strconv.Itoa(p.UserID))
	buf.WriteString(`, "title": `)
	writeString(&buf, p.Title)
	buf.WriteString(`, "body": `)
	writeString(&buf, p.Body)
	buf.WriteString("}")
	return buf.Bytes()
}

func writeString(buf *bytes.Buffer, s string) {
	// Marshalling a string cannot fail.
	b, _ := json.Marshal(s) //nolint:errcheck
	buf.Write(b)
}

// MarshalJSON implements json.Marshaler using the canonical layout.
func (p Post) MarshalJSON() ([]byte, error) {
	return Encode(p), nil
}

type wirePost struct {
	ID     *int    `json:"id"`
	UserID *int    `json:"userId"`
	Title  *string `json:"title"`
	Body   *string `json:"body"`
}

// Decode parses an encoded post. userId, title and body are required.
func Decode(data []byte) (Post, error) {
	var w wirePost
	if err := json.Unmarshal(data, &w); err != nil {
		return Post{}, fmt.Errorf("decode post: %w", err)
	}
	switch {
	case w.UserID == nil:
		return Post{}, fmt.Errorf("decode post: %w: userId", ErrMissingField)
	case w.Title == nil:
		return Post{}, fmt.Errorf("decode post: %w: title", ErrMissingField)
	case w.Body == nil:
		return Post{}, fmt.Errorf("decode post: %w: body", ErrMissingField)
	}
	return Post{
		ID:     w.ID,
		UserID: *w.UserID,
		Title:  *w.Title,
		Body:   *w.Body,
	}, nil
}

// UnmarshalJSON implements json.Unmarshaler with Decode's required-field checks.
func (p *Post) UnmarshalJSON(data []byte) error {
	decoded, err := Decode(data)
	if err != nil {
		return err
	}
	*p = decoded
	return nil
}
