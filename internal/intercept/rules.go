package intercept

import (
	"fmt"
	"net/http"

	"github.com/salmonumbrella/postmock/internal/posts"
)

const (
	postsPath   = "/posts"
	postsPrefix = "/posts/"

	// CreatedPostID is the id assigned to every created post.
	CreatedPostID = 101
	// UpdatedPostID is the id echoed by every update, whatever the path says.
	UpdatedPostID = 5

	mockUserID = 1
)

// DefaultRules returns the posts endpoint table.
func DefaultRules() []Rule {
	return []Rule{
		{
			Name:    "get-post",
			Pattern: "/posts/{id}",
			Method:  MethodIs(MethodGet),
			Path:    PathWithNumericID(postsPrefix),
			Build:   buildGetPost,
		},
		{
			Name:    "create-post",
			Pattern: "/posts",
			Method:  MethodIs(MethodPost),
			Path:    PathEquals(postsPath),
			Build:   buildCreatePost,
		},
		{
			Name:    "update-post",
			Pattern: "/posts/{id}",
			Method:  MethodIs(MethodPut),
			Path:    PathWithNumericID(postsPrefix),
			Build:   buildUpdatePost,
		},
		{
			Name:    "delete-post",
			Pattern: "/posts/{id}",
			Method:  MethodIs(MethodDelete),
			Path:    PathWithNumericID(postsPrefix),
			Build:   buildDeletePost,
		},
	}
}

func buildGetPost(req Request) (Response, error) {
	id, err := IDFromPath(postsPrefix, req.Path)
	if err != nil {
		return Response{}, err
	}
	p := posts.New(
		mockUserID,
		fmt.Sprintf("Mocked GET Post %d", id),
		"This post content was generated locally by the MockInterceptor.",
	).WithID(id)
	return jsonResponse(http.StatusOK, posts.Encode(p)), nil
}

// The submitted body is ignored; the reply is a fixed created post.
func buildCreatePost(Request) (Response, error) {
	p := posts.New(mockUserID, "New Post Success", "Mocked POST successful").WithID(CreatedPostID)
	return jsonResponse(http.StatusCreated, posts.Encode(p)), nil
}

// The reply does not reflect the path id or the submitted body.
func buildUpdatePost(Request) (Response, error) {
	p := posts.New(mockUserID, "Updated Title Mock", "Mocked PUT successful").WithID(UpdatedPostID)
	return jsonResponse(http.StatusOK, posts.Encode(p)), nil
}

func buildDeletePost(Request) (Response, error) {
	return jsonResponse(http.StatusNoContent, nil), nil
}
