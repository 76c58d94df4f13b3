package api

import (
	"context"

	"github.com/salmonumbrella/postmock/internal/posts"
	"github.com/salmonumbrella/postmock/internal/result"
	"github.com/salmonumbrella/postmock/internal/transport"
)

// PostService defines the posts operations.
// This interface enables unit testing without the router by allowing mock implementations.
type PostService interface {
	// GetPost retrieves a post by id
	GetPost(ctx context.Context, id int) (*transport.Reply[posts.Post], error)

	// CreatePost submits a new post
	CreatePost(ctx context.Context, post posts.Post) (*transport.Reply[posts.Post], error)

	// UpdatePost replaces an existing post
	UpdatePost(ctx context.Context, id int, post posts.Post) (*transport.Reply[posts.Post], error)

	// DeletePost deletes a post by id
	DeletePost(ctx context.Context, id int) (*transport.Reply[result.Unit], error)
}
