package repository

import (
	"context"

	"github.com/salmonumbrella/postmock/internal/api"
	"github.com/salmonumbrella/postmock/internal/posts"
	"github.com/salmonumbrella/postmock/internal/result"
	"github.com/salmonumbrella/postmock/internal/transport"
)

// PostRepository is the contract application code uses for posts.
// The error return is non-nil only when ctx was cancelled.
type PostRepository interface {
	FetchPost(ctx context.Context, id int) (result.Result[posts.Post], error)
	CreateNewPost(ctx context.Context, post posts.Post) (result.Result[posts.Post], error)
	UpdatePost(ctx context.Context, id int, post posts.Post) (result.Result[posts.Post], error)
	DeletePost(ctx context.Context, id int) (result.Result[result.Unit], error)
}

// Repository implements PostRepository over a posts API.
type Repository struct {
	service api.PostService
}

var _ PostRepository = (*Repository)(nil)

// New returns a repository backed by service.
func New(service api.PostService) *Repository {
	return &Repository{service: service}
}

func (r *Repository) FetchPost(ctx context.Context, id int) (result.Result[posts.Post], error) {
	return SafeCall(ctx, func(ctx context.Context) (*transport.Reply[posts.Post], error) {
		return r.service.GetPost(ctx, id)
	})
}

func (r *Repository) CreateNewPost(ctx context.Context, post posts.Post) (result.Result[posts.Post], error) {
	return SafeCall(ctx, func(ctx context.Context) (*transport.Reply[posts.Post], error) {
		return r.service.CreatePost(ctx, post)
	})
}

func (r *Repository) UpdatePost(ctx context.Context, id int, post posts.Post) (result.Result[posts.Post], error) {
	return SafeCall(ctx, func(ctx context.Context) (*transport.Reply[posts.Post], error) {
		return r.service.UpdatePost(ctx, id, post)
	})
}

// DeletePost succeeds with result.Unit on 204 No Content.
func (r *Repository) DeletePost(ctx context.Context, id int) (result.Result[result.Unit], error) {
	return SafeCall(ctx, func(ctx context.Context) (*transport.Reply[result.Unit], error) {
		return r.service.DeletePost(ctx, id)
	})
}
