package api

import (
	"context"

	"github.com/salmonumbrella/postmock/internal/posts"
	"github.com/salmonumbrella/postmock/internal/result"
	"github.com/salmonumbrella/postmock/internal/transport"
)

// MockPostService implements PostService for testing.
// Each method can be overridden by setting the corresponding Func field.
// If a Func is not set, the method returns nil values.
type MockPostService struct {
	GetPostFunc    func(ctx context.Context, id int) (*transport.Reply[posts.Post], error)
	CreatePostFunc func(ctx context.Context, post posts.Post) (*transport.Reply[posts.Post], error)
	UpdatePostFunc func(ctx context.Context, id int, post posts.Post) (*transport.Reply[posts.Post], error)
	DeletePostFunc func(ctx context.Context, id int) (*transport.Reply[result.Unit], error)
}

var _ PostService = (*MockPostService)(nil)

func (m *MockPostService) GetPost(ctx context.Context, id int) (*transport.Reply[posts.Post], error) {
	if m.GetPostFunc != nil {
		return m.GetPostFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockPostService) CreatePost(ctx context.Context, post posts.Post) (*transport.Reply[posts.Post], error) {
	if m.CreatePostFunc != nil {
		return m.CreatePostFunc(ctx, post)
	}
	return nil, nil
}

func (m *MockPostService) UpdatePost(ctx context.Context, id int, post posts.Post) (*transport.Reply[posts.Post], error) {
	if m.UpdatePostFunc != nil {
		return m.UpdatePostFunc(ctx, id, post)
	}
	return nil, nil
}

func (m *MockPostService) DeletePost(ctx context.Context, id int) (*transport.Reply[result.Unit], error) {
	if m.DeletePostFunc != nil {
		return m.DeletePostFunc(ctx, id)
	}
	return nil, nil
}
