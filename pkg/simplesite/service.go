package simplesite

import (
	"context"
	"io"

	"github.com/google/uuid"
)

// Service is the main interface for the site backend
type Service interface {
	// Post operations
	CreatePost(ctx context.Context, req CreatePostRequest) (*Post, error)
	UpdatePost(ctx context.Context, req UpdatePostRequest) (*Post, error)
	DeletePost(ctx context.Context, id uuid.UUID) error
	GetPost(ctx context.Context, id uuid.UUID) (*Post, error)
	// GetPublishedPost resolves a published post by slug and increments its
	// view counter. Unpublished posts are reported as not found.
	GetPublishedPost(ctx context.Context, slug string) (*Post, error)
	ListPosts(ctx context.Context, req ListPostsRequest) ([]*Post, error)

	// Subscriber operations
	Subscribe(ctx context.Context, req SubscribeRequest) (*Subscriber, error)
	Unsubscribe(ctx context.Context, email string) error
	ListSubscribers(ctx context.Context) ([]*Subscriber, error)

	// Contact operations
	SubmitContactMessage(ctx context.Context, req ContactRequest) (*ContactMessage, error)
	ListContactMessages(ctx context.Context) ([]*ContactMessage, error)

	// Image operations
	UploadImage(ctx context.Context, reader io.Reader, req UploadImageRequest) (*Image, error)
	DeleteImage(ctx context.Context, key string) error

	// Statistics
	GetSiteStats(ctx context.Context) (*SiteStats, error)
}
