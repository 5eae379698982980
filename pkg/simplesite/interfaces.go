package simplesite

import (
	"context"
	"io"

	"github.com/google/uuid"
)

// Repository defines the interface for site persistence. Implementations must
// enforce a durable uniqueness constraint on Post.Slug and Subscriber.Email:
// a write that would violate them returns ErrDuplicateSlug or
// ErrDuplicateEmail. The probe loop in the save pipeline only reduces how
// often that happens.
type Repository interface {
	// Post operations
	CreatePost(ctx context.Context, post *Post) error
	GetPost(ctx context.Context, id uuid.UUID) (*Post, error)
	GetPostBySlug(ctx context.Context, slug string) (*Post, error)
	// FindPostBySlug is the collision probe: it looks up a post by slug
	// excluding the given post identity, so a title edit does not collide
	// with the post's own current slug. Returns ErrPostNotFound when the
	// slug is free.
	FindPostBySlug(ctx context.Context, slug string, excludeID uuid.UUID) (*Post, error)
	UpdatePost(ctx context.Context, post *Post) error
	DeletePost(ctx context.Context, id uuid.UUID) error
	ListPosts(ctx context.Context, filters PostFilters) ([]*Post, error)
	CountPosts(ctx context.Context, filters PostFilters) (int64, error)
	IncrementPostViews(ctx context.Context, id uuid.UUID) error

	// Subscriber operations
	CreateSubscriber(ctx context.Context, sub *Subscriber) error
	GetSubscriberByEmail(ctx context.Context, email string) (*Subscriber, error)
	UpdateSubscriber(ctx context.Context, sub *Subscriber) error
	ListSubscribers(ctx context.Context) ([]*Subscriber, error)

	// Contact message operations
	CreateContactMessage(ctx context.Context, msg *ContactMessage) error
	ListContactMessages(ctx context.Context) ([]*ContactMessage, error)

	// Statistics
	GetSiteStats(ctx context.Context) (*SiteStats, error)
}

// BlobStore defines the interface for image blob backends
type BlobStore interface {
	// Upload stores the blob under the given parameters
	Upload(ctx context.Context, reader io.Reader, params UploadParams) error

	// GetURL returns a URL under which the stored blob can be fetched
	GetURL(ctx context.Context, objectKey string) (string, error)

	// Download retrieves the blob directly
	Download(ctx context.Context, objectKey string) (io.ReadCloser, error)

	// Delete removes the blob
	Delete(ctx context.Context, objectKey string) error
}

// UploadParams contains parameters for uploading a blob
type UploadParams struct {
	ObjectKey string
	MimeType  string
}

// Email represents a fully-prepared email message ready for sending.
type Email struct {
	To      []string
	ReplyTo string
	Subject string
	HTML    string
	Text    string
}

// Mailer defines the minimal interface an email provider must implement.
// The Email must have To and Subject already set; delivery failures are
// returned, never retried here.
type Mailer interface {
	Send(ctx context.Context, email *Email) error
}

// EventSink defines the interface for post lifecycle event handling
type EventSink interface {
	// PostCreated is fired when a post is created
	PostCreated(ctx context.Context, post *Post) error

	// PostUpdated is fired when a post is updated
	PostUpdated(ctx context.Context, post *Post) error

	// PostPublished is fired on the first transition into published
	PostPublished(ctx context.Context, post *Post) error

	// PostDeleted is fired when a post is deleted
	PostDeleted(ctx context.Context, postID uuid.UUID) error
}
