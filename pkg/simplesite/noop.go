package simplesite

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
)

// NoopEventSink is a no-operation implementation of EventSink
// Useful when you don't need event handling or for testing
type NoopEventSink struct{}

// NewNoopEventSink creates a new no-operation event sink
func NewNoopEventSink() EventSink {
	return &NoopEventSink{}
}

// PostCreated does nothing and returns nil
func (n *NoopEventSink) PostCreated(ctx context.Context, post *Post) error {
	return nil
}

// PostUpdated does nothing and returns nil
func (n *NoopEventSink) PostUpdated(ctx context.Context, post *Post) error {
	return nil
}

// PostPublished does nothing and returns nil
func (n *NoopEventSink) PostPublished(ctx context.Context, post *Post) error {
	return nil
}

// PostDeleted does nothing and returns nil
func (n *NoopEventSink) PostDeleted(ctx context.Context, postID uuid.UUID) error {
	return nil
}

// LoggingEventSink writes post lifecycle events to slog
type LoggingEventSink struct {
	logger *slog.Logger
}

// NewLoggingEventSink creates an event sink backed by the given logger.
// A nil logger falls back to slog.Default().
func NewLoggingEventSink(logger *slog.Logger) EventSink {
	if logger == nil {
		logger = slog.Default()
	}
	return &LoggingEventSink{logger: logger}
}

func (l *LoggingEventSink) PostCreated(ctx context.Context, post *Post) error {
	l.logger.InfoContext(ctx, "post created", "post_id", post.ID.String(), "slug", post.Slug)
	return nil
}

func (l *LoggingEventSink) PostUpdated(ctx context.Context, post *Post) error {
	l.logger.InfoContext(ctx, "post updated", "post_id", post.ID.String(), "slug", post.Slug)
	return nil
}

func (l *LoggingEventSink) PostPublished(ctx context.Context, post *Post) error {
	l.logger.InfoContext(ctx, "post published", "post_id", post.ID.String(), "slug", post.Slug, "published_at", post.PublishedAt)
	return nil
}

func (l *LoggingEventSink) PostDeleted(ctx context.Context, postID uuid.UUID) error {
	l.logger.InfoContext(ctx, "post deleted", "post_id", postID.String())
	return nil
}

// NoopMailer is a no-operation implementation of Mailer
// Useful for development and testing
type NoopMailer struct{}

// NewNoopMailer creates a new no-operation mailer
func NewNoopMailer() Mailer {
	return &NoopMailer{}
}

// Send does nothing and returns nil
func (n *NoopMailer) Send(ctx context.Context, email *Email) error {
	return nil
}
