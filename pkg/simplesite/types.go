package simplesite

import (
	"time"

	"github.com/google/uuid"
)

// PostStatus is the domain type for post lifecycle states.
type PostStatus string

// Post status constants (typed).
const (
	PostStatusDraft     PostStatus = "draft"
	PostStatusPublished PostStatus = "published"
	PostStatusArchived  PostStatus = "archived"
)

// IsValid reports whether the status is one of the known lifecycle states.
func (s PostStatus) IsValid() bool {
	switch s {
	case PostStatusDraft, PostStatusPublished, PostStatusArchived:
		return true
	default:
		return false
	}
}

// Post represents a publishable blog post.
//
// Slug is derived from Title and is unique across all posts; it changes only
// when the title changes. PublishedAt records the first transition into
// "published" and is never cleared afterwards, so archiving keeps the
// historical publication date. ReadTime is an estimate in whole minutes,
// recomputed whenever Content changes.
type Post struct {
	ID          uuid.UUID  `json:"id"`
	Title       string     `json:"title"`
	Slug        string     `json:"slug"`
	Excerpt     string     `json:"excerpt,omitempty"`
	Content     string     `json:"content"`
	Author      string     `json:"author,omitempty"`
	Category    string     `json:"category"`
	Tags        []string   `json:"tags,omitempty"`
	Status      string     `json:"status"`
	Featured    bool       `json:"featured"`
	Views       int64      `json:"views"`
	ReadTime    int        `json:"read_time"`
	PublishedAt *time.Time `json:"published_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// Subscriber represents a newsletter subscriber. Email is unique across all
// subscribers; unsubscribing keeps the row and stamps UnsubscribedAt so the
// address can resubscribe later.
type Subscriber struct {
	ID             uuid.UUID  `json:"id"`
	Email          string     `json:"email"`
	SubscribedAt   time.Time  `json:"subscribed_at"`
	UnsubscribedAt *time.Time `json:"unsubscribed_at,omitempty"`
}

// Active reports whether the subscriber currently receives the newsletter.
func (s *Subscriber) Active() bool {
	return s.UnsubscribedAt == nil
}

// ContactMessage represents a message submitted through the contact form.
type ContactMessage struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Subject   string    `json:"subject,omitempty"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

// Image represents an uploaded image stored in a blob backend. Images are not
// tracked in the repository; the object key and URL are the identity.
type Image struct {
	Key      string `json:"key"`
	URL      string `json:"url"`
	FileName string `json:"file_name,omitempty"`
	MimeType string `json:"mime_type,omitempty"`
	Size     int64  `json:"size"`
}

// SiteStats contains aggregate counts for the public statistics endpoint.
type SiteStats struct {
	TotalPosts     int64 `json:"total_posts"`
	PublishedPosts int64 `json:"published_posts"`
	DraftPosts     int64 `json:"draft_posts"`
	ArchivedPosts  int64 `json:"archived_posts"`
	TotalViews     int64 `json:"total_views"`
	Subscribers    int64 `json:"subscribers"`
}

// PostFilters defines filtering options for listing posts.
type PostFilters struct {
	Status   *string
	Category *string
	Featured *bool
	Limit    *int
	Offset   *int
}
