package simplesite

import "github.com/google/uuid"

// Request/Response DTOs
//
// The json tags double as the field names reported in validation errors.

// CreatePostRequest contains parameters for creating a new post. Status
// defaults to draft when empty.
type CreatePostRequest struct {
	Title    string   `json:"title"`
	Excerpt  string   `json:"excerpt"`
	Content  string   `json:"content"`
	Author   string   `json:"author"`
	Category string   `json:"category"`
	Tags     []string `json:"tags"`
	Status   string   `json:"status"`
	Featured bool     `json:"featured"`
}

// UpdatePostRequest contains parameters for updating a post. Nil fields are
// left unchanged; the save pipeline re-derives the slug only when Title
// actually differs from the persisted value.
type UpdatePostRequest struct {
	ID       uuid.UUID `json:"id"`
	Title    *string   `json:"title"`
	Excerpt  *string   `json:"excerpt"`
	Content  *string   `json:"content"`
	Author   *string   `json:"author"`
	Category *string   `json:"category"`
	Tags     []string  `json:"tags"`
	Status   *string   `json:"status"`
	Featured *bool     `json:"featured"`
}

// ListPostsRequest contains parameters for listing posts
type ListPostsRequest struct {
	Status   string
	Category string
	Featured *bool
	Limit    int
	Offset   int
}

// SubscribeRequest contains parameters for subscribing to the newsletter
type SubscribeRequest struct {
	Email string `json:"email"`
}

// ContactRequest contains parameters submitted through the contact form
type ContactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

// UploadImageRequest contains parameters for uploading an image
type UploadImageRequest struct {
	FileName string `json:"file_name"`
	MimeType string `json:"mime_type"`
	Size     int64  `json:"size"`
}
