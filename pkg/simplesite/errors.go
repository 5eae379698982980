package simplesite

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
)

// Error types
var (
	// ErrPostNotFound indicates a post was not found
	ErrPostNotFound = errors.New("post not found")

	// ErrDuplicateSlug indicates the durable unique constraint on the slug
	// rejected a write. The probe loop makes this rare but two concurrent
	// creations can both pass the probe; the caller should retry.
	ErrDuplicateSlug = errors.New("slug already in use")

	// ErrInvalidPostStatus indicates an unknown post status value
	ErrInvalidPostStatus = errors.New("invalid post status")

	// ErrSubscriberNotFound indicates a subscriber was not found
	ErrSubscriberNotFound = errors.New("subscriber not found")

	// ErrDuplicateEmail indicates the email address is already subscribed
	ErrDuplicateEmail = errors.New("email already subscribed")

	// ErrMessageNotFound indicates a contact message was not found
	ErrMessageNotFound = errors.New("contact message not found")

	// ErrImageNotFound indicates an image was not found in the blob store
	ErrImageNotFound = errors.New("image not found")

	// ErrMailDelivery indicates an outbound email could not be handed to the
	// mail provider. State already persisted before the send is kept.
	ErrMailDelivery = errors.New("mail delivery failed")
)

// PostError represents an error related to post operations
type PostError struct {
	PostID uuid.UUID
	Op     string
	Err    error
}

func (e *PostError) Error() string {
	return fmt.Sprintf("post operation %s failed for post %s: %v", e.Op, e.PostID, e.Err)
}

func (e *PostError) Unwrap() error {
	return e.Err
}

// StorageError represents an error related to image storage operations
type StorageError struct {
	Key string
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage operation %s failed for key %s: %v", e.Op, e.Key, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// ValidationError carries field-level validation failures for a request. It is
// resolved at the HTTP boundary into a 400 response with per-field detail.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "validation failed"
	}
	parts := make([]string, 0, len(e.Fields))
	for field, msg := range e.Fields {
		parts = append(parts, fmt.Sprintf("%s: %s", field, msg))
	}
	sort.Strings(parts)
	return "validation failed: " + strings.Join(parts, "; ")
}
