package memory

import (
	"bytes"
	"context"
	"io"
	"sync"

	"github.com/tendant/simple-site/pkg/simplesite"
)

// Backend is an in-memory implementation of the simplesite.BlobStore
// interface, intended for development and tests.
type Backend struct {
	mu        sync.RWMutex
	objects   map[string][]byte
	mimeTypes map[string]string
}

// New creates a new in-memory storage backend
func New() *Backend {
	return &Backend{
		objects:   make(map[string][]byte),
		mimeTypes: make(map[string]string),
	}
}

// Upload stores the blob in memory
func (b *Backend) Upload(ctx context.Context, reader io.Reader, params simplesite.UploadParams) error {
	data, err := io.ReadAll(reader)
	if err != nil {
		return err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	b.objects[params.ObjectKey] = data
	mimeType := params.MimeType
	if mimeType == "" {
		mimeType = "application/octet-stream"
	}
	b.mimeTypes[params.ObjectKey] = mimeType
	return nil
}

// GetURL returns a pseudo-URL for the stored blob. The memory backend has no
// HTTP surface; the scheme makes that visible in logs and tests.
func (b *Backend) GetURL(ctx context.Context, objectKey string) (string, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if _, exists := b.objects[objectKey]; !exists {
		return "", simplesite.ErrImageNotFound
	}
	return "memory://" + objectKey, nil
}

// Download retrieves the blob directly
func (b *Backend) Download(ctx context.Context, objectKey string) (io.ReadCloser, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	data, exists := b.objects[objectKey]
	if !exists {
		return nil, simplesite.ErrImageNotFound
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

// Delete removes the blob
func (b *Backend) Delete(ctx context.Context, objectKey string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, exists := b.objects[objectKey]; !exists {
		return simplesite.ErrImageNotFound
	}
	delete(b.objects, objectKey)
	delete(b.mimeTypes, objectKey)
	return nil
}

// MimeType reports the stored MIME type for a key. Test helper.
func (b *Backend) MimeType(objectKey string) string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.mimeTypes[objectKey]
}
