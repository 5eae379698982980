package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/tendant/simple-site/pkg/simplesite"
)

// Repository implements simplesite.Repository using in-memory storage.
// The slug and email indexes are maintained under the write lock, so the
// uniqueness guarantees match what the PostgreSQL unique indexes provide.
type Repository struct {
	mu          sync.RWMutex
	posts       map[uuid.UUID]*simplesite.Post
	slugIndex   map[string]uuid.UUID // slug -> post_id
	subscribers map[uuid.UUID]*simplesite.Subscriber
	emailIndex  map[string]uuid.UUID // email -> subscriber_id
	messages    map[uuid.UUID]*simplesite.ContactMessage
}

// New creates a new in-memory repository
func New() simplesite.Repository {
	return &Repository{
		posts:       make(map[uuid.UUID]*simplesite.Post),
		slugIndex:   make(map[string]uuid.UUID),
		subscribers: make(map[uuid.UUID]*simplesite.Subscriber),
		emailIndex:  make(map[string]uuid.UUID),
		messages:    make(map[uuid.UUID]*simplesite.ContactMessage),
	}
}

// Post operations

func (r *Repository) CreatePost(ctx context.Context, post *simplesite.Post) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, exists := r.slugIndex[post.Slug]; exists && existing != post.ID {
		return simplesite.ErrDuplicateSlug
	}

	// Create a copy to avoid external modifications
	postCopy := clonePost(post)
	r.posts[post.ID] = postCopy
	r.slugIndex[post.Slug] = post.ID

	return nil
}

func (r *Repository) GetPost(ctx context.Context, id uuid.UUID) (*simplesite.Post, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	post, exists := r.posts[id]
	if !exists {
		return nil, simplesite.ErrPostNotFound
	}
	return clonePost(post), nil
}

func (r *Repository) GetPostBySlug(ctx context.Context, slug string) (*simplesite.Post, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, exists := r.slugIndex[slug]
	if !exists {
		return nil, simplesite.ErrPostNotFound
	}
	return clonePost(r.posts[id]), nil
}

func (r *Repository) FindPostBySlug(ctx context.Context, slug string, excludeID uuid.UUID) (*simplesite.Post, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, exists := r.slugIndex[slug]
	if !exists || id == excludeID {
		return nil, simplesite.ErrPostNotFound
	}
	return clonePost(r.posts[id]), nil
}

func (r *Repository) UpdatePost(ctx context.Context, post *simplesite.Post) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, exists := r.posts[post.ID]
	if !exists {
		return simplesite.ErrPostNotFound
	}

	if owner, taken := r.slugIndex[post.Slug]; taken && owner != post.ID {
		return simplesite.ErrDuplicateSlug
	}

	// Reindex when the slug changed
	if current.Slug != post.Slug {
		delete(r.slugIndex, current.Slug)
		r.slugIndex[post.Slug] = post.ID
	}

	// Preserve the view counter; it is owned by IncrementPostViews
	views := current.Views
	postCopy := clonePost(post)
	postCopy.Views = views
	r.posts[post.ID] = postCopy

	return nil
}

func (r *Repository) DeletePost(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	post, exists := r.posts[id]
	if !exists {
		return simplesite.ErrPostNotFound
	}

	delete(r.slugIndex, post.Slug)
	delete(r.posts, id)
	return nil
}

func (r *Repository) ListPosts(ctx context.Context, filters simplesite.PostFilters) ([]*simplesite.Post, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []*simplesite.Post
	for _, post := range r.posts {
		if !matchesFilters(post, filters) {
			continue
		}
		result = append(result, clonePost(post))
	}

	// Sort by created_at descending
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})

	offset := 0
	if filters.Offset != nil {
		offset = *filters.Offset
	}
	if offset >= len(result) {
		return nil, nil
	}
	result = result[offset:]

	if filters.Limit != nil && *filters.Limit < len(result) {
		result = result[:*filters.Limit]
	}

	return result, nil
}

func (r *Repository) CountPosts(ctx context.Context, filters simplesite.PostFilters) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var count int64
	for _, post := range r.posts {
		if matchesFilters(post, filters) {
			count++
		}
	}
	return count, nil
}

func (r *Repository) IncrementPostViews(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	post, exists := r.posts[id]
	if !exists {
		return simplesite.ErrPostNotFound
	}
	post.Views++
	return nil
}

// Subscriber operations

func (r *Repository) CreateSubscriber(ctx context.Context, sub *simplesite.Subscriber) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.emailIndex[sub.Email]; exists {
		return simplesite.ErrDuplicateEmail
	}

	subCopy := *sub
	r.subscribers[sub.ID] = &subCopy
	r.emailIndex[sub.Email] = sub.ID
	return nil
}

func (r *Repository) GetSubscriberByEmail(ctx context.Context, email string) (*simplesite.Subscriber, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, exists := r.emailIndex[email]
	if !exists {
		return nil, simplesite.ErrSubscriberNotFound
	}
	subCopy := *r.subscribers[id]
	return &subCopy, nil
}

func (r *Repository) UpdateSubscriber(ctx context.Context, sub *simplesite.Subscriber) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.subscribers[sub.ID]; !exists {
		return simplesite.ErrSubscriberNotFound
	}

	subCopy := *sub
	r.subscribers[sub.ID] = &subCopy
	return nil
}

func (r *Repository) ListSubscribers(ctx context.Context) ([]*simplesite.Subscriber, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []*simplesite.Subscriber
	for _, sub := range r.subscribers {
		subCopy := *sub
		result = append(result, &subCopy)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].SubscribedAt.After(result[j].SubscribedAt)
	})

	return result, nil
}

// Contact message operations

func (r *Repository) CreateContactMessage(ctx context.Context, msg *simplesite.ContactMessage) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	msgCopy := *msg
	r.messages[msg.ID] = &msgCopy
	return nil
}

func (r *Repository) ListContactMessages(ctx context.Context) ([]*simplesite.ContactMessage, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []*simplesite.ContactMessage
	for _, msg := range r.messages {
		msgCopy := *msg
		result = append(result, &msgCopy)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})

	return result, nil
}

// Statistics

func (r *Repository) GetSiteStats(ctx context.Context) (*simplesite.SiteStats, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stats := &simplesite.SiteStats{}
	for _, post := range r.posts {
		stats.TotalPosts++
		stats.TotalViews += post.Views
		switch simplesite.PostStatus(post.Status) {
		case simplesite.PostStatusPublished:
			stats.PublishedPosts++
		case simplesite.PostStatusDraft:
			stats.DraftPosts++
		case simplesite.PostStatusArchived:
			stats.ArchivedPosts++
		}
	}
	for _, sub := range r.subscribers {
		if sub.Active() {
			stats.Subscribers++
		}
	}

	return stats, nil
}

// Helpers

func clonePost(post *simplesite.Post) *simplesite.Post {
	postCopy := *post
	if post.Tags != nil {
		postCopy.Tags = append([]string(nil), post.Tags...)
	}
	if post.PublishedAt != nil {
		t := *post.PublishedAt
		postCopy.PublishedAt = &t
	}
	return &postCopy
}

func matchesFilters(post *simplesite.Post, filters simplesite.PostFilters) bool {
	if filters.Status != nil && post.Status != *filters.Status {
		return false
	}
	if filters.Category != nil && post.Category != *filters.Category {
		return false
	}
	if filters.Featured != nil && post.Featured != *filters.Featured {
		return false
	}
	return true
}
