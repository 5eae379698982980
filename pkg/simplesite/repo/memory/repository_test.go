package memory_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tendant/simple-site/pkg/simplesite"
	"github.com/tendant/simple-site/pkg/simplesite/repo/memory"
)

func newPost(title, slug, status string) *simplesite.Post {
	now := time.Now().UTC()
	return &simplesite.Post{
		ID:        uuid.New(),
		Title:     title,
		Slug:      slug,
		Content:   "content",
		Category:  "general",
		Status:    status,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestPostCRUD(t *testing.T) {
	repo := memory.New()
	ctx := context.Background()

	post := newPost("First", "first", "draft")
	require.NoError(t, repo.CreatePost(ctx, post))

	got, err := repo.GetPost(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, post.Title, got.Title)

	got, err = repo.GetPostBySlug(ctx, "first")
	require.NoError(t, err)
	assert.Equal(t, post.ID, got.ID)

	post.Title = "First Edited"
	require.NoError(t, repo.UpdatePost(ctx, post))

	got, err = repo.GetPost(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, "First Edited", got.Title)

	require.NoError(t, repo.DeletePost(ctx, post.ID))

	_, err = repo.GetPost(ctx, post.ID)
	assert.ErrorIs(t, err, simplesite.ErrPostNotFound)
	_, err = repo.GetPostBySlug(ctx, "first")
	assert.ErrorIs(t, err, simplesite.ErrPostNotFound)
}

func TestCreatePostDuplicateSlug(t *testing.T) {
	repo := memory.New()
	ctx := context.Background()

	require.NoError(t, repo.CreatePost(ctx, newPost("One", "shared-slug", "draft")))

	err := repo.CreatePost(ctx, newPost("Two", "shared-slug", "draft"))
	assert.ErrorIs(t, err, simplesite.ErrDuplicateSlug)
}

func TestUpdatePostSlugReindex(t *testing.T) {
	repo := memory.New()
	ctx := context.Background()

	post := newPost("Original", "original", "draft")
	require.NoError(t, repo.CreatePost(ctx, post))

	post.Slug = "renamed"
	require.NoError(t, repo.UpdatePost(ctx, post))

	_, err := repo.GetPostBySlug(ctx, "original")
	assert.ErrorIs(t, err, simplesite.ErrPostNotFound)

	got, err := repo.GetPostBySlug(ctx, "renamed")
	require.NoError(t, err)
	assert.Equal(t, post.ID, got.ID)

	// The freed slug can now be claimed by another post.
	require.NoError(t, repo.CreatePost(ctx, newPost("Claimer", "original", "draft")))
}

func TestUpdatePostSlugConflict(t *testing.T) {
	repo := memory.New()
	ctx := context.Background()

	require.NoError(t, repo.CreatePost(ctx, newPost("One", "slug-one", "draft")))
	two := newPost("Two", "slug-two", "draft")
	require.NoError(t, repo.CreatePost(ctx, two))

	two.Slug = "slug-one"
	err := repo.UpdatePost(ctx, two)
	assert.ErrorIs(t, err, simplesite.ErrDuplicateSlug)
}

func TestFindPostBySlugExcludesID(t *testing.T) {
	repo := memory.New()
	ctx := context.Background()

	post := newPost("Mine", "mine", "draft")
	require.NoError(t, repo.CreatePost(ctx, post))

	// The post's own slug does not count as taken for itself.
	_, err := repo.FindPostBySlug(ctx, "mine", post.ID)
	assert.ErrorIs(t, err, simplesite.ErrPostNotFound)

	// It does count for everyone else.
	found, err := repo.FindPostBySlug(ctx, "mine", uuid.New())
	require.NoError(t, err)
	assert.Equal(t, post.ID, found.ID)
}

func TestIncrementPostViews(t *testing.T) {
	repo := memory.New()
	ctx := context.Background()

	post := newPost("Viewed", "viewed", "published")
	require.NoError(t, repo.CreatePost(ctx, post))

	require.NoError(t, repo.IncrementPostViews(ctx, post.ID))
	require.NoError(t, repo.IncrementPostViews(ctx, post.ID))

	got, err := repo.GetPost(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), got.Views)

	assert.ErrorIs(t, repo.IncrementPostViews(ctx, uuid.New()), simplesite.ErrPostNotFound)
}

func TestUpdatePostPreservesViews(t *testing.T) {
	repo := memory.New()
	ctx := context.Background()

	post := newPost("Viewed", "viewed", "published")
	require.NoError(t, repo.CreatePost(ctx, post))
	require.NoError(t, repo.IncrementPostViews(ctx, post.ID))

	// An update carrying a stale view count must not clobber the counter.
	stale := *post
	stale.Views = 0
	stale.Title = "Viewed Edited"
	require.NoError(t, repo.UpdatePost(ctx, &stale))

	got, err := repo.GetPost(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), got.Views)
}

func TestListPostsFilterSortAndPage(t *testing.T) {
	repo := memory.New()
	ctx := context.Background()

	base := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		post := newPost(fmt.Sprintf("Post %d", i), fmt.Sprintf("post-%d", i), "published")
		post.CreatedAt = base.Add(time.Duration(i) * time.Hour)
		if i%2 == 0 {
			post.Category = "tech"
		}
		require.NoError(t, repo.CreatePost(ctx, post))
	}

	// Newest first.
	posts, err := repo.ListPosts(ctx, simplesite.PostFilters{})
	require.NoError(t, err)
	require.Len(t, posts, 5)
	assert.Equal(t, "post-4", posts[0].Slug)
	assert.Equal(t, "post-0", posts[4].Slug)

	// Category filter.
	tech := "tech"
	posts, err = repo.ListPosts(ctx, simplesite.PostFilters{Category: &tech})
	require.NoError(t, err)
	assert.Len(t, posts, 3)

	// Paging.
	limit, offset := 2, 1
	posts, err = repo.ListPosts(ctx, simplesite.PostFilters{Limit: &limit, Offset: &offset})
	require.NoError(t, err)
	require.Len(t, posts, 2)
	assert.Equal(t, "post-3", posts[0].Slug)
	assert.Equal(t, "post-2", posts[1].Slug)

	// Offset past the end.
	offset = 10
	posts, err = repo.ListPosts(ctx, simplesite.PostFilters{Offset: &offset})
	require.NoError(t, err)
	assert.Empty(t, posts)

	// Count honors filters.
	count, err := repo.CountPosts(ctx, simplesite.PostFilters{Category: &tech})
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)
}

func TestSubscriberLifecycle(t *testing.T) {
	repo := memory.New()
	ctx := context.Background()

	sub := &simplesite.Subscriber{
		ID:           uuid.New(),
		Email:        "reader@example.com",
		SubscribedAt: time.Now().UTC(),
	}
	require.NoError(t, repo.CreateSubscriber(ctx, sub))

	assert.ErrorIs(t, repo.CreateSubscriber(ctx, &simplesite.Subscriber{
		ID:    uuid.New(),
		Email: "reader@example.com",
	}), simplesite.ErrDuplicateEmail)

	got, err := repo.GetSubscriberByEmail(ctx, "reader@example.com")
	require.NoError(t, err)
	assert.Equal(t, sub.ID, got.ID)

	now := time.Now().UTC()
	got.UnsubscribedAt = &now
	require.NoError(t, repo.UpdateSubscriber(ctx, got))

	subs, err := repo.ListSubscribers(ctx)
	require.NoError(t, err)
	require.Len(t, subs, 1)
	assert.False(t, subs[0].Active())

	_, err = repo.GetSubscriberByEmail(ctx, "unknown@example.com")
	assert.ErrorIs(t, err, simplesite.ErrSubscriberNotFound)
}

func TestContactMessages(t *testing.T) {
	repo := memory.New()
	ctx := context.Background()

	older := &simplesite.ContactMessage{
		ID:        uuid.New(),
		Name:      "First",
		Email:     "first@example.com",
		Message:   "first message",
		CreatedAt: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	newer := &simplesite.ContactMessage{
		ID:        uuid.New(),
		Name:      "Second",
		Email:     "second@example.com",
		Message:   "second message",
		CreatedAt: time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC),
	}
	require.NoError(t, repo.CreateContactMessage(ctx, older))
	require.NoError(t, repo.CreateContactMessage(ctx, newer))

	msgs, err := repo.ListContactMessages(ctx)
	require.NoError(t, err)
	require.Len(t, msgs, 2)
	assert.Equal(t, "Second", msgs[0].Name)
	assert.Equal(t, "First", msgs[1].Name)
}

func TestGetSiteStats(t *testing.T) {
	repo := memory.New()
	ctx := context.Background()

	published := newPost("Pub", "pub", "published")
	require.NoError(t, repo.CreatePost(ctx, published))
	require.NoError(t, repo.CreatePost(ctx, newPost("Draft", "draft-post", "draft")))
	require.NoError(t, repo.CreatePost(ctx, newPost("Old", "old", "archived")))
	require.NoError(t, repo.IncrementPostViews(ctx, published.ID))

	require.NoError(t, repo.CreateSubscriber(ctx, &simplesite.Subscriber{
		ID: uuid.New(), Email: "a@example.com", SubscribedAt: time.Now().UTC(),
	}))
	gone := time.Now().UTC()
	require.NoError(t, repo.CreateSubscriber(ctx, &simplesite.Subscriber{
		ID: uuid.New(), Email: "b@example.com", SubscribedAt: gone, UnsubscribedAt: &gone,
	}))

	stats, err := repo.GetSiteStats(ctx)
	require.NoError(t, err)

	assert.Equal(t, int64(3), stats.TotalPosts)
	assert.Equal(t, int64(1), stats.PublishedPosts)
	assert.Equal(t, int64(1), stats.DraftPosts)
	assert.Equal(t, int64(1), stats.ArchivedPosts)
	assert.Equal(t, int64(1), stats.TotalViews)
	assert.Equal(t, int64(1), stats.Subscribers)
}
