package simplesite

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	// wordsPerMinute is the fixed reading-speed constant for ReadTime.
	wordsPerMinute = 200

	// maxSlugProbes bounds the sequential-suffix probe loop. Past this the
	// candidate gets an epoch-millis suffix instead, guaranteeing
	// termination under pathological collision storms.
	maxSlugProbes = 1000
)

// SlugProbe reports whether a candidate slug is already taken by a post other
// than the one identified by excludeID. An error means the store could not be
// reached; the save must be aborted.
type SlugProbe func(ctx context.Context, slug string, excludeID uuid.UUID) (bool, error)

// PrepareForSave computes the derived fields of next before it is written:
// slug assignment, publication stamping and read-time estimation. prev is the
// currently persisted state, or nil on the creation path. The probe is
// consulted only when a slug actually needs (re)deriving.
//
// The probe loop is a best-effort optimization; the repository's unique
// constraint on the slug remains the authority under concurrency. A probe
// failure aborts the save with no fields mutated beyond next itself.
func PrepareForSave(ctx context.Context, prev, next *Post, probe SlugProbe, now func() time.Time) error {
	if now == nil {
		now = time.Now
	}

	titleChanged := prev == nil || prev.Title != next.Title
	if titleChanged || next.Slug == "" {
		if err := assignUniqueSlug(ctx, next, probe, now); err != nil {
			return err
		}
	} else {
		next.Slug = prev.Slug
	}

	if prev == nil || prev.Content != next.Content {
		next.ReadTime = ReadTime(next.Content)
	} else {
		next.ReadTime = prev.ReadTime
	}

	stampPublication(prev, next, now)

	return nil
}

// assignUniqueSlug derives the base slug from the title and probes the store
// for collisions, appending -1, -2, ... until a free value is found. After
// maxSlugProbes increments it falls back to a timestamp suffix.
func assignUniqueSlug(ctx context.Context, post *Post, probe SlugProbe, now func() time.Time) error {
	base := Slugify(post.Title)
	if base == "" {
		// Title had no alphanumeric characters; synthesize a unique base.
		post.Slug = fmt.Sprintf("post-%d", now().UnixMilli())
		return nil
	}

	candidate := base
	for i := 1; ; i++ {
		taken, err := probe(ctx, candidate, post.ID)
		if err != nil {
			return fmt.Errorf("slug probe for %q: %w", candidate, err)
		}
		if !taken {
			post.Slug = candidate
			return nil
		}
		if i > maxSlugProbes {
			post.Slug = fmt.Sprintf("%s-%d", base, now().UnixMilli())
			return nil
		}
		candidate = fmt.Sprintf("%s-%d", base, i)
	}
}

// stampPublication sets PublishedAt on the first transition into the
// published status. The stamp survives every later save, including archiving,
// preserving the record of first publication.
func stampPublication(prev, next *Post, now func() time.Time) {
	if prev != nil && prev.PublishedAt != nil {
		next.PublishedAt = prev.PublishedAt
		return
	}
	if PostStatus(next.Status) == PostStatusPublished && next.PublishedAt == nil {
		t := now().UTC()
		next.PublishedAt = &t
	}
}

// ReadTime estimates reading time in whole minutes: the word count divided by
// a fixed words-per-minute constant, ceiling-rounded. Empty content yields 0;
// required-field validation rejects empty content upstream, so persisted
// posts always report at least one minute.
func ReadTime(content string) int {
	words := len(strings.Fields(content))
	if words == 0 {
		return 0
	}
	return (words + wordsPerMinute - 1) / wordsPerMinute
}
