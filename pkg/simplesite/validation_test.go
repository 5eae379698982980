package simplesite_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tendant/simple-site/pkg/simplesite"
)

func TestCreatePostRequestValidate(t *testing.T) {
	valid := simplesite.CreatePostRequest{
		Title:    "A Valid Title",
		Content:  "some content",
		Category: "general",
	}

	tests := []struct {
		name       string
		mutate     func(*simplesite.CreatePostRequest)
		wantFields []string
	}{
		{
			name:   "valid request",
			mutate: func(r *simplesite.CreatePostRequest) {},
		},
		{
			name:       "missing title",
			mutate:     func(r *simplesite.CreatePostRequest) { r.Title = "" },
			wantFields: []string{"title"},
		},
		{
			name:       "title too short",
			mutate:     func(r *simplesite.CreatePostRequest) { r.Title = "ab" },
			wantFields: []string{"title"},
		},
		{
			name:       "missing content",
			mutate:     func(r *simplesite.CreatePostRequest) { r.Content = "" },
			wantFields: []string{"content"},
		},
		{
			name:       "missing category",
			mutate:     func(r *simplesite.CreatePostRequest) { r.Category = "" },
			wantFields: []string{"category"},
		},
		{
			name:       "excerpt too long",
			mutate:     func(r *simplesite.CreatePostRequest) { r.Excerpt = strings.Repeat("x", 501) },
			wantFields: []string{"excerpt"},
		},
		{
			name:       "unknown status",
			mutate:     func(r *simplesite.CreatePostRequest) { r.Status = "pending" },
			wantFields: []string{"status"},
		},
		{
			name: "multiple failures reported together",
			mutate: func(r *simplesite.CreatePostRequest) {
				r.Title = ""
				r.Content = ""
			},
			wantFields: []string{"title", "content"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := valid
			tt.mutate(&req)

			err := req.Validate()
			if len(tt.wantFields) == 0 {
				assert.NoError(t, err)
				return
			}

			var validationErr *simplesite.ValidationError
			require.ErrorAs(t, err, &validationErr)
			for _, field := range tt.wantFields {
				assert.Contains(t, validationErr.Fields, field)
			}
		})
	}
}

func TestUpdatePostRequestValidate(t *testing.T) {
	short := "ab"
	empty := ""
	bad := "pending"
	ok := "published"

	t.Run("nil fields pass", func(t *testing.T) {
		assert.NoError(t, simplesite.UpdatePostRequest{}.Validate())
	})

	t.Run("short title rejected", func(t *testing.T) {
		err := simplesite.UpdatePostRequest{Title: &short}.Validate()
		var validationErr *simplesite.ValidationError
		require.ErrorAs(t, err, &validationErr)
		assert.Contains(t, validationErr.Fields, "title")
	})

	t.Run("empty content rejected", func(t *testing.T) {
		err := simplesite.UpdatePostRequest{Content: &empty}.Validate()
		var validationErr *simplesite.ValidationError
		require.ErrorAs(t, err, &validationErr)
		assert.Contains(t, validationErr.Fields, "content")
	})

	t.Run("unknown status rejected", func(t *testing.T) {
		err := simplesite.UpdatePostRequest{Status: &bad}.Validate()
		var validationErr *simplesite.ValidationError
		require.ErrorAs(t, err, &validationErr)
		assert.Contains(t, validationErr.Fields, "status")
	})

	t.Run("valid status passes", func(t *testing.T) {
		assert.NoError(t, simplesite.UpdatePostRequest{Status: &ok}.Validate())
	})
}

func TestSubscribeRequestValidate(t *testing.T) {
	assert.NoError(t, simplesite.SubscribeRequest{Email: "reader@example.com"}.Validate())

	err := simplesite.SubscribeRequest{Email: "not-an-email"}.Validate()
	var validationErr *simplesite.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Contains(t, validationErr.Fields, "email")

	err = simplesite.SubscribeRequest{}.Validate()
	require.ErrorAs(t, err, &validationErr)
	assert.Contains(t, validationErr.Fields, "email")
}

func TestContactRequestValidate(t *testing.T) {
	valid := simplesite.ContactRequest{
		Name:    "Visitor",
		Email:   "visitor@example.com",
		Message: "A sufficiently long message body.",
	}
	assert.NoError(t, valid.Validate())

	short := valid
	short.Message = "too short"
	err := short.Validate()
	var validationErr *simplesite.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Contains(t, validationErr.Fields, "message")

	badEmail := valid
	badEmail.Email = "nope"
	err = badEmail.Validate()
	require.ErrorAs(t, err, &validationErr)
	assert.Contains(t, validationErr.Fields, "email")
}
