package simplesite_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tendant/simple-site/pkg/simplesite"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		name  string
		title string
		want  string
	}{
		{
			name:  "simple title",
			title: "Hello World",
			want:  "hello-world",
		},
		{
			name:  "punctuation stripped",
			title: "Cloud Computing Trends!!",
			want:  "cloud-computing-trends",
		},
		{
			name:  "mixed case and digits",
			title: "Go 1.24 Release Notes",
			want:  "go-124-release-notes",
		},
		{
			name:  "repeated whitespace collapses",
			title: "  spaced    out   title  ",
			want:  "spaced-out-title",
		},
		{
			name:  "tabs and newlines treated as spaces",
			title: "line\none\tand two",
			want:  "line-one-and-two",
		},
		{
			name:  "only punctuation yields empty",
			title: "!!! ??? ...",
			want:  "",
		},
		{
			name:  "empty title",
			title: "",
			want:  "",
		},
		{
			name:  "non-ascii letters dropped",
			title: "Café au lait",
			want:  "caf-au-lait",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, simplesite.Slugify(tt.title))
		})
	}
}

func TestReadTime(t *testing.T) {
	tests := []struct {
		name  string
		words int
		want  int
	}{
		{name: "single word", words: 1, want: 1},
		{name: "just under one minute", words: 199, want: 1},
		{name: "exactly one minute", words: 200, want: 1},
		{name: "just over one minute", words: 201, want: 2},
		{name: "several minutes", words: 1000, want: 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			content := ""
			for i := 0; i < tt.words; i++ {
				content += "word "
			}
			assert.Equal(t, tt.want, simplesite.ReadTime(content))
		})
	}

	t.Run("empty content", func(t *testing.T) {
		assert.Equal(t, 0, simplesite.ReadTime(""))
		assert.Equal(t, 0, simplesite.ReadTime("   \n\t "))
	})
}
