package simplesite_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tendant/simple-site/pkg/simplesite"
)

func TestRenderHTML(t *testing.T) {
	t.Run("basic markdown", func(t *testing.T) {
		html, err := simplesite.RenderHTML("# Heading\n\nSome **bold** text.")
		require.NoError(t, err)

		assert.Contains(t, html, "<h1")
		assert.Contains(t, html, "<strong>bold</strong>")
	})

	t.Run("gfm tables", func(t *testing.T) {
		html, err := simplesite.RenderHTML("| a | b |\n|---|---|\n| 1 | 2 |")
		require.NoError(t, err)

		assert.Contains(t, html, "<table>")
	})

	t.Run("script tags stripped", func(t *testing.T) {
		html, err := simplesite.RenderHTML("hello <script>alert('xss')</script> world")
		require.NoError(t, err)

		assert.NotContains(t, html, "<script>")
		assert.Contains(t, html, "hello")
	})

	t.Run("raw event handlers stripped", func(t *testing.T) {
		html, err := simplesite.RenderHTML(`<img src="x" onerror="alert(1)">`)
		require.NoError(t, err)

		assert.NotContains(t, html, "onerror")
	})

	t.Run("links preserved", func(t *testing.T) {
		html, err := simplesite.RenderHTML("[home](https://example.com)")
		require.NoError(t, err)

		assert.Contains(t, html, `href="https://example.com"`)
	})
}
