package simplesite

import (
	"bytes"
	"fmt"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

var (
	markdown = goldmark.New(
		goldmark.WithExtensions(extension.GFM, extension.Typographer),
	)

	// UGC policy: post bodies are authored by trusted content managers, but
	// rendered HTML still goes through the sanitizer so a pasted snippet can
	// never ship a script tag to the public site.
	htmlPolicy = bluemonday.UGCPolicy()
)

// RenderHTML converts a post's markdown content to sanitized HTML.
func RenderHTML(content string) (string, error) {
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(content), &buf); err != nil {
		return "", fmt.Errorf("render markdown: %w", err)
	}
	return htmlPolicy.Sanitize(buf.String()), nil
}
