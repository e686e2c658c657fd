// Package render converts assistant markdown into display markup.
// The output is handed to the presentation surface as trusted markup;
// sanitization guarantees belong to the renderer collaborator, not here.
package render

import (
	"bytes"
	"fmt"

	"github.com/yuin/goldmark"
)

// HTML converts a markdown document to HTML
func HTML(markdown string) (string, error) {
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(markdown), &buf); err != nil {
		return "", fmt.Errorf("failed to convert markdown: %w", err)
	}
	return buf.String(), nil
}
