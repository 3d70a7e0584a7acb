// ABOUTME: Markdown renderer wrapper around glamour for the help overlay
// ABOUTME: Caches rendered results keyed by content hash, width and style

package btea

import (
	"crypto/sha256"
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/muesli/termenv"
)

// MarkdownRenderer wraps glamour to render markdown with caching.
type MarkdownRenderer struct {
	style string // glamour standard style; "" picks one from the terminal
	cache map[string]string
}

// NewMarkdownRenderer creates a renderer. Colorless profiles get the
// "notty" style so no escape codes are emitted.
func NewMarkdownRenderer(profile termenv.Profile) *MarkdownRenderer {
	r := &MarkdownRenderer{cache: make(map[string]string)}
	if profile == termenv.Ascii {
		r.style = "notty"
	}
	return r
}

// Render returns the terminal-styled rendering of md wrapped at width.
// On renderer failure the raw markdown is returned.
func (r *MarkdownRenderer) Render(md string, width int) string {
	if md == "" {
		return ""
	}
	key := cacheKey(md, width)
	if cached, ok := r.cache[key]; ok {
		return cached
	}

	styleOpt := glamour.WithAutoStyle()
	if r.style != "" {
		styleOpt = glamour.WithStandardStyle(r.style)
	}
	renderer, err := glamour.NewTermRenderer(styleOpt, glamour.WithWordWrap(width))
	if err != nil {
		return md
	}
	rendered, err := renderer.Render(md)
	if err != nil {
		return md
	}

	rendered = strings.Trim(rendered, "\n")
	r.cache[key] = rendered
	return rendered
}

func cacheKey(content string, width int) string {
	h := sha256.Sum256([]byte(content))
	return fmt.Sprintf("%x:%d", h[:8], width)
}
