// ABOUTME: Syntax coloring for fenced code blocks using chroma lexers and styles
// ABOUTME: Produces one foreground color per rune of the block body

package textwin

import (
	"strings"
	"unicode/utf8"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/charmbracelet/lipgloss"
)

// Highlighter colors the body of a code block. The returned slice may be
// shorter than code; missing entries are uncolored.
type Highlighter interface {
	Highlight(lang, code string) []lipgloss.Color
}

// ChromaHighlighter is a Highlighter backed by chroma.
type ChromaHighlighter struct {
	style *chroma.Style
}

// NewChromaHighlighter returns a highlighter using the named chroma style,
// falling back to chroma's default style when the name is unknown.
func NewChromaHighlighter(styleName string) *ChromaHighlighter {
	return &ChromaHighlighter{style: styles.Get(styleName)}
}

// Highlight tokenises code with the lexer registered for lang. Without a
// matching lexer the content is analysed, and plain text stays uncolored.
func (h *ChromaHighlighter) Highlight(lang, code string) []lipgloss.Color {
	if code == "" {
		return nil
	}
	var lexer chroma.Lexer
	if lang != "" {
		lexer = lexers.Get(lang)
	}
	if lexer == nil {
		lexer = lexers.Analyse(code)
	}
	if lexer == nil {
		return nil
	}
	it, err := chroma.Coalesce(lexer).Tokenise(nil, code)
	if err != nil {
		return nil
	}

	n := len([]rune(code))
	out := make([]lipgloss.Color, 0, n)
	for tok := it(); tok != chroma.EOF; tok = it() {
		var c lipgloss.Color
		if e := h.style.Get(tok.Type); e.Colour.IsSet() {
			c = lipgloss.Color(e.Colour.String())
		}
		for range []rune(tok.Value) {
			if len(out) == n {
				return out
			}
			out = append(out, c)
		}
	}
	return out
}

// blockColors is the highlighted body of one code block.
type blockColors struct {
	lang   string
	body   string
	colors []lipgloss.Color
	// whole is false when only the tail after the previous body's last
	// line was tokenised.
	whole bool
}

// highlightBlock colors body, reusing prev where it still applies. While a
// block is open and only grows, tokenising restarts at the start of the
// previous body's last line. A token spanning that point may be colored
// from a fresh lexer state until the block closes and is redone whole.
func highlightBlock(hl Highlighter, prev *blockColors, b CodeBlock, body string) blockColors {
	open := b.End < 0
	if prev != nil && prev.lang == b.Lang {
		switch {
		case prev.body == body && (prev.whole || open):
			return *prev
		case open && strings.HasPrefix(body, prev.body):
			cut := strings.LastIndexByte(prev.body, '\n') + 1
			n := utf8.RuneCountInString(prev.body[:cut])
			colors := make([]lipgloss.Color, n, n+utf8.RuneCountInString(body[cut:]))
			copy(colors, prev.colors)
			colors = append(colors, hl.Highlight(b.Lang, body[cut:])...)
			return blockColors{lang: b.Lang, body: body, colors: colors}
		}
	}
	return blockColors{lang: b.Lang, body: body, colors: hl.Highlight(b.Lang, body), whole: true}
}
