// ABOUTME: Comparable span style for display segments and its lipgloss conversion
// ABOUTME: Role styles (cursor, selection, code) are derived from the active theme

package textwin

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/mauromedda/panechat/pkg/tui/theme"
)

// Style is the visual attribute set of a segment. It is comparable so that
// adjacent runes with equal styles coalesce into one segment.
type Style struct {
	Fg      lipgloss.Color
	Bg      lipgloss.Color
	Bold    bool
	Italic  bool
	Reverse bool
}

// Lipgloss converts s to a lipgloss style for painting.
func (s Style) Lipgloss() lipgloss.Style {
	st := lipgloss.NewStyle().TabWidth(1)
	if s.Fg != "" {
		st = st.Foreground(s.Fg)
	}
	if s.Bg != "" {
		st = st.Background(s.Bg)
	}
	if s.Bold {
		st = st.Bold(true)
	}
	if s.Italic {
		st = st.Italic(true)
	}
	if s.Reverse {
		st = st.Reverse(true)
	}
	return st
}

// IsZero reports whether s carries no attributes.
func (s Style) IsZero() bool { return s == Style{} }

func cursorStyle() Style {
	p := theme.Current().Palette
	return Style{Fg: p.CursorFg, Bg: p.CursorBg}
}

func selectionStyle() Style {
	p := theme.Current().Palette
	return Style{Fg: p.SelectionFg, Bg: p.SelectionBg}
}

func fenceStyle() Style {
	p := theme.Current().Palette
	return Style{Fg: p.CodeFence, Bg: p.CodeBg, Italic: true}
}

func codeStyle(fg lipgloss.Color) Style {
	return Style{Fg: fg, Bg: theme.Current().Palette.CodeBg}
}
