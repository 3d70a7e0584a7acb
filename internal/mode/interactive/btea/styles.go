// ABOUTME: Lipgloss styles derived from the active theme palette
// ABOUTME: Styles() caches per theme pointer so a theme switch rebuilds them once

package btea

import (
	"sync/atomic"

	"github.com/charmbracelet/lipgloss"
	"github.com/mauromedda/panechat/pkg/tui/theme"
)

// ThemeStyles holds the host's lipgloss styles for one theme.
type ThemeStyles struct {
	Title       lipgloss.Style
	Hint        lipgloss.Style
	Placeholder lipgloss.Style
	Cursor      lipgloss.Style
	Mode        lipgloss.Style
	Count       lipgloss.Style
	Info        lipgloss.Style
	Error       lipgloss.Style
	Spinner     lipgloss.Style
	HelpBorder  lipgloss.Style
}

type themeStylesEntry struct {
	theme  *theme.Theme
	styles ThemeStyles
}

// cachedStyles is invalidated when theme.Current changes identity.
var cachedStyles atomic.Pointer[themeStylesEntry]

// Styles returns the styles for the active theme.
func Styles() ThemeStyles {
	t := theme.Current()
	if e := cachedStyles.Load(); e != nil && e.theme == t {
		return e.styles
	}
	s := buildStyles(t)
	cachedStyles.Store(&themeStylesEntry{theme: t, styles: s})
	return s
}

func buildStyles(t *theme.Theme) ThemeStyles {
	p := t.Palette
	return ThemeStyles{
		Title:       lipgloss.NewStyle().Bold(true).Foreground(p.Text),
		Hint:        lipgloss.NewStyle().Foreground(p.Muted),
		Placeholder: lipgloss.NewStyle().Foreground(p.Placeholder).Italic(true),
		Cursor:      lipgloss.NewStyle().Foreground(p.CursorFg).Background(p.CursorBg),
		Mode:        lipgloss.NewStyle().Bold(true).Foreground(p.Accent),
		Count:       lipgloss.NewStyle().Foreground(p.Accent),
		Info:        lipgloss.NewStyle().Foreground(p.Text),
		Error:       lipgloss.NewStyle().Foreground(p.Error),
		Spinner:     lipgloss.NewStyle().Foreground(p.Accent),
		HelpBorder: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.Accent).
			Padding(0, 1),
	}
}
