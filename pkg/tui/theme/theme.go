// ABOUTME: Semantic color theme types for editor panes: Palette and Theme
// ABOUTME: Colors are lipgloss colors keyed by role (borders per mode, cursor, selection, code)

package theme

import "github.com/charmbracelet/lipgloss"

// Palette holds all semantic colors for a theme.
type Palette struct {
	// Text
	Text        lipgloss.Color
	Muted       lipgloss.Color
	Accent      lipgloss.Color
	Placeholder lipgloss.Color
	Error       lipgloss.Color

	// Pane borders, one per window status
	BorderNormal     lipgloss.Color
	BorderInsert     lipgloss.Color
	BorderVisual     lipgloss.Color
	BorderBackground lipgloss.Color
	BorderInactive   lipgloss.Color

	// Editing
	CursorFg    lipgloss.Color
	CursorBg    lipgloss.Color
	SelectionFg lipgloss.Color
	SelectionBg lipgloss.Color

	// Code blocks
	CodeBg    lipgloss.Color
	CodeFence lipgloss.Color
}

// Theme holds a named palette and the chroma style used for code blocks.
type Theme struct {
	Name        string  `yaml:"name"`
	SyntaxStyle string  `yaml:"syntax_style"`
	Palette     Palette `yaml:"-"`
}

// DefaultPalette returns the palette used when no theme is configured.
func DefaultPalette() Palette {
	return Palette{
		Text:        lipgloss.Color("252"),
		Muted:       lipgloss.Color("244"),
		Accent:      lipgloss.Color("208"),
		Placeholder: lipgloss.Color("240"),
		Error:       lipgloss.Color("203"),

		BorderNormal:     lipgloss.Color("75"),
		BorderInsert:     lipgloss.Color("114"),
		BorderVisual:     lipgloss.Color("176"),
		BorderBackground: lipgloss.Color("244"),
		BorderInactive:   lipgloss.Color("238"),

		CursorFg:    lipgloss.Color("0"),
		CursorBg:    lipgloss.Color("252"),
		SelectionFg: lipgloss.Color("255"),
		SelectionBg: lipgloss.Color("24"),

		CodeBg:    lipgloss.Color("235"),
		CodeFence: lipgloss.Color("244"),
	}
}
