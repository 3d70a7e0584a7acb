// ABOUTME: Built-in themes: default, dark, light, monochrome
// ABOUTME: Provides Builtin(name) lookup and BuiltinNames() enumeration

package theme

import "github.com/charmbracelet/lipgloss"

var builtins = map[string]*Theme{
	"default": {
		Name:        "default",
		SyntaxStyle: "monokai",
		Palette:     DefaultPalette(),
	},
	"dark": {
		Name:        "dark",
		SyntaxStyle: "dracula",
		Palette: Palette{
			Text:        lipgloss.Color("255"),
			Muted:       lipgloss.Color("245"),
			Accent:      lipgloss.Color("214"),
			Placeholder: lipgloss.Color("241"),
			Error:       lipgloss.Color("203"),

			BorderNormal:     lipgloss.Color("117"),
			BorderInsert:     lipgloss.Color("114"),
			BorderVisual:     lipgloss.Color("183"),
			BorderBackground: lipgloss.Color("240"),
			BorderInactive:   lipgloss.Color("236"),

			CursorFg:    lipgloss.Color("0"),
			CursorBg:    lipgloss.Color("255"),
			SelectionFg: lipgloss.Color("255"),
			SelectionBg: lipgloss.Color("238"),

			CodeBg:    lipgloss.Color("234"),
			CodeFence: lipgloss.Color("241"),
		},
	},
	"light": {
		Name:        "light",
		SyntaxStyle: "github",
		Palette: Palette{
			Text:        lipgloss.Color("235"),
			Muted:       lipgloss.Color("243"),
			Accent:      lipgloss.Color("166"),
			Placeholder: lipgloss.Color("249"),
			Error:       lipgloss.Color("160"),

			BorderNormal:     lipgloss.Color("25"),
			BorderInsert:     lipgloss.Color("28"),
			BorderVisual:     lipgloss.Color("91"),
			BorderBackground: lipgloss.Color("249"),
			BorderInactive:   lipgloss.Color("253"),

			CursorFg:    lipgloss.Color("255"),
			CursorBg:    lipgloss.Color("235"),
			SelectionFg: lipgloss.Color("235"),
			SelectionBg: lipgloss.Color("153"),

			CodeBg:    lipgloss.Color("254"),
			CodeFence: lipgloss.Color("245"),
		},
	},
	"monochrome": {
		Name:        "monochrome",
		SyntaxStyle: "bw",
		Palette: Palette{
			Text:        lipgloss.Color("7"),
			Muted:       lipgloss.Color("8"),
			Accent:      lipgloss.Color("15"),
			Placeholder: lipgloss.Color("8"),
			Error:       lipgloss.Color("15"),

			BorderNormal:     lipgloss.Color("15"),
			BorderInsert:     lipgloss.Color("15"),
			BorderVisual:     lipgloss.Color("15"),
			BorderBackground: lipgloss.Color("8"),
			BorderInactive:   lipgloss.Color("8"),

			CursorFg:    lipgloss.Color("0"),
			CursorBg:    lipgloss.Color("15"),
			SelectionFg: lipgloss.Color("0"),
			SelectionBg: lipgloss.Color("7"),

			CodeBg:    lipgloss.Color(""),
			CodeFence: lipgloss.Color("8"),
		},
	},
}

// Builtin returns a built-in theme by name, or nil if unknown.
func Builtin(name string) *Theme {
	return builtins[name]
}

// BuiltinNames returns the names of all built-in themes.
func BuiltinNames() []string {
	return []string{"default", "dark", "light", "monochrome"}
}
