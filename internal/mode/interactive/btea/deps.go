// ABOUTME: Dependency injection struct for the Bubble Tea interactive app
// ABOUTME: cmd/panechat builds it from config; tests fill only what they need

package btea

import (
	"github.com/mauromedda/panechat/internal/config"
	"github.com/mauromedda/panechat/pkg/tui/clipboard"
	"github.com/mauromedda/panechat/pkg/tui/dispatch"
	"github.com/muesli/termenv"
)

// AppDeps bundles all dependencies for the Bubble Tea interactive app.
type AppDeps struct {
	Settings  *config.Settings
	Keys      dispatch.KeyMap
	Clipboard clipboard.Provider
	Producer  Producer // nil: prompts are recorded but nothing answers
	Version   string

	// KeyHelp renders the active bindings as a markdown table.
	KeyHelp func() string
	// Reload re-reads config, keybindings and theme from disk and returns
	// the new settings for the windows and dispatcher to adopt.
	Reload func() (*config.Settings, error)
	// WatchPaths are config files whose changes trigger Reload.
	WatchPaths []string

	ThemesDir string
	Profile   termenv.Profile
}

func (d AppDeps) settings() *config.Settings {
	if d.Settings != nil {
		return d.Settings
	}
	return &config.Settings{
		ScrollStep: config.DefaultScrollStep,
		UndoDepth:  config.DefaultUndoDepth,
		Theme:      config.DefaultTheme,
	}
}
