// ABOUTME: Keybindings loader: maps dispatcher actions to key notations
// ABOUTME: Reads ~/.panechat/keybindings.yaml; unknown actions are ignored

package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/mauromedda/panechat/pkg/tui/dispatch"
)

// Keybindings represents the keybindings configuration.
type Keybindings struct {
	Bindings map[dispatch.Action][]string
}

// RawKeybindings is the on-disk shape.
type RawKeybindings map[string][]string

// NewKeybindings creates a new Keybindings with default bindings.
func NewKeybindings() *Keybindings {
	return &Keybindings{Bindings: dispatch.DefaultBindings()}
}

// LoadKeybindings loads keybindings from a file on top of the defaults.
func LoadKeybindings(path string) (*Keybindings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var raw RawKeybindings
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	kb := NewKeybindings()
	for actionName, keys := range raw {
		action := dispatch.Action(actionName)
		if _, ok := kb.Bindings[action]; ok {
			kb.Bindings[action] = keys
		}
	}
	return kb, nil
}

// SaveKeybindings saves keybindings to a file.
func (kb *Keybindings) SaveKeybindings(path string) error {
	data, err := kb.marshal()
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// GetBindings returns the bindings for an action.
func (kb *Keybindings) GetBindings(action dispatch.Action) []string {
	if kb == nil {
		return nil
	}
	return kb.Bindings[action]
}

// ExportTemplate exports current keybindings as a YAML template.
func (kb *Keybindings) ExportTemplate() (string, error) {
	data, err := kb.marshal()
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func (kb *Keybindings) marshal() ([]byte, error) {
	raw := make(RawKeybindings, len(kb.Bindings))
	for action, keys := range kb.Bindings {
		raw[string(action)] = keys
	}
	data, err := yaml.Marshal(raw)
	if err != nil {
		return nil, fmt.Errorf("encoding keybindings: %w", err)
	}
	return data, nil
}
