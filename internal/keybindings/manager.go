// ABOUTME: Keybindings manager with O(1) key-to-action lookup for the dispatcher
// ABOUTME: Merges global and local configs, detects conflicts, supports hot-reload

package keybindings

import (
	"fmt"
	"maps"
	"slices"
	"strings"
	"sync"

	"github.com/mauromedda/panechat/internal/config"
	"github.com/mauromedda/panechat/pkg/tui/dispatch"
	"github.com/mauromedda/panechat/pkg/tui/key"
)

// ConflictInfo describes a binding conflict where multiple actions share a key.
type ConflictInfo struct {
	Key     string
	Actions []dispatch.Action
}

// Manager provides O(1) key-to-action lookup from merged keybindings. It
// implements dispatch.KeyMap and may be reloaded while in use.
type Manager struct {
	mu       sync.RWMutex
	bindings *config.Keybindings
	lookup   map[string]dispatch.Action // "ctrl+r" → ActionRedo
}

var _ dispatch.KeyMap = (*Manager)(nil)

// New creates a Manager from global and local keybinding files.
// Local bindings override global ones. Missing files are ignored.
func New(globalPath, localPath string) *Manager {
	m := &Manager{}
	m.Reload(globalPath, localPath)
	return m
}

// NewFromBindings creates a Manager from an existing Keybindings instance.
func NewFromBindings(kb *config.Keybindings) *Manager {
	m := &Manager{}
	m.set(kb)
	return m
}

// ActionForKey returns the action bound to the given key, or "" if unbound.
func (m *Manager) ActionForKey(k key.Key) dispatch.Action {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.lookup[k.String()]
}

// Conflicts detects keys bound to multiple actions.
func (m *Manager) Conflicts() []ConflictInfo {
	m.mu.RLock()
	defer m.mu.RUnlock()

	keyActions := make(map[string][]dispatch.Action)
	for action, keys := range m.bindings.Bindings {
		for _, k := range keys {
			keyActions[normalize(k)] = append(keyActions[normalize(k)], action)
		}
	}

	var conflicts []ConflictInfo
	for k, actions := range keyActions {
		if len(actions) > 1 {
			slices.Sort(actions)
			conflicts = append(conflicts, ConflictInfo{Key: k, Actions: actions})
		}
	}
	slices.SortFunc(conflicts, func(a, b ConflictInfo) int { return strings.Compare(a.Key, b.Key) })
	return conflicts
}

// Reload re-reads keybinding files and rebuilds the lookup table.
func (m *Manager) Reload(globalPath, localPath string) {
	kb := config.NewKeybindings()
	if globalPath != "" {
		if g, err := config.LoadKeybindings(globalPath); err == nil {
			mergeBindings(kb, g)
		}
	}
	if localPath != "" {
		if l, err := config.LoadKeybindings(localPath); err == nil {
			mergeBindings(kb, l)
		}
	}
	m.set(kb)
}

func (m *Manager) set(kb *config.Keybindings) {
	lookup := make(map[string]dispatch.Action, len(kb.Bindings)*2)
	for action, keys := range kb.Bindings {
		for _, k := range keys {
			lookup[normalize(k)] = action
		}
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.bindings = kb
	m.lookup = lookup
}

// FormatAll returns a markdown table of all bindings for the help overlay.
func (m *Manager) FormatAll() string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var b strings.Builder
	b.WriteString("## Keybindings\n\n| Keys | Action |\n|---|---|\n")
	for _, action := range dispatch.Actions() {
		keys := m.bindings.GetBindings(action)
		if len(keys) == 0 {
			continue
		}
		fmt.Fprintf(&b, "| `%s` | %s |\n", strings.Join(keys, "`, `"), action)
	}
	return b.String()
}

// mergeBindings overrides base bindings with overrides where present.
func mergeBindings(base, overrides *config.Keybindings) {
	maps.Copy(base.Bindings, overrides.Bindings)
}

// normalize rewrites a configured key into key.Key.String form so "esc",
// "Ctrl+R" and "escape" all match. Unparseable keys are kept verbatim.
func normalize(s string) string {
	k, err := key.Parse(s)
	if err != nil {
		return s
	}
	return k.String()
}
