// ABOUTME: Tests for keybindings manager
// ABOUTME: Validates key lookup, conflict detection, merge, reload, and format

package keybindings

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mauromedda/panechat/internal/config"
	"github.com/mauromedda/panechat/pkg/tui/dispatch"
	"github.com/mauromedda/panechat/pkg/tui/key"
)

func TestManager_DefaultBindings(t *testing.T) {
	t.Parallel()
	m := NewFromBindings(config.NewKeybindings())

	tests := []struct {
		key    key.Key
		action dispatch.Action
	}{
		{key.Special(key.KeyTab), dispatch.ActionFocusCycle},
		{key.Rune(':'), dispatch.ActionCommandLine},
		{key.Special(key.KeyEnter), dispatch.ActionSubmit},
		{key.Ctrl('c'), dispatch.ActionClearOrQuit},
		{key.Ctrl('r'), dispatch.ActionRedo},
		{key.Special(key.KeyPageUp), dispatch.ActionScrollUp},
		{key.Rune('?'), dispatch.ActionHelp},
	}

	for _, tt := range tests {
		t.Run(string(tt.action), func(t *testing.T) {
			t.Parallel()
			if got := m.ActionForKey(tt.key); got != tt.action {
				t.Errorf("ActionForKey(%v) = %q; want %q", tt.key, got, tt.action)
			}
		})
	}
}

func TestManager_UnboundKey(t *testing.T) {
	t.Parallel()
	m := NewFromBindings(config.NewKeybindings())

	if action := m.ActionForKey(key.Rune('z')); action != dispatch.ActionNone {
		t.Errorf("expected no action for unbound key, got %q", action)
	}
}

func TestManager_Conflicts(t *testing.T) {
	t.Parallel()
	kb := config.NewKeybindings()
	kb.Bindings[dispatch.ActionHelp] = []string{"tab"}
	m := NewFromBindings(kb)

	conflicts := m.Conflicts()
	if len(conflicts) != 1 || conflicts[0].Key != "tab" {
		t.Fatalf("conflicts = %+v, want one on tab", conflicts)
	}
	if len(conflicts[0].Actions) != 2 {
		t.Errorf("actions = %v", conflicts[0].Actions)
	}
}

func TestManager_NormalizesNotation(t *testing.T) {
	t.Parallel()
	kb := config.NewKeybindings()
	kb.Bindings[dispatch.ActionQuit] = []string{"esc", "Ctrl+q"}
	m := NewFromBindings(kb)

	if got := m.ActionForKey(key.Special(key.KeyEscape)); got != dispatch.ActionQuit {
		t.Errorf("esc → %q, want quit", got)
	}
	if got := m.ActionForKey(key.Ctrl('q')); got != dispatch.ActionQuit {
		t.Errorf("ctrl+q → %q, want quit", got)
	}
}

func TestManager_ReloadLocalOverridesGlobal(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	global := filepath.Join(dir, "global.yaml")
	local := filepath.Join(dir, "local.yaml")
	if err := os.WriteFile(global, []byte("focusCycle: [ctrl+w]\nhelp: [f1]\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(local, []byte("focusCycle: [ctrl+o]\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	m := New(global, local)
	if got := m.ActionForKey(key.Ctrl('o')); got != dispatch.ActionFocusCycle {
		t.Errorf("local binding lost: %q", got)
	}
	if got := m.ActionForKey(key.Ctrl('w')); got != dispatch.ActionNone {
		t.Errorf("global binding should be overridden, got %q", got)
	}

	if err := os.WriteFile(local, []byte("focusCycle: [ctrl+t]\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	m.Reload(global, local)
	if got := m.ActionForKey(key.Ctrl('t')); got != dispatch.ActionFocusCycle {
		t.Errorf("reload did not apply: %q", got)
	}
}

func TestManager_MissingFilesUseDefaults(t *testing.T) {
	t.Parallel()
	m := New("/nonexistent/a.yaml", "")
	if got := m.ActionForKey(key.Special(key.KeyTab)); got != dispatch.ActionFocusCycle {
		t.Errorf("tab → %q", got)
	}
}

func TestManager_FormatAll(t *testing.T) {
	t.Parallel()
	out := NewFromBindings(config.NewKeybindings()).FormatAll()
	for _, want := range []string{"| Keys | Action |", "`tab`", "focusCycle", "`pgup`, `ctrl+u`"} {
		if !strings.Contains(out, want) {
			t.Errorf("FormatAll missing %q:\n%s", want, out)
		}
	}
}
