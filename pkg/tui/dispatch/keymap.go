// ABOUTME: Global dispatcher actions and the key map interface that resolves them
// ABOUTME: Defaults mirror the built-in bindings; config files may override any action

package dispatch

import "github.com/mauromedda/panechat/pkg/tui/key"

// Action is a dispatcher-level command bound to one or more keys.
type Action string

const (
	ActionNone        Action = ""
	ActionFocusCycle  Action = "focusCycle"
	ActionCommandLine Action = "commandLine"
	ActionSubmit      Action = "submit"
	ActionQuit        Action = "quit"
	ActionClearOrQuit Action = "clearOrQuit"
	ActionNewline     Action = "newline"
	ActionScrollUp    Action = "scrollUp"
	ActionScrollDown  Action = "scrollDown"
	ActionRedo        Action = "redo"
	ActionHelp        Action = "help"
	ActionStop        Action = "stop"
)

// Actions lists every bindable action in display order.
func Actions() []Action {
	return []Action{
		ActionFocusCycle, ActionCommandLine, ActionSubmit, ActionNewline,
		ActionScrollUp, ActionScrollDown, ActionRedo, ActionHelp,
		ActionStop, ActionClearOrQuit, ActionQuit,
	}
}

// DefaultBindings returns the built-in key notation for each action.
func DefaultBindings() map[Action][]string {
	return map[Action][]string{
		ActionFocusCycle:  {"tab"},
		ActionCommandLine: {":"},
		ActionSubmit:      {"enter"},
		ActionQuit:        {"ctrl+q"},
		ActionClearOrQuit: {"ctrl+c"},
		ActionNewline:     {"ctrl+j"},
		ActionScrollUp:    {"pgup", "ctrl+u"},
		ActionScrollDown:  {"pgdown", "ctrl+d"},
		ActionRedo:        {"ctrl+r"},
		ActionHelp:        {"?"},
		ActionStop:        {"ctrl+x"},
	}
}

// KeyMap resolves a key to the action bound to it, or ActionNone.
type KeyMap interface {
	ActionForKey(k key.Key) Action
}

// StaticKeyMap is a KeyMap over a fixed binding table.
type StaticKeyMap map[string]Action

// NewStaticKeyMap indexes bindings by key notation.
func NewStaticKeyMap(bindings map[Action][]string) StaticKeyMap {
	m := make(StaticKeyMap, len(bindings)*2)
	for a, keys := range bindings {
		for _, k := range keys {
			m[k] = a
		}
	}
	return m
}

// ActionForKey implements KeyMap.
func (m StaticKeyMap) ActionForKey(k key.Key) Action {
	return m[k.String()]
}
