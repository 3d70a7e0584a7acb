// ABOUTME: Conversion from Bubble Tea key messages to normalized engine keys
// ABOUTME: Pasted or multi-rune input is NFC-normalized and split into one key per rune

package btea

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mauromedda/panechat/pkg/tui/key"
	"golang.org/x/text/unicode/norm"
)

var specialKeys = map[tea.KeyType]key.Key{
	tea.KeyEnter:      key.Special(key.KeyEnter),
	tea.KeyTab:        key.Special(key.KeyTab),
	tea.KeyShiftTab:   key.Special(key.KeyBackTab),
	tea.KeyBackspace:  key.Special(key.KeyBackspace),
	tea.KeyDelete:     key.Special(key.KeyDelete),
	tea.KeyUp:         key.Special(key.KeyUp),
	tea.KeyDown:       key.Special(key.KeyDown),
	tea.KeyLeft:       key.Special(key.KeyLeft),
	tea.KeyRight:      key.Special(key.KeyRight),
	tea.KeyHome:       key.Special(key.KeyHome),
	tea.KeyEnd:        key.Special(key.KeyEnd),
	tea.KeyPgUp:       key.Special(key.KeyPageUp),
	tea.KeyPgDown:     key.Special(key.KeyPageDown),
	tea.KeyEsc:        key.Special(key.KeyEscape),
	tea.KeyShiftUp:    {Type: key.KeyUp, Shift: true},
	tea.KeyShiftDown:  {Type: key.KeyDown, Shift: true},
	tea.KeyShiftLeft:  {Type: key.KeyLeft, Shift: true},
	tea.KeyShiftRight: {Type: key.KeyRight, Shift: true},
	tea.KeySpace:      key.Rune(' '),
}

// keysFromMsg converts one Bubble Tea key message into engine keys.
// Returns nil for keys the engine has no notation for.
func keysFromMsg(msg tea.KeyMsg) []key.Key {
	if msg.Type == tea.KeyRunes {
		return runeKeys(msg)
	}
	if k, ok := specialKeys[msg.Type]; ok {
		k.Alt = msg.Alt
		return []key.Key{k}
	}
	if msg.Type >= tea.KeyCtrlA && msg.Type <= tea.KeyCtrlZ {
		k := key.Ctrl(rune('a' + int(msg.Type-tea.KeyCtrlA)))
		k.Alt = msg.Alt
		return []key.Key{k}
	}
	return nil
}

func runeKeys(msg tea.KeyMsg) []key.Key {
	rs := msg.Runes
	if len(rs) == 1 && !msg.Paste {
		k := key.Rune(rs[0])
		k.Alt = msg.Alt
		return []key.Key{k}
	}
	text := strings.ReplaceAll(norm.NFC.String(string(rs)), "\r\n", "\n")
	out := make([]key.Key, 0, len(text))
	for _, r := range text {
		if r == '\r' {
			r = '\n'
		}
		out = append(out, key.Rune(r))
	}
	return out
}
