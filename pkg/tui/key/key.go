// ABOUTME: Normalized key event (key code plus modifier flags) consumed by the dispatcher
// ABOUTME: String and Parse convert between keys and the "ctrl+r" notation used in keybinding files

package key

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Key is a normalized keyboard event. Control letters are KeyRune with Ctrl set.
type Key struct {
	Type  KeyType
	Rune  rune // For KeyRune
	Alt   bool
	Ctrl  bool
	Shift bool
}

// KeyType enumerates the kinds of key events the engine can receive.
type KeyType int

const (
	KeyRune      KeyType = iota // Printable character or ctrl+letter
	KeyEnter                    // Enter / Return
	KeyTab                      // Tab
	KeyBackTab                  // Shift+Tab
	KeyBackspace                // Backspace
	KeyDelete                   // Delete
	KeyUp                       // Arrow up
	KeyDown                     // Arrow down
	KeyLeft                     // Arrow left
	KeyRight                    // Arrow right
	KeyHome                     // Home
	KeyEnd                      // End
	KeyPageUp                   // Page Up
	KeyPageDown                 // Page Down
	KeyEscape                   // Escape
	KeyUnknown                  // Unrecognized input
)

var keyTypeNames = map[KeyType]string{
	KeyEnter:     "enter",
	KeyTab:       "tab",
	KeyBackTab:   "backtab",
	KeyBackspace: "backspace",
	KeyDelete:    "delete",
	KeyUp:        "up",
	KeyDown:      "down",
	KeyLeft:      "left",
	KeyRight:     "right",
	KeyHome:      "home",
	KeyEnd:       "end",
	KeyPageUp:    "pgup",
	KeyPageDown:  "pgdown",
	KeyEscape:    "escape",
}

var namedTypes = func() map[string]KeyType {
	m := make(map[string]KeyType, len(keyTypeNames)+3)
	for t, n := range keyTypeNames {
		m[n] = t
	}
	m["esc"] = KeyEscape
	m["return"] = KeyEnter
	m["space"] = KeyRune
	return m
}()

// Rune returns a plain printable key.
func Rune(r rune) Key { return Key{Type: KeyRune, Rune: r} }

// Ctrl returns ctrl plus a letter.
func Ctrl(r rune) Key { return Key{Type: KeyRune, Rune: r, Ctrl: true} }

// Special returns a non-rune key.
func Special(t KeyType) Key { return Key{Type: t} }

// IsRune reports whether k is an unmodified printable rune.
func (k Key) IsRune() bool { return k.Type == KeyRune && !k.Ctrl && !k.Alt }

// IsDigit reports whether k is an unmodified ASCII digit.
func (k Key) IsDigit() bool { return k.IsRune() && k.Rune >= '0' && k.Rune <= '9' }

// String returns the binding notation, e.g. "ctrl+r", "shift+tab", "G".
func (k Key) String() string {
	if k.Type == KeyBackTab {
		return "shift+tab"
	}
	var parts []string
	if k.Ctrl {
		parts = append(parts, "ctrl")
	}
	if k.Alt {
		parts = append(parts, "alt")
	}
	if k.Shift {
		parts = append(parts, "shift")
	}
	switch k.Type {
	case KeyRune:
		if k.Rune == ' ' {
			parts = append(parts, "space")
		} else {
			parts = append(parts, string(k.Rune))
		}
	case KeyUnknown:
		return "unknown"
	default:
		parts = append(parts, keyTypeNames[k.Type])
	}
	return strings.Join(parts, "+")
}

// Parse reads binding notation. Modifiers precede the key, separated by '+';
// a lone "+" is the plus key.
func Parse(s string) (Key, error) {
	if s == "" {
		return Key{}, fmt.Errorf("empty key")
	}
	if s == "+" {
		return Rune('+'), nil
	}
	parts := strings.Split(s, "+")
	last := parts[len(parts)-1]
	if last == "" {
		// "ctrl++"
		parts = parts[:len(parts)-1]
		parts[len(parts)-1] = "+"
		last = "+"
	}

	var k Key
	for _, mod := range parts[:len(parts)-1] {
		switch strings.ToLower(mod) {
		case "ctrl":
			k.Ctrl = true
		case "alt":
			k.Alt = true
		case "shift":
			k.Shift = true
		default:
			return Key{}, fmt.Errorf("key %q: unknown modifier %q", s, mod)
		}
	}

	if utf8.RuneCountInString(last) == 1 {
		r, _ := utf8.DecodeRuneInString(last)
		k.Type, k.Rune = KeyRune, r
		return k, nil
	}
	t, ok := namedTypes[strings.ToLower(last)]
	if !ok {
		return Key{}, fmt.Errorf("key %q: unknown key name %q", s, last)
	}
	k.Type = t
	if strings.EqualFold(last, "space") {
		k.Rune = ' '
	}
	if t == KeyTab && k.Shift {
		return Key{Type: KeyBackTab}, nil
	}
	return k, nil
}
