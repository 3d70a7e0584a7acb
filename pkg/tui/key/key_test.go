// ABOUTME: Table-driven tests for key notation formatting and parsing
// ABOUTME: Round-trips runes, control letters, named keys and modifiers

package key

import "testing"

func TestKey_String(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		key  Key
		want string
	}{
		{"rune", Rune('j'), "j"},
		{"upper", Rune('G'), "G"},
		{"colon", Rune(':'), ":"},
		{"space", Rune(' '), "space"},
		{"ctrl", Ctrl('r'), "ctrl+r"},
		{"alt", Key{Type: KeyRune, Rune: 'p', Alt: true}, "alt+p"},
		{"tab", Special(KeyTab), "tab"},
		{"backtab", Special(KeyBackTab), "shift+tab"},
		{"shift pgup", Key{Type: KeyPageUp, Shift: true}, "shift+pgup"},
		{"escape", Special(KeyEscape), "escape"},
		{"unknown", Special(KeyUnknown), "unknown"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := tt.key.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParse(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want Key
	}{
		{"j", Rune('j')},
		{"ctrl+r", Ctrl('r')},
		{"Ctrl+J", Ctrl('J')},
		{"enter", Special(KeyEnter)},
		{"esc", Special(KeyEscape)},
		{"shift+tab", Special(KeyBackTab)},
		{"pgdown", Special(KeyPageDown)},
		{"space", Rune(' ')},
		{"+", Rune('+')},
		{"ctrl++", Key{Type: KeyRune, Rune: '+', Ctrl: true}},
		{"alt+enter", Key{Type: KeyEnter, Alt: true}},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()
			got, err := Parse(tt.in)
			if err != nil {
				t.Fatalf("Parse(%q): %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("Parse(%q) = %+v, want %+v", tt.in, got, tt.want)
			}
		})
	}
}

func TestParse_RoundTrip(t *testing.T) {
	t.Parallel()

	for _, s := range []string{"ctrl+c", "tab", "shift+tab", "pgup", "G", "?", "alt+p", "space"} {
		k, err := Parse(s)
		if err != nil {
			t.Fatalf("Parse(%q): %v", s, err)
		}
		if k.String() != s {
			t.Errorf("Parse(%q).String() = %q", s, k.String())
		}
	}
}

func TestParse_Errors(t *testing.T) {
	t.Parallel()

	for _, s := range []string{"", "hyper+x", "notakey"} {
		if _, err := Parse(s); err == nil {
			t.Errorf("Parse(%q) should fail", s)
		}
	}
}

func TestKey_IsDigit(t *testing.T) {
	t.Parallel()

	if !Rune('7').IsDigit() || Rune('x').IsDigit() || Ctrl('1').IsDigit() {
		t.Error("IsDigit classification is wrong")
	}
}
