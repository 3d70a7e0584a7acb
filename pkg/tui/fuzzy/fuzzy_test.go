// ABOUTME: Tests for the fuzzy matching wrapper
// ABOUTME: Verifies match ranking and command-name completion

package fuzzy

import "testing"

func TestFind_BasicMatch(t *testing.T) {
	t.Parallel()

	items := []string{"quit", "clear", "help", "stop"}
	matches := Find("hlp", items)

	if len(matches) != 1 || matches[0].Str != "help" {
		t.Fatalf("expected only 'help', got %+v", matches)
	}
	if matches[0].Index != 2 {
		t.Errorf("Index = %d, want 2", matches[0].Index)
	}
}

func TestFind_NoMatch(t *testing.T) {
	t.Parallel()

	matches := Find("zzz", []string{"cat", "dog", "fish"})
	if len(matches) != 0 {
		t.Errorf("expected no matches, got %d", len(matches))
	}
}

func TestComplete(t *testing.T) {
	t.Parallel()

	items := []string{"quit", "write", "clear", "stop", "help"}
	tests := []struct {
		name    string
		pattern string
		want    string
		ok      bool
	}{
		{"prefix", "cl", "clear", true},
		{"exact", "stop", "stop", true},
		{"fuzzy", "hp", "help", true},
		{"none", "zz", "", false},
		{"empty", "", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, ok := Complete(tt.pattern, items)
			if got != tt.want || ok != tt.ok {
				t.Errorf("Complete(%q) = %q, %v; want %q, %v", tt.pattern, got, ok, tt.want, tt.ok)
			}
		})
	}
}
