// ABOUTME: Tests for display-cell measurement helpers
// ABOUTME: Covers ASCII, CJK, ANSI sequences, fitting, truncation and padding

package width

import "testing"

func TestVisible(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  int
	}{
		{name: "empty", input: "", want: 0},
		{name: "ascii", input: "hello", want: 5},
		{name: "ansi colored", input: "\x1b[31mred\x1b[0m", want: 3},
		{name: "cjk", input: "你好", want: 4},
		{name: "only ansi", input: "\x1b[31m\x1b[0m", want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := Visible(tt.input); got != tt.want {
				t.Errorf("Visible(%q) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

func TestRune(t *testing.T) {
	t.Parallel()

	if Rune('a') != 1 || Rune('漢') != 2 || Rune('\t') != 1 {
		t.Errorf("Rune widths = %d %d %d", Rune('a'), Rune('漢'), Rune('\t'))
	}
	if got := Runes([]rune("a漢b")); got != 4 {
		t.Errorf("Runes() = %d, want 4", got)
	}
}

func TestFit(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		cells int
		want  int
	}{
		{"all fit", "abc", 5, 3},
		{"exact", "abc", 3, 3},
		{"cut", "abcdef", 4, 4},
		{"wide cut", "漢字漢", 5, 2},
		{"progress", "漢", 1, 1},
		{"empty", "", 3, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := Fit([]rune(tt.input), tt.cells); got != tt.want {
				t.Errorf("Fit(%q, %d) = %d, want %d", tt.input, tt.cells, got, tt.want)
			}
		})
	}
}

func TestTruncateAndPad(t *testing.T) {
	t.Parallel()

	if got := Truncate("hello world", 6); got != "hello…" {
		t.Errorf("Truncate() = %q", got)
	}
	if got := Truncate("hi", 6); got != "hi" {
		t.Errorf("Truncate() short = %q", got)
	}
	if got := PadRight("ab", 4); got != "ab  " {
		t.Errorf("PadRight() = %q", got)
	}
	if got := PadRight("abcdef", 4); Visible(got) != 4 {
		t.Errorf("PadRight() wide = %q", got)
	}
}
