// ABOUTME: Display-cell measurement for runes and styled strings
// ABOUTME: Rune widths come from go-runewidth; string widths are grapheme-aware via uniseg

package width

import (
	"strings"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// Rune returns the number of cells r occupies. Zero-width and control runes
// count as one cell so that every rune in an editable buffer is addressable.
func Rune(r rune) int {
	if r < 0x80 {
		return 1
	}
	if w := runewidth.RuneWidth(r); w > 0 {
		return w
	}
	return 1
}

// Runes returns the summed cell width of rs.
func Runes(rs []rune) int {
	w := 0
	for _, r := range rs {
		w += Rune(r)
	}
	return w
}

// Fit returns how many leading runes of rs fit in cells columns. At least one
// rune is always reported when rs is non-empty so callers make progress.
func Fit(rs []rune, cells int) int {
	w := 0
	for i, r := range rs {
		w += Rune(r)
		if w > cells {
			return max(i, 1)
		}
	}
	return len(rs)
}

// Visible returns the display width of s. ANSI escape sequences contribute
// zero width and grapheme clusters are measured by their first rune.
func Visible(s string) int {
	if s == "" {
		return 0
	}
	if isPlainASCII(s) {
		return len(s)
	}
	s = StripANSI(s)
	w := 0
	state := -1
	for len(s) > 0 {
		var cluster string
		cluster, s, _, state = uniseg.FirstGraphemeClusterInString(s, state)
		r, _ := utf8.DecodeRuneInString(cluster)
		w += runewidth.RuneWidth(r)
	}
	return w
}

// Truncate cuts plain text s to at most cells columns, ending with an
// ellipsis when anything was removed.
func Truncate(s string, cells int) string {
	if cells <= 0 {
		return ""
	}
	if Visible(s) <= cells {
		return s
	}
	if cells == 1 {
		return "…"
	}
	rs := []rune(StripANSI(s))
	n := Fit(rs, cells-1)
	return string(rs[:n]) + "…"
}

// PadRight pads s with spaces to exactly cells columns, truncating first
// when s is wider.
func PadRight(s string, cells int) string {
	s = Truncate(s, cells)
	if gap := cells - Visible(s); gap > 0 {
		return s + strings.Repeat(" ", gap)
	}
	return s
}

// isPlainASCII returns true if s contains only printable ASCII.
func isPlainASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < 0x20 || s[i] > 0x7E {
			return false
		}
	}
	return true
}
