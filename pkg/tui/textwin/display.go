// ABOUTME: Display line model: styled segments tagged as prose or code with logical mapping
// ABOUTME: Maps display (row, col) coordinates to rune offsets in the logical text and back

package textwin

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Segment is a run of text with one style.
type Segment struct {
	Text  string
	Style Style
}

// Content classifies the text a display line came from.
type Content int

const (
	ContentProse Content = iota
	ContentCode
)

// CodePart says where in a code block a line sits.
type CodePart int

const (
	CodeNone  CodePart = iota
	CodeStart          // opening fence
	CodeLine           // body line
	CodeEnd            // closing fence
)

func (p CodePart) String() string {
	switch p {
	case CodeStart:
		return "start"
	case CodeLine:
		return "line"
	case CodeEnd:
		return "end"
	}
	return "none"
}

// Tag is the content tag of a display line. Block indexes the buffer's
// code blocks and is -1 for prose.
type Tag struct {
	Content Content
	Block   int
	Part    CodePart
}

// CodeBlock records the logical line span of a fenced block. End is -1
// while the fence is unterminated.
type CodeBlock struct {
	Start int
	End   int
	Lang  string
}

// Open reports whether the block has no closing fence.
func (b CodeBlock) Open() bool { return b.End < 0 }

// Line is one wrapped display row.
type Line struct {
	Segments   []Segment
	Length     int // runes
	Last       bool
	Tag        Tag
	Background lipgloss.Color
	LogicalRow int
	Offset     int // rune offset of the row start in the whole text

	// CursorAtEnd marks a cursor sitting one past the final rune.
	CursorAtEnd bool

	text []rune
	base []Style
}

// Text returns the row's plain text.
func (l Line) Text() string { return string(l.text) }

// Runes returns the row's runes. The slice must not be modified.
func (l Line) Runes() []rune { return l.text }

// Lines is a wrapped display-line sequence. It satisfies Layout.
type Lines []Line

// Rows returns the number of display rows.
func (ls Lines) Rows() int { return len(ls) }

// RowLength returns the rune length of row, or 0 when out of range.
func (ls Lines) RowLength(row int) int {
	if row < 0 || row >= len(ls) {
		return 0
	}
	return ls[row].Length
}

// RowRunes returns the runes of row, or nil when out of range.
func (ls Lines) RowRunes(row int) []rune {
	if row < 0 || row >= len(ls) {
		return nil
	}
	return ls[row].text
}

// String joins the segment text of every row, separating logical lines
// with newlines. For a plain wrap this reproduces the input text.
func (ls Lines) String() string {
	var sb strings.Builder
	for i, l := range ls {
		for _, s := range l.Segments {
			sb.WriteString(s.Text)
		}
		if l.Last && i < len(ls)-1 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

// OffsetAt maps a display position to a rune offset in the logical text.
func (ls Lines) OffsetAt(row, col int) int {
	if len(ls) == 0 {
		return 0
	}
	row = clamp(row, 0, len(ls)-1)
	l := ls[row]
	return l.Offset + clamp(col, 0, l.Length)
}

// PositionOf maps a rune offset to a display position. An offset on a
// soft-wrap boundary lands at the start of the following row.
func (ls Lines) PositionOf(offset int) (row, col int) {
	if len(ls) == 0 {
		return 0, 0
	}
	for i, l := range ls {
		end := l.Offset + l.Length
		if offset < l.Offset {
			break
		}
		if offset < end || (offset == end && (l.Last || i == len(ls)-1)) {
			return i, offset - l.Offset
		}
	}
	last := len(ls) - 1
	if offset <= ls[0].Offset {
		return 0, 0
	}
	return last, ls[last].Length
}

// RowSpan returns the rune offsets [start, end) of the logical line that
// contains display row, excluding its newline.
func (ls Lines) RowSpan(row int) (start, end int) {
	if len(ls) == 0 {
		return 0, 0
	}
	row = clamp(row, 0, len(ls)-1)
	first := row
	for first > 0 && !ls[first-1].Last {
		first--
	}
	last := row
	for last < len(ls)-1 && !ls[last].Last {
		last++
	}
	return ls[first].Offset, ls[last].Offset + ls[last].Length
}

func clamp(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
