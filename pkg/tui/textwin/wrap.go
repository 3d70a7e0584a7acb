// ABOUTME: Line wrapper projecting logical text onto width-bounded display lines
// ABOUTME: Greedy word wrap for prose, hard wrap for fenced code, cursor/selection decoration

package textwin

import (
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mauromedda/panechat/pkg/tui/theme"
	"github.com/mauromedda/panechat/pkg/tui/width"
)

const fence = "```"

// Decoration carries the cursor and selection to paint over a layout.
// Start and End are the ordered, inclusive selection bounds.
type Decoration struct {
	Cursor     Position
	ShowCursor bool
	Selecting  bool
	Start      Position
	End        Position
}

// Project wraps text at cells columns and paints d over the result.
func Project(text string, cells int, hl Highlighter, d Decoration) (Lines, []CodeBlock) {
	lines, blocks := Wrap(text, cells, hl)
	return Decorate(lines, d), blocks
}

type logicalLine struct {
	text []rune
	tag  Tag
	fg   []lipgloss.Color
}

// Wrap converts text into display lines no wider than cells columns (a
// single rune wider than cells still occupies its own row). Wrapping the
// same input twice yields identical output.
func Wrap(text string, cells int, hl Highlighter) (Lines, []CodeBlock) {
	return NewWrapper(hl).Wrap(text, cells)
}

// Wrapper wraps like Wrap but remembers its previous result. Leading
// logical lines whose text, tag and colors are unchanged keep their display
// lines, and code blocks are only re-tokenised when their body changed, so
// appending to the end costs in proportion to the last line.
type Wrapper struct {
	hl Highlighter

	cells    int
	th       *theme.Theme
	logical  []logicalLine
	firstRow []int // index in lines of each logical line's first row
	lines    Lines
	colors   []blockColors
}

// NewWrapper returns a Wrapper. A nil highlighter leaves code uncolored.
func NewWrapper(hl Highlighter) *Wrapper {
	return &Wrapper{hl: hl}
}

// Wrap wraps text at cells columns. The result equals Wrap(text, cells, hl).
func (w *Wrapper) Wrap(text string, cells int) (Lines, []CodeBlock) {
	cells = max(cells, 1)
	logical, blocks := classify(text)
	if w.hl != nil {
		w.colors = colorBlocks(logical, blocks, w.hl, w.colors)
	}

	th := theme.Current()
	keep := 0
	if cells == w.cells && th == w.th {
		keep = w.unchanged(logical)
	}

	rows := 0
	if keep > 0 {
		rows = w.firstRow[keep]
	}
	out := make(Lines, rows, rows+len(logical)-keep)
	copy(out, w.lines[:rows])
	firstRow := make([]int, len(logical)+1)
	copy(firstRow, w.firstRow[:keep])

	offset := 0
	if keep > 0 {
		last := w.lines[rows-1]
		offset = last.Offset + last.Length + 1
	}
	for i := keep; i < len(logical); i++ {
		ll := logical[i]
		firstRow[i] = len(out)
		var spans [][2]int
		if ll.tag.Content == ContentCode {
			spans = hardWrap(ll.text, cells)
		} else {
			spans = wordWrap(ll.text, cells)
		}
		for j, r := range spans {
			out = append(out, buildLine(ll, i, offset, r[0], r[1], j == len(spans)-1))
		}
		offset += len(ll.text) + 1
	}
	firstRow[len(logical)] = len(out)

	w.cells, w.th = cells, th
	w.logical, w.firstRow, w.lines = logical, firstRow, out
	return out, blocks
}

// unchanged counts the leading logical lines identical to the last call.
func (w *Wrapper) unchanged(logical []logicalLine) int {
	n := min(len(logical), len(w.logical))
	i := 0
	for i < n && sameLine(w.logical[i], logical[i]) {
		i++
	}
	return i
}

func sameLine(a, b logicalLine) bool {
	return a.tag == b.tag && slices.Equal(a.text, b.text) && slices.Equal(a.fg, b.fg)
}

// classify splits text into logical lines and tags fenced code. A line
// whose trimmed text begins with ``` opens a block; inside a block only a
// bare ``` closes it. An unterminated block runs to the end of text.
func classify(text string) ([]logicalLine, []CodeBlock) {
	parts := strings.Split(text, "\n")
	logical := make([]logicalLine, len(parts))
	var blocks []CodeBlock
	open := -1
	for i, p := range parts {
		ll := logicalLine{text: []rune(p), tag: Tag{Content: ContentProse, Block: -1}}
		trimmed := strings.TrimSpace(p)
		switch {
		case open < 0 && strings.HasPrefix(trimmed, fence):
			blocks = append(blocks, CodeBlock{Start: i, End: -1, Lang: strings.TrimSpace(trimmed[len(fence):])})
			open = len(blocks) - 1
			ll.tag = Tag{Content: ContentCode, Block: open, Part: CodeStart}
		case open >= 0 && trimmed == fence:
			blocks[open].End = i
			ll.tag = Tag{Content: ContentCode, Block: open, Part: CodeEnd}
			open = -1
		case open >= 0:
			ll.tag = Tag{Content: ContentCode, Block: open, Part: CodeLine}
		}
		logical[i] = ll
	}
	return logical, blocks
}

// colorBlocks highlights each block body in one pass so multi-line tokens
// keep their colors, then spreads the colors back over the lines. prev holds
// the colors of the last call by block index; the new set is returned.
func colorBlocks(logical []logicalLine, blocks []CodeBlock, hl Highlighter, prev []blockColors) []blockColors {
	out := make([]blockColors, len(blocks))
	for bi, b := range blocks {
		end := b.End
		if end < 0 {
			end = len(logical)
		}
		first := b.Start + 1
		var sb strings.Builder
		for i := first; i < end; i++ {
			if i > first {
				sb.WriteByte('\n')
			}
			sb.WriteString(string(logical[i].text))
		}
		body := sb.String()
		out[bi] = highlightBlock(hl, previousBlock(prev, bi, b.Lang, body), b, body)

		colors := out[bi].colors
		pos := 0
		for i := first; i < end; i++ {
			n := len(logical[i].text)
			if pos < len(colors) {
				logical[i].fg = colors[pos:min(pos+n, len(colors))]
			}
			pos += n + 1
		}
	}
	return out
}

// previousBlock picks the earlier colors for block bi: the block at the
// same index, or any whole block with the same body when blocks moved.
func previousBlock(prev []blockColors, bi int, lang, body string) *blockColors {
	if bi < len(prev) && prev[bi].lang == lang && strings.HasPrefix(body, prev[bi].body) {
		return &prev[bi]
	}
	for i := range prev {
		if prev[i].whole && prev[i].lang == lang && prev[i].body == body {
			return &prev[i]
		}
	}
	return nil
}

// wordWrap returns [start, end) rune ranges for each display row. Words
// move whole to the next row; a word wider than cells is hard-split.
// Spaces hang at the end of the row they follow while the row has room;
// the rest of a long run of spaces continues on the next row.
func wordWrap(rs []rune, cells int) [][2]int {
	var rows [][2]int
	start, w := 0, 0
	for i := 0; i < len(rs); {
		if rs[i] == ' ' {
			if w >= cells {
				rows = append(rows, [2]int{start, i})
				start, w = i, 0
			}
			w++
			i++
			continue
		}
		j := i
		for j < len(rs) && rs[j] != ' ' {
			j++
		}
		ww := width.Runes(rs[i:j])
		switch {
		case w+ww <= cells:
			w += ww
		case ww <= cells:
			rows = append(rows, [2]int{start, i})
			start, w = i, ww
		default:
			if w > 0 {
				rows = append(rows, [2]int{start, i})
				start, w = i, 0
			}
			for k := i; k < j; k++ {
				cw := width.Rune(rs[k])
				if w+cw > cells && w > 0 {
					rows = append(rows, [2]int{start, k})
					start, w = k, 0
				}
				w += cw
			}
		}
		i = j
	}
	return append(rows, [2]int{start, len(rs)})
}

// hardWrap splits rs at cell boundaries, preserving every space.
func hardWrap(rs []rune, cells int) [][2]int {
	var rows [][2]int
	start := 0
	for start < len(rs) {
		n := width.Fit(rs[start:], cells)
		if start+n == len(rs) {
			break
		}
		rows = append(rows, [2]int{start, start + n})
		start += n
	}
	return append(rows, [2]int{start, len(rs)})
}

func buildLine(ll logicalLine, logicalRow, offset, from, to int, last bool) Line {
	l := Line{
		Length:     to - from,
		Last:       last,
		Tag:        ll.tag,
		LogicalRow: logicalRow,
		Offset:     offset + from,
		text:       ll.text[from:to],
		base:       make([]Style, to-from),
	}
	if ll.tag.Content == ContentCode {
		l.Background = theme.Current().Palette.CodeBg
	}
	for k := range l.base {
		switch ll.tag.Part {
		case CodeStart, CodeEnd:
			l.base[k] = fenceStyle()
		case CodeLine:
			var fg lipgloss.Color
			if from+k < len(ll.fg) {
				fg = ll.fg[from+k]
			}
			l.base[k] = codeStyle(fg)
		}
	}
	l.Segments = segments(l.text, l.base, nil)
	return l
}

// Decorate returns a copy of lines with selection and cursor styles
// applied per rune. The input is not modified.
func Decorate(lines Lines, d Decoration) Lines {
	out := make(Lines, len(lines))
	sel, cur := selectionStyle(), cursorStyle()
	for row, l := range lines {
		nl := l
		nl.CursorAtEnd = false
		touched := (d.ShowCursor && d.Cursor.Row == row) ||
			(d.Selecting && row >= d.Start.Row && row <= d.End.Row)
		if !touched {
			out[row] = nl
			continue
		}
		styles := make([]Style, len(l.base))
		copy(styles, l.base)
		if d.Selecting {
			for col := range styles {
				if ShouldSelect(row, col, d.Start.Row, d.Start.Col, d.End.Row, d.End.Col) {
					styles[col] = sel
				}
			}
		}
		if d.ShowCursor && d.Cursor.Row == row {
			if d.Cursor.Col < len(styles) {
				styles[d.Cursor.Col] = cur
			} else {
				nl.CursorAtEnd = true
			}
		}
		nl.Segments = segments(l.text, styles, nil)
		out[row] = nl
	}
	return out
}

// segments coalesces runs of equal style.
func segments(rs []rune, styles []Style, dst []Segment) []Segment {
	if len(rs) == 0 {
		return dst
	}
	start := 0
	for i := 1; i <= len(rs); i++ {
		if i == len(rs) || styles[i] != styles[start] {
			dst = append(dst, Segment{Text: string(rs[start:i]), Style: styles[start]})
			start = i
		}
	}
	return dst
}
