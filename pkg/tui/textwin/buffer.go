// ABOUTME: Text buffer composing piece table, cursor and wrapped display lines
// ABOUTME: Edits are made at the cursor's logical offset; the layout is rebuilt after content changes

package textwin

import (
	"strings"

	"github.com/mauromedda/panechat/pkg/tui/piecetable"
)

// Buffer is the editable text of one window.
type Buffer struct {
	table  *piecetable.Table
	cursor Cursor
	cells  int
	wrap   *Wrapper

	layout     Lines
	blocks     []CodeBlock
	lines      Lines
	linesValid bool
	showCursor bool
}

// NewBuffer creates a buffer holding text. A nil highlighter leaves code
// blocks uncolored.
func NewBuffer(text string, undoDepth int, hl Highlighter) *Buffer {
	b := &Buffer{
		table: piecetable.NewWithDepth(text, undoDepth),
		cells: 1,
		wrap:  NewWrapper(hl),
	}
	b.relayout(0)
	return b
}

// relayout rewraps the content and places the cursor at offset. When the
// offset is unchanged the desired column survives for vertical moves.
func (b *Buffer) relayout(offset int) {
	same := b.layout != nil && b.Offset() == offset
	desired := b.cursor.desiredCol
	b.layout, b.blocks = b.wrap.Wrap(b.table.Content(), b.cells)
	row, col := b.layout.PositionOf(offset)
	b.cursor.SetPosition(row, col, b.layout)
	if same {
		b.cursor.desiredCol = desired
	}
	b.linesValid = false
}

// Offset returns the cursor's rune offset in the content.
func (b *Buffer) Offset() int {
	return b.layout.OffsetAt(b.cursor.Row, b.cursor.Col)
}

// Content returns the text including any uncommitted session text.
func (b *Buffer) Content() string { return b.table.Content() }

// IsEmpty reports whether the buffer has no text.
func (b *Buffer) IsEmpty() bool { return b.table.IsEmpty() }

// SetWidth sets the wrap width in cells and reports whether it changed.
// The cursor keeps its logical offset across the rewrap.
func (b *Buffer) SetWidth(cells int) bool {
	cells = max(cells, 1)
	if cells == b.cells {
		return false
	}
	off := b.Offset()
	b.cells = cells
	b.relayout(off)
	return true
}

// Width returns the wrap width in cells.
func (b *Buffer) Width() int { return b.cells }

// InsertCreate opens an edit session.
func (b *Buffer) InsertCreate(mode piecetable.InsertMode) {
	b.table.BeginSession(mode)
}

// InsertAtCursor opens an edit session at the cursor.
func (b *Buffer) InsertAtCursor() {
	b.table.BeginSession(piecetable.InsertAt(b.Offset()))
}

// InsertAdd types text into the open session, opening one at the cursor
// when needed, and moves the cursor past it.
func (b *Buffer) InsertAdd(text string) {
	if text == "" {
		return
	}
	if !b.table.SessionOpen() {
		b.InsertAtCursor()
	}
	b.table.AppendToSession(text)
	pos, n := b.table.SessionOffset()
	b.relayout(pos + n)
}

// InsertCommit closes the session as one undo step and returns its text.
func (b *Buffer) InsertCommit() string {
	return b.table.CommitSession()
}

// SessionOpen reports whether an edit session is open.
func (b *Buffer) SessionOpen() bool { return b.table.SessionOpen() }

// DeleteChar deletes the rune under the cursor.
func (b *Buffer) DeleteChar() string {
	return b.delete(true, 1)
}

// DeleteBackspace deletes the rune before the cursor.
func (b *Buffer) DeleteBackspace() string {
	return b.delete(false, 1)
}

// DeleteChars deletes up to n runes forward from the cursor.
func (b *Buffer) DeleteChars(n int) string {
	return b.delete(true, n)
}

func (b *Buffer) delete(forward bool, n int) string {
	reopen := b.table.SessionOpen()
	off := b.Offset()
	removed := b.table.Delete(off, forward, n)
	if !forward {
		off -= len([]rune(removed))
	}
	b.relayout(off)
	if reopen {
		b.table.BeginSession(piecetable.InsertAt(off))
	}
	return removed
}

// Undo reverts the last edit, keeping the cursor offset where possible.
func (b *Buffer) Undo() bool {
	off := b.Offset()
	ok := b.table.Undo()
	if ok {
		b.relayout(min(off, b.table.Len()))
	}
	return ok
}

// Redo re-applies the last undone edit.
func (b *Buffer) Redo() bool {
	off := b.Offset()
	ok := b.table.Redo()
	if ok {
		b.relayout(min(off, b.table.Len()))
	}
	return ok
}

// MoveCursor applies a motion. An open session holding text is committed
// and reopened at the new position so typing continues where the cursor is.
func (b *Buffer) MoveCursor(m Motion) {
	reopen := b.table.SessionOpen()
	if reopen {
		b.table.CommitSession()
	}
	b.cursor.Move(m, b.layout)
	b.linesValid = false
	if reopen {
		b.InsertAtCursor()
	}
}

// Cursor returns the cursor position in display coordinates.
func (b *Buffer) Cursor() Position { return b.cursor.Position() }

// DesiredCol returns the cursor's desired column.
func (b *Buffer) DesiredCol() int { return b.cursor.DesiredCol() }

// SetCursorOffset moves the cursor to a logical offset.
func (b *Buffer) SetCursorOffset(offset int) {
	row, col := b.layout.PositionOf(offset)
	b.cursor.SetPosition(row, col, b.layout)
	b.linesValid = false
}

// SetCursorVisible toggles painting of the cursor cell.
func (b *Buffer) SetCursorVisible(v bool) {
	if b.showCursor != v {
		b.showCursor = v
		b.linesValid = false
	}
}

// SetSelection arms or clears the selection anchor.
func (b *Buffer) SetSelection(enable bool) {
	b.cursor.SetSelection(enable)
	b.linesValid = false
}

// Selecting reports whether a selection is armed.
func (b *Buffer) Selecting() bool { return b.cursor.Selecting() }

// SelectionBounds returns the row-major ordered selection bounds.
func (b *Buffer) SelectionBounds() (int, int, int, int) {
	return b.cursor.SelectionBounds()
}

// selectionSpan returns the [start, end) offsets of the inclusive selection.
func (b *Buffer) selectionSpan() (int, int) {
	sr, sc, er, ec := b.cursor.SelectionBounds()
	start := b.layout.OffsetAt(sr, sc)
	end := min(b.layout.OffsetAt(er, ec)+1, b.table.Len())
	return start, max(end, start)
}

// SelectedText returns the selected text, or "" without a selection.
func (b *Buffer) SelectedText() string {
	if !b.cursor.Selecting() {
		return ""
	}
	start, end := b.selectionSpan()
	return b.table.Slice(start, end)
}

// DeleteSelection removes the selected text as one undo step and clears
// the selection.
func (b *Buffer) DeleteSelection() string {
	if !b.cursor.Selecting() {
		return ""
	}
	start, end := b.selectionSpan()
	b.cursor.SetSelection(false)
	removed := b.table.Delete(start, true, end-start)
	b.relayout(start)
	return removed
}

// lineSpan returns the offsets covering n logical lines from the cursor's
// line, excluding the final newline, and whether the span reaches the end.
func (b *Buffer) lineSpan(n int) (start, end int, atEnd bool) {
	start, end = b.layout.RowSpan(b.cursor.Row)
	content := []rune(b.table.Content())
	for i := 1; i < n && end < len(content); i++ {
		end++
		for end < len(content) && content[end] != '\n' {
			end++
		}
	}
	return start, end, end >= len(content)
}

// YankLines returns n logical lines starting at the cursor's line.
func (b *Buffer) YankLines(n int) string {
	start, end, _ := b.lineSpan(n)
	return b.table.Slice(start, end)
}

// DeleteLines removes n logical lines starting at the cursor's line,
// together with one adjoining newline, and returns the removed lines.
func (b *Buffer) DeleteLines(n int) string {
	b.table.CommitSession()
	start, end, atEnd := b.lineSpan(n)
	text := b.table.Slice(start, end)
	switch {
	case !atEnd:
		end++
	case start > 0:
		start--
	}
	b.table.Delete(start, true, end-start)
	b.relayout(start)
	if atEnd && start > 0 {
		// Land on the start of the line that is now last.
		s, _ := b.layout.RowSpan(b.cursor.Row)
		b.SetCursorOffset(s)
	}
	return text
}

// Paste inserts text as one undo step. Linewise text goes below the
// cursor's logical line; otherwise it goes after the cursor rune.
func (b *Buffer) Paste(text string, linewise bool) {
	if text == "" {
		return
	}
	b.table.CommitSession()
	if linewise {
		_, end := b.layout.RowSpan(b.cursor.Row)
		b.table.Insert(end, "\n"+strings.TrimSuffix(text, "\n"))
		b.relayout(end + 1)
		return
	}
	off := b.Offset()
	if b.layout.RowLength(b.cursor.Row) > 0 {
		_, lineEnd := b.layout.RowSpan(b.cursor.Row)
		off = min(off+1, lineEnd)
	}
	b.table.Insert(off, text)
	b.relayout(off + len([]rune(text)) - 1)
}

// AppendText appends text at the end without recording history. The
// cursor keeps its offset.
func (b *Buffer) AppendText(text string) {
	if text == "" {
		return
	}
	off := b.Offset()
	b.table.AppendDirect(text)
	b.relayout(off)
}

// Clear empties the buffer, its history and any selection.
func (b *Buffer) Clear() {
	b.table.Clear()
	b.cursor = Cursor{}
	b.relayout(0)
}

// Lines returns the decorated display lines.
func (b *Buffer) Lines() Lines {
	if !b.linesValid {
		sr, sc, er, ec := b.cursor.SelectionBounds()
		b.lines = Decorate(b.layout, Decoration{
			Cursor:     b.cursor.Position(),
			ShowCursor: b.showCursor,
			Selecting:  b.cursor.Selecting(),
			Start:      Position{Row: sr, Col: sc},
			End:        Position{Row: er, Col: ec},
		})
		b.linesValid = true
	}
	return b.lines
}

// Rows returns the number of display rows.
func (b *Buffer) Rows() int { return len(b.layout) }

// CodeBlocks returns the fenced blocks found in the content.
func (b *Buffer) CodeBlocks() []CodeBlock { return b.blocks }

// CurrentTag returns the content tag of the cursor's row.
func (b *Buffer) CurrentTag() Tag {
	if len(b.layout) == 0 {
		return Tag{Block: -1}
	}
	return b.layout[b.cursor.Row].Tag
}

// InOpenCodeBlock reports whether the cursor sits inside an unterminated fence.
func (b *Buffer) InOpenCodeBlock() bool {
	t := b.CurrentTag()
	return t.Content == ContentCode && t.Block >= 0 && t.Block < len(b.blocks) && b.blocks[t.Block].Open()
}

// CloseOpenCodeBlock appends a closing fence when the cursor is inside an
// unterminated block. The cursor keeps its offset.
func (b *Buffer) CloseOpenCodeBlock() bool {
	if !b.InOpenCodeBlock() {
		return false
	}
	b.table.CommitSession()
	off := b.Offset()
	content := b.table.Content()
	closing := fence
	if !strings.HasSuffix(content, "\n") {
		closing = "\n" + fence
	}
	b.table.Insert(b.table.Len(), closing)
	b.relayout(off)
	return true
}

// SetUndoDepth changes how many edits the history keeps.
func (b *Buffer) SetUndoDepth(depth int) { b.table.SetDepth(depth) }

// CanUndo reports whether an edit can be undone.
func (b *Buffer) CanUndo() bool { return b.table.CanUndo() }
