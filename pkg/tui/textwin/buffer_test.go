// ABOUTME: Tests for the text buffer composing piece table, cursor and layout
// ABOUTME: Covers session typing, deletes, undo per session, selection, yank/paste and rewrap

package textwin

import (
	"testing"

	"github.com/mauromedda/panechat/pkg/tui/piecetable"
)

func newTestBuffer(text string, cells int) *Buffer {
	b := NewBuffer(text, 0, nil)
	b.SetWidth(cells)
	return b
}

func typeText(b *Buffer, s string) {
	for _, r := range s {
		b.InsertAdd(string(r))
	}
}

func TestBuffer_TypeCommitUndo(t *testing.T) {
	t.Parallel()

	b := newTestBuffer("", 20)
	b.InsertCreate(piecetable.AppendMode())
	typeText(b, "hello")
	if got := b.Content(); got != "hello" {
		t.Fatalf("Content() = %q", got)
	}
	if c := b.Cursor(); c.Col != 5 {
		t.Errorf("cursor col = %d, want 5", c.Col)
	}
	if got := b.InsertCommit(); got != "hello" {
		t.Errorf("InsertCommit() = %q", got)
	}
	b.Undo()
	if got := b.Content(); got != "" {
		t.Errorf("after undo = %q, want empty", got)
	}
	b.Redo()
	if got := b.Content(); got != "hello" {
		t.Errorf("after redo = %q", got)
	}
}

func TestBuffer_UndoIsPerSessionInverse(t *testing.T) {
	t.Parallel()

	b := newTestBuffer("start", 8)
	sessions := []string{" one", "\ntwo", " three four"}
	snap := []string{b.Content()}
	b.MoveCursor(EndOfFileEndOfLine)
	for _, s := range sessions {
		b.InsertAtCursor()
		typeText(b, s)
		b.InsertCommit()
		snap = append(snap, b.Content())
	}
	for i := len(sessions) - 1; i >= 0; i-- {
		b.Undo()
		if got := b.Content(); got != snap[i] {
			t.Fatalf("undo %d = %q, want %q", i, got, snap[i])
		}
	}
	if b.Undo() {
		t.Error("undo on empty history should report false")
	}
}

func TestBuffer_MoveDuringSessionKeepsTypingAtCursor(t *testing.T) {
	t.Parallel()

	b := newTestBuffer("ac", 20)
	b.InsertAtCursor()
	b.MoveCursor(Right)
	typeText(b, "b")
	b.InsertCommit()
	if got := b.Content(); got != "abc" {
		t.Errorf("Content() = %q, want %q", got, "abc")
	}
}

func TestBuffer_Deletes(t *testing.T) {
	t.Parallel()

	b := newTestBuffer("abc", 20)
	b.MoveCursor(Right)
	if got := b.DeleteChar(); got != "b" {
		t.Errorf("DeleteChar() = %q", got)
	}
	if got := b.DeleteBackspace(); got != "a" {
		t.Errorf("DeleteBackspace() = %q", got)
	}
	if got := b.Content(); got != "c" {
		t.Errorf("Content() = %q", got)
	}
	if b.Cursor().Col != 0 {
		t.Errorf("cursor col = %d, want 0", b.Cursor().Col)
	}
	if got := b.DeleteBackspace(); got != "" {
		t.Errorf("backspace at start = %q, want empty", got)
	}
}

func TestBuffer_BackspaceInSessionReopens(t *testing.T) {
	t.Parallel()

	b := newTestBuffer("", 20)
	b.InsertAtCursor()
	typeText(b, "abx")
	b.DeleteBackspace()
	typeText(b, "c")
	b.InsertCommit()
	if got := b.Content(); got != "abc" {
		t.Errorf("Content() = %q", got)
	}
}

func TestBuffer_SelectionText(t *testing.T) {
	t.Parallel()

	b := newTestBuffer("hello world", 40)
	b.MoveCursor(Right.Times(6))
	b.SetSelection(true)
	b.MoveCursor(EndOfLine)
	b.MoveCursor(Left)
	if got := b.SelectedText(); got != "world" {
		t.Errorf("SelectedText() = %q, want %q", got, "world")
	}

	// Dragging backwards yields the same ordered range.
	b.SetSelection(false)
	b.MoveCursor(Right)
	b.MoveCursor(Left)
	b.SetSelection(true)
	b.MoveCursor(Left.Times(4))
	if got := b.SelectedText(); got != "world" {
		t.Errorf("backward SelectedText() = %q", got)
	}

	if got := b.DeleteSelection(); got != "world" {
		t.Errorf("DeleteSelection() = %q", got)
	}
	if got := b.Content(); got != "hello " {
		t.Errorf("Content() = %q", got)
	}
	if b.Selecting() {
		t.Error("selection should be cleared")
	}
}

func TestBuffer_YankAndDeleteLines(t *testing.T) {
	t.Parallel()

	b := newTestBuffer("one\ntwo\nthree\nfour", 40)
	b.MoveCursor(Down)
	if got := b.YankLines(2); got != "two\nthree" {
		t.Errorf("YankLines(2) = %q", got)
	}
	if got := b.DeleteLines(2); got != "two\nthree" {
		t.Errorf("DeleteLines(2) = %q", got)
	}
	if got := b.Content(); got != "one\nfour" {
		t.Errorf("Content() = %q", got)
	}
	b.MoveCursor(EndOfFile)
	b.DeleteLines(1)
	if got := b.Content(); got != "one" {
		t.Errorf("deleting last line = %q, want %q", got, "one")
	}
	b.Undo()
	b.Undo()
	if got := b.Content(); got != "one\ntwo\nthree\nfour" {
		t.Errorf("after undo = %q", got)
	}
}

func TestBuffer_Paste(t *testing.T) {
	t.Parallel()

	b := newTestBuffer("ad\nz", 40)
	b.Paste("bc", false)
	if got := b.Content(); got != "abcd\nz" {
		t.Errorf("charwise paste = %q", got)
	}
	b.Paste("new line\n", true)
	if got := b.Content(); got != "abcd\nnew line\nz" {
		t.Errorf("linewise paste = %q", got)
	}
	if c := b.Cursor(); c.Row != 1 || c.Col != 0 {
		t.Errorf("cursor = %+v, want row 1 col 0", c)
	}
}

func TestBuffer_SetWidthKeepsOffset(t *testing.T) {
	t.Parallel()

	b := newTestBuffer("alpha beta gamma", 40)
	b.MoveCursor(Right.Times(11))
	if b.SetWidth(40) {
		t.Error("SetWidth with the same width should report false")
	}
	if !b.SetWidth(6) {
		t.Fatal("SetWidth should report a change")
	}
	if got := b.Offset(); got != 11 {
		t.Errorf("Offset() = %d, want 11", got)
	}
	if c := b.Cursor(); c.Row != 2 || c.Col != 0 {
		t.Errorf("cursor = %+v, want row 2 col 0", c)
	}
}

func TestBuffer_AppendTextNotUndoable(t *testing.T) {
	t.Parallel()

	b := newTestBuffer("", 20)
	b.AppendText("streamed ")
	b.AppendText("chunk")
	if got := b.Content(); got != "streamed chunk" {
		t.Errorf("Content() = %q", got)
	}
	if b.CanUndo() {
		t.Error("appended text should not be undoable")
	}
}

func TestBuffer_CloseOpenCodeBlock(t *testing.T) {
	t.Parallel()

	b := newTestBuffer("```go\nx := 1", 40)
	b.MoveCursor(EndOfFileEndOfLine)
	if !b.InOpenCodeBlock() {
		t.Fatal("cursor should be inside an open block")
	}
	if !b.CloseOpenCodeBlock() {
		t.Fatal("CloseOpenCodeBlock() = false")
	}
	if got := b.Content(); got != "```go\nx := 1\n```" {
		t.Errorf("Content() = %q", got)
	}
	if b.CloseOpenCodeBlock() {
		t.Error("closing twice should be a no-op")
	}
}

func TestBuffer_Clear(t *testing.T) {
	t.Parallel()

	b := newTestBuffer("text", 20)
	b.MoveCursor(EndOfLine)
	b.Clear()
	if !b.IsEmpty() || b.Cursor() != (Position{}) || b.CanUndo() {
		t.Error("Clear() should reset content, cursor and history")
	}
}

func TestBuffer_AppendTextKeepsDesiredColumn(t *testing.T) {
	t.Parallel()

	b := NewBuffer("abcdef\nab", 0, nil)
	b.SetWidth(20)
	b.MoveCursor(EndOfLine)
	b.MoveCursor(Down)
	if got := b.Cursor(); got != (Position{Row: 1, Col: 2}) {
		t.Fatalf("cursor = %+v, want row 1 col 2", got)
	}

	b.AppendText("xyz")
	if got := b.DesiredCol(); got != 6 {
		t.Errorf("DesiredCol() after append = %d, want 6", got)
	}
	b.MoveCursor(Up)
	if got := b.Cursor(); got != (Position{Row: 0, Col: 6}) {
		t.Errorf("cursor after Up = %+v, want row 0 col 6", got)
	}

	b.MoveCursor(Down)
	b.DeleteBackspace()
	if got := b.DesiredCol(); got != 4 {
		t.Errorf("DesiredCol() after backspace = %d, want 4", got)
	}
}
