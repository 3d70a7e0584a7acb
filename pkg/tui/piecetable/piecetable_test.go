// ABOUTME: Tests for the piece table text store
// ABOUTME: Covers sessions, clamped deletes, undo/redo inverses, and compaction

package piecetable

import (
	"strings"
	"testing"
)

func TestTable_NewContent(t *testing.T) {
	t.Parallel()

	tb := New("hello")
	if got := tb.Content(); got != "hello" {
		t.Errorf("Content() = %q, want %q", got, "hello")
	}
	if tb.Len() != 5 {
		t.Errorf("Len() = %d, want 5", tb.Len())
	}
	if New("").Pieces() != 0 {
		t.Error("empty table should have no pieces")
	}
}

func TestTable_SessionBuffersUntilCommit(t *testing.T) {
	t.Parallel()

	tb := New("ac")
	tb.BeginSession(InsertAt(1))
	tb.AppendToSession("b")
	if tb.Pieces() != 1 {
		t.Errorf("pieces changed before commit: %d", tb.Pieces())
	}
	if got := tb.Content(); got != "abc" {
		t.Errorf("Content() with open session = %q, want %q", got, "abc")
	}
	if got := tb.CommitSession(); got != "b" {
		t.Errorf("CommitSession() = %q, want %q", got, "b")
	}
	if tb.SessionOpen() {
		t.Error("session should be closed after commit")
	}
	if tb.Pieces() != 3 {
		t.Errorf("Pieces() = %d, want 3 after split insert", tb.Pieces())
	}
}

func TestTable_SessionIsOneUndoStep(t *testing.T) {
	t.Parallel()

	tb := New("")
	tb.BeginSession(AppendMode())
	for _, r := range "hello" {
		tb.AppendToSession(string(r))
	}
	tb.CommitSession()

	if !tb.Undo() {
		t.Fatal("Undo() = false, want true")
	}
	if got := tb.Content(); got != "" {
		t.Errorf("Content() after undo = %q, want empty", got)
	}
	if tb.Undo() {
		t.Error("second Undo() should be a no-op")
	}
}

func TestTable_EmptySessionRecordsNothing(t *testing.T) {
	t.Parallel()

	tb := New("x")
	tb.BeginSession(AppendMode())
	if got := tb.CommitSession(); got != "" {
		t.Errorf("CommitSession() = %q, want empty", got)
	}
	if tb.CanUndo() {
		t.Error("empty session should not be undoable")
	}
}

func TestTable_BeginCommitsOpenSession(t *testing.T) {
	t.Parallel()

	tb := New("")
	tb.BeginSession(AppendMode())
	tb.AppendToSession("ab")
	tb.BeginSession(InsertAt(0))
	tb.AppendToSession("X")
	tb.CommitSession()

	if got := tb.Content(); got != "Xab" {
		t.Errorf("Content() = %q, want %q", got, "Xab")
	}
	tb.Undo()
	if got := tb.Content(); got != "ab" {
		t.Errorf("after one undo = %q, want %q", got, "ab")
	}
}

func TestTable_Delete(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		pos     int
		forward bool
		count   int
		want    string
		removed string
	}{
		{"forward", 1, true, 2, "hlo", "el"},
		{"backward", 3, false, 2, "hlo", "el"},
		{"forward clamps", 3, true, 99, "hel", "lo"},
		{"backward clamps", 2, false, 99, "llo", "he"},
		{"past end", 9, true, 1, "hello", ""},
		{"zero count", 2, true, 0, "hello", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			tb := New("hello")
			got := tb.Delete(tt.pos, tt.forward, tt.count)
			if got != tt.removed {
				t.Errorf("Delete() = %q, want %q", got, tt.removed)
			}
			if c := tb.Content(); c != tt.want {
				t.Errorf("Content() = %q, want %q", c, tt.want)
			}
		})
	}
}

func TestTable_DeleteAcrossPieces(t *testing.T) {
	t.Parallel()

	tb := New("abef")
	tb.Insert(2, "cd")
	tb.Delete(1, true, 4)
	if got := tb.Content(); got != "af" {
		t.Errorf("Content() = %q, want %q", got, "af")
	}
	tb.Undo()
	if got := tb.Content(); got != "abcdef" {
		t.Errorf("after undo = %q, want %q", got, "abcdef")
	}
}

func TestTable_UndoRedoInverse(t *testing.T) {
	t.Parallel()

	tb := New("base")
	edits := []func(){
		func() { tb.BeginSession(AppendMode()); tb.AppendToSession(" one"); tb.CommitSession() },
		func() { tb.BeginSession(InsertAt(0)); tb.AppendToSession(">> "); tb.CommitSession() },
		func() { tb.Delete(3, true, 2) },
		func() { tb.BeginSession(InsertAt(5)); tb.AppendToSession("é漢"); tb.CommitSession() },
	}
	snapshots := []string{tb.Content()}
	for _, e := range edits {
		e()
		snapshots = append(snapshots, tb.Content())
	}
	for i := len(edits) - 1; i >= 0; i-- {
		tb.Undo()
		if got := tb.Content(); got != snapshots[i] {
			t.Fatalf("undo to step %d = %q, want %q", i, got, snapshots[i])
		}
	}
	for i := 1; i <= len(edits); i++ {
		tb.Redo()
		if got := tb.Content(); got != snapshots[i] {
			t.Fatalf("redo to step %d = %q, want %q", i, got, snapshots[i])
		}
	}
}

func TestTable_RedoClearedOnNewEdit(t *testing.T) {
	t.Parallel()

	tb := New("")
	tb.Insert(0, "a")
	tb.Undo()
	tb.Insert(0, "b")
	if tb.CanRedo() {
		t.Error("redo should be cleared after a new edit")
	}
	if tb.Redo() {
		t.Error("Redo() should be a no-op")
	}
}

func TestTable_AppendDirectIsNotRecorded(t *testing.T) {
	t.Parallel()

	tb := New("")
	tb.AppendDirect("chunk one, ")
	tb.AppendDirect("chunk two")
	if got := tb.Content(); got != "chunk one, chunk two" {
		t.Errorf("Content() = %q", got)
	}
	if tb.Pieces() != 1 {
		t.Errorf("Pieces() = %d, want 1 for consecutive appends", tb.Pieces())
	}
	if tb.CanUndo() {
		t.Error("AppendDirect should not be undoable")
	}
}

func TestTable_Compaction(t *testing.T) {
	t.Parallel()

	tb := New(strings.Repeat("x", 10))
	for i := 0; i < 150; i++ {
		tb.Insert(i%10, "y")
	}
	for tb.Undo() {
	}
	if got := tb.Content(); got != strings.Repeat("x", 10) {
		t.Errorf("Content() = %q after full undo", got)
	}
	if tb.Pieces() > compactThreshold {
		t.Errorf("Pieces() = %d, want <= %d", tb.Pieces(), compactThreshold)
	}
}

func TestTable_DepthEvictsOldest(t *testing.T) {
	t.Parallel()

	tb := NewWithDepth("", 2)
	tb.Insert(0, "a")
	tb.Insert(1, "b")
	tb.Insert(2, "c")
	for tb.Undo() {
	}
	if got := tb.Content(); got != "a" {
		t.Errorf("Content() = %q, want %q", got, "a")
	}
}

func TestTable_RedoRespectsDepth(t *testing.T) {
	t.Parallel()

	tb := NewWithDepth("", 3)
	tb.Insert(0, "a")
	tb.Insert(1, "b")
	tb.Insert(2, "c")
	tb.Undo()
	tb.SetDepth(2)
	if !tb.Redo() {
		t.Fatal("Redo() = false, want true")
	}
	if got := tb.Content(); got != "abc" {
		t.Fatalf("Content() = %q, want abc", got)
	}

	undone := 0
	for tb.Undo() {
		undone++
	}
	if undone != 2 {
		t.Errorf("undid %d edits, want 2", undone)
	}
	if got := tb.Content(); got != "a" {
		t.Errorf("Content() = %q, want a", got)
	}
}

func TestTable_UndoRedoCyclesKeepDepth(t *testing.T) {
	t.Parallel()

	tb := NewWithDepth("", 2)
	for _, s := range []string{"a", "b", "c", "d"} {
		tb.Insert(tb.Len(), s)
	}
	for range 5 {
		tb.Undo()
		tb.Redo()
	}
	if n := len(tb.hist.undo); n > 2 {
		t.Errorf("undo stack holds %d entries, depth is 2", n)
	}
}

func TestTable_Clear(t *testing.T) {
	t.Parallel()

	tb := New("abc")
	tb.Insert(3, "d")
	tb.AppendToSession("e")
	tb.Clear()
	if !tb.IsEmpty() || tb.CanUndo() || tb.SessionOpen() {
		t.Error("Clear() should drop content, history and session")
	}
}

func TestTable_Slice(t *testing.T) {
	t.Parallel()

	tb := New("hello world")
	if got := tb.Slice(6, 99); got != "world" {
		t.Errorf("Slice() = %q, want %q", got, "world")
	}
}
