// ABOUTME: Piece table text store over an immutable original and an append-only add buffer
// ABOUTME: Supports rune-offset insert/delete, undo/redo, and unrecorded streaming appends

package piecetable

import "strings"

// compactThreshold is the piece count above which adjacent contiguous
// pieces are merged.
const compactThreshold = 100

type source uint8

const (
	srcOriginal source = iota
	srcAdd
)

type piece struct {
	src    source
	start  int
	length int
}

// Table is a piece table. Offsets are rune offsets into the logical content.
// The sum of piece lengths always equals the committed content length.
type Table struct {
	original []rune
	add      []rune
	pieces   []piece
	length   int

	sess *session
	hist *history
}

// New creates a Table holding text, with the default undo depth.
func New(text string) *Table {
	return NewWithDepth(text, DefaultDepth)
}

// NewWithDepth creates a Table whose history keeps at most depth edits.
func NewWithDepth(text string, depth int) *Table {
	t := &Table{hist: newHistory(depth)}
	t.original = []rune(text)
	if len(t.original) > 0 {
		t.pieces = []piece{{src: srcOriginal, start: 0, length: len(t.original)}}
	}
	t.length = len(t.original)
	return t
}

func (t *Table) buf(s source) []rune {
	if s == srcOriginal {
		return t.original
	}
	return t.add
}

// runes returns the committed content.
func (t *Table) runes() []rune {
	out := make([]rune, 0, t.length)
	for _, p := range t.pieces {
		out = append(out, t.buf(p.src)[p.start:p.start+p.length]...)
	}
	return out
}

// Content returns the current text, including the text of an open session
// at its insert position.
func (t *Table) Content() string {
	r := t.runes()
	if t.sess == nil || len(t.sess.text) == 0 {
		return string(r)
	}
	var sb strings.Builder
	sb.Grow(len(r) + len(t.sess.text))
	sb.WriteString(string(r[:t.sess.pos]))
	sb.WriteString(string(t.sess.text))
	sb.WriteString(string(r[t.sess.pos:]))
	return sb.String()
}

// Len returns the content length in runes, including open session text.
func (t *Table) Len() int {
	if t.sess != nil {
		return t.length + len(t.sess.text)
	}
	return t.length
}

// IsEmpty reports whether Content would return "".
func (t *Table) IsEmpty() bool { return t.Len() == 0 }

// Slice returns the content between rune offsets [start, end), clamped.
func (t *Table) Slice(start, end int) string {
	r := []rune(t.Content())
	start = clamp(start, 0, len(r))
	end = clamp(end, start, len(r))
	return string(r[start:end])
}

// Pieces returns the number of pieces in the committed list.
func (t *Table) Pieces() int { return len(t.pieces) }

// Insert places text at pos as one undo step. An open session is committed first.
func (t *Table) Insert(pos int, text string) {
	if text == "" {
		return
	}
	t.CommitSession()
	pos = clamp(pos, 0, t.length)
	r := []rune(text)
	t.insertRunes(pos, r)
	t.hist.record(op{kind: opInsert, pos: pos, text: r})
}

// AppendDirect appends text at the end without recording history. It is used
// for content that is not user-editable, such as a streamed response.
func (t *Table) AppendDirect(text string) {
	if text == "" {
		return
	}
	t.CommitSession()
	t.insertRunes(t.length, []rune(text))
}

// Delete removes count runes. Forward deletes [pos, pos+count); backward
// deletes [pos-count, pos). The range is clamped to the content and the
// removed text is returned. A non-empty deletion is one undo step.
func (t *Table) Delete(pos int, forward bool, count int) string {
	if count <= 0 {
		return ""
	}
	t.CommitSession()
	var start, end int
	if forward {
		start = clamp(pos, 0, t.length)
		end = min(start+count, t.length)
	} else {
		end = clamp(pos, 0, t.length)
		start = max(end-count, 0)
	}
	if start == end {
		return ""
	}
	removed := t.deleteRange(start, end-start)
	t.hist.record(op{kind: opDelete, pos: start, text: removed})
	return string(removed)
}

// Undo reverts the most recent edit. It is a no-op on empty history.
func (t *Table) Undo() bool {
	t.CommitSession()
	o, ok := t.hist.popUndo()
	if !ok {
		return false
	}
	switch o.kind {
	case opInsert:
		t.deleteRange(o.pos, len(o.text))
	case opDelete:
		t.insertRunes(o.pos, o.text)
	}
	t.compact()
	return true
}

// Redo re-applies the most recently undone edit. It is a no-op when nothing was undone.
func (t *Table) Redo() bool {
	t.CommitSession()
	o, ok := t.hist.popRedo()
	if !ok {
		return false
	}
	switch o.kind {
	case opInsert:
		t.insertRunes(o.pos, o.text)
	case opDelete:
		t.deleteRange(o.pos, len(o.text))
	}
	t.compact()
	return true
}

// SetDepth changes how many edits the history keeps. A depth of zero or
// less selects DefaultDepth.
func (t *Table) SetDepth(depth int) {
	t.hist.setDepth(depth)
}

// CanUndo returns true if there are edits to undo.
func (t *Table) CanUndo() bool {
	return len(t.hist.undo) > 0 || (t.sess != nil && len(t.sess.text) > 0)
}

// CanRedo returns true if there are edits to redo.
func (t *Table) CanRedo() bool { return len(t.hist.redo) > 0 }

// Clear empties the table and drops the session and history.
func (t *Table) Clear() {
	t.original = nil
	t.add = nil
	t.pieces = nil
	t.length = 0
	t.sess = nil
	t.hist.reset()
}

// insertRunes splits the piece under pos into before/inserted/after.
func (t *Table) insertRunes(pos int, r []rune) {
	start := len(t.add)
	t.add = append(t.add, r...)
	np := piece{src: srcAdd, start: start, length: len(r)}
	t.length += len(r)

	off := 0
	for i, p := range t.pieces {
		if pos == off {
			t.pieces = insertPieces(t.pieces, i, np)
			return
		}
		if pos < off+p.length {
			k := pos - off
			left := piece{src: p.src, start: p.start, length: k}
			right := piece{src: p.src, start: p.start + k, length: p.length - k}
			t.pieces[i] = left
			t.pieces = insertPieces(t.pieces, i+1, np, right)
			t.compact()
			return
		}
		off += p.length
	}

	// Appending right after the add-buffer tail extends the last piece.
	if n := len(t.pieces); n > 0 {
		last := &t.pieces[n-1]
		if last.src == srcAdd && last.start+last.length == start {
			last.length += len(r)
			return
		}
	}
	t.pieces = append(t.pieces, np)
}

// deleteRange removes n runes at pos and returns them.
func (t *Table) deleteRange(pos, n int) []rune {
	end := pos + n
	removed := make([]rune, 0, n)
	out := make([]piece, 0, len(t.pieces)+1)
	off := 0
	for _, p := range t.pieces {
		pEnd := off + p.length
		if pEnd <= pos || off >= end {
			out = append(out, p)
			off = pEnd
			continue
		}
		cutStart := max(pos, off) - off
		cutEnd := min(end, pEnd) - off
		removed = append(removed, t.buf(p.src)[p.start+cutStart:p.start+cutEnd]...)
		if cutStart > 0 {
			out = append(out, piece{src: p.src, start: p.start, length: cutStart})
		}
		if cutEnd < p.length {
			out = append(out, piece{src: p.src, start: p.start + cutEnd, length: p.length - cutEnd})
		}
		off = pEnd
	}
	t.pieces = out
	t.length -= len(removed)
	return removed
}

// compact merges neighbouring pieces that are contiguous in the same buffer
// once the list has grown past compactThreshold.
func (t *Table) compact() {
	if len(t.pieces) <= compactThreshold {
		return
	}
	out := t.pieces[:1]
	for _, p := range t.pieces[1:] {
		last := &out[len(out)-1]
		if last.src == p.src && last.start+last.length == p.start {
			last.length += p.length
			continue
		}
		out = append(out, p)
	}
	t.pieces = out
}

func insertPieces(ps []piece, i int, add ...piece) []piece {
	ps = append(ps, add...)
	copy(ps[i+len(add):], ps[i:len(ps)-len(add)])
	copy(ps[i:], add)
	return ps
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
