// ABOUTME: Edit session that coalesces interactive keystrokes into one edit
// ABOUTME: Text is buffered outside the piece list until the session commits

package piecetable

// InsertMode selects where an edit session inserts its text.
type InsertMode struct {
	append bool
	at     int
}

// AppendMode inserts at the end of the content as it is when the session begins.
func AppendMode() InsertMode { return InsertMode{append: true} }

// InsertAt inserts at rune offset idx. Out of range offsets are clamped.
func InsertAt(idx int) InsertMode { return InsertMode{at: idx} }

// IsAppend reports whether the mode appends at the end of content.
func (m InsertMode) IsAppend() bool { return m.append }

// Offset returns the insert offset for non-append modes.
func (m InsertMode) Offset() int { return m.at }

type session struct {
	pos  int
	text []rune
}

// BeginSession opens an edit session. An already open session is committed
// first, so at most one session exists per table.
func (t *Table) BeginSession(mode InsertMode) {
	t.CommitSession()
	pos := t.length
	if !mode.append {
		pos = clamp(mode.at, 0, t.length)
	}
	t.sess = &session{pos: pos}
}

// AppendToSession buffers text in the open session. The committed piece
// list is not touched. When no session is open one is begun in append mode.
func (t *Table) AppendToSession(text string) {
	if t.sess == nil {
		t.BeginSession(AppendMode())
	}
	t.sess.text = append(t.sess.text, []rune(text)...)
}

// CommitSession inserts the buffered text as a single undo step, closes the
// session and returns the committed text. Empty sessions record nothing.
func (t *Table) CommitSession() string {
	s := t.sess
	if s == nil {
		return ""
	}
	t.sess = nil
	if len(s.text) == 0 {
		return ""
	}
	t.insertRunes(s.pos, s.text)
	t.hist.record(op{kind: opInsert, pos: s.pos, text: s.text})
	return string(s.text)
}

// SessionOpen reports whether an edit session is open.
func (t *Table) SessionOpen() bool { return t.sess != nil }

// SessionOffset returns the insert offset and buffered rune count of the
// open session, or (-1, 0) when none is open.
func (t *Table) SessionOffset() (int, int) {
	if t.sess == nil {
		return -1, 0
	}
	return t.sess.pos, len(t.sess.text)
}
