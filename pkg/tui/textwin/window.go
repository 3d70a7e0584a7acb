// ABOUTME: Text window: a buffer plus mode, viewport scrolling and the render entry point
// ABOUTME: Widget rewraps only when the area width changes and keeps the cursor row visible

package textwin

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mauromedda/panechat/pkg/tui/theme"
)

// DefaultScrollStep is the number of rows ScrollUp and ScrollDown move.
const DefaultScrollStep = 10

// Padding is the blank column kept on each side of the text.
const Padding = 1

// Config configures a window.
type Config struct {
	UndoDepth   int
	ScrollStep  int
	Highlighter Highlighter
}

// SessionID is an opaque handle the host uses to find the conversation
// state that backs a window.
type SessionID string

// Area is the inner rectangle a window draws into, excluding borders.
type Area struct {
	Width  int
	Height int
}

// Frame is the renderable state of a window for one paint.
type Frame struct {
	Title       string
	Hint        string
	Status      Status
	Highlighted bool
	Border      lipgloss.Color
	Lines       Lines // visible rows only
	Placeholder string
	Padding     int
	Area        Area
	ScrollTop   int
	TotalRows   int
}

// Window is one pane: prompt editor, response viewer or command line.
type Window struct {
	mode    Mode
	buf     *Buffer
	area    Area
	scroll  int
	step    int
	session SessionID

	focused   bool
	follow    bool
	streaming bool

	lastRows int
	lastRow  int
}

// NewWindow creates an inactive window of kind k.
func NewWindow(k Kind, cfg Config) *Window {
	step := cfg.ScrollStep
	if step <= 0 {
		step = DefaultScrollStep
	}
	return &Window{
		mode:   NewMode(k),
		buf:    NewBuffer("", cfg.UndoDepth, cfg.Highlighter),
		step:   step,
		follow: true,
	}
}

// Buffer returns the window's text buffer.
func (w *Window) Buffer() *Buffer { return w.buf }

// Mode returns the window's mode.
func (w *Window) Mode() Mode { return w.mode }

// Kind returns the window kind.
func (w *Window) Kind() Kind { return w.mode.kind }

// Status returns the window status.
func (w *Window) Status() Status { return w.mode.status }

// IsEditable reports whether the kind accepts text edits.
func (w *Window) IsEditable() bool { return w.mode.IsEditable() }

// Session returns the window's session handle.
func (w *Window) Session() SessionID { return w.session }

// SetSession attaches a session handle.
func (w *Window) SetSession(id SessionID) { w.session = id }

// SetStatus transitions the window. Leaving Insert commits the open session;
// entering or leaving Visual clears the selection, and entering Visual arms
// it again at the cursor. Statuses the kind rejects are ignored.
func (w *Window) SetStatus(s Status) bool {
	if !w.mode.Accepts(s) {
		return false
	}
	prev := w.mode.status
	if prev == StatusInsert && s != StatusInsert {
		w.buf.InsertCommit()
	}
	if prev == StatusVisual || s == StatusVisual {
		w.buf.SetSelection(false)
	}
	w.mode.set(s, w.focused)
	switch s {
	case StatusVisual:
		w.buf.SetSelection(true)
	case StatusInsert:
		if !w.buf.SessionOpen() {
			w.buf.InsertAtCursor()
		}
	}
	w.buf.SetCursorVisible(w.focused)
	return true
}

// Focus makes the window the event target.
func (w *Window) Focus() {
	w.focused = true
	if s := w.mode.status; s == StatusInactive || s == StatusBackground || s == StatusNormal {
		w.mode.set(StatusNormal, true)
	}
	w.buf.SetCursorVisible(true)
}

// Blur removes focus, committing any session and dropping the selection.
func (w *Window) Blur() {
	w.focused = false
	if w.mode.status == StatusInsert {
		w.buf.InsertCommit()
	}
	w.buf.SetSelection(false)
	if w.streaming {
		w.mode.set(StatusBackground, false)
	} else {
		w.mode.set(StatusInactive, false)
	}
	w.buf.SetCursorVisible(false)
}

// Focused reports whether the window holds focus.
func (w *Window) Focused() bool { return w.focused }

// ToggleSelection arms or clears a selection without changing status. It
// lets read-only windows select text for yanking.
func (w *Window) ToggleSelection() {
	w.buf.SetSelection(!w.buf.Selecting())
}

// MoveCursor moves the cursor. Moving away from the end stops auto-follow
// of streamed text; reaching the last row resumes it.
func (w *Window) MoveCursor(m Motion) {
	w.buf.MoveCursor(m)
	w.follow = w.buf.Cursor().Row >= w.buf.Rows()-1
	w.sync()
}

// ScrollUp moves the viewport and cursor up one step, clamped at the top.
func (w *Window) ScrollUp() {
	w.scroll = max(w.scroll-w.step, 0)
	w.buf.MoveCursor(LinesBackward(w.step))
	w.follow = false
	w.sync()
}

// ScrollDown moves the viewport and cursor down one step, clamped so the
// last row stays at the bottom.
func (w *Window) ScrollDown() {
	w.scroll = min(w.scroll+w.step, w.maxScroll())
	w.buf.MoveCursor(LinesForward(w.step))
	w.follow = w.buf.Cursor().Row >= w.buf.Rows()-1
	w.sync()
}

// ScrollToEnd puts the cursor on the last rune and resumes auto-follow.
func (w *Window) ScrollToEnd() {
	w.buf.MoveCursor(EndOfFileEndOfLine)
	w.follow = true
	w.sync()
}

// ScrollTop returns the first visible row.
func (w *Window) ScrollTop() int {
	w.sync()
	return w.scroll
}

// ScrollStep returns the rows moved per scroll.
func (w *Window) ScrollStep() int { return w.step }

// SetScrollStep changes the rows moved per scroll; n <= 0 selects
// DefaultScrollStep.
func (w *Window) SetScrollStep(n int) {
	if n <= 0 {
		n = DefaultScrollStep
	}
	w.step = n
}

// BeginStream marks the window as receiving a streamed response.
func (w *Window) BeginStream() {
	w.streaming = true
	if !w.focused {
		w.mode.set(StatusBackground, false)
	}
}

// Streaming reports whether a stream is in progress.
func (w *Window) Streaming() bool { return w.streaming }

// AppendChunk appends streamed text. Content appended this way is not
// part of the undo history.
func (w *Window) AppendChunk(text string) {
	if text == "" {
		return
	}
	w.buf.AppendText(text)
	if w.follow {
		w.buf.MoveCursor(EndOfFileEndOfLine)
	}
	w.sync()
}

// Flush finalizes the current exchange: the text is terminated by a
// newline and the status returns to Normal. Partial content is kept.
func (w *Window) Flush() {
	if c := w.buf.Content(); c != "" && !strings.HasSuffix(c, "\n") {
		w.AppendChunk("\n")
	}
	w.streaming = false
	w.mode.set(StatusNormal, w.focused)
	w.sync()
}

// Clear empties the buffer and resets the viewport.
func (w *Window) Clear() {
	w.buf.Clear()
	w.scroll = 0
	w.follow = true
	w.sync()
}

// SetWidth rewraps for an area of the given width, ahead of the next
// Widget call when the host needs the row count to size its layout.
func (w *Window) SetWidth(areaWidth int) {
	if areaWidth == w.area.Width {
		return
	}
	w.buf.SetWidth(areaWidth - 2*Padding)
	w.area.Width = areaWidth
	w.lastRows = -1
}

// Widget lays the window out in area and returns the frame to paint.
// Text is rewrapped only when the width differs from the last call.
func (w *Window) Widget(area Area) Frame {
	w.SetWidth(area.Width)
	if area.Height != w.area.Height {
		w.lastRows = -1
	}
	w.area = area
	w.sync()

	lines := w.buf.Lines()
	end := min(w.scroll+max(area.Height, 0), len(lines))
	f := Frame{
		Title:       w.mode.Title(),
		Hint:        w.mode.Hint(),
		Status:      w.mode.status,
		Highlighted: w.mode.Highlighted(),
		Border:      w.borderColor(),
		Lines:       lines[w.scroll:end],
		Padding:     Padding,
		Area:        area,
		ScrollTop:   w.scroll,
		TotalRows:   len(lines),
	}
	if w.buf.IsEmpty() && w.mode.status != StatusInsert {
		f.Placeholder = w.mode.Placeholder()
	}
	return f
}

func (w *Window) borderColor() lipgloss.Color {
	p := theme.Current().Palette
	switch w.mode.status {
	case StatusInsert:
		return p.BorderInsert
	case StatusVisual:
		return p.BorderVisual
	case StatusBackground:
		return p.BorderBackground
	case StatusInactive:
		return p.BorderInactive
	}
	if w.mode.Highlighted() {
		return p.BorderNormal
	}
	return p.BorderInactive
}

// sync recalculates the viewport when the row count or cursor row changed.
func (w *Window) sync() {
	rows, row := w.buf.Rows(), w.buf.Cursor().Row
	if rows == w.lastRows && row == w.lastRow {
		return
	}
	w.lastRows, w.lastRow = rows, row
	w.scrollToCursor()
}

// scrollToCursor clamps the viewport so the cursor row is visible.
func (w *Window) scrollToCursor() {
	h := max(w.area.Height, 1)
	row := w.buf.Cursor().Row
	if row < w.scroll {
		w.scroll = row
	}
	if row >= w.scroll+h {
		w.scroll = row - h + 1
	}
	w.scroll = clamp(w.scroll, 0, w.maxScroll())
}

func (w *Window) maxScroll() int {
	return max(w.buf.Rows()-max(w.area.Height, 1), 0)
}
