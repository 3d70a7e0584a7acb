// ABOUTME: Per-status key handlers: Normal, Insert, Visual and the command line
// ABOUTME: Edits on read-only windows are ignored; counts come from the KeyTrack

package dispatch

import (
	"strings"

	"github.com/mauromedda/panechat/pkg/tui/fuzzy"
	"github.com/mauromedda/panechat/pkg/tui/key"
	"github.com/mauromedda/panechat/pkg/tui/textwin"
)

// motionFor maps movement keys shared by Normal and Visual.
func motionFor(k key.Key) (textwin.Motion, bool) {
	switch k.Type {
	case key.KeyLeft:
		return textwin.Left, true
	case key.KeyRight:
		return textwin.Right, true
	case key.KeyUp:
		return textwin.Up, true
	case key.KeyDown:
		return textwin.Down, true
	case key.KeyHome:
		return textwin.StartOfLine, true
	case key.KeyEnd:
		return textwin.EndOfLine, true
	}
	if !k.IsRune() {
		return textwin.Motion{}, false
	}
	switch k.Rune {
	case 'h':
		return textwin.Left, true
	case 'l':
		return textwin.Right, true
	case 'k':
		return textwin.Up, true
	case 'j':
		return textwin.Down, true
	case 'w':
		return textwin.WordForward, true
	case 'b':
		return textwin.WordBackward, true
	case 'e':
		return textwin.WordEnd, true
	case '0':
		return textwin.StartOfLine, true
	case '$':
		return textwin.EndOfLine, true
	}
	return textwin.Motion{}, false
}

// scrollOrJump handles actions and keys shared by Normal and Visual that
// do not edit text. It reports whether the key was used.
func (d *Dispatcher) scrollOrJump(w *textwin.Window, k key.Key, act Action) (bool, countUse) {
	switch act {
	case ActionScrollUp:
		w.ScrollUp()
		return true, countDropped
	case ActionScrollDown:
		w.ScrollDown()
		return true, countDropped
	}
	if m, ok := motionFor(k); ok {
		w.MoveCursor(m.Times(d.track.Take()))
		return true, countConsumed
	}
	if !k.IsRune() {
		return false, countDropped
	}
	prev, _ := d.track.Previous()
	switch k.Rune {
	case 'g':
		if prev != 'g' {
			return true, countKept
		}
		d.track.completeSequence()
		w.MoveCursor(textwin.TopOfFile)
		if n := d.track.Take(); n > 1 {
			w.MoveCursor(textwin.LinesForward(n - 1))
		}
		return true, countConsumed
	case 'G':
		if n := d.track.Peek(); n > 0 {
			d.track.Take()
			w.MoveCursor(textwin.TopOfFile)
			w.MoveCursor(textwin.LinesForward(n - 1))
			return true, countConsumed
		}
		w.MoveCursor(textwin.EndOfFile)
		return true, countDropped
	}
	return false, countDropped
}

func (d *Dispatcher) normal(w *textwin.Window, k key.Key, act Action) (Result, countUse) {
	b := w.Buffer()
	switch act {
	case ActionCommandLine:
		d.openCommandLine()
		return Result{}, countDropped
	case ActionHelp:
		return Result{Kind: ResultOverlay, Text: OverlayHelp}, countDropped
	case ActionRedo:
		if w.IsEditable() {
			for n := d.track.Take(); n > 0 && b.Redo(); n-- {
			}
		}
		return Result{}, countConsumed
	}
	if ok, use := d.scrollOrJump(w, k, act); ok {
		return Result{}, use
	}

	switch k.Type {
	case key.KeyEscape:
		b.SetSelection(false)
		return Result{}, countDropped
	case key.KeyDelete:
		if w.IsEditable() {
			d.deleteUnder(b, d.track.Take())
		}
		return Result{}, countConsumed
	}
	if !k.IsRune() {
		return Result{}, countDropped
	}

	prev, _ := d.track.Previous()
	editable := w.IsEditable()
	switch k.Rune {
	case 'y':
		if b.Selecting() {
			res := d.yank(b.SelectedText(), false)
			b.SetSelection(false)
			return res, countDropped
		}
		if prev != 'y' {
			return Result{}, countKept
		}
		d.track.completeSequence()
		return d.yank(b.YankLines(d.track.Take()), true), countConsumed
	case 'v':
		if editable {
			w.SetStatus(textwin.StatusVisual)
		} else {
			w.ToggleSelection()
		}
		return Result{}, countDropped
	}

	if !editable {
		switch k.Rune {
		case 'i', 'a', 'A', 'I', 'o', 'O':
			d.SetFocus(FocusPrompt)
			d.Focused().SetStatus(textwin.StatusInsert)
		}
		return Result{}, countDropped
	}

	switch k.Rune {
	case 'd':
		if prev != 'd' {
			return Result{}, countKept
		}
		d.track.completeSequence()
		return d.yank(b.DeleteLines(d.track.Take()), true), countConsumed
	case 'x':
		d.deleteUnder(b, d.track.Take())
		return Result{}, countConsumed
	case 'X':
		for n := d.track.Take(); n > 0 && b.Cursor().Col > 0; n-- {
			b.DeleteBackspace()
		}
		return Result{}, countConsumed
	case 'p':
		return d.paste(b), countDropped
	case 'u':
		for n := d.track.Take(); n > 0 && b.Undo(); n-- {
		}
		return Result{}, countConsumed
	case 'r':
		for n := d.track.Take(); n > 0 && b.Redo(); n-- {
		}
		return Result{}, countConsumed
	case 'i':
		w.SetStatus(textwin.StatusInsert)
	case 'a':
		w.MoveCursor(textwin.Right)
		w.SetStatus(textwin.StatusInsert)
	case 'A':
		w.MoveCursor(textwin.EndOfLine)
		w.SetStatus(textwin.StatusInsert)
	case 'I':
		w.MoveCursor(textwin.StartOfLine)
		w.SetStatus(textwin.StatusInsert)
	case 'o':
		_, end := b.Lines().RowSpan(b.Cursor().Row)
		b.SetCursorOffset(end)
		w.SetStatus(textwin.StatusInsert)
		b.InsertAdd("\n")
	case 'O':
		start, _ := b.Lines().RowSpan(b.Cursor().Row)
		b.SetCursorOffset(start)
		w.SetStatus(textwin.StatusInsert)
		b.InsertAdd("\n")
		w.MoveCursor(textwin.Up)
	}
	return Result{}, countDropped
}

// deleteUnder deletes up to n runes from the cursor without crossing the
// end of the row.
func (d *Dispatcher) deleteUnder(b *textwin.Buffer, n int) {
	pos := b.Cursor()
	room := b.Lines().RowLength(pos.Row) - pos.Col
	if room <= 0 {
		return
	}
	b.DeleteChars(min(n, room))
}

func (d *Dispatcher) insert(w *textwin.Window, k key.Key, act Action) Result {
	b := w.Buffer()
	switch act {
	case ActionNewline:
		b.InsertAdd("\n")
		return Result{}
	case ActionScrollUp:
		w.ScrollUp()
		return Result{}
	case ActionScrollDown:
		w.ScrollDown()
		return Result{}
	}
	switch k.Type {
	case key.KeyEscape:
		b.CloseOpenCodeBlock()
		w.SetStatus(textwin.StatusNormal)
	case key.KeyEnter:
		b.InsertAdd("\n")
	case key.KeyBackspace:
		b.DeleteBackspace()
	case key.KeyDelete:
		b.DeleteChar()
	case key.KeyTab:
		b.InsertAdd("\t")
	case key.KeyLeft, key.KeyRight, key.KeyUp, key.KeyDown, key.KeyHome, key.KeyEnd:
		m, _ := motionFor(k)
		w.MoveCursor(m)
	case key.KeyRune:
		if !k.Ctrl && !k.Alt {
			b.InsertAdd(string(k.Rune))
		}
	}
	return Result{}
}

func (d *Dispatcher) visual(w *textwin.Window, k key.Key, act Action) (Result, countUse) {
	b := w.Buffer()
	switch act {
	case ActionCommandLine:
		w.SetStatus(textwin.StatusNormal)
		d.openCommandLine()
		return Result{}, countDropped
	}
	if ok, use := d.scrollOrJump(w, k, act); ok {
		return Result{}, use
	}
	if k.Type == key.KeyEscape {
		w.SetStatus(textwin.StatusNormal)
		return Result{}, countDropped
	}
	if !k.IsRune() {
		return Result{}, countDropped
	}
	switch k.Rune {
	case 'v':
		w.SetStatus(textwin.StatusNormal)
	case 'y':
		res := d.yank(b.SelectedText(), false)
		w.SetStatus(textwin.StatusNormal)
		return res, countDropped
	case 'd', 'x':
		res := d.yank(b.DeleteSelection(), false)
		w.SetStatus(textwin.StatusNormal)
		return res, countDropped
	}
	return Result{}, countDropped
}

func (d *Dispatcher) commandLine(w *textwin.Window, k key.Key, act Action) Result {
	b := w.Buffer()
	switch act {
	case ActionQuit:
		return Result{Kind: ResultQuit}
	case ActionClearOrQuit:
		d.closeCommandLine()
		return Result{}
	}
	switch k.Type {
	case key.KeyEscape:
		d.closeCommandLine()
	case key.KeyEnter:
		text := b.Content()
		d.closeCommandLine()
		if strings.TrimSpace(strings.TrimPrefix(text, ":")) == "" {
			return Result{}
		}
		return Result{Kind: ResultCommand, Text: text}
	case key.KeyBackspace:
		if b.Content() == ":" {
			d.closeCommandLine()
			return Result{}
		}
		b.DeleteBackspace()
	case key.KeyDelete:
		b.DeleteChar()
	case key.KeyTab:
		d.complete(w)
	case key.KeyLeft, key.KeyRight, key.KeyHome, key.KeyEnd:
		m, _ := motionFor(k)
		w.MoveCursor(m)
		if b.Cursor().Col == 0 {
			w.MoveCursor(textwin.Right)
		}
	case key.KeyRune:
		if k.Ctrl || k.Alt {
			return Result{}
		}
		b.InsertAdd(string(k.Rune))
		if b.Content() == "::" {
			d.closeCommandLine()
			return Result{Kind: ResultOverlay, Text: OverlayHelp}
		}
	}
	return Result{}
}

// complete replaces a partial command name with its best match.
func (d *Dispatcher) complete(w *textwin.Window) {
	name := strings.TrimPrefix(w.Buffer().Content(), ":")
	if name == "" || strings.ContainsRune(name, ' ') {
		return
	}
	match, ok := fuzzy.Complete(name, d.commands)
	if !ok || match == name {
		return
	}
	w.Clear()
	w.Buffer().InsertAdd(":" + match)
}
