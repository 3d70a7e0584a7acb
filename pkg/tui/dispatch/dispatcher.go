// ABOUTME: Dispatcher routes key events to the focused window's mode handler
// ABOUTME: Owns focus, the KeyTrack and the active overlay; windows own their own state

package dispatch

import (
	"fmt"
	"strings"

	"github.com/mauromedda/panechat/pkg/tui/clipboard"
	"github.com/mauromedda/panechat/pkg/tui/key"
	"github.com/mauromedda/panechat/pkg/tui/textwin"
)

// Focus names the window receiving key events.
type Focus int

const (
	FocusPrompt Focus = iota
	FocusResponse
	FocusCommandLine
)

func (f Focus) String() string {
	switch f {
	case FocusPrompt:
		return "prompt"
	case FocusResponse:
		return "response"
	case FocusCommandLine:
		return "command"
	}
	return "unknown"
}

// ResultKind tells the host what a key asked it to do.
type ResultKind int

const (
	ResultNone ResultKind = iota
	ResultQuit
	ResultSubmit  // Text holds the prompt content
	ResultCommand // Text holds the command line, including its ':' prefix
	ResultStop    // cancel the streaming response
	ResultOverlay // Text names the overlay to open
)

// OverlayHelp is the overlay name requested by '?' and '::'.
const OverlayHelp = "help"

// Result is the outcome of one dispatched key.
type Result struct {
	Kind ResultKind
	Text string
	Err  error
}

// OverlayResult is returned by an overlay for each key it consumes.
type OverlayResult struct {
	Close   bool
	Refocus bool // move focus to Focus after closing
	Focus   Focus
}

// Overlay is a modal layer that receives every key while open.
type Overlay interface {
	HandleKey(k key.Key) OverlayResult
}

// Options configures a Dispatcher.
type Options struct {
	Keys      KeyMap
	Clipboard clipboard.Provider
	// Commands lists command names offered by Tab completion.
	Commands []string
	// SubmitOnTrailingSpace makes Enter in Insert submit when the prompt
	// ends with a space.
	SubmitOnTrailingSpace bool
}

// Dispatcher is the top-level key state machine.
type Dispatcher struct {
	windows   [3]*textwin.Window
	focus     Focus
	prevFocus Focus
	track     KeyTrack
	keys      KeyMap
	clip      clipboard.Provider
	overlay   Overlay
	commands  []string
	trailing  bool
}

// New wires the three windows together. The prompt starts focused.
func New(prompt, response, cmdline *textwin.Window, opts Options) *Dispatcher {
	d := &Dispatcher{
		windows:  [3]*textwin.Window{prompt, response, cmdline},
		keys:     opts.Keys,
		clip:     opts.Clipboard,
		commands: opts.Commands,
		trailing: opts.SubmitOnTrailingSpace,
	}
	if d.keys == nil {
		d.keys = NewStaticKeyMap(DefaultBindings())
	}
	if d.clip == nil {
		d.clip = clipboard.NewMemory()
	}
	response.Blur()
	cmdline.Blur()
	prompt.Focus()
	return d
}

// Focus returns which window receives keys.
func (d *Dispatcher) Focus() Focus { return d.focus }

// Focused returns the window receiving keys.
func (d *Dispatcher) Focused() *textwin.Window { return d.windows[d.focus] }

// Window returns the window for f.
func (d *Dispatcher) Window(f Focus) *textwin.Window { return d.windows[f] }

// Track exposes the key context, e.g. for showing a pending count.
func (d *Dispatcher) Track() *KeyTrack { return &d.track }

// SetFocus moves focus to f. Leaving the command line abandons it.
func (d *Dispatcher) SetFocus(f Focus) {
	if f == d.focus {
		return
	}
	if d.focus == FocusCommandLine {
		cmd := d.windows[FocusCommandLine]
		cmd.SetStatus(textwin.StatusNormal)
		cmd.Clear()
	}
	d.windows[d.focus].Blur()
	d.focus = f
	d.windows[f].Focus()
	d.track.Reset()
}

// SetSubmitOnTrailingSpace toggles whether Enter in Insert submits a
// prompt ending in a space.
func (d *Dispatcher) SetSubmitOnTrailingSpace(on bool) { d.trailing = on }

// OpenOverlay makes o intercept all keys until it closes.
func (d *Dispatcher) OpenOverlay(o Overlay) {
	d.overlay = o
	d.track.Reset()
}

// Overlay returns the active overlay, or nil.
func (d *Dispatcher) Overlay() Overlay { return d.overlay }

// Submit hands the prompt content to the host and clears the prompt,
// keeping prompt focus. Blank prompts are not submitted.
func (d *Dispatcher) Submit() Result {
	p := d.windows[FocusPrompt]
	if p.Status() == textwin.StatusInsert {
		p.SetStatus(textwin.StatusNormal)
	}
	text := p.Buffer().Content()
	if strings.TrimSpace(text) == "" {
		return Result{}
	}
	p.Clear()
	d.SetFocus(FocusPrompt)
	return Result{Kind: ResultSubmit, Text: text}
}

// Handle dispatches one key event.
func (d *Dispatcher) Handle(k key.Key) Result {
	if d.overlay != nil {
		r := d.overlay.HandleKey(k)
		if r.Close {
			d.overlay = nil
			if r.Refocus {
				d.SetFocus(r.Focus)
			}
		}
		return Result{}
	}

	w := d.Focused()
	counting := d.focus != FocusCommandLine && w.Status() != textwin.StatusInsert
	if d.track.Observe(k, counting) {
		return Result{}
	}
	act := d.keys.ActionForKey(k)

	var (
		res Result
		use countUse
	)
	switch d.focus {
	case FocusCommandLine:
		res = d.commandLine(w, k, act)
	case FocusPrompt:
		res, use = d.prompt(w, k, act)
	case FocusResponse:
		res, use = d.response(w, k, act)
	}
	d.track.finish(use)
	return res
}

func (d *Dispatcher) prompt(w *textwin.Window, k key.Key, act Action) (Result, countUse) {
	b := w.Buffer()
	switch act {
	case ActionQuit:
		return Result{Kind: ResultQuit}, countDropped
	case ActionClearOrQuit:
		if b.IsEmpty() {
			return Result{Kind: ResultQuit}, countDropped
		}
		insert := w.Status() == textwin.StatusInsert
		w.SetStatus(textwin.StatusNormal)
		w.Clear()
		if insert {
			w.SetStatus(textwin.StatusInsert)
		}
		return Result{}, countDropped
	case ActionStop:
		return d.stop(), countDropped
	case ActionFocusCycle:
		if w.Status() == textwin.StatusInsert && b.InOpenCodeBlock() {
			b.InsertAdd("    ")
			return Result{}, countDropped
		}
		d.SetFocus(FocusResponse)
		return Result{}, countDropped
	case ActionSubmit:
		if w.Status() != textwin.StatusInsert {
			return d.Submit(), countDropped
		}
		if d.trailing && strings.HasSuffix(b.Content(), " ") {
			res := d.Submit()
			res.Text = strings.TrimSuffix(res.Text, " ")
			return res, countDropped
		}
	}

	switch w.Status() {
	case textwin.StatusInsert:
		return d.insert(w, k, act), countDropped
	case textwin.StatusVisual:
		return d.visual(w, k, act)
	}
	return d.normal(w, k, act)
}

func (d *Dispatcher) response(w *textwin.Window, k key.Key, act Action) (Result, countUse) {
	switch act {
	case ActionQuit:
		return Result{Kind: ResultQuit}, countDropped
	case ActionClearOrQuit:
		if w.Streaming() {
			return d.stop(), countDropped
		}
		return Result{Kind: ResultQuit}, countDropped
	case ActionStop:
		return d.stop(), countDropped
	case ActionFocusCycle:
		d.SetFocus(FocusPrompt)
		return Result{}, countDropped
	case ActionSubmit:
		return Result{}, countDropped
	}
	return d.normal(w, k, act)
}

func (d *Dispatcher) stop() Result {
	if !d.windows[FocusResponse].Streaming() {
		return Result{}
	}
	return Result{Kind: ResultStop}
}

// yank writes text to the clipboard. Linewise text gets a trailing
// newline so a later paste knows to open a line.
func (d *Dispatcher) yank(text string, linewise bool) Result {
	if text == "" {
		return Result{}
	}
	if err := d.clip.WriteLine(text, linewise); err != nil {
		return Result{Err: fmt.Errorf("yank: %w", err)}
	}
	return Result{}
}

func (d *Dispatcher) paste(b *textwin.Buffer) Result {
	text, err := d.clip.ReadText()
	if err != nil {
		return Result{Err: fmt.Errorf("paste: %w", err)}
	}
	b.Paste(text, strings.HasSuffix(text, "\n"))
	return Result{}
}

func (d *Dispatcher) openCommandLine() {
	prev := d.focus
	d.SetFocus(FocusCommandLine)
	d.prevFocus = prev
	cmd := d.windows[FocusCommandLine]
	cmd.Clear()
	cmd.SetStatus(textwin.StatusInsert)
	cmd.Buffer().InsertAdd(":")
}

func (d *Dispatcher) closeCommandLine() {
	d.SetFocus(d.prevFocus)
}
