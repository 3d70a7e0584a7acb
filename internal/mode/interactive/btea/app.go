// ABOUTME: Root AppModel: owns the prompt, response and command-line windows and the dispatcher
// ABOUTME: Feeds keys to the dispatcher, acts on its results, and applies streamed chunks

package btea

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
	"github.com/mauromedda/panechat/internal/commands"
	"github.com/mauromedda/panechat/internal/log"
	"github.com/mauromedda/panechat/pkg/tui/dispatch"
	"github.com/mauromedda/panechat/pkg/tui/key"
	"github.com/mauromedda/panechat/pkg/tui/textwin"
	"github.com/mauromedda/panechat/pkg/tui/theme"
	"github.com/mauromedda/panechat/pkg/tui/width"
)

const (
	statusRows    = 1
	minPromptRows = 3
	minWidth      = 20
	minHeight     = 10
	statusTTL     = 4 * time.Second
)

// shared holds mutable state that must survive AppModel value copies.
// Bubble Tea copies the model on each Update; pointer fields are shared
// across copies. Update is single-threaded and the bridge goroutine only
// writes via Program.Send, so no mutex is needed.
type shared struct {
	program ProgramSender
	ctx     context.Context
	cancel  context.CancelFunc

	stream    context.CancelFunc
	streamID  string
	statusSeq int
}

type statusLine struct {
	text string
	err  bool
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	sh *shared

	prompt   *textwin.Window
	response *textwin.Window
	cmdline  *textwin.Window
	disp     *dispatch.Dispatcher

	cmds    *commands.Registry
	md      *MarkdownRenderer
	spinner spinner.Model
	status  statusLine

	width, height int

	deps AppDeps
}

// NewAppModel creates an AppModel wired with the given dependencies.
func NewAppModel(deps AppDeps) AppModel {
	ctx, cancel := context.WithCancel(context.Background())
	set := deps.settings()

	syntax := set.SyntaxStyle
	if syntax == "" {
		syntax = theme.Current().SyntaxStyle
	}
	cfg := textwin.Config{
		UndoDepth:   set.UndoDepth,
		ScrollStep:  set.ScrollStep,
		Highlighter: textwin.NewChromaHighlighter(syntax),
	}
	prompt := textwin.NewWindow(textwin.KindEditor, cfg)
	response := textwin.NewWindow(textwin.KindResponse, cfg)
	cmdline := textwin.NewWindow(textwin.KindCommandLine, textwin.Config{UndoDepth: set.UndoDepth})

	session := textwin.SessionID(uuid.NewString())
	prompt.SetSession(session)
	response.SetSession(session)

	cmds := commands.NewRegistry()
	disp := dispatch.New(prompt, response, cmdline, dispatch.Options{
		Keys:                  deps.Keys,
		Clipboard:             deps.Clipboard,
		Commands:              cmds.Names(),
		SubmitOnTrailingSpace: set.SubmitOnTrailingSpace,
	})
	log.Info("session %s started", session)

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return AppModel{
		sh:       &shared{ctx: ctx, cancel: cancel},
		prompt:   prompt,
		response: response,
		cmdline:  cmdline,
		disp:     disp,
		cmds:     cmds,
		md:       NewMarkdownRenderer(deps.Profile),
		spinner:  sp,
		deps:     deps,
	}
}

// Init sets the terminal title.
func (m AppModel) Init() tea.Cmd {
	return tea.SetWindowTitle("panechat")
}

// Update routes messages to the appropriate handler.
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		inner := max(m.width-2, 1)
		m.prompt.SetWidth(inner)
		m.response.SetWidth(inner)
		if h, ok := m.disp.Overlay().(*HelpOverlay); ok {
			h.SetSize(m.width, m.height)
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKeys(keysFromMsg(msg))

	case StreamChunkMsg:
		if msg.ID == m.sh.streamID {
			m.response.AppendChunk(msg.Text)
		}
		return m, nil

	case StreamDoneMsg:
		return m.finishStream(msg)

	case spinner.TickMsg:
		if !m.response.Streaming() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case ConfigChangedMsg:
		return m.reload()

	case statusExpiredMsg:
		if msg.seq == m.sh.statusSeq {
			m.status = statusLine{}
		}
		return m, nil
	}
	return m, nil
}

// --- Key handling ---

func (m AppModel) handleKeys(keys []key.Key) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	for _, k := range keys {
		var cmd tea.Cmd
		m, cmd = m.apply(m.disp.Handle(k))
		cmds = append(cmds, cmd)
	}
	return m, tea.Batch(cmds...)
}

// apply carries out what a dispatched key asked the host to do.
func (m AppModel) apply(res dispatch.Result) (AppModel, tea.Cmd) {
	if res.Err != nil {
		log.Warn("%v", res.Err)
		return m.setStatus(res.Err.Error(), true)
	}
	switch res.Kind {
	case dispatch.ResultQuit:
		return m.quit()
	case dispatch.ResultSubmit:
		return m.submit(res.Text)
	case dispatch.ResultCommand:
		return m.runCommand(res.Text)
	case dispatch.ResultStop:
		if m.stopStream() {
			return m.setStatus("Stopped.", false)
		}
	case dispatch.ResultOverlay:
		if res.Text == dispatch.OverlayHelp {
			m = m.openHelp()
		}
	}
	return m, nil
}

func (m AppModel) quit() (AppModel, tea.Cmd) {
	m.stopStream()
	m.sh.cancel()
	log.Info("quit")
	return m, tea.Quit
}

// --- Streaming ---

// submit records the prompt in the response window and starts a stream
// for it. A running stream is finalized first.
func (m AppModel) submit(text string) (AppModel, tea.Cmd) {
	m.stopStream()
	m.response.AppendChunk(quotePrompt(m.response.Buffer().Content(), text))
	m.response.ScrollToEnd()

	if m.deps.Producer == nil {
		m.response.Flush()
		return m.setStatus("No responder configured; start with -echo.", true)
	}

	ctx, cancel := context.WithCancel(m.sh.ctx)
	chunks, err := m.deps.Producer.Start(ctx, text)
	if err != nil {
		cancel()
		m.response.Flush()
		log.Error("starting stream: %v", err)
		return m.setStatus(fmt.Sprintf("start stream: %v", err), true)
	}

	id := uuid.NewString()
	m.sh.stream, m.sh.streamID = cancel, id
	m.response.BeginStream()
	log.Debug("stream %s started", id)

	program := m.sh.program
	bridge := func() tea.Msg {
		if program == nil {
			cancel()
			return StreamDoneMsg{ID: id, Cancelled: true}
		}
		return RunStreamBridge(ctx, program, id, chunks)
	}
	return m, tea.Batch(bridge, m.spinner.Tick)
}

// stopStream cancels the running stream and finalizes the response with
// whatever arrived. Reports whether a stream was running.
func (m AppModel) stopStream() bool {
	if m.sh.stream == nil {
		return false
	}
	m.sh.stream()
	log.Debug("stream %s stopped", m.sh.streamID)
	m.sh.stream, m.sh.streamID = nil, ""
	m.response.Flush()
	return true
}

func (m AppModel) finishStream(msg StreamDoneMsg) (AppModel, tea.Cmd) {
	if msg.ID != m.sh.streamID {
		return m, nil
	}
	m.sh.stream()
	m.sh.stream, m.sh.streamID = nil, ""
	m.response.Flush()
	log.Debug("stream %s done (cancelled=%v)", msg.ID, msg.Cancelled)
	if msg.Cancelled {
		return m.setStatus("Stopped.", false)
	}
	return m, nil
}

// quotePrompt formats a submitted prompt as a quoted block, separated
// from earlier content by a blank line.
func quotePrompt(existing, text string) string {
	var b strings.Builder
	switch {
	case existing == "":
	case strings.HasSuffix(existing, "\n\n"):
	case strings.HasSuffix(existing, "\n"):
		b.WriteString("\n")
	default:
		b.WriteString("\n\n")
	}
	for _, line := range strings.Split(strings.TrimRight(text, "\n"), "\n") {
		b.WriteString("> ")
		b.WriteString(line)
		b.WriteString("\n")
	}
	b.WriteString("\n")
	return b.String()
}

// --- Commands ---

func (m AppModel) runCommand(text string) (AppModel, tea.Cmd) {
	var cmds []tea.Cmd
	ctx := &commands.CommandContext{
		Quit: func() {
			var cmd tea.Cmd
			m, cmd = m.quit()
			cmds = append(cmds, cmd)
		},
		Submit: func() bool {
			res := m.disp.Submit()
			if res.Kind != dispatch.ResultSubmit {
				return false
			}
			var cmd tea.Cmd
			m, cmd = m.submit(res.Text)
			cmds = append(cmds, cmd)
			return true
		},
		ClearResponse: func() {
			m.stopStream()
			m.response.Clear()
		},
		Stop:       m.stopStream,
		ShowHelp:   func() { m = m.openHelp() },
		SetTheme:   m.setTheme,
		ThemeNames: func() []string { return theme.Names(m.deps.ThemesDir) },
		Reload:     func() error { return m.reloadSettings() },
	}

	out, err := m.cmds.Dispatch(ctx, text)
	var cmd tea.Cmd
	switch {
	case err != nil:
		log.Warn("command %q: %v", text, err)
		m, cmd = m.setStatus(err.Error(), true)
	case out != "":
		m, cmd = m.setStatus(out, false)
	}
	return m, tea.Batch(append(cmds, cmd)...)
}

func (m AppModel) setTheme(name string) error {
	th, err := theme.ResolveIn(name, m.deps.ThemesDir)
	if err != nil {
		return err
	}
	theme.Set(theme.ForProfile(th, m.deps.Profile))
	log.Info("theme set to %s", th.Name)
	return nil
}

func (m AppModel) reload() (AppModel, tea.Cmd) {
	if m.deps.Reload == nil {
		return m, nil
	}
	if err := m.reloadSettings(); err != nil {
		log.Error("reloading config: %v", err)
		return m.setStatus(fmt.Sprintf("reload: %v", err), true)
	}
	log.Info("config reloaded")
	return m.setStatus("Config reloaded.", false)
}

// reloadSettings re-reads config through deps.Reload and applies the
// settings the windows and dispatcher hold.
func (m *AppModel) reloadSettings() error {
	if m.deps.Reload == nil {
		return commands.ErrNotAvailable
	}
	set, err := m.deps.Reload()
	if err != nil {
		return err
	}
	if set == nil {
		return nil
	}
	m.deps.Settings = set
	for _, w := range []*textwin.Window{m.prompt, m.response, m.cmdline} {
		w.Buffer().SetUndoDepth(set.UndoDepth)
	}
	m.prompt.SetScrollStep(set.ScrollStep)
	m.response.SetScrollStep(set.ScrollStep)
	m.disp.SetSubmitOnTrailingSpace(set.SubmitOnTrailingSpace)
	return nil
}

func (m AppModel) openHelp() AppModel {
	var keys string
	if m.deps.KeyHelp != nil {
		keys = m.deps.KeyHelp()
	}
	h := NewHelpOverlay(m.md, m.disp.Focus(), modalKeysHelp, keys, m.cmds.Help())
	h.SetSize(m.width, m.height)
	m.disp.OpenOverlay(h)
	return m
}

// setStatus shows a transient message on the status line.
func (m AppModel) setStatus(text string, isErr bool) (AppModel, tea.Cmd) {
	m.sh.statusSeq++
	seq := m.sh.statusSeq
	m.status = statusLine{text: text, err: isErr}
	return m, tea.Tick(statusTTL, func(time.Time) tea.Msg {
		return statusExpiredMsg{seq: seq}
	})
}

// --- View ---

// View renders the response pane, the prompt pane and the bottom line.
func (m AppModel) View() string {
	if m.width <= 0 || m.height <= 0 {
		return ""
	}
	if m.width < minWidth || m.height < minHeight {
		return "Terminal too small."
	}

	promptArea, responseArea := m.areas()
	tag := ""
	if m.response.Streaming() {
		tag = Styles().Spinner.Render(m.spinner.View())
	}
	main := lipgloss.JoinVertical(lipgloss.Left,
		renderPane(m.response.Widget(responseArea), tag),
		renderPane(m.prompt.Widget(promptArea), ""),
		m.bottomLine(),
	)

	if h, ok := m.disp.Overlay().(*HelpOverlay); ok {
		return overlayRender(main, h.View(), m.width, m.height)
	}
	return main
}

// areas splits the screen: the prompt grows with its content up to a
// third of the height and the response takes the rest.
func (m AppModel) areas() (prompt, response textwin.Area) {
	inner := max(m.width-2, 1)
	avail := m.height - statusRows - 4
	maxPrompt := max(avail/3, minPromptRows)
	ph := min(max(m.prompt.Buffer().Rows(), minPromptRows), maxPrompt)
	return textwin.Area{Width: inner, Height: ph},
		textwin.Area{Width: inner, Height: max(avail-ph, 1)}
}

// bottomLine is the command line while it has focus, else the status bar.
func (m AppModel) bottomLine() string {
	if m.disp.Focus() == dispatch.FocusCommandLine {
		f := m.cmdline.Widget(textwin.Area{Width: m.width, Height: 1})
		return renderCommandLine(f, m.width)
	}

	s := Styles()
	w := m.disp.Focused()
	left := s.Mode.Render(w.Status().String()) + " " + s.Hint.Render(m.disp.Focus().String())
	if n := m.disp.Track().Pending(); n != "" {
		left += " " + s.Count.Render(n)
	}
	if m.status.text != "" {
		st := s.Info
		if m.status.err {
			st = s.Error
		}
		left += "  " + st.Render(m.status.text)
	}

	right := s.Hint.Render(w.Mode().Hint())
	gap := m.width - width.Visible(left) - width.Visible(right)
	if gap < 1 {
		return width.PadRight(left, m.width)
	}
	return left + strings.Repeat(" ", gap) + right
}
