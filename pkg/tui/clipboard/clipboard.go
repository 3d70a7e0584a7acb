// ABOUTME: Clipboard providers: system commands, OSC52 terminal escape, and in-memory ring
// ABOUTME: Memory and OSC52 providers keep yanks in a register ring; System defers to the OS clipboard

package clipboard

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"runtime"
	"strings"

	"github.com/aymanbagabas/go-osc52/v2"
	"github.com/mauromedda/panechat/pkg/tui/internal/killring"
	"golang.org/x/term"
)

// ErrUnavailable is returned when no clipboard backend can serve a request.
var ErrUnavailable = errors.New("clipboard unavailable")

// Provider reads and writes clipboard text.
type Provider interface {
	ReadText() (string, error)
	WriteLine(text string, newline bool) error
}

// Kind names a provider in configuration.
type Kind string

const (
	KindAuto   Kind = "auto"
	KindSystem Kind = "system"
	KindOSC52  Kind = "osc52"
	KindMemory Kind = "memory"
)

// New returns the provider for kind. KindAuto picks the system clipboard
// when a command is installed, OSC52 when out is a terminal, and memory
// otherwise.
func New(kind Kind, out *os.File) (Provider, error) {
	switch kind {
	case KindSystem:
		s := NewSystem()
		if !s.Available() {
			return nil, fmt.Errorf("system clipboard on %s: %w", runtime.GOOS, ErrUnavailable)
		}
		return s, nil
	case KindOSC52:
		return NewOSC52(out), nil
	case KindMemory:
		return NewMemory(), nil
	case KindAuto, "":
		if s := NewSystem(); s.Available() {
			return s, nil
		}
		if out != nil && term.IsTerminal(int(out.Fd())) {
			return NewOSC52(out), nil
		}
		return NewMemory(), nil
	}
	return nil, fmt.Errorf("unknown clipboard provider %q", kind)
}

func withNewline(text string, newline bool) string {
	if newline && !strings.HasSuffix(text, "\n") {
		return text + "\n"
	}
	return text
}

// Memory keeps clipboard text in process.
type Memory struct {
	ring *killring.Ring
}

// NewMemory creates an in-process clipboard.
func NewMemory() *Memory {
	return &Memory{ring: killring.New(killring.DefaultSize)}
}

// WriteLine stores text. Newline-terminated text is linewise.
func (m *Memory) WriteLine(text string, newline bool) error {
	text = withNewline(text, newline)
	m.ring.Push(killring.Entry{Text: text, Linewise: strings.HasSuffix(text, "\n")})
	return nil
}

// ReadText returns the most recent text.
func (m *Memory) ReadText() (string, error) {
	e, ok := m.ring.Latest()
	if !ok {
		return "", nil
	}
	return e.Text, nil
}

// Older returns the entry written before the one last read.
func (m *Memory) Older() (string, bool) {
	e, ok := m.ring.Older()
	return e.Text, ok
}

// System uses the platform clipboard commands.
type System struct {
	copyCmd  []string
	pasteCmd []string
}

// NewSystem detects the clipboard commands for the current platform.
func NewSystem() *System {
	c, p := clipboardCmds()
	return &System{copyCmd: c, pasteCmd: p}
}

// Available reports whether the copy command is installed.
func (s *System) Available() bool {
	if len(s.copyCmd) == 0 {
		return false
	}
	_, err := exec.LookPath(s.copyCmd[0])
	return err == nil
}

// WriteLine pipes text to the copy command.
func (s *System) WriteLine(text string, newline bool) error {
	if len(s.copyCmd) == 0 {
		return fmt.Errorf("clipboard write on %s: %w", runtime.GOOS, ErrUnavailable)
	}
	c := exec.Command(s.copyCmd[0], s.copyCmd[1:]...)
	c.Stdin = strings.NewReader(withNewline(text, newline))
	if err := c.Run(); err != nil {
		return fmt.Errorf("clipboard write via %s: %w", s.copyCmd[0], err)
	}
	return nil
}

// ReadText runs the paste command and returns its output.
func (s *System) ReadText() (string, error) {
	if len(s.pasteCmd) == 0 {
		return "", fmt.Errorf("clipboard read on %s: %w", runtime.GOOS, ErrUnavailable)
	}
	out, err := exec.Command(s.pasteCmd[0], s.pasteCmd[1:]...).Output()
	if err != nil {
		return "", fmt.Errorf("clipboard read via %s: %w", s.pasteCmd[0], err)
	}
	return string(out), nil
}

// clipboardCmds returns the copy and paste commands for the current OS.
func clipboardCmds() (copyCmd, pasteCmd []string) {
	switch runtime.GOOS {
	case "darwin":
		return []string{"pbcopy"}, []string{"pbpaste"}
	case "linux":
		if os.Getenv("WAYLAND_DISPLAY") != "" {
			return []string{"wl-copy"}, []string{"wl-paste", "--no-newline"}
		}
		return []string{"xclip", "-selection", "clipboard"}, []string{"xclip", "-selection", "clipboard", "-o"}
	default:
		return nil, nil
	}
}

// OSC52 writes the clipboard through the terminal with an OSC 52 escape.
// Terminals rarely answer clipboard queries, so reads come from the texts
// written in this process.
type OSC52 struct {
	out  io.Writer
	mem  *Memory
	tmux bool
}

// NewOSC52 creates a provider writing escapes to out.
func NewOSC52(out io.Writer) *OSC52 {
	return &OSC52{out: out, mem: NewMemory(), tmux: os.Getenv("TMUX") != ""}
}

// WriteLine emits the escape sequence and remembers the text.
func (o *OSC52) WriteLine(text string, newline bool) error {
	text = withNewline(text, newline)
	if o.out == nil {
		return fmt.Errorf("osc52 write: %w", ErrUnavailable)
	}
	seq := osc52.New(text)
	if o.tmux {
		seq = seq.Tmux()
	}
	if _, err := seq.WriteTo(o.out); err != nil {
		return fmt.Errorf("osc52 write: %w", err)
	}
	return o.mem.WriteLine(text, false)
}

// ReadText returns the last text written through this provider.
func (o *OSC52) ReadText() (string, error) {
	return o.mem.ReadText()
}
