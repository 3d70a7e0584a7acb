// ABOUTME: Window kinds (Editor, Response, CommandLine) and per-window status
// ABOUTME: Per-kind rules are data; Response windows never enter Insert or Visual

package textwin

// Kind identifies what a window is for.
type Kind int

const (
	KindEditor Kind = iota
	KindResponse
	KindCommandLine
)

type kindInfo struct {
	name        string
	editable    bool
	title       string
	placeholder string
	hint        string
}

var kinds = map[Kind]kindInfo{
	KindEditor: {
		name:        "editor",
		editable:    true,
		title:       "Prompt",
		placeholder: "Press i to type a message, Enter to send",
		hint:        "i insert · v visual · Tab focus · : command",
	},
	KindResponse: {
		name:        "response",
		editable:    false,
		title:       "Response",
		placeholder: "Responses appear here",
		hint:        "j/k scroll · v select · y yank · Tab focus",
	},
	KindCommandLine: {
		name:     "command",
		editable: true,
		hint:     "Enter run · Esc cancel · Tab complete",
	},
}

func (k Kind) String() string { return kinds[k].name }

// Status is the modal state of a window.
type Status int

const (
	StatusNormal Status = iota
	StatusInsert
	StatusVisual
	StatusBackground
	StatusInactive
)

func (s Status) String() string {
	switch s {
	case StatusNormal:
		return "NORMAL"
	case StatusInsert:
		return "INSERT"
	case StatusVisual:
		return "VISUAL"
	case StatusBackground:
		return "BACKGROUND"
	case StatusInactive:
		return "INACTIVE"
	}
	return "UNKNOWN"
}

// Mode pairs a fixed window kind with its current status. A Normal status
// carries a highlight marker set while the window holds focus.
type Mode struct {
	kind        Kind
	status      Status
	highlighted bool
}

// NewMode returns an inactive mode for kind.
func NewMode(kind Kind) Mode {
	return Mode{kind: kind, status: StatusInactive}
}

func (m Mode) Kind() Kind          { return m.kind }
func (m Mode) Status() Status      { return m.status }
func (m Mode) IsEditable() bool    { return kinds[m.kind].editable }
func (m Mode) Highlighted() bool   { return m.status == StatusNormal && m.highlighted }
func (m Mode) Title() string       { return kinds[m.kind].title }
func (m Mode) Placeholder() string { return kinds[m.kind].placeholder }
func (m Mode) Hint() string        { return kinds[m.kind].hint }

// Accepts reports whether the window kind allows status s.
func (m Mode) Accepts(s Status) bool {
	if s == StatusInsert || s == StatusVisual {
		return m.IsEditable()
	}
	return true
}

// set changes the status when the kind accepts it.
func (m *Mode) set(s Status, highlighted bool) bool {
	if !m.Accepts(s) {
		return false
	}
	m.status = s
	m.highlighted = s == StatusNormal && highlighted
	return true
}
