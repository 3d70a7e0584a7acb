// ABOUTME: Paints a text window Frame as a bordered pane with a title and status tag
// ABOUTME: Every body row is padded to the frame width so borders line up

package btea

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mauromedda/panechat/pkg/tui/textwin"
	"github.com/mauromedda/panechat/pkg/tui/width"
)

// renderPane draws f inside a rounded border. tag is shown right-aligned
// in the top border, e.g. a streaming spinner.
func renderPane(f textwin.Frame, tag string) string {
	b := lipgloss.RoundedBorder()
	edge := lipgloss.NewStyle().Foreground(f.Border)
	inner := f.Area.Width

	rows := make([]string, 0, f.Area.Height+2)
	rows = append(rows, topBorder(b, edge, f.Title, tag, inner))
	for _, line := range paneBody(f) {
		rows = append(rows, edge.Render(b.Left)+line+edge.Render(b.Right))
	}
	rows = append(rows, edge.Render(b.BottomLeft+strings.Repeat(b.Bottom, max(inner, 0))+b.BottomRight))
	return strings.Join(rows, "\n")
}

func topBorder(b lipgloss.Border, edge lipgloss.Style, title, tag string, inner int) string {
	s := Styles()
	label := ""
	if title != "" {
		label = " " + title + " "
	}
	if tag != "" {
		tag = " " + tag + " "
	}
	fill := inner - 1 - width.Visible(label) - width.Visible(tag)
	if fill < 0 {
		tag = ""
		fill = inner - 1 - width.Visible(label)
	}
	if fill < 0 {
		label = width.Truncate(label, max(inner-1, 0))
		fill = inner - 1 - width.Visible(label)
	}
	var sb strings.Builder
	sb.WriteString(edge.Render(b.TopLeft + b.Top))
	sb.WriteString(s.Title.Render(label))
	sb.WriteString(edge.Render(strings.Repeat(b.Top, max(fill, 0))))
	sb.WriteString(tag)
	sb.WriteString(edge.Render(b.TopRight))
	return sb.String()
}

// paneBody returns exactly f.Area.Height rows of f.Area.Width cells.
func paneBody(f textwin.Frame) []string {
	textW := f.Area.Width - 2*f.Padding
	blank := strings.Repeat(" ", max(f.Area.Width, 0))
	out := make([]string, 0, f.Area.Height)

	if f.Placeholder != "" && f.Area.Height > 0 {
		pad := strings.Repeat(" ", f.Padding)
		ph := width.PadRight(f.Placeholder, textW)
		out = append(out, pad+Styles().Placeholder.Render(ph)+pad)
	} else {
		for _, l := range f.Lines {
			out = append(out, renderLine(l, textW, f.Padding))
		}
	}
	for len(out) < f.Area.Height {
		out = append(out, blank)
	}
	return out[:max(f.Area.Height, 0)]
}

// renderLine paints one display row, filling the row background across
// padding and trailing space so code blocks read as a block.
func renderLine(l textwin.Line, textW, padding int) string {
	bg := lipgloss.NewStyle()
	if l.Background != "" {
		bg = bg.Background(l.Background)
	}
	pad := bg.Render(strings.Repeat(" ", padding))

	var sb strings.Builder
	sb.WriteString(pad)
	for _, seg := range l.Segments {
		st := seg.Style.Lipgloss()
		if seg.Style.Bg == "" && l.Background != "" {
			st = st.Background(l.Background)
		}
		sb.WriteString(st.Render(seg.Text))
	}
	used := width.Runes(l.Runes())
	if l.CursorAtEnd && used < textW {
		sb.WriteString(Styles().Cursor.Render(" "))
		used++
	}
	if rest := textW - used; rest > 0 {
		sb.WriteString(bg.Render(strings.Repeat(" ", rest)))
	}
	sb.WriteString(pad)
	return sb.String()
}

// renderCommandLine paints the command line row without a border.
func renderCommandLine(f textwin.Frame, w int) string {
	if len(f.Lines) == 0 {
		return strings.Repeat(" ", max(w, 0))
	}
	l := f.Lines[len(f.Lines)-1]
	return renderLine(l, w-2*f.Padding, f.Padding)
}
