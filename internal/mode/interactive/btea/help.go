// ABOUTME: Help overlay listing key bindings and ':' commands, rendered with glamour
// ABOUTME: Implements dispatch.Overlay; scrolls with j/k and closes back to the opener's focus

package btea

import (
	"fmt"
	"strings"

	"github.com/mauromedda/panechat/pkg/tui/dispatch"
	"github.com/mauromedda/panechat/pkg/tui/key"
	"github.com/mauromedda/panechat/pkg/tui/width"
)

const helpMaxWidth = 80

const modalKeysHelp = `## Editing

| Keys | Normal | Visual |
|---|---|---|
| ` + "`h j k l` `w b e` `0 $`" + ` | move (counted) | extend selection |
| ` + "`gg` `G` `5G`" + ` | top, bottom, line 5 | extend selection |
| ` + "`i a A I o O`" + ` | enter Insert | |
| ` + "`x X` `dd`" + ` | delete chars, lines (counted) | ` + "`d x`" + ` delete selection |
| ` + "`yy` `p`" + ` | yank lines, paste | ` + "`y`" + ` yank selection |
| ` + "`u` `r`" + ` | undo, redo (counted) | |
| ` + "`v`" + ` | start selection | leave Visual |

Esc leaves Insert and Visual. A count such as ` + "`3j`" + ` repeats a motion.`

// HelpOverlay shows the help text in a centered scrollable box.
type HelpOverlay struct {
	markdown string
	md       *MarkdownRenderer
	returnTo dispatch.Focus

	lines  []string
	scroll int
	width  int
	height int // visible body rows
}

// NewHelpOverlay builds the overlay from markdown sections. Closing it
// returns focus to returnTo.
func NewHelpOverlay(md *MarkdownRenderer, returnTo dispatch.Focus, sections ...string) *HelpOverlay {
	var parts []string
	for _, s := range sections {
		if s = strings.TrimSpace(s); s != "" {
			parts = append(parts, s)
		}
	}
	return &HelpOverlay{
		markdown: "# Help\n\n" + strings.Join(parts, "\n\n"),
		md:       md,
		returnTo: returnTo,
	}
}

// SetSize lays the overlay out for a termWidth x termHeight screen.
func (h *HelpOverlay) SetSize(termWidth, termHeight int) {
	w := min(termWidth-4, helpMaxWidth)
	if w != h.width {
		h.width = w
		h.lines = strings.Split(h.md.Render(h.markdown, max(w-2, 10)), "\n")
	}
	h.height = max(termHeight-6, 1)
	h.scroll = min(h.scroll, h.maxScroll())
}

func (h *HelpOverlay) maxScroll() int { return max(len(h.lines)-h.height, 0) }

// HandleKey implements dispatch.Overlay.
func (h *HelpOverlay) HandleKey(k key.Key) dispatch.OverlayResult {
	closed := dispatch.OverlayResult{Close: true, Refocus: true, Focus: h.returnTo}
	switch k.Type {
	case key.KeyEscape, key.KeyEnter:
		return closed
	case key.KeyDown:
		h.scrollBy(1)
	case key.KeyUp:
		h.scrollBy(-1)
	case key.KeyPageDown:
		h.scrollBy(h.height)
	case key.KeyPageUp:
		h.scrollBy(-h.height)
	case key.KeyRune:
		if k.Ctrl {
			switch k.Rune {
			case 'c', 'q':
				return closed
			case 'd':
				h.scrollBy(h.height / 2)
			case 'u':
				h.scrollBy(-h.height / 2)
			}
			return dispatch.OverlayResult{}
		}
		switch k.Rune {
		case 'q', '?':
			return closed
		case 'j':
			h.scrollBy(1)
		case 'k':
			h.scrollBy(-1)
		case 'g':
			h.scroll = 0
		case 'G':
			h.scroll = h.maxScroll()
		}
	}
	return dispatch.OverlayResult{}
}

func (h *HelpOverlay) scrollBy(n int) {
	h.scroll = min(max(h.scroll+n, 0), h.maxScroll())
}

// View renders the visible part of the help text in a bordered box.
func (h *HelpOverlay) View() string {
	end := min(h.scroll+h.height, len(h.lines))
	body := make([]string, 0, end-h.scroll+2)
	for _, l := range h.lines[h.scroll:end] {
		body = append(body, width.PadRight(l, max(h.width-2, 0)))
	}
	s := Styles()
	footer := "j/k scroll · q close"
	if h.maxScroll() > 0 {
		footer += "  " + scrollPercent(h.scroll, h.maxScroll())
	}
	body = append(body, "", s.Hint.Render(footer))
	return s.HelpBorder.Render(strings.Join(body, "\n"))
}

func scrollPercent(pos, total int) string {
	return fmt.Sprintf("%d%%", pos*100/total)
}
