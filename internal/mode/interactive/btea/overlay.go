// ABOUTME: overlayRender composites an overlay box centered on the rendered panes
// ABOUTME: Rows outside the box keep their styling; cut points are ANSI-aware

package btea

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
	"github.com/mauromedda/panechat/pkg/tui/width"
)

// overlayRender splices overlay into background at the vertical and
// horizontal center of a termWidth x termHeight screen.
func overlayRender(background, overlay string, termWidth, termHeight int) string {
	bgLines := strings.Split(background, "\n")
	for len(bgLines) < termHeight {
		bgLines = append(bgLines, "")
	}
	if len(bgLines) > termHeight {
		bgLines = bgLines[:termHeight]
	}

	ovLines := strings.Split(overlay, "\n")
	ovWidth := 0
	for _, l := range ovLines {
		ovWidth = max(ovWidth, width.Visible(l))
	}

	startRow := max((termHeight-len(ovLines))/2, 0)
	startCol := max((termWidth-ovWidth)/2, 0)

	for i, ovLine := range ovLines {
		row := startRow + i
		if row >= termHeight {
			break
		}
		bg := bgLines[row]
		if gap := startCol - width.Visible(bg); gap > 0 {
			bg += strings.Repeat(" ", gap)
		}
		prefix := ansi.Truncate(bg, startCol, "")
		suffix := ""
		if after := startCol + width.Visible(ovLine); after < termWidth {
			suffix = ansi.TruncateLeft(bgLines[row], after, "")
		}
		// reset so the overlay does not inherit an open style from prefix
		bgLines[row] = prefix + "\x1b[0m" + ovLine + "\x1b[0m" + suffix
	}
	return strings.Join(bgLines, "\n")
}
