package tui

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// placeOverlay draws fg over bg with its top-left corner at (x, y). Cells
// under the overlay are replaced, so fg lines are padded to its full width.
func placeOverlay(bg, fg string, x, y int) string {
	bgLines := strings.Split(bg, "\n")
	fgLines := strings.Split(fg, "\n")

	fgW := 0
	for _, line := range fgLines {
		if w := ansi.StringWidth(line); w > fgW {
			fgW = w
		}
	}
	if fgW == 0 {
		return bg
	}
	if x < 0 {
		x = 0
	}
	if y < 0 {
		y = 0
	}

	for len(bgLines) < y+len(fgLines) {
		bgLines = append(bgLines, "")
	}

	for i, fgLine := range fgLines {
		bgLine := bgLines[y+i]
		bgW := ansi.StringWidth(bgLine)
		if bgW < x {
			bgLine += strings.Repeat(" ", x-bgW)
			bgW = x
		}

		left := ansi.Cut(bgLine, 0, x)
		right := ""
		if bgW > x+fgW {
			right = ansi.Cut(bgLine, x+fgW, bgW)
		}

		if n := ansi.StringWidth(fgLine); n < fgW {
			fgLine += strings.Repeat(" ", fgW-n)
		}

		bgLines[y+i] = left + fgLine + right
	}
	return strings.Join(bgLines, "\n")
}
