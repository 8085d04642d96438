// Package overlay draws a modal view on top of an already rendered screen.
package overlay

import (
	"strings"

	"github.com/charmbracelet/lipgloss/v2"
	"github.com/muesli/reflow/ansi"
	"github.com/muesli/reflow/truncate"
)

const reset = "\x1b[0m"

// Placement controls overlay alignment and sizing.
type Placement struct {
	Horizontal lipgloss.Position
	Vertical   lipgloss.Position
	MarginX    int
	MarginY    int
	Width      int
	Height     int
	// Offset skips that many foreground lines, scrolling a tall overlay.
	Offset int
}

var dim = lipgloss.NewStyle().Faint(true)

// Compose overlays the foreground view atop the background. Background rows
// the overlay covers are flattened and dimmed on either side of it.
func Compose(background string, width, height int, foreground string, placement Placement) string {
	bgLines := normalizeBackground(background, width, height)
	if foreground == "" || width <= 0 || height <= 0 {
		return strings.Join(bgLines, "\n")
	}

	fgLines := strings.Split(foreground, "\n")
	if placement.Offset > 0 {
		off := min(placement.Offset, len(fgLines)-1)
		fgLines = fgLines[off:]
	}

	overlayWidth := placement.Width
	if overlayWidth <= 0 {
		for _, line := range fgLines {
			overlayWidth = max(overlayWidth, lipgloss.Width(line))
		}
	}
	if overlayWidth <= 0 {
		return strings.Join(bgLines, "\n")
	}
	overlayWidth = min(overlayWidth, width)

	overlayHeight := placement.Height
	if overlayHeight <= 0 {
		overlayHeight = len(fgLines)
	}
	overlayHeight = min(overlayHeight, height)

	offsetX, offsetY := computeOffsets(width, height, overlayWidth, overlayHeight, placement)

	for row := 0; row < overlayHeight; row++ {
		destY := offsetY + row
		if destY < 0 || destY >= len(bgLines) {
			continue
		}
		fgLine := ""
		if row < len(fgLines) {
			fgLine = fgLines[row]
		}
		fgLine = padToWidth(fgLine, overlayWidth)

		plain := Strip(bgLines[destY])
		prefix := sliceWidth(plain, 0, offsetX)
		suffix := sliceWidth(plain, offsetX+overlayWidth, width)
		bgLines[destY] = dim.Render(prefix) + reset + fgLine + reset + dim.Render(suffix)
	}

	return strings.Join(bgLines, "\n")
}

// Strip removes terminal escape sequences from s.
func Strip(s string) string {
	var b strings.Builder
	inSeq := false
	for _, r := range s {
		if r == ansi.Marker {
			inSeq = true
			continue
		}
		if inSeq {
			if ansi.IsTerminator(r) {
				inSeq = false
			}
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func normalizeBackground(view string, width, height int) []string {
	lines := strings.Split(view, "\n")
	if len(lines) > height {
		lines = lines[:height]
	}
	for len(lines) < height {
		lines = append(lines, "")
	}
	for i := range lines {
		lines[i] = padToWidth(lines[i], width)
	}
	return lines
}

func padToWidth(s string, width int) string {
	if width <= 0 {
		return ""
	}
	currWidth := ansi.PrintableRuneWidth(s)
	if currWidth > width {
		return truncate.String(s, uint(width)) + reset
	}
	return s + strings.Repeat(" ", width-currWidth)
}

// sliceWidth cuts the cells [start, end) out of plain text.
func sliceWidth(s string, start, end int) string {
	start = max(start, 0)
	end = min(end, lipgloss.Width(s))
	if start >= end {
		return ""
	}

	var result strings.Builder
	widthSeen := 0
	for _, r := range s {
		rw := lipgloss.Width(string(r))
		next := widthSeen + rw
		if next <= start {
			widthSeen = next
			continue
		}
		if widthSeen >= end || next > end {
			break
		}
		result.WriteRune(r)
		widthSeen = next
	}
	return result.String()
}

func computeOffsets(width, height, overlayWidth, overlayHeight int, placement Placement) (int, int) {
	offsetX := placement.MarginX
	switch placement.Horizontal {
	case lipgloss.Right:
		offsetX = width - overlayWidth - placement.MarginX
	case lipgloss.Center:
		offsetX = (width - overlayWidth) / 2
	}
	offsetX = max(0, min(offsetX, width-overlayWidth))

	offsetY := placement.MarginY
	switch placement.Vertical {
	case lipgloss.Bottom:
		offsetY = height - overlayHeight - placement.MarginY
	case lipgloss.Center:
		offsetY = (height - overlayHeight) / 2
	}
	offsetY = max(0, min(offsetY, height-overlayHeight))

	return offsetX, offsetY
}
