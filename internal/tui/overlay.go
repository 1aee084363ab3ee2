package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// overlayMargin is the backdrop border around modal content, in cells.
const (
	overlayMarginX = 2
	overlayMarginY = 1
)

// OverlayModel splices a modal, framed by a solid backdrop, into the middle
// of the board.
type OverlayModel struct {
	active  bool
	bgColor lipgloss.Color
}

// NewOverlayModel initializes an overlay model.
func NewOverlayModel() OverlayModel {
	return OverlayModel{bgColor: lipgloss.Color("")}
}

// Toggle flips the overlay visibility.
func (o *OverlayModel) Toggle() {
	o.active = !o.active
}

// Active reports whether the overlay is visible.
func (o OverlayModel) Active() bool {
	return o.active
}

// SetBackground updates the backdrop color.
func (o *OverlayModel) SetBackground(color lipgloss.Color) {
	o.bgColor = color
}

// Render draws content centered on top of base.
func (o OverlayModel) Render(base string, width, height int, content string) string {
	if !o.active || width <= 0 || height <= 0 {
		return base
	}

	box := o.box(trimTrailingEmpty(strings.Split(content, "\n")), width, height)
	if len(box) == 0 {
		return base
	}
	boxW := lipgloss.Width(box[0])
	top := (height - len(box)) / 2
	left := (width - boxW) / 2

	lines := fitLines(base, width, height)
	for i, row := range box {
		y := top + i
		lines[y] = ansi.Cut(lines[y], 0, left) + row + ansi.Cut(lines[y], left+boxW, width)
	}
	return strings.Join(lines, "\n")
}

// box renders content with the backdrop margin, clipped to width x height.
func (o OverlayModel) box(content []string, width, height int) []string {
	contentW := 0
	for _, line := range content {
		contentW = max(contentW, lipgloss.Width(line))
	}
	boxW := min(contentW+2*overlayMarginX, width)
	boxH := min(len(content)+2*overlayMarginY, height)
	if boxW <= 0 || boxH <= 0 {
		return nil
	}
	innerW := max(boxW-2*overlayMarginX, 0)

	bg := ansi.Style{}.BackgroundColor(ansi.HexColor(string(o.bgColor))).String()
	blank := bg + strings.Repeat(" ", boxW) + ansi.ResetStyle

	rows := make([]string, boxH)
	for i := range rows {
		c := i - overlayMarginY
		if c < 0 || c >= len(content) || i >= boxH-overlayMarginY {
			rows[i] = blank
			continue
		}
		line := content[c]
		if w := lipgloss.Width(line); w > innerW {
			line = ansi.Cut(line, 0, innerW)
		} else {
			line += strings.Repeat(" ", innerW-w)
		}
		margin := strings.Repeat(" ", overlayMarginX)
		rows[i] = bg + margin + keepBackground(line, bg) + bg + margin + ansi.ResetStyle
	}
	return rows
}

// keepBackground re-applies the backdrop after every reset inside line.
func keepBackground(line, bg string) string {
	if bg == "" || line == "" {
		return line
	}
	line = strings.ReplaceAll(line, "\x1b[m", "\x1b[m"+bg)
	line = strings.ReplaceAll(line, "\x1b[0m", "\x1b[0m"+bg)
	return strings.ReplaceAll(line, "\x1b[49m", "\x1b[49m"+bg)
}

// fitLines pads or clips base to exactly width x height cells.
func fitLines(base string, width, height int) []string {
	lines := strings.Split(base, "\n")
	for len(lines) < height {
		lines = append(lines, "")
	}
	lines = lines[:height]
	for i, line := range lines {
		switch w := lipgloss.Width(line); {
		case w > width:
			lines[i] = ansi.Cut(line, 0, width)
		case w < width:
			lines[i] = line + strings.Repeat(" ", width-w)
		}
	}
	return lines
}

func trimTrailingEmpty(lines []string) []string {
	for len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}
