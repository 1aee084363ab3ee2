package ui

import (
	"os"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"golang.org/x/term"
)

// Color definitions for consistent styling across the UI.
var (
	// Headers: bold
	colorHeader = color.New(color.Bold)

	// Stats: green for money and totals
	colorStats = color.New(color.FgGreen)

	// Muted: for secondary information
	colorMuted = color.New(color.FgWhite, color.Faint)

	// Conflicts and refusals
	colorWarn = color.New(color.FgYellow)

	// Today in headers
	colorToday = color.New(color.FgMagenta, color.Bold)
)

// termWidth returns the terminal width, or a default if detection fails.
func termWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return 80 // sensible default
	}
	return width
}

// DisableColor disables all color output.
func DisableColor() {
	color.NoColor = true
}

// EnableColor enables color output (if terminal supports it).
func EnableColor() {
	color.NoColor = false
}

// formatHeader formats text as a header.
func formatHeader(s string) string {
	return colorHeader.Sprint(s)
}

// formatStats formats text for statistics.
func formatStats(s string) string {
	return colorStats.Sprint(s)
}

// formatMuted formats text as secondary/muted.
func formatMuted(s string) string {
	return colorMuted.Sprint(s)
}

func formatWarn(s string) string {
	return colorWarn.Sprint(s)
}

func formatToday(s string) string {
	return colorToday.Sprint(s)
}

// formatBlock paints s on the event color, picking a readable foreground.
func formatBlock(s, hex string) string {
	r, g, b, ok := rgb(hex)
	if !ok {
		return s
	}
	c := color.BgRGB(r, g, b)
	if (r*299+g*587+b*114)/1000 > 140 {
		c.Add(color.FgBlack)
	} else {
		c.Add(color.FgWhite)
	}
	return c.Sprint(s)
}

// swatch renders a small block in the given color.
func swatch(hex string) string {
	return formatBlock("  ", hex)
}

func rgb(hex string) (r, g, b int, ok bool) {
	hex = strings.TrimPrefix(hex, "#")
	if len(hex) != 6 {
		return 0, 0, 0, false
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return 0, 0, 0, false
	}
	return int(v >> 16 & 0xff), int(v >> 8 & 0xff), int(v & 0xff), true
}
