package view

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/javiermolinar/glowboard/internal/booking"
	"github.com/javiermolinar/glowboard/internal/summary"
)

// WeekSummaryLineStyle indicates how a week summary line should be styled.
type WeekSummaryLineStyle int

const (
	WeekSummaryLineBody WeekSummaryLineStyle = iota
	WeekSummaryLineMeta
	WeekSummaryLineSection
)

// WeekSummaryLine is a display-ready line for the week summary modal.
type WeekSummaryLine struct {
	Text  string
	Style WeekSummaryLineStyle
}

// WeekSummaryStyles groups styles for week summary rendering.
type WeekSummaryStyles struct {
	BodyStyle         lipgloss.Style
	MetaStyle         lipgloss.Style
	SectionTitleStyle lipgloss.Style
}

// BuildWeekSummaryLines builds the lines of the week summary modal.
func BuildWeekSummaryLines(s *summary.WeekSummary, currency string) []WeekSummaryLine {
	lines := make([]WeekSummaryLine, 0, 16)
	dateLine := fmt.Sprintf("%s - %s", s.Start.Format("Mon Jan 2"), s.End.Format("Mon Jan 2, 2006"))
	lines = append(lines, WeekSummaryLine{Text: dateLine, Style: WeekSummaryLineMeta})
	lines = append(lines, WeekSummaryLine{Text: ""})

	if len(s.Events) == 0 {
		return append(lines, WeekSummaryLine{Text: "No appointments this week."})
	}

	stats := s.Stats
	lines = append(lines,
		WeekSummaryLine{Text: fmt.Sprintf("Appointments: %d", stats.Appointments)},
		WeekSummaryLine{Text: fmt.Sprintf("Booked: %s", summary.FormatMinutes(stats.BookedMinutes))},
		WeekSummaryLine{Text: fmt.Sprintf("Revenue: %s", stats.Revenue.Format(currency))},
	)
	if stats.Appointments > 0 {
		lines = append(lines, WeekSummaryLine{Text: fmt.Sprintf("Average ticket: %s", stats.AverageTicket().Format(currency))})
	}
	if day, revenue := stats.BestDay(); day >= 0 {
		lines = append(lines, WeekSummaryLine{Text: fmt.Sprintf("Best day: %s (%s)", booking.WeekdayName(day), revenue.Format(currency))})
	}

	if len(s.Services) > 0 {
		lines = append(lines, WeekSummaryLine{Text: ""})
		lines = append(lines, WeekSummaryLine{Text: "SERVICES", Style: WeekSummaryLineSection})
		for _, svc := range s.Services {
			lines = append(lines, WeekSummaryLine{
				Text: fmt.Sprintf("%s: %d, %s", svc.Service, svc.Appointments, svc.Revenue.Format(currency)),
			})
		}
	}

	return lines
}

// RenderWeekSummaryBody renders week summary lines into a wrapped modal body.
func RenderWeekSummaryBody(lines []WeekSummaryLine, styles WeekSummaryStyles, contentWidth int) string {
	if len(lines) == 0 {
		return ""
	}

	rendered := make([]string, 0, len(lines))
	for _, line := range lines {
		rendered = append(rendered, wrapWeekSummaryLine(line, styles, contentWidth)...)
	}
	return strings.Join(rendered, "\n")
}

// ModalContentWidth returns the content width for a modal body.
func ModalContentWidth(style lipgloss.Style, fallback int) int {
	width := style.GetWidth()
	if width <= 0 {
		return fallback
	}
	return max(width-4, 10)
}

func wrapWeekSummaryLine(line WeekSummaryLine, styles WeekSummaryStyles, width int) []string {
	switch line.Style {
	case WeekSummaryLineSection:
		return wrapModalText(styles.SectionTitleStyle, line.Text, width)
	case WeekSummaryLineMeta:
		return wrapModalText(styles.MetaStyle, line.Text, width)
	default:
		return wrapModalText(styles.BodyStyle, line.Text, width)
	}
}

func wrapModalText(style lipgloss.Style, text string, width int) []string {
	if width <= 0 {
		return []string{style.Render("")}
	}
	lines := WrapTextToWidths(text, width, width)
	wrapped := make([]string, 0, len(lines))
	for _, line := range lines {
		wrapped = append(wrapped, style.Render(line))
	}
	return wrapped
}
