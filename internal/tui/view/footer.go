package view

import "github.com/charmbracelet/lipgloss"

// FooterModel contains content and styles for rendering the footer.
type FooterModel struct {
	InnerW      int
	FooterH     int
	FullFooter  bool
	StatsLine   string
	NoticeText  string
	StatusText  string
	HelpText    string
	FooterStyle lipgloss.Style
	NoticeStyle lipgloss.Style
	StatusStyle lipgloss.Style
	HelpStyle   lipgloss.Style
	VAlign      lipgloss.Position
	Bg          lipgloss.Color
}

// RenderFooter renders stats, notice, status, and help lines. A short footer
// keeps only status and help.
func RenderFooter(model FooterModel) string {
	if model.FooterH <= 0 {
		return ""
	}

	statusLine := footerLine(model.InnerW, model.StatusStyle, model.StatusText)
	helpLine := footerLine(model.InnerW, model.HelpStyle, model.HelpText)

	var s string
	if model.FullFooter {
		s += footerLine(model.InnerW, model.FooterStyle, model.StatsLine) + "\n"
		s += footerLine(model.InnerW, model.NoticeStyle, model.NoticeText) + "\n"
	}
	s += statusLine + "\n" + helpLine

	return PlaceBox(model.InnerW, model.FooterH, model.VAlign, s, model.Bg)
}
