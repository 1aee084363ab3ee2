package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/javiermolinar/glowboard/internal/grid"
	"github.com/javiermolinar/glowboard/internal/summary"
	"github.com/javiermolinar/glowboard/internal/tui/view"
)

const (
	footerFullHeight  = 4
	footerShortHeight = 2
	// top border, header, header separator and bottom border
	tableChromeHeight = 4
)

// View renders the TUI using a boxed, parent-controlled layout.
func (m Model) View() string {
	state := m.viewState()
	return view.Render(state)
}

func (m Model) viewState() view.ViewState {
	base := m.renderAppContent()
	showModal := m.mode == ModeModal && m.modalType != ModalNone
	modal := ""
	if showModal {
		modal = m.renderModal()
		m.overlay.active = true
		m.overlay.SetBackground(m.styles.ModalBackdropColor)
	} else {
		m.overlay.active = false
	}

	return view.ViewState{
		Width:            m.width,
		Height:           m.height,
		BaseContent:      base,
		ModalContent:     modal,
		ShowModal:        showModal,
		Overlay:          m.overlay,
		EmptyPlaceholder: "Loading...",
	}
}

func (m Model) renderAppContent() string {
	innerW := m.width - 4
	innerH := m.height - 1
	footerH := footerShortHeight
	if innerH >= m.mapper.Rows()+tableChromeHeight+footerFullHeight {
		footerH = footerFullHeight
	}
	gridH := innerH - footerH
	if innerW <= 0 || gridH <= tableChromeHeight {
		return "Terminal too small"
	}

	gridBox := view.RenderTable(m.tableViewState(innerW, gridH))
	footerBox := view.RenderFooter(m.footerModel(innerW, footerH))

	content := lipgloss.JoinVertical(lipgloss.Left, gridBox, footerBox)
	app := m.styles.AppStyle.Render(content)
	return view.PadLinesWithBackground(app, m.width, m.height, m.styles.colorBg)
}

func (m Model) tableViewState(innerW, gridH int) view.TableViewState {
	headers, todayCols := view.HeaderLabels(m.weekStart, m.now())
	rows, cellStyles := m.buildGridRows(todayCols)

	headerStyles := make([]lipgloss.Style, len(headers))
	headerStyles[0] = m.styles.TimeColumnStyle
	for i := 1; i < len(headers); i++ {
		style := m.styles.DayHeaderStyle
		if todayCols[i] {
			style = m.styles.DayHeaderTodayStyle
		}
		headerStyles[i] = style.Width(m.colWidth)
	}

	return view.TableViewState{
		InnerW:       innerW,
		GridH:        gridH,
		Headers:      headers,
		HeaderStyles: headerStyles,
		Content: view.TableContent{
			Rows:       rows,
			CellStyles: cellStyles,
		},
		BorderStyle: m.styles.BorderStyle,
		VAlign:      lipgloss.Top,
		Bg:          m.styles.colorBg,
		Render:      true,
	}
}

// buildGridRows renders one table row per opening hour. A block shows its
// service, client and time range on successive rows of its span.
func (m Model) buildGridRows(todayCols map[int]bool) ([][]string, [][]lipgloss.Style) {
	n := m.mapper.Rows()
	rows := make([][]string, n)
	styles := make([][]lipgloss.Style, n)
	now := m.now()
	selected := m.blockAtCursor()

	for r := 0; r < n; r++ {
		rows[r] = make([]string, grid.Columns+1)
		styles[r] = make([]lipgloss.Style, grid.Columns+1)
		rows[r][0] = m.mapper.RowClock(r)
		styles[r][0] = m.styles.TimeColumnStyle

		for c := 0; c < grid.Columns; c++ {
			isCursor := c == m.cursor.Day && r == m.cursor.Row
			var block *grid.Block
			if m.week != nil {
				block = m.week.Layout.Covering(c, r)
			}

			if block == nil {
				style := m.styles.EmptyCellStyle
				if todayCols[c+1] {
					style = m.styles.TodayEmptyStyle
				}
				text := ""
				if isCursor {
					style = m.styles.CursorStyle
					text = "+"
				}
				rows[r][c+1] = text
				styles[r][c+1] = style.Width(m.colWidth)
				continue
			}

			isSelected := selected != nil && selected.Event == block.Event
			rows[r][c+1] = view.FitCell(blockLine(block, r-block.Row), m.colWidth)
			styles[r][c+1] = m.styles.BlockStyle(block.Event.Color, block.Event.IsPast(now), isSelected).Width(m.colWidth)
		}
	}
	return rows, styles
}

func blockLine(b *grid.Block, line int) string {
	e := b.Event
	if b.Span() == 1 {
		if line == 0 {
			return e.Service + " · " + e.Client
		}
		return ""
	}
	switch line {
	case 0:
		return e.Service
	case 1:
		return e.Client
	case 2:
		return e.Start + "-" + e.End
	}
	return ""
}

func (m Model) footerModel(innerW, footerH int) view.FooterModel {
	return view.FooterModel{
		InnerW:      innerW,
		FooterH:     footerH,
		FullFooter:  footerH >= footerFullHeight,
		StatsLine:   m.renderStatsLine(),
		NoticeText:  m.renderNotice(),
		StatusText:  m.statusMsgOrDefault(),
		HelpText:    m.renderHelp(),
		FooterStyle: m.styles.StatsBarStyle,
		NoticeStyle: m.styles.NoticeStyle,
		StatusStyle: m.styles.StatusStyle,
		HelpStyle:   m.styles.HelpStyle,
		VAlign:      lipgloss.Bottom,
		Bg:          m.styles.colorBg,
	}
}

func (m Model) renderStatsLine() string {
	if m.week == nil {
		return ""
	}
	st := m.week.Summary.Stats
	return fmt.Sprintf("Appointments: %d  ·  Booked: %s  ·  Revenue: %s",
		st.Appointments, summary.FormatMinutes(st.BookedMinutes), st.Revenue.Format(m.config.Board.Currency))
}

func (m Model) renderNotice() string {
	if m.week == nil {
		return ""
	}
	switch n := len(m.week.Layout.Skipped); n {
	case 0:
		return ""
	case 1:
		return "1 appointment starts outside the board hours"
	default:
		return fmt.Sprintf("%d appointments start outside the board hours", n)
	}
}

func (m Model) renderHelp() string {
	if m.mode == ModeModal {
		return "esc close"
	}
	return "h/l day · j/k hour · H/L week · t today · a add · e edit · d delete · T templates · s summary · y copy · q quit"
}
