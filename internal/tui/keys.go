package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/glowboard/internal/dateutil"
	"github.com/javiermolinar/glowboard/internal/grid"
	"github.com/javiermolinar/glowboard/internal/tui/commands"
	"github.com/javiermolinar/glowboard/internal/tui/input"
)

// handleKeyMsg handles keyboard input.
func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	logKeyPress(m.logger, msg, m.mode)

	// Global keys (work in all modes)
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	switch m.mode {
	case ModeModal:
		return m.handleModalKeys(msg)
	default:
		return m.handleNormalKeys(msg)
	}
}

// handleNormalKeys handles keys on the board.
func (m Model) handleNormalKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit

	// Navigation
	case "h", "left":
		if m.cursor.Day > 0 {
			m.cursor.Day--
			logCursorMove(m.logger, m.cursor, "left")
			return m, nil
		}
		m.cursor.Day = grid.Columns - 1
		return m.shiftWeek(-1)
	case "l", "right":
		if m.cursor.Day < grid.Columns-1 {
			m.cursor.Day++
			logCursorMove(m.logger, m.cursor, "right")
			return m, nil
		}
		m.cursor.Day = 0
		return m.shiftWeek(1)
	case "j", "down":
		if m.cursor.Row < m.mapper.Rows()-1 {
			m.cursor.Row++
		}
		logCursorMove(m.logger, m.cursor, "down")
	case "k", "up":
		if m.cursor.Row > 0 {
			m.cursor.Row--
		}
		logCursorMove(m.logger, m.cursor, "up")
	case "g", "home":
		m.cursor.Row = 0
	case "G", "end":
		m.cursor.Row = m.mapper.Rows() - 1

	// Week navigation
	case "H", "shift+left":
		return m.shiftWeek(-1)
	case "L", "shift+right":
		return m.shiftWeek(1)
	case "t":
		m.weekStart = dateutil.StartOfWeek(m.now())
		m.cursor = m.todayPosition()
		logCursorMove(m.logger, m.cursor, "today")
		return m.loadWeek()

	// Actions
	case "a":
		return m.openEventForm(false)
	case "enter", "e":
		return m.openEventForm(true)
	case "d", "x":
		return m.openConfirmDelete()
	case "T":
		m = m.openModal(ModalTemplates, "templates")
		return m, commands.LoadTemplates(m.board)
	case "s":
		if m.week == nil {
			return m, nil
		}
		m = m.openModal(ModalWeekSummary, "summary")
		return m, nil
	case "y":
		return m.copyWeekSummary()
	case "r":
		return m.loadWeek()
	}
	return m, nil
}

// handleModalKeys dispatches keys to the open modal.
func (m Model) handleModalKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.modalType {
	case ModalEventForm:
		return m.handleEventFormKeys(msg)
	case ModalConfirmDelete:
		return m.handleConfirmDeleteKeys(msg)
	case ModalTemplates:
		return m.handleTemplatesKeys(msg)
	case ModalTemplateForm:
		return m.handleTemplateFormKeys(msg)
	case ModalWeekSummary:
		return m.handleWeekSummaryKeys(msg)
	case ModalInit:
		return m.handleInitKeys(msg)
	default:
		if msg.String() == "esc" {
			return m.closeModal("esc"), nil
		}
	}
	return m, nil
}

// handleEventFormKeys handles keys in the appointment form.
func (m Model) handleEventFormKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	f := &m.eventForm
	switch msg.String() {
	case "esc":
		return m.closeModal("cancel form"), nil

	case "tab":
		if f.focus == fieldService {
			if name, ok := input.Autocomplete(f.inputs[fieldService].Value(), f.suggestions(m.templates)); ok {
				f.setValue(fieldService, name)
				return m, commands.Autofill(m.board, name)
			}
		}
		left := f.focus
		cmd := f.next()
		return m, m.leaveEventField(left, cmd)

	case "shift+tab":
		left := f.focus
		cmd := f.prev()
		return m, m.leaveEventField(left, cmd)

	case "enter":
		f.err = ""
		return m, commands.SubmitEvent(m.board, f.session, f.values())
	}

	cmd := f.update(msg)
	return m, cmd
}

// leaveEventField batches a focus change with the template lookup when the
// service field was left.
func (m Model) leaveEventField(left int, focusCmd tea.Cmd) tea.Cmd {
	if left != fieldService {
		return focusCmd
	}
	service := m.eventForm.value(fieldService)
	if service == "" {
		return focusCmd
	}
	return tea.Batch(focusCmd, commands.Autofill(m.board, service))
}

// handleConfirmDeleteKeys handles keys in the confirm delete modal.
func (m Model) handleConfirmDeleteKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "n":
		m.confirmEvent = nil
		return m.closeModal("keep"), nil

	case "enter", "y":
		if m.confirmEvent == nil {
			return m.closeModal("nothing to delete"), nil
		}
		id := m.confirmEvent.ID
		m.confirmEvent = nil
		m = m.closeModal("delete")
		return m, commands.DeleteEvent(m.board, id)
	}
	return m, nil
}

// handleTemplatesKeys handles keys in the template list.
func (m Model) handleTemplatesKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "q", "T":
		return m.closeModal("close templates"), nil
	case "j", "down":
		if m.templateCursor < len(m.templates)-1 {
			m.templateCursor++
		}
	case "k", "up":
		if m.templateCursor > 0 {
			m.templateCursor--
		}
	case "a":
		m.templateForm = newTemplateForm(m.styles, nil, m.config.Board.DefaultColor)
		m.modalType = ModalTemplateForm
		return m, nil
	case "e", "enter":
		if t := m.selectedTemplate(); t != nil {
			m.templateForm = newTemplateForm(m.styles, t, m.config.Board.DefaultColor)
			m.modalType = ModalTemplateForm
		}
	case "d", "x":
		if t := m.selectedTemplate(); t != nil {
			return m, commands.DeleteTemplate(m.board, t.ID)
		}
	}
	return m, nil
}

// handleTemplateFormKeys handles keys in the template form.
func (m Model) handleTemplateFormKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	f := &m.templateForm
	switch msg.String() {
	case "esc":
		m.modalType = ModalTemplates
		return m, nil
	case "tab":
		cmd := f.next()
		return m, cmd
	case "shift+tab":
		cmd := f.prev()
		return m, cmd
	case "enter":
		f.err = ""
		return m, commands.SubmitTemplate(m.board, f.session, f.values())
	}
	cmd := f.update(msg)
	return m, cmd
}

// handleWeekSummaryKeys handles keys in the week summary modal.
func (m Model) handleWeekSummaryKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y":
		return m.copyWeekSummary()
	case "esc", "enter", "s", "q":
		return m.closeModal("close summary"), nil
	}
	return m, nil
}

func (m Model) shiftWeek(weeks int) (tea.Model, tea.Cmd) {
	m.weekStart = m.weekStart.AddDate(0, 0, 7*weeks)
	logCursorMove(m.logger, m.cursor, "week")
	return m.loadWeek()
}

func (m Model) loadWeek() (tea.Model, tea.Cmd) {
	if m.board == nil {
		return m, nil
	}
	m.loading = true
	return m, commands.LoadWeek(m.board, m.weekStart)
}

// openEventForm opens the appointment form. With edit set, the block under
// the cursor is edited when there is one.
func (m Model) openEventForm(edit bool) (tea.Model, tea.Cmd) {
	if m.board == nil {
		return m, nil
	}
	if edit {
		if b := m.blockAtCursor(); b != nil {
			m.eventForm = newEventForm(m.styles, b.Event, "", "", "", "")
			m = m.openModal(ModalEventForm, "edit")
			return m, nil
		}
	}
	date := dateutil.FormatDate(m.cursorDate())
	start := m.mapper.RowClock(m.cursor.Row)
	end := m.mapper.RowEnd(m.cursor.Row)
	m.eventForm = newEventForm(m.styles, nil, date, start, end, m.config.Board.DefaultColor)
	m = m.openModal(ModalEventForm, "add")
	return m, nil
}

func (m Model) openConfirmDelete() (tea.Model, tea.Cmd) {
	b := m.blockAtCursor()
	if b == nil {
		m.setStatus("No appointment here")
		return m, nil
	}
	m.confirmEvent = b.Event
	m = m.openModal(ModalConfirmDelete, "delete")
	return m, nil
}

func (m Model) copyWeekSummary() (tea.Model, tea.Cmd) {
	if m.week == nil || len(m.week.Summary.Events) == 0 {
		m.setStatus("No appointments to copy")
		return m, nil
	}
	text := m.week.Summary.Text(m.config.Board.Currency)
	return m, commands.CopyText(text, "Copied week summary")
}

func (m Model) openModal(t ModalType, reason string) Model {
	logModeChange(m.logger, m.mode, ModeModal, reason)
	m.mode = ModeModal
	m.modalType = t
	return m
}

func (m Model) closeModal(reason string) Model {
	logModeChange(m.logger, m.mode, ModeNormal, reason)
	m.mode = ModeNormal
	m.modalType = ModalNone
	return m
}
