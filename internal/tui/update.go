package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/glowboard/internal/dateutil"
	"github.com/javiermolinar/glowboard/internal/tui/commands"
)

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.colWidth = m.calculateColWidth()
		return m, nil

	case commands.WeekLoadedMsg:
		// A reply for a week we already navigated away from
		if !dateutil.SameDay(msg.Board.Monday(), m.weekStart) {
			return m, nil
		}
		m.week = msg.Board
		m.loading = false
		return m, nil

	case commands.TemplatesLoadedMsg:
		m.templates = msg.Templates
		m.templateCursor = max(0, min(m.templateCursor, len(m.templates)-1))
		return m, nil

	case commands.EventSavedMsg:
		e := msg.Event
		verb := "Updated"
		if msg.Created {
			verb = "Booked"
		}
		if m.modalType == ModalEventForm {
			m = m.closeModal("saved")
		}
		m.focusEvent(e)
		cmd := m.flash(fmt.Sprintf("%s %s for %s on %s %s-%s", verb, e.Service, e.Client, e.DateKey(), e.Start, e.End))
		m.loading = true
		return m, tea.Batch(commands.LoadWeek(m.board, m.weekStart), cmd)

	case commands.EventDeletedMsg:
		cmd := m.flash("Deleted appointment")
		m.loading = true
		return m, tea.Batch(commands.LoadWeek(m.board, m.weekStart), cmd)

	case commands.TemplateSavedMsg:
		verb := "Updated"
		if msg.Created {
			verb = "Added"
		}
		if m.modalType == ModalTemplateForm {
			m.modalType = ModalTemplates
		}
		cmd := m.flash(fmt.Sprintf("%s template %s", verb, msg.Template.Name))
		return m, tea.Batch(commands.LoadTemplates(m.board), cmd)

	case commands.TemplateDeletedMsg:
		cmd := m.flash("Deleted template")
		return m, tea.Batch(commands.LoadTemplates(m.board), cmd)

	case commands.SubmitFailedMsg:
		text := submitErrorText(msg.Err)
		switch m.modalType {
		case ModalEventForm:
			m.eventForm.err = text
		case ModalTemplateForm:
			m.templateForm.err = text
		}
		cmd := m.flash(text)
		return m, cmd

	case commands.AutofillMsg:
		if m.modalType == ModalEventForm {
			m.eventForm.applyAutofill(msg.Service, msg.Color, msg.Price)
		}
		return m, nil

	case commands.ErrMsg:
		m.err = msg.Err
		m.loading = false
		logError(m.logger, "command", msg.Err)
		m.statusMsg = fmt.Sprintf("Error: %v", msg.Err)
		m.statusTime = m.now().Add(errorDuration)
		return m, nil

	case commands.StatusMsgCmd:
		cmd := m.flash(msg.Msg)
		return m, cmd

	case commands.ClearStatusMsg:
		if !m.now().Before(m.statusTime) {
			m.statusMsg = ""
		}
		return m, nil
	}

	return m, nil
}
