package tui

import (
	"errors"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/glowboard/internal/board"
	"github.com/javiermolinar/glowboard/internal/booking"
	"github.com/javiermolinar/glowboard/internal/dateutil"
	"github.com/javiermolinar/glowboard/internal/grid"
	"github.com/javiermolinar/glowboard/internal/tui/commands"
)

const (
	statusDuration = 3 * time.Second
	errorDuration  = 5 * time.Second
)

// calculateColWidth splits the inner width across the seven day columns.
func (m *Model) calculateColWidth() int {
	innerW := m.width - 4
	// time column plus one border per column and the outer border
	avail := innerW - timeColWidth - (grid.Columns + 2)
	return max(avail/grid.Columns, 4)
}

// cursorDate returns the date of the column under the cursor.
func (m *Model) cursorDate() time.Time {
	return m.weekStart.AddDate(0, 0, m.cursor.Day)
}

// blockAtCursor returns the appointment drawn under the cursor, or nil.
func (m *Model) blockAtCursor() *grid.Block {
	if m.week == nil {
		return nil
	}
	return m.week.Layout.Covering(m.cursor.Day, m.cursor.Row)
}

func (m *Model) selectedTemplate() *booking.Template {
	if m.templateCursor < 0 || m.templateCursor >= len(m.templates) {
		return nil
	}
	return m.templates[m.templateCursor]
}

// setStatus shows msg in the status line until the next clear.
func (m *Model) setStatus(msg string) {
	m.statusMsg = msg
	m.statusTime = m.now().Add(statusDuration)
}

// flash shows msg and schedules it to be cleared.
func (m *Model) flash(msg string) tea.Cmd {
	m.setStatus(msg)
	return tea.Tick(statusDuration, func(time.Time) tea.Msg {
		return commands.ClearStatusMsg{}
	})
}

func (m Model) statusMsgOrDefault() string {
	if m.statusMsg != "" {
		return m.statusMsg
	}
	if m.loading {
		return "Loading..."
	}
	_, sunday := dateutil.WeekRange(m.weekStart)
	return fmt.Sprintf("WEEK: %s - %s", m.weekStart.Format("Mon Jan 2"), sunday.Format("Mon Jan 2, 2006"))
}

// focusEvent moves the board to the week of e and puts the cursor on it.
func (m *Model) focusEvent(e *booking.Event) {
	m.weekStart = dateutil.StartOfWeek(e.Date)
	p, err := m.mapper.Place(e.Date, e.Start, e.End)
	if err != nil {
		m.cursor.Day = dateutil.WeekdayIndex(e.Date)
		return
	}
	m.cursor = Position{Day: p.Column, Row: p.Row}
}

// submitErrorText describes why a form was refused.
func submitErrorText(err error) string {
	var conflict *board.ConflictError
	if errors.As(err, &conflict) {
		c := conflict.Conflict
		msg := fmt.Sprintf("Slot taken: %s-%s is booked for %s (%s)", c.Start, c.End, c.Service, c.Client)
		if conflict.Suggestion != nil {
			msg += fmt.Sprintf(". Next free: %s-%s", conflict.Suggestion.Start, conflict.Suggestion.End)
		}
		return msg
	}
	switch {
	case errors.Is(err, board.ErrMissingFields):
		return "Please fill in service, client, date, start and end"
	case errors.Is(err, board.ErrMissingName):
		return "Please enter a template name"
	case errors.Is(err, board.ErrInvalidPrice):
		return "Price must be a number"
	}
	return err.Error()
}
