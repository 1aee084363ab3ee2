// Package commands provides TUI command constructors and message types.
package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/glowboard/internal/board"
	"github.com/javiermolinar/glowboard/internal/booking"
)

// WeekLoadedMsg is sent when a week has been placed on the board.
type WeekLoadedMsg struct {
	Board *board.WeekBoard
}

// TemplatesLoadedMsg is sent when the service templates are loaded.
type TemplatesLoadedMsg struct {
	Templates []*booking.Template
}

// EventSavedMsg is sent when an appointment form was accepted.
type EventSavedMsg struct {
	Event   *booking.Event
	Created bool
}

// EventDeletedMsg is sent when an appointment was removed.
type EventDeletedMsg struct {
	ID string
}

// TemplateSavedMsg is sent when a template form was accepted.
type TemplateSavedMsg struct {
	Template *booking.Template
	Created  bool
}

// TemplateDeletedMsg is sent when a template was removed.
type TemplateDeletedMsg struct {
	ID string
}

// SubmitFailedMsg is sent when a form was refused. The form stays open.
type SubmitFailedMsg struct {
	Err error
}

// AutofillMsg carries the template defaults for a service name.
type AutofillMsg struct {
	Service string
	Color   string
	Price   string
}

// ErrMsg is sent when an error occurs.
type ErrMsg struct {
	Err error
}

// StatusMsgCmd is sent for temporary status messages.
type StatusMsgCmd struct {
	Msg string
}

// ClearStatusMsg is sent to clear the status message.
type ClearStatusMsg struct{}

// LoadWeek loads the week containing date.
func LoadWeek(svc *board.Service, date time.Time) tea.Cmd {
	return func() tea.Msg {
		wb, err := svc.Week(context.Background(), date)
		if err != nil {
			return ErrMsg{Err: err}
		}
		return WeekLoadedMsg{Board: wb}
	}
}

// LoadTemplates loads all service templates.
func LoadTemplates(svc *board.Service) tea.Cmd {
	return func() tea.Msg {
		templates, err := svc.Templates(context.Background())
		if err != nil {
			return ErrMsg{Err: err}
		}
		return TemplatesLoadedMsg{Templates: templates}
	}
}

// SubmitEvent validates and saves the appointment form.
func SubmitEvent(svc *board.Service, session board.EventSession, form board.EventForm) tea.Cmd {
	return func() tea.Msg {
		e, err := svc.SubmitEvent(context.Background(), session, form)
		if err != nil {
			return SubmitFailedMsg{Err: err}
		}
		return EventSavedMsg{Event: e, Created: session.IsNew()}
	}
}

// DeleteEvent removes an appointment.
func DeleteEvent(svc *board.Service, id string) tea.Cmd {
	return func() tea.Msg {
		ok, err := svc.DeleteEvent(context.Background(), id)
		if err != nil {
			return ErrMsg{Err: err}
		}
		if !ok {
			return ErrMsg{Err: fmt.Errorf("appointment %s no longer exists", id)}
		}
		return EventDeletedMsg{ID: id}
	}
}

// SubmitTemplate validates and saves the template form.
func SubmitTemplate(svc *board.Service, session board.TemplateSession, form board.TemplateForm) tea.Cmd {
	return func() tea.Msg {
		t, err := svc.SubmitTemplate(context.Background(), session, form)
		if err != nil {
			return SubmitFailedMsg{Err: err}
		}
		return TemplateSavedMsg{Template: t, Created: session.IsNew()}
	}
}

// DeleteTemplate removes a service template.
func DeleteTemplate(svc *board.Service, id string) tea.Cmd {
	return func() tea.Msg {
		ok, err := svc.DeleteTemplate(context.Background(), id)
		if err != nil {
			return ErrMsg{Err: err}
		}
		if !ok {
			return ErrMsg{Err: fmt.Errorf("template %s no longer exists", id)}
		}
		return TemplateDeletedMsg{ID: id}
	}
}

// Autofill looks up the template defaults for a service name.
// It produces no message when no template matches.
func Autofill(svc *board.Service, service string) tea.Cmd {
	return func() tea.Msg {
		color, price, ok, err := svc.Autofill(context.Background(), service)
		if err != nil {
			return ErrMsg{Err: err}
		}
		if !ok {
			return nil
		}
		return AutofillMsg{Service: service, Color: color, Price: price}
	}
}

// CopyText copies text to the system clipboard.
func CopyText(text, done string) tea.Cmd {
	return func() tea.Msg {
		if err := clipboard.WriteAll(text); err != nil {
			return ErrMsg{Err: fmt.Errorf("copying to clipboard: %w", err)}
		}
		return StatusMsgCmd{Msg: done}
	}
}
