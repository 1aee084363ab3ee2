package tui

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/glowboard/internal/board"
	"github.com/javiermolinar/glowboard/internal/config"
	"github.com/javiermolinar/glowboard/internal/db"
	"github.com/javiermolinar/glowboard/internal/tui/commands"
)

var monday = time.Date(2024, 5, 6, 0, 0, 0, 0, time.Local)

// bookMonday books Manicure for Ana on Monday 09:00-10:00 and loads the week.
func bookMonday(t *testing.T, m Model, svc *board.Service) Model {
	t.Helper()
	_, err := svc.SubmitEvent(context.Background(), board.EventSession{}, board.EventForm{
		Service: "Manicure",
		Client:  "Ana",
		Price:   "15",
		Date:    "2024-05-06",
		Start:   "09:00",
		End:     "10:00",
	})
	if err != nil {
		t.Fatalf("booking: %v", err)
	}
	return send(t, m, commands.LoadWeek(svc, m.weekStart)())
}

func TestNormalKeys_DayNavigationWrapsWeeks(t *testing.T) {
	m, _ := newTestModel(t)
	m.cursor = Position{Day: 0, Row: 3}

	m, cmd := press(t, m, "h")
	if m.cursor.Day != 6 {
		t.Fatalf("cursor day = %d, want 6", m.cursor.Day)
	}
	if want := monday.AddDate(0, 0, -7); !m.weekStart.Equal(want) {
		t.Fatalf("weekStart = %v, want %v", m.weekStart, want)
	}
	if cmd == nil || !m.loading {
		t.Fatalf("expected the previous week to load")
	}

	m, _ = press(t, m, "l")
	if m.cursor.Day != 0 || !m.weekStart.Equal(monday) {
		t.Fatalf("expected to wrap back to Monday of the current week, got day %d week %v", m.cursor.Day, m.weekStart)
	}
}

func TestNormalKeys_HourNavigationClamps(t *testing.T) {
	m, _ := newTestModel(t)

	m, _ = press(t, m, "G")
	m, _ = press(t, m, "j")
	if m.cursor.Row != m.mapper.Rows()-1 {
		t.Fatalf("cursor row = %d, want last row", m.cursor.Row)
	}

	m, _ = press(t, m, "g")
	m, _ = press(t, m, "k")
	if m.cursor.Row != 0 {
		t.Fatalf("cursor row = %d, want 0", m.cursor.Row)
	}
}

func TestNormalKeys_TodayReturnsToCurrentWeek(t *testing.T) {
	m, _ := newTestModel(t)
	m, _ = press(t, m, "L")
	m, _ = press(t, m, "L")

	m, cmd := press(t, m, "t")
	if !m.weekStart.Equal(monday) {
		t.Fatalf("weekStart = %v, want %v", m.weekStart, monday)
	}
	if m.cursor != (Position{Day: 2, Row: 2}) || cmd == nil {
		t.Fatalf("expected cursor on today and a load command")
	}
}

func TestEventForm_PrefillsCursorSlot(t *testing.T) {
	m, _ := newTestModel(t)
	m.cursor = Position{Day: 0, Row: 1}

	m, _ = press(t, m, "a")
	if m.mode != ModeModal || m.modalType != ModalEventForm {
		t.Fatalf("expected event form to open")
	}
	got := m.eventForm.values()
	if got.Date != "2024-05-06" || got.Start != "09:00" || got.End != "10:00" {
		t.Fatalf("prefilled slot = %s %s-%s", got.Date, got.Start, got.End)
	}
	if got.Color != m.config.Board.DefaultColor {
		t.Fatalf("color = %q, want default %q", got.Color, m.config.Board.DefaultColor)
	}
	if !m.eventForm.session.IsNew() {
		t.Fatalf("expected a new appointment session")
	}
}

func TestEventForm_LastRowEndsBeforeMidnight(t *testing.T) {
	store, err := db.New(filepath.Join(t.TempDir(), "late.db"))
	if err != nil {
		t.Fatalf("opening store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })

	cfg := config.Default()
	cfg.Board.FirstHour, cfg.Board.LastHour = 18, 24
	svc := board.New(store, board.WithWindow(18, 24), board.WithClock(fixedClock))
	m := *New(svc, cfg, WithClock(fixedClock))

	m, _ = press(t, m, "G")
	m, _ = press(t, m, "a")
	if got := m.eventForm.value(fieldEnd); got != "23:59" {
		t.Fatalf("end = %q, want 23:59", got)
	}

	m.eventForm.setValue(fieldService, "Manicure")
	m.eventForm.setValue(fieldClient, "Ana")
	m.eventForm.setValue(fieldPrice, "15")
	_, cmd := press(t, m, "enter")
	if msg := cmd(); msg == nil {
		t.Fatalf("expected a submit result")
	} else if _, ok := msg.(commands.EventSavedMsg); !ok {
		t.Fatalf("msg = %#v, want EventSavedMsg", msg)
	}
}

func TestEventForm_AcceptsNavigationLetters(t *testing.T) {
	m, _ := newTestModel(t)
	m, _ = press(t, m, "a")

	m, _ = press(t, m, "h")
	if m.mode != ModeModal {
		t.Fatalf("expected to stay in the form")
	}
	if got := m.eventForm.value(fieldService); got != "h" {
		t.Fatalf("service = %q, want %q", got, "h")
	}
}

func TestEventForm_TabCyclesFields(t *testing.T) {
	m, _ := newTestModel(t)
	m, _ = press(t, m, "a")

	for range len(eventFieldLabels) {
		m, _ = press(t, m, "tab")
	}
	if m.eventForm.focus != fieldService {
		t.Fatalf("focus = %d, want to wrap to service", m.eventForm.focus)
	}

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	m = updated.(Model)
	if m.eventForm.focus != fieldPrice {
		t.Fatalf("focus = %d, want price", m.eventForm.focus)
	}
}

func TestEventForm_SubmitBooksAppointment(t *testing.T) {
	m, svc := newTestModel(t)
	m.cursor = Position{Day: 0, Row: 1}
	m, _ = press(t, m, "a")
	m.eventForm.setValue(fieldService, "Manicure")
	m.eventForm.setValue(fieldClient, "Ana")
	m.eventForm.setValue(fieldPrice, "15")

	m, cmd := press(t, m, "enter")
	if cmd == nil {
		t.Fatalf("expected a submit command")
	}
	msg := cmd()
	if _, ok := msg.(commands.EventSavedMsg); !ok {
		t.Fatalf("msg = %T, want EventSavedMsg", msg)
	}

	m = send(t, m, msg)
	if m.mode != ModeNormal || m.modalType != ModalNone {
		t.Fatalf("expected the form to close after saving")
	}
	if want := "Booked Manicure for Ana on 2024-05-06 09:00-10:00"; m.statusMsg != want {
		t.Fatalf("status = %q, want %q", m.statusMsg, want)
	}

	m = send(t, m, commands.LoadWeek(svc, m.weekStart)())
	b := m.blockAtCursor()
	if b == nil || b.Event.Service != "Manicure" {
		t.Fatalf("expected the booked appointment under the cursor, got %+v", b)
	}
}

func TestEventForm_ConflictKeepsFormOpen(t *testing.T) {
	m, svc := newTestModel(t)
	m = bookMonday(t, m, svc)
	m.cursor = Position{Day: 0, Row: 4}

	m, _ = press(t, m, "a")
	m.eventForm.setValue(fieldService, "Pedicure")
	m.eventForm.setValue(fieldClient, "Eva")
	m.eventForm.setValue(fieldPrice, "20")
	m.eventForm.setValue(fieldStart, "09:30")
	m.eventForm.setValue(fieldEnd, "10:30")

	m, cmd := press(t, m, "enter")
	msg := cmd()
	if _, ok := msg.(commands.SubmitFailedMsg); !ok {
		t.Fatalf("msg = %T, want SubmitFailedMsg", msg)
	}

	m = send(t, m, msg)
	if m.modalType != ModalEventForm {
		t.Fatalf("expected the form to stay open")
	}
	if !strings.Contains(m.eventForm.err, "Slot taken: 09:00-10:00 is booked for Manicure (Ana)") {
		t.Fatalf("form error = %q", m.eventForm.err)
	}
}

func TestEventForm_AutocompleteAndAutofill(t *testing.T) {
	m, svc := newTestModel(t)
	ctx := context.Background()
	if _, err := svc.SubmitTemplate(ctx, board.TemplateSession{}, board.TemplateForm{Name: "Manicure", Color: "#ff0000", Price: "15"}); err != nil {
		t.Fatalf("creating template: %v", err)
	}
	m = send(t, m, commands.LoadTemplates(svc)())

	m, _ = press(t, m, "a")
	for _, r := range "Man" {
		m, _ = press(t, m, string(r))
	}

	m, cmd := press(t, m, "tab")
	if got := m.eventForm.value(fieldService); got != "Manicure" {
		t.Fatalf("service = %q, want completion to Manicure", got)
	}
	msg := cmd()
	fill, ok := msg.(commands.AutofillMsg)
	if !ok {
		t.Fatalf("msg = %T, want AutofillMsg", msg)
	}

	m = send(t, m, fill)
	if got := m.eventForm.value(fieldColor); got != "#ff0000" {
		t.Fatalf("color = %q, want template color", got)
	}
	if got := m.eventForm.value(fieldPrice); got != "15.00" {
		t.Fatalf("price = %q, want template price", got)
	}

	m.eventForm.setValue(fieldPrice, "18")
	m = send(t, m, fill)
	if got := m.eventForm.value(fieldPrice); got != "18" {
		t.Fatalf("price = %q, typed price should be kept", got)
	}
}

func TestEventForm_EscCloses(t *testing.T) {
	m, _ := newTestModel(t)
	m, _ = press(t, m, "a")
	m, _ = press(t, m, "esc")
	if m.mode != ModeNormal || m.modalType != ModalNone {
		t.Fatalf("expected the form to close")
	}
}

func TestEditOpensExistingAppointment(t *testing.T) {
	m, svc := newTestModel(t)
	m = bookMonday(t, m, svc)
	m.cursor = Position{Day: 0, Row: 1}

	m, _ = press(t, m, "e")
	if m.modalType != ModalEventForm || m.eventForm.session.IsNew() {
		t.Fatalf("expected an edit session")
	}
	if got := m.eventForm.value(fieldClient); got != "Ana" {
		t.Fatalf("client = %q, want Ana", got)
	}
}

func TestDelete_EmptyCell(t *testing.T) {
	m, _ := newTestModel(t)
	m, _ = press(t, m, "d")
	if m.mode != ModeNormal {
		t.Fatalf("expected no modal on an empty cell")
	}
	if m.statusMsg != "No appointment here" {
		t.Fatalf("status = %q", m.statusMsg)
	}
}

func TestDelete_ConfirmRemovesAppointment(t *testing.T) {
	m, svc := newTestModel(t)
	m = bookMonday(t, m, svc)
	m.cursor = Position{Day: 0, Row: 1}

	m, _ = press(t, m, "d")
	if m.modalType != ModalConfirmDelete || m.confirmEvent == nil {
		t.Fatalf("expected delete confirmation")
	}

	m, cmd := press(t, m, "y")
	if m.mode != ModeNormal {
		t.Fatalf("expected the modal to close")
	}
	msg := cmd()
	if _, ok := msg.(commands.EventDeletedMsg); !ok {
		t.Fatalf("msg = %T, want EventDeletedMsg", msg)
	}

	m = send(t, m, msg)
	m = send(t, m, commands.LoadWeek(svc, m.weekStart)())
	if m.blockAtCursor() != nil {
		t.Fatalf("expected the appointment to be gone")
	}
}

func TestDelete_EscKeepsAppointment(t *testing.T) {
	m, svc := newTestModel(t)
	m = bookMonday(t, m, svc)
	m.cursor = Position{Day: 0, Row: 1}

	m, _ = press(t, m, "d")
	m, cmd := press(t, m, "esc")
	if cmd != nil || m.mode != ModeNormal || m.confirmEvent != nil {
		t.Fatalf("expected the confirmation to be dismissed")
	}
}

func TestTemplates_AddFromList(t *testing.T) {
	m, svc := newTestModel(t)

	m, cmd := press(t, m, "T")
	if m.modalType != ModalTemplates || cmd == nil {
		t.Fatalf("expected templates modal with a load command")
	}

	m, _ = press(t, m, "a")
	if m.modalType != ModalTemplateForm {
		t.Fatalf("expected template form")
	}
	m.templateForm.setValue(fieldTemplateName, "Pedicure")
	m.templateForm.setValue(fieldTemplatePrice, "22.50")

	m, cmd = press(t, m, "enter")
	msg := cmd()
	if _, ok := msg.(commands.TemplateSavedMsg); !ok {
		t.Fatalf("msg = %T, want TemplateSavedMsg", msg)
	}
	m = send(t, m, msg)
	if m.modalType != ModalTemplates {
		t.Fatalf("expected to return to the template list")
	}
	if m.statusMsg != "Added template Pedicure" {
		t.Fatalf("status = %q", m.statusMsg)
	}

	m = send(t, m, commands.LoadTemplates(svc)())
	if len(m.templates) != 1 || m.templates[0].Name != "Pedicure" {
		t.Fatalf("templates = %+v", m.templates)
	}
}

func TestTemplates_EmptyNameRejected(t *testing.T) {
	m, _ := newTestModel(t)
	m, _ = press(t, m, "T")
	m, _ = press(t, m, "a")

	m, cmd := press(t, m, "enter")
	m = send(t, m, cmd())
	if m.templateForm.err != "Please enter a template name" {
		t.Fatalf("form error = %q", m.templateForm.err)
	}
}

func TestSummary_RequiresLoadedWeek(t *testing.T) {
	m, svc := newTestModel(t)

	m, _ = press(t, m, "s")
	if m.mode != ModeNormal {
		t.Fatalf("expected no summary before the week loads")
	}

	m = send(t, m, commands.LoadWeek(svc, m.weekStart)())
	m, _ = press(t, m, "s")
	if m.modalType != ModalWeekSummary {
		t.Fatalf("expected the summary modal")
	}
	m, _ = press(t, m, "esc")
	if m.mode != ModeNormal {
		t.Fatalf("expected the summary to close")
	}
}

func TestCopy_EmptyWeek(t *testing.T) {
	m, svc := newTestModel(t)
	m = send(t, m, commands.LoadWeek(svc, m.weekStart)())

	m, cmd := press(t, m, "y")
	if cmd != nil {
		t.Fatalf("expected nothing to copy")
	}
	if m.statusMsg != "No appointments to copy" {
		t.Fatalf("status = %q", m.statusMsg)
	}
}

func TestCtrlCQuitsFromModal(t *testing.T) {
	m, _ := newTestModel(t)
	m, _ = press(t, m, "a")

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	if cmd == nil {
		t.Fatalf("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("expected tea.QuitMsg")
	}
}
