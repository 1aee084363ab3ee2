package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/glowboard/internal/board"
	"github.com/javiermolinar/glowboard/internal/booking"
	"github.com/javiermolinar/glowboard/internal/tui/input"
	"github.com/javiermolinar/glowboard/internal/tui/view"
)

// Appointment form fields, in tab order.
const (
	fieldService = iota
	fieldClient
	fieldDate
	fieldStart
	fieldEnd
	fieldColor
	fieldPrice
)

var eventFieldLabels = []string{"Service", "Client", "Date", "Start", "End", "Color", "Price"}

var eventFieldPlaceholders = []string{"Manicure", "Client name", "YYYY-MM-DD", "HH:MM", "HH:MM", "#rrggbb", "from template"}

// Template form fields, in tab order.
const (
	fieldTemplateName = iota
	fieldTemplateColor
	fieldTemplatePrice
)

var templateFieldLabels = []string{"Name", "Color", "Price"}

var templateFieldPlaceholders = []string{"Service name", "#rrggbb", "0.00"}

// form is a set of focusable text inputs with one error line.
type form struct {
	labels []string
	inputs []textinput.Model
	focus  int
	err    string
}

func newForm(styles *Styles, labels, placeholders []string) form {
	inputs := make([]textinput.Model, len(labels))
	for i := range labels {
		ti := textinput.New()
		ti.Prompt = ""
		ti.Placeholder = placeholders[i]
		ti.CharLimit = 128
		ti.Width = 40
		ti.PlaceholderStyle = styles.ModalPlaceholderStyle
		ti.TextStyle = styles.ModalInputTextStyle
		ti.PromptStyle = styles.ModalInputTextStyle
		ti.Cursor.Style = styles.ModalInputCursorStyle
		ti.Cursor.TextStyle = styles.ModalInputTextStyle
		inputs[i] = ti
	}
	f := form{labels: labels, inputs: inputs}
	f.setFocus(0)
	return f
}

func (f *form) value(i int) string {
	return strings.TrimSpace(f.inputs[i].Value())
}

func (f *form) setValue(i int, v string) {
	f.inputs[i].SetValue(v)
	f.inputs[i].CursorEnd()
}

func (f *form) setFocus(i int) tea.Cmd {
	n := len(f.inputs)
	f.focus = ((i % n) + n) % n
	var cmd tea.Cmd
	for j := range f.inputs {
		if j == f.focus {
			cmd = f.inputs[j].Focus()
		} else {
			f.inputs[j].Blur()
		}
	}
	return cmd
}

func (f *form) next() tea.Cmd {
	return f.setFocus(f.focus + 1)
}

func (f *form) prev() tea.Cmd {
	return f.setFocus(f.focus - 1)
}

func (f *form) update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return cmd
}

func (f *form) fields() []view.FormField {
	fields := make([]view.FormField, len(f.inputs))
	for i := range f.inputs {
		fields[i] = view.FormField{
			Label:   f.labels[i],
			Value:   f.inputs[i].View(),
			Focused: i == f.focus,
		}
	}
	return fields
}

// eventForm edits one appointment.
type eventForm struct {
	form
	session board.EventSession
}

// newEventForm opens the form for e, or for a new appointment on the given
// slot when e is nil.
func newEventForm(styles *Styles, e *booking.Event, date, start, end, color string) eventForm {
	f := eventForm{form: newForm(styles, eventFieldLabels, eventFieldPlaceholders)}
	if e != nil {
		f.session = board.EventSession{EventID: e.ID}
		values := board.FormFromEvent(e)
		f.setValue(fieldService, values.Service)
		f.setValue(fieldClient, values.Client)
		f.setValue(fieldDate, values.Date)
		f.setValue(fieldStart, values.Start)
		f.setValue(fieldEnd, values.End)
		f.setValue(fieldColor, values.Color)
		f.setValue(fieldPrice, values.Price)
		return f
	}
	f.setValue(fieldDate, date)
	f.setValue(fieldStart, start)
	f.setValue(fieldEnd, end)
	f.setValue(fieldColor, color)
	return f
}

func (f *eventForm) values() board.EventForm {
	return board.EventForm{
		Service: f.value(fieldService),
		Client:  f.value(fieldClient),
		Color:   f.value(fieldColor),
		Price:   f.value(fieldPrice),
		Date:    f.value(fieldDate),
		Start:   f.value(fieldStart),
		End:     f.value(fieldEnd),
	}
}

// applyAutofill copies template defaults into the form. The color always
// follows the template; a price already typed is kept.
func (f *eventForm) applyAutofill(service, color, price string) {
	if !strings.EqualFold(f.value(fieldService), strings.TrimSpace(service)) {
		return
	}
	f.setValue(fieldColor, color)
	if f.value(fieldPrice) == "" {
		f.setValue(fieldPrice, price)
	}
}

// suggestions returns template names completing the service field.
func (f *eventForm) suggestions(templates []*booking.Template) []input.Suggestion {
	if f.focus != fieldService {
		return nil
	}
	all := make([]input.Suggestion, 0, len(templates))
	for _, t := range templates {
		all = append(all, input.Suggestion{Name: t.Name, Description: t.Price.String()})
	}
	return input.MatchingSuggestions(f.inputs[fieldService].Value(), all)
}

// templateForm edits one service template.
type templateForm struct {
	form
	session board.TemplateSession
}

func newTemplateForm(styles *Styles, t *booking.Template, defaultColor string) templateForm {
	f := templateForm{form: newForm(styles, templateFieldLabels, templateFieldPlaceholders)}
	if t == nil {
		f.setValue(fieldTemplateColor, defaultColor)
		return f
	}
	f.session = board.TemplateSession{TemplateID: t.ID}
	values := board.FormFromTemplate(t)
	f.setValue(fieldTemplateName, values.Name)
	f.setValue(fieldTemplateColor, values.Color)
	f.setValue(fieldTemplatePrice, values.Price)
	return f
}

func (f *templateForm) values() board.TemplateForm {
	return board.TemplateForm{
		Name:  f.value(fieldTemplateName),
		Color: f.value(fieldTemplateColor),
		Price: f.value(fieldTemplatePrice),
	}
}
