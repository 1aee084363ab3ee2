package tui

import (
	"github.com/javiermolinar/glowboard/internal/booking"
	"github.com/javiermolinar/glowboard/internal/dateutil"
	"github.com/javiermolinar/glowboard/internal/tui/view"
)

// renderModal renders the current modal.
func (m Model) renderModal() string {
	switch m.modalType {
	case ModalEventForm:
		return m.renderEventFormModal()
	case ModalConfirmDelete:
		return m.renderConfirmDeleteModal()
	case ModalTemplates:
		return m.renderTemplatesModal()
	case ModalTemplateForm:
		return m.renderTemplateFormModal()
	case ModalWeekSummary:
		return m.renderWeekSummaryModal()
	case ModalInit:
		return m.renderInitModal()
	default:
		return ""
	}
}

func (m Model) modalStyles() view.ModalStyles {
	return view.ModalStyles{
		ModalHeaderStyle:       m.styles.ModalHeaderStyle,
		ModalTitleStyle:        m.styles.ModalTitleStyle,
		ModalFooterStyle:       m.styles.ModalFooterStyle,
		ModalStyle:             m.styles.ModalStyle,
		ModalButtonStyle:       m.styles.ModalButtonStyle,
		ModalButtonActiveStyle: m.styles.ModalButtonActiveStyle,
		ModalBodyStyle:         m.styles.ModalBodyStyle,
	}
}

func (m Model) formStyles() view.FormStyles {
	return view.FormStyles{
		TagStyle:          m.styles.ModalTagStyle,
		BodyStyle:         m.styles.ModalBodyStyle,
		SectionTitleStyle: m.styles.ModalSectionTitleStyle,
		InputStyle:        m.styles.ModalInputStyle,
		InputFocusedStyle: m.styles.ModalInputFocusedStyle,
		HintStyle:         m.styles.ModalHintStyle,
		ErrorStyle:        m.styles.ModalErrorStyle,
	}
}

// renderEventFormModal renders the appointment form.
func (m Model) renderEventFormModal() string {
	f := m.eventForm
	title := "New Appointment"
	if !f.session.IsNew() {
		title = "Edit Appointment"
	}

	var names []string
	for _, s := range f.suggestions(m.templates) {
		names = append(names, s.Name)
	}

	model := view.FormModel{
		Meta:        []string{formDateLabel(f.value(fieldDate))},
		Fields:      f.fields(),
		Suggestions: names,
		Error:       f.err,
		Hint:        "Services matching a template fill in color and price",
	}
	body := view.RenderFormBody(model, m.formStyles())
	return view.RenderModalFrame(title, body, view.EventFormFooter(m.modalStyles()), m.modalStyles())
}

// renderConfirmDeleteModal renders the delete confirmation modal.
func (m Model) renderConfirmDeleteModal() string {
	e := m.confirmEvent
	if e == nil {
		return ""
	}
	model := view.ConfirmDeleteModel{
		Service:   e.Service,
		Client:    e.Client,
		TimeRange: e.Start + "-" + e.End,
		DateLabel: e.Date.Format("Mon Jan 2"),
	}
	body := view.RenderConfirmDeleteBody(model, view.ConfirmDeleteStyles{BodyStyle: m.styles.ModalBodyStyle})
	return view.RenderModalFrame("Delete Appointment", body, view.ConfirmDeleteFooter(m.modalStyles()), m.modalStyles())
}

// renderTemplatesModal renders the service template list.
func (m Model) renderTemplatesModal() string {
	items := make([]view.ListItem, 0, len(m.templates))
	for _, t := range m.templates {
		items = append(items, view.ListItem{
			Swatch: m.styles.Swatch(templateColor(t)),
			Title:  t.Name,
			Detail: t.Price.Format(m.config.Board.Currency),
		})
	}
	styles := view.ListStyles{
		BodyStyle:     m.styles.ModalBodyStyle,
		SelectedStyle: m.styles.ModalSelectedStyle,
		DetailStyle:   m.styles.ModalMetaStyle,
		HintStyle:     m.styles.ModalHintStyle,
	}
	body := view.RenderListBody(items, m.templateCursor, "No templates yet. Press a to add one.", styles)
	footer := view.TemplatesFooter(len(items) == 0, m.modalStyles())
	return view.RenderModalFrame("Service Templates", body, footer, m.modalStyles())
}

// renderTemplateFormModal renders the template form.
func (m Model) renderTemplateFormModal() string {
	f := m.templateForm
	title := "New Template"
	if !f.session.IsNew() {
		title = "Edit Template"
	}
	model := view.FormModel{
		Fields: f.fields(),
		Error:  f.err,
	}
	body := view.RenderFormBody(model, m.formStyles())
	return view.RenderModalFrame(title, body, view.EventFormFooter(m.modalStyles()), m.modalStyles())
}

// renderWeekSummaryModal renders the figures of the displayed week.
func (m Model) renderWeekSummaryModal() string {
	if m.week == nil {
		return ""
	}
	lines := view.BuildWeekSummaryLines(m.week.Summary, m.config.Board.Currency)
	styles := view.WeekSummaryStyles{
		BodyStyle:         m.styles.ModalBodyStyle,
		MetaStyle:         m.styles.ModalMetaStyle,
		SectionTitleStyle: m.styles.ModalSectionTitleStyle,
	}
	body := view.RenderWeekSummaryBody(lines, styles, view.ModalContentWidth(m.styles.ModalStyle, 40))
	return view.RenderModalFrame("Week Summary", body, view.WeekSummaryFooter(m.modalStyles()), m.modalStyles())
}

// renderInitModal renders the startup initialization modal.
func (m Model) renderInitModal() string {
	model := view.InitModalModel{
		ConfigPath:    m.initState.ConfigPath,
		DBPath:        m.initState.DBPath,
		ConfigMissing: m.initState.ConfigMissing,
		DBMissing:     m.initState.DBMissing,
		ErrorMessage:  m.initError,
	}
	styles := view.InitModalStyles{
		BodyStyle:  m.styles.ModalBodyStyle,
		LabelStyle: m.styles.ModalLabelStyle,
		HintStyle:  m.styles.ModalHintStyle,
	}
	body := view.RenderInitBody(model, styles)
	return view.RenderModalFrame("Welcome to Glowboard", body, view.InitFooter(m.modalStyles()), m.modalStyles())
}

func formDateLabel(s string) string {
	d, err := dateutil.ParseDate(s)
	if err != nil {
		return s
	}
	return d.Format("Mon Jan 2")
}

func templateColor(t *booking.Template) string {
	if t.Color == "" {
		return booking.DefaultColor
	}
	return t.Color
}
