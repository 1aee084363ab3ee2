package view

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// FormField is one labelled input of a modal form.
type FormField struct {
	Label   string
	Value   string // rendered input
	Focused bool
}

// FormModel contains the fields needed to render a form body.
type FormModel struct {
	Meta        []string // tags shown above the fields
	Fields      []FormField
	Suggestions []string // completions for the focused field
	Error       string
	Hint        string
}

// FormStyles groups styles for a form body.
type FormStyles struct {
	TagStyle          lipgloss.Style
	BodyStyle         lipgloss.Style
	SectionTitleStyle lipgloss.Style
	InputStyle        lipgloss.Style
	InputFocusedStyle lipgloss.Style
	HintStyle         lipgloss.Style
	ErrorStyle        lipgloss.Style
}

// RenderFormBody renders the modal body for a form.
func RenderFormBody(model FormModel, styles FormStyles) string {
	var body strings.Builder
	sep := styles.BodyStyle.Render(" ")

	if len(model.Meta) > 0 {
		tags := make([]string, 0, len(model.Meta))
		for _, m := range model.Meta {
			tags = append(tags, styles.TagStyle.Render(m))
		}
		body.WriteString(strings.Join(tags, sep) + "\n\n")
	}

	for i, f := range model.Fields {
		if i > 0 {
			body.WriteString("\n")
		}
		body.WriteString(styles.SectionTitleStyle.Render(strings.ToUpper(f.Label)) + "\n")
		style := styles.InputStyle
		if f.Focused {
			style = styles.InputFocusedStyle
		}
		body.WriteString(style.Render(f.Value) + "\n")
		if f.Focused && len(model.Suggestions) > 0 {
			body.WriteString(styles.HintStyle.Render("  "+strings.Join(model.Suggestions, " · ")) + "\n")
		}
	}

	if model.Error != "" {
		body.WriteString("\n" + styles.ErrorStyle.Render(model.Error) + "\n")
	} else if model.Hint != "" {
		body.WriteString("\n" + styles.HintStyle.Render(model.Hint) + "\n")
	}

	return body.String()
}

// ConfirmDeleteModel contains the fields needed to render the confirm delete body.
type ConfirmDeleteModel struct {
	Service   string
	Client    string
	TimeRange string
	DateLabel string
}

// ConfirmDeleteStyles groups styles for the confirm delete body.
type ConfirmDeleteStyles struct {
	BodyStyle lipgloss.Style
}

// RenderConfirmDeleteBody renders the modal body for the delete confirmation.
func RenderConfirmDeleteBody(model ConfirmDeleteModel, styles ConfirmDeleteStyles) string {
	var body strings.Builder

	body.WriteString(styles.BodyStyle.Render(fmt.Sprintf("%q for %s", model.Service, model.Client)) + "\n")
	body.WriteString(styles.BodyStyle.Render(model.DateLabel+" "+model.TimeRange) + "\n\n")
	body.WriteString(styles.BodyStyle.Render("Delete this appointment?"))

	return body.String()
}

// ListItem is one row of a selectable list.
type ListItem struct {
	Swatch lipgloss.Style // rendered as a two-cell color sample
	Title  string
	Detail string
}

// ListStyles groups styles for a selectable list.
type ListStyles struct {
	BodyStyle     lipgloss.Style
	SelectedStyle lipgloss.Style
	DetailStyle   lipgloss.Style
	HintStyle     lipgloss.Style
}

// RenderListBody renders items with the selected one highlighted.
func RenderListBody(items []ListItem, selected int, empty string, styles ListStyles) string {
	if len(items) == 0 {
		return styles.HintStyle.Render(empty)
	}

	titleW := 0
	for _, it := range items {
		titleW = max(titleW, lipgloss.Width(it.Title))
	}

	lines := make([]string, 0, len(items))
	for i, it := range items {
		style := styles.BodyStyle
		if i == selected {
			style = styles.SelectedStyle
		}
		title := it.Title + strings.Repeat(" ", titleW-lipgloss.Width(it.Title))
		line := it.Swatch.Render("  ") + style.Render(" "+title+"  ") + styles.DetailStyle.Render(it.Detail)
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

// InitModalModel contains the fields needed to render the init body.
type InitModalModel struct {
	ConfigPath    string
	DBPath        string
	ConfigMissing bool
	DBMissing     bool
	ErrorMessage  string
}

// InitModalStyles groups styles for the init body.
type InitModalStyles struct {
	BodyStyle  lipgloss.Style
	LabelStyle lipgloss.Style
	HintStyle  lipgloss.Style
}

// RenderInitBody renders the modal body asking to create missing files.
func RenderInitBody(model InitModalModel, styles InitModalStyles) string {
	var body strings.Builder

	body.WriteString(styles.BodyStyle.Render("Glowboard needs to create:") + "\n\n")
	if model.ConfigMissing {
		body.WriteString(styles.LabelStyle.Render(" Config:   ") + styles.BodyStyle.Render(model.ConfigPath) + "\n")
	}
	if model.DBMissing {
		body.WriteString(styles.LabelStyle.Render(" Database: ") + styles.BodyStyle.Render(model.DBPath) + "\n")
	}
	if model.ErrorMessage != "" {
		body.WriteString("\n" + styles.HintStyle.Render("Error: "+model.ErrorMessage) + "\n")
	}

	return body.String()
}
