package view

import (
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/javiermolinar/glowboard/internal/booking"
	"github.com/javiermolinar/glowboard/internal/summary"
)

func TestHeaderLabels(t *testing.T) {
	monday := time.Date(2024, 5, 6, 0, 0, 0, 0, time.Local)
	today := time.Date(2024, 5, 8, 15, 0, 0, 0, time.Local)

	labels, todayCols := HeaderLabels(monday, today)
	if len(labels) != 8 {
		t.Fatalf("expected 8 labels, got %d", len(labels))
	}
	want := []string{"May 24", "Mon 6", "Tue 7", "*Wed 8*", "Thu 9", "Fri 10", "Sat 11", "Sun 12"}
	for i, w := range want {
		if labels[i] != w {
			t.Errorf("label %d = %q, want %q", i, labels[i], w)
		}
	}
	if !todayCols[3] || len(todayCols) != 1 {
		t.Fatalf("expected only column 3 marked as today, got %v", todayCols)
	}
}

func TestHeaderLabels_TodayOutsideWeek(t *testing.T) {
	monday := time.Date(2024, 5, 6, 0, 0, 0, 0, time.Local)
	_, todayCols := HeaderLabels(monday, monday.AddDate(0, 0, 7))
	if len(todayCols) != 0 {
		t.Fatalf("expected no today column, got %v", todayCols)
	}
}

func TestFitCell(t *testing.T) {
	tests := []struct {
		in    string
		width int
		want  string
	}{
		{"Manicure", 10, "Manicure"},
		{"Manicure", 5, "Mani…"},
		{"Manicure", 0, ""},
	}
	for _, tt := range tests {
		if got := FitCell(tt.in, tt.width); got != tt.want {
			t.Errorf("FitCell(%q, %d) = %q, want %q", tt.in, tt.width, got, tt.want)
		}
	}
}

func TestWrapTextToWidths(t *testing.T) {
	got := WrapTextToWidths("deep tissue massage", 10, 10)
	want := []string{"deep", "tissue", "massage"}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("line %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestBuildWeekSummaryLines(t *testing.T) {
	monday := time.Date(2024, 5, 6, 0, 0, 0, 0, time.Local)
	events := []*booking.Event{
		{ID: "1", Date: monday, Start: "09:00", End: "10:00", Service: "Manicure", Client: "Ana", Price: 1500},
		{ID: "2", Date: monday.AddDate(0, 0, 1), Start: "11:00", End: "12:30", Service: "Color", Client: "Bea", Price: 4000},
	}
	s := summary.SummarizeWeek(monday, events, summary.WeekSummaryOptions{})

	lines := BuildWeekSummaryLines(s, "€")
	if lines[0].Style != WeekSummaryLineMeta {
		t.Fatalf("expected first line to be meta, got %v", lines[0].Style)
	}
	var texts []string
	for _, l := range lines {
		texts = append(texts, l.Text)
	}
	joined := strings.Join(texts, "\n")
	for _, want := range []string{
		"Mon May 6 - Sun May 12, 2024",
		"Appointments: 2",
		"Booked: 2h 30m",
		"Revenue: €55.00",
		"Best day: Tuesday (€40.00)",
		"SERVICES",
		"Color: 1, €40.00",
	} {
		if !strings.Contains(joined, want) {
			t.Errorf("expected %q in summary:\n%s", want, joined)
		}
	}
}

func TestBuildWeekSummaryLines_Empty(t *testing.T) {
	monday := time.Date(2024, 5, 6, 0, 0, 0, 0, time.Local)
	s := summary.SummarizeWeek(monday, nil, summary.WeekSummaryOptions{})

	lines := BuildWeekSummaryLines(s, "€")
	if got := lines[len(lines)-1].Text; got != "No appointments this week." {
		t.Fatalf("unexpected last line %q", got)
	}
}

func TestRenderFormBody(t *testing.T) {
	model := FormModel{
		Meta: []string{"Mon May 6"},
		Fields: []FormField{
			{Label: "Service", Value: "Man", Focused: true},
			{Label: "Client", Value: "Ana"},
		},
		Suggestions: []string{"Manicure"},
		Error:       "Slot taken.",
		Hint:        "ignored when an error is shown",
	}

	out := RenderFormBody(model, FormStyles{})
	for _, want := range []string{"Mon May 6", "SERVICE", "CLIENT", "Manicure", "Slot taken."} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in form body:\n%s", want, out)
		}
	}
	if strings.Contains(out, "ignored") {
		t.Fatalf("hint should be hidden while an error is shown")
	}
}

func TestRenderListBody(t *testing.T) {
	items := []ListItem{
		{Title: "Manicure", Detail: "60m"},
		{Title: "Color", Detail: "90m"},
	}
	out := RenderListBody(items, 1, "none", ListStyles{})
	lines := strings.Split(out, "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	if !strings.Contains(lines[1], "Color     90m") {
		t.Fatalf("expected padded title, got %q", lines[1])
	}

	if got := RenderListBody(nil, 0, "No templates yet.", ListStyles{}); got != "No templates yet." {
		t.Fatalf("unexpected empty body %q", got)
	}
}

func TestRenderFooter(t *testing.T) {
	model := FooterModel{
		InnerW:     40,
		FooterH:    4,
		FullFooter: true,
		StatsLine:  "3 appointments",
		StatusText: "Saved",
		HelpText:   "? help",
		VAlign:     lipgloss.Top,
	}
	out := RenderFooter(model)
	lines := strings.Split(out, "\n")
	if len(lines) != 4 {
		t.Fatalf("expected 4 lines, got %d", len(lines))
	}
	if !strings.HasPrefix(lines[0], "3 appointments") || !strings.HasPrefix(lines[2], "Saved") {
		t.Fatalf("unexpected footer:\n%s", out)
	}

	model.FooterH = 0
	if RenderFooter(model) != "" {
		t.Fatalf("expected empty footer for zero height")
	}
}

func TestRender(t *testing.T) {
	if got := Render(ViewState{}); got != "Loading..." {
		t.Fatalf("unexpected placeholder %q", got)
	}
	state := ViewState{Width: 10, Height: 2, BaseContent: "base", ModalContent: "modal", ShowModal: true}
	if got := Render(state); got != "base" {
		t.Fatalf("expected base without overlay, got %q", got)
	}
}

func TestPlaceBox_WhitespaceBackground(t *testing.T) {
	prevProfile := lipgloss.ColorProfile()
	lipgloss.SetColorProfile(termenv.TrueColor)
	t.Cleanup(func() {
		lipgloss.SetColorProfile(prevProfile)
	})

	out := PlaceBox(5, 2, lipgloss.Top, "x", lipgloss.Color("#112233"))
	bgSeq := "\x1b[48;2;17;34;51m"
	bgIndex := strings.Index(out, bgSeq)
	if bgIndex == -1 {
		t.Fatalf("expected background whitespace in output: %q", out)
	}
	if strings.Index(out, "x") > bgIndex {
		t.Fatalf("expected background after content, got %q", out)
	}
	if lines := strings.Split(out, "\n"); len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
}
