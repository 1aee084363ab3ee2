package booking

import (
	"errors"
	"testing"
	"time"
)

func TestEvent_DateKeyAndDuration(t *testing.T) {
	e := &Event{
		Date:  time.Date(2024, 5, 6, 0, 0, 0, 0, time.Local),
		Start: "09:00",
		End:   "12:30",
	}

	if got := e.DateKey(); got != "2024-05-06" {
		t.Errorf("DateKey = %q", got)
	}
	if got := e.Duration(); got != 210 {
		t.Errorf("Duration = %d, want 210", got)
	}
}

func TestEvent_OverlapsWith(t *testing.T) {
	monday := time.Date(2024, 5, 6, 0, 0, 0, 0, time.Local)
	base := &Event{Date: monday, Start: "09:00", End: "10:00"}

	tests := []struct {
		name  string
		other *Event
		want  bool
	}{
		{"nil", nil, false},
		{"same slot", &Event{Date: monday, Start: "09:00", End: "10:00"}, true},
		{"touching", &Event{Date: monday, Start: "10:00", End: "11:00"}, false},
		{"other day", &Event{Date: monday.AddDate(0, 0, 1), Start: "09:00", End: "10:00"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := base.OverlapsWith(tt.other); got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestEvent_StartEndAt(t *testing.T) {
	e := &Event{
		Date:  time.Date(2024, 5, 6, 0, 0, 0, 0, time.Local),
		Start: "09:15",
		End:   "10:45",
	}

	if want := time.Date(2024, 5, 6, 9, 15, 0, 0, time.Local); !e.StartAt().Equal(want) {
		t.Errorf("StartAt = %v", e.StartAt())
	}
	if want := time.Date(2024, 5, 6, 10, 45, 0, 0, time.Local); !e.EndAt().Equal(want) {
		t.Errorf("EndAt = %v", e.EndAt())
	}
	if !e.IsPast(time.Date(2024, 5, 6, 11, 0, 0, 0, time.Local)) {
		t.Error("expected event to be past")
	}
	if e.IsPast(time.Date(2024, 5, 6, 10, 0, 0, 0, time.Local)) {
		t.Error("expected event in progress not to be past")
	}
}

func TestTemplate_Matches(t *testing.T) {
	tpl := &Template{Name: "Manicure"}
	for _, name := range []string{"Manicure", "manicure", "  MANICURE "} {
		if !tpl.Matches(name) {
			t.Errorf("expected %q to match", name)
		}
	}
	if tpl.Matches("Pedicure") {
		t.Error("expected Pedicure not to match")
	}
}

func TestValidateTimeFormat(t *testing.T) {
	for _, valid := range []string{"00:00", "09:30", "23:59"} {
		if err := ValidateTimeFormat(valid); err != nil {
			t.Errorf("ValidateTimeFormat(%q) = %v", valid, err)
		}
	}
	for _, invalid := range []string{"", "9:30", "24:00", "12:60", "ab:cd", "12-30"} {
		if err := ValidateTimeFormat(invalid); !errors.Is(err, ErrInvalidTimeFormat) {
			t.Errorf("ValidateTimeFormat(%q) = %v, want %v", invalid, err, ErrInvalidTimeFormat)
		}
	}
}

func TestValidateColor(t *testing.T) {
	for _, valid := range []string{"#f8c8dc", "#FFFFFF", "#000000"} {
		if err := ValidateColor(valid); err != nil {
			t.Errorf("ValidateColor(%q) = %v", valid, err)
		}
	}
	for _, invalid := range []string{"", "f8c8dc", "#fff", "#gggggg", "#f8c8dc0"} {
		if err := ValidateColor(invalid); !errors.Is(err, ErrInvalidColor) {
			t.Errorf("ValidateColor(%q) = %v, want %v", invalid, err, ErrInvalidColor)
		}
	}
}

func TestEventPatch_Apply(t *testing.T) {
	e := &Event{Service: "Manicure", Client: "Ana", Start: "09:00", End: "10:00", Price: 1500}
	client := "Bea"
	end := "10:30"
	price := Money(2000)

	EventPatch{Client: &client, End: &end, Price: &price}.Apply(e)

	if e.Client != "Bea" || e.End != "10:30" || e.Price != 2000 {
		t.Errorf("patch not applied: %+v", e)
	}
	if e.Service != "Manicure" || e.Start != "09:00" {
		t.Errorf("untouched fields changed: %+v", e)
	}
}

func TestTemplatePatch_Apply(t *testing.T) {
	tpl := &Template{Name: "Manicure", Color: "#f8c8dc", Price: 1500}
	color := "#aabbcc"

	TemplatePatch{Color: &color}.Apply(tpl)

	if tpl.Color != "#aabbcc" || tpl.Name != "Manicure" || tpl.Price != 1500 {
		t.Errorf("unexpected template: %+v", tpl)
	}
}
