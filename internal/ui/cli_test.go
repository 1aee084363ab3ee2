package ui

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/javiermolinar/glowboard/internal/board"
	"github.com/javiermolinar/glowboard/internal/booking"
	"github.com/javiermolinar/glowboard/internal/config"
	"github.com/javiermolinar/glowboard/internal/db"
)

func newTestStore(t *testing.T) *db.SQLite {
	t.Helper()
	store, err := db.New(filepath.Join(t.TempDir(), "ui.db"))
	if err != nil {
		t.Fatalf("opening store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

// run executes one command line on a fresh app over store, the way a new
// process would.
func run(t *testing.T, store booking.Store, args ...string) (string, error) {
	t.Helper()
	DisableColor()

	cfg := config.Default()
	cfg.Logging.Level = "error"
	app := NewApp(store, cfg)
	defer func() { _ = app.Close() }()

	var buf bytes.Buffer
	app.SetOutput(&buf)
	app.SetArgs(args)
	err := app.Execute()
	return buf.String(), err
}

func mustRun(t *testing.T, store booking.Store, args ...string) string {
	t.Helper()
	out, err := run(t, store, args...)
	if err != nil {
		t.Fatalf("%v failed: %v\n%s", args, err, out)
	}
	return out
}

func TestAdd_Conflict(t *testing.T) {
	store := newTestStore(t)

	out := mustRun(t, store, "add", "Manicure", "--client=Ana", "--date=2024-05-06", "--start=09:00", "--end=10:00", "--price=15")
	if !strings.Contains(out, "Booked Manicure for Ana on 2024-05-06 09:00-10:00 (€15.00)") {
		t.Errorf("unexpected output:\n%s", out)
	}

	out, err := run(t, store, "add", "Pedicure", "--client=Bea", "--date=2024-05-06", "--start=09:30", "--end=10:30", "--price=20")
	if err == nil {
		t.Fatal("expected overlapping booking to fail")
	}
	for _, want := range []string{"Slot taken.", "09:00-10:00 is already booked: Manicure (Ana)", "Next free slot: 2024-05-06 10:00-11:00"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if !errors.Is(err, ErrNotSaved) || !errors.Is(err, board.ErrSlotTaken) {
		t.Errorf("error = %v, want a reported slot conflict", err)
	}
	if n := strings.Count(out, "Slot taken."); n != 1 || strings.Contains(out, "Error:") {
		t.Errorf("refusal should be printed once:\n%s", out)
	}

	mustRun(t, store, "add", "Pedicure", "--client=Bea", "--date=2024-05-06", "--start=10:00", "--end=11:00", "--price=20")

	events, err := store.ListEvents(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(events) != 2 {
		t.Errorf("events = %d, want 2", len(events))
	}
}

func TestAdd_TemplateDefaults(t *testing.T) {
	store := newTestStore(t)

	mustRun(t, store, "template", "add", "Manicure", "--price=15", "--color=#ff0000")
	out := mustRun(t, store, "add", "manicure", "--client=Ana", "--date=2024-05-06", "--start=09:00", "--end=10:00", "--color=#00ff00")
	if !strings.Contains(out, "(€15.00)") {
		t.Errorf("expected template price:\n%s", out)
	}

	events, _ := store.ListEvents(context.Background())
	if len(events) != 1 || events[0].Color != "#ff0000" {
		t.Fatalf("expected template color, got %+v", events)
	}

	out = mustRun(t, store, "template", "list")
	if !strings.Contains(out, "Manicure") || !strings.Contains(out, "€15.00") {
		t.Errorf("template list:\n%s", out)
	}
}

func TestAdd_MissingPrice(t *testing.T) {
	store := newTestStore(t)

	if _, err := run(t, store, "add", "Manicure", "--client=Ana", "--date=2024-05-06", "--start=09:00", "--end=10:00"); err == nil {
		t.Fatal("expected missing price to fail without a template")
	}
}

func TestEdit_KeepsUnsetFields(t *testing.T) {
	store := newTestStore(t)
	mustRun(t, store, "add", "Manicure", "--client=Ana", "--date=2024-05-06", "--start=09:00", "--end=10:00", "--price=15")

	events, _ := store.ListEvents(context.Background())
	id := events[0].ID

	out := mustRun(t, store, "edit", id, "--start=09:30", "--end=10:30")
	if !strings.Contains(out, "Updated Manicure for Ana on 2024-05-06 09:30-10:30") {
		t.Errorf("unexpected output:\n%s", out)
	}

	e, err := store.GetEvent(context.Background(), id)
	if err != nil {
		t.Fatal(err)
	}
	if e.Price != 1500 || e.Client != "Ana" {
		t.Errorf("unset fields changed: %+v", e)
	}
}

func TestDelete(t *testing.T) {
	store := newTestStore(t)
	mustRun(t, store, "add", "Manicure", "--client=Ana", "--date=2024-05-06", "--start=09:00", "--end=10:00", "--price=15")
	events, _ := store.ListEvents(context.Background())

	mustRun(t, store, "delete", events[0].ID)
	if _, err := run(t, store, "delete", events[0].ID); err == nil {
		t.Error("expected deleting a missing appointment to fail")
	}
}

func TestCheck(t *testing.T) {
	store := newTestStore(t)
	mustRun(t, store, "add", "Manicure", "--client=Ana", "--date=2024-05-06", "--start=09:00", "--end=10:00", "--price=15")

	out := mustRun(t, store, "check", "--date=2024-05-06", "--start=10:00", "--end=11:00")
	if !strings.Contains(out, "Free: 2024-05-06 10:00-11:00") {
		t.Errorf("expected free slot:\n%s", out)
	}

	out = mustRun(t, store, "check", "--date=2024-05-06", "--start=09:59", "--end=10:30")
	if !strings.Contains(out, "Taken:") || !strings.Contains(out, "Next free slot: 2024-05-06 10:00-10:31") {
		t.Errorf("expected taken slot:\n%s", out)
	}

	if _, err := run(t, store, "check", "--date=2024-05-06", "--start=9:00", "--end=10:00"); err == nil {
		t.Error("expected malformed time to fail")
	}
}

func TestWeek_Grid(t *testing.T) {
	store := newTestStore(t)
	mustRun(t, store, "add", "Manicure", "--client=Ana", "--date=2024-05-06", "--start=09:00", "--end=11:00", "--price=15")
	mustRun(t, store, "add", "Color", "--client=Bea", "--date=2024-05-07", "--start=20:00", "--end=21:00", "--price=60")

	out := mustRun(t, store, "week", "--date=2024-05-08", "--grid", "--no-color")

	for _, want := range []string{
		"WEEK: Mon May 6 - Sun May 12, 2024",
		"Mon 6",
		"Sun 12",
		"08:00",
		"19:00",
		"Manicure",
		"Ana",
		"Outside the board:",
		"2024-05-07 20:00-21:00 Color (Bea)",
		"Appointments:",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "20:00 │") {
		t.Errorf("closing hour must not be a board row:\n%s", out)
	}
}

func TestWeek_List(t *testing.T) {
	store := newTestStore(t)
	out := mustRun(t, store, "week", "--date=2024-05-08")
	if !strings.Contains(out, "No appointments this week.") {
		t.Errorf("unexpected output:\n%s", out)
	}
}

func TestExportImportJSON(t *testing.T) {
	src := newTestStore(t)
	mustRun(t, src, "template", "add", "Manicure", "--price=15")
	mustRun(t, src, "add", "Manicure", "--client=Ana", "--date=2024-05-06", "--start=09:00", "--end=10:00")

	path := filepath.Join(t.TempDir(), "backup.json")
	mustRun(t, src, "export", "json", "--out="+path)

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Contains(data, []byte("glowSchedule_events")) {
		t.Fatalf("backup missing events key:\n%s", data)
	}

	dst := newTestStore(t)
	mustRun(t, dst, "add", "Pedicure", "--client=Bea", "--date=2024-05-06", "--start=09:30", "--end=10:30", "--price=20")

	out := mustRun(t, dst, "import", "json", path)
	if !strings.Contains(out, "Imported 1 templates") {
		t.Errorf("templates not imported:\n%s", out)
	}
	if !strings.Contains(out, "Imported 0 appointments, skipped 1") {
		t.Errorf("overlapping appointment should be skipped:\n%s", out)
	}
}

func TestExportImportICS(t *testing.T) {
	src := newTestStore(t)
	mustRun(t, src, "add", "Manicure", "--client=Ana", "--date=2024-05-06", "--start=09:00", "--end=10:00", "--price=15")

	path := filepath.Join(t.TempDir(), "week.ics")
	mustRun(t, src, "export", "ics", "--start=2024-05-06", "--end=2024-05-12", "--out="+path)

	dst := newTestStore(t)
	out := mustRun(t, dst, "import", "ics", path)
	if !strings.Contains(out, "Imported 1 appointments, skipped 0") {
		t.Errorf("unexpected output:\n%s", out)
	}

	events, _ := dst.ListEvents(context.Background())
	if len(events) != 1 || events[0].Client != "Ana" || events[0].Start != "09:00" {
		t.Fatalf("imported events = %+v", events)
	}
}

func TestMetrics(t *testing.T) {
	store := newTestStore(t)
	mustRun(t, store, "add", "Manicure", "--client=Ana", "--date=2024-05-06", "--start=09:00", "--end=10:00", "--price=15")

	out := mustRun(t, store, "metrics", "--date=2024-05-06")
	if !strings.Contains(out, `glowboard_week_appointments{weekday="Monday"} 1`) {
		t.Errorf("unexpected metrics:\n%s", out)
	}

	path := filepath.Join(t.TempDir(), "glowboard.prom")
	mustRun(t, store, "metrics", "--date=2024-05-06", "--textfile="+path)
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Contains(data, []byte("glowboard_week_revenue")) {
		t.Errorf("textfile missing revenue:\n%s", data)
	}
}

func TestVersion(t *testing.T) {
	out := mustRun(t, newTestStore(t), "version")
	if !strings.HasPrefix(out, "glowboard dev") {
		t.Errorf("version = %q", out)
	}
}
