package commands

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/javiermolinar/glowboard/internal/board"
	"github.com/javiermolinar/glowboard/internal/db"
)

func newTestBoard(t *testing.T) (*board.Service, *db.SQLite) {
	t.Helper()
	store, err := db.New(filepath.Join(t.TempDir(), "commands.db"))
	if err != nil {
		t.Fatalf("opening store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return board.New(store), store
}

func eventForm(start, end string) board.EventForm {
	return board.EventForm{
		Service: "Manicure",
		Client:  "Ana",
		Price:   "15",
		Date:    "2024-05-06",
		Start:   start,
		End:     end,
	}
}

func TestSubmitEventThenLoadWeek(t *testing.T) {
	svc, _ := newTestBoard(t)

	msg := SubmitEvent(svc, board.EventSession{}, eventForm("09:00", "10:00"))()
	saved, ok := msg.(EventSavedMsg)
	if !ok {
		t.Fatalf("msg type = %T, want EventSavedMsg", msg)
	}
	if !saved.Created {
		t.Error("new appointment should be reported as created")
	}

	msg = LoadWeek(svc, time.Date(2024, 5, 8, 0, 0, 0, 0, time.Local))()
	loaded, ok := msg.(WeekLoadedMsg)
	if !ok {
		t.Fatalf("msg type = %T, want WeekLoadedMsg", msg)
	}
	blocks := loaded.Board.Layout.Blocks
	if len(blocks) != 1 {
		t.Fatalf("blocks = %d, want 1", len(blocks))
	}
	if blocks[0].Column != 0 || blocks[0].Row != 1 {
		t.Errorf("block at col %d row %d, want col 0 row 1", blocks[0].Column, blocks[0].Row)
	}
}

func TestSubmitEventConflict(t *testing.T) {
	svc, _ := newTestBoard(t)
	_ = SubmitEvent(svc, board.EventSession{}, eventForm("09:00", "10:00"))()

	msg := SubmitEvent(svc, board.EventSession{}, eventForm("09:30", "10:30"))()
	failed, ok := msg.(SubmitFailedMsg)
	if !ok {
		t.Fatalf("msg type = %T, want SubmitFailedMsg", msg)
	}
	if !errors.Is(failed.Err, board.ErrSlotTaken) {
		t.Errorf("err = %v, want ErrSlotTaken", failed.Err)
	}
}

func TestDeleteEvent(t *testing.T) {
	svc, _ := newTestBoard(t)
	saved := SubmitEvent(svc, board.EventSession{}, eventForm("09:00", "10:00"))().(EventSavedMsg)

	msg := DeleteEvent(svc, saved.Event.ID)()
	if deleted, ok := msg.(EventDeletedMsg); !ok || deleted.ID != saved.Event.ID {
		t.Fatalf("msg = %#v, want EventDeletedMsg", msg)
	}

	msg = DeleteEvent(svc, saved.Event.ID)()
	if _, ok := msg.(ErrMsg); !ok {
		t.Fatalf("msg type = %T, want ErrMsg for a missing appointment", msg)
	}
}

func TestTemplatesAndAutofill(t *testing.T) {
	svc, _ := newTestBoard(t)

	msg := SubmitTemplate(svc, board.TemplateSession{}, board.TemplateForm{Name: "Manicure", Color: "#ff0000", Price: "15"})()
	saved, ok := msg.(TemplateSavedMsg)
	if !ok {
		t.Fatalf("msg type = %T, want TemplateSavedMsg", msg)
	}

	msg = LoadTemplates(svc)()
	loaded, ok := msg.(TemplatesLoadedMsg)
	if !ok || len(loaded.Templates) != 1 {
		t.Fatalf("msg = %#v, want one template", msg)
	}

	msg = Autofill(svc, "manicure")()
	fill, ok := msg.(AutofillMsg)
	if !ok {
		t.Fatalf("msg type = %T, want AutofillMsg", msg)
	}
	if fill.Color != "#ff0000" || fill.Price != "15.00" {
		t.Errorf("autofill = %+v", fill)
	}

	if msg := Autofill(svc, "Pedicure")(); msg != nil {
		t.Errorf("unknown service produced %#v", msg)
	}

	msg = DeleteTemplate(svc, saved.Template.ID)()
	if _, ok := msg.(TemplateDeletedMsg); !ok {
		t.Fatalf("msg type = %T, want TemplateDeletedMsg", msg)
	}
}

func TestLoadWeekError(t *testing.T) {
	svc, store := newTestBoard(t)
	_ = store.Close()

	msg := LoadWeek(svc, time.Now())()
	if _, ok := msg.(ErrMsg); !ok {
		t.Fatalf("msg type = %T, want ErrMsg", msg)
	}
}
