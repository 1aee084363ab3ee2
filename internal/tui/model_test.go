package tui

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/glowboard/internal/board"
	"github.com/javiermolinar/glowboard/internal/config"
	"github.com/javiermolinar/glowboard/internal/db"
)

// wednesday is the fixed "now" of the tests: Wed 2024-05-08 10:30.
var wednesday = time.Date(2024, 5, 8, 10, 30, 0, 0, time.Local)

func fixedClock() time.Time { return wednesday }

func newTestModel(t *testing.T) (Model, *board.Service) {
	t.Helper()
	store, err := db.New(filepath.Join(t.TempDir(), "tui.db"))
	if err != nil {
		t.Fatalf("opening store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })

	cfg := config.Default()
	svc := board.New(store,
		board.WithWindow(cfg.Board.FirstHour, cfg.Board.LastHour),
		board.WithDefaultColor(cfg.Board.DefaultColor),
		board.WithClock(fixedClock),
	)
	return *New(svc, cfg, WithClock(fixedClock)), svc
}

// key builds a key message for a named key or a single rune.
func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(t *testing.T, m Model, k string) (Model, tea.Cmd) {
	t.Helper()
	updated, cmd := m.Update(key(k))
	model, ok := updated.(Model)
	if !ok {
		t.Fatalf("Update returned %T, want Model", updated)
	}
	return model, cmd
}

func send(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	updated, _ := m.Update(msg)
	return updated.(Model)
}

func TestNew_CursorStartsOnCurrentHour(t *testing.T) {
	m, _ := newTestModel(t)

	if want := time.Date(2024, 5, 6, 0, 0, 0, 0, time.Local); !m.weekStart.Equal(want) {
		t.Fatalf("weekStart = %v, want %v", m.weekStart, want)
	}
	if m.cursor != (Position{Day: 2, Row: 2}) {
		t.Fatalf("cursor = %+v, want Wednesday 10:00", m.cursor)
	}
}

func TestNew_CursorClampedToBoard(t *testing.T) {
	late := func() time.Time { return time.Date(2024, 5, 8, 22, 0, 0, 0, time.Local) }
	m := New(nil, config.Default(), WithClock(late))

	if m.cursor.Row != m.mapper.Rows()-1 {
		t.Fatalf("cursor row = %d, want last row %d", m.cursor.Row, m.mapper.Rows()-1)
	}
}

func TestNew_UnknownThemeFallsBack(t *testing.T) {
	cfg := config.Default()
	cfg.UI.Theme = "does-not-exist"

	m := New(nil, cfg)
	if m.theme == nil || m.styles == nil {
		t.Fatalf("expected fallback theme and styles")
	}
}

func TestInit_WaitsForInitialization(t *testing.T) {
	m, _ := newTestModel(t)
	if m.Init() == nil {
		t.Fatalf("expected Init to load the week")
	}

	m.initState = InitState{NeedsInit: true}
	if m.Init() != nil {
		t.Fatalf("expected no load while initialization is pending")
	}
}

func TestInitModal_CreatesConfigAndDatabase(t *testing.T) {
	dir := t.TempDir()
	cfg := config.Default()
	cfg.Storage.DBPath = filepath.Join(dir, "data", "glowboard.db")
	state := InitState{
		NeedsInit:     true,
		ConfigMissing: true,
		DBMissing:     true,
		ConfigPath:    filepath.Join(dir, "config.toml"),
		DBPath:        cfg.Storage.DBPath,
	}

	m := *New(nil, cfg, WithInitState(state), WithClock(fixedClock))
	if m.modalType != ModalInit {
		t.Fatalf("modal = %v, want init modal", m.modalType)
	}

	m, cmd := press(t, m, "enter")
	if m.store != nil {
		t.Cleanup(func() { _ = m.store.Close() })
	}
	if m.initError != "" {
		t.Fatalf("unexpected init error %q", m.initError)
	}
	if m.board == nil || cmd == nil {
		t.Fatalf("expected board service and a load command after init")
	}
	if m.mode != ModeNormal {
		t.Fatalf("mode = %v, want normal", m.mode)
	}
	for _, path := range []string{state.ConfigPath, state.DBPath} {
		if _, err := os.Stat(path); err != nil {
			t.Fatalf("expected %s to exist: %v", path, err)
		}
	}
}

func TestInitModal_EscQuits(t *testing.T) {
	m := *New(nil, config.Default(), WithInitState(InitState{NeedsInit: true}))

	_, cmd := press(t, m, "esc")
	if cmd == nil {
		t.Fatalf("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("expected tea.QuitMsg")
	}
}

func TestDetectInitState_MissingDatabase(t *testing.T) {
	cfg := config.Default()
	cfg.Storage.DBPath = filepath.Join(t.TempDir(), "missing.db")

	state, err := DetectInitState(cfg)
	if err != nil {
		t.Fatalf("DetectInitState: %v", err)
	}
	if !state.DBMissing || !state.NeedsInit {
		t.Fatalf("state = %+v, want missing database", state)
	}
	if state.DBPath != cfg.Storage.DBPath {
		t.Fatalf("DBPath = %q, want %q", state.DBPath, cfg.Storage.DBPath)
	}
}
