// Package tui provides the terminal user interface for glowboard.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/javiermolinar/glowboard/internal/board"
	"github.com/javiermolinar/glowboard/internal/booking"
	"github.com/javiermolinar/glowboard/internal/config"
	"github.com/javiermolinar/glowboard/internal/dateutil"
	"github.com/javiermolinar/glowboard/internal/grid"
	"github.com/javiermolinar/glowboard/internal/logging"
	"github.com/javiermolinar/glowboard/internal/tui/commands"
	"github.com/javiermolinar/glowboard/internal/tui/theme"
)

// Mode represents the current interaction mode.
type Mode int

const (
	ModeNormal Mode = iota
	ModeModal
)

// ModalType identifies the type of modal.
type ModalType int

const (
	ModalNone      ModalType = iota
	ModalEventForm           // New or existing appointment
	ModalConfirmDelete
	ModalTemplates
	ModalTemplateForm
	ModalWeekSummary
	ModalInit
)

// Position represents a cursor position on the board.
type Position struct {
	Day int // 0=Monday, 6=Sunday
	Row int // 0 = first opening hour
}

// BoardFactory builds the board service over a store.
type BoardFactory func(booking.Store) *board.Service

// Options configures Run.
type Options struct {
	Logger   *zerolog.Logger
	NewBoard BoardFactory
}

// Model is the main TUI model.
type Model struct {
	// Dependencies
	board    *board.Service
	newBoard BoardFactory
	store    booking.Store // opened by the TUI itself, closed on exit
	config   *config.Config
	logger   *zerolog.Logger

	// Theme and styles
	theme  *theme.Theme
	styles *Styles
	mapper *grid.Mapper

	// State
	weekStart time.Time // Monday of the displayed week
	cursor    Position
	mode      Mode
	loading   bool

	week           *board.WeekBoard
	templates      []*booking.Template
	templateCursor int

	// Modal state
	modalType    ModalType
	eventForm    eventForm
	templateForm templateForm
	confirmEvent *booking.Event
	initState    InitState
	initError    string

	overlay OverlayModel

	// Terminal dimensions
	width    int
	height   int
	colWidth int

	// Messages
	statusMsg  string
	statusTime time.Time

	err error
	now func() time.Time
}

// ModelOption configures optional model behavior.
type ModelOption func(*Model)

// WithInitState sets the startup initialization state.
func WithInitState(state InitState) ModelOption {
	return func(m *Model) {
		m.initState = state
		if state.NeedsInit {
			m.mode = ModeModal
			m.modalType = ModalInit
		}
	}
}

// WithClock overrides the clock, for tests.
func WithClock(now func() time.Time) ModelOption {
	return func(m *Model) {
		m.now = now
		m.weekStart = dateutil.StartOfWeek(now())
		m.cursor = m.todayPosition()
	}
}

// WithLogger sets the logger used for key and state tracing.
func WithLogger(l *zerolog.Logger) ModelOption {
	return func(m *Model) {
		if l != nil {
			m.logger = l
		}
	}
}

// WithBoardFactory sets how the board service is built once storage exists.
func WithBoardFactory(f BoardFactory) ModelOption {
	return func(m *Model) {
		if f != nil {
			m.newBoard = f
		}
	}
}

// New creates a new TUI model.
func New(svc *board.Service, cfg *config.Config, opts ...ModelOption) *Model {
	t, err := theme.Load(cfg.UI.Theme)
	if err != nil {
		t, _ = theme.Load(theme.DefaultName)
	}

	m := &Model{
		board:    svc,
		config:   cfg,
		logger:   logging.Nop(),
		theme:    t,
		styles:   NewStyles(t),
		mapper:   grid.New(cfg.Board.FirstHour, cfg.Board.LastHour),
		mode:     ModeNormal,
		overlay:  NewOverlayModel(),
		colWidth: defaultColWidth,
		now:      time.Now,
	}
	m.newBoard = m.defaultBoardFactory
	m.weekStart = dateutil.StartOfWeek(m.now())
	m.cursor = m.todayPosition()

	for _, opt := range opts {
		opt(m)
	}

	return m
}

func (m *Model) defaultBoardFactory(store booking.Store) *board.Service {
	return board.New(store,
		board.WithWindow(m.config.Board.FirstHour, m.config.Board.LastHour),
		board.WithDefaultColor(m.config.Board.DefaultColor),
		board.WithLogger(m.logger),
	)
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	if m.initState.NeedsInit || m.board == nil {
		return nil
	}
	return m.reload()
}

func (m Model) reload() tea.Cmd {
	return tea.Batch(
		commands.LoadWeek(m.board, m.weekStart),
		commands.LoadTemplates(m.board),
	)
}

// Run starts the TUI. When svc is nil the database from cfg is opened, after
// asking to create it if it does not exist yet.
func Run(svc *board.Service, cfg *config.Config, opts Options) error {
	logger := opts.Logger
	if logger == nil {
		logger = logging.Nop()
	}

	var (
		initState InitState
		owned     booking.Store
	)
	model := New(nil, cfg, WithLogger(logger), WithBoardFactory(opts.NewBoard))

	if svc == nil {
		state, err := DetectInitState(cfg)
		if err != nil {
			return err
		}
		initState = state
		if !state.NeedsInit {
			store, err := openStore(state.DBPath)
			if err != nil {
				return err
			}
			owned = store
			svc = model.newBoard(store)
		}
	}
	model.board = svc
	model.store = owned
	WithInitState(initState)(model)

	logModeChange(logger, ModeNormal, model.mode, "start")
	p := tea.NewProgram(model, tea.WithAltScreen())
	finalModel, err := p.Run()

	store := owned
	switch fm := finalModel.(type) {
	case Model:
		store = fm.store
	case *Model:
		store = fm.store
	}
	if store != nil {
		if cerr := store.Close(); cerr != nil {
			logger.Warn().Err(cerr).Msg("closing database")
		}
	}
	return err
}

// todayPosition returns the cursor position of the current hour today,
// clamped to the board.
func (m *Model) todayPosition() Position {
	now := m.now()
	row := now.Hour() - m.mapper.FirstHour()
	row = max(0, min(row, m.mapper.Rows()-1))
	return Position{Day: dateutil.WeekdayIndex(now), Row: row}
}
