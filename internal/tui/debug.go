package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
)

// The helpers below trace interaction at debug level. `glowboard --debug`
// routes them to a file.

func logKeyPress(l *zerolog.Logger, msg tea.KeyMsg, mode Mode) {
	l.Debug().
		Str("event", "key_press").
		Str("key", msg.String()).
		Str("mode", modeString(mode)).
		Msg("key")
}

func logModeChange(l *zerolog.Logger, from, to Mode, reason string) {
	if from == to {
		return
	}
	l.Debug().
		Str("event", "mode_change").
		Str("from", modeString(from)).
		Str("to", modeString(to)).
		Str("reason", reason).
		Msg("mode")
}

func logCursorMove(l *zerolog.Logger, pos Position, reason string) {
	l.Debug().
		Str("event", "cursor_move").
		Int("day", pos.Day).
		Int("row", pos.Row).
		Str("reason", reason).
		Msg("cursor")
}

func logError(l *zerolog.Logger, context string, err error) {
	l.Error().
		Err(err).
		Str("context", context).
		Msg("tui error")
}

// modeString returns a string representation of a Mode.
func modeString(m Mode) string {
	switch m {
	case ModeNormal:
		return "Normal"
	case ModeModal:
		return "Modal"
	default:
		return fmt.Sprintf("Unknown(%d)", m)
	}
}
