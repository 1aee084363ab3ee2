package grid

import (
	"cmp"
	"slices"
	"time"

	"github.com/javiermolinar/glowboard/internal/booking"
	"github.com/javiermolinar/glowboard/internal/dateutil"
)

// Block is an appointment anchored on the board.
type Block struct {
	Event *booking.Event
	Placement
}

// Covers reports whether the block is drawn over the cell (col, row).
func (b Block) Covers(col, row int) bool {
	return b.Column == col && row >= b.Row && row < b.Row+b.Span()
}

// Skipped is an appointment of the displayed week that could not be placed.
type Skipped struct {
	Event *booking.Event
	Err   error
}

// Layout is the board for one week.
type Layout struct {
	WeekStart time.Time // Monday
	Blocks    []Block   // ordered by column then row
	Skipped   []Skipped
}

// Layout places every event of the week starting on the Monday of weekStart.
// Events from other weeks are ignored; events of the week that cannot be
// anchored end up in Skipped.
func (m *Mapper) Layout(weekStart time.Time, events []*booking.Event) *Layout {
	monday := dateutil.StartOfWeek(weekStart)
	sunday := monday.AddDate(0, 0, 6)
	l := &Layout{WeekStart: monday}

	for _, e := range events {
		if e == nil {
			continue
		}
		day := dateutil.TruncateToDay(e.Date)
		if day.Before(monday) || day.After(sunday) {
			continue
		}
		p, err := m.Place(e.Date, e.Start, e.End)
		if err != nil {
			l.Skipped = append(l.Skipped, Skipped{Event: e, Err: err})
			continue
		}
		l.Blocks = append(l.Blocks, Block{Event: e, Placement: p})
	}

	slices.SortStableFunc(l.Blocks, func(a, b Block) int {
		if c := cmp.Compare(a.Column, b.Column); c != 0 {
			return c
		}
		return cmp.Compare(booking.TimeToMinutes(a.Event.Start), booking.TimeToMinutes(b.Event.Start))
	})
	return l
}

// Day returns the date shown in column col.
func (l *Layout) Day(col int) time.Time {
	return l.WeekStart.AddDate(0, 0, col)
}

// At returns the block anchored at (col, row), or nil.
func (l *Layout) At(col, row int) *Block {
	for i := range l.Blocks {
		if l.Blocks[i].Column == col && l.Blocks[i].Row == row {
			return &l.Blocks[i]
		}
	}
	return nil
}

// Covering returns the first block drawn over (col, row), or nil.
func (l *Layout) Covering(col, row int) *Block {
	for i := range l.Blocks {
		if l.Blocks[i].Covers(col, row) {
			return &l.Blocks[i]
		}
	}
	return nil
}

// Column returns the blocks of one day column.
func (l *Layout) Column(col int) []Block {
	var result []Block
	for _, b := range l.Blocks {
		if b.Column == col {
			result = append(result, b)
		}
	}
	return result
}
