// Package grid maps appointments onto the weekly board: one column per day
// (Monday first) and one row per opening hour.
package grid

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/javiermolinar/glowboard/internal/booking"
	"github.com/javiermolinar/glowboard/internal/dateutil"
)

// Default opening window of the board.
const (
	DefaultFirstHour = 8
	DefaultLastHour  = 20
)

// Columns is the number of day columns on the board.
const Columns = 7

// ErrOutOfRange is returned when an appointment cannot be anchored on the board.
var ErrOutOfRange = errors.New("outside the board")

// Placement is where an appointment is anchored and how tall it is drawn.
type Placement struct {
	Column int     // 0=Monday .. 6=Sunday
	Row    int     // 0 = first opening hour
	Height float64 // duration in rows (hours)
}

// HeightPercent returns the block height as a percentage of one row, e.g. 3.5h -> 350.
func (p Placement) HeightPercent() float64 {
	return p.Height * 100
}

// Span returns the number of whole rows the block touches, at least 1.
func (p Placement) Span() int {
	return max(1, int(math.Ceil(p.Height)))
}

// Mapper converts dates and clock times to board coordinates.
type Mapper struct {
	firstHour int
	lastHour  int
}

// New creates a Mapper for a board opening at firstHour and closing at lastHour.
func New(firstHour, lastHour int) *Mapper {
	return &Mapper{firstHour: firstHour, lastHour: lastHour}
}

// Default creates a Mapper for the 08:00-20:00 board.
func Default() *Mapper {
	return New(DefaultFirstHour, DefaultLastHour)
}

// FirstHour returns the hour shown in row 0.
func (m *Mapper) FirstHour() int {
	return m.firstHour
}

// LastHour returns the closing hour. No appointment may start at or after it.
func (m *Mapper) LastHour() int {
	return m.lastHour
}

// Rows returns the number of rows an appointment can be anchored in.
func (m *Mapper) Rows() int {
	return m.lastHour - m.firstHour
}

// HourLabels returns the hour labels down the side of the board, including
// the closing hour, e.g. "08:00" .. "20:00".
func (m *Mapper) HourLabels() []string {
	labels := make([]string, 0, m.Rows()+1)
	for h := m.firstHour; h <= m.lastHour; h++ {
		labels = append(labels, fmt.Sprintf("%02d:00", h))
	}
	return labels
}

// RowClock returns the "HH:00" time at the top of row.
func (m *Mapper) RowClock(row int) string {
	return fmt.Sprintf("%02d:00", m.firstHour+row)
}

// RowEnd returns the clock time at which row ends. A row closing at midnight
// ends at "23:59", the last time of the day.
func (m *Mapper) RowEnd(row int) string {
	if m.firstHour+row+1 >= 24 {
		return "23:59"
	}
	return m.RowClock(row + 1)
}

// Column returns the Monday-first column for date.
func Column(date time.Time) int {
	return dateutil.WeekdayIndex(date)
}

// Height returns the duration between start and end in hours.
func Height(start, end string) float64 {
	startH, startM := booking.ClockParts(start)
	endH, endM := booking.ClockParts(end)
	return float64(endH-startH) + float64(endM-startM)/60
}

// Row returns the row for a start time, or ErrOutOfRange when the start hour
// is outside [firstHour, lastHour).
func (m *Mapper) Row(start string) (int, error) {
	hour, _ := booking.ClockParts(start)
	if hour < m.firstHour || hour >= m.lastHour {
		return 0, fmt.Errorf("%w: start %s is outside %02d:00-%02d:00", ErrOutOfRange, start, m.firstHour, m.lastHour)
	}
	return hour - m.firstHour, nil
}

// Place computes the anchor cell and height of an appointment.
func (m *Mapper) Place(date time.Time, start, end string) (Placement, error) {
	col := Column(date)
	if col < 0 || col >= Columns {
		return Placement{}, fmt.Errorf("%w: column %d", ErrOutOfRange, col)
	}
	row, err := m.Row(start)
	if err != nil {
		return Placement{}, err
	}
	return Placement{Column: col, Row: row, Height: Height(start, end)}, nil
}
