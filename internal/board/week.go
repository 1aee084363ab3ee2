package board

import (
	"context"
	"fmt"
	"time"

	"github.com/javiermolinar/glowboard/internal/dateutil"
	"github.com/javiermolinar/glowboard/internal/grid"
	"github.com/javiermolinar/glowboard/internal/summary"
)

// WeekBoard is one rendered week: the grid layout plus its figures.
type WeekBoard struct {
	Layout  *grid.Layout
	Summary *summary.WeekSummary
	Today   time.Time
}

// Monday returns the first day of the week.
func (w *WeekBoard) Monday() time.Time {
	return w.Layout.WeekStart
}

// TodayColumn returns the column of today, or -1 when today is in another week.
func (w *WeekBoard) TodayColumn() int {
	today := dateutil.TruncateToDay(w.Today)
	for col := range grid.Columns {
		if dateutil.SameDay(w.Layout.Day(col), today) {
			return col
		}
	}
	return -1
}

// Week loads the week containing date and places its events on the grid.
// Events that cannot be anchored are logged and left off the board.
func (s *Service) Week(ctx context.Context, date time.Time) (*WeekBoard, error) {
	monday, sunday := dateutil.WeekRange(date)
	events, err := s.store.ListEventsByDateRange(ctx, monday, sunday)
	if err != nil {
		return nil, fmt.Errorf("loading week: %w", err)
	}

	layout := s.mapper.Layout(monday, events)
	for _, sk := range layout.Skipped {
		s.logger.Warn().
			Err(sk.Err).
			Str("event_id", sk.Event.ID).
			Str("date", sk.Event.DateKey()).
			Str("start", sk.Event.Start).
			Msg("event outside calendar range")
	}

	sum := summary.SummarizeWeek(monday, events, summary.WeekSummaryOptions{
		WindowStart: s.scheduler.DayStart(),
		WindowEnd:   s.scheduler.DayEnd(),
	})

	if s.metrics != nil {
		s.metrics.ObserveWeek(monday, sum.Stats, len(layout.Skipped))
	}

	return &WeekBoard{Layout: layout, Summary: sum, Today: s.now()}, nil
}
