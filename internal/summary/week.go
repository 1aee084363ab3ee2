// Package summary provides shared week summary utilities.
package summary

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/javiermolinar/glowboard/internal/booking"
	"github.com/javiermolinar/glowboard/internal/dateutil"
)

// WeekSummary holds aggregated week data.
type WeekSummary struct {
	Start    time.Time
	End      time.Time
	Events   []*booking.Event
	Stats    booking.WeekStats
	Services []ServiceStat // ordered by revenue, highest first
}

// ServiceStat aggregates the appointments of one service.
type ServiceStat struct {
	Service      string
	Appointments int
	Minutes      int
	Revenue      booking.Money
}

// WeekSummaryOptions configures week summary statistics.
type WeekSummaryOptions struct {
	// When both are set, booked minutes only count time inside [WindowStart, WindowEnd).
	WindowStart string
	WindowEnd   string
}

// BuildWeekSummaryOptions configures the store-backed summary builder.
type BuildWeekSummaryOptions struct {
	WeekStart   time.Time
	WindowStart string
	WindowEnd   string
}

// SummarizeWeek builds week summary data from events and a reference date.
func SummarizeWeek(weekStart time.Time, events []*booking.Event, opts WeekSummaryOptions) *WeekSummary {
	start, end := dateutil.WeekRange(weekStart)
	week := booking.NewWeekFromEvents(start, events)
	stats := week.Stats()
	if opts.WindowStart != "" && opts.WindowEnd != "" {
		stats = week.StatsWithin(opts.WindowStart, opts.WindowEnd)
	}

	all := week.AllEvents()
	return &WeekSummary{
		Start:    start,
		End:      end,
		Events:   all,
		Stats:    stats,
		Services: byService(all),
	}
}

// BuildWeekSummary loads events for the requested week and summarizes them.
func BuildWeekSummary(ctx context.Context, store booking.Store, opts BuildWeekSummaryOptions) (*WeekSummary, error) {
	weekStart := opts.WeekStart
	if weekStart.IsZero() {
		weekStart = time.Now()
	}

	start, end := dateutil.WeekRange(weekStart)
	events, err := store.ListEventsByDateRange(ctx, start, end)
	if err != nil {
		return nil, fmt.Errorf("fetching events: %w", err)
	}

	return SummarizeWeek(start, events, WeekSummaryOptions{
		WindowStart: opts.WindowStart,
		WindowEnd:   opts.WindowEnd,
	}), nil
}

// byService groups events by service name, case-insensitively.
func byService(events []*booking.Event) []ServiceStat {
	index := make(map[string]int)
	var stats []ServiceStat
	for _, e := range events {
		key := strings.ToLower(strings.TrimSpace(e.Service))
		i, ok := index[key]
		if !ok {
			i = len(stats)
			index[key] = i
			stats = append(stats, ServiceStat{Service: strings.TrimSpace(e.Service)})
		}
		stats[i].Appointments++
		stats[i].Minutes += max(0, e.Duration())
		stats[i].Revenue += e.Price
	}

	slices.SortStableFunc(stats, func(a, b ServiceStat) int {
		return cmp.Compare(b.Revenue, a.Revenue)
	})
	return stats
}
