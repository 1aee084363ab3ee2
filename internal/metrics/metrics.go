// Package metrics exposes board figures as Prometheus metrics.
package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/javiermolinar/glowboard/internal/booking"
)

const namespace = "glowboard"

// Metrics holds the board collectors on a private registry so a textfile
// export contains only glowboard series.
type Metrics struct {
	registry *prometheus.Registry

	appointments  *prometheus.GaugeVec
	bookedMinutes *prometheus.GaugeVec
	revenue       *prometheus.GaugeVec
	weekStart     prometheus.Gauge
	skipped       prometheus.Gauge
	conflicts     prometheus.Counter
	submissions   *prometheus.CounterVec
}

// New creates and registers the board collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		appointments: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "week_appointments",
				Help:      "Appointments on the displayed week by weekday.",
			},
			[]string{"weekday"},
		),
		bookedMinutes: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "week_booked_minutes",
				Help:      "Booked minutes on the displayed week by weekday.",
			},
			[]string{"weekday"},
		),
		revenue: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "week_revenue",
				Help:      "Revenue on the displayed week by weekday.",
			},
			[]string{"weekday"},
		),
		weekStart: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "week_start_timestamp_seconds",
			Help:      "Monday of the displayed week as a unix timestamp.",
		}),
		skipped: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "week_skipped_events",
			Help:      "Events of the displayed week that could not be placed on the board.",
		}),
		conflicts: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "conflicts_total",
			Help:      "Submissions rejected because the slot was taken.",
		}),
		submissions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "submissions_total",
				Help:      "Accepted form submissions by kind and action.",
			},
			[]string{"kind", "action"},
		),
	}

	m.registry.MustRegister(
		m.appointments,
		m.bookedMinutes,
		m.revenue,
		m.weekStart,
		m.skipped,
		m.conflicts,
		m.submissions,
	)
	return m
}

// ObserveWeek records the figures of one displayed week.
func (m *Metrics) ObserveWeek(monday time.Time, stats booking.WeekStats, skipped int) {
	m.weekStart.Set(float64(monday.Unix()))
	m.skipped.Set(float64(skipped))
	for i, ds := range stats.DayStats {
		day := booking.WeekdayName(i)
		m.appointments.WithLabelValues(day).Set(float64(ds.Appointments))
		m.bookedMinutes.WithLabelValues(day).Set(float64(ds.BookedMinutes))
		m.revenue.WithLabelValues(day).Set(ds.Revenue.Float())
	}
}

// IncConflict counts a submission rejected by the conflict check.
func (m *Metrics) IncConflict() {
	m.conflicts.Inc()
}

// IncSubmission counts an accepted submission, e.g. ("event", "create").
func (m *Metrics) IncSubmission(kind, action string) {
	m.submissions.WithLabelValues(kind, action).Inc()
}

// Gatherer returns the registry backing these metrics.
func (m *Metrics) Gatherer() prometheus.Gatherer {
	return m.registry
}

// WriteTextfile writes all metrics in the text exposition format, suitable for
// the node_exporter textfile collector. The file is replaced atomically.
func (m *Metrics) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("writing metrics textfile: %w", err)
	}
	return nil
}
