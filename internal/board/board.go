// Package board handles form submissions for the weekly board: it validates
// input, resolves template defaults, gates writes with the conflict checker
// and lays weeks out on the grid.
package board

import (
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/javiermolinar/glowboard/internal/booking"
	"github.com/javiermolinar/glowboard/internal/grid"
	"github.com/javiermolinar/glowboard/internal/metrics"
	"github.com/javiermolinar/glowboard/internal/scheduler"
)

// Submission errors.
var (
	ErrMissingFields = errors.New("service, client, date, start and end are required")
	ErrMissingName   = errors.New("template name is required")
	ErrInvalidPrice  = booking.ErrInvalidPrice
	ErrSlotTaken     = errors.New("time slot is already booked")
)

// ConflictError reports which event holds the requested slot and, when one
// exists, the next free slot of the same length on that day.
type ConflictError struct {
	Conflict   *booking.Event
	Suggestion *scheduler.Slot
}

func (e *ConflictError) Error() string {
	msg := fmt.Sprintf("%s: %s-%s is taken by %s (%s)",
		ErrSlotTaken, e.Conflict.Start, e.Conflict.End, e.Conflict.Service, e.Conflict.Client)
	if e.Suggestion != nil {
		msg += fmt.Sprintf("; next free slot %s-%s", e.Suggestion.Start, e.Suggestion.End)
	}
	return msg
}

func (e *ConflictError) Unwrap() error {
	return ErrSlotTaken
}

// Service coordinates the store, the conflict checker and the grid mapper.
type Service struct {
	store        booking.Store
	mapper       *grid.Mapper
	scheduler    *scheduler.Scheduler
	metrics      *metrics.Metrics
	logger       *zerolog.Logger
	defaultColor string
	now          func() time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithWindow sets the board opening hours.
func WithWindow(firstHour, lastHour int) Option {
	return func(s *Service) {
		s.mapper = grid.New(firstHour, lastHour)
		s.scheduler = scheduler.FromHours(firstHour, lastHour)
	}
}

// WithDefaultColor sets the color used when neither the form nor a template has one.
func WithDefaultColor(color string) Option {
	return func(s *Service) {
		if color != "" {
			s.defaultColor = color
		}
	}
}

// WithLogger sets the logger used for board diagnostics.
func WithLogger(l *zerolog.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithMetrics records submissions and week figures into m.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// New creates a board Service over store.
func New(store booking.Store, opts ...Option) *Service {
	nop := zerolog.Nop()
	s := &Service{
		store:        store,
		mapper:       grid.Default(),
		scheduler:    scheduler.FromHours(grid.DefaultFirstHour, grid.DefaultLastHour),
		logger:       &nop,
		defaultColor: booking.DefaultColor,
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Store returns the underlying store.
func (s *Service) Store() booking.Store {
	return s.store
}

// Mapper returns the grid mapper for the configured window.
func (s *Service) Mapper() *grid.Mapper {
	return s.mapper
}

// Scheduler returns the slot finder for the configured window.
func (s *Service) Scheduler() *scheduler.Scheduler {
	return s.scheduler
}

// DefaultColor returns the fallback block color.
func (s *Service) DefaultColor() string {
	return s.defaultColor
}
