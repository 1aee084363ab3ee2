package board

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/javiermolinar/glowboard/internal/booking"
	"github.com/javiermolinar/glowboard/internal/scheduler"
)

// SubmitEvent validates the form and creates or updates an event.
//
// Required fields are checked first, then the requested slot against every
// stored event except the one being edited, and only then is the color
// resolved: a template whose name matches the service wins over the form
// color, which wins over the default.
func (s *Service) SubmitEvent(ctx context.Context, session EventSession, form EventForm) (*booking.Event, error) {
	in, err := form.parse()
	if err != nil {
		return nil, err
	}

	tmpl, err := s.store.FindTemplateByName(ctx, in.service)
	if err != nil {
		return nil, fmt.Errorf("looking up template: %w", err)
	}

	price := in.price
	if price == nil {
		if tmpl == nil {
			return nil, ErrMissingFields
		}
		price = &tmpl.Price
	}

	events, err := s.store.ListEvents(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading events: %w", err)
	}

	if conflict := scheduler.FindConflict(events, in.date, in.start, in.end, session.EventID); conflict != nil {
		return nil, s.conflictError(events, conflict, in, session.EventID)
	}

	color := s.defaultColor
	switch {
	case tmpl != nil:
		color = tmpl.Color
	case in.color != "":
		color = in.color
	}

	if session.IsNew() {
		e := &booking.Event{
			Service: in.service,
			Color:   color,
			Client:  in.client,
			Price:   *price,
			Date:    in.date,
			Start:   in.start,
			End:     in.end,
		}
		if err := s.store.CreateEvent(ctx, e); err != nil {
			return nil, fmt.Errorf("creating event: %w", err)
		}
		s.logger.Debug().Str("event_id", e.ID).Str("date", e.DateKey()).Str("start", e.Start).Msg("event created")
		s.countSubmission("event", "create")
		return e, nil
	}

	updated, err := s.store.UpdateEvent(ctx, session.EventID, booking.EventPatch{
		Service: &in.service,
		Color:   &color,
		Client:  &in.client,
		Price:   price,
		Date:    &in.date,
		Start:   &in.start,
		End:     &in.end,
	})
	if err != nil {
		return nil, fmt.Errorf("updating event: %w", err)
	}
	s.logger.Debug().Str("event_id", updated.ID).Str("date", updated.DateKey()).Str("start", updated.Start).Msg("event updated")
	s.countSubmission("event", "update")
	return updated, nil
}

func (s *Service) conflictError(events []*booking.Event, conflict *booking.Event, in *eventInput, excludeID string) *ConflictError {
	if s.metrics != nil {
		s.metrics.IncConflict()
	}
	s.logger.Info().
		Str("date", in.date.Format("2006-01-02")).
		Str("start", in.start).
		Str("end", in.end).
		Str("conflict_id", conflict.ID).
		Msg("slot rejected")

	cerr := &ConflictError{Conflict: conflict}
	dur := booking.TimeToMinutes(in.end) - booking.TimeToMinutes(in.start)
	if slot, ok := s.scheduler.NextFreeSlot(events, in.date, dur, in.start, excludeID); ok {
		cerr.Suggestion = &slot
	}
	return cerr
}

// IsTimeSlotFree reports whether [start, end) on date overlaps no stored event
// other than excludeID.
func (s *Service) IsTimeSlotFree(ctx context.Context, date time.Time, start, end, excludeID string) (bool, error) {
	events, err := s.store.ListEventsByDateRange(ctx, date, date)
	if err != nil {
		return false, fmt.Errorf("loading events: %w", err)
	}
	return scheduler.IsTimeSlotFree(events, date, start, end, excludeID), nil
}

// FreeSlots returns the open gaps inside the board window on date.
func (s *Service) FreeSlots(ctx context.Context, date time.Time) ([]scheduler.Slot, error) {
	events, err := s.store.ListEventsByDateRange(ctx, date, date)
	if err != nil {
		return nil, fmt.Errorf("loading events: %w", err)
	}
	return s.scheduler.FreeSlots(events, date), nil
}

// Event returns a stored event.
func (s *Service) Event(ctx context.Context, id string) (*booking.Event, error) {
	return s.store.GetEvent(ctx, id)
}

// DeleteEvent removes an event. It returns false when nothing was removed.
func (s *Service) DeleteEvent(ctx context.Context, id string) (bool, error) {
	ok, err := s.store.DeleteEvent(ctx, id)
	if err != nil {
		return false, fmt.Errorf("deleting event: %w", err)
	}
	if ok {
		s.countSubmission("event", "delete")
	}
	return ok, nil
}

// ImportResult reports how many events an import stored and which it refused.
type ImportResult struct {
	Imported int
	Skipped  []ImportSkip
}

// ImportSkip is an incoming event that was not stored.
type ImportSkip struct {
	Event *booking.Event
	Err   error
}

type batchCreator interface {
	CreateEvents(ctx context.Context, events []*booking.Event) error
}

// ImportEvents stores incoming events that are well formed and free against
// both the stored events and the ones accepted earlier in the same batch.
// IDs already present in the store are skipped.
func (s *Service) ImportEvents(ctx context.Context, incoming []*booking.Event) (*ImportResult, error) {
	existing, err := s.store.ListEvents(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading events: %w", err)
	}

	known := make(map[string]bool, len(existing))
	for _, e := range existing {
		known[e.ID] = true
	}

	res := &ImportResult{}
	var accepted []*booking.Event
	for _, e := range incoming {
		if e == nil {
			continue
		}
		if err := s.checkImported(e); err != nil {
			res.Skipped = append(res.Skipped, ImportSkip{Event: e, Err: err})
			continue
		}
		if e.ID != "" && known[e.ID] {
			res.Skipped = append(res.Skipped, ImportSkip{Event: e, Err: fmt.Errorf("event %s already exists", e.ID)})
			continue
		}
		if conflict := scheduler.FindConflict(existing, e.Date, e.Start, e.End, ""); conflict != nil {
			res.Skipped = append(res.Skipped, ImportSkip{Event: e, Err: &ConflictError{Conflict: conflict}})
			continue
		}
		if e.Color == "" {
			e.Color = s.defaultColor
		}
		existing = append(existing, e)
		accepted = append(accepted, e)
		if e.ID != "" {
			known[e.ID] = true
		}
	}

	if err := s.createAll(ctx, accepted); err != nil {
		return nil, err
	}
	res.Imported = len(accepted)

	for _, skip := range res.Skipped {
		s.logger.Warn().Err(skip.Err).Str("service", skip.Event.Service).Str("start", skip.Event.Start).Msg("import skipped event")
	}
	if res.Imported > 0 {
		s.countSubmission("event", "import")
	}
	return res, nil
}

func (s *Service) checkImported(e *booking.Event) error {
	if e.Service == "" || e.Client == "" || e.Date.IsZero() || e.Start == "" || e.End == "" {
		return ErrMissingFields
	}
	for _, t := range []string{e.Start, e.End} {
		if err := booking.ValidateTimeFormat(t); err != nil {
			return fmt.Errorf("%w, got %q", err, t)
		}
	}
	if e.Color != "" {
		if err := booking.ValidateColor(e.Color); err != nil {
			return fmt.Errorf("%w, got %q", err, e.Color)
		}
	}
	if e.Price < 0 {
		return ErrInvalidPrice
	}
	return nil
}

func (s *Service) createAll(ctx context.Context, events []*booking.Event) error {
	if len(events) == 0 {
		return nil
	}
	if bc, ok := s.store.(batchCreator); ok {
		if err := bc.CreateEvents(ctx, events); err != nil {
			return fmt.Errorf("importing events: %w", err)
		}
		return nil
	}
	for _, e := range events {
		if err := s.store.CreateEvent(ctx, e); err != nil {
			return fmt.Errorf("importing events: %w", err)
		}
	}
	return nil
}

func (s *Service) countSubmission(kind, action string) {
	if s.metrics != nil {
		s.metrics.IncSubmission(kind, action)
	}
}

// IsConflict reports whether err was caused by an occupied slot.
func IsConflict(err error) bool {
	return errors.Is(err, ErrSlotTaken)
}
