package booking

import (
	"context"
	"strings"
	"time"

	"cardioconsult/models"
	"cardioconsult/services/calendar"

	"go.uber.org/zap"
)

// Lookahead bounds the single next-slot search: from now+Offset rounded
// down to the top of the hour, through now+Span.
type Lookahead struct {
	Offset time.Duration
	Span   time.Duration
}

// DefaultLookahead is a deliberately narrow window: 1h to 3h from now.
var DefaultLookahead = Lookahead{Offset: time.Hour, Span: 3 * time.Hour}

// Engine computes bookable slots from calendar free/busy data.
// It holds no mutable state and is safe for concurrent use.
type Engine struct {
	calendar  calendar.Collaborator
	hours     WorkingHours
	slot      time.Duration
	lookahead Lookahead
	timeout   time.Duration
	now       func() time.Time
	logger    *zap.Logger
}

type EngineOption func(*Engine)

func WithSlotDuration(d time.Duration) EngineOption {
	return func(e *Engine) {
		if d > 0 {
			e.slot = d
		}
	}
}

func WithLookahead(l Lookahead) EngineOption {
	return func(e *Engine) { e.lookahead = l }
}

// WithTimeout bounds every calendar round trip made by the engine.
func WithTimeout(d time.Duration) EngineOption {
	return func(e *Engine) { e.timeout = d }
}

func WithClock(now func() time.Time) EngineOption {
	return func(e *Engine) { e.now = now }
}

func WithLogger(l *zap.Logger) EngineOption {
	return func(e *Engine) { e.logger = l }
}

func NewEngine(cal calendar.Collaborator, hours WorkingHours, opts ...EngineOption) *Engine {
	e := &Engine{
		calendar:  cal,
		hours:     hours,
		slot:      models.DefaultSlotDuration,
		lookahead: DefaultLookahead,
		timeout:   10 * time.Second,
		now:       time.Now,
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Engine) Hours() WorkingHours { return e.hours }

func (e *Engine) SlotDuration() time.Duration { return e.slot }

// FindOrganizerSlots lists every free slot inside the working hours of date.
// An empty result is a normal outcome, not an error.
func (e *Engine) FindOrganizerSlots(ctx context.Context, date time.Time, organizerEmail string) ([]models.Slot, error) {
	organizerEmail = strings.TrimSpace(organizerEmail)
	if organizerEmail == "" {
		return nil, NewInvalidWindowError("organizer email is required")
	}
	if date.IsZero() {
		return nil, NewInvalidWindowError("date is required")
	}

	window := e.hours.Window(date)
	busy, err := e.busy(ctx, window, []string{organizerEmail})
	if err != nil {
		return nil, err
	}

	slots := e.scan(window, [][]models.BusyInterval{busy[organizerEmail]}, 0)
	e.logger.Debug("organizer slots computed",
		zap.String("organizer", organizerEmail),
		zap.Time("date", window.Start),
		zap.Int("slots", len(slots)))
	return slots, nil
}

// FindNextAvailableSlot returns the first slot in the look-ahead window that
// is free for every participant, or nil when there is none.
func (e *Engine) FindNextAvailableSlot(ctx context.Context, participantEmails []string) (*models.Slot, error) {
	participants := uniqueEmails(participantEmails)
	if len(participants) == 0 {
		return nil, NewInvalidWindowError("at least one participant is required")
	}

	window := e.lookaheadWindow()
	if !window.Valid() || window.End.Sub(window.Start) < e.slot {
		return nil, nil
	}

	busy, err := e.busy(ctx, window, participants)
	if err != nil {
		return nil, err
	}

	lists := make([][]models.BusyInterval, 0, len(participants))
	for _, p := range participants {
		lists = append(lists, busy[p])
	}

	slots := e.scan(window, lists, 1)
	if len(slots) == 0 {
		e.logger.Info("no free slot in look-ahead window",
			zap.Strings("participants", participants),
			zap.Time("from", window.Start),
			zap.Time("to", window.End))
		return nil, nil
	}
	return &slots[0], nil
}

// IsFree reports whether window overlaps none of the participant's busy intervals.
func (e *Engine) IsFree(ctx context.Context, window models.TimeWindow, email string) (bool, error) {
	if !window.Valid() {
		return false, NewInvalidWindowError("window end must be after start")
	}
	busy, err := e.busy(ctx, window, []string{email})
	if err != nil {
		return false, err
	}
	return isFree(window, busy[email]), nil
}

func (e *Engine) lookaheadWindow() models.TimeWindow {
	loc := e.hours.location()
	now := e.now().In(loc)
	from := now.Add(e.lookahead.Offset)
	start := time.Date(from.Year(), from.Month(), from.Day(), from.Hour(), 0, 0, 0, loc)
	return models.TimeWindow{Start: start, End: now.Add(e.lookahead.Span)}
}

// busy makes the single calendar round trip for a search.
func (e *Engine) busy(ctx context.Context, window models.TimeWindow, ids []string) (map[string][]models.BusyInterval, error) {
	if e.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}

	busy, err := e.calendar.FreeBusy(ctx, window, ids)
	if err != nil {
		e.logger.Error("availability lookup failed",
			zap.Strings("participants", ids),
			zap.Time("from", window.Start),
			zap.Time("to", window.End),
			zap.Error(err))
		return nil, NewUnavailableError("availability lookup failed", err)
	}

	for id, intervals := range busy {
		valid := make([]models.BusyInterval, 0, len(intervals))
		for _, b := range intervals {
			if !b.Start.Before(b.End) {
				e.logger.Warn("ignoring malformed busy interval",
					zap.String("participant", id),
					zap.Time("start", b.Start),
					zap.Time("end", b.End))
				continue
			}
			valid = append(valid, b)
		}
		busy[id] = valid
	}
	return busy, nil
}

// scan walks window in slot-sized steps and keeps slots free in every list.
// limit > 0 stops after that many slots.
func (e *Engine) scan(window models.TimeWindow, lists [][]models.BusyInterval, limit int) []models.Slot {
	slots := []models.Slot{}
	for start := window.Start; !start.Add(e.slot).After(window.End); start = start.Add(e.slot) {
		candidate := models.Slot{Start: start, Duration: e.slot}
		free := true
		for _, busy := range lists {
			if !isFree(candidate.Window(), busy) {
				free = false
				break
			}
		}
		if !free {
			continue
		}
		slots = append(slots, candidate)
		if limit > 0 && len(slots) >= limit {
			break
		}
	}
	return slots
}

func isFree(w models.TimeWindow, busy []models.BusyInterval) bool {
	for _, b := range busy {
		if b.Overlaps(w) {
			return false
		}
	}
	return true
}

func uniqueEmails(emails []string) []string {
	seen := make(map[string]bool, len(emails))
	out := make([]string, 0, len(emails))
	for _, email := range emails {
		email = strings.TrimSpace(email)
		key := strings.ToLower(email)
		if email == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, email)
	}
	return out
}
