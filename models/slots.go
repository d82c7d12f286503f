package models

import "time"

// DefaultSlotDuration is the length of every bookable consultation slot.
const DefaultSlotDuration = 15 * time.Minute

// TimeWindow is a half-open [Start, End) range of wall-clock time.
type TimeWindow struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Valid reports whether the window is non-empty and correctly ordered.
func (w TimeWindow) Valid() bool {
	return !w.Start.IsZero() && !w.End.IsZero() && w.Start.Before(w.End)
}

// Contains reports whether other lies entirely inside w.
func (w TimeWindow) Contains(other TimeWindow) bool {
	return !other.Start.Before(w.Start) && !other.End.After(w.End)
}

// BusyInterval is a period during which a participant cannot be scheduled.
// Intervals returned by the calendar are neither sorted nor merged.
type BusyInterval struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Overlaps uses half-open semantics: touching boundaries do not overlap,
// so back-to-back meetings are allowed.
func (b BusyInterval) Overlaps(w TimeWindow) bool {
	return w.Start.Before(b.End) && b.Start.Before(w.End)
}

// Slot is a fixed-length candidate meeting window.
type Slot struct {
	Start    time.Time     `json:"start"`
	Duration time.Duration `json:"-"`
}

func (s Slot) End() time.Time {
	return s.Start.Add(s.Duration)
}

// Window returns the slot as a TimeWindow.
func (s Slot) Window() TimeWindow {
	return TimeWindow{Start: s.Start, End: s.End()}
}

// SlotResponse is the JSON shape of a slot returned over HTTP.
type SlotResponse struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

func NewSlotResponses(slots []Slot) []SlotResponse {
	out := make([]SlotResponse, 0, len(slots))
	for _, s := range slots {
		out = append(out, SlotResponse{Start: s.Start, End: s.End()})
	}
	return out
}
