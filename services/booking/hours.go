package booking

import (
	"fmt"
	"time"

	"cardioconsult/models"
)

// WorkingHours is the daily window in which slots are offered.
// Start and End are minutes from midnight (600 for 10:00).
type WorkingHours struct {
	Start    int
	End      int
	Location *time.Location
}

// DefaultWorkingHours is 10:00-17:30.
func DefaultWorkingHours(loc *time.Location) WorkingHours {
	return WorkingHours{Start: 10 * 60, End: 17*60 + 30, Location: loc}
}

// ParseWorkingHours parses "HH:MM" bounds.
func ParseWorkingHours(start, end string, loc *time.Location) (WorkingHours, error) {
	s, err := parseClock(start)
	if err != nil {
		return WorkingHours{}, fmt.Errorf("working hours start: %w", err)
	}
	e, err := parseClock(end)
	if err != nil {
		return WorkingHours{}, fmt.Errorf("working hours end: %w", err)
	}
	if e <= s {
		return WorkingHours{}, fmt.Errorf("working hours end %s must be after start %s", end, start)
	}
	return WorkingHours{Start: s, End: e, Location: loc}, nil
}

func parseClock(v string) (int, error) {
	t, err := time.Parse("15:04", v)
	if err != nil {
		return 0, err
	}
	return t.Hour()*60 + t.Minute(), nil
}

func (h WorkingHours) location() *time.Location {
	if h.Location == nil {
		return time.Local
	}
	return h.Location
}

// Window returns the working window on the calendar day of date.
// Only the year, month and day of date are used.
func (h WorkingHours) Window(date time.Time) models.TimeWindow {
	y, m, d := date.Date()
	loc := h.location()
	return models.TimeWindow{
		Start: time.Date(y, m, d, h.Start/60, h.Start%60, 0, 0, loc),
		End:   time.Date(y, m, d, h.End/60, h.End%60, 0, 0, loc),
	}
}
