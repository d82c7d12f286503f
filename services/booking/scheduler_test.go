package booking

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"cardioconsult/models"
)

func testPeriod() models.TimeWindow {
	return models.TimeWindow{Start: at(10, 30), End: at(10, 45)}
}

func TestCreateMeeting_BuildsEvent(t *testing.T) {
	cal := &fakeCalendar{}
	loc := time.FixedZone("IST", 5*3600+1800)
	sched := NewScheduler(cal, loc, WithRequestIDs(func() string { return "req-1" }))

	link, err := sched.CreateMeeting(context.Background(), "pat@example.com", doctorEmail, testPeriod(), "Dr. Rao")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if link != "https://calendar.example.com/event?eid=req-1" {
		t.Errorf("link = %q", link)
	}
	if len(cal.created) != 1 {
		t.Fatalf("expected 1 event, got %d", len(cal.created))
	}

	spec := cal.created[0]
	if spec.Title != MeetingTitle {
		t.Errorf("title = %q", spec.Title)
	}
	if !strings.Contains(spec.Description, "pat@example.com") || !strings.Contains(spec.Description, "Dr. Rao") {
		t.Errorf("description = %q", spec.Description)
	}
	if !spec.Start.Equal(at(10, 30)) || !spec.End.Equal(at(10, 45)) {
		t.Errorf("period = %v-%v", spec.Start, spec.End)
	}
	if spec.Start.Location() != loc {
		t.Errorf("start not stamped with scheduler location: %v", spec.Start.Location())
	}
	if spec.TimeZone != "IST" {
		t.Errorf("time zone = %q, want IST", spec.TimeZone)
	}
	if len(spec.Attendees) != 2 {
		t.Fatalf("attendees = %+v", spec.Attendees)
	}
	if spec.Attendees[0].Email != "pat@example.com" || spec.Attendees[0].Organizer {
		t.Errorf("requester attendee = %+v", spec.Attendees[0])
	}
	if spec.Attendees[1].Email != doctorEmail || !spec.Attendees[1].Organizer {
		t.Errorf("organizer attendee = %+v", spec.Attendees[1])
	}
	if spec.ConferenceRequestID != "req-1" || spec.ConferenceType != "hangoutsMeet" {
		t.Errorf("conference = %q/%q", spec.ConferenceRequestID, spec.ConferenceType)
	}
}

// Booking is not idempotent: the same arguments create two events.
func TestCreateMeeting_NotIdempotent(t *testing.T) {
	cal := &fakeCalendar{}
	sched := NewScheduler(cal, time.UTC)

	first, err := sched.CreateMeeting(context.Background(), "pat@example.com", doctorEmail, testPeriod(), "")
	if err != nil {
		t.Fatalf("first call: %v", err)
	}
	second, err := sched.CreateMeeting(context.Background(), "pat@example.com", doctorEmail, testPeriod(), "")
	if err != nil {
		t.Fatalf("second call: %v", err)
	}

	if first == second {
		t.Errorf("expected two distinct links, got %q twice", first)
	}
	if len(cal.created) != 2 {
		t.Errorf("expected 2 events, got %d", len(cal.created))
	}
	if cal.created[0].ConferenceRequestID == cal.created[1].ConferenceRequestID {
		t.Error("conference request ids must be fresh per call")
	}
}

func TestCreateMeeting_CollaboratorFailure(t *testing.T) {
	cal := &fakeCalendar{createErr: errCalendarDown}
	_, err := NewScheduler(cal, time.UTC).CreateMeeting(context.Background(), "pat@example.com", doctorEmail, testPeriod(), "")
	if !errors.Is(err, ErrCollaboratorUnavailable) {
		t.Fatalf("expected ErrCollaboratorUnavailable, got %v", err)
	}
}

func TestCreateMeeting_InvalidInput(t *testing.T) {
	cal := &fakeCalendar{}
	sched := NewScheduler(cal, time.UTC)

	tests := []struct {
		name      string
		requester string
		organizer string
		period    models.TimeWindow
	}{
		{"missing requester", "", doctorEmail, testPeriod()},
		{"missing organizer", "pat@example.com", " ", testPeriod()},
		{"reversed period", "pat@example.com", doctorEmail, models.TimeWindow{Start: at(11, 0), End: at(10, 0)}},
		{"empty period", "pat@example.com", doctorEmail, models.TimeWindow{Start: at(11, 0), End: at(11, 0)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := sched.CreateMeeting(context.Background(), tt.requester, tt.organizer, tt.period, "")
			if !errors.Is(err, ErrInvalidWindow) {
				t.Errorf("expected ErrInvalidWindow, got %v", err)
			}
		})
	}
	if len(cal.created) != 0 {
		t.Errorf("no event should be created, got %d", len(cal.created))
	}
}

func TestZoneName(t *testing.T) {
	if got := zoneName(time.UTC); got != "UTC" {
		t.Errorf("zoneName(UTC) = %q", got)
	}
	if got := zoneName(time.Local); got != "" {
		t.Errorf("zoneName(Local) = %q, want empty", got)
	}
}
