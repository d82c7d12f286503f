package booking

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"cardioconsult/models"
)

type serviceFixture struct {
	cal     *fakeCalendar
	doctors *fakeDoctors
	locker  *fakeLocker
	sender  *fakeSender
	svc     *DefaultMeetingService
}

func newServiceFixture() *serviceFixture {
	f := &serviceFixture{
		cal: &fakeCalendar{busy: map[string][]models.BusyInterval{}},
		doctors: &fakeDoctors{doctors: []models.Doctor{
			{ID: "1", Name: "Dr. Rao", Email: doctorEmail, ChatID: "42"},
			{ID: "2", Name: "Dr. Iyer", Email: "iyer@example.com"},
		}},
		locker: &fakeLocker{},
		sender: &fakeSender{},
	}
	f.svc = &DefaultMeetingService{
		Doctors:         f.doctors,
		Engine:          NewEngine(f.cal, DefaultWorkingHours(time.UTC)),
		Scheduler:       NewScheduler(f.cal, time.UTC),
		Locker:          f.locker,
		Notifier:        f.sender,
		DefaultDoctorID: "1",
		Recheck:         true,
	}
	return f
}

func TestBookMeeting_Success(t *testing.T) {
	f := newServiceFixture()

	resp, err := f.svc.BookMeeting(context.Background(), models.MeetingRequest{
		RequesterEmail: "pat@example.com",
		DesiredStart:   at(10, 30),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasPrefix(resp.Link, "https://") {
		t.Errorf("link = %q", resp.Link)
	}
	if !resp.Start.Equal(at(10, 30)) || !resp.End.Equal(at(10, 45)) {
		t.Errorf("period = %v-%v", resp.Start, resp.End)
	}

	if len(f.locker.acquired) != 1 || f.locker.acquired[0] != doctorEmail {
		t.Errorf("lock acquired for %v", f.locker.acquired)
	}
	if f.locker.released != 1 {
		t.Errorf("lock released %d times, want 1", f.locker.released)
	}
	if f.cal.freeBusyCalls != 1 {
		t.Errorf("expected one recheck query, got %d", f.cal.freeBusyCalls)
	}
	if len(f.cal.created) != 1 || f.cal.created[0].Attendees[1].Email != doctorEmail {
		t.Fatalf("unexpected events: %+v", f.cal.created)
	}
	if len(f.sender.sent) != 1 || f.sender.sent[0].chatID != "42" {
		t.Fatalf("expected doctor notification to chat 42, got %+v", f.sender.sent)
	}
	if !strings.Contains(f.sender.sent[0].text, resp.Link) {
		t.Errorf("notification should carry the link: %q", f.sender.sent[0].text)
	}
}

func TestBookMeeting_ExplicitDoctor(t *testing.T) {
	f := newServiceFixture()

	_, err := f.svc.BookMeeting(context.Background(), models.MeetingRequest{
		RequesterEmail:    "pat@example.com",
		CounterpartyEmail: "IYER@example.com",
		DesiredStart:      at(11, 0),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := f.cal.created[0].Attendees[1].Email; got != "iyer@example.com" {
		t.Errorf("organizer = %q", got)
	}
	// Dr. Iyer has no chat id configured.
	if len(f.sender.sent) != 0 {
		t.Errorf("expected no notification, got %+v", f.sender.sent)
	}
}

func TestBookMeeting_InvalidWindow(t *testing.T) {
	tests := []struct {
		name string
		req  models.MeetingRequest
	}{
		{"missing requester", models.MeetingRequest{DesiredStart: at(10, 30)}},
		{"missing start", models.MeetingRequest{RequesterEmail: "pat@example.com"}},
		{"before opening", models.MeetingRequest{RequesterEmail: "pat@example.com", DesiredStart: at(9, 45)}},
		{"runs past closing", models.MeetingRequest{RequesterEmail: "pat@example.com", DesiredStart: at(17, 20)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newServiceFixture()
			_, err := f.svc.BookMeeting(context.Background(), tt.req)
			if !errors.Is(err, ErrInvalidWindow) {
				t.Fatalf("expected ErrInvalidWindow, got %v", err)
			}
			if f.cal.freeBusyCalls != 0 || len(f.cal.created) != 0 {
				t.Error("calendar must not be called for an invalid request")
			}
		})
	}
}

func TestBookMeeting_LastSlotOfDay(t *testing.T) {
	f := newServiceFixture()
	if _, err := f.svc.BookMeeting(context.Background(), models.MeetingRequest{
		RequesterEmail: "pat@example.com",
		DesiredStart:   at(17, 15),
	}); err != nil {
		t.Fatalf("17:15 should be bookable: %v", err)
	}
}

func TestBookMeeting_RecheckConflict(t *testing.T) {
	f := newServiceFixture()
	f.cal.busy[doctorEmail] = []models.BusyInterval{busy(10, 30, 11, 0)}

	_, err := f.svc.BookMeeting(context.Background(), models.MeetingRequest{
		RequesterEmail: "pat@example.com",
		DesiredStart:   at(10, 30),
	})
	if !errors.Is(err, ErrBookingConflict) {
		t.Fatalf("expected ErrBookingConflict, got %v", err)
	}
	if len(f.cal.created) != 0 {
		t.Error("no event should be created on conflict")
	}
	if f.locker.released != 1 {
		t.Error("lock must be released on conflict")
	}
}

func TestBookMeeting_RecheckDisabled(t *testing.T) {
	f := newServiceFixture()
	f.svc.Recheck = false
	f.cal.busy[doctorEmail] = []models.BusyInterval{busy(10, 30, 11, 0)}

	if _, err := f.svc.BookMeeting(context.Background(), models.MeetingRequest{
		RequesterEmail: "pat@example.com",
		DesiredStart:   at(10, 30),
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f.cal.freeBusyCalls != 0 {
		t.Errorf("expected no free/busy query, got %d", f.cal.freeBusyCalls)
	}
}

func TestBookMeeting_LockBusy(t *testing.T) {
	f := newServiceFixture()
	f.locker.err = ErrLockBusy

	_, err := f.svc.BookMeeting(context.Background(), models.MeetingRequest{
		RequesterEmail: "pat@example.com",
		DesiredStart:   at(10, 30),
	})
	if !errors.Is(err, ErrBookingConflict) {
		t.Fatalf("expected ErrBookingConflict, got %v", err)
	}
}

func TestBookMeeting_CollaboratorWriteFails(t *testing.T) {
	f := newServiceFixture()
	f.cal.createErr = errCalendarDown

	_, err := f.svc.BookMeeting(context.Background(), models.MeetingRequest{
		RequesterEmail: "pat@example.com",
		DesiredStart:   at(10, 30),
	})
	if !errors.Is(err, ErrCollaboratorUnavailable) {
		t.Fatalf("expected ErrCollaboratorUnavailable, got %v", err)
	}
	if len(f.sender.sent) != 0 {
		t.Error("no notification should be sent when booking fails")
	}
}

func TestBookMeeting_NotificationFailureIsNotFatal(t *testing.T) {
	f := newServiceFixture()
	f.sender.err = errors.New("queue down")

	if _, err := f.svc.BookMeeting(context.Background(), models.MeetingRequest{
		RequesterEmail: "pat@example.com",
		DesiredStart:   at(10, 30),
	}); err != nil {
		t.Fatalf("notification failure must not fail the booking: %v", err)
	}
}

func TestBookMeeting_DoctorNotFound(t *testing.T) {
	f := newServiceFixture()

	_, err := f.svc.BookMeeting(context.Background(), models.MeetingRequest{
		RequesterEmail:    "pat@example.com",
		CounterpartyEmail: "nobody@example.com",
		DesiredStart:      at(10, 30),
	})
	if !errors.Is(err, ErrDoctorNotFound) {
		t.Fatalf("expected ErrDoctorNotFound, got %v", err)
	}
}

func TestListAvailableSlots_DefaultDoctor(t *testing.T) {
	f := newServiceFixture()
	f.cal.busy[doctorEmail] = []models.BusyInterval{busy(13, 0, 14, 0)}

	slots, err := f.svc.ListAvailableSlots(context.Background(), at(0, 0), "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(slots) != 26 {
		t.Errorf("expected 26 slots, got %d", len(slots))
	}
	if len(f.cal.lastIDs) != 1 || f.cal.lastIDs[0] != doctorEmail {
		t.Errorf("queried %v, want default doctor", f.cal.lastIDs)
	}
}

func TestNextAvailableSlot_IncludesRequester(t *testing.T) {
	f := newServiceFixture()
	f.svc.Engine = NewEngine(f.cal, DefaultWorkingHours(time.UTC), WithClock(func() time.Time { return at(9, 0) }))
	f.cal.busy["pat@example.com"] = []models.BusyInterval{busy(10, 0, 10, 15)}

	slot, err := f.svc.NextAvailableSlot(context.Background(), "pat@example.com", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if slot == nil || !slot.Start.Equal(at(10, 15)) {
		t.Fatalf("slot = %v, want 10:15", slot)
	}
	if len(f.cal.lastIDs) != 2 {
		t.Errorf("expected doctor and requester in one query, got %v", f.cal.lastIDs)
	}
}
