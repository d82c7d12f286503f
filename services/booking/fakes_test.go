package booking

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	doctorRepo "cardioconsult/database/repository/doctor"
	"cardioconsult/models"
)

type fakeCalendar struct {
	mu        sync.Mutex
	busy      map[string][]models.BusyInterval
	busyErr   error
	createErr error
	block     bool

	freeBusyCalls int
	lastWindow    models.TimeWindow
	lastIDs       []string
	created       []models.EventSpec
}

func (f *fakeCalendar) FreeBusy(ctx context.Context, window models.TimeWindow, ids []string) (map[string][]models.BusyInterval, error) {
	f.mu.Lock()
	f.freeBusyCalls++
	f.lastWindow = window
	f.lastIDs = append([]string(nil), ids...)
	f.mu.Unlock()

	if f.block {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	if f.busyErr != nil {
		return nil, f.busyErr
	}
	out := make(map[string][]models.BusyInterval, len(ids))
	for _, id := range ids {
		out[id] = append([]models.BusyInterval(nil), f.busy[id]...)
	}
	return out, nil
}

func (f *fakeCalendar) CreateEvent(ctx context.Context, spec models.EventSpec) (models.MeetingRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return models.MeetingRecord{}, f.createErr
	}
	f.created = append(f.created, spec)
	return models.MeetingRecord{Link: "https://calendar.example.com/event?eid=" + spec.ConferenceRequestID}, nil
}

type fakeDoctors struct {
	doctors []models.Doctor
	err     error
}

func (f *fakeDoctors) GetByID(ctx context.Context, id string) (*models.Doctor, error) {
	if f.err != nil {
		return nil, f.err
	}
	for i := range f.doctors {
		if f.doctors[i].ID == id {
			return &f.doctors[i], nil
		}
	}
	return nil, doctorRepo.ErrDoctorNotFound
}

func (f *fakeDoctors) GetByEmail(ctx context.Context, email string) (*models.Doctor, error) {
	if f.err != nil {
		return nil, f.err
	}
	for i := range f.doctors {
		if strings.EqualFold(f.doctors[i].Email, email) {
			return &f.doctors[i], nil
		}
	}
	return nil, doctorRepo.ErrDoctorNotFound
}

func (f *fakeDoctors) Upsert(ctx context.Context, doctor *models.Doctor) error {
	f.doctors = append(f.doctors, *doctor)
	return nil
}

type fakeLocker struct {
	err      error
	acquired []string
	released int
}

func (f *fakeLocker) Acquire(ctx context.Context, organizer string) (func(), error) {
	if f.err != nil {
		return nil, f.err
	}
	f.acquired = append(f.acquired, organizer)
	return func() { f.released++ }, nil
}

type sentMessage struct {
	chatID string
	text   string
}

type fakeSender struct {
	err  error
	sent []sentMessage
}

func (f *fakeSender) SendMessage(ctx context.Context, chatID, text string) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, sentMessage{chatID: chatID, text: text})
	return nil
}

var errCalendarDown = errors.New("connection refused")

// at returns 2025-09-15 hh:mm UTC.
func at(hh, mm int) time.Time {
	return time.Date(2025, 9, 15, hh, mm, 0, 0, time.UTC)
}

func busy(fromH, fromM, toH, toM int) models.BusyInterval {
	return models.BusyInterval{Start: at(fromH, fromM), End: at(toH, toM)}
}
