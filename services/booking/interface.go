package booking

import (
	"context"
	"time"

	doctorRepo "cardioconsult/database/repository/doctor"
	"cardioconsult/models"
	"cardioconsult/services/notification"
)

// MeetingService is what the HTTP layer and CLI call.
type MeetingService interface {
	ListAvailableSlots(ctx context.Context, date time.Time, doctorEmail string) ([]models.Slot, error)
	NextAvailableSlot(ctx context.Context, requesterEmail, doctorEmail string) (*models.Slot, error)
	BookMeeting(ctx context.Context, req models.MeetingRequest) (*models.MeetingResponse, error)
}

// DefaultMeetingService implements MeetingService.
type DefaultMeetingService struct {
	Doctors         doctorRepo.DoctorRepository
	Engine          *Engine
	Scheduler       *Scheduler
	Locker          OrganizerLocker     // nil disables locking
	Notifier        notification.Sender // nil disables doctor notifications
	DefaultDoctorID string
	// Recheck re-reads the organizer's calendar under the lock before booking.
	Recheck bool
}
