package booking

import (
	"context"
	"fmt"
	"strings"
	"time"

	"cardioconsult/models"
	"cardioconsult/services/calendar"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// MeetingTitle is the summary of every consultation event.
const MeetingTitle = "Cardiology consult"

// Scheduler turns a chosen period into a calendar event with a Meet link.
// It does not re-check availability; callers pick a free slot first.
type Scheduler struct {
	calendar     calendar.Collaborator
	location     *time.Location
	timeout      time.Duration
	newRequestID func() string
	logger       *zap.Logger
}

type SchedulerOption func(*Scheduler)

func WithSchedulerTimeout(d time.Duration) SchedulerOption {
	return func(s *Scheduler) { s.timeout = d }
}

func WithSchedulerLogger(l *zap.Logger) SchedulerOption {
	return func(s *Scheduler) { s.logger = l }
}

// WithRequestIDs overrides the conference request id generator.
func WithRequestIDs(gen func() string) SchedulerOption {
	return func(s *Scheduler) { s.newRequestID = gen }
}

func NewScheduler(cal calendar.Collaborator, loc *time.Location, opts ...SchedulerOption) *Scheduler {
	if loc == nil {
		loc = time.Local
	}
	s := &Scheduler{
		calendar:     cal,
		location:     loc,
		timeout:      10 * time.Second,
		newRequestID: uuid.NewString,
		logger:       zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreateMeeting books period between requester and organizer and returns the
// event's shareable link. Every call creates a new event: the conference
// request id is fresh each time, so repeated calls are not deduplicated.
func (s *Scheduler) CreateMeeting(ctx context.Context, requesterEmail, organizerEmail string, period models.TimeWindow, label string) (string, error) {
	requesterEmail = strings.TrimSpace(requesterEmail)
	organizerEmail = strings.TrimSpace(organizerEmail)
	if requesterEmail == "" || organizerEmail == "" {
		return "", NewInvalidWindowError("requester and organizer emails are required")
	}
	if !period.Valid() {
		return "", NewInvalidWindowError("meeting end must be after start")
	}

	spec := s.eventSpec(requesterEmail, organizerEmail, period, label)

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	rec, err := s.calendar.CreateEvent(ctx, spec)
	if err != nil {
		s.logger.Error("meeting creation failed",
			zap.String("requester", requesterEmail),
			zap.String("organizer", organizerEmail),
			zap.Time("start", period.Start),
			zap.Error(err))
		return "", NewUnavailableError("booking failed", err)
	}

	s.logger.Info("meeting created",
		zap.String("requester", requesterEmail),
		zap.String("organizer", organizerEmail),
		zap.Time("start", spec.Start),
		zap.String("conferenceRequestId", spec.ConferenceRequestID))
	return rec.Link, nil
}

func (s *Scheduler) eventSpec(requesterEmail, organizerEmail string, period models.TimeWindow, label string) models.EventSpec {
	if label == "" {
		label = "doctor"
	}
	return models.EventSpec{
		Title:       MeetingTitle,
		Description: fmt.Sprintf("consult with %s for %s via CardioConsult", label, requesterEmail),
		Start:       period.Start.In(s.location),
		End:         period.End.In(s.location),
		TimeZone:    zoneName(s.location),
		Attendees: []models.Attendee{
			{Email: requesterEmail},
			{Email: organizerEmail, Organizer: true},
		},
		ConferenceRequestID: s.newRequestID(),
		ConferenceType:      calendar.ConferenceTypeMeet,
	}
}

// zoneName returns an IANA name, or "" when the zone has none ("Local").
func zoneName(loc *time.Location) string {
	if name := loc.String(); name != "Local" {
		return name
	}
	return ""
}
