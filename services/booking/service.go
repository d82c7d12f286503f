package booking

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	doctorRepo "cardioconsult/database/repository/doctor"
	"cardioconsult/models"
	"cardioconsult/utils"

	"go.uber.org/zap"
)

func (s *DefaultMeetingService) ListAvailableSlots(ctx context.Context, date time.Time, doctorEmail string) ([]models.Slot, error) {
	doctor, err := s.resolveDoctor(ctx, doctorEmail)
	if err != nil {
		return nil, err
	}
	return s.Engine.FindOrganizerSlots(ctx, date, doctor.Email)
}

func (s *DefaultMeetingService) NextAvailableSlot(ctx context.Context, requesterEmail, doctorEmail string) (*models.Slot, error) {
	doctor, err := s.resolveDoctor(ctx, doctorEmail)
	if err != nil {
		return nil, err
	}
	return s.Engine.FindNextAvailableSlot(ctx, []string{doctor.Email, requesterEmail})
}

// BookMeeting books req.DesiredStart with the doctor and returns the event link.
func (s *DefaultMeetingService) BookMeeting(ctx context.Context, req models.MeetingRequest) (*models.MeetingResponse, error) {
	logger := utils.GetLogger()

	requester := strings.TrimSpace(req.RequesterEmail)
	if requester == "" {
		return nil, NewInvalidWindowError("requester email is required")
	}
	if req.DesiredStart.IsZero() {
		return nil, NewInvalidWindowError("start time is required")
	}

	hours := s.Engine.Hours()
	slot := models.Slot{
		Start:    req.DesiredStart.In(hours.location()),
		Duration: s.Engine.SlotDuration(),
	}
	if !hours.Window(slot.Start).Contains(slot.Window()) {
		return nil, NewInvalidWindowError(fmt.Sprintf("slot %s falls outside working hours", slot.Start.Format(time.RFC3339)))
	}

	doctor, err := s.resolveDoctor(ctx, req.CounterpartyEmail)
	if err != nil {
		return nil, err
	}

	if s.Locker != nil {
		release, err := s.Locker.Acquire(ctx, doctor.Email)
		if err != nil {
			if errors.Is(err, ErrLockBusy) {
				return nil, NewConflictError("another booking for this doctor is in progress", err)
			}
			return nil, fmt.Errorf("BookMeeting: %w", err)
		}
		defer release()
	}

	if s.Recheck {
		free, err := s.Engine.IsFree(ctx, slot.Window(), doctor.Email)
		if err != nil {
			return nil, err
		}
		if !free {
			logger.Info("BookMeeting: slot taken since it was listed",
				zap.String("doctor", doctor.Email),
				zap.Time("start", slot.Start))
			return nil, NewConflictError("slot is no longer available", nil)
		}
	}

	link, err := s.Scheduler.CreateMeeting(ctx, requester, doctor.Email, slot.Window(), doctor.Name)
	if err != nil {
		return nil, err
	}

	s.notifyDoctor(ctx, doctor, requester, slot, link)

	return &models.MeetingResponse{Link: link, Start: slot.Start, End: slot.End()}, nil
}

// notifyDoctor never fails the booking; the event already exists.
func (s *DefaultMeetingService) notifyDoctor(ctx context.Context, doctor *models.Doctor, requester string, slot models.Slot, link string) {
	if s.Notifier == nil || doctor.ChatID == "" {
		return
	}
	text := fmt.Sprintf("New consultation with %s on %s: %s",
		requester, slot.Start.Format("Mon 2 Jan 15:04 MST"), link)
	if err := s.Notifier.SendMessage(ctx, doctor.ChatID, text); err != nil {
		utils.GetLogger().Warn("BookMeeting: doctor notification not queued",
			zap.String("doctorID", doctor.ID),
			zap.Error(err))
	}
}

// resolveDoctor looks up by email, or falls back to the default doctor.
func (s *DefaultMeetingService) resolveDoctor(ctx context.Context, email string) (*models.Doctor, error) {
	var (
		doctor *models.Doctor
		err    error
	)
	if email = strings.TrimSpace(email); email != "" {
		doctor, err = s.Doctors.GetByEmail(ctx, email)
	} else {
		doctor, err = s.Doctors.GetByID(ctx, s.DefaultDoctorID)
	}
	if err != nil {
		if errors.Is(err, doctorRepo.ErrDoctorNotFound) {
			return nil, NewDoctorNotFoundError("no matching doctor", err)
		}
		return nil, fmt.Errorf("resolve doctor: %w", err)
	}
	return doctor, nil
}
