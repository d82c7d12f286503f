package notification

import (
	"context"
	"errors"
	"fmt"

	doctorRepo "cardioconsult/database/repository/doctor"
)

var ErrNoChatID = errors.New("doctor has no telegram chat id")

// Sender delivers a text message to a chat.
type Sender interface {
	SendMessage(ctx context.Context, chatID, text string) error
}

// NotificationService relays messages to the default doctor.
type NotificationService interface {
	SendToDoctor(ctx context.Context, message string) error
}

// DefaultNotificationService is the production implementation.
type DefaultNotificationService struct {
	Doctors         doctorRepo.DoctorRepository
	Sender          Sender
	DefaultDoctorID string
}

func (s *DefaultNotificationService) SendToDoctor(ctx context.Context, message string) error {
	doctor, err := s.Doctors.GetByID(ctx, s.DefaultDoctorID)
	if err != nil {
		return fmt.Errorf("SendToDoctor: could not load doctor %s: %w", s.DefaultDoctorID, err)
	}
	if doctor.ChatID == "" {
		return fmt.Errorf("SendToDoctor: doctor %s: %w", doctor.ID, ErrNoChatID)
	}
	if err := s.Sender.SendMessage(ctx, doctor.ChatID, message); err != nil {
		return fmt.Errorf("SendToDoctor: %w", err)
	}
	return nil
}
