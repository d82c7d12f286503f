package doctorRepo

import (
	"context"
	"errors"

	"cardioconsult/models"
)

var ErrDoctorNotFound = errors.New("doctor not found")

// DoctorRepository persists the organizers whose calendars we book against.
type DoctorRepository interface {
	GetByID(ctx context.Context, id string) (*models.Doctor, error)
	GetByEmail(ctx context.Context, email string) (*models.Doctor, error)
	Upsert(ctx context.Context, doctor *models.Doctor) error
}
