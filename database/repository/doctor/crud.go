package doctorRepo

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"cardioconsult/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (r *MongoDoctorRepo) GetByID(ctx context.Context, id string) (*models.Doctor, error) {
	return r.findOne(ctx, bson.M{"id": id})
}

func (r *MongoDoctorRepo) GetByEmail(ctx context.Context, email string) (*models.Doctor, error) {
	return r.findOne(ctx, bson.M{"email": normalizeEmail(email)})
}

func (r *MongoDoctorRepo) findOne(ctx context.Context, filter bson.M) (*models.Doctor, error) {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	var doctor models.Doctor
	if err := r.coll.FindOne(ctx, filter).Decode(&doctor); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrDoctorNotFound
		}
		return nil, fmt.Errorf("failed to find doctor: %w", err)
	}
	return &doctor, nil
}

// Upsert inserts or replaces the doctor keyed by ID. A missing ID is generated.
func (r *MongoDoctorRepo) Upsert(ctx context.Context, doctor *models.Doctor) error {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	if doctor.ID == "" {
		doctor.ID = uuid.New().String()
	}
	doctor.Email = normalizeEmail(doctor.Email)
	now := time.Now().UTC()
	doctor.UpdatedAt = now

	update := bson.M{
		"$set": bson.M{
			"name":      doctor.Name,
			"email":     doctor.Email,
			"chatId":    doctor.ChatID,
			"updatedAt": doctor.UpdatedAt,
		},
		"$setOnInsert": bson.M{"createdAt": now},
	}
	_, err := r.coll.UpdateOne(ctx, bson.M{"id": doctor.ID}, update, options.Update().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("failed to upsert doctor %s: %w", doctor.ID, err)
	}
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
