package models

import "time"

// Doctor is the organizer whose calendar defines availability.
type Doctor struct {
	ID        string    `bson:"id" json:"id"`
	Name      string    `bson:"name" json:"name"`
	Email     string    `bson:"email" json:"email"`
	ChatID    string    `bson:"chatId" json:"chatId,omitempty"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// UpsertDoctorRequest is the body accepted by the doctor management endpoint.
type UpsertDoctorRequest struct {
	ID     string `json:"id"`
	Name   string `json:"name" binding:"required"`
	Email  string `json:"email" binding:"required,email"`
	ChatID string `json:"chatId"`
}
