package handlers

import (
	"github.com/gin-gonic/gin"
)

// HandlerBundle groups all endpoint handlers into one struct.
type HandlerBundle struct {
	// Meeting endpoints
	GetAvailableSlots gin.HandlerFunc
	GetNextSlot       gin.HandlerFunc
	CreateMeeting     gin.HandlerFunc

	// Notification endpoints
	SendNotification gin.HandlerFunc

	// Doctor endpoints
	GetDoctorByID gin.HandlerFunc
	UpsertDoctor  gin.HandlerFunc
}
