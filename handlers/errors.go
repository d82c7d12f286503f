package handlers

import (
	"errors"
	"net/http"

	"cardioconsult/services/booking"
	"cardioconsult/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// statusFor maps a booking error kind onto an HTTP status.
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, booking.ErrInvalidWindow):
		return http.StatusBadRequest, "Invalid request"
	case errors.Is(err, booking.ErrDoctorNotFound):
		return http.StatusNotFound, "Doctor not found"
	case errors.Is(err, booking.ErrBookingConflict):
		return http.StatusConflict, "Slot is no longer available"
	case errors.Is(err, booking.ErrCollaboratorUnavailable):
		return http.StatusBadGateway, "Calendar service unavailable"
	default:
		return http.StatusInternalServerError, "Internal Server Error"
	}
}

func writeServiceError(c *gin.Context, op string, err error) {
	status, message := statusFor(err)
	if status >= http.StatusInternalServerError {
		getLogger(c).Error(op+" failed", zap.Error(err))
		utils.JSONError(c, status, message, "")
		return
	}
	utils.JSONError(c, status, message, err.Error())
}
