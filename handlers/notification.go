package handlers

import (
	"errors"
	"net/http"

	doctorRepo "cardioconsult/database/repository/doctor"
	"cardioconsult/models"
	"cardioconsult/services/notification"
	"cardioconsult/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type NotificationHandler struct {
	Service notification.NotificationService
}

func NewNotificationHandler(svc notification.NotificationService) *NotificationHandler {
	return &NotificationHandler{Service: svc}
}

// SendNotification handles POST /notification/send.
func (h *NotificationHandler) SendNotification(c *gin.Context) {
	logger := getLogger(c)

	var msg models.TelegramMessage
	if err := c.ShouldBindJSON(&msg); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", err.Error())
		return
	}

	if err := h.Service.SendToDoctor(c.Request.Context(), msg.Message); err != nil {
		switch {
		case errors.Is(err, doctorRepo.ErrDoctorNotFound):
			utils.JSONError(c, http.StatusNotFound, "Doctor not found", "")
		case errors.Is(err, notification.ErrNoChatID), errors.Is(err, notification.ErrTelegramNotConfigured):
			utils.JSONError(c, http.StatusServiceUnavailable, "Notifications not configured", err.Error())
		default:
			logger.Error("Failed to send notification", zap.Error(err))
			utils.JSONError(c, http.StatusBadGateway, "Failed to send notification", "")
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Notification sent"})
}
