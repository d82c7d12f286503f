package handlers

import (
	"net/http"
	"time"

	"cardioconsult/models"
	"cardioconsult/services/booking"
	"cardioconsult/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const dateLayout = "2006-01-02"

type MeetingHandler struct {
	Service  booking.MeetingService
	Location *time.Location
	Now      func() time.Time
}

func NewMeetingHandler(svc booking.MeetingService, loc *time.Location) *MeetingHandler {
	if loc == nil {
		loc = time.Local
	}
	return &MeetingHandler{Service: svc, Location: loc, Now: time.Now}
}

// GetAvailableSlots handles GET /available-slots?date=YYYY-MM-DD&doctorEmail=.
func (h *MeetingHandler) GetAvailableSlots(c *gin.Context) {
	date := h.Now().In(h.Location)
	if raw := c.Query("date"); raw != "" {
		parsed, err := time.ParseInLocation(dateLayout, raw, h.Location)
		if err != nil {
			utils.JSONError(c, http.StatusBadRequest, "Invalid date", "expected YYYY-MM-DD")
			return
		}
		date = parsed
	}

	slots, err := h.Service.ListAvailableSlots(c.Request.Context(), date, c.Query("doctorEmail"))
	if err != nil {
		writeServiceError(c, "ListAvailableSlots", err)
		return
	}
	c.JSON(http.StatusOK, models.NewSlotResponses(slots))
}

// GetNextSlot handles GET /next-slot. 204 means nothing is free soon.
func (h *MeetingHandler) GetNextSlot(c *gin.Context) {
	slot, err := h.Service.NextAvailableSlot(c.Request.Context(), c.Query("userEmail"), c.Query("doctorEmail"))
	if err != nil {
		writeServiceError(c, "NextAvailableSlot", err)
		return
	}
	if slot == nil {
		c.Status(http.StatusNoContent)
		return
	}
	c.JSON(http.StatusOK, models.SlotResponse{Start: slot.Start, End: slot.End()})
}

// CreateMeeting handles POST /create-meeting.
func (h *MeetingHandler) CreateMeeting(c *gin.Context) {
	logger := getLogger(c)

	var req models.MeetingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Invalid meeting request", zap.Error(err))
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", err.Error())
		return
	}

	resp, err := h.Service.BookMeeting(c.Request.Context(), req)
	if err != nil {
		writeServiceError(c, "BookMeeting", err)
		return
	}

	logger.Info("Meeting booked",
		zap.String("requester", req.RequesterEmail),
		zap.Time("start", resp.Start))
	c.JSON(http.StatusCreated, resp)
}
