package handlers

import (
	"errors"
	"net/http"

	doctorRepo "cardioconsult/database/repository/doctor"
	"cardioconsult/models"
	"cardioconsult/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type DoctorHandler struct {
	Repo doctorRepo.DoctorRepository
}

func NewDoctorHandler(repo doctorRepo.DoctorRepository) *DoctorHandler {
	return &DoctorHandler{Repo: repo}
}

// GetDoctorByID handles GET /api/doctors/:id.
func (h *DoctorHandler) GetDoctorByID(c *gin.Context) {
	logger := getLogger(c)
	id := c.Param("id")

	doc, err := h.Repo.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, doctorRepo.ErrDoctorNotFound) {
			utils.JSONError(c, http.StatusNotFound, "Doctor not found", "")
			return
		}
		logger.Error("Failed to load doctor", zap.String("id", id), zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Failed to load doctor", "")
		return
	}
	c.JSON(http.StatusOK, doc)
}

// UpsertDoctor handles PUT /api/doctors.
func (h *DoctorHandler) UpsertDoctor(c *gin.Context) {
	logger := getLogger(c)

	var req models.UpsertDoctorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", err.Error())
		return
	}

	doc := &models.Doctor{ID: req.ID, Name: req.Name, Email: req.Email, ChatID: req.ChatID}
	if err := h.Repo.Upsert(c.Request.Context(), doc); err != nil {
		logger.Error("Failed to save doctor", zap.String("email", req.Email), zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Failed to save doctor", "")
		return
	}
	c.JSON(http.StatusOK, doc)
}
