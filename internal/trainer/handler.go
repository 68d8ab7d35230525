package trainer

import (
	"errors"
	"net/http"
	"strconv"

	"coachslot/internal/auth"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
)

type Handler struct {
	service Service
}

func NewHandler(db *sqlx.DB) *Handler {
	return &Handler{
		service: NewService(NewRepository(db)),
	}
}

// ListTrainers godoc
// @Summary      List trainers
// @Description  Returns all trainers with their hourly rates.
// @Tags         trainers
// @Security     BearerAuth
// @Produce      json
// @Success      200  {array}   Trainer
// @Failure      500  {object}  gin.H
// @Router       /trainers [get]
func (h *Handler) ListTrainers(c *gin.Context) {
	trainers, err := h.service.ListTrainers(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch trainers"})
		return
	}

	c.JSON(http.StatusOK, trainers)
}

// GetTrainer godoc
// @Summary      Get trainer
// @Description  Returns one trainer's profile with the weekly availability.
// @Tags         trainers
// @Security     BearerAuth
// @Produce      json
// @Param        trainerID  path      int  true  "Trainer ID"
// @Success      200        {object}  TrainerWithAvailability
// @Failure      400        {object}  gin.H
// @Failure      404        {object}  gin.H
// @Router       /trainers/{trainerID} [get]
func (h *Handler) GetTrainer(c *gin.Context) {
	trainerID, err := strconv.Atoi(c.Param("trainerID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid trainer ID"})
		return
	}

	t, err := h.service.GetTrainer(c.Request.Context(), trainerID)
	if err != nil {
		if errors.Is(err, ErrTrainerNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Trainer not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch trainer"})
		return
	}

	c.JSON(http.StatusOK, t)
}

// GetAvailability godoc
// @Summary      Get trainer availability
// @Description  Returns the trainer's recurring weekly working hours.
// @Tags         trainers
// @Security     BearerAuth
// @Produce      json
// @Param        trainerID  path      int  true  "Trainer ID"
// @Success      200        {object}  WeeklyHours
// @Failure      400        {object}  gin.H
// @Failure      404        {object}  gin.H
// @Router       /trainers/{trainerID}/availability [get]
func (h *Handler) GetAvailability(c *gin.Context) {
	trainerID, err := strconv.Atoi(c.Param("trainerID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid trainer ID"})
		return
	}

	hours, err := h.service.GetAvailability(c.Request.Context(), trainerID)
	if err != nil {
		if errors.Is(err, ErrTrainerNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Trainer not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch availability"})
		return
	}

	if hours == nil {
		hours = WeeklyHours{}
	}

	c.JSON(http.StatusOK, hours)
}

// UpsertProfile godoc
// @Summary      Create or update trainer profile
// @Description  Creates or updates the profile for the authenticated trainer.
// @Tags         trainers
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request  body      UpsertProfileRequest  true  "Profile data"
// @Success      200      {object}  Trainer
// @Failure      400      {object}  gin.H
// @Failure      500      {object}  gin.H
// @Router       /trainer/profile [put]
func (h *Handler) UpsertProfile(c *gin.Context) {
	userID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var req UpsertProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	t, err := h.service.UpsertProfile(c.Request.Context(), userID, req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save profile"})
		return
	}

	c.JSON(http.StatusOK, t)
}

// SetAvailability godoc
// @Summary      Set weekly availability
// @Description  Replaces the authenticated trainer's recurring weekly hours.
// @Tags         trainers
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request  body      WeeklyHours  true  "Weekly hours keyed by weekday name"
// @Success      200      {object}  gin.H
// @Failure      400      {object}  gin.H
// @Failure      404      {object}  gin.H
// @Router       /trainer/availability [put]
func (h *Handler) SetAvailability(c *gin.Context) {
	userID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var hours WeeklyHours
	if err := c.ShouldBindJSON(&hours); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	err := h.service.SetAvailability(c.Request.Context(), userID, hours)
	if err != nil {
		switch {
		case errors.Is(err, ErrTrainerNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Trainer profile not found"})
		case errors.Is(err, ErrInvalidWindow):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save availability"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Availability updated"})
}
