package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"eldercare-backend/internal/model"
	"eldercare-backend/internal/mw"
)

type createAppointmentRequest struct {
	DoctorUserID int64     `json:"doctor_user_id" binding:"required"`
	StartsAt     time.Time `json:"starts_at" binding:"required"`
	Location     string    `json:"location"`
	Reason       string    `json:"reason"`
}

// CreateAppointment handles POST /api/seniors/:senior_id/appointments.
func (h *Handler) CreateAppointment(c *gin.Context) {
	seniorID, ok := pathID(c, "senior_id")
	if !ok {
		return
	}

	var req createAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if _, err := h.store.GetSenior(c.Request.Context(), seniorID); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "senior not found"})
		return
	}

	appt := model.Appointment{
		SeniorID:     seniorID,
		DoctorUserID: req.DoctorUserID,
		StartsAt:     req.StartsAt,
		Location:     req.Location,
		Reason:       req.Reason,
		Status:       model.AppointmentScheduled,
	}
	if err := h.store.DB().WithContext(c.Request.Context()).Create(&appt).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create appointment"})
		return
	}

	actorID, _ := mw.UserID(c)
	h.audit(actorID, "CREATE", "Appointment", strconv.FormatInt(appt.ID, 10))
	c.JSON(http.StatusCreated, appt)
}

// ListAppointments handles GET /api/seniors/:senior_id/appointments?from=&to=.
func (h *Handler) ListAppointments(c *gin.Context) {
	seniorID, ok := pathID(c, "senior_id")
	if !ok {
		return
	}
	from, to, ok := h.dateRange(c)
	if !ok {
		return
	}

	appts, err := h.store.ListAppointments(c.Request.Context(), seniorID, from, to)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list appointments"})
		return
	}
	c.JSON(http.StatusOK, appts)
}

type updateAppointmentStatusRequest struct {
	Status model.AppointmentStatus `json:"status" binding:"required"`
}

// UpdateAppointmentStatus handles PATCH /api/appointments/:appointment_id/status.
func (h *Handler) UpdateAppointmentStatus(c *gin.Context) {
	appointmentID, ok := pathID(c, "appointment_id")
	if !ok {
		return
	}

	var req updateAppointmentStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	switch req.Status {
	case model.AppointmentScheduled, model.AppointmentCompleted,
		model.AppointmentCancelled, model.AppointmentMissed:
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown status"})
		return
	}

	var appt model.Appointment
	err := h.store.DB().WithContext(c.Request.Context()).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&appt, appointmentID).Error; err != nil {
			return err
		}
		appt.Status = req.Status
		return tx.Save(&appt).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "appointment not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update appointment"})
		return
	}

	actorID, _ := mw.UserID(c)
	h.audit(actorID, "UPDATE", "Appointment", strconv.FormatInt(appt.ID, 10))
	c.JSON(http.StatusOK, appt)
}

type createAppointmentNoteRequest struct {
	Note string `json:"note" binding:"required"`
}

// CreateAppointmentNote handles POST /api/appointments/:appointment_id/notes.
func (h *Handler) CreateAppointmentNote(c *gin.Context) {
	appointmentID, ok := pathID(c, "appointment_id")
	if !ok {
		return
	}

	var req createAppointmentNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	db := h.store.DB().WithContext(c.Request.Context())
	var appt model.Appointment
	if err := db.First(&appt, appointmentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "appointment not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load appointment"})
		return
	}

	actorID, _ := mw.UserID(c)
	note := model.AppointmentNote{
		AppointmentID: appt.ID,
		AuthorUserID:  actorID,
		Note:          req.Note,
	}
	if err := db.Create(&note).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create note"})
		return
	}

	h.audit(actorID, "CREATE", "AppointmentNote", strconv.FormatInt(note.ID, 10))
	c.JSON(http.StatusCreated, note)
}

// ListAppointmentNotes handles GET /api/appointments/:appointment_id/notes.
func (h *Handler) ListAppointmentNotes(c *gin.Context) {
	appointmentID, ok := pathID(c, "appointment_id")
	if !ok {
		return
	}

	var notes []model.AppointmentNote
	err := h.store.DB().WithContext(c.Request.Context()).
		Where("appointment_id = ?", appointmentID).
		Order("created_at ASC").
		Find(&notes).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list notes"})
		return
	}
	c.JSON(http.StatusOK, notes)
}
