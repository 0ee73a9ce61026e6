package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"eldercare-backend/internal/model"
	"eldercare-backend/internal/mw"
	"eldercare-backend/internal/schedule"
	"eldercare-backend/internal/store"
)

type createMedicationRequest struct {
	Name  string `json:"name" binding:"required"`
	Dose  string `json:"dose" binding:"required"`
	Unit  string `json:"unit" binding:"required"`
	Notes string `json:"notes"`
}

// CreateMedication handles POST /api/seniors/:senior_id/medications.
func (h *Handler) CreateMedication(c *gin.Context) {
	seniorID, ok := pathID(c, "senior_id")
	if !ok {
		return
	}

	var req createMedicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if _, err := h.store.GetSenior(c.Request.Context(), seniorID); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "senior not found"})
		return
	}

	med := model.Medication{
		SeniorID: seniorID,
		Name:     req.Name,
		Dose:     req.Dose,
		Unit:     req.Unit,
		Notes:    req.Notes,
	}
	if err := h.store.CreateMedication(c.Request.Context(), &med); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create medication"})
		return
	}

	actorID, _ := mw.UserID(c)
	h.audit(actorID, "CREATE", "Medication", strconv.FormatInt(med.ID, 10))
	c.JSON(http.StatusCreated, med)
}

// ListMedications handles GET /api/seniors/:senior_id/medications.
func (h *Handler) ListMedications(c *gin.Context) {
	seniorID, ok := pathID(c, "senior_id")
	if !ok {
		return
	}

	meds, err := h.store.ListMedications(c.Request.Context(), seniorID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list medications"})
		return
	}
	c.JSON(http.StatusOK, meds)
}

type createScheduleRequest struct {
	Hours      []int      `json:"hours" binding:"required"`
	DaysOfWeek []int      `json:"days_of_week"`
	StartDate  *time.Time `json:"start_date"`
	EndDate    *time.Time `json:"end_date"`
}

// CreateSchedule handles POST /api/medications/:medication_id/schedule. The
// schedule is validated, stored and immediately materialized into reminders.
func (h *Handler) CreateSchedule(c *gin.Context) {
	medicationID, ok := pathID(c, "medication_id")
	if !ok {
		return
	}

	var req createScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sched := &model.MedicationSchedule{
		Hours:      req.Hours,
		DaysOfWeek: req.DaysOfWeek,
		StartDate:  req.StartDate,
		EndDate:    req.EndDate,
	}
	stored, created, err := h.meds.AddSchedule(c.Request.Context(), medicationID, sched)
	if err != nil {
		var verr *schedule.ValidationError
		switch {
		case errors.As(err, &verr):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": verr.Error()})
		case errors.Is(err, store.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "medication not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create schedule"})
		}
		return
	}

	actorID, _ := mw.UserID(c)
	h.audit(actorID, "CREATE", "MedicationSchedule", strconv.FormatInt(stored.ID, 10))
	c.JSON(http.StatusCreated, gin.H{"schedule": stored, "reminders_created": created})
}

type takeMedicationRequest struct {
	ScheduledAt time.Time  `json:"scheduled_at" binding:"required"`
	TakenAt     *time.Time `json:"taken_at"`
}

// TakeMedication handles POST /api/medications/:medication_id/take. A
// missing taken_at means "right now".
func (h *Handler) TakeMedication(c *gin.Context) {
	medicationID, ok := pathID(c, "medication_id")
	if !ok {
		return
	}

	var req takeMedicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	takenAt := req.TakenAt
	if takenAt == nil {
		now := h.clk.Now()
		takenAt = &now
	}

	actorID, _ := mw.UserID(c)
	intake, err := h.meds.RecordIntake(c.Request.Context(), medicationID, req.ScheduledAt, takenAt, actorID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "medication not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to record intake"})
		return
	}

	h.audit(actorID, "CREATE", "IntakeLog", strconv.FormatInt(intake.ID, 10))
	c.JSON(http.StatusCreated, intake)
}

type createIntakeRequest struct {
	MedicationID int64      `json:"medication_id" binding:"required"`
	ScheduledAt  time.Time  `json:"scheduled_at" binding:"required"`
	TakenAt      *time.Time `json:"taken_at"`
}

// CreateIntake handles POST /api/intakes: a manual intake report for any
// occurrence, classified against its scheduled time.
func (h *Handler) CreateIntake(c *gin.Context) {
	var req createIntakeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	actorID, _ := mw.UserID(c)
	intake, err := h.meds.RecordIntake(c.Request.Context(), req.MedicationID, req.ScheduledAt, req.TakenAt, actorID)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "medication not found"})
		case errors.Is(err, schedule.ErrNotResolvable):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "occurrence is still open; report taken_at or wait for the window to elapse"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to record intake"})
		}
		return
	}

	h.audit(actorID, "CREATE", "IntakeLog", strconv.FormatInt(intake.ID, 10))
	c.JSON(http.StatusCreated, intake)
}

// ListIntakes handles GET /api/seniors/:senior_id/intakes?from=&to=.
func (h *Handler) ListIntakes(c *gin.Context) {
	seniorID, ok := pathID(c, "senior_id")
	if !ok {
		return
	}
	from, to, ok := h.dateRange(c)
	if !ok {
		return
	}

	logs, err := h.store.ListIntakeLogs(c.Request.Context(), seniorID, from, to)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list intakes"})
		return
	}
	c.JSON(http.StatusOK, logs)
}
