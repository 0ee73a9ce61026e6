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

type createReminderRequest struct {
	Title       string    `json:"title" binding:"required"`
	Description string    `json:"description"`
	ScheduledAt time.Time `json:"scheduled_at" binding:"required"`
}

// CreateReminder handles POST /api/seniors/:senior_id/reminders. Ad-hoc
// reminders have no medication link; resolving one never touches adherence.
func (h *Handler) CreateReminder(c *gin.Context) {
	seniorID, ok := pathID(c, "senior_id")
	if !ok {
		return
	}

	var req createReminderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if _, err := h.store.GetSenior(c.Request.Context(), seniorID); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "senior not found"})
		return
	}

	reminder := model.Reminder{
		SeniorID:    seniorID,
		Title:       req.Title,
		Description: req.Description,
		ScheduledAt: req.ScheduledAt,
		Status:      model.ReminderPending,
	}
	if err := h.store.DB().WithContext(c.Request.Context()).Create(&reminder).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create reminder"})
		return
	}

	actorID, _ := mw.UserID(c)
	h.audit(actorID, "CREATE", "Reminder", strconv.FormatInt(reminder.ID, 10))
	c.JSON(http.StatusCreated, reminder)
}

// ListReminders handles GET /api/seniors/:senior_id/reminders?date=. With a
// date it returns that day's reminders; otherwise it falls back to the
// from/to range.
func (h *Handler) ListReminders(c *gin.Context) {
	seniorID, ok := pathID(c, "senior_id")
	if !ok {
		return
	}

	var from, to time.Time
	if date := c.Query("date"); date != "" {
		day, err := time.ParseInLocation("2006-01-02", date, h.clk.Location())
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date, want YYYY-MM-DD"})
			return
		}
		from, to = day, day.AddDate(0, 0, 1).Add(-time.Nanosecond)
	} else {
		from, to, ok = h.dateRange(c)
		if !ok {
			return
		}
	}

	reminders, err := h.store.ListReminders(c.Request.Context(), seniorID, from, to)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list reminders"})
		return
	}
	c.JSON(http.StatusOK, reminders)
}

// DoneReminder handles POST /api/reminders/:reminder_id/done.
func (h *Handler) DoneReminder(c *gin.Context) {
	reminderID, ok := pathID(c, "reminder_id")
	if !ok {
		return
	}
	actorID, _ := mw.UserID(c)

	reminder, err := h.meds.CompleteReminder(c.Request.Context(), reminderID, actorID)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "reminder not found"})
		case errors.Is(err, store.ErrAlreadyResolved):
			c.JSON(http.StatusConflict, gin.H{"error": "reminder already resolved"})
		case errors.Is(err, schedule.ErrNotResolvable):
			// Cannot happen for done: a taken timestamp always classifies.
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to complete reminder"})
		}
		return
	}

	h.audit(actorID, "UPDATE", "Reminder", strconv.FormatInt(reminder.ID, 10))
	c.JSON(http.StatusOK, reminder)
}

// SkipReminder handles POST /api/reminders/:reminder_id/skip.
func (h *Handler) SkipReminder(c *gin.Context) {
	reminderID, ok := pathID(c, "reminder_id")
	if !ok {
		return
	}
	actorID, _ := mw.UserID(c)

	reminder, err := h.meds.SkipReminder(c.Request.Context(), reminderID, actorID)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "reminder not found"})
		case errors.Is(err, store.ErrAlreadyResolved):
			c.JSON(http.StatusConflict, gin.H{"error": "reminder already resolved"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to skip reminder"})
		}
		return
	}

	h.audit(actorID, "UPDATE", "Reminder", strconv.FormatInt(reminder.ID, 10))
	c.JSON(http.StatusOK, reminder)
}
