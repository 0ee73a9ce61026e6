package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"eldercare-backend/internal/report"
	"eldercare-backend/internal/store"
)

const defaultReportDays = 30

// dateRange parses the from/to query parameters, accepting RFC 3339 or
// plain dates. Missing bounds default to the last 30 days ending now.
func (h *Handler) dateRange(c *gin.Context) (time.Time, time.Time, bool) {
	to := h.clk.Now()
	if raw := c.Query("to"); raw != "" {
		parsed, err := h.parseTimeParam(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid to"})
			return time.Time{}, time.Time{}, false
		}
		to = parsed
	}

	from := to.AddDate(0, 0, -defaultReportDays)
	if raw := c.Query("from"); raw != "" {
		parsed, err := h.parseTimeParam(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid from"})
			return time.Time{}, time.Time{}, false
		}
		from = parsed
	}

	if to.Before(from) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "to is before from"})
		return time.Time{}, time.Time{}, false
	}
	return from, to, true
}

func (h *Handler) parseTimeParam(raw string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	return time.ParseInLocation("2006-01-02", raw, h.clk.Location())
}

// GetHealthReport handles GET /api/seniors/:senior_id/report?from=&to=.
// Responses are cached per user by the route middleware.
func (h *Handler) GetHealthReport(c *gin.Context) {
	seniorID, ok := pathID(c, "senior_id")
	if !ok {
		return
	}
	from, to, ok := h.dateRange(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()

	senior, err := h.store.GetSenior(ctx, seniorID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "senior not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load senior"})
		return
	}

	meds, err := h.store.ListMedications(ctx, seniorID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to build report"})
		return
	}
	intakes, err := h.store.ListIntakeLogs(ctx, seniorID, from, to)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to build report"})
		return
	}
	appointments, err := h.store.ListAppointments(ctx, seniorID, from, to)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to build report"})
		return
	}
	reminders, err := h.store.ListReminders(ctx, seniorID, from, to)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to build report"})
		return
	}
	team, err := h.store.CareTeamActivity(ctx, seniorID, from, to)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to build report"})
		return
	}

	result := report.Build(senior, from, to, meds, intakes, appointments, reminders, team, h.clk.Location())
	c.JSON(http.StatusOK, result)
}

// GetAdherenceStats handles GET /api/seniors/:senior_id/stats?from=&to=: the
// adherence roll-up without the rest of the report.
func (h *Handler) GetAdherenceStats(c *gin.Context) {
	seniorID, ok := pathID(c, "senior_id")
	if !ok {
		return
	}
	from, to, ok := h.dateRange(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()

	meds, err := h.store.ListMedications(ctx, seniorID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to compute stats"})
		return
	}
	intakes, err := h.store.ListIntakeLogs(ctx, seniorID, from, to)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to compute stats"})
		return
	}

	details := report.MedicationAdherence(meds, intakes)
	c.JSON(http.StatusOK, gin.H{
		"period_start":      from,
		"period_end":        to,
		"totals":            report.ComputeAdherence(intakes),
		"medications":       details,
		"overall_adherence": report.OverallAdherence(details),
	})
}
