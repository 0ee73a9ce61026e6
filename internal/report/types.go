package report

import (
	"time"

	"eldercare-backend/internal/model"
)

// AdherenceTotals is the roll-up of a set of intake logs. Missed aggregates
// both MISSED and SKIPPED; LATE is counted separately and contributes to
// neither Taken nor the total the rate is computed over.
type AdherenceTotals struct {
	Total  int     `json:"total"`
	Taken  int     `json:"taken"`
	Missed int     `json:"missed"`
	Late   int     `json:"late"`
	Rate   float64 `json:"rate"`
}

// MedicationAdherenceDetail is the per-medication adherence breakdown.
type MedicationAdherenceDetail struct {
	MedicationID   int64   `json:"medication_id"`
	MedicationName string  `json:"medication_name"`
	TotalDoses     int     `json:"total_doses"`
	Taken          int     `json:"taken"`
	Missed         int     `json:"missed"`
	Late           int     `json:"late"`
	AdherenceRate  float64 `json:"adherence_rate"`
}

// AppointmentSummary counts a period's appointments by outcome.
type AppointmentSummary struct {
	Total     int `json:"total"`
	Completed int `json:"completed"`
	Cancelled int `json:"cancelled"`
	Pending   int `json:"pending"`
	Missed    int `json:"missed"`
}

// ReminderStats counts a period's reminders and how many were completed.
type ReminderStats struct {
	Total     int `json:"total"`
	Completed int `json:"completed"`
}

// ActivityByHour is one bucket of the 24-hour activity histogram.
type ActivityByHour struct {
	Hour              int `json:"hour"`
	MedicationIntakes int `json:"medication_intakes"`
	Appointments      int `json:"appointments"`
	Reminders         int `json:"reminders"`
}

// CareTeamActivity is one care-team member's recorded activity in a period.
type CareTeamActivity struct {
	UserID       int64                `json:"user_id"`
	UserName     string               `json:"user_name"`
	Role         model.MembershipRole `json:"role"`
	ActionsCount int                  `json:"actions_count"`
	LastActivity *time.Time           `json:"last_activity,omitempty"`
}

// SeniorHealthReport is the full report for one senior over a date range.
type SeniorHealthReport struct {
	SeniorID            int64                       `json:"senior_id"`
	SeniorName          string                      `json:"senior_name"`
	PeriodStart         time.Time                   `json:"period_start"`
	PeriodEnd           time.Time                   `json:"period_end"`
	TotalMedications    int                         `json:"total_medications"`
	MedicationAdherence float64                     `json:"medication_adherence"`
	MedicationsDetail   []MedicationAdherenceDetail `json:"medications_detail"`
	AppointmentsSummary AppointmentSummary          `json:"appointments_summary"`
	TotalReminders      int                         `json:"total_reminders"`
	CompletedReminders  int                         `json:"completed_reminders"`
	ActivityByHour      []ActivityByHour            `json:"activity_by_hour"`
	MostActiveHours     []int                       `json:"most_active_hours"`
	CareTeamActivity    []CareTeamActivity          `json:"care_team_activity"`
	Insights            []string                    `json:"insights"`
}
