// Package report builds senior health reports from data the store layer has
// already fetched. Everything in here is a pure computation over slices, so
// a report is re-derivable from its inputs alone.
package report

import (
	"sort"
	"time"

	"eldercare-backend/internal/model"
)

// Build assembles the full health report for one senior over a period.
// The caller fetches every input restricted to the period; a failed fetch
// fails the whole report rather than producing partial figures.
func Build(
	senior *model.Senior,
	periodStart, periodEnd time.Time,
	meds []model.Medication,
	intakes []model.IntakeLog,
	appointments []model.Appointment,
	reminders []model.Reminder,
	team []CareTeamActivity,
	loc *time.Location,
) *SeniorHealthReport {
	details := MedicationAdherence(meds, intakes)
	overall := OverallAdherence(details)

	appointmentSummary := SummarizeAppointments(appointments)
	reminderStats := SummarizeReminders(reminders)

	activity := Profile(intakes, appointments, reminders, loc)
	mostActive := MostActiveHours(activity)

	sort.SliceStable(team, func(i, j int) bool {
		return team[i].ActionsCount > team[j].ActionsCount
	})

	insights := GenerateInsights(overall, details, appointmentSummary, reminderStats, team)

	return &SeniorHealthReport{
		SeniorID:            senior.ID,
		SeniorName:          senior.FullName,
		PeriodStart:         periodStart,
		PeriodEnd:           periodEnd,
		TotalMedications:    len(details),
		MedicationAdherence: overall,
		MedicationsDetail:   details,
		AppointmentsSummary: appointmentSummary,
		TotalReminders:      reminderStats.Total,
		CompletedReminders:  reminderStats.Completed,
		ActivityByHour:      activity,
		MostActiveHours:     mostActive,
		CareTeamActivity:    team,
		Insights:            insights,
	}
}

// SummarizeAppointments counts appointments by status.
func SummarizeAppointments(appointments []model.Appointment) AppointmentSummary {
	var s AppointmentSummary
	s.Total = len(appointments)
	for _, a := range appointments {
		switch a.Status {
		case model.AppointmentCompleted:
			s.Completed++
		case model.AppointmentCancelled:
			s.Cancelled++
		case model.AppointmentScheduled:
			s.Pending++
		case model.AppointmentMissed:
			s.Missed++
		}
	}
	return s
}

// SummarizeReminders counts a period's reminders and the DONE subset.
func SummarizeReminders(reminders []model.Reminder) ReminderStats {
	var s ReminderStats
	s.Total = len(reminders)
	for _, r := range reminders {
		if r.Status == model.ReminderDone {
			s.Completed++
		}
	}
	return s
}
