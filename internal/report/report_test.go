package report

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eldercare-backend/internal/model"
)

func TestBuildAssemblesReport(t *testing.T) {
	senior := &model.Senior{ID: 7, FullName: "Rosa Delgado"}
	periodStart := time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC)
	periodEnd := time.Date(2025, time.March, 16, 23, 59, 59, 0, time.UTC)

	taken := time.Date(2025, time.March, 10, 8, 10, 0, 0, time.UTC)
	meds := []model.Medication{{ID: 1, SeniorID: 7, Name: "Losartan"}}
	intakes := []model.IntakeLog{
		{MedicationID: 1, Status: model.IntakeTaken, TakenAt: &taken},
		{MedicationID: 1, Status: model.IntakeMissed},
	}
	appointments := []model.Appointment{
		{SeniorID: 7, StartsAt: taken.Add(30 * time.Minute), Status: model.AppointmentCompleted},
	}
	reminders := []model.Reminder{
		{SeniorID: 7, ScheduledAt: taken, Status: model.ReminderDone},
		{SeniorID: 7, ScheduledAt: taken.Add(12 * time.Hour), Status: model.ReminderPending},
	}
	team := []CareTeamActivity{
		{UserID: 2, UserName: "Luis", Role: model.MembershipNurse, ActionsCount: 1},
		{UserID: 3, UserName: "Ana", Role: model.MembershipCaregiver, ActionsCount: 9},
	}

	got := Build(senior, periodStart, periodEnd, meds, intakes, appointments, reminders, team, time.UTC)

	assert.Equal(t, int64(7), got.SeniorID)
	assert.Equal(t, "Rosa Delgado", got.SeniorName)
	assert.Equal(t, 1, got.TotalMedications)
	assert.InDelta(t, 0.5, got.MedicationAdherence, 1e-9)
	assert.Equal(t, 2, got.TotalReminders)
	assert.Equal(t, 1, got.CompletedReminders)
	assert.Equal(t, AppointmentSummary{Total: 1, Completed: 1}, got.AppointmentsSummary)

	require.Len(t, got.ActivityByHour, 24)
	assert.Equal(t, 1, got.ActivityByHour[8].MedicationIntakes)
	assert.Equal(t, 1, got.ActivityByHour[8].Appointments)
	assert.Equal(t, 8, got.MostActiveHours[0])

	// Care team re-sorted by action count before insight generation.
	assert.Equal(t, "Ana", got.CareTeamActivity[0].UserName)

	require.NotEmpty(t, got.Insights)
	assert.Contains(t, got.Insights[0], "Low medication adherence")
	assert.Contains(t, got.Insights[len(got.Insights)-1], "Most active team member: Ana")
}

func TestBuildZeroData(t *testing.T) {
	senior := &model.Senior{ID: 1, FullName: "Empty"}
	start := time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC)

	got := Build(senior, start, start.AddDate(0, 0, 7), nil, nil, nil, nil, nil, time.UTC)

	assert.Equal(t, 0.0, got.MedicationAdherence)
	assert.Equal(t, 0, got.TotalMedications)
	assert.Empty(t, got.Insights)
	assert.Len(t, got.ActivityByHour, 24)
}
