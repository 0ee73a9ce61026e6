package report

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eldercare-backend/internal/model"
)

func ts(hour, minute int) time.Time {
	return time.Date(2025, time.March, 10, hour, minute, 0, 0, time.UTC)
}

func tsPtr(hour, minute int) *time.Time {
	t := ts(hour, minute)
	return &t
}

func TestProfileBucketsByLocalHour(t *testing.T) {
	intakes := []model.IntakeLog{
		{Status: model.IntakeTaken, TakenAt: tsPtr(8, 15)},
		{Status: model.IntakeMissed},                      // no taken time, ignored
		{Status: model.IntakeLate, TakenAt: tsPtr(8, 20)}, // not TAKEN, ignored
	}
	appointments := []model.Appointment{{StartsAt: ts(8, 45)}}
	reminders := []model.Reminder{{ScheduledAt: ts(14, 0)}}

	buckets := Profile(intakes, appointments, reminders, time.UTC)
	require.Len(t, buckets, 24)

	assert.Equal(t, 1, buckets[8].MedicationIntakes)
	assert.Equal(t, 1, buckets[8].Appointments)
	assert.Equal(t, 0, buckets[8].Reminders)
	assert.Equal(t, 1, buckets[14].Reminders)
}

func TestProfileHonorsTimezone(t *testing.T) {
	loc, err := time.LoadLocation("America/Guayaquil") // UTC-5
	require.NoError(t, err)

	takenUTC := time.Date(2025, time.March, 10, 13, 10, 0, 0, time.UTC) // 08:10 local
	intakes := []model.IntakeLog{{Status: model.IntakeTaken, TakenAt: &takenUTC}}

	buckets := Profile(intakes, nil, nil, loc)
	assert.Equal(t, 1, buckets[8].MedicationIntakes)
	assert.Equal(t, 0, buckets[13].MedicationIntakes)
}

func TestMostActiveHours(t *testing.T) {
	intakes := []model.IntakeLog{{Status: model.IntakeTaken, TakenAt: tsPtr(8, 15)}}
	appointments := []model.Appointment{{StartsAt: ts(8, 45)}}
	reminders := []model.Reminder{{ScheduledAt: ts(14, 0)}}

	buckets := Profile(intakes, appointments, reminders, time.UTC)
	hours := MostActiveHours(buckets)
	require.Len(t, hours, 3)

	// Hour 8 holds two events, hour 14 one; the rest tie at zero and resolve
	// toward the lowest hour.
	assert.Equal(t, 8, hours[0])
	assert.Equal(t, 14, hours[1])
	assert.Equal(t, 0, hours[2])
}

func TestMostActiveHoursTieBreaksLow(t *testing.T) {
	buckets := Profile(nil, nil, nil, time.UTC)
	assert.Equal(t, []int{0, 1, 2}, MostActiveHours(buckets))
}
