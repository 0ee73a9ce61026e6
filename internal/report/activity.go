package report

import (
	"sort"
	"time"

	"eldercare-backend/internal/model"
)

// Profile buckets the period's events into 24 hour-of-day slots: TAKEN
// intakes by the hour they were taken, appointments by start hour, reminders
// by scheduled hour. Hours are extracted in the business timezone.
func Profile(intakes []model.IntakeLog, appointments []model.Appointment, reminders []model.Reminder, loc *time.Location) []ActivityByHour {
	buckets := make([]ActivityByHour, 24)
	for h := range buckets {
		buckets[h].Hour = h
	}

	for _, in := range intakes {
		if in.Status != model.IntakeTaken || in.TakenAt == nil {
			continue
		}
		buckets[in.TakenAt.In(loc).Hour()].MedicationIntakes++
	}
	for _, a := range appointments {
		buckets[a.StartsAt.In(loc).Hour()].Appointments++
	}
	for _, r := range reminders {
		buckets[r.ScheduledAt.In(loc).Hour()].Reminders++
	}
	return buckets
}

// MostActiveHours returns the three hours with the highest combined count.
// The sort is stable over the hour-ordered input, so ties resolve toward the
// lower hour.
func MostActiveHours(buckets []ActivityByHour) []int {
	ranked := append([]ActivityByHour(nil), buckets...)
	sort.SliceStable(ranked, func(i, j int) bool {
		return combined(ranked[i]) > combined(ranked[j])
	})

	n := 3
	if len(ranked) < n {
		n = len(ranked)
	}
	hours := make([]int, 0, n)
	for _, b := range ranked[:n] {
		hours = append(hours, b.Hour)
	}
	return hours
}

func combined(b ActivityByHour) int {
	return b.MedicationIntakes + b.Appointments + b.Reminders
}
