package schedule

import (
	"fmt"
	"slices"
	"sort"
	"time"

	"eldercare-backend/internal/model"
)

// DefaultWindowDays bounds generation when a schedule has no end date, so a
// schedule edit never materializes an unbounded stream of reminders.
const DefaultWindowDays = 7

// ValidationError reports a malformed schedule. It is returned before any
// expansion happens.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid schedule: %s", e.Reason)
}

// Validate checks a schedule's recurrence rule: hours non-empty and within
// [0,23], weekdays within [0,6] (0=Monday), end date not before start date.
func Validate(s *model.MedicationSchedule) error {
	if len(s.Hours) == 0 {
		return &ValidationError{Reason: "hours must not be empty"}
	}
	for _, h := range s.Hours {
		if h < 0 || h > 23 {
			return &ValidationError{Reason: fmt.Sprintf("hour %d out of range [0,23]", h)}
		}
	}
	for _, d := range s.DaysOfWeek {
		if d < 0 || d > 6 {
			return &ValidationError{Reason: fmt.Sprintf("day %d out of range [0,6]", d)}
		}
	}
	if s.StartDate != nil && s.EndDate != nil && s.EndDate.Before(*s.StartDate) {
		return &ValidationError{Reason: "end date is before start date"}
	}
	return nil
}

// Expand produces every occurrence timestamp of the schedule inside the
// generation window, strictly ascending. The effective window is the
// intersection of [windowStart, windowEnd] with the schedule's own date
// range; a missing end date is capped at windowStart + DefaultWindowDays.
// An empty intersection yields an empty sequence. Timestamps in the past
// are still emitted; the resulting reminders simply show up overdue.
func Expand(s *model.MedicationSchedule, windowStart, windowEnd time.Time, loc *time.Location) []time.Time {
	start := dateOnly(windowStart, loc)
	end := dateOnly(windowEnd, loc)

	if s.StartDate != nil {
		if sd := dateOnly(*s.StartDate, loc); sd.After(start) {
			start = sd
		}
	}
	cap := dateOnly(windowStart, loc).AddDate(0, 0, DefaultWindowDays)
	if s.EndDate != nil {
		cap = dateOnly(*s.EndDate, loc)
	}
	if cap.Before(end) {
		end = cap
	}

	if end.Before(start) {
		return nil
	}

	// Sort and deduplicate so a rule submitted as [8,8,20] emits each
	// occurrence once and the output stays strictly ascending.
	hours := append([]int(nil), s.Hours...)
	sort.Ints(hours)
	hours = slices.Compact(hours)

	var out []time.Time
	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		if !matchesWeekday(s.DaysOfWeek, day) {
			continue
		}
		for _, h := range hours {
			out = append(out, time.Date(day.Year(), day.Month(), day.Day(), h, 0, 0, 0, loc))
		}
	}
	return out
}

// matchesWeekday reports whether the day passes the weekday filter. An empty
// filter means every day. Weekdays are indexed 0=Monday .. 6=Sunday.
func matchesWeekday(daysOfWeek []int, day time.Time) bool {
	if len(daysOfWeek) == 0 {
		return true
	}
	weekday := (int(day.Weekday()) + 6) % 7
	for _, d := range daysOfWeek {
		if d == weekday {
			return true
		}
	}
	return false
}

func dateOnly(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}
