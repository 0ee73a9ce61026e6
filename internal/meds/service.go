package meds

import (
	"context"
	"fmt"
	"time"

	"eldercare-backend/internal/clock"
	"eldercare-backend/internal/model"
	"eldercare-backend/internal/schedule"
	"eldercare-backend/internal/store"
)

// Service owns the medication schedule lifecycle: validating recurrence
// rules, materializing reminders and recording intakes.
type Service struct {
	store store.Store
	clk   clock.Clock
}

func NewService(st store.Store, clk clock.Clock) *Service {
	return &Service{store: st, clk: clk}
}

// AddSchedule validates and persists a recurrence rule for a medication,
// then materializes reminders for the default window starting now. Returns
// the stored schedule and the number of reminders created.
func (s *Service) AddSchedule(ctx context.Context, medicationID int64, sched *model.MedicationSchedule) (*model.MedicationSchedule, int, error) {
	med, err := s.store.GetMedication(ctx, medicationID)
	if err != nil {
		return nil, 0, err
	}

	sched.MedicationID = med.ID
	if err := schedule.Validate(sched); err != nil {
		return nil, 0, err
	}
	if err := s.store.CreateSchedule(ctx, sched); err != nil {
		return nil, 0, err
	}

	now := s.clk.Now()
	count, err := s.materialize(ctx, med, []model.MedicationSchedule{*sched}, now, now.AddDate(0, 0, schedule.DefaultWindowDays))
	if err != nil {
		return nil, 0, err
	}
	return sched, count, nil
}

// Materialize regenerates the medication's reminders for the given window
// from all of its schedules. Safe to call repeatedly: pending reminders in
// the window are replaced, while occurrences already resolved keep their
// reminder and are not regenerated.
func (s *Service) Materialize(ctx context.Context, medicationID int64, windowStart, windowEnd time.Time) (int, error) {
	med, err := s.store.GetMedication(ctx, medicationID)
	if err != nil {
		return 0, err
	}
	return s.materialize(ctx, med, med.Schedules, windowStart, windowEnd)
}

func (s *Service) materialize(ctx context.Context, med *model.Medication, schedules []model.MedicationSchedule, windowStart, windowEnd time.Time) (int, error) {
	loc := s.clk.Location()

	// Expansion is day-granular, so an occurrence can precede windowStart
	// within its first day. Replace over full day bounds to keep repeated
	// materialization from duplicating those.
	ws := windowStart.In(loc)
	replaceFrom := time.Date(ws.Year(), ws.Month(), ws.Day(), 0, 0, 0, 0, loc)
	we := windowEnd.In(loc)
	replaceTo := time.Date(we.Year(), we.Month(), we.Day(), 23, 59, 59, 0, loc)

	var reminders []model.Reminder
	for i := range schedules {
		sched := schedules[i]
		if err := schedule.Validate(&sched); err != nil {
			return 0, err
		}
		for _, at := range schedule.Expand(&sched, windowStart, windowEnd, loc) {
			reminders = append(reminders, model.Reminder{
				SeniorID:     med.SeniorID,
				MedicationID: &med.ID,
				Title:        fmt.Sprintf("Take %s", med.Name),
				Description:  describeDose(med),
				ScheduledAt:  at,
				Status:       model.ReminderPending,
			})
		}
	}
	return s.store.ReplaceWindowReminders(ctx, med.ID, replaceFrom, replaceTo, reminders)
}

func describeDose(med *model.Medication) string {
	desc := fmt.Sprintf("%s %s", med.Dose, med.Unit)
	if med.Notes != "" {
		desc += ". " + med.Notes
	}
	return desc
}

// RecordIntake classifies and stores a manually reported intake for one
// occurrence. TakenAt defaults to now when the caller reports taking the
// dose without a timestamp.
func (s *Service) RecordIntake(ctx context.Context, medicationID int64, scheduledAt time.Time, takenAt *time.Time, actorUserID int64) (*model.IntakeLog, error) {
	med, err := s.store.GetMedication(ctx, medicationID)
	if err != nil {
		return nil, err
	}

	status, err := schedule.Classify(scheduledAt, takenAt, s.clk.Now())
	if err != nil {
		return nil, err
	}

	log := &model.IntakeLog{
		SeniorID:     med.SeniorID,
		MedicationID: med.ID,
		ScheduledAt:  scheduledAt,
		TakenAt:      takenAt,
		Status:       status,
		ActorUserID:  &actorUserID,
	}
	if err := s.store.SaveIntakeLog(ctx, log); err != nil {
		return nil, err
	}
	return log, nil
}

// CompleteReminder marks a reminder done at the current time. Medication
// reminders get their intake classified against the scheduled time.
func (s *Service) CompleteReminder(ctx context.Context, reminderID, actorUserID int64) (*model.Reminder, error) {
	now := s.clk.Now()
	return s.store.CompleteReminder(ctx, reminderID, actorUserID, now,
		func(scheduledAt time.Time, takenAt *time.Time) (model.IntakeStatus, error) {
			return schedule.Classify(scheduledAt, takenAt, now)
		})
}

// SkipReminder cancels a reminder on the user's explicit decision; for
// medication reminders the occurrence is recorded as SKIPPED.
func (s *Service) SkipReminder(ctx context.Context, reminderID, actorUserID int64) (*model.Reminder, error) {
	return s.store.SkipReminder(ctx, reminderID, actorUserID, s.clk.Now())
}
