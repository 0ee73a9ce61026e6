package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"eldercare-backend/internal/model"
	"eldercare-backend/internal/report"
)

// ErrNotFound is returned when a referenced row does not exist. Handlers map
// it to a 404.
var ErrNotFound = errors.New("record not found")

// ClassifyFunc resolves one occurrence into an intake status. Injected so
// the store stays free of classification policy.
type ClassifyFunc func(scheduledAt time.Time, takenAt *time.Time) (model.IntakeStatus, error)

// Store defines the persistence operations the scheduling and reporting
// cores depend on. Thin CRUD handlers talk to gorm directly; everything with
// a transaction boundary or a core contract lives here.
type Store interface {
	DB() *gorm.DB

	GetSenior(ctx context.Context, id int64) (*model.Senior, error)
	GetMedication(ctx context.Context, id int64) (*model.Medication, error)
	ListMedications(ctx context.Context, seniorID int64) ([]model.Medication, error)
	CreateMedication(ctx context.Context, med *model.Medication) error
	CreateSchedule(ctx context.Context, sched *model.MedicationSchedule) error

	// ReplaceWindowReminders deletes the medication's PENDING reminders
	// inside the window and inserts the fresh batch in one transaction.
	ReplaceWindowReminders(ctx context.Context, medicationID int64, windowStart, windowEnd time.Time, reminders []model.Reminder) (int, error)

	CompleteReminder(ctx context.Context, reminderID, actorUserID int64, now time.Time, classify ClassifyFunc) (*model.Reminder, error)
	SkipReminder(ctx context.Context, reminderID, actorUserID int64, now time.Time) (*model.Reminder, error)

	SaveIntakeLog(ctx context.Context, log *model.IntakeLog) error
	ListIntakeLogs(ctx context.Context, seniorID int64, from, to time.Time) ([]model.IntakeLog, error)

	ListAppointments(ctx context.Context, seniorID int64, from, to time.Time) ([]model.Appointment, error)
	ListReminders(ctx context.Context, seniorID int64, from, to time.Time) ([]model.Reminder, error)
	CareTeamActivity(ctx context.Context, seniorID int64, from, to time.Time) ([]report.CareTeamActivity, error)

	// ScheduledMedicationIDs lists every medication that has at least one
	// recurrence rule, for the horizon roll.
	ScheduledMedicationIDs(ctx context.Context) ([]int64, error)

	// OverdueMedicationReminders returns PENDING medication-linked reminders
	// whose occurrence window elapsed before cutoff and which have no intake
	// log yet for their (medication, scheduled time) pair.
	OverdueMedicationReminders(ctx context.Context, cutoff time.Time) ([]model.Reminder, error)
	PendingRemindersBetween(ctx context.Context, from, to time.Time) ([]model.Reminder, error)

	RecordAudit(ctx context.Context, actorUserID *int64, action, entity, entityID string) error
}

// gormStore implements the Store interface using GORM.
type gormStore struct {
	db *gorm.DB
}

// NewGormStore creates a new GORM-backed store.
func NewGormStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

func (s *gormStore) DB() *gorm.DB { return s.db }

func (s *gormStore) GetSenior(ctx context.Context, id int64) (*model.Senior, error) {
	var senior model.Senior
	if err := s.db.WithContext(ctx).First(&senior, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load senior %d: %w", id, err)
	}
	return &senior, nil
}

func (s *gormStore) GetMedication(ctx context.Context, id int64) (*model.Medication, error) {
	var med model.Medication
	if err := s.db.WithContext(ctx).Preload("Schedules").First(&med, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load medication %d: %w", id, err)
	}
	return &med, nil
}

func (s *gormStore) ListMedications(ctx context.Context, seniorID int64) ([]model.Medication, error) {
	var meds []model.Medication
	err := s.db.WithContext(ctx).
		Preload("Schedules").
		Where("senior_id = ?", seniorID).
		Order("name ASC").
		Find(&meds).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list medications for senior %d: %w", seniorID, err)
	}
	return meds, nil
}

func (s *gormStore) CreateMedication(ctx context.Context, med *model.Medication) error {
	if err := s.db.WithContext(ctx).Create(med).Error; err != nil {
		return fmt.Errorf("failed to create medication: %w", err)
	}
	return nil
}

func (s *gormStore) CreateSchedule(ctx context.Context, sched *model.MedicationSchedule) error {
	if err := s.db.WithContext(ctx).Create(sched).Error; err != nil {
		return fmt.Errorf("failed to create schedule: %w", err)
	}
	return nil
}

// ReplaceWindowReminders implements the delete-and-regenerate idempotency
// policy: re-materializing the same window never duplicates reminders.
// Pending rows in the window are replaced; an occurrence whose reminder was
// already resolved keeps that row and is not recreated, so a dose completed
// or skipped earlier in the window never gains a second pending twin.
func (s *gormStore) ReplaceWindowReminders(ctx context.Context, medicationID int64, windowStart, windowEnd time.Time, reminders []model.Reminder) (int, error) {
	created := 0
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Where("medication_id = ? AND status = ? AND scheduled_at >= ? AND scheduled_at <= ?",
				medicationID, model.ReminderPending, windowStart, windowEnd).
			Delete(&model.Reminder{}).Error; err != nil {
			return fmt.Errorf("failed to clear window for medication %d: %w", medicationID, err)
		}
		if len(reminders) == 0 {
			return nil
		}

		var resolved []time.Time
		if err := tx.Model(&model.Reminder{}).
			Where("medication_id = ? AND status <> ? AND scheduled_at >= ? AND scheduled_at <= ?",
				medicationID, model.ReminderPending, windowStart, windowEnd).
			Pluck("scheduled_at", &resolved).Error; err != nil {
			return fmt.Errorf("failed to load resolved occurrences for medication %d: %w", medicationID, err)
		}
		taken := make(map[int64]struct{}, len(resolved))
		for _, at := range resolved {
			taken[at.UnixNano()] = struct{}{}
		}

		fresh := make([]model.Reminder, 0, len(reminders))
		for _, r := range reminders {
			if _, done := taken[r.ScheduledAt.UnixNano()]; done {
				continue
			}
			fresh = append(fresh, r)
		}
		created = len(fresh)
		if created == 0 {
			return nil
		}
		if err := tx.Create(&fresh).Error; err != nil {
			return fmt.Errorf("failed to create reminders for medication %d: %w", medicationID, err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return created, nil
}

// CompleteReminder marks a reminder DONE and, when it is medication-linked,
// writes the classified intake log in the same transaction.
func (s *gormStore) CompleteReminder(ctx context.Context, reminderID, actorUserID int64, now time.Time, classify ClassifyFunc) (*model.Reminder, error) {
	var reminder model.Reminder
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&reminder, reminderID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return fmt.Errorf("failed to load reminder %d: %w", reminderID, err)
		}
		if reminder.Status != model.ReminderPending {
			return fmt.Errorf("reminder %d already resolved: %w", reminderID, ErrAlreadyResolved)
		}

		reminder.Status = model.ReminderDone
		reminder.DoneAt = &now
		reminder.ActorUserID = &actorUserID
		if err := tx.Save(&reminder).Error; err != nil {
			return fmt.Errorf("failed to update reminder %d: %w", reminderID, err)
		}

		if reminder.MedicationID == nil {
			return nil
		}
		status, err := classify(reminder.ScheduledAt, &now)
		if err != nil {
			return err
		}
		intake := model.IntakeLog{
			SeniorID:     reminder.SeniorID,
			MedicationID: *reminder.MedicationID,
			ScheduledAt:  reminder.ScheduledAt,
			TakenAt:      &now,
			Status:       status,
			ActorUserID:  &actorUserID,
		}
		if err := tx.Create(&intake).Error; err != nil {
			return fmt.Errorf("failed to log intake for reminder %d: %w", reminderID, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &reminder, nil
}

// ErrAlreadyResolved is returned when a terminal reminder is completed or
// skipped again; each occurrence maps to at most one intake log.
var ErrAlreadyResolved = errors.New("reminder already resolved")

// SkipReminder cancels a reminder on the user's explicit decision and, when
// medication-linked, records a SKIPPED intake log.
func (s *gormStore) SkipReminder(ctx context.Context, reminderID, actorUserID int64, now time.Time) (*model.Reminder, error) {
	var reminder model.Reminder
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&reminder, reminderID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return fmt.Errorf("failed to load reminder %d: %w", reminderID, err)
		}
		if reminder.Status != model.ReminderPending {
			return fmt.Errorf("reminder %d already resolved: %w", reminderID, ErrAlreadyResolved)
		}

		reminder.Status = model.ReminderCancelled
		reminder.ActorUserID = &actorUserID
		if err := tx.Save(&reminder).Error; err != nil {
			return fmt.Errorf("failed to update reminder %d: %w", reminderID, err)
		}

		if reminder.MedicationID == nil {
			return nil
		}
		intake := model.IntakeLog{
			SeniorID:     reminder.SeniorID,
			MedicationID: *reminder.MedicationID,
			ScheduledAt:  reminder.ScheduledAt,
			Status:       model.IntakeSkipped,
			ActorUserID:  &actorUserID,
		}
		if err := tx.Create(&intake).Error; err != nil {
			return fmt.Errorf("failed to log skipped intake for reminder %d: %w", reminderID, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &reminder, nil
}

func (s *gormStore) SaveIntakeLog(ctx context.Context, log *model.IntakeLog) error {
	if err := s.db.WithContext(ctx).Create(log).Error; err != nil {
		return fmt.Errorf("failed to save intake log: %w", err)
	}
	return nil
}

func (s *gormStore) ListIntakeLogs(ctx context.Context, seniorID int64, from, to time.Time) ([]model.IntakeLog, error) {
	var logs []model.IntakeLog
	err := s.db.WithContext(ctx).
		Where("senior_id = ? AND scheduled_at >= ? AND scheduled_at <= ?", seniorID, from, to).
		Order("scheduled_at ASC").
		Find(&logs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list intake logs for senior %d: %w", seniorID, err)
	}
	return logs, nil
}

func (s *gormStore) ListAppointments(ctx context.Context, seniorID int64, from, to time.Time) ([]model.Appointment, error) {
	var appts []model.Appointment
	err := s.db.WithContext(ctx).
		Where("senior_id = ? AND starts_at >= ? AND starts_at <= ?", seniorID, from, to).
		Order("starts_at ASC").
		Find(&appts).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list appointments for senior %d: %w", seniorID, err)
	}
	return appts, nil
}

func (s *gormStore) ListReminders(ctx context.Context, seniorID int64, from, to time.Time) ([]model.Reminder, error) {
	var reminders []model.Reminder
	err := s.db.WithContext(ctx).
		Where("senior_id = ? AND scheduled_at >= ? AND scheduled_at <= ?", seniorID, from, to).
		Order("scheduled_at ASC").
		Find(&reminders).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list reminders for senior %d: %w", seniorID, err)
	}
	return reminders, nil
}

// CareTeamActivity counts audit-log actions per care-team member inside the
// period and reports each member's last recorded action.
func (s *gormStore) CareTeamActivity(ctx context.Context, seniorID int64, from, to time.Time) ([]report.CareTeamActivity, error) {
	var members []model.CareTeamMember
	err := s.db.WithContext(ctx).
		Preload("User").
		Where("senior_id = ?", seniorID).
		Find(&members).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load care team for senior %d: %w", seniorID, err)
	}

	activities := make([]report.CareTeamActivity, 0, len(members))
	for _, member := range members {
		var count int64
		err := s.db.WithContext(ctx).
			Model(&model.AuditLog{}).
			Where("actor_user_id = ? AND created_at >= ? AND created_at <= ?", member.UserID, from, to).
			Count(&count).Error
		if err != nil {
			return nil, fmt.Errorf("failed to count actions for user %d: %w", member.UserID, err)
		}

		var last *time.Time
		var latest model.AuditLog
		err = s.db.WithContext(ctx).
			Where("actor_user_id = ? AND created_at >= ? AND created_at <= ?", member.UserID, from, to).
			Order("created_at DESC").
			First(&latest).Error
		if err == nil {
			last = &latest.CreatedAt
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("failed to load last action for user %d: %w", member.UserID, err)
		}

		activities = append(activities, report.CareTeamActivity{
			UserID:       member.UserID,
			UserName:     member.User.FullName,
			Role:         member.MembershipRole,
			ActionsCount: int(count),
			LastActivity: last,
		})
	}
	return activities, nil
}

func (s *gormStore) ScheduledMedicationIDs(ctx context.Context) ([]int64, error) {
	var ids []int64
	err := s.db.WithContext(ctx).
		Model(&model.MedicationSchedule{}).
		Distinct().
		Pluck("medication_id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list scheduled medications: %w", err)
	}
	return ids, nil
}

func (s *gormStore) OverdueMedicationReminders(ctx context.Context, cutoff time.Time) ([]model.Reminder, error) {
	var reminders []model.Reminder
	err := s.db.WithContext(ctx).
		Where("status = ? AND medication_id IS NOT NULL AND scheduled_at < ?", model.ReminderPending, cutoff).
		Where("NOT EXISTS (SELECT 1 FROM intake_logs il WHERE il.medication_id = reminders.medication_id AND il.scheduled_at = reminders.scheduled_at)").
		Order("scheduled_at ASC").
		Find(&reminders).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list overdue reminders: %w", err)
	}
	return reminders, nil
}

func (s *gormStore) PendingRemindersBetween(ctx context.Context, from, to time.Time) ([]model.Reminder, error) {
	var reminders []model.Reminder
	err := s.db.WithContext(ctx).
		Where("status = ? AND scheduled_at > ? AND scheduled_at <= ?", model.ReminderPending, from, to).
		Order("scheduled_at ASC").
		Find(&reminders).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list due reminders: %w", err)
	}
	return reminders, nil
}

func (s *gormStore) RecordAudit(ctx context.Context, actorUserID *int64, action, entity, entityID string) error {
	entry := model.AuditLog{
		ActorUserID: actorUserID,
		Action:      action,
		Entity:      entity,
		EntityID:    entityID,
	}
	if err := s.db.WithContext(ctx).Create(&entry).Error; err != nil {
		return fmt.Errorf("failed to record audit entry: %w", err)
	}
	return nil
}
