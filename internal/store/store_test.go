package store

import (
	"context"
	"database/sql/driver"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"eldercare-backend/internal/model"
)

// A helper function to create a mock database connection.
func newTestDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		Conn: db,
	}), &gorm.Config{})
	require.NoError(t, err)

	return gormDB, mock
}

func TestGormStore_ReplaceWindowReminders(t *testing.T) {
	windowStart := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	windowEnd := windowStart.AddDate(0, 0, 7)
	medID := int64(42)

	testCases := []struct {
		name             string
		reminders        []model.Reminder
		mockExpectations func(mock sqlmock.Sqlmock)
		expectedCount    int
	}{
		{
			name: "Regenerating a window clears pending rows then inserts the batch",
			reminders: []model.Reminder{
				{SeniorID: 1, MedicationID: &medID, Title: "Take Metformin", ScheduledAt: windowStart.Add(8 * time.Hour), Status: model.ReminderPending},
				{SeniorID: 1, MedicationID: &medID, Title: "Take Metformin", ScheduledAt: windowStart.Add(20 * time.Hour), Status: model.ReminderPending},
			},
			mockExpectations: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "reminders"`)).
					WithArgs(medID, string(model.ReminderPending), Any{}, Any{}).
					WillReturnResult(sqlmock.NewResult(0, 3))
				mock.ExpectQuery(regexp.QuoteMeta(`SELECT "scheduled_at" FROM "reminders"`)).
					WithArgs(medID, string(model.ReminderPending), Any{}, Any{}).
					WillReturnRows(sqlmock.NewRows([]string{"scheduled_at"}))
				mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "reminders"`)).
					WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1).AddRow(2))
				mock.ExpectCommit()
			},
			expectedCount: 2,
		},
		{
			name: "Resolved occurrence keeps its row and is not recreated",
			reminders: []model.Reminder{
				{SeniorID: 1, MedicationID: &medID, Title: "Take Metformin", ScheduledAt: windowStart.Add(8 * time.Hour), Status: model.ReminderPending},
				{SeniorID: 1, MedicationID: &medID, Title: "Take Metformin", ScheduledAt: windowStart.Add(20 * time.Hour), Status: model.ReminderPending},
			},
			mockExpectations: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "reminders"`)).
					WithArgs(medID, string(model.ReminderPending), Any{}, Any{}).
					WillReturnResult(sqlmock.NewResult(0, 1))
				// The 08:00 dose was already marked done; only the evening
				// occurrence may be inserted.
				mock.ExpectQuery(regexp.QuoteMeta(`SELECT "scheduled_at" FROM "reminders"`)).
					WithArgs(medID, string(model.ReminderPending), Any{}, Any{}).
					WillReturnRows(sqlmock.NewRows([]string{"scheduled_at"}).
						AddRow(windowStart.Add(8 * time.Hour)))
				mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "reminders"`)).
					WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(2))
				mock.ExpectCommit()
			},
			expectedCount: 1,
		},
		{
			name:      "Empty batch only clears the window",
			reminders: nil,
			mockExpectations: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "reminders"`)).
					WithArgs(medID, string(model.ReminderPending), Any{}, Any{}).
					WillReturnResult(sqlmock.NewResult(0, 0))
				mock.ExpectCommit()
			},
			expectedCount: 0,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			gormDB, mock := newTestDB(t)
			store := NewGormStore(gormDB)

			tc.mockExpectations(mock)

			count, err := store.ReplaceWindowReminders(context.Background(), medID, windowStart, windowEnd, tc.reminders)

			assert.NoError(t, err)
			assert.Equal(t, tc.expectedCount, count)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestGormStore_CompleteReminder(t *testing.T) {
	now := time.Date(2025, 3, 10, 8, 30, 0, 0, time.UTC)
	scheduledAt := now.Add(-30 * time.Minute)
	medID := int64(42)

	classify := func(sched time.Time, taken *time.Time) (model.IntakeStatus, error) {
		return model.IntakeTaken, nil
	}

	reminderColumns := []string{"id", "senior_id", "title", "description", "scheduled_at", "status", "done_at", "medication_id", "actor_user_id", "created_at", "updated_at"}

	t.Run("Completing a medication reminder writes the intake log", func(t *testing.T) {
		gormDB, mock := newTestDB(t)
		store := NewGormStore(gormDB)

		mock.ExpectBegin()
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "reminders"`)).
			WillReturnRows(sqlmock.NewRows(reminderColumns).
				AddRow(7, 1, "Take Metformin", "", scheduledAt, string(model.ReminderPending), nil, medID, nil, now, now))
		mock.ExpectExec(regexp.QuoteMeta(`UPDATE "reminders"`)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "intake_logs"`)).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
		mock.ExpectCommit()

		reminder, err := store.CompleteReminder(context.Background(), 7, 99, now, classify)

		require.NoError(t, err)
		assert.Equal(t, model.ReminderDone, reminder.Status)
		require.NotNil(t, reminder.DoneAt)
		assert.Equal(t, now, *reminder.DoneAt)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Ad-hoc reminder completes without an intake log", func(t *testing.T) {
		gormDB, mock := newTestDB(t)
		store := NewGormStore(gormDB)

		mock.ExpectBegin()
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "reminders"`)).
			WillReturnRows(sqlmock.NewRows(reminderColumns).
				AddRow(8, 1, "Call the doctor", "", scheduledAt, string(model.ReminderPending), nil, nil, nil, now, now))
		mock.ExpectExec(regexp.QuoteMeta(`UPDATE "reminders"`)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		reminder, err := store.CompleteReminder(context.Background(), 8, 99, now, classify)

		require.NoError(t, err)
		assert.Equal(t, model.ReminderDone, reminder.Status)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Completing a resolved reminder fails and rolls back", func(t *testing.T) {
		gormDB, mock := newTestDB(t)
		store := NewGormStore(gormDB)

		doneAt := scheduledAt.Add(5 * time.Minute)
		mock.ExpectBegin()
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "reminders"`)).
			WillReturnRows(sqlmock.NewRows(reminderColumns).
				AddRow(9, 1, "Take Metformin", "", scheduledAt, string(model.ReminderDone), doneAt, medID, 99, now, now))
		mock.ExpectRollback()

		_, err := store.CompleteReminder(context.Background(), 9, 99, now, classify)

		assert.ErrorIs(t, err, ErrAlreadyResolved)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Unknown reminder returns ErrNotFound", func(t *testing.T) {
		gormDB, mock := newTestDB(t)
		store := NewGormStore(gormDB)

		mock.ExpectBegin()
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "reminders"`)).
			WillReturnRows(sqlmock.NewRows(reminderColumns))
		mock.ExpectRollback()

		_, err := store.CompleteReminder(context.Background(), 404, 99, now, classify)

		assert.ErrorIs(t, err, ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormStore_SkipReminder(t *testing.T) {
	now := time.Date(2025, 3, 10, 8, 30, 0, 0, time.UTC)
	scheduledAt := now.Add(-30 * time.Minute)
	medID := int64(42)

	reminderColumns := []string{"id", "senior_id", "title", "description", "scheduled_at", "status", "done_at", "medication_id", "actor_user_id", "created_at", "updated_at"}

	gormDB, mock := newTestDB(t)
	store := NewGormStore(gormDB)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "reminders"`)).
		WillReturnRows(sqlmock.NewRows(reminderColumns).
			AddRow(7, 1, "Take Metformin", "", scheduledAt, string(model.ReminderPending), nil, medID, nil, now, now))
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "reminders"`)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "intake_logs"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectCommit()

	reminder, err := store.SkipReminder(context.Background(), 7, 99, now)

	require.NoError(t, err)
	assert.Equal(t, model.ReminderCancelled, reminder.Status)
	assert.Nil(t, reminder.DoneAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// Any is a helper for sqlmock to match any argument.
type Any struct{}

// Match satisfies the sqlmock.Argument interface
func (a Any) Match(v driver.Value) bool {
	return true
}
