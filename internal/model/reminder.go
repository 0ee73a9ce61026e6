package model

import "time"

// ReminderStatus is the lifecycle state of a reminder. DONE and CANCELLED
// are terminal.
type ReminderStatus string

const (
	ReminderPending   ReminderStatus = "PENDING"
	ReminderDone      ReminderStatus = "DONE"
	ReminderCancelled ReminderStatus = "CANCELLED"
)

// Reminder is one concrete scheduled action for a senior. Medication-linked
// reminders are materialized from a schedule; ad-hoc reminders have no
// MedicationID.
type Reminder struct {
	ID           int64          `gorm:"primaryKey" json:"id"`
	SeniorID     int64          `gorm:"index;not null" json:"senior_id"`
	Title        string         `gorm:"size:120;not null" json:"title"`
	Description  string         `gorm:"type:text" json:"description,omitempty"`
	ScheduledAt  time.Time      `gorm:"index;not null" json:"scheduled_at"`
	Status       ReminderStatus `gorm:"size:10;index;not null;default:PENDING" json:"status"`
	DoneAt       *time.Time     `json:"done_at,omitempty"`
	MedicationID *int64         `gorm:"index" json:"medication_id,omitempty"`
	ActorUserID  *int64         `gorm:"index" json:"actor_user_id,omitempty"`
	CreatedAt    time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt    time.Time      `gorm:"not null" json:"updated_at"`
}
