package model

import "time"

// IntakeStatus classifies one medication-taking event.
type IntakeStatus string

const (
	IntakeTaken   IntakeStatus = "TAKEN"
	IntakeLate    IntakeStatus = "LATE"
	IntakeMissed  IntakeStatus = "MISSED"
	IntakeSkipped IntakeStatus = "SKIPPED"
)

// Medication represents a prescribed medication for a senior.
type Medication struct {
	ID        int64     `gorm:"primaryKey" json:"id"`
	SeniorID  int64     `gorm:"index;not null" json:"senior_id"`
	Name      string    `gorm:"size:120;not null" json:"name"`
	Dose      string    `gorm:"size:40;not null" json:"dose"`
	Unit      string    `gorm:"size:20;not null" json:"unit"`
	Notes     string    `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`

	// Associations
	Schedules []MedicationSchedule `gorm:"foreignKey:MedicationID;constraint:OnDelete:CASCADE" json:"schedules,omitempty"`
}

// MedicationSchedule is a recurrence rule for one medication: hours of the
// day, optionally restricted to weekdays (0=Monday) and a date range.
type MedicationSchedule struct {
	ID           int64      `gorm:"primaryKey" json:"id"`
	MedicationID int64      `gorm:"index;not null" json:"medication_id"`
	StartDate    *time.Time `json:"start_date,omitempty"`
	EndDate      *time.Time `json:"end_date,omitempty"`
	Hours        []int      `gorm:"serializer:json;not null" json:"hours"`
	DaysOfWeek   []int      `gorm:"serializer:json" json:"days_of_week,omitempty"`
	CreatedAt    time.Time  `gorm:"not null" json:"created_at"`
	UpdatedAt    time.Time  `gorm:"not null" json:"updated_at"`
}

// IntakeLog is the immutable record of one occurrence's resolution. At most
// one log exists per (medication_id, scheduled_at) pair.
type IntakeLog struct {
	ID           int64        `gorm:"primaryKey" json:"id"`
	SeniorID     int64        `gorm:"index;not null" json:"senior_id"`
	MedicationID int64        `gorm:"index;not null" json:"medication_id"`
	ScheduledAt  time.Time    `gorm:"index;not null" json:"scheduled_at"`
	TakenAt      *time.Time   `json:"taken_at,omitempty"`
	Status       IntakeStatus `gorm:"size:10;index;not null" json:"status"`
	ActorUserID  *int64       `gorm:"index" json:"actor_user_id,omitempty"`
	CreatedAt    time.Time    `gorm:"not null" json:"created_at"`
}
