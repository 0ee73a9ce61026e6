package model

import "time"

// AppointmentStatus tracks the outcome of a medical appointment.
type AppointmentStatus string

const (
	AppointmentScheduled AppointmentStatus = "SCHEDULED"
	AppointmentCompleted AppointmentStatus = "COMPLETED"
	AppointmentCancelled AppointmentStatus = "CANCELLED"
	AppointmentMissed    AppointmentStatus = "MISSED"
)

// Appointment is a medical appointment for a senior.
type Appointment struct {
	ID           int64             `gorm:"primaryKey" json:"id"`
	SeniorID     int64             `gorm:"index;not null" json:"senior_id"`
	DoctorUserID int64             `gorm:"index;not null" json:"doctor_user_id"`
	StartsAt     time.Time         `gorm:"index;not null" json:"starts_at"`
	Location     string            `gorm:"size:200" json:"location,omitempty"`
	Reason       string            `gorm:"size:200" json:"reason,omitempty"`
	Status       AppointmentStatus `gorm:"size:20;not null;default:SCHEDULED" json:"status"`
	CreatedAt    time.Time         `gorm:"not null" json:"created_at"`
	UpdatedAt    time.Time         `gorm:"not null" json:"updated_at"`

	// Associations
	Notes []AppointmentNote `gorm:"foreignKey:AppointmentID;constraint:OnDelete:CASCADE" json:"notes,omitempty"`
}

// AppointmentNote is a free-form note attached to an appointment.
type AppointmentNote struct {
	ID            int64     `gorm:"primaryKey" json:"id"`
	AppointmentID int64     `gorm:"index;not null" json:"appointment_id"`
	AuthorUserID  int64     `gorm:"index;not null" json:"author_user_id"`
	Note          string    `gorm:"type:text;not null" json:"note"`
	CreatedAt     time.Time `gorm:"not null" json:"created_at"`
}
