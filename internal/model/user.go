package model

import "time"

// UserRole is the system-wide role of an account.
type UserRole string

const (
	RoleAdmin     UserRole = "ADMIN"
	RoleDoctor    UserRole = "DOCTOR"
	RoleCaregiver UserRole = "CAREGIVER"
	RoleFamily    UserRole = "FAMILY"
	RoleSenior    UserRole = "SENIOR"
)

// User represents an account that can log in.
type User struct {
	ID           int64     `gorm:"primaryKey" json:"id"`
	FullName     string    `gorm:"size:120;not null" json:"full_name"`
	Email        string    `gorm:"size:255;uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"size:255;not null" json:"-"`
	Role         UserRole  `gorm:"size:20;index;not null" json:"role"`
	IsActive     bool      `gorm:"not null;default:true" json:"is_active"`
	CreatedAt    time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt    time.Time `gorm:"not null" json:"updated_at"`
}
