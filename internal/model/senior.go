package model

import "time"

// MembershipRole is a user's role within one senior's care team.
type MembershipRole string

const (
	MembershipSelf             MembershipRole = "SELF"
	MembershipDoctor           MembershipRole = "DOCTOR"
	MembershipNurse            MembershipRole = "NURSE"
	MembershipCaregiver        MembershipRole = "CAREGIVER"
	MembershipPrimaryCaregiver MembershipRole = "PRIMARY_CAREGIVER"
	MembershipFamily           MembershipRole = "FAMILY"
)

// Senior represents the person receiving care. It is the tenant boundary:
// medications, reminders, appointments and reports are all scoped by it.
type Senior struct {
	ID                    int64      `gorm:"primaryKey" json:"id"`
	FullName              string     `gorm:"size:120;not null" json:"full_name"`
	Birthdate             *time.Time `json:"birthdate,omitempty"`
	Conditions            string     `gorm:"type:text" json:"conditions,omitempty"`
	EmergencyContactName  string     `gorm:"size:120" json:"emergency_contact_name,omitempty"`
	EmergencyContactPhone string     `gorm:"size:40" json:"emergency_contact_phone,omitempty"`
	CreatedAt             time.Time  `gorm:"not null" json:"created_at"`
	UpdatedAt             time.Time  `gorm:"not null" json:"updated_at"`

	// Associations
	TeamMembers []CareTeamMember `gorm:"foreignKey:SeniorID" json:"-"`
}

// CareTeamMember links a user to a senior's care team.
type CareTeamMember struct {
	ID             int64          `gorm:"primaryKey" json:"id"`
	SeniorID       int64          `gorm:"index;not null;uniqueIndex:uq_care_team_senior_user" json:"senior_id"`
	UserID         int64          `gorm:"index;not null;uniqueIndex:uq_care_team_senior_user" json:"user_id"`
	MembershipRole MembershipRole `gorm:"size:20;not null" json:"membership_role"`
	CanView        bool           `gorm:"not null;default:true" json:"can_view"`
	CanEdit        bool           `gorm:"not null;default:false" json:"can_edit"`
	CreatedAt      time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt      time.Time      `gorm:"not null" json:"updated_at"`

	// Associations
	User User `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}

func (CareTeamMember) TableName() string { return "care_team" }
