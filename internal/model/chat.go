package model

import "time"

// Conversation groups chat messages around one senior, optionally pinned to
// a doctor.
type Conversation struct {
	ID           int64     `gorm:"primaryKey" json:"id"`
	SeniorID     int64     `gorm:"index;not null" json:"senior_id"`
	DoctorUserID *int64    `gorm:"index" json:"doctor_user_id,omitempty"`
	Status       string    `gorm:"size:20;not null;default:OPEN" json:"status"`
	CreatedAt    time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt    time.Time `gorm:"not null" json:"updated_at"`

	// Associations
	Messages []Message `gorm:"foreignKey:ConversationID;constraint:OnDelete:CASCADE" json:"-"`
}

// Message is one chat message inside a conversation.
type Message struct {
	ID             int64      `gorm:"primaryKey" json:"id"`
	ConversationID int64      `gorm:"index;not null" json:"conversation_id"`
	SenderUserID   int64      `gorm:"index;not null" json:"sender_user_id"`
	Content        string     `gorm:"type:text;not null" json:"content"`
	SentAt         time.Time  `gorm:"not null" json:"sent_at"`
	ReadAt         *time.Time `json:"read_at,omitempty"`
	CreatedAt      time.Time  `gorm:"not null" json:"created_at"`
}
