package model

import "time"

// AuditLog records one mutating action. The care-team activity aggregation
// counts these rows per user.
type AuditLog struct {
	ID          int64     `gorm:"primaryKey" json:"id"`
	ActorUserID *int64    `gorm:"index" json:"actor_user_id,omitempty"`
	Action      string    `gorm:"size:50;not null" json:"action"` // e.g. CREATE, UPDATE, DELETE
	Entity      string    `gorm:"size:80;not null" json:"entity"` // e.g. "Medication"
	EntityID    string    `gorm:"size:80;not null" json:"entity_id"`
	CreatedAt   time.Time `gorm:"index;not null" json:"created_at"`
}
