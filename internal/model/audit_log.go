package model

import "github.com/google/uuid"

// AuditLog records who did what to which entity. Rows are append-only and
// only removed by the admin clear-data operation.
type AuditLog struct {
	BaseModel
	UserID   uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	User     *User     `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Action   string    `gorm:"type:varchar(50);not null;index" json:"action"`
	Entity   string    `gorm:"type:varchar(50);not null" json:"entity"`
	EntityID string    `gorm:"type:varchar(255)" json:"entity_id,omitempty"`
	Details  string    `gorm:"type:text" json:"details,omitempty"` // serialized JSON payload
}
