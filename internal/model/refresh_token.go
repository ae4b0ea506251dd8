package model

import (
	"time"

	"github.com/google/uuid"
)

// RefreshToken is the server-side record of an issued refresh token,
// keyed by the token value so logout can revoke it. Rows are deleted on
// logout or left to expire; there is no rotation.
type RefreshToken struct {
	Token     string    `gorm:"type:varchar(512);primaryKey" json:"token"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	ExpiresAt time.Time `gorm:"not null" json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}

// Expired reports whether the stored token is past its lifetime.
func (t *RefreshToken) Expired(now time.Time) bool {
	return now.After(t.ExpiresAt)
}
