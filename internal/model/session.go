package model

import "time"

// Session binds an authenticated user to a single device fingerprint.
// The exclusive-active invariant (at most one row per user with
// is_active=true) is enforced by a partial unique index created in the
// migration step, not by application-level checks.
type Session struct {
	ID          string    `gorm:"type:uuid;primarykey" json:"id"`
	UserID      uint      `json:"user_id" gorm:"not null;index"`
	User        User      `json:"-" gorm:"foreignKey:UserID"`
	Fingerprint string    `json:"-" gorm:"not null"`
	Token       string    `json:"-" gorm:"not null;uniqueIndex"`
	IPAddress   string    `json:"ip_address,omitempty"`
	UserAgent   string    `json:"user_agent,omitempty" gorm:"type:text"`
	IsActive    bool      `json:"is_active" gorm:"not null;index"`
	ExpiresAt   time.Time `json:"expires_at" gorm:"not null"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
