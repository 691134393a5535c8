package models

import (
	"crypto/rand"
	"encoding/hex"
	"time"

	"gorm.io/gorm"
)

// PasswordReset is a one-time token mailed to an admin for resetting a
// forgotten password.
type PasswordReset struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	UserID    uint           `json:"user_id" gorm:"index;not null"`
	Token     string         `json:"-" gorm:"uniqueIndex;size:64;not null"`
	ExpiresAt time.Time      `json:"expires_at" gorm:"not null"`
	Used      bool           `json:"used" gorm:"default:false"`
	CreatedAt time.Time      `json:"created_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

// TableName sets the table name.
func (PasswordReset) TableName() string {
	return "password_resets"
}

// NewResetToken returns a random 64-char hex token.
func NewResetToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// Valid reports whether the token can still be used.
func (p *PasswordReset) Valid(now time.Time) bool {
	return !p.Used && now.Before(p.ExpiresAt)
}
