package models

import (
	"time"

	"github.com/google/uuid"
)

// User is the local account record mapped to an identity-provider email.
// Rows are created lazily on first verified sight of an email and never deleted.
type User struct {
	ID        uuid.UUID `gorm:"primaryKey;type:uuid"`
	Email     string    `gorm:"uniqueIndex;not null"`
	CreatedAt time.Time
}

func (User) TableName() string {
	return "users"
}
