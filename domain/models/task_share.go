package models

import (
	"time"

	"github.com/google/uuid"
)

// TaskShare grants a non-owner read visibility of a task.
// At most one row exists per (task_id, user_id); the owner is never
// represented as a share row for their own task.
type TaskShare struct {
	ID        uuid.UUID `gorm:"primaryKey;type:uuid"`
	TaskID    uuid.UUID `gorm:"not null;uniqueIndex:idx_task_shares_task_user"`
	UserID    uuid.UUID `gorm:"not null;uniqueIndex:idx_task_shares_task_user"`
	CreatedAt time.Time
}

func (TaskShare) TableName() string {
	return "task_shares"
}
