package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	StatusPending    = "pending"
	StatusInProgress = "in_progress"
	StatusCompleted  = "completed"
)

type Task struct {
	ID          uuid.UUID `gorm:"primaryKey;type:uuid"`
	Title       string    `gorm:"not null"`
	Description string
	Status      string    `gorm:"default:'pending'"`
	OwnerID     uuid.UUID `gorm:"column:created_by;not null"`
	Owner       User      `gorm:"foreignKey:OwnerID"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (Task) TableName() string {
	return "tasks"
}

// TaskUpdate carries a partial update. Nil fields keep their prior value;
// supplied fields overwrite, including explicit empty strings.
type TaskUpdate struct {
	Title       *string
	Description *string
	Status      *string
}

// TaskFilter selects which slice of the visible task set a listing returns.
type TaskFilter string

const (
	FilterAll    TaskFilter = "all"    // owned or shared, deduplicated
	FilterMy     TaskFilter = "my"     // owned only
	FilterShared TaskFilter = "shared" // shared with the caller only
)

// ParseTaskFilter defaults to FilterAll for empty or unknown values, matching
// the listing endpoint's behavior.
func ParseTaskFilter(s string) TaskFilter {
	switch TaskFilter(s) {
	case FilterMy:
		return FilterMy
	case FilterShared:
		return FilterShared
	default:
		return FilterAll
	}
}
