package ports

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Task lifecycle event types.
const (
	TaskCreated = "created"
	TaskUpdated = "updated"
	TaskDeleted = "deleted"
	TaskShared  = "shared"
)

type TaskEvent struct {
	Type        string    `json:"type"`
	TaskID      uuid.UUID `json:"taskId"`
	ActorID     uuid.UUID `json:"actorId"`
	TargetEmail string    `json:"targetEmail,omitempty"` // share grants only
	At          time.Time `json:"at"`
}

// EventPublisher fans task lifecycle events out to interested consumers.
// Publishing is best effort: request handling never fails on a publish error.
type EventPublisher interface {
	PublishTaskEvent(ctx context.Context, event *TaskEvent) error
}
