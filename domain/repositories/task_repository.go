package repositories

import (
	"context"

	"github.com/google/uuid"

	"taskboard/domain/models"
)

type TaskRepository interface {
	Create(ctx context.Context, task *models.Task) error

	// ListVisible returns the caller's visible task set under the given
	// filter, newest-created first. Pure read, no side effects.
	ListVisible(ctx context.Context, userID uuid.UUID, filter models.TaskFilter) ([]*models.Task, error)

	// UpdateOwned applies a partial update to a task the caller owns,
	// refreshing updated_at, and returns the post-update row. Fails with
	// apperrors.ErrNotFoundOrUnauthorized when no task with that id is owned
	// by userID. Ownership check and update run in one transaction.
	UpdateOwned(ctx context.Context, taskID, userID uuid.UUID, update models.TaskUpdate) (*models.Task, error)

	// DeleteOwned removes a task the caller owns together with all of its
	// share rows, atomically.
	DeleteOwned(ctx context.Context, taskID, userID uuid.UUID) error

	// ShareOwned grants visibility of an owned task to the user behind
	// email. Granting twice is a no-op. Fails with
	// apperrors.ErrNotFoundOrUnauthorized when the caller does not own the
	// task and apperrors.ErrUserNotFound when email resolves to no user;
	// neither failure creates anything.
	ShareOwned(ctx context.Context, taskID, ownerID uuid.UUID, email string) error
}
