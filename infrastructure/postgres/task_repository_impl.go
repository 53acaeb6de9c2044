package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"taskboard/domain/apperrors"
	"taskboard/domain/models"
	"taskboard/domain/repositories"
)

type TaskRepositoryImpl struct {
	db *gorm.DB
}

func NewTaskRepository(db *gorm.DB) repositories.TaskRepository {
	return &TaskRepositoryImpl{db: db}
}

func (r *TaskRepositoryImpl) Create(ctx context.Context, task *models.Task) error {
	return r.db.WithContext(ctx).Create(task).Error
}

// sharedWith builds the membership subquery for tasks shared with userID.
// Filtering by id membership instead of an outer join keeps result rows
// deduplicated by primary key, so a task shared with several users can never
// appear twice in a listing.
func (r *TaskRepositoryImpl) sharedWith(userID uuid.UUID) *gorm.DB {
	return r.db.Model(&models.TaskShare{}).Select("task_id").Where("user_id = ?", userID)
}

func (r *TaskRepositoryImpl) ListVisible(ctx context.Context, userID uuid.UUID, filter models.TaskFilter) ([]*models.Task, error) {
	var tasks []*models.Task

	q := r.db.WithContext(ctx).Order("created_at DESC")
	switch filter {
	case models.FilterMy:
		q = q.Where("created_by = ?", userID)
	case models.FilterShared:
		q = q.Where("id IN (?)", r.sharedWith(userID))
	default:
		q = q.Where("created_by = ? OR id IN (?)", userID, r.sharedWith(userID))
	}

	err := q.Find(&tasks).Error
	return tasks, err
}

// getOwned loads a task only when userID owns it. Absence and foreign
// ownership collapse into ErrNotFoundOrUnauthorized.
func getOwned(tx *gorm.DB, taskID, userID uuid.UUID) (*models.Task, error) {
	var task models.Task
	err := tx.Where("id = ? AND created_by = ?", taskID, userID).First(&task).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFoundOrUnauthorized
		}
		return nil, err
	}
	return &task, nil
}

func (r *TaskRepositoryImpl) UpdateOwned(ctx context.Context, taskID, userID uuid.UUID, update models.TaskUpdate) (*models.Task, error) {
	var updated *models.Task
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		task, err := getOwned(tx, taskID, userID)
		if err != nil {
			return err
		}

		if update.Title != nil {
			task.Title = *update.Title
		}
		if update.Description != nil {
			task.Description = *update.Description
		}
		if update.Status != nil {
			task.Status = *update.Status
		}
		task.UpdatedAt = time.Now()

		if err := tx.Save(task).Error; err != nil {
			return err
		}
		updated = task
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (r *TaskRepositoryImpl) DeleteOwned(ctx context.Context, taskID, userID uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := getOwned(tx, taskID, userID); err != nil {
			return err
		}

		// Shares reference the task, so they go first.
		if err := tx.Where("task_id = ?", taskID).Delete(&models.TaskShare{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", taskID).Delete(&models.Task{}).Error
	})
}

func (r *TaskRepositoryImpl) ShareOwned(ctx context.Context, taskID, ownerID uuid.UUID, email string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := getOwned(tx, taskID, ownerID); err != nil {
			return err
		}

		var target models.User
		if err := tx.Where("email = ?", email).First(&target).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.ErrUserNotFound
			}
			return err
		}

		// The owner already has implicit full access and is never
		// represented as a share row for their own task.
		if target.ID == ownerID {
			return nil
		}

		share := models.TaskShare{
			ID:        uuid.New(),
			TaskID:    taskID,
			UserID:    target.ID,
			CreatedAt: time.Now(),
		}
		// Duplicate grants are no-ops, not errors.
		return tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&share).Error
	})
}
