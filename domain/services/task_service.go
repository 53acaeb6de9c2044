package services

import (
	"context"

	"github.com/google/uuid"

	"taskboard/domain/dto"
	"taskboard/domain/models"
)

type TaskService interface {
	CreateTask(ctx context.Context, ownerID uuid.UUID, req *dto.CreateTaskRequest) (*models.Task, error)
	ListTasks(ctx context.Context, userID uuid.UUID, filter models.TaskFilter) ([]*models.Task, error)
	UpdateTask(ctx context.Context, taskID, userID uuid.UUID, update models.TaskUpdate) (*models.Task, error)
	DeleteTask(ctx context.Context, taskID, userID uuid.UUID) error
	ShareTask(ctx context.Context, taskID, ownerID uuid.UUID, email string) error
}
