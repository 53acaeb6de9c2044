package serviceimpl

import (
	"context"
	"time"

	"github.com/google/uuid"

	"taskboard/domain/dto"
	"taskboard/domain/models"
	"taskboard/domain/ports"
	"taskboard/domain/repositories"
	"taskboard/domain/services"
	"taskboard/pkg/logger"
)

type TaskServiceImpl struct {
	taskRepo repositories.TaskRepository
	events   ports.EventPublisher // nil disables event publishing
}

func NewTaskService(taskRepo repositories.TaskRepository, events ports.EventPublisher) services.TaskService {
	return &TaskServiceImpl{
		taskRepo: taskRepo,
		events:   events,
	}
}

// publish emits a lifecycle event without ever failing the request.
func (s *TaskServiceImpl) publish(ctx context.Context, eventType string, taskID, actorID uuid.UUID, targetEmail string) {
	if s.events == nil {
		return
	}
	event := &ports.TaskEvent{
		Type:        eventType,
		TaskID:      taskID,
		ActorID:     actorID,
		TargetEmail: targetEmail,
		At:          time.Now(),
	}
	if err := s.events.PublishTaskEvent(ctx, event); err != nil {
		logger.WarnContext(ctx, "Task event publish failed", "type", eventType, "task_id", taskID)
	}
}

func (s *TaskServiceImpl) CreateTask(ctx context.Context, ownerID uuid.UUID, req *dto.CreateTaskRequest) (*models.Task, error) {
	now := time.Now()
	task := &models.Task{
		ID:          uuid.New(),
		Title:       req.Title,
		Description: req.Description,
		Status:      models.StatusPending,
		OwnerID:     ownerID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.taskRepo.Create(ctx, task); err != nil {
		logger.ErrorContext(ctx, "Failed to create task", "user_id", ownerID, "error", err)
		return nil, err
	}

	logger.InfoContext(ctx, "Task created", "task_id", task.ID, "user_id", ownerID)
	s.publish(ctx, ports.TaskCreated, task.ID, ownerID, "")

	return task, nil
}

func (s *TaskServiceImpl) ListTasks(ctx context.Context, userID uuid.UUID, filter models.TaskFilter) ([]*models.Task, error) {
	tasks, err := s.taskRepo.ListVisible(ctx, userID, filter)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to list tasks", "user_id", userID, "filter", filter, "error", err)
		return nil, err
	}
	return tasks, nil
}

func (s *TaskServiceImpl) UpdateTask(ctx context.Context, taskID, userID uuid.UUID, update models.TaskUpdate) (*models.Task, error) {
	task, err := s.taskRepo.UpdateOwned(ctx, taskID, userID, update)
	if err != nil {
		logger.WarnContext(ctx, "Task update rejected", "task_id", taskID, "user_id", userID, "error", err)
		return nil, err
	}

	logger.InfoContext(ctx, "Task updated", "task_id", taskID, "user_id", userID)
	s.publish(ctx, ports.TaskUpdated, taskID, userID, "")

	return task, nil
}

func (s *TaskServiceImpl) DeleteTask(ctx context.Context, taskID, userID uuid.UUID) error {
	if err := s.taskRepo.DeleteOwned(ctx, taskID, userID); err != nil {
		logger.WarnContext(ctx, "Task deletion rejected", "task_id", taskID, "user_id", userID, "error", err)
		return err
	}

	logger.InfoContext(ctx, "Task deleted", "task_id", taskID, "user_id", userID)
	s.publish(ctx, ports.TaskDeleted, taskID, userID, "")

	return nil
}

func (s *TaskServiceImpl) ShareTask(ctx context.Context, taskID, ownerID uuid.UUID, email string) error {
	if err := s.taskRepo.ShareOwned(ctx, taskID, ownerID, email); err != nil {
		logger.WarnContext(ctx, "Task share rejected", "task_id", taskID, "user_id", ownerID, "error", err)
		return err
	}

	logger.InfoContext(ctx, "Task shared", "task_id", taskID, "user_id", ownerID, "target", email)
	s.publish(ctx, ports.TaskShared, taskID, ownerID, email)

	return nil
}
