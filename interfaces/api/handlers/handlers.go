package handlers

import (
	"taskboard/domain/services"
)

// Services bundles everything the handlers need.
type Services struct {
	AuthService services.AuthService
	TaskService services.TaskService
}

// Handlers contains all HTTP handlers.
type Handlers struct {
	AuthHandler *AuthHandler
	TaskHandler *TaskHandler
}

func NewHandlers(services *Services) *Handlers {
	return &Handlers{
		AuthHandler: NewAuthHandler(services.AuthService),
		TaskHandler: NewTaskHandler(services.TaskService),
	}
}
