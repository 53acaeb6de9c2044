package services

import (
	"context"

	"github.com/google/uuid"

	"taskboard/domain/models"
)

type UserService interface {
	// FindOrCreateByEmail maps a verified email to its local user, creating
	// the row exactly once per distinct email.
	FindOrCreateByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
}
