package repositories

import (
	"context"

	"github.com/google/uuid"

	"taskboard/domain/models"
)

type UserRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	// FindOrCreateByEmail returns the user for email, inserting it first if
	// absent. The lookup and insert run in one transaction so two concurrent
	// verifications of the same email cannot produce duplicate rows.
	FindOrCreateByEmail(ctx context.Context, email string) (*models.User, error)
}
