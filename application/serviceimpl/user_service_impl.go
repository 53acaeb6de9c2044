package serviceimpl

import (
	"context"

	"github.com/google/uuid"

	"taskboard/domain/models"
	"taskboard/domain/repositories"
	"taskboard/domain/services"
	"taskboard/pkg/logger"
)

type UserServiceImpl struct {
	userRepo repositories.UserRepository
}

func NewUserService(userRepo repositories.UserRepository) services.UserService {
	return &UserServiceImpl{userRepo: userRepo}
}

func (s *UserServiceImpl) FindOrCreateByEmail(ctx context.Context, email string) (*models.User, error) {
	user, err := s.userRepo.FindOrCreateByEmail(ctx, email)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to find or create user", "email", email, "error", err)
		return nil, err
	}
	return user, nil
}

func (s *UserServiceImpl) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

func (s *UserServiceImpl) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.userRepo.GetByEmail(ctx, email)
}
