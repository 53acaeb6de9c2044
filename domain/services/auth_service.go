package services

import (
	"context"

	"taskboard/domain/dto"
	"taskboard/domain/models"
)

type AuthService interface {
	// VerifyToken validates an identity-provider token and returns the local
	// user for the email it carries, creating the user on first sight.
	// Verification failures never create a user.
	VerifyToken(ctx context.Context, token string) (*models.User, error)

	// Register provisions an identity-provider account, the local user, and
	// triggers the verification email.
	Register(ctx context.Context, email, password string) (*dto.RegisterResult, error)

	// Login performs password sign-in against the provider and returns the
	// local user. Unverified emails are rejected.
	Login(ctx context.Context, email, password string) (*models.User, error)

	// GetUserByEmail resolves a provisioned account to its local user.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
}
