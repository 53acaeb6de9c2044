package serviceimpl

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"time"

	"taskboard/domain/apperrors"
	"taskboard/domain/dto"
	"taskboard/domain/models"
	"taskboard/domain/ports"
	"taskboard/domain/services"
	"taskboard/pkg/logger"
)

// How long a verified token→email mapping may be reused before the provider
// is asked again. Short enough that provider-side revocation still bites.
const tokenCacheTTL = 5 * time.Minute

type AuthServiceImpl struct {
	provider    ports.IdentityProvider
	mailer      ports.Mailer
	userService services.UserService
	cache       ports.Cache // nil disables caching
}

func NewAuthService(provider ports.IdentityProvider, mailer ports.Mailer, userService services.UserService, cache ports.Cache) services.AuthService {
	return &AuthServiceImpl{
		provider:    provider,
		mailer:      mailer,
		userService: userService,
		cache:       cache,
	}
}

func tokenCacheKey(token string) string {
	sum := sha256.Sum256([]byte(token))
	return "auth:token:" + hex.EncodeToString(sum[:])
}

func (s *AuthServiceImpl) VerifyToken(ctx context.Context, token string) (*models.User, error) {
	if token == "" {
		return nil, apperrors.ErrInvalidToken
	}

	if s.cache != nil {
		if email, err := s.cache.Get(ctx, tokenCacheKey(token)); err == nil && email != "" {
			return s.userService.FindOrCreateByEmail(ctx, email)
		} else if err != nil && !errors.Is(err, ports.ErrCacheMiss) {
			logger.WarnContext(ctx, "Token cache read failed", "error", err)
		}
	}

	email, err := s.provider.VerifyToken(ctx, token)
	if err != nil {
		if errors.Is(err, apperrors.ErrInvalidToken) {
			logger.WarnContext(ctx, "Token verification failed")
			return nil, apperrors.ErrInvalidToken
		}
		logger.ErrorContext(ctx, "Identity provider unreachable", "error", err)
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, tokenCacheKey(token), email, tokenCacheTTL); err != nil {
			logger.WarnContext(ctx, "Token cache write failed", "error", err)
		}
	}

	return s.userService.FindOrCreateByEmail(ctx, email)
}

func (s *AuthServiceImpl) Register(ctx context.Context, email, password string) (*dto.RegisterResult, error) {
	account, token, err := s.provider.CreateAccount(ctx, email, password)
	if err != nil {
		if errors.Is(err, apperrors.ErrEmailExists) {
			logger.WarnContext(ctx, "Registration with existing email", "email", email)
		} else {
			logger.ErrorContext(ctx, "Account provisioning failed", "email", email, "error", err)
		}
		return nil, err
	}

	user, err := s.userService.FindOrCreateByEmail(ctx, account.Email)
	if err != nil {
		return nil, err
	}

	link, err := s.provider.VerificationLink(ctx, account.Email)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to obtain verification link", "email", email, "error", err)
		return nil, err
	}

	if err := s.mailer.SendVerificationEmail(ctx, account.Email, link); err != nil {
		return nil, err
	}

	logger.InfoContext(ctx, "User registered", "user_id", user.ID, "email", user.Email)

	return &dto.RegisterResult{
		Token:   token,
		User:    *dto.UserToUserResponse(user),
		Message: "Verification email sent. Please check your inbox.",
	}, nil
}

func (s *AuthServiceImpl) Login(ctx context.Context, email, password string) (*models.User, error) {
	account, err := s.provider.SignIn(ctx, email, password)
	if err != nil {
		logger.WarnContext(ctx, "Login failed", "email", email)
		return nil, apperrors.ErrInvalidToken
	}

	if !account.EmailVerified {
		logger.WarnContext(ctx, "Login with unverified email", "email", email)
		return nil, apperrors.ErrEmailNotVerified
	}

	user, err := s.userService.FindOrCreateByEmail(ctx, account.Email)
	if err != nil {
		return nil, err
	}

	logger.InfoContext(ctx, "User logged in", "user_id", user.ID, "email", user.Email)
	return user, nil
}

func (s *AuthServiceImpl) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	account, err := s.provider.AccountByEmail(ctx, email)
	if err != nil {
		return nil, apperrors.ErrUserNotFound
	}
	return s.userService.FindOrCreateByEmail(ctx, account.Email)
}
