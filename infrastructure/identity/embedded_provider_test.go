package identity

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"taskboard/domain/apperrors"
)

func newTestProvider(t *testing.T) *EmbeddedProvider {
	t.Helper()
	return NewEmbeddedProvider("test-secret", "http://localhost:3000")
}

func TestEmbeddedProviderTokenRoundTrip(t *testing.T) {
	provider := newTestProvider(t)
	ctx := context.Background()

	account, token, err := provider.CreateAccount(ctx, "alice@example.com", "password123")
	if err != nil {
		t.Fatalf("CreateAccount failed: %v", err)
	}
	if account.Email != "alice@example.com" {
		t.Errorf("expected email alice@example.com, got %s", account.Email)
	}
	if !account.EmailVerified {
		t.Error("expected auto-verified account")
	}

	email, err := provider.VerifyToken(ctx, token)
	if err != nil {
		t.Fatalf("VerifyToken failed: %v", err)
	}
	if email != "alice@example.com" {
		t.Errorf("expected token to resolve to alice@example.com, got %s", email)
	}
}

func TestEmbeddedProviderVerifyTokenRejects(t *testing.T) {
	provider := newTestProvider(t)
	ctx := context.Background()

	if _, _, err := provider.CreateAccount(ctx, "alice@example.com", "password123"); err != nil {
		t.Fatalf("CreateAccount failed: %v", err)
	}

	other := NewEmbeddedProvider("other-secret", "http://localhost:3000")
	if _, _, err := other.CreateAccount(ctx, "alice@example.com", "password123"); err != nil {
		t.Fatalf("CreateAccount failed: %v", err)
	}
	foreign, err := other.IssueToken("alice@example.com")
	if err != nil {
		t.Fatalf("IssueToken failed: %v", err)
	}

	expired := newTestProvider(t)
	expired.tokenTTL = -time.Minute
	if _, _, err := expired.CreateAccount(ctx, "bob@example.com", "password123"); err != nil {
		t.Fatalf("CreateAccount failed: %v", err)
	}
	expiredToken, err := expired.IssueToken("bob@example.com")
	if err != nil {
		t.Fatalf("IssueToken failed: %v", err)
	}
	expired.tokenTTL = time.Hour

	tests := []struct {
		name     string
		provider *EmbeddedProvider
		token    string
	}{
		{"empty token", provider, ""},
		{"garbage token", provider, "not-a-jwt"},
		{"wrong signing key", provider, foreign},
		{"expired token", expired, expiredToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := tt.provider.VerifyToken(ctx, tt.token); !errors.Is(err, apperrors.ErrInvalidToken) {
				t.Errorf("expected ErrInvalidToken, got %v", err)
			}
		})
	}
}

func TestEmbeddedProviderDuplicateEmail(t *testing.T) {
	provider := newTestProvider(t)
	ctx := context.Background()

	if _, _, err := provider.CreateAccount(ctx, "alice@example.com", "password123"); err != nil {
		t.Fatalf("CreateAccount failed: %v", err)
	}
	if _, _, err := provider.CreateAccount(ctx, "alice@example.com", "different"); !errors.Is(err, apperrors.ErrEmailExists) {
		t.Errorf("expected ErrEmailExists, got %v", err)
	}
}

func TestEmbeddedProviderSignIn(t *testing.T) {
	provider := newTestProvider(t)
	ctx := context.Background()

	if _, _, err := provider.CreateAccount(ctx, "alice@example.com", "password123"); err != nil {
		t.Fatalf("CreateAccount failed: %v", err)
	}

	account, err := provider.SignIn(ctx, "alice@example.com", "password123")
	if err != nil {
		t.Fatalf("SignIn failed: %v", err)
	}
	if account.Email != "alice@example.com" {
		t.Errorf("expected alice@example.com, got %s", account.Email)
	}

	if _, err := provider.SignIn(ctx, "alice@example.com", "wrong"); !errors.Is(err, apperrors.ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken for wrong password, got %v", err)
	}
	if _, err := provider.SignIn(ctx, "missing@example.com", "password123"); !errors.Is(err, apperrors.ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken for unknown account, got %v", err)
	}
}

func TestEmbeddedProviderUnverifiedAccount(t *testing.T) {
	provider := newTestProvider(t)
	provider.AutoVerify = false
	ctx := context.Background()

	account, _, err := provider.CreateAccount(ctx, "alice@example.com", "password123")
	if err != nil {
		t.Fatalf("CreateAccount failed: %v", err)
	}
	if account.EmailVerified {
		t.Error("expected unverified account with AutoVerify off")
	}

	provider.MarkVerified("alice@example.com")
	account, err = provider.AccountByEmail(ctx, "alice@example.com")
	if err != nil {
		t.Fatalf("AccountByEmail failed: %v", err)
	}
	if !account.EmailVerified {
		t.Error("expected account to be verified after MarkVerified")
	}
}

func TestEmbeddedProviderVerificationLink(t *testing.T) {
	provider := newTestProvider(t)
	ctx := context.Background()

	if _, _, err := provider.CreateAccount(ctx, "alice@example.com", "password123"); err != nil {
		t.Fatalf("CreateAccount failed: %v", err)
	}

	link, err := provider.VerificationLink(ctx, "alice@example.com")
	if err != nil {
		t.Fatalf("VerificationLink failed: %v", err)
	}
	if !strings.HasPrefix(link, "http://localhost:3000/verify-email?oobCode=") {
		t.Errorf("unexpected link format: %s", link)
	}

	if _, err := provider.VerificationLink(ctx, "missing@example.com"); !errors.Is(err, apperrors.ErrUserNotFound) {
		t.Errorf("expected ErrUserNotFound, got %v", err)
	}
}
