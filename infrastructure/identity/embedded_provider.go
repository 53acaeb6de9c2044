package identity

import (
	"context"
	"errors"
	"net/url"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"taskboard/domain/apperrors"
	"taskboard/domain/ports"
)

// EmbeddedProvider is an in-process identity provider for development and
// tests. Credentials live in memory as bcrypt hashes and tokens are signed
// JWTs, so the rest of the system exercises the exact same hand-off contract
// as against the hosted provider.
type EmbeddedProvider struct {
	mu          sync.RWMutex
	accounts    map[string]*embeddedAccount // keyed by email
	jwtSecret   []byte
	frontendURL string
	tokenTTL    time.Duration

	// AutoVerify marks new accounts verified immediately, so password
	// sign-in works without a mail round trip. On by default.
	AutoVerify bool
}

type embeddedAccount struct {
	uid          string
	email        string
	passwordHash []byte
	verified     bool
}

func NewEmbeddedProvider(jwtSecret, frontendURL string) *EmbeddedProvider {
	return &EmbeddedProvider{
		accounts:    make(map[string]*embeddedAccount),
		jwtSecret:   []byte(jwtSecret),
		frontendURL: frontendURL,
		tokenTTL:    time.Hour,
		AutoVerify:  true,
	}
}

type tokenClaims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

func (p *EmbeddedProvider) issueToken(account *embeddedAccount) (string, error) {
	claims := tokenClaims{
		Email: account.email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   account.uid,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(p.tokenTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(p.jwtSecret)
}

func (p *EmbeddedProvider) VerifyToken(ctx context.Context, token string) (string, error) {
	if token == "" {
		return "", apperrors.ErrInvalidToken
	}

	parsed, err := jwt.ParseWithClaims(token, &tokenClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return p.jwtSecret, nil
	})
	if err != nil {
		return "", apperrors.ErrInvalidToken
	}

	claims, ok := parsed.Claims.(*tokenClaims)
	if !ok || !parsed.Valid || claims.Email == "" {
		return "", apperrors.ErrInvalidToken
	}

	// The account may have been dropped since the token was issued.
	p.mu.RLock()
	_, exists := p.accounts[claims.Email]
	p.mu.RUnlock()
	if !exists {
		return "", apperrors.ErrInvalidToken
	}

	return claims.Email, nil
}

func (p *EmbeddedProvider) CreateAccount(ctx context.Context, email, password string) (*ports.Account, string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", err
	}

	p.mu.Lock()
	if _, exists := p.accounts[email]; exists {
		p.mu.Unlock()
		return nil, "", apperrors.ErrEmailExists
	}
	account := &embeddedAccount{
		uid:          uuid.New().String(),
		email:        email,
		passwordHash: hash,
		verified:     p.AutoVerify,
	}
	p.accounts[email] = account
	p.mu.Unlock()

	token, err := p.issueToken(account)
	if err != nil {
		return nil, "", err
	}

	return &ports.Account{
		UID:           account.uid,
		Email:         account.email,
		EmailVerified: account.verified,
	}, token, nil
}

func (p *EmbeddedProvider) SignIn(ctx context.Context, email, password string) (*ports.Account, error) {
	p.mu.RLock()
	account, exists := p.accounts[email]
	p.mu.RUnlock()

	if !exists {
		return nil, apperrors.ErrInvalidToken
	}
	if err := bcrypt.CompareHashAndPassword(account.passwordHash, []byte(password)); err != nil {
		return nil, apperrors.ErrInvalidToken
	}

	return &ports.Account{
		UID:           account.uid,
		Email:         account.email,
		EmailVerified: account.verified,
	}, nil
}

func (p *EmbeddedProvider) AccountByEmail(ctx context.Context, email string) (*ports.Account, error) {
	p.mu.RLock()
	account, exists := p.accounts[email]
	p.mu.RUnlock()

	if !exists {
		return nil, apperrors.ErrUserNotFound
	}
	return &ports.Account{
		UID:           account.uid,
		Email:         account.email,
		EmailVerified: account.verified,
	}, nil
}

func (p *EmbeddedProvider) VerificationLink(ctx context.Context, email string) (string, error) {
	p.mu.RLock()
	account, exists := p.accounts[email]
	p.mu.RUnlock()

	if !exists {
		return "", apperrors.ErrUserNotFound
	}

	code, err := p.issueToken(account)
	if err != nil {
		return "", err
	}
	return p.frontendURL + "/verify-email?oobCode=" + url.QueryEscape(code), nil
}

// IssueToken mints a fresh token for an existing account. Test helper and
// dev-mode login convenience.
func (p *EmbeddedProvider) IssueToken(email string) (string, error) {
	p.mu.RLock()
	account, exists := p.accounts[email]
	p.mu.RUnlock()

	if !exists {
		return "", apperrors.ErrUserNotFound
	}
	return p.issueToken(account)
}

// MarkVerified flips an account to verified, standing in for the mail round
// trip the hosted provider performs.
func (p *EmbeddedProvider) MarkVerified(email string) {
	p.mu.Lock()
	if account, exists := p.accounts[email]; exists {
		account.verified = true
	}
	p.mu.Unlock()
}
