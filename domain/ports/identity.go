package ports

import "context"

// Account is an identity-provider account. The provider owns credentials and
// email verification state; the backend only ever sees this projection.
type Account struct {
	UID           string
	Email         string
	EmailVerified bool
}

// IdentityProvider abstracts the external identity service that issues the
// opaque bearer tokens this API accepts. Implementations must collapse every
// verification failure into apperrors.ErrInvalidToken.
type IdentityProvider interface {
	// VerifyToken validates a bearer token and returns the email it is tied
	// to. Expired, malformed and email-less tokens are indistinguishable.
	VerifyToken(ctx context.Context, token string) (string, error)

	// CreateAccount provisions an account and returns it together with an
	// initial session token for the client. apperrors.ErrEmailExists when
	// the email is already provisioned.
	CreateAccount(ctx context.Context, email, password string) (*Account, string, error)

	// SignIn performs password sign-in against the provider.
	SignIn(ctx context.Context, email, password string) (*Account, error)

	// AccountByEmail looks up a provisioned account.
	AccountByEmail(ctx context.Context, email string) (*Account, error)

	// VerificationLink returns a one-time email verification link for the
	// account behind email.
	VerificationLink(ctx context.Context, email string) (string, error)
}
