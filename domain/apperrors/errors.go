package apperrors

import "errors"

// Sentinels for the failure classes the API exposes. Handlers map these to
// HTTP statuses; everything unrecognized surfaces as an internal error.
var (
	// ErrInvalidToken covers missing, malformed, expired and unverifiable
	// identity-provider tokens. Callers never learn which check failed.
	ErrInvalidToken = errors.New("invalid token")

	// ErrNotFoundOrUnauthorized conflates "no such task" with "not the
	// owner" so mutations do not leak task existence to non-owners.
	ErrNotFoundOrUnauthorized = errors.New("task not found or unauthorized")

	// ErrUserNotFound means a share target email resolves to no local user.
	ErrUserNotFound = errors.New("user not found")

	// ErrEmailExists means the registration email is already provisioned.
	ErrEmailExists = errors.New("email already in use")

	// ErrEmailNotVerified blocks password sign-in until the provider has
	// confirmed the address.
	ErrEmailNotVerified = errors.New("email not verified")
)
