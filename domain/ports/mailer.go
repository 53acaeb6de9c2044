package ports

import "context"

// Mailer delivers outbound mail. Delivery is an external collaborator; the
// auth flow treats failures here as fatal for registration only.
type Mailer interface {
	SendVerificationEmail(ctx context.Context, to, verificationLink string) error
}
