package account

import (
	"context"
	"time"
)

// TokenStore holds one-time password-reset tokens. Implementations are
// expected to expire entries on their own after ttl.
type TokenStore interface {
	Save(ctx context.Context, token, email string, ttl time.Duration) error
	// Fetch returns the email the token was issued for.
	Fetch(ctx context.Context, token string) (string, bool, error)
	Delete(ctx context.Context, token string) error
}

// MailSender delivers outbound mail. Failures are converted to
// EmailSendFailed by the service.
type MailSender interface {
	Send(ctx context.Context, to, subject, body string) error
}
