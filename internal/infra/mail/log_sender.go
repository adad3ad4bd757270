package mail

import (
	"context"
	"log/slog"

	"github.com/samdev/lexibase/internal/domain/account"
)

// LogSender writes mail to the log instead of the wire. Used in dev
// when no SMTP credentials are configured.
type LogSender struct {
	logger *slog.Logger
}

// NewLogSender constructs the dev sender.
func NewLogSender(logger *slog.Logger) *LogSender {
	return &LogSender{logger: logger.With("component", "mail.log")}
}

// Send logs the message and reports success.
func (s *LogSender) Send(_ context.Context, to, subject, body string) error {
	s.logger.Info("outbound mail suppressed", "to", to, "subject", subject, "body", body)
	return nil
}

var _ account.MailSender = (*LogSender)(nil)
