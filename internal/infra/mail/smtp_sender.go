// Package mail delivers outbound messages over SMTP.
package mail

import (
	"context"

	gomail "github.com/wneessen/go-mail"

	"github.com/samdev/lexibase/internal/domain/account"
)

// Config holds the SMTP sender credentials.
type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// SMTPSender sends HTML mail through an authenticated SMTP relay.
type SMTPSender struct {
	cfg Config
}

// NewSMTPSender constructs a sender. The connection is dialed per send;
// the volume here (verification and reset mail) does not warrant a pool.
func NewSMTPSender(cfg Config) *SMTPSender {
	return &SMTPSender{cfg: cfg}
}

// Send delivers a single message, honoring ctx for dial and send.
func (s *SMTPSender) Send(ctx context.Context, to, subject, body string) error {
	client, err := gomail.NewClient(s.cfg.Host,
		gomail.WithPort(s.cfg.Port),
		gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
		gomail.WithUsername(s.cfg.Username),
		gomail.WithPassword(s.cfg.Password),
	)
	if err != nil {
		return err
	}

	msg := gomail.NewMsg()
	if err := msg.From(s.cfg.From); err != nil {
		return err
	}
	if err := msg.To(to); err != nil {
		return err
	}
	msg.Subject(subject)
	msg.SetBodyString(gomail.TypeTextHTML, body)

	return client.DialAndSendWithContext(ctx, msg)
}

var _ account.MailSender = (*SMTPSender)(nil)
