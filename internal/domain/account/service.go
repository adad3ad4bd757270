package account

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/samdev/lexibase/internal/domain/session"
	"github.com/samdev/lexibase/internal/password"
	"github.com/samdev/lexibase/pkg/fail"
)

// Service exposes the account workflows behind the session pipeline.
type Service interface {
	// Register validates the credentials, parks the account as pending,
	// and mails a verification link.
	Register(ctx context.Context, creds Credentials) error
	// Login verifies the credentials and returns a signed session token.
	Login(ctx context.Context, creds Credentials) (string, error)
	// VerifyEmail promotes a pending registration named by a live token.
	VerifyEmail(ctx context.Context, token string) error
	// ResendVerification issues a fresh verification token. The presented
	// token may be expired; only its signature must be authentic.
	ResendVerification(ctx context.Context, token string) error
	// ForgotPassword mails a reset link. A miss is not an error: the
	// caller answers identically either way.
	ForgotPassword(ctx context.Context, email string) error
	// ResetPassword redeems a stored one-time token for a new password.
	ResetPassword(ctx context.Context, token, newPassword string) error
	// Principal resolves a verified session subject into the account it
	// names. Used by the auth gate on every protected request.
	Principal(ctx context.Context, subject string) (User, error)
	// GoogleLoginURL and GoogleCallback implement the optional
	// third-party login redirect; see google.go.
	GoogleLoginURL(state, codeChallenge string) (string, error)
	GoogleCallback(ctx context.Context, code, codeVerifier string) (string, error)
}

type service struct {
	cfg    Config
	repo   Repository
	tokens TokenStore
	mailer MailSender
	codec  *session.Codec
	logger *slog.Logger
}

// NewService constructs a Service instance.
func NewService(cfg Config, repo Repository, tokens TokenStore, mailer MailSender, codec *session.Codec, logger *slog.Logger) Service {
	return &service{
		cfg:    cfg,
		repo:   repo,
		tokens: tokens,
		mailer: mailer,
		codec:  codec,
		logger: logger.With("component", "account.service"),
	}
}

func (s *service) Register(ctx context.Context, creds Credentials) error {
	email, err := normalizeEmail(creds.Email)
	if err != nil {
		return err
	}
	if err := validatePassword(creds.Password); err != nil {
		return err
	}

	taken, err := s.repo.Exists(ctx, email)
	if err != nil {
		return fail.Database(err)
	}
	if taken {
		// Deliberately ambiguous toward the client; the log keeps the truth.
		s.logger.Warn("registration for taken address", "email", email)
		return fail.Internal(errors.New("address already registered"))
	}

	hash, err := password.Hash(creds.Password)
	if err != nil {
		return err
	}
	token, err := s.codec.Issue(email, s.cfg.VerificationTTL)
	if err != nil {
		return err
	}
	if err := s.repo.CreatePending(ctx, PendingUser{
		Email:             email,
		PasswordHash:      hash,
		VerificationToken: token,
	}); err != nil {
		return fail.Database(err)
	}
	if err := s.mailer.Send(ctx, email, "Verify Your Email", verifyEmailBody(s.cfg.Host, token)); err != nil {
		return fail.EmailSendFailed(err)
	}
	return nil
}

func (s *service) Login(ctx context.Context, creds Credentials) (string, error) {
	email, err := normalizeEmail(creds.Email)
	if err != nil {
		return "", err
	}
	user, found, err := s.repo.FindHashByEmail(ctx, email)
	if err != nil {
		return "", fail.Database(err)
	}
	if !found {
		// Same failure as a wrong password: no account oracle.
		return "", fail.LoginFailed()
	}
	if err := password.Verify(creds.Password, user.PasswordHash); err != nil {
		return "", err
	}
	return s.codec.Issue(user.ID.String(), s.cfg.SessionTTL)
}

func (s *service) VerifyEmail(ctx context.Context, token string) error {
	claims, err := s.codec.Verify(token)
	if err != nil {
		return err
	}
	if claims.Expired(time.Now()) {
		return fail.ExpiredToken(claims.Subject)
	}

	_, found, err := s.repo.FetchPending(ctx, claims.Subject)
	if err != nil {
		return fail.Database(err)
	}
	if !found {
		return fail.RegistrationFailed()
	}
	if _, err := s.repo.Promote(ctx, claims.Subject); err != nil {
		return fail.Database(err)
	}
	return nil
}

func (s *service) ResendVerification(ctx context.Context, token string) error {
	// Expired tokens are fine here; the signature alone vouches for the
	// subject, which is all we need to re-issue.
	claims, err := s.codec.Verify(token)
	if err != nil {
		return fail.InvalidToken()
	}
	email := claims.Subject

	fresh, err := s.codec.Issue(email, s.cfg.VerificationTTL)
	if err != nil {
		return err
	}
	if err := s.repo.ResetVerificationToken(ctx, email, fresh); err != nil {
		return fail.Database(err)
	}
	if err := s.mailer.Send(ctx, email, "Verify Your Email", verifyEmailBody(s.cfg.Host, fresh)); err != nil {
		return fail.EmailSendFailed(err)
	}
	return nil
}

func (s *service) ForgotPassword(ctx context.Context, email string) error {
	normalized, err := normalizeEmail(email)
	if err != nil {
		// An address that cannot exist gets the same silence as a miss.
		return nil
	}
	user, found, err := s.repo.FindByEmail(ctx, normalized)
	if err != nil {
		return fail.Database(err)
	}
	if !found {
		s.logger.Info("password reset for unknown address", "email", normalized)
		return nil
	}

	token, err := s.codec.Issue(user.Email, s.cfg.ResetTTL)
	if err != nil {
		return err
	}
	// Store first: a mailed link must always be redeemable.
	if err := s.tokens.Save(ctx, token, user.Email, s.cfg.ResetTTL); err != nil {
		return fail.Database(err)
	}
	if err := s.mailer.Send(ctx, user.Email, "Forgot Password", forgotPasswordBody(s.cfg.Host, token)); err != nil {
		return fail.EmailSendFailed(err)
	}
	return nil
}

func (s *service) ResetPassword(ctx context.Context, token, newPassword string) error {
	email, found, err := s.tokens.Fetch(ctx, token)
	if err != nil {
		return fail.Database(err)
	}
	if !found {
		return fail.InvalidToken()
	}

	claims, err := s.codec.Verify(token)
	if err != nil {
		return err
	}
	if claims.Expired(time.Now()) {
		return fail.ExpiredToken(claims.Subject)
	}
	if err := validatePassword(newPassword); err != nil {
		return err
	}

	hash, err := password.Hash(newPassword)
	if err != nil {
		return err
	}
	if err := s.repo.UpdatePassword(ctx, email, hash); err != nil {
		return fail.Database(err)
	}
	if err := s.tokens.Delete(ctx, token); err != nil {
		return fail.Database(err)
	}
	return nil
}

func (s *service) Principal(ctx context.Context, subject string) (User, error) {
	id, err := uuid.Parse(subject)
	if err != nil {
		// A signed token with a non-uuid subject is our bug, not the
		// client's; the parse detail stays in the log.
		s.logger.Error("session subject is not a uuid", "error", err)
		return User{}, fail.Internal(err)
	}
	user, found, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return User{}, fail.Database(err)
	}
	if !found {
		// The account may have been deleted since the token was issued.
		return User{}, fail.LoginFailed()
	}
	return user, nil
}
