package account

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"strings"

	"github.com/coreos/go-oidc/v3/oidc"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"github.com/samdev/lexibase/internal/password"
	"github.com/samdev/lexibase/pkg/fail"
)

const googleIssuerURL = "https://accounts.google.com"

type googleClaims struct {
	Subject       string `json:"sub"`
	Email         string `json:"email"`
	EmailVerified bool   `json:"email_verified"`
}

// GoogleLoginURL builds the consent redirect carrying state and a PKCE
// challenge. Both live in a short-lived cookie owned by the HTTP layer.
func (s *service) GoogleLoginURL(state, codeChallenge string) (string, error) {
	cfg, err := s.googleOAuthConfig()
	if err != nil {
		return "", err
	}
	return cfg.AuthCodeURL(state,
		oauth2.SetAuthURLParam("code_challenge", codeChallenge),
		oauth2.SetAuthURLParam("code_challenge_method", "S256"),
	), nil
}

// GoogleCallback exchanges the authorization code, verifies the ID
// token against Google's keys, provisions the account if it is new, and
// returns a signed session token.
func (s *service) GoogleCallback(ctx context.Context, code, codeVerifier string) (string, error) {
	cfg, err := s.googleOAuthConfig()
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(code) == "" || strings.TrimSpace(codeVerifier) == "" {
		return "", fail.InvalidToken()
	}
	token, err := cfg.Exchange(ctx, code, oauth2.SetAuthURLParam("code_verifier", codeVerifier))
	if err != nil {
		s.logger.Error("google code exchange failed", "error", err)
		return "", fail.NotAuthorized()
	}
	rawIDToken, ok := token.Extra("id_token").(string)
	if !ok || rawIDToken == "" {
		return "", fail.NotAuthorized()
	}
	claims, err := s.verifyGoogleIDToken(ctx, rawIDToken)
	if err != nil {
		return "", err
	}
	if !claims.EmailVerified {
		return "", fail.NotAuthorized()
	}
	email, err := normalizeEmail(claims.Email)
	if err != nil {
		return "", err
	}

	user, found, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return "", fail.Database(err)
	}
	if !found {
		user, err = s.provisionGoogleUser(ctx, email)
		if err != nil {
			return "", err
		}
	}
	return s.codec.Issue(user.ID.String(), s.cfg.SessionTTL)
}

// provisionGoogleUser creates a verified account with an unguessable
// password so the credential path stays closed until the user sets one.
func (s *service) provisionGoogleUser(ctx context.Context, email string) (User, error) {
	random := make([]byte, 32)
	if _, err := rand.Read(random); err != nil {
		return User{}, fail.Internal(err)
	}
	hash, err := password.Hash(base64.RawURLEncoding.EncodeToString(random))
	if err != nil {
		return User{}, err
	}
	if err := s.repo.CreatePending(ctx, PendingUser{Email: email, PasswordHash: hash}); err != nil {
		return User{}, fail.Database(err)
	}
	user, err := s.repo.Promote(ctx, email)
	if err != nil {
		return User{}, fail.Database(err)
	}
	return user, nil
}

func (s *service) verifyGoogleIDToken(ctx context.Context, rawIDToken string) (googleClaims, error) {
	provider, err := oidc.NewProvider(ctx, googleIssuerURL)
	if err != nil {
		s.logger.Error("google oidc discovery failed", "error", err)
		return googleClaims{}, fail.Internal(err)
	}
	verifier := provider.Verifier(&oidc.Config{ClientID: s.cfg.Google.ClientID})
	idToken, err := verifier.Verify(ctx, rawIDToken)
	if err != nil {
		return googleClaims{}, fail.InvalidToken()
	}
	var claims googleClaims
	if err := idToken.Claims(&claims); err != nil {
		return googleClaims{}, fail.InvalidToken()
	}
	if claims.Subject == "" || claims.Email == "" {
		return googleClaims{}, fail.InvalidToken()
	}
	return claims, nil
}

func (s *service) googleOAuthConfig() (*oauth2.Config, error) {
	g := s.cfg.Google
	if !g.Enabled() {
		return nil, fail.Internal(errors.New("google login is not configured"))
	}
	return &oauth2.Config{
		ClientID:     g.ClientID,
		ClientSecret: g.ClientSecret,
		RedirectURL:  g.RedirectURL,
		Scopes:       []string{oidc.ScopeOpenID, "email"},
		Endpoint:     google.Endpoint,
	}, nil
}
