package account

import (
	"time"

	"github.com/google/uuid"
)

// Config drives the account flows.
type Config struct {
	// Host is the public base URL used in mail links.
	Host string
	// SessionTTL bounds the login session token.
	SessionTTL time.Duration
	// VerificationTTL bounds email-verification tokens.
	VerificationTTL time.Duration
	// ResetTTL bounds password-reset tokens.
	ResetTTL time.Duration
	Google   GoogleConfig
}

// GoogleConfig holds the optional third-party login settings. Empty
// client credentials leave the flow unmounted.
type GoogleConfig struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string
}

// Enabled reports whether the Google login routes should exist.
func (g GoogleConfig) Enabled() bool {
	return g.ClientID != "" && g.ClientSecret != ""
}

// User is the authenticated principal: loaded fresh per request, never
// carries the password hash.
type User struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// HashedUser is the credential row used only during login.
type HashedUser struct {
	ID           uuid.UUID
	Email        string
	PasswordHash string
}

// PendingUser waits in the pending table until its email is verified.
type PendingUser struct {
	Email             string
	PasswordHash      string
	VerificationToken string
	CreatedAt         time.Time
}

// Credentials is the login/registration payload.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
