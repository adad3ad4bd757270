package session

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/samdev/lexibase/pkg/fail"
)

// Config carries the signing material for session tokens. The secret is
// injected here instead of living in a package-level constant so tests
// can swap it.
type Config struct {
	Secret string
}

// Claims is what a verified token carries.
type Claims struct {
	Subject   string
	ExpiresAt time.Time
}

// Expired compares the claim against the given instant.
func (c Claims) Expired(now time.Time) bool {
	return c.ExpiresAt.Before(now)
}

// Codec issues and verifies signed session tokens.
type Codec struct {
	cfg Config
}

// NewCodec constructs a Codec around an immutable config.
func NewCodec(cfg Config) *Codec {
	return &Codec{cfg: cfg}
}

type tokenClaims struct {
	jwt.RegisteredClaims
}

// Issue signs a token binding subject to an expiry of now+ttl.
func (c *Codec) Issue(subject string, ttl time.Duration) (string, error) {
	claims := tokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(c.cfg.Secret))
	if err != nil {
		return "", fail.Internal(err)
	}
	return signed, nil
}

// Verify checks the signature and returns the parsed claims. Only HS256
// is accepted, whatever the header declares. Expiry is deliberately NOT
// checked here: callers compare Claims.ExpiresAt themselves so an
// expired-but-authentic token still yields its subject, which the
// resend-verification flow depends on.
func (c *Codec) Verify(token string) (Claims, error) {
	parsed, err := jwt.ParseWithClaims(token, &tokenClaims{}, func(t *jwt.Token) (any, error) {
		return []byte(c.cfg.Secret), nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithoutClaimsValidation(),
		jwt.WithStrictDecoding(),
	)
	if err != nil {
		return Claims{}, fail.InvalidToken()
	}
	claims, ok := parsed.Claims.(*tokenClaims)
	if !ok || !parsed.Valid {
		return Claims{}, fail.InvalidToken()
	}
	// A valid signature over malformed claims is still rejected.
	if claims.Subject == "" || claims.ExpiresAt == nil {
		return Claims{}, fail.InvalidToken()
	}
	return Claims{
		Subject:   claims.Subject,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}
