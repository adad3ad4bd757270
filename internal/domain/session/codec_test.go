package session

import (
	"encoding/base64"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"github.com/samdev/lexibase/pkg/fail"
)

func testCodec() *Codec {
	return NewCodec(Config{Secret: "test-secret"})
}

func TestCodec_RoundTrip(t *testing.T) {
	codec := testCodec()

	for _, subject := range []string{"42", "user@example.com", "b4f9c1de-8a1c-4f57-9077-6fb0c4da11aa"} {
		token, err := codec.Issue(subject, time.Hour)
		require.NoError(t, err)

		claims, err := codec.Verify(token)
		require.NoError(t, err)
		require.Equal(t, subject, claims.Subject)
		require.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt, time.Minute)
	}
}

func TestCodec_VerifyReturnsExpiredClaims(t *testing.T) {
	codec := testCodec()

	token, err := codec.Issue("user@example.com", -time.Hour)
	require.NoError(t, err)

	// Verify never fails on expiry alone; the caller decides.
	claims, err := codec.Verify(token)
	require.NoError(t, err)
	require.Equal(t, "user@example.com", claims.Subject)
	require.True(t, claims.Expired(time.Now()))
}

func TestClaims_ExpiryBoundary(t *testing.T) {
	codec := testCodec()

	ttl := 30 * time.Second
	token, err := codec.Issue("7", ttl)
	require.NoError(t, err)

	claims, err := codec.Verify(token)
	require.NoError(t, err)

	now := time.Now()
	require.False(t, claims.Expired(now.Add(ttl-time.Second)))
	require.True(t, claims.Expired(now.Add(ttl+time.Second)))

	zero, err := codec.Issue("7", 0)
	require.NoError(t, err)
	zeroClaims, err := codec.Verify(zero)
	require.NoError(t, err)
	require.True(t, zeroClaims.Expired(time.Now().Add(time.Second)))
}

func TestCodec_SignatureTamper(t *testing.T) {
	codec := testCodec()

	token, err := codec.Issue("7", time.Hour)
	require.NoError(t, err)

	raw := []byte(token)
	for i := 0; i < len(raw); i++ {
		if raw[i] == '.' {
			continue
		}
		flipped := make([]byte, len(raw))
		copy(flipped, raw)
		if flipped[i] == 'A' {
			flipped[i] = 'B'
		} else {
			flipped[i] = 'A'
		}
		_, err := codec.Verify(string(flipped))
		require.Error(t, err, "byte %d", i)
		require.True(t, fail.Is(err, fail.KindInvalidToken), "byte %d", i)
	}
}

func TestCodec_RejectsForeignAlgorithm(t *testing.T) {
	codec := testCodec()

	// Signed with HS512; the declared algorithm must not be trusted.
	foreign := jwt.NewWithClaims(jwt.SigningMethodHS512, jwt.RegisteredClaims{
		Subject:   "7",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})
	signed, err := foreign.SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = codec.Verify(signed)
	require.True(t, fail.Is(err, fail.KindInvalidToken))
}

func TestCodec_RejectsWrongSecret(t *testing.T) {
	other := NewCodec(Config{Secret: "other-secret"})
	token, err := other.Issue("7", time.Hour)
	require.NoError(t, err)

	_, err = testCodec().Verify(token)
	require.True(t, fail.Is(err, fail.KindInvalidToken))
}

func TestCodec_RejectsMalformedClaims(t *testing.T) {
	codec := testCodec()

	// Authentic signature over claims missing sub/exp.
	empty := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{})
	signed, err := empty.SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = codec.Verify(signed)
	require.True(t, fail.Is(err, fail.KindInvalidToken))

	_, err = codec.Verify("not-a-token")
	require.True(t, fail.Is(err, fail.KindInvalidToken))
}

func TestCodec_ClaimsAreCompactJWT(t *testing.T) {
	codec := testCodec()

	token, err := codec.Issue("42", time.Hour)
	require.NoError(t, err)

	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)

	payload, err := base64.RawURLEncoding.DecodeString(parts[1])
	require.NoError(t, err)
	require.Contains(t, string(payload), `"sub":"42"`)
	require.Contains(t, string(payload), `"exp":`)
}
