package session

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCookie_SecurityAttributes(t *testing.T) {
	c := Cookie("signed-token", 3600, CookiePolicy{SameSite: http.SameSiteNoneMode})

	require.Equal(t, "token", c.Name)
	require.Equal(t, "signed-token", c.Value)
	require.Equal(t, "/", c.Path)
	require.Equal(t, 3600, c.MaxAge)
	require.True(t, c.HttpOnly)
	require.True(t, c.Secure)
	require.Equal(t, http.SameSiteNoneMode, c.SameSite)
}

func TestCookie_DefaultsToLax(t *testing.T) {
	c := Cookie("signed-token", 3600, CookiePolicy{})
	require.Equal(t, http.SameSiteLaxMode, c.SameSite)
}

func TestExpiredCookie_ClearsSession(t *testing.T) {
	c := ExpiredCookie(CookiePolicy{SameSite: http.SameSiteLaxMode})

	require.Equal(t, "token", c.Name)
	require.Empty(t, c.Value)
	require.Negative(t, c.MaxAge)
	require.Contains(t, c.String(), "Max-Age=0")
}
