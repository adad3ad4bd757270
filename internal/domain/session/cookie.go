package session

import (
	"net/http"
)

// CookieName is the browser-side holder of the session token.
const CookieName = "token"

// CookiePolicy controls the SameSite attribute. The deployment behind a
// separate frontend origin needs None; same-origin deployments use Lax.
type CookiePolicy struct {
	SameSite http.SameSite
}

// Cookie wraps a signed token as the session cookie.
func Cookie(token string, maxAge int, policy CookiePolicy) *http.Cookie {
	sameSite := policy.SameSite
	if sameSite == 0 {
		sameSite = http.SameSiteLaxMode
	}
	return &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   true,
		SameSite: sameSite,
	}
}

// ExpiredCookie tells the browser to drop the session immediately.
func ExpiredCookie(policy CookiePolicy) *http.Cookie {
	c := Cookie("", 0, policy)
	// MaxAge 0 would be serialized as "no attribute"; -1 emits Max-Age=0.
	c.MaxAge = -1
	return c
}
