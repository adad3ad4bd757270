package http

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/samdev/lexibase/internal/domain/session"
	"github.com/samdev/lexibase/pkg/fail"
)

const oauthStateCookie = "oauth_state"

// oauthState pairs the CSRF state with the PKCE verifier for the
// round trip through the provider. It lives in a short-lived cookie,
// not server-side storage, so restarts cannot strand a login.
type oauthState struct {
	State    string `json:"state"`
	Verifier string `json:"verifier"`
}

func newOAuthState() (oauthState, error) {
	state, err := randomToken(16)
	if err != nil {
		return oauthState{}, err
	}
	verifier, err := randomToken(32)
	if err != nil {
		return oauthState{}, err
	}
	return oauthState{State: state, Verifier: verifier}, nil
}

// challenge derives the S256 code challenge sent on the authorize leg.
func (s oauthState) challenge() string {
	sum := sha256.Sum256([]byte(s.Verifier))
	return base64.RawURLEncoding.EncodeToString(sum[:])
}

func randomToken(n int) (string, error) {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return "", fail.Internal(fmt.Errorf("generate random token: %w", err))
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

func writeOAuthStateCookie(c *gin.Context, s oauthState, policy session.CookiePolicy) error {
	payload, err := json.Marshal(s)
	if err != nil {
		return fail.Internal(fmt.Errorf("encode oauth state: %w", err))
	}
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     oauthStateCookie,
		Value:    base64.RawURLEncoding.EncodeToString(payload),
		Path:     "/",
		MaxAge:   600,
		HttpOnly: true,
		Secure:   true,
		SameSite: policy.SameSite,
	})
	return nil
}

func readOAuthStateCookie(c *gin.Context) (oauthState, error) {
	raw, err := c.Cookie(oauthStateCookie)
	if err != nil || raw == "" {
		return oauthState{}, fail.NotAuthorized()
	}
	payload, err := base64.RawURLEncoding.DecodeString(raw)
	if err != nil {
		return oauthState{}, fail.NotAuthorized()
	}
	var s oauthState
	if err := json.Unmarshal(payload, &s); err != nil || s.State == "" || s.Verifier == "" {
		return oauthState{}, fail.NotAuthorized()
	}
	return s, nil
}

func clearOAuthStateCookie(c *gin.Context, policy session.CookiePolicy) {
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     oauthStateCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   true,
		SameSite: policy.SameSite,
	})
}

func (h *AccountHandler) googleLogin(c *gin.Context) {
	s, err := newOAuthState()
	if err != nil {
		abortWithError(c, err)
		return
	}

	url, err := h.svc.GoogleLoginURL(s.State, s.challenge())
	if err != nil {
		abortWithError(c, err)
		return
	}
	if err := writeOAuthStateCookie(c, s, h.cookies); err != nil {
		abortWithError(c, err)
		return
	}

	c.Redirect(http.StatusTemporaryRedirect, url)
}

func (h *AccountHandler) googleCallback(c *gin.Context) {
	s, err := readOAuthStateCookie(c)
	if err != nil {
		h.logger.Warn("google callback without a usable state cookie", "ip", c.ClientIP())
		abortWithError(c, err)
		return
	}
	clearOAuthStateCookie(c, h.cookies)

	returned := c.Query("state")
	if subtle.ConstantTimeCompare([]byte(returned), []byte(s.State)) != 1 {
		h.logger.Warn("google callback state mismatch", "ip", c.ClientIP())
		abortWithError(c, fail.NotAuthorized())
		return
	}

	code := c.Query("code")
	if code == "" {
		abortWithError(c, fail.NotAuthorized())
		return
	}

	token, err := h.svc.GoogleCallback(c.Request.Context(), code, s.Verifier)
	if err != nil {
		abortWithError(c, err)
		return
	}

	h.setSessionCookie(c, token)
	respond(c, http.StatusOK, "Logedin Successfully", nil)
}
