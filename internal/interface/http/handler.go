package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/samdev/lexibase/internal/domain/account"
	"github.com/samdev/lexibase/internal/domain/session"
	"github.com/samdev/lexibase/pkg/fail"
)

// AccountHandler exposes the account lifecycle over HTTP. It only
// translates between the wire and the service; every business rule
// lives behind account.Service.
type AccountHandler struct {
	svc        account.Service
	sessionTTL int
	cookies    session.CookiePolicy
	logger     *slog.Logger
}

func NewAccountHandler(svc account.Service, sessionTTLSeconds int, cookies session.CookiePolicy, logger *slog.Logger) *AccountHandler {
	return &AccountHandler{
		svc:        svc,
		sessionTTL: sessionTTLSeconds,
		cookies:    cookies,
		logger:     logger.With("component", "account_handler"),
	}
}

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type emailRequest struct {
	Email string `json:"email"`
}

type resetPasswordRequest struct {
	Token    string `json:"token"`
	Password string `json:"password"`
}

func (h *AccountHandler) register(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, fail.InvalidJSON(err))
		return
	}

	creds := account.Credentials{Email: req.Email, Password: req.Password}
	if err := h.svc.Register(c.Request.Context(), creds); err != nil {
		abortWithError(c, err)
		return
	}

	respond(c, http.StatusCreated, "User added successfully! The only step left is to check your email and verify it.", nil)
}

func (h *AccountHandler) login(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, fail.InvalidJSON(err))
		return
	}

	creds := account.Credentials{Email: req.Email, Password: req.Password}
	token, err := h.svc.Login(c.Request.Context(), creds)
	if err != nil {
		abortWithError(c, err)
		return
	}

	h.setSessionCookie(c, token)
	respond(c, http.StatusOK, "Logedin Successfully", nil)
}

func (h *AccountHandler) logout(c *gin.Context) {
	http.SetCookie(c.Writer, session.ExpiredCookie(h.cookies))
	respond(c, http.StatusOK, "Logged out successfully", nil)
}

func (h *AccountHandler) verifyEmail(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		abortWithError(c, fail.InvalidToken())
		return
	}

	if err := h.svc.VerifyEmail(c.Request.Context(), token); err != nil {
		abortWithError(c, err)
		return
	}

	respond(c, http.StatusOK, "Email verified successfully", nil)
}

func (h *AccountHandler) resendVerification(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		abortWithError(c, fail.InvalidToken())
		return
	}

	if err := h.svc.ResendVerification(c.Request.Context(), token); err != nil {
		abortWithError(c, err)
		return
	}

	respond(c, http.StatusOK, "Resent successfully! check your email and verify it.", nil)
}

func (h *AccountHandler) forgotPassword(c *gin.Context) {
	var req emailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, fail.InvalidJSON(err))
		return
	}

	if err := h.svc.ForgotPassword(c.Request.Context(), req.Email); err != nil {
		abortWithError(c, err)
		return
	}

	respond(c, http.StatusOK, "Check Your Email Box", nil)
}

func (h *AccountHandler) resetPassword(c *gin.Context) {
	var req resetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, fail.InvalidJSON(err))
		return
	}
	if req.Token == "" {
		abortWithError(c, fail.InvalidToken())
		return
	}

	if err := h.svc.ResetPassword(c.Request.Context(), req.Token, req.Password); err != nil {
		abortWithError(c, err)
		return
	}

	respond(c, http.StatusOK, "Password reset successfully", nil)
}

func (h *AccountHandler) me(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		abortWithError(c, fail.NotAuthorized())
		return
	}
	respond(c, http.StatusOK, "OK", user)
}

func (h *AccountHandler) setSessionCookie(c *gin.Context, token string) {
	http.SetCookie(c.Writer, session.Cookie(token, h.sessionTTL, h.cookies))
}
