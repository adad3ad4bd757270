package http

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/samdev/lexibase/internal/domain/account"
	"github.com/samdev/lexibase/internal/domain/session"
	"github.com/samdev/lexibase/pkg/fail"
)

// authRequired gates a route group behind the session cookie. The
// cookie must be present, intact, and unexpired; the subject must
// resolve to an existing account. No partial principal is ever
// attached: on any failure the request is rejected with 401.
func authRequired(codec *session.Codec, svc account.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, err := c.Cookie(session.CookieName)
		if err != nil || raw == "" {
			abortWithError(c, fail.NotAuthorized())
			return
		}

		claims, err := codec.Verify(raw)
		if err != nil {
			abortWithError(c, err)
			return
		}
		if claims.Expired(time.Now()) {
			abortWithError(c, fail.NotAuthorized())
			return
		}

		user, err := svc.Principal(c.Request.Context(), claims.Subject)
		if err != nil {
			abortWithError(c, err)
			return
		}

		setPrincipal(c, user)
		c.Next()
	}
}
