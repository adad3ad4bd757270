package http

import (
	"github.com/gin-gonic/gin"

	"github.com/samdev/lexibase/internal/domain/account"
)

const principalKey = "lexibase/principal"

func setPrincipal(c *gin.Context, user account.User) {
	c.Set(principalKey, user)
}

// currentUser returns the authenticated account attached by the auth
// middleware. The second result is false on unauthenticated routes.
func currentUser(c *gin.Context) (account.User, bool) {
	v, ok := c.Get(principalKey)
	if !ok {
		return account.User{}, false
	}
	user, ok := v.(account.User)
	return user, ok
}
