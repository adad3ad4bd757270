package http

import (
	"github.com/gin-gonic/gin"
)

// abortWithError records a domain error on the context and stops the
// chain. The normalizer middleware turns it into an Envelope; handlers
// never serialize failures themselves.
func abortWithError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	_ = c.Error(err)
	c.Abort()
}
