package http

import (
	"github.com/gin-gonic/gin"
)

// Envelope is the single response shape every request resolves to,
// success or failure. StatusCode mirrors the HTTP status so clients
// behind body-only transports can still branch on it.
type Envelope struct {
	Success    bool   `json:"success"`
	Message    string `json:"message"`
	StatusCode int    `json:"status_code"`
	Data       any    `json:"data,omitempty"`
}

func respond(c *gin.Context, status int, message string, data any) {
	c.JSON(status, Envelope{
		Success:    status < 400,
		Message:    message,
		StatusCode: status,
		Data:       data,
	})
}
