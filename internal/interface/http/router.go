package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/samdev/lexibase/internal/domain/account"
	"github.com/samdev/lexibase/internal/domain/session"
	"github.com/samdev/lexibase/internal/infra/config"
	"github.com/samdev/lexibase/pkg/metrics"
)

// NewRouter wires up the HTTP handlers and returns a configured server.
// Middleware order matters: the panic boundary sits outermost so a
// crash anywhere below still yields the fixed 500 envelope, and the
// normalizer sits inside it so every ordinary error leaves as an
// Envelope.
func NewRouter(cfg *config.Config, handler *AccountHandler, codec *session.Codec, svc account.Service, reporter *CrashReporter, logger *slog.Logger) *http.Server {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	counters := &metrics.Requests{}
	router.Use(
		panicBoundary(reporter, counters),
		requestLogger(logger, counters),
		responseNormalizer(logger),
		corsMiddleware(cfg.HTTP.AllowedOrigins),
	)

	started := time.Now()
	router.GET("/healthz", func(c *gin.Context) {
		respond(c, http.StatusOK, "OK", gin.H{
			"uptime_s": int64(time.Since(started).Seconds()),
			"requests": counters.Snapshot(),
		})
	})

	throttled := rateLimitMiddleware(cfg.HTTP.RateLimit, logger)

	users := router.Group("/users")
	{
		users.POST("/add", throttled, handler.register)
		users.POST("/login", throttled, handler.login)
		users.POST("/logout", handler.logout)
		users.GET("/verify-email", handler.verifyEmail)
		users.GET("/resend-verification", handler.resendVerification)
		users.POST("/forgot-password", throttled, handler.forgotPassword)
		users.POST("/reset-password", throttled, handler.resetPassword)

		if cfg.Google.Enabled() {
			users.GET("/login-with-google", handler.googleLogin)
			users.GET("/login-with-google/callback", handler.googleCallback)
		}

		authed := users.Group("", authRequired(codec, svc))
		authed.GET("/me", handler.me)
	}

	return &http.Server{
		Addr:           cfg.HTTP.Address,
		Handler:        router,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		MaxHeaderBytes: 1 << 20,
	}
}

func requestLogger(logger *slog.Logger, counters *metrics.Requests) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		latency := time.Since(start)
		counters.Observe(c.Writer.Status())
		logger.Info("http request", "method", c.Request.Method, "path", c.Request.URL.Path, "status", c.Writer.Status(), "latency_ms", latency.Milliseconds())
	}
}
