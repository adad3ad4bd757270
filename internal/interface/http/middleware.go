package http

import (
	"bytes"
	"encoding/json"
	"math"
	"net/http"
	"sync"
	"time"
	"unicode/utf8"

	"log/slog"

	"github.com/gin-gonic/gin"

	"github.com/samdev/lexibase/internal/infra/config"
	"github.com/samdev/lexibase/pkg/fail"
)

// responseNormalizer guarantees every error response leaving the
// service is an Envelope, whichever layer produced it. Success bodies
// pass through untouched. Handler-recorded domain errors are mapped
// here; raw 4xx/5xx bodies written by anything else are rewrapped.
func responseNormalizer(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		w := &bufferedWriter{ResponseWriter: c.Writer, status: http.StatusOK}
		c.Writer = w
		defer func() { c.Writer = w.ResponseWriter }()

		c.Next()

		if len(c.Errors) > 0 && w.buf.Len() == 0 {
			ferr := fail.Coerce(c.Errors.Last().Err)
			status := fail.HTTPStatus(ferr.Kind)
			logFailure(logger, c, status, ferr)
			w.status = status
			writeEnvelope(w.ResponseWriter, Envelope{
				Success:    false,
				Message:    fail.ClientMessage(ferr),
				StatusCode: status,
			})
			return
		}

		if w.status < http.StatusBadRequest {
			w.flush()
			return
		}

		writeEnvelope(w.ResponseWriter, normalizeErrorBody(w.buf.Bytes(), w.status))
	}
}

// normalizeErrorBody re-stamps bodies that already are envelopes and
// wraps everything else, invalid UTF-8 included, at the same status.
func normalizeErrorBody(body []byte, status int) Envelope {
	var env Envelope
	if err := json.Unmarshal(body, &env); err == nil && env.StatusCode != 0 {
		env.Success = false
		// The wire status is authoritative; an embedded code that
		// disagrees would break success == (status < 400).
		env.StatusCode = status
		return env
	}
	message := "Unknown error"
	if len(body) > 0 && utf8.Valid(body) {
		message = string(body)
	}
	return Envelope{Success: false, Message: message, StatusCode: status}
}

func logFailure(logger *slog.Logger, c *gin.Context, status int, ferr *fail.Error) {
	if status >= http.StatusInternalServerError {
		logger.Error("request failed", "status", status, "path", c.Request.URL.Path, "error", ferr.Error())
	} else {
		logger.Warn("request failed", "status", status, "path", c.Request.URL.Path, "error", ferr.Error())
	}
}

func writeEnvelope(w gin.ResponseWriter, env Envelope) {
	payload, err := json.Marshal(env)
	if err != nil {
		payload = staticFailureBody
		env.StatusCode = http.StatusInternalServerError
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(env.StatusCode)
	_, _ = w.Write(payload)
}

// bufferedWriter holds the body back until the normalizer has seen the
// final status. Only Write/WriteHeader are intercepted; headers still
// go straight to the shared header map.
type bufferedWriter struct {
	gin.ResponseWriter
	buf     bytes.Buffer
	status  int
	written bool
}

func (w *bufferedWriter) WriteHeader(code int) {
	if code > 0 {
		w.status = code
	}
	w.written = true
}

func (w *bufferedWriter) WriteHeaderNow() {}

func (w *bufferedWriter) Write(b []byte) (int, error) {
	w.written = true
	return w.buf.Write(b)
}

func (w *bufferedWriter) WriteString(s string) (int, error) {
	w.written = true
	return w.buf.WriteString(s)
}

func (w *bufferedWriter) Status() int {
	return w.status
}

func (w *bufferedWriter) Size() int {
	return w.buf.Len()
}

func (w *bufferedWriter) Written() bool {
	return w.written
}

func (w *bufferedWriter) flush() {
	w.ResponseWriter.WriteHeader(w.status)
	if w.buf.Len() > 0 {
		_, _ = w.ResponseWriter.Write(w.buf.Bytes())
	}
}

// rateLimitMiddleware guards the credential endpoints against
// brute-force attempts with a per-IP token bucket.
func rateLimitMiddleware(cfg config.RateLimitConfig, logger *slog.Logger) gin.HandlerFunc {
	if !cfg.Enabled || cfg.RequestsPerMinute <= 0 {
		return func(c *gin.Context) { c.Next() }
	}

	limiter := newIPRateLimiter(cfg)
	return func(c *gin.Context) {
		ip := c.ClientIP()
		if limiter.allow(ip) {
			c.Next()
			return
		}
		logger.Warn("rate limit exceeded", "ip", ip, "path", c.Request.URL.Path)
		respond(c, http.StatusTooManyRequests, "Too many requests", nil)
		c.Abort()
	}
}

type ipRateLimiter struct {
	visitors      map[string]*visitor
	mu            sync.Mutex
	ratePerMinute float64
	burst         float64
	ttl           time.Duration
}

type visitor struct {
	tokens   float64
	lastSeen time.Time
}

func newIPRateLimiter(cfg config.RateLimitConfig) *ipRateLimiter {
	return &ipRateLimiter{
		visitors:      make(map[string]*visitor),
		ratePerMinute: float64(cfg.RequestsPerMinute),
		burst:         float64(cfg.Burst),
		ttl:           5 * time.Minute,
	}
}

func (l *ipRateLimiter) allow(ip string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	now := time.Now()
	v, ok := l.visitors[ip]
	if !ok {
		v = &visitor{tokens: l.burst, lastSeen: now}
		l.visitors[ip] = v
	} else {
		elapsed := now.Sub(v.lastSeen).Minutes()
		if elapsed > 0 {
			refill := elapsed * l.ratePerMinute
			v.tokens = math.Min(l.burst, v.tokens+refill)
		}
		v.lastSeen = now
	}
	l.cleanupLocked(now)
	if v.tokens < 1 {
		return false
	}
	v.tokens -= 1
	return true
}

func (l *ipRateLimiter) cleanupLocked(now time.Time) {
	for ip, v := range l.visitors {
		if now.Sub(v.lastSeen) > l.ttl {
			delete(l.visitors, ip)
		}
	}
}
