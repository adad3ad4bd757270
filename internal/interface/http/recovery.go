package http

import (
	"fmt"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/samdev/lexibase/pkg/metrics"
)

// staticFailureBody is the exact payload a panicking request receives.
// It is precomputed so the boundary cannot itself fail on marshalling.
var staticFailureBody = []byte(`{"success":false,"message":"An error occurred","status_code":500}`)

// panicBoundary is the outermost middleware. It converts any panic
// below it into a fixed 500 envelope, never echoing the panic value,
// and hands the details to the crash reporter.
//
// The response is written to the writer captured on entry: inner
// middleware may have swapped c.Writer for a buffering wrapper that
// will never flush once its handler has panicked.
func panicBoundary(reporter *CrashReporter, counters *metrics.Requests) gin.HandlerFunc {
	return func(c *gin.Context) {
		w := c.Writer
		defer func() {
			v := recover()
			if v == nil {
				return
			}
			counters.ObservePanic()
			reporter.Report(CrashReport{
				Path:    c.Request.URL.Path,
				Method:  c.Request.Method,
				Message: panicMessage(v),
				Stack:   debug.Stack(),
				At:      time.Now(),
			})
			if !w.Written() {
				w.Header().Set("Content-Type", "application/json; charset=utf-8")
				w.WriteHeader(http.StatusInternalServerError)
				_, _ = w.Write(staticFailureBody)
			}
			c.Abort()
		}()
		c.Next()
	}
}

func panicMessage(v any) string {
	switch m := v.(type) {
	case string:
		return m
	case error:
		return m.Error()
	default:
		return fmt.Sprintf("unexpected panic: %v", m)
	}
}
