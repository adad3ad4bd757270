package http

import (
	"context"
	"log/slog"
	"time"
)

// CrashReport carries what a panicking handler left behind. The full
// detail is logged out of band; none of it reaches the client.
type CrashReport struct {
	Path    string
	Method  string
	Message string
	Stack   []byte
	At      time.Time
}

// CrashReporter logs panics asynchronously so the request goroutine can
// answer immediately. Reports are dropped, with a counter-free best
// effort, if the queue is full.
type CrashReporter struct {
	logger *slog.Logger
	queue  chan CrashReport
	done   chan struct{}
}

func NewCrashReporter(logger *slog.Logger) *CrashReporter {
	r := &CrashReporter{
		logger: logger.With("component", "crash_reporter"),
		queue:  make(chan CrashReport, 64),
		done:   make(chan struct{}),
	}
	go r.run()
	return r
}

func (r *CrashReporter) run() {
	defer close(r.done)
	for report := range r.queue {
		r.logger.Error("handler panicked",
			"method", report.Method,
			"path", report.Path,
			"panic", report.Message,
			"stack", string(report.Stack),
			"at", report.At.UTC().Format(time.RFC3339),
		)
	}
}

// Report enqueues without blocking the request path.
func (r *CrashReporter) Report(report CrashReport) {
	select {
	case r.queue <- report:
	default:
		r.logger.Warn("crash report dropped", "path", report.Path)
	}
}

// Close drains pending reports before returning.
func (r *CrashReporter) Close(ctx context.Context) error {
	close(r.queue)
	select {
	case <-r.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
