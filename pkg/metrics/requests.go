// Package metrics keeps lightweight in-process counters. They feed the
// health endpoint; anything heavier belongs in an external collector.
package metrics

import "sync/atomic"

// Requests tallies request outcomes by class.
type Requests struct {
	succeeded atomic.Int64
	clientErr atomic.Int64
	serverErr atomic.Int64
	panicked  atomic.Int64
}

func (r *Requests) Observe(status int) {
	switch {
	case status >= 500:
		r.serverErr.Add(1)
	case status >= 400:
		r.clientErr.Add(1)
	default:
		r.succeeded.Add(1)
	}
}

func (r *Requests) ObservePanic() {
	r.panicked.Add(1)
}

// Snapshot is a point-in-time copy safe to serialize.
type Snapshot struct {
	Succeeded    int64 `json:"succeeded"`
	ClientErrors int64 `json:"clientErrors"`
	ServerErrors int64 `json:"serverErrors"`
	Panics       int64 `json:"panics"`
}

func (r *Requests) Snapshot() Snapshot {
	return Snapshot{
		Succeeded:    r.succeeded.Load(),
		ClientErrors: r.clientErr.Load(),
		ServerErrors: r.serverErr.Load(),
		Panics:       r.panicked.Load(),
	}
}
