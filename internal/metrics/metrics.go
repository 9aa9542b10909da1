package metrics

import (
	"sync"
	"time"
)

type syncStats struct {
	writes       int
	failures     int
	lastDuration time.Duration
}

// Recorder captures lightweight, in-memory counters and forwards them to OpenTelemetry when configured.
type Recorder struct {
	mu        sync.Mutex
	sync      syncStats
	ticks     int
	mutations map[string]int
	clients   int
	otel      *otelInstruments
}

func NewRecorder() *Recorder {
	return newRecorder(nil)
}

func newRecorder(otel *otelInstruments) *Recorder {
	return &Recorder{
		mutations: make(map[string]int),
		otel:      otel,
	}
}

// RecordSync tracks one file sync pass, its latency, and whether it failed.
func (r *Recorder) RecordSync(files int, duration time.Duration, err error) {
	if r == nil {
		return
	}

	r.mu.Lock()
	r.sync.writes += files
	r.sync.lastDuration = duration
	if err != nil {
		r.sync.failures++
	}
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordSync(files, duration, err)
	}
}

// RecordTick counts a clock tick.
func (r *Recorder) RecordTick() {
	if r == nil {
		return
	}
	r.mu.Lock()
	r.ticks++
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordTick()
	}
}

// RecordMutation counts a state change by operation name.
func (r *Recorder) RecordMutation(operation string) {
	if r == nil {
		return
	}
	r.mu.Lock()
	r.mutations[operation]++
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordMutation(operation)
	}
}

// RecordClients adjusts the connected websocket client gauge by delta.
func (r *Recorder) RecordClients(delta int) {
	if r == nil {
		return
	}
	r.mu.Lock()
	r.clients += delta
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordClients(delta)
	}
}

// RecordHTTPRequest tracks basic HTTP metrics.
func (r *Recorder) RecordHTTPRequest(method, path string, status int, duration time.Duration) {
	if r == nil || r.otel == nil {
		return
	}
	r.otel.recordHTTPRequest(method, path, status, duration)
}

// Snapshot is a copy of the in-memory counters.
type Snapshot struct {
	SyncWrites       int
	SyncFailures     int
	LastSyncDuration time.Duration
	Ticks            int
	Mutations        map[string]int
	Clients          int
}

func (r *Recorder) Snapshot() Snapshot {
	if r == nil {
		return Snapshot{}
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	mutations := make(map[string]int, len(r.mutations))
	for k, v := range r.mutations {
		mutations[k] = v
	}
	return Snapshot{
		SyncWrites:       r.sync.writes,
		SyncFailures:     r.sync.failures,
		LastSyncDuration: r.sync.lastDuration,
		Ticks:            r.ticks,
		Mutations:        mutations,
		Clients:          r.clients,
	}
}
