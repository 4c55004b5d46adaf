//go:build debug

package animir

import (
	"encoding/json"
	"sync/atomic"
)

// PerfMetrics accumulates deterministic per-run counters (frames rendered,
// commands emitted, paths registered, issues observed); it records no
// timings.
// It only exists in debug builds (built with -tags debug); the release
// build substitutes a zero-cost no-op counterpart in
// perfmetrics_release.go, so instrumentation never costs anything in a
// production binary — counters are debug-build-only rather than toggleable
// at runtime.
type PerfMetrics struct {
	framesRendered  int64
	commandsEmitted int64
	pathsRegistered int64
	issuesObserved  int64
}

// globalMetrics is the process-wide metrics sink every AnimIR sample call
// reports into.
var globalMetrics PerfMetrics

// Metrics returns the process-wide debug-build metrics sink.
func Metrics() *PerfMetrics { return &globalMetrics }

func (m *PerfMetrics) recordFrame(commandCount int, issueCount int) {
	atomic.AddInt64(&m.framesRendered, 1)
	atomic.AddInt64(&m.commandsEmitted, int64(commandCount))
	atomic.AddInt64(&m.issuesObserved, int64(issueCount))
}

func (m *PerfMetrics) recordPathRegistered() {
	atomic.AddInt64(&m.pathsRegistered, 1)
}

// Reset zeroes every counter.
func (m *PerfMetrics) Reset() {
	atomic.StoreInt64(&m.framesRendered, 0)
	atomic.StoreInt64(&m.commandsEmitted, 0)
	atomic.StoreInt64(&m.pathsRegistered, 0)
	atomic.StoreInt64(&m.issuesObserved, 0)
}

// perfReport is the JSON shape Report() produces.
type perfReport struct {
	FramesRendered  int64 `json:"framesRendered"`
	CommandsEmitted int64 `json:"commandsEmitted"`
	PathsRegistered int64 `json:"pathsRegistered"`
	IssuesObserved  int64 `json:"issuesObserved"`
}

// Report renders the current counters as deterministic JSON, with keys in
// the fixed declaration order of perfReport's fields.
func (m *PerfMetrics) Report() ([]byte, error) {
	return json.Marshal(perfReport{
		FramesRendered:  atomic.LoadInt64(&m.framesRendered),
		CommandsEmitted: atomic.LoadInt64(&m.commandsEmitted),
		PathsRegistered: atomic.LoadInt64(&m.pathsRegistered),
		IssuesObserved:  atomic.LoadInt64(&m.issuesObserved),
	})
}
