// Package metrics is a minimal counter seam with a process-wide backend.
//
// The default backend discards everything, so library code can record counters
// unconditionally; cmd wiring installs a real backend when the operator asks
// for one.
package metrics

import "sync"

// Labels are free-form tag pairs attached to a metric observation.
type Labels map[string]string

// Backend receives metric observations.
type Backend interface {
	// IncCounter adds delta to the named counter. Implementations ignore
	// metric names they do not know.
	IncCounter(name string, delta float64, labels Labels)

	// Flush submits anything buffered. Safe to call at any time.
	Flush() error
}

var (
	mu      sync.RWMutex
	backend Backend = nopBackend{}
)

// SetBackend installs b as the process-wide backend.
func SetBackend(b Backend) {
	if b == nil {
		return
	}
	mu.Lock()
	backend = b
	mu.Unlock()
}

// Inc adds delta to the named counter on the current backend.
func Inc(name string, delta float64, labels Labels) {
	mu.RLock()
	b := backend
	mu.RUnlock()
	b.IncCounter(name, delta, labels)
}

type nopBackend struct{}

func (nopBackend) IncCounter(string, float64, Labels) {}
func (nopBackend) Flush() error                       { return nil }
