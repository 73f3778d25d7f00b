// Package insight contains the on-demand analytics use cases: cashflow
// projection, quote pipeline conversion, project performance, client/service
// rankings and project workload. Every use case is a stateless single-pass
// reduction over an already-scoped row set plus the injected clock.
package insight

import "time"

// Clock abstracts wall-clock access so use cases stay deterministic in tests.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

// NewSystemClock returns a Clock backed by time.Now in UTC.
func NewSystemClock() Clock {
	return systemClock{}
}

func (systemClock) Now() time.Time {
	return time.Now().UTC()
}
