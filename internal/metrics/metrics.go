// Package metrics tracks retrieval activity for the service endpoints.
package metrics

import (
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/NoreeIsmael/Next-Project/internal/engine"
	"github.com/NoreeIsmael/Next-Project/internal/model"
)

// Stats is a point-in-time snapshot of the collector.
type Stats struct {
	Uptime         string           `json:"uptime"`
	Queries        int64            `json:"queries"`
	EntriesServed  int64            `json:"entriesServed"`
	NotFound       int64            `json:"notFound"`
	Failures       int64            `json:"failures"`
	SeverityCounts map[string]int64 `json:"severityCounts"`
}

// Collector counts retrievals in a goroutine-safe way. Counters are
// atomics; only the severity histogram needs a lock.
type Collector struct {
	start    time.Time
	queries  atomic.Int64
	entries  atomic.Int64
	notFound atomic.Int64
	failures atomic.Int64

	mu         sync.Mutex
	bySeverity map[string]int64
}

// NewCollector creates a Collector with the clock started.
func NewCollector() *Collector {
	return &Collector{
		start:      time.Now(),
		bySeverity: make(map[string]int64),
	}
}

// RecordQuery tallies one retrieval and its outcome.
func (c *Collector) RecordQuery(served []model.LogEntry, err error) {
	c.queries.Add(1)
	switch {
	case errors.Is(err, engine.ErrNotFound):
		c.notFound.Add(1)
		return
	case err != nil:
		c.failures.Add(1)
		return
	}

	c.entries.Add(int64(len(served)))
	c.mu.Lock()
	for _, e := range served {
		c.bySeverity[e.Severity.String()]++
	}
	c.mu.Unlock()
}

// Snapshot returns the current counters.
func (c *Collector) Snapshot() Stats {
	c.mu.Lock()
	counts := make(map[string]int64, len(c.bySeverity))
	for k, v := range c.bySeverity {
		counts[k] = v
	}
	c.mu.Unlock()

	return Stats{
		Uptime:         time.Since(c.start).Truncate(time.Second).String(),
		Queries:        c.queries.Load(),
		EntriesServed:  c.entries.Load(),
		NotFound:       c.notFound.Load(),
		Failures:       c.failures.Load(),
		SeverityCounts: counts,
	}
}
