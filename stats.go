package kad

import (
	"fmt"
	"sync/atomic"
)

// Stats is a snapshot of the per search counters.
type Stats struct {
	Visited       uint64 // candidates removed from the queue
	Unreachable   uint64 // identify failures
	Rejected      uint64 // filter rejections
	Admitted      uint64 // contacts accepted into the result set
	QueryFailures uint64 // neighbor queries that errored
	Offered       uint64 // contacts merged into the queue from responses
}

func (stats Stats) String() string {
	return fmt.Sprintf(
		"visited(%d) admitted(%d) offered(%d) unreachable(%d) rejected(%d) failed(%d)",
		stats.Visited, stats.Admitted, stats.Offered, stats.Unreachable, stats.Rejected, stats.QueryFailures,
	)
}

type searchStats struct {
	visited       atomic.Uint64
	unreachable   atomic.Uint64
	rejected      atomic.Uint64
	admitted      atomic.Uint64
	queryFailures atomic.Uint64
	offered       atomic.Uint64
}

func (t *searchStats) snapshot() Stats {
	return Stats{
		Visited:       t.visited.Load(),
		Unreachable:   t.unreachable.Load(),
		Rejected:      t.rejected.Load(),
		Admitted:      t.admitted.Load(),
		QueryFailures: t.queryFailures.Load(),
		Offered:       t.offered.Load(),
	}
}
