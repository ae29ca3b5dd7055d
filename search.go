package kad

import (
	"context"
	"sync"

	"github.com/davecgh/go-spew/spew"

	"github.com/james-lawrence/kad/int160"
	"github.com/james-lawrence/kad/internal/chansync"
)

const (
	defaultResults     = 8
	defaultParallelism = 3
)

// Option for a search.
type Option func(*Search)

// OptionResults sets the number of closest contacts to collect.
func OptionResults(n int) Option {
	return func(t *Search) {
		t.n = n
	}
}

// OptionParallelism bounds the number of concurrent workers.
func OptionParallelism(p int) Option {
	return func(t *Search) {
		t.p = p
	}
}

// OptionFilter vets resolved contacts before admission.
func OptionFilter(f Filter) Option {
	return func(t *Search) {
		t.filter = f
	}
}

// OptionSeeds adds contacts to the initial candidate queue in addition to
// the network's local knowledge.
func OptionSeeds(seeds ...Contact) Option {
	return func(t *Search) {
		t.seeds = append(t.seeds, seeds...)
	}
}

// OptionLogger receives per candidate failures and lifecycle events.
func OptionLogger(l logging) Option {
	return func(t *Search) {
		t.log = l
	}
}

// OptionDebug receives per step tracing, including dumps of every neighbor
// batch merged into the queue.
func OptionDebug(l logging) Option {
	return func(t *Search) {
		t.debug = l
	}
}

// NewSearch for the n closest live contacts to target. a search is single
// use; Start may be invoked at most once per instance.
func NewSearch(network Network, target int160.T, options ...Option) *Search {
	t := &Search{
		network: network,
		target:  target,
		n:       defaultResults,
		p:       defaultParallelism,
		log:     LogDiscard(),
		debug:   LogDiscard(),
		pending: newQueue(target),
		found:   newResultset(target, defaultResults),
	}

	for _, opt := range options {
		opt(t)
	}

	t.found.n = t.n

	return t
}

// Search coordinates one iterative lookup. the mutex serializes every
// mutation of the queue, the result set and the status; it is never held
// across a network call.
type Search struct {
	network Network
	target  int160.T
	n       int
	p       int
	filter  Filter
	seeds   []Contact
	log     logging
	debug   logging

	m       sync.Mutex
	status  Status
	pending *queue
	found   *resultset

	stats   searchStats
	workers sync.WaitGroup
	halted  chansync.SetOnce
}

// Start seeds the candidate queue from the network's local knowledge and
// launches the workers. returns immediately; ErrSearchStarted unless this
// is the first invocation. cancelling ctx cancels the search cooperatively.
func (t *Search) Start(ctx context.Context) error {
	t.m.Lock()
	if t.status != StatusIdle {
		t.m.Unlock()
		return ErrSearchStarted
	}

	t.status = StatusSearching
	t.found.reset()

	for _, c := range t.network.ClosestKnown(t.target, t.n) {
		t.pending.offer(c, t.found)
	}
	for _, c := range t.seeds {
		t.pending.offer(c, t.found)
	}
	t.m.Unlock()

	t.debug.Printf("search initiated target(%s) n(%d) p(%d) seeded(%d)\n", t.target, t.n, t.p, t.queued())

	t.workers.Add(t.p)
	for i := 0; i < t.p; i++ {
		go t.visit(ctx)
	}

	go func() {
		t.workers.Wait()
		// queue exhausted everywhere; promote to done unless a terminal
		// status already landed.
		t.finish(StatusDone)
		t.halted.Set()
		t.debug.Printf("search completed target(%s) status(%s) %s\n", t.target, t.Status(), t.Stats())
	}()

	return nil
}

// Wait blocks until every worker has finished or ctx expires. the context
// deadline bounds the whole wait, not each worker join.
func (t *Search) Wait(ctx context.Context) error {
	select {
	case <-t.halted.Done():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Cancel the search. workers observe the transition after their current
// network call returns; in flight calls are never preempted.
func (t *Search) Cancel() {
	t.finish(StatusCancelled)
}

func (t *Search) Status() Status {
	t.m.Lock()
	defer t.m.Unlock()
	return t.status
}

func (t *Search) Target() int160.T {
	return t.target
}

// Results snapshots the confirmed contacts discovered so far, closest
// first. may hold fewer than the requested n when the overlay is exhausted.
func (t *Search) Results() []Contact {
	t.m.Lock()
	defer t.m.Unlock()
	return t.found.snapshot()
}

func (t *Search) Stats() Stats {
	return t.stats.snapshot()
}

// visit is the worker loop: pop the closest candidate, identify it, admit
// it, then merge its neighbors back into the queue. per candidate faults
// are logged and never terminate the loop.
func (t *Search) visit(ctx context.Context) {
	defer t.workers.Done()

	for {
		if ctx.Err() != nil {
			t.finish(StatusCancelled)
			return
		}

		c, ok := t.next()
		if !ok {
			return
		}

		t.stats.visited.Add(1)
		t.debug.Printf("visiting %s at %s\n", c.contact.ID, c.contact.Addr)

		resolved, err := t.network.Identify(ctx, c.contact.Addr)
		if err != nil {
			t.stats.unreachable.Add(1)
			t.log.Printf("unable to contact %s: %v\n", c.contact.Addr, err)
			continue
		}

		if t.filter != nil {
			if err := t.filter(resolved); err != nil {
				t.stats.rejected.Add(1)
				t.log.Printf("rejected %s at %s: %v\n", resolved.ID, resolved.Addr, err)
				continue
			}
		}

		if !t.accept(resolved) {
			return
		}

		neighbors, err := t.network.Neighbors(ctx, resolved, t.target, t.n, t.ceiling())
		if err != nil {
			// the admission above is kept, only the expansion is lost.
			t.stats.queryFailures.Add(1)
			t.log.Printf("neighbor query via %s failed: %v\n", resolved.ID, err)
			continue
		}

		t.debug.Printf("neighbors via %s - %s", resolved.ID, spew.Sdump(neighbors))
		t.merge(neighbors)
	}
}

// next pops the closest queued candidate; false once the queue is empty or
// the search left the searching state.
func (t *Search) next() (c candidate, ok bool) {
	t.m.Lock()
	defer t.m.Unlock()

	if t.status != StatusSearching {
		return c, false
	}

	return t.pending.next()
}

// accept admits the resolved contact into the result set and detects the
// exact target match. false once the search is over and the worker should
// halt.
func (t *Search) accept(resolved Contact) bool {
	t.m.Lock()
	defer t.m.Unlock()

	if t.status.terminal() {
		return false
	}

	if t.found.admit(resolved) {
		t.stats.admitted.Add(1)
	}

	if resolved.ID == t.target {
		t.status = StatusDone
		return false
	}

	return true
}

// ceiling reports the live narrowing limit to forward to the remote node.
func (t *Search) ceiling() *int160.T {
	t.m.Lock()
	defer t.m.Unlock()
	return t.found.limit()
}

// merge offers an entire response batch under a single lock acquisition so
// no concurrent admission interleaves mid batch.
func (t *Search) merge(neighbors []Contact) {
	t.m.Lock()
	defer t.m.Unlock()

	if t.status.terminal() {
		return
	}

	for _, c := range neighbors {
		if t.pending.offer(c, t.found) {
			t.stats.offered.Add(1)
		}
	}
}

func (t *Search) finish(s Status) {
	t.m.Lock()
	defer t.m.Unlock()

	if t.status == StatusSearching {
		t.status = s
	}
}

func (t *Search) queued() int {
	t.m.Lock()
	defer t.m.Unlock()
	return t.pending.len()
}
