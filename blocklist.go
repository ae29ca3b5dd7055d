package kad

import (
	"net/netip"
	"sync"

	"github.com/anacrolix/multiless"
	"github.com/bits-and-blooms/bloom/v3"
	"github.com/google/btree"

	"github.com/james-lawrence/kad/internal/errorsx"
	"github.com/james-lawrence/kad/internal/fnvx"
)

const defaultBlockThreshold = 3

// failures are stored with their count at insertion. least failing
// endpoints are evicted first when the tracker fills.
type failing struct {
	count uint32
	addr  netip.AddrPort
}

func failingCmp(a, b failing) bool {
	return multiless.New().Uint32(
		a.count, b.count,
	).Uint32(
		fnvx.Uint32(a.addr.String()), fnvx.Uint32(b.addr.String()),
	).Less()
}

// NewBlocklist tracking per endpoint failure counts for at most n
// endpoints. evicted endpoints leave a trace in a bloom filter so repeat
// offenders are blocked quickly when they resurface.
func NewBlocklist(n int) *Blocklist {
	return &Blocklist{
		threshold: defaultBlockThreshold,
		cap:       n,
		om:        btree.NewG(2, failingCmp),
		counts:    make(map[netip.AddrPort]uint32, n),
		seen:      bloom.NewWithEstimates(100_000, 0.001),
	}
}

// Blocklist remembers endpoints that repeatedly fail to identify.
type Blocklist struct {
	m         sync.Mutex
	threshold uint32
	cap       int
	om        *btree.BTreeG[failing]
	counts    map[netip.AddrPort]uint32
	seen      *bloom.BloomFilter
}

// Record a failure against the endpoint.
func (t *Blocklist) Record(addr netip.AddrPort) {
	t.m.Lock()
	defer t.m.Unlock()

	count, known := t.counts[addr]
	if known {
		t.om.Delete(failing{count: count, addr: addr})
	} else if t.seen.TestString(addr.String()) {
		// failed before being evicted, resume just below the threshold.
		count = t.threshold - 1
	}

	t.seen.AddString(addr.String())

	count++
	t.counts[addr] = count
	t.om.ReplaceOrInsert(failing{count: count, addr: addr})

	if t.om.Len() > t.cap {
		if evicted, ok := t.om.DeleteMin(); ok {
			delete(t.counts, evicted.addr)
		}
	}
}

func (t *Blocklist) Blocked(addr netip.AddrPort) bool {
	t.m.Lock()
	defer t.m.Unlock()

	return t.counts[addr] >= t.threshold
}

func (t *Blocklist) Len() int {
	t.m.Lock()
	defer t.m.Unlock()

	return t.om.Len()
}

// Filter adapts the blocklist to the search admission hook.
func (t *Blocklist) Filter() Filter {
	return func(c Contact) error {
		if t.Blocked(c.Addr) {
			return errorsx.Errorf("endpoint blocked %s", c.Addr)
		}

		return nil
	}
}
