// Package memnet simulates an overlay entirely in process: nodes are
// addressed by loopback endpoints, hold real routing tables, and answer
// identify/neighbor calls without a transport. used by tests, benchmarks
// and the simulator command.
package memnet

import (
	"context"
	"net/netip"
	"sync"
	"sync/atomic"
	"time"

	"github.com/james-lawrence/kad"
	"github.com/james-lawrence/kad/int160"
	"github.com/james-lawrence/kad/internal/atomicx"
	"github.com/james-lawrence/kad/internal/errorsx"
)

// ErrUnreachable the endpoint is unknown to the overlay or was dropped.
const ErrUnreachable = errorsx.String("unreachable endpoint")

// Option for an overlay.
type Option func(*Overlay)

// OptionLatency applies a fixed delay to every simulated network call.
func OptionLatency(d time.Duration) Option {
	return func(t *Overlay) {
		t.latency = d
	}
}

// OptionK bounds the routing table buckets of joined nodes.
func OptionK(k int) Option {
	return func(t *Overlay) {
		t.k = k
	}
}

// NewOverlay with no nodes.
func NewOverlay(options ...Option) *Overlay {
	t := &Overlay{
		k:        8,
		nextport: 10000,
		nodes:    make(map[netip.AddrPort]*Node, 128),
	}

	for _, opt := range options {
		opt(t)
	}

	return t
}

// Overlay of simulated nodes.
type Overlay struct {
	m        sync.Mutex
	k        int
	latency  time.Duration
	nextport uint16
	nodes    map[netip.AddrPort]*Node
}

// Join adds a node with the given identifier, assigning it the next
// loopback endpoint.
func (t *Overlay) Join(id int160.T) *Node {
	t.m.Lock()
	defer t.m.Unlock()

	addr := netip.AddrPortFrom(netip.AddrFrom4([4]byte{127, 0, 0, 1}), t.nextport)
	t.nextport++

	n := &Node{
		overlay: t,
		self:    kad.Contact{ID: id, Addr: addr},
		table:   kad.NewTable(id, t.k),
		dropped: atomicx.Bool(false),
	}
	t.nodes[addr] = n

	return n
}

// Drop marks the endpoint unreachable, simulating a dead node. its
// contact remains in other tables and continues to be handed out.
func (t *Overlay) Drop(addr netip.AddrPort) {
	if n, ok := t.lookup(addr); ok {
		n.dropped.Store(true)
	}
}

func (t *Overlay) Len() int {
	t.m.Lock()
	defer t.m.Unlock()

	return len(t.nodes)
}

func (t *Overlay) lookup(addr netip.AddrPort) (*Node, bool) {
	t.m.Lock()
	defer t.m.Unlock()

	n, ok := t.nodes[addr]
	return n, ok
}

func (t *Overlay) pause(ctx context.Context) error {
	if t.latency == 0 {
		return ctx.Err()
	}

	select {
	case <-time.After(t.latency):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Node is one simulated overlay member.
type Node struct {
	overlay *Overlay
	self    kad.Contact
	table   *kad.Table
	dropped *atomic.Bool
}

func (t *Node) Contact() kad.Contact {
	return t.self
}

func (t *Node) ID() int160.T {
	return t.self.ID
}

func (t *Node) Addr() netip.AddrPort {
	return t.self.Addr
}

func (t *Node) Table() *kad.Table {
	return t.table
}

// Learn records the contacts into this node's routing table. full buckets
// reject silently, matching how a maintained table would behave.
func (t *Node) Learn(contacts ...kad.Contact) {
	for _, c := range contacts {
		_ = t.table.Add(c)
	}
}

// Network exposes this node's view of the overlay as a kad.Network.
func (t *Node) Network() kad.Network {
	return network{node: t}
}

type network struct {
	node *Node
}

func (t network) ClosestKnown(target int160.T, count int) []kad.Contact {
	return t.node.table.Closest(target, count)
}

func (t network) Identify(ctx context.Context, addr netip.AddrPort) (kad.Contact, error) {
	o := t.node.overlay

	if err := o.pause(ctx); err != nil {
		return kad.Contact{}, err
	}

	remote, ok := o.lookup(addr)
	if !ok || remote.dropped.Load() {
		return kad.Contact{}, errorsx.Wrapf(ErrUnreachable, "identify %s", addr)
	}

	return remote.self, nil
}

func (t network) Neighbors(ctx context.Context, via kad.Contact, target int160.T, count int, limit *int160.T) ([]kad.Contact, error) {
	o := t.node.overlay

	if err := o.pause(ctx); err != nil {
		return nil, err
	}

	remote, ok := o.lookup(via.Addr)
	if !ok || remote.dropped.Load() {
		return nil, errorsx.Wrapf(ErrUnreachable, "query %s", via.Addr)
	}

	closest := remote.table.Closest(target, count)
	if limit == nil {
		return closest, nil
	}

	// honor the ceiling, the caller will not accept anything farther.
	keep := make([]kad.Contact, 0, len(closest))
	for _, c := range closest {
		if target.Distance(c.ID).Cmp(*limit) < 0 {
			keep = append(keep, c)
		}
	}

	return keep, nil
}
