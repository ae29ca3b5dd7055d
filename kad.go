// Package kad implements the iterative node lookup used by kademlia style
// overlays: starting from locally known neighbors of a target identifier,
// repeatedly visit the closest unvisited candidate, ask it for its own
// closest known neighbors, and merge the answer back into the candidate
// set until no closer nodes remain or the exact target is found.
//
// transport, wire serialization and identity validation live behind the
// Network interface; this package only drives the search.
package kad

import (
	"context"
	"net/netip"

	"github.com/james-lawrence/kad/int160"
	"github.com/james-lawrence/kad/internal/multiless"
)

// Contact is an identifier paired with the endpoint it was last seen at.
// identifiers flowing out of the candidate queue are hints until Identify
// confirms them.
type Contact struct {
	ID   int160.T
	Addr netip.AddrPort
}

// Network is the collaborator a search runs against. implementations own
// connection lifecycle, wire formats and rate limiting.
type Network interface {
	// ClosestKnown returns up to count contacts near target from local
	// knowledge only, no network i/o.
	ClosestKnown(target int160.T, count int) []Contact
	// Identify establishes contact with the endpoint and returns the
	// authoritative contact actually present there.
	Identify(ctx context.Context, addr netip.AddrPort) (Contact, error)
	// Neighbors asks the via node for its closest known contacts to target.
	// a nil limit means no distance ceiling; otherwise the remote node
	// should omit contacts farther than limit. may return fewer than count.
	Neighbors(ctx context.Context, via Contact, target int160.T, count int, limit *int160.T) ([]Contact, error)
}

// Filter vets a resolved contact before it is admitted into the results.
// a nil error accepts; anything else rejects the contact without failing
// the search. filters may perform network i/o.
type Filter func(Contact) error

type candidate struct {
	contact  Contact
	distance int160.T
}

// orders candidates closest to the target first. distance ties only occur
// for identical identifiers, the address breaks them.
func candidateLess(a, b candidate) bool {
	var ml multiless.T
	ml.Compare(a.distance.Cmp(b.distance))
	ml.Compare(a.contact.Addr.Compare(b.contact.Addr))
	return ml.Less()
}
