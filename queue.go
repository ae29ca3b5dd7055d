package kad

import (
	"github.com/google/btree"

	"github.com/james-lawrence/kad/int160"
)

func newQueue(target int160.T) *queue {
	return &queue{
		target: target,
		tree:   btree.NewG(2, candidateLess),
	}
}

// queue of known but unvisited contacts, ordered by distance to the target
// so exploration is always closest first. callers serialize access.
type queue struct {
	target int160.T
	tree   *btree.BTreeG[candidate]
}

// offer the contact for a future visit. refused when the identifier is
// already a confirmed result, or when the result set is full and the
// contact is no closer than its worst entry.
func (t *queue) offer(c Contact, confirmed *resultset) bool {
	if confirmed.contains(c.ID) {
		return false
	}

	distance := t.target.Distance(c.ID)
	if limit := confirmed.limit(); limit != nil && distance.Cmp(*limit) >= 0 {
		return false
	}

	t.tree.ReplaceOrInsert(candidate{contact: c, distance: distance})
	return true
}

// next removes and returns the closest queued contact.
func (t *queue) next() (candidate, bool) {
	return t.tree.DeleteMin()
}

func (t *queue) len() int {
	return t.tree.Len()
}
