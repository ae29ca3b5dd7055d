package kad

import (
	"github.com/google/btree"

	"github.com/james-lawrence/kad/int160"
)

func newResultset(target int160.T, n int) *resultset {
	return &resultset{
		target: target,
		n:      n,
		tree:   btree.NewG(2, candidateLess),
		member: make(map[int160.T]struct{}, n),
	}
}

// resultset holds the n closest confirmed contacts seen so far, ordered by
// distance to the target. once full every insert evicts the current worst,
// which is what lets the search only get narrower. callers serialize access.
type resultset struct {
	target int160.T
	n      int
	tree   *btree.BTreeG[candidate]
	member map[int160.T]struct{}
}

// admit the contact, evicting the worst entry when the cap is exceeded.
// admitting a known identifier is a no-op.
func (t *resultset) admit(c Contact) bool {
	if _, ok := t.member[c.ID]; ok {
		return false
	}

	t.member[c.ID] = struct{}{}
	t.tree.ReplaceOrInsert(candidate{contact: c, distance: t.target.Distance(c.ID)})

	if t.tree.Len() > t.n {
		if worst, ok := t.tree.DeleteMax(); ok {
			delete(t.member, worst.contact.ID)
		}
	}

	return true
}

func (t *resultset) contains(id int160.T) bool {
	_, ok := t.member[id]
	return ok
}

// limit is the distance of the worst entry once the set is full, nil until
// then. recomputed from the live tree on every call, never cached.
func (t *resultset) limit() *int160.T {
	if t.n == 0 || t.tree.Len() < t.n {
		return nil
	}

	worst, ok := t.tree.Max()
	if !ok {
		return nil
	}

	return &worst.distance
}

func (t *resultset) reset() {
	t.tree.Clear(false)
	clear(t.member)
}

func (t *resultset) snapshot() (ret []Contact) {
	ret = make([]Contact, 0, t.tree.Len())
	t.tree.Ascend(func(c candidate) bool {
		ret = append(ret, c.contact)
		return true
	})
	return ret
}
