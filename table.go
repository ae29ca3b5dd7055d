package kad

import (
	"fmt"
	"io"
	"slices"
	"sync"

	"github.com/james-lawrence/kad/int160"
	"github.com/james-lawrence/kad/internal/errorsx"
)

const (
	ErrTableRootID     = errorsx.String("refusing to track the root identifier")
	ErrTableBucketFull = errorsx.String("bucket is full")
)

// NewTable rooted at the given identifier. k bounds each of the 160
// distance buckets. a table answers the ClosestKnown leg of Network from
// local knowledge; refresh and eviction are the embedder's concern.
func NewTable(root int160.T, k int) *Table {
	return &Table{
		root: root,
		k:    k,
		m:    &sync.Mutex{},
	}
}

// Table of known contacts, bucketed by the bit length of their distance
// from the root identifier.
type Table struct {
	root    int160.T
	k       int
	m       *sync.Mutex
	buckets [160][]Contact
}

func (t *Table) K() int {
	return t.k
}

func (t *Table) Root() int160.T {
	return t.root
}

func (t *Table) bucketIndex(id int160.T) int {
	if id == t.root {
		panic("nobody puts the root ID in a bucket")
	}

	var a int160.T
	a.Xor(&t.root, &id)
	return 160 - a.BitLen()
}

// Add the contact. full buckets reject, known contacts update their
// endpoint in place.
func (t *Table) Add(c Contact) error {
	if c.ID == t.root {
		return ErrTableRootID
	}

	t.m.Lock()
	defer t.m.Unlock()

	b := t.buckets[t.bucketIndex(c.ID)]
	for i, known := range b {
		if known.ID == c.ID {
			b[i] = c
			return nil
		}
	}

	if len(b) >= t.k {
		return ErrTableBucketFull
	}

	t.buckets[t.bucketIndex(c.ID)] = append(b, c)
	return nil
}

func (t *Table) Len() (n int) {
	t.m.Lock()
	defer t.m.Unlock()

	for i := range t.buckets {
		n += len(t.buckets[i])
	}
	return n
}

// Closest known contacts to target, nearest first, at most count.
// buckets order by distance from the root, not the target, so every bucket
// is considered before sorting.
func (t *Table) Closest(target int160.T, count int) (ret []Contact) {
	t.m.Lock()
	for bi := range t.buckets {
		ret = append(ret, t.buckets[bi]...)
	}
	t.m.Unlock()

	slices.SortStableFunc(ret, func(a, b Contact) int {
		if c := int160.CmpTo(target, a.ID, b.ID); c != 0 {
			return c
		}
		return a.Addr.Compare(b.Addr)
	})

	return ret[:min(len(ret), count)]
}

func (t *Table) WriteDebug(w io.Writer) {
	t.m.Lock()
	defer t.m.Unlock()

	fmt.Fprintf(w, "table root(%s) k(%d)\n", t.root, t.k)
	for i := range t.buckets {
		for _, c := range t.buckets[i] {
			fmt.Fprintf(w, "  bucket(%d) %s %s\n", i, c.ID, c.Addr)
		}
	}
}
