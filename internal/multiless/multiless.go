// Package multiless composes lexicographic orderings from a sequence of comparisons.
package multiless

// T accumulates comparisons, the first decisive one wins. The zero value is ready to use.
type T struct {
	ok   bool
	less bool
}

// Compare folds a cmp style three way comparison into the ordering.
func (t *T) Compare(c int) {
	t.StrictNext(c == 0, c < 0)
}

// StrictNext folds an explicit same/less pair into the ordering.
func (t *T) StrictNext(same, less bool) {
	if t.ok || same {
		return
	}

	t.ok = true
	t.less = less
}

// Less reports the accumulated ordering.
func (t *T) Less() bool {
	return t.less
}

// Final reports the accumulated ordering, ties order as not less.
func (t *T) Final() bool {
	if !t.ok {
		return false
	}

	return t.less
}
