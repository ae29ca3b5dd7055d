// Package testx provides helpers shared by the test suites.
package testx

import (
	"context"
	"testing"
	"time"
)

type deadliner interface {
	Deadline() (time.Time, bool)
}

// Context for the duration of the test, bounded by the test deadline when one is set.
func Context(t testing.TB) (context.Context, context.CancelFunc) {
	deadline := time.Now().Add(10 * time.Second)
	if d, ok := t.(deadliner); ok {
		if ts, ok := d.Deadline(); ok {
			deadline = ts
		}
	}

	ctx, done := context.WithDeadline(context.Background(), deadline)
	t.Cleanup(done)

	return ctx, done
}

// Must fails the test when err is non nil, otherwise returns v.
func Must[T any](v T, err error) func(t testing.TB) T {
	return func(t testing.TB) T {
		if err != nil {
			t.Helper()
			t.Fatal(err)
		}

		return v
	}
}
