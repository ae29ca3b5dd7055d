// Package backoffx provides delay strategies for retrying operations.
package backoffx

import (
	"math"
	"time"
)

// Strategy computes the delay to apply for the given attempt.
type Strategy interface {
	Backoff(attempt int) time.Duration
}

type constant time.Duration

func (t constant) Backoff(int) time.Duration {
	return time.Duration(t)
}

// Constant delay regardless of the attempt.
func Constant(d time.Duration) Strategy {
	return constant(d)
}

type cycle []time.Duration

func (t cycle) Backoff(attempt int) time.Duration {
	return t[attempt%len(t)]
}

// Cycle through the provided delays restarting from the first once exhausted.
func Cycle(durations ...time.Duration) Strategy {
	return cycle(durations)
}

type exponential time.Duration

func (t exponential) Backoff(attempt int) time.Duration {
	d := time.Duration(t) << uint(attempt)
	if d>>uint(attempt) != time.Duration(t) || d <= 0 {
		return math.MaxInt64
	}

	return d
}

// Exponential doubles the initial delay for each attempt, saturating instead of overflowing.
func Exponential(initial time.Duration) Strategy {
	return exponential(initial)
}
