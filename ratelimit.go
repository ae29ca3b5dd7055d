package kad

import (
	"context"
	"net/netip"

	"golang.org/x/time/rate"

	"github.com/james-lawrence/kad/int160"
)

// NetworkLimiter bounds the rate of outbound Identify and Neighbors calls
// made through the wrapped network. ClosestKnown is local knowledge and
// passes through untouched.
func NetworkLimiter(n Network, l *rate.Limiter) Network {
	return limitedNetwork{delegate: n, l: l}
}

type limitedNetwork struct {
	delegate Network
	l        *rate.Limiter
}

func (t limitedNetwork) ClosestKnown(target int160.T, count int) []Contact {
	return t.delegate.ClosestKnown(target, count)
}

func (t limitedNetwork) Identify(ctx context.Context, addr netip.AddrPort) (Contact, error) {
	if err := t.l.Wait(ctx); err != nil {
		return Contact{}, err
	}

	return t.delegate.Identify(ctx, addr)
}

func (t limitedNetwork) Neighbors(ctx context.Context, via Contact, target int160.T, count int, limit *int160.T) ([]Contact, error) {
	if err := t.l.Wait(ctx); err != nil {
		return nil, err
	}

	return t.delegate.Neighbors(ctx, via, target, count, limit)
}
