package kad

import (
	"context"
	"log"
	"net"
	"net/netip"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/dnscache"

	"github.com/james-lawrence/kad/internal/asynccompute"
	"github.com/james-lawrence/kad/internal/backoffx"
	"github.com/james-lawrence/kad/internal/errorsx"
)

type dnscacher interface {
	LookupHost(ctx context.Context, host string) (addrs []string, err error)
}

var _ dnscacher = (*dnscache.Resolver)(nil)

// ResolveSeeds resolves host:port seed entries into contacts with zero
// identifier hints, suitable for OptionSeeds. entries are resolved
// concurrently; the whole round retries with exponential delay until at
// least one entry resolves or ctx expires.
func ResolveSeeds(ctx context.Context, dns dnscacher, hostports []string) ([]Contact, error) {
	delay := backoffx.Exponential(time.Second)

	for attempt := 0; ; attempt++ {
		resolved, err := resolveSeedRound(ctx, dns, hostports)
		if err == nil {
			return resolved, nil
		}

		log.Println("seed resolution failed, retrying", err)

		select {
		case <-time.After(delay.Backoff(attempt)):
		case <-ctx.Done():
			return nil, errorsx.Compact(ctx.Err(), err)
		}
	}
}

func resolveSeedRound(ctx context.Context, dns dnscacher, hostports []string) ([]Contact, error) {
	var (
		m        sync.Mutex
		resolved []Contact
	)

	pool := asynccompute.New(func(ctx context.Context, s string) error {
		host, port, err := net.SplitHostPort(s)
		if err != nil {
			log.Println("failed to split host:port", s, err)
			return nil
		}

		addrs, err := dns.LookupHost(ctx, host)
		if err != nil {
			log.Println("failed to lookup host addresses", s, err)
			return nil
		}

		for _, a := range addrs {
			ap, err := netip.ParseAddrPort(net.JoinHostPort(a, port))
			if err != nil {
				log.Printf("error resolving %q: %v", a, err)
				continue
			}

			m.Lock()
			resolved = append(resolved, Contact{Addr: ap})
			m.Unlock()
		}

		return nil
	})

	var failed error
	for _, s := range hostports {
		if failed = pool.Run(ctx, s); failed != nil {
			break
		}
	}

	if err := errorsx.Compact(failed, asynccompute.Shutdown(ctx, pool)); err != nil {
		return nil, err
	}

	if len(resolved) == 0 {
		return nil, ErrNothingResolved
	}

	return resolved, nil
}

// PeersFile reads one host:port seed per line. blank lines and lines
// beginning with # are skipped.
func PeersFile(path string) (hostports []string, err error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errorsx.Wrapf(err, "unable to read peers file %s", path)
	}

	for _, line := range strings.Split(string(raw), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		hostports = append(hostports, line)
	}

	return hostports, nil
}

// WatchPeersFile invokes fn with the current seed entries immediately and
// again on every rewrite of the file until ctx is done.
func WatchPeersFile(ctx context.Context, path string, fn func([]string)) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return errorsx.Wrap(err, "unable to create watcher")
	}

	// watch the directory, editors frequently replace the file outright.
	if err = w.Add(filepath.Dir(path)); err != nil {
		return errorsx.Compact(errorsx.Wrapf(err, "unable to watch %s", path), w.Close())
	}

	if hostports, err := PeersFile(path); err == nil {
		fn(hostports)
	} else {
		errorsx.Log(err)
	}

	go func() {
		defer w.Close()

		for {
			select {
			case <-ctx.Done():
				return
			case evt, ok := <-w.Events:
				if !ok {
					return
				}

				if evt.Name != path || !evt.Op.Has(fsnotify.Write|fsnotify.Create) {
					continue
				}

				hostports, err := PeersFile(path)
				if err != nil {
					errorsx.Log(err)
					continue
				}

				fn(hostports)
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				errorsx.Log(err)
			}
		}
	}()

	return nil
}
