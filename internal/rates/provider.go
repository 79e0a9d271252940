// Package rates provides an always-available view of currency conversion
// rates: a two-tier cached, single-flight refreshed wrapper around a flaky
// external rate API, with a static table as the last resort.
package rates

import (
	"context"
	"log/slog"
	"maps"
	"time"

	"golang.org/x/sync/singleflight"

	"finledger/internal/cache"
)

const refreshKey = "exchange_rates"

const (
	DefaultFreshWindow  = 2 * time.Hour
	DefaultStaleWindow  = 24 * time.Hour
	DefaultRefreshWait  = 5 * time.Second
	defaultFetchTimeout = 10 * time.Second
)

// Provider serves the current rate map, units per 1 reference-currency unit.
// GetRates never fails: a refresh that cannot complete degrades to the last
// usable snapshot, then to the static fallback table.
type Provider struct {
	fetcher      Fetcher
	snapshots    *cache.TwoTier[map[string]float64]
	group        singleflight.Group
	refreshWait  time.Duration
	fetchTimeout time.Duration
}

// NewProvider wires a fetcher to an injected snapshot cache. refreshWait
// bounds how long a caller blocks on an in-flight refresh before falling back.
func NewProvider(fetcher Fetcher, snapshots *cache.TwoTier[map[string]float64], refreshWait time.Duration) *Provider {
	if refreshWait <= 0 {
		refreshWait = DefaultRefreshWait
	}
	return &Provider{
		fetcher:      fetcher,
		snapshots:    snapshots,
		refreshWait:  refreshWait,
		fetchTimeout: defaultFetchTimeout,
	}
}

// GetRates returns the current rate map. Within the fresh window the cached
// snapshot is returned without any network activity. Past it, concurrent
// callers collapse onto a single refresh; callers that cannot wait it out
// serve the stale snapshot or the fallback table instead.
func (p *Provider) GetRates(ctx context.Context) map[string]float64 {
	if rates, ok := p.snapshots.Fresh(); ok {
		return maps.Clone(rates)
	}

	ch := p.group.DoChan(refreshKey, func() (any, error) {
		// The refresh is detached from the triggering request so that one
		// caller's deadline cannot cancel the fetch for everyone else.
		fctx, cancel := context.WithTimeout(context.Background(), p.fetchTimeout)
		defer cancel()

		slog.Info("Fetching exchange rates from API")
		fetched, err := p.fetcher.Fetch(fctx)
		if err != nil {
			return nil, err
		}
		p.snapshots.Set(fetched)
		return fetched, nil
	})

	select {
	case res := <-ch:
		if res.Err == nil {
			return maps.Clone(res.Val.(map[string]float64))
		}
		slog.ErrorContext(ctx, "Exchange rate refresh failed", "error", res.Err)
	case <-time.After(p.refreshWait):
		slog.WarnContext(ctx, "Exchange rate refresh exceeded wait window", "wait", p.refreshWait)
	case <-ctx.Done():
		slog.WarnContext(ctx, "Exchange rate refresh abandoned", "error", ctx.Err())
	}

	if rates, ok := p.snapshots.Usable(); ok {
		if age, known := p.snapshots.Age(); known {
			slog.InfoContext(ctx, "Serving stale exchange rates", "age", age)
		}
		return maps.Clone(rates)
	}

	slog.WarnContext(ctx, "Serving static fallback exchange rates")
	return FallbackRates()
}
