// Package refresher keeps the odds cache warm for enabled, in-season sports
// so interactive requests rarely pay the upstream fetch.
package refresher

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/betpilot/tipster/internal/cache"
	"github.com/betpilot/tipster/internal/sports"
	"github.com/betpilot/tipster/pkg/contracts"
	"github.com/betpilot/tipster/pkg/models"
)

// Refresher polls the odds provider on an interval and writes results into
// the cache under the same keys the API reads.
type Refresher struct {
	provider contracts.OddsProvider
	cache    *cache.Cache
	catalog  *sports.Catalog
	logger   *zap.Logger

	interval time.Duration
	days     int
	ttl      time.Duration

	stopChan chan struct{}
	wg       sync.WaitGroup
}

// New creates a Refresher. interval <= 0 disables the initial-and-periodic
// loop (Start becomes a no-op).
func New(provider contracts.OddsProvider, c *cache.Cache, catalog *sports.Catalog, logger *zap.Logger, interval time.Duration, days int, ttl time.Duration) *Refresher {
	if logger == nil {
		logger = zap.NewNop()
	}
	if days <= 0 {
		days = 5
	}
	if ttl <= 0 {
		ttl = cache.TTLOdds
	}
	return &Refresher{
		provider: provider,
		cache:    c,
		catalog:  catalog,
		logger:   logger,
		interval: interval,
		days:     days,
		ttl:      ttl,
		stopChan: make(chan struct{}),
	}
}

// Start begins the warm loop in a background goroutine.
func (r *Refresher) Start(ctx context.Context) {
	if r.interval <= 0 {
		return
	}

	r.wg.Add(1)
	go func() {
		defer r.wg.Done()

		r.warm(ctx)

		ticker := time.NewTicker(r.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				r.warm(ctx)
			case <-r.stopChan:
				return
			case <-ctx.Done():
				return
			}
		}
	}()
}

// Stop shuts the loop down and waits for the in-flight pass to finish.
func (r *Refresher) Stop() {
	close(r.stopChan)
	r.wg.Wait()
}

// warm fetches odds for every active sport in one fan-out and caches the
// non-empty results. Failed sports come back empty and are skipped, leaving
// any previous cache entry in place.
func (r *Refresher) warm(ctx context.Context) {
	active := r.catalog.Active(time.Now())
	if len(active) == 0 {
		return
	}

	ids := make([]string, 0, len(active))
	for _, s := range active {
		ids = append(ids, s.ID)
	}

	results := r.provider.GetMultipleSportsOdds(ctx, ids, models.GetOddsOptions{Days: r.days})

	warmed := 0
	for sportID, fixtures := range results {
		if len(fixtures) == 0 {
			continue
		}
		raw, err := json.Marshal(fixtures)
		if err != nil {
			r.logger.Warn("refresher failed to encode fixtures", zap.String("sport", sportID), zap.Error(err))
			continue
		}
		key := cache.GenerateKey("odds", map[string]any{"sport": sportID, "days": r.days})
		r.cache.Set(ctx, key, raw, r.ttl)
		warmed++
	}

	r.logger.Info("odds cache warmed",
		zap.Int("sports_polled", len(ids)),
		zap.Int("sports_cached", warmed))
}
