package refresher

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/betpilot/tipster/internal/cache"
	"github.com/betpilot/tipster/internal/sports"
	"github.com/betpilot/tipster/pkg/models"
)

type stubProvider struct {
	mu       sync.Mutex
	requests [][]string
	fixtures map[string][]models.Fixture
}

func (s *stubProvider) GetOdds(ctx context.Context, sportID string, opts models.GetOddsOptions) ([]models.Fixture, error) {
	return s.fixtures[sportID], nil
}

func (s *stubProvider) GetMultipleSportsOdds(ctx context.Context, sportIDs []string, opts models.GetOddsOptions) map[string][]models.Fixture {
	s.mu.Lock()
	s.requests = append(s.requests, sportIDs)
	s.mu.Unlock()

	out := make(map[string][]models.Fixture, len(sportIDs))
	for _, id := range sportIDs {
		out[id] = s.fixtures[id]
	}
	return out
}

func (s *stubProvider) GetRateLimits() models.RateLimits { return models.RateLimits{} }

func TestWarmCachesActiveSportsWithResults(t *testing.T) {
	ctx := context.Background()
	store := cache.New(nil, nil)
	catalog := sports.NewCatalog()

	// MMA and test cricket have no season window, so they are active on any
	// date the test runs.
	provider := &stubProvider{fixtures: map[string][]models.Fixture{
		"mma_mixed_martial_arts": {{ID: "f1", HomeTeam: "A", AwayTeam: "B"}},
		// every other sport resolves empty
	}}

	r := New(provider, store, catalog, nil, time.Hour, 5, cache.TTLOdds)
	r.warm(ctx)

	key := cache.GenerateKey("odds", map[string]any{"sport": "mma_mixed_martial_arts", "days": 5})
	if _, ok := store.Get(ctx, key); !ok {
		t.Error("mma odds should have been warmed")
	}

	// Sports that came back empty must not poison the cache with [].
	emptyKey := cache.GenerateKey("odds", map[string]any{"sport": "cricket_test_match", "days": 5})
	if _, ok := store.Get(ctx, emptyKey); ok {
		t.Error("empty results must not be cached")
	}

	provider.mu.Lock()
	defer provider.mu.Unlock()
	if len(provider.requests) != 1 {
		t.Fatalf("fan-out invoked %d times, want 1", len(provider.requests))
	}
	if len(provider.requests[0]) == 0 {
		t.Error("no sports were polled")
	}
}

func TestStartDisabledWithoutInterval(t *testing.T) {
	provider := &stubProvider{}
	r := New(provider, cache.New(nil, nil), sports.NewCatalog(), nil, 0, 5, cache.TTLOdds)

	r.Start(context.Background())
	time.Sleep(20 * time.Millisecond)

	provider.mu.Lock()
	defer provider.mu.Unlock()
	if len(provider.requests) != 0 {
		t.Error("interval <= 0 should disable warming entirely")
	}
}
