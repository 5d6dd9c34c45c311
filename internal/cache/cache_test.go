package cache

import (
	"context"
	"errors"
	"testing"
	"time"
)

// failingStore errors on every operation, standing in for an unreachable
// durable backend.
type failingStore struct{}

func (failingStore) Get(context.Context, string) ([]byte, bool, error) {
	return nil, false, errors.New("connection refused")
}
func (failingStore) Set(context.Context, string, []byte, time.Duration) error {
	return errors.New("connection refused")
}
func (failingStore) Delete(context.Context, string) error {
	return errors.New("connection refused")
}
func (failingStore) SweepExpired(context.Context) (int, error) {
	return 0, errors.New("connection refused")
}
func (failingStore) Age(context.Context, string) (time.Duration, bool, error) {
	return 0, false, errors.New("connection refused")
}

func TestCacheMemoryOnlyRoundtrip(t *testing.T) {
	ctx := context.Background()
	c := New(nil, nil)

	if c.Durable() {
		t.Fatal("Durable() should be false without a backend")
	}

	c.Set(ctx, "key", []byte("v"), time.Minute)
	value, ok := c.Get(ctx, "key")
	if !ok || string(value) != "v" {
		t.Fatalf("Get = (%q, %v), want (v, true)", value, ok)
	}

	c.Delete(ctx, "key")
	if _, ok := c.Get(ctx, "key"); ok {
		t.Error("expected miss after delete")
	}
}

func TestCacheDurableFailureFallsBackToMemory(t *testing.T) {
	ctx := context.Background()
	c := New(failingStore{}, nil)

	// The write fails durably but lands in the fallback.
	c.Set(ctx, "key", []byte("v"), time.Minute)

	value, ok := c.Get(ctx, "key")
	if !ok || string(value) != "v" {
		t.Fatalf("Get = (%q, %v), want fallback hit", value, ok)
	}
}

func TestCacheAgeUnknownOnDurableFailure(t *testing.T) {
	ctx := context.Background()
	c := New(failingStore{}, nil)

	_, known := c.Age(ctx, "key")
	if known {
		t.Error("age should be unknown when the durable store errors")
	}
}

func TestWithCacheMissInvokesProducerOnce(t *testing.T) {
	ctx := context.Background()
	c := New(nil, nil)

	calls := 0
	producer := func(ctx context.Context) (map[string]int, error) {
		calls++
		return map[string]int{"n": 42}, nil
	}

	value, hit, err := WithCache(ctx, c, "k", time.Minute, producer)
	if err != nil {
		t.Fatalf("WithCache failed: %v", err)
	}
	if hit {
		t.Error("first call should be a miss")
	}
	if value["n"] != 42 {
		t.Errorf("value = %v", value)
	}

	value, hit, err = WithCache(ctx, c, "k", time.Minute, producer)
	if err != nil {
		t.Fatalf("WithCache failed on second call: %v", err)
	}
	if !hit {
		t.Error("second call should be a hit")
	}
	if value["n"] != 42 {
		t.Errorf("cached value = %v", value)
	}
	if calls != 1 {
		t.Errorf("producer invoked %d times, want 1", calls)
	}
}

func TestWithCacheProducerErrorNotCached(t *testing.T) {
	ctx := context.Background()
	c := New(nil, nil)

	wantErr := errors.New("upstream down")
	calls := 0
	producer := func(ctx context.Context) ([]string, error) {
		calls++
		if calls == 1 {
			return nil, wantErr
		}
		return []string{"ok"}, nil
	}

	_, _, err := WithCache(ctx, c, "k", time.Minute, producer)
	if !errors.Is(err, wantErr) {
		t.Fatalf("err = %v, want %v", err, wantErr)
	}

	// The failure must not have been cached: the retry reaches the producer.
	value, hit, err := WithCache(ctx, c, "k", time.Minute, producer)
	if err != nil {
		t.Fatalf("retry failed: %v", err)
	}
	if hit {
		t.Error("error result should not have been cached")
	}
	if len(value) != 1 || value[0] != "ok" {
		t.Errorf("value = %v", value)
	}
}

func TestWithCacheCorruptEntryTreatedAsMiss(t *testing.T) {
	ctx := context.Background()
	c := New(nil, nil)

	c.Set(ctx, "k", []byte("{not json"), time.Minute)

	value, hit, err := WithCache(ctx, c, "k", time.Minute,
		func(ctx context.Context) (int, error) { return 7, nil })
	if err != nil {
		t.Fatalf("WithCache failed: %v", err)
	}
	if hit {
		t.Error("corrupt entry should read as a miss")
	}
	if value != 7 {
		t.Errorf("value = %d, want 7", value)
	}

	// The corrupt entry was overwritten with the fresh result.
	if _, hit, _ := WithCache(ctx, c, "k", time.Minute,
		func(ctx context.Context) (int, error) { return 0, errors.New("should not run") }); !hit {
		t.Error("refetched value should have been cached")
	}
}

func TestGenerateKeyOrderIndependent(t *testing.T) {
	a := GenerateKey("odds", map[string]any{"sport": "basketball_nba", "days": 5})
	b := GenerateKey("odds", map[string]any{"days": 5, "sport": "basketball_nba"})

	if a != b {
		t.Errorf("keys differ: %q vs %q", a, b)
	}
	if a != "odds:days=5&sport=basketball_nba" {
		t.Errorf("key = %q", a)
	}
}

func TestGenerateKeyDistinguishesParams(t *testing.T) {
	a := GenerateKey("odds", map[string]any{"sport": "soccer_epl", "days": 5})
	b := GenerateKey("odds", map[string]any{"sport": "soccer_epl", "days": 7})

	if a == b {
		t.Error("different params should produce different keys")
	}
}

func TestFormatAge(t *testing.T) {
	tests := []struct {
		name  string
		age   time.Duration
		known bool
		want  string
	}{
		{"unknown", 0, false, "just now"},
		{"seconds", 42 * time.Second, true, "42 seconds ago"},
		{"one minute", 90 * time.Second, true, "1 minute ago"},
		{"minutes", 5 * time.Minute, true, "5 minutes ago"},
		{"one hour", 61 * time.Minute, true, "1 hour ago"},
		{"hours", 3 * time.Hour, true, "3 hours ago"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatAge(tt.age, tt.known); got != tt.want {
				t.Errorf("FormatAge(%v, %v) = %q, want %q", tt.age, tt.known, got, tt.want)
			}
		})
	}
}
