package cache

import (
	"context"
	"fmt"
	"testing"
	"time"
)

func TestMemoryStoreRoundtrip(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(10)

	if err := store.Set(ctx, "key", []byte(`{"a":1}`), time.Minute); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	value, ok, err := store.Get(ctx, "key")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if !ok {
		t.Fatal("expected hit, got miss")
	}
	if string(value) != `{"a":1}` {
		t.Errorf("got %q, want %q", value, `{"a":1}`)
	}

	_, ok, _ = store.Get(ctx, "absent")
	if ok {
		t.Error("expected miss for absent key")
	}
}

func TestMemoryStoreExpiry(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(10)

	current := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return current }

	store.Set(ctx, "key", []byte("v"), time.Minute)

	if _, ok, _ := store.Get(ctx, "key"); !ok {
		t.Fatal("expected hit before expiry")
	}

	current = current.Add(61 * time.Second)
	if _, ok, _ := store.Get(ctx, "key"); ok {
		t.Fatal("expected miss after expiry")
	}
	if store.Len() != 0 {
		t.Errorf("expired entry not removed lazily, Len = %d", store.Len())
	}
}

func TestMemoryStoreFIFOEviction(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(3)

	for i := 0; i < 3; i++ {
		store.Set(ctx, fmt.Sprintf("key-%d", i), []byte("v"), time.Minute)
	}

	// A fourth key evicts the oldest insertion.
	store.Set(ctx, "key-3", []byte("v"), time.Minute)

	if _, ok, _ := store.Get(ctx, "key-0"); ok {
		t.Error("key-0 should have been evicted")
	}
	for _, key := range []string{"key-1", "key-2", "key-3"} {
		if _, ok, _ := store.Get(ctx, key); !ok {
			t.Errorf("%s should have survived eviction", key)
		}
	}
	if store.Len() != 3 {
		t.Errorf("Len = %d, want 3", store.Len())
	}
}

func TestMemoryStoreUpsertKeepsInsertionPosition(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(2)

	store.Set(ctx, "old", []byte("v1"), time.Minute)
	store.Set(ctx, "newer", []byte("v"), time.Minute)

	// Re-setting "old" must not move it to the back of the queue.
	store.Set(ctx, "old", []byte("v2"), time.Minute)
	store.Set(ctx, "newest", []byte("v"), time.Minute)

	if _, ok, _ := store.Get(ctx, "old"); ok {
		t.Error("re-set key kept its position, so it should be evicted first")
	}
	if _, ok, _ := store.Get(ctx, "newer"); !ok {
		t.Error("newer should have survived")
	}
}

func TestMemoryStoreSweepExpired(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(10)

	current := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return current }

	store.Set(ctx, "short", []byte("v"), time.Minute)
	store.Set(ctx, "long", []byte("v"), time.Hour)

	current = current.Add(5 * time.Minute)

	removed, err := store.SweepExpired(ctx)
	if err != nil {
		t.Fatalf("SweepExpired failed: %v", err)
	}
	if removed != 1 {
		t.Errorf("removed = %d, want 1", removed)
	}
	if _, ok, _ := store.Get(ctx, "long"); !ok {
		t.Error("unexpired entry swept")
	}
}

func TestMemoryStoreAgeUnknown(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(10)
	store.Set(ctx, "key", []byte("v"), time.Minute)

	_, known, err := store.Age(ctx, "key")
	if err != nil {
		t.Fatalf("Age failed: %v", err)
	}
	if known {
		t.Error("memory store should never know entry age")
	}
}

func TestMemoryStoreDeleteIdempotent(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(10)
	store.Set(ctx, "key", []byte("v"), time.Minute)

	if err := store.Delete(ctx, "key"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if err := store.Delete(ctx, "key"); err != nil {
		t.Fatalf("second Delete failed: %v", err)
	}
	if store.Len() != 0 {
		t.Errorf("Len = %d, want 0", store.Len())
	}
}
