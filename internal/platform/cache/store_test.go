package cache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestStore_Load_SharesConcurrentMisses(t *testing.T) {
	t.Parallel()

	store := NewStore(time.Minute)
	var calls atomic.Int32

	loader := func(context.Context) (string, error) {
		calls.Add(1)
		time.Sleep(20 * time.Millisecond)
		return "team-a", nil
	}

	const workers = 32
	start := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(workers)
	errCh := make(chan error, workers)

	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			<-start
			v, err := Load(context.Background(), store, "team:id:a", loader)
			if err != nil {
				errCh <- err
				return
			}
			if v != "team-a" {
				errCh <- errUnexpectedValue
			}
		}()
	}

	close(start)
	wg.Wait()
	close(errCh)
	for err := range errCh {
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	if got := calls.Load(); got != 1 {
		t.Fatalf("loader called %d times, want 1", got)
	}
}

func TestStore_EntriesExpireAfterTTL(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	store := NewStore(30 * time.Second)
	store.now = func() time.Time { return now }

	store.Set(context.Background(), "k", 1)
	if _, ok := store.Get(context.Background(), "k"); !ok {
		t.Fatalf("expected fresh entry to be readable")
	}

	now = now.Add(31 * time.Second)
	if _, ok := store.Get(context.Background(), "k"); ok {
		t.Fatalf("expected entry to expire after ttl")
	}
	if store.Len() != 0 {
		t.Fatalf("expected expired entry to be evicted, len=%d", store.Len())
	}
}

func TestStore_LoadErrorIsNotCached(t *testing.T) {
	t.Parallel()

	store := NewStore(time.Minute)
	boom := errors.New("db down")
	calls := 0

	_, err := Load(context.Background(), store, "k", func(context.Context) (int, error) {
		calls++
		return 0, boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected loader error, got %v", err)
	}

	got, err := Load(context.Background(), store, "k", func(context.Context) (int, error) {
		calls++
		return 7, nil
	})
	if err != nil {
		t.Fatalf("second load: %v", err)
	}
	if got != 7 || calls != 2 {
		t.Fatalf("unexpected result: got=%d calls=%d", got, calls)
	}
}

func TestStore_DeletePrefix(t *testing.T) {
	t.Parallel()

	store := NewStore(0)
	ctx := context.Background()
	store.Set(ctx, "stats:team-a:cup", 1)
	store.Set(ctx, "stats:team-b:cup", 2)
	store.Set(ctx, "team:team-a", 3)

	store.DeletePrefix(ctx, "stats:")

	if store.Len() != 1 {
		t.Fatalf("unexpected entry count after prefix delete: %d", store.Len())
	}
	if _, ok := store.Get(ctx, "team:team-a"); !ok {
		t.Fatalf("expected unrelated key to survive")
	}
}

var errUnexpectedValue = errors.New("unexpected loaded value")
