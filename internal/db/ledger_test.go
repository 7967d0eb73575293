package db

import (
	"context"
	"errors"
	"os"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestMemoryLedgerClaimOnce(t *testing.T) {
	l := NewMemoryLedger()
	ctx := context.Background()

	_, ok, err := l.Claim(ctx, "recycle", "TCK-1", "a@b.co")
	if err != nil || !ok {
		t.Fatalf("first claim should succeed: %v %v", ok, err)
	}
	held, ok, _ := l.Claim(ctx, "recycle", "TCK-1", "a@b.co")
	if ok {
		t.Fatalf("second claim should be rejected")
	}
	if held.Status != SubmissionPending || held.Email != "a@b.co" {
		t.Fatalf("expected the pending holder, got %+v", held)
	}
	_, ok, _ = l.Claim(ctx, "receive_share", "TCK-1", "")
	if !ok {
		t.Fatalf("different action on the same ticket should be claimable")
	}
}

func TestMemoryLedgerReleaseAllowsRetry(t *testing.T) {
	l := NewMemoryLedger()
	ctx := context.Background()

	_, _, _ = l.Claim(ctx, "recycle", "TCK-2", "")
	if err := l.Release(ctx, "recycle", "TCK-2"); err != nil {
		t.Fatalf("release: %v", err)
	}
	if _, ok, _ := l.Claim(ctx, "recycle", "TCK-2", ""); !ok {
		t.Fatalf("claim after release should succeed")
	}
	if err := l.Complete(ctx, "recycle", "TCK-2", "done"); err != nil {
		t.Fatalf("complete: %v", err)
	}
	_ = l.Release(ctx, "recycle", "TCK-2")
	sub, err := l.Get(ctx, "recycle", "TCK-2")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if sub.Status != SubmissionCompleted || sub.Message != "done" {
		t.Fatalf("completed submission must survive release, got %+v", sub)
	}
	held, ok, _ := l.Claim(ctx, "recycle", "TCK-2", "")
	if ok || held.Status != SubmissionCompleted {
		t.Fatalf("claim on a completed pair must report it, got %+v %v", held, ok)
	}
}

func TestMemoryLedgerStaleClaimTakeover(t *testing.T) {
	now := time.Date(2025, time.July, 3, 12, 0, 0, 0, time.UTC)
	l := NewMemoryLedger()
	l.ClaimTTL = time.Minute
	l.Now = func() time.Time { return now }
	ctx := context.Background()

	if _, ok, _ := l.Claim(ctx, "recycle", "TCK-4", "old@example.com"); !ok {
		t.Fatalf("first claim should succeed")
	}
	now = now.Add(59 * time.Second)
	if _, ok, _ := l.Claim(ctx, "recycle", "TCK-4", ""); ok {
		t.Fatalf("fresh pending claim must block")
	}
	now = now.Add(time.Second)
	sub, ok, _ := l.Claim(ctx, "recycle", "TCK-4", "new@example.com")
	if !ok || sub.Email != "new@example.com" || !sub.ClaimedAt.Equal(now) {
		t.Fatalf("stale claim should be taken over, got %+v %v", sub, ok)
	}

	if err := l.Complete(ctx, "recycle", "TCK-4", "done"); err != nil {
		t.Fatalf("complete: %v", err)
	}
	now = now.Add(time.Hour)
	if held, ok, _ := l.Claim(ctx, "recycle", "TCK-4", ""); ok || held.Status != SubmissionCompleted {
		t.Fatalf("completed pairs never expire, got %+v %v", held, ok)
	}
}

func TestMemoryLedgerMissing(t *testing.T) {
	l := NewMemoryLedger()
	if _, err := l.Get(context.Background(), "recycle", "nope"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := l.Complete(context.Background(), "recycle", "nope", ""); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestMemoryLedgerConcurrentClaims(t *testing.T) {
	l := NewMemoryLedger()
	var wins int32
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, ok, _ := l.Claim(context.Background(), "return_jewelry", "TCK-3", ""); ok {
				atomic.AddInt32(&wins, 1)
			}
		}()
	}
	wg.Wait()
	if wins != 1 {
		t.Fatalf("expected exactly one winning claim, got %d", wins)
	}
}

func TestStoreLedgerIntegration(t *testing.T) {
	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}
	ctx := context.Background()
	store, err := New(ctx, url)
	if err != nil {
		t.Fatalf("db connect: %v", err)
	}
	defer store.Close()
	if err := store.Migrate(ctx); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	_, _ = store.Pool.Exec(ctx, `DELETE FROM action_submissions WHERE ticket_number = 'TCK-IT'`)

	_, ok, err := store.Claim(ctx, "recycle", "TCK-IT", "")
	if err != nil || !ok {
		t.Fatalf("first claim: %v %v", ok, err)
	}
	held, ok, err := store.Claim(ctx, "recycle", "TCK-IT", "")
	if err != nil || ok || held.Status != SubmissionPending {
		t.Fatalf("duplicate claim accepted: %+v %v %v", held, ok, err)
	}

	_, _ = store.Pool.Exec(ctx, `UPDATE action_submissions SET claimed_at = claimed_at - interval '1 hour' WHERE ticket_number = 'TCK-IT'`)
	if _, ok, err := store.Claim(ctx, "recycle", "TCK-IT", "again@example.com"); err != nil || !ok {
		t.Fatalf("stale claim not taken over: %v %v", ok, err)
	}
	if err := store.Complete(ctx, "recycle", "TCK-IT", "ok"); err != nil {
		t.Fatalf("complete: %v", err)
	}
	sub, err := store.Get(ctx, "recycle", "TCK-IT")
	if err != nil || sub.Status != SubmissionCompleted || sub.Email != "again@example.com" {
		t.Fatalf("unexpected submission %+v %v", sub, err)
	}
	if held, ok, _ := store.Claim(ctx, "recycle", "TCK-IT", ""); ok || held.Status != SubmissionCompleted {
		t.Fatalf("completed pair reclaimed: %+v %v", held, ok)
	}
}
