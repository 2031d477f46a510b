package quotation

import (
	"context"
	"time"

	pkgredis "github.com/quotewise/rfq-backend/pkg/redis"
)

const guardScope = "rfp"

// DuplicateGuard flags resubmissions of the same RFP text within the TTL
// window. It is advisory: a repeat submission still produces a quotation,
// the pipeline only attaches a note.
type DuplicateGuard struct {
	store pkgredis.IdempotencyStore
	ttl   time.Duration
}

// NewDuplicateGuard builds a guard over the provided store. A nil store
// disables the guard.
func NewDuplicateGuard(store pkgredis.IdempotencyStore, ttl time.Duration) *DuplicateGuard {
	return &DuplicateGuard{store: store, ttl: ttl}
}

// FirstSubmission marks the hash and reports whether it was unseen. Storage
// failures degrade to treating the submission as first.
func (g *DuplicateGuard) FirstSubmission(ctx context.Context, rfpHash string) (bool, error) {
	if g == nil || g.store == nil {
		return true, nil
	}
	key := g.store.IdempotencyKey(guardScope, rfpHash)
	first, err := g.store.SetNX(ctx, key, time.Now().UTC().Format(time.RFC3339), g.ttl)
	if err != nil {
		return true, err
	}
	return first, nil
}

// Forget clears the mark for the hash, mainly for tests and manual retries.
func (g *DuplicateGuard) Forget(ctx context.Context, rfpHash string) error {
	if g == nil || g.store == nil {
		return nil
	}
	return g.store.Del(ctx, g.store.IdempotencyKey(guardScope, rfpHash))
}
