package memory

import (
	"context"
	"sync"
	"time"

	"ai-resumelab-be/internal/repository/contract"
)

// VisitorRepository is the in-process fallback used when no database is
// configured. Counts reset on restart.
type VisitorRepository struct {
	mu   sync.RWMutex
	seen map[string]time.Time
}

func NewVisitorRepository() contract.VisitorRepository {
	return &VisitorRepository{seen: make(map[string]time.Time)}
}

func (r *VisitorRepository) RecordSeen(ctx context.Context, uid string, seenAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.seen[uid]; !ok {
		r.seen[uid] = seenAt
	}
	return nil
}

func (r *VisitorRepository) CountUnique(ctx context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.seen)), nil
}
