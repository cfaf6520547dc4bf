package memory

import (
	"context"
	"strings"
	"sync"

	"ai-resumelab-be/internal/repository/contract"
)

type SubscriberRepository struct {
	mu     sync.Mutex
	emails map[string]struct{}
}

func NewSubscriberRepository() contract.SubscriberRepository {
	return &SubscriberRepository{emails: make(map[string]struct{})}
}

func (r *SubscriberRepository) Save(ctx context.Context, email string) (bool, error) {
	key := strings.ToLower(email)
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.emails[key]; ok {
		return true, nil
	}
	r.emails[key] = struct{}{}
	return false, nil
}
