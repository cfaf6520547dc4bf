package service

import (
	"context"
	"sync"
	"time"

	"ai-resumelab-be/internal/pkg/logger"
	"ai-resumelab-be/internal/repository/contract"
)

// IVisitorService tracks simple reach telemetry: unique uids ever seen and
// uids with at least one live websocket connection right now.
type IVisitorService interface {
	RecordVisit(uid string)
	ConnectionOpened(uid string)
	ConnectionClosed(uid string)
	UniqueCount(ctx context.Context) (int64, error)
	ActiveCount() int
}

type visitorService struct {
	repo   contract.VisitorRepository
	logger logger.ILogger

	mu     sync.Mutex
	active map[string]int // uid -> open connection count
}

func NewVisitorService(repo contract.VisitorRepository, log logger.ILogger) IVisitorService {
	return &visitorService{
		repo:   repo,
		logger: log,
		active: make(map[string]int),
	}
}

// RecordVisit is called from the uid middleware on every request; the write
// happens off the request path so a slow backend never delays a response.
func (s *visitorService) RecordVisit(uid string) {
	if uid == "" {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := s.repo.RecordSeen(ctx, uid, time.Now()); err != nil {
			s.logger.Warn("VisitorService", "Failed to record visit", map[string]interface{}{"uid": uid, "error": err.Error()})
		}
	}()
}

func (s *visitorService) ConnectionOpened(uid string) {
	if uid == "" {
		return
	}
	s.mu.Lock()
	s.active[uid]++
	s.mu.Unlock()
}

func (s *visitorService) ConnectionClosed(uid string) {
	if uid == "" {
		return
	}
	s.mu.Lock()
	if s.active[uid] <= 1 {
		delete(s.active, uid)
	} else {
		s.active[uid]--
	}
	s.mu.Unlock()
}

func (s *visitorService) UniqueCount(ctx context.Context) (int64, error) {
	return s.repo.CountUnique(ctx)
}

// ActiveCount is the number of distinct uids with a live connection, not
// the number of connections.
func (s *visitorService) ActiveCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.active)
}
