package memory

import (
	"sync"
	"time"

	"ai-resumelab-be/internal/apperr"
	"ai-resumelab-be/pkg/store"

	"github.com/patrickmn/go-cache"
)

// SessionRepository is the keyed store of per-uid editing sessions.
//
// Each session carries its own mutex, so operations against one uid are
// serialized while distinct uids proceed fully concurrently. Sessions never
// expire in-process; memory grows with the number of distinct uids seen,
// which is an accepted limitation of the anonymous-session design.
type SessionRepository struct {
	cache *cache.Cache
	mu    sync.Mutex // guards create-if-absent only
}

type sessionEntry struct {
	mu      sync.Mutex
	session *store.Session
}

func NewSessionRepository() *SessionRepository {
	return &SessionRepository{
		cache: cache.New(cache.NoExpiration, 0),
	}
}

func (r *SessionRepository) entry(uid string) *sessionEntry {
	if x, found := r.cache.Get(uid); found {
		return x.(*sessionEntry)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if x, found := r.cache.Get(uid); found {
		return x.(*sessionEntry)
	}
	e := &sessionEntry{session: &store.Session{
		UID:     uid,
		History: []store.HistoryEntry{},
	}}
	r.cache.Set(uid, e, cache.NoExpiration)
	return e
}

// Ensure returns a snapshot of the session for uid, creating an empty one on
// first access.
func (r *SessionRepository) Ensure(uid string) store.Session {
	e := r.entry(uid)
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.session.Clone()
}

// Seed sets the current document, clears any pending proposal and appends a
// seed history event recording the input length.
func (r *SessionRepository) Seed(uid, tex string) store.Session {
	e := r.entry(uid)
	e.mu.Lock()
	defer e.mu.Unlock()
	e.session.CurrentTex = tex
	e.session.PendingTex = nil
	e.session.History = append(e.session.History, store.HistoryEntry{
		Ts:      time.Now(),
		Kind:    store.HistorySeed,
		Details: map[string]interface{}{"length": len(tex)},
	})
	return e.session.Clone()
}

// SetPending unconditionally overwrites the pending proposal. Validity is
// not checked here; accept is the enforcement point.
func (r *SessionRepository) SetPending(uid, proposedTex string) store.Session {
	e := r.entry(uid)
	e.mu.Lock()
	defer e.mu.Unlock()
	e.session.PendingTex = &proposedTex
	return e.session.Clone()
}

// AcceptPending promotes the pending proposal to current. The validate
// callback runs inside the session lock against the stored pending text, so
// a concurrent SetPending cannot slip in between the check and the commit.
func (r *SessionRepository) AcceptPending(uid string, validate func(tex string) error) (store.Session, error) {
	e := r.entry(uid)
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.session.PendingTex == nil {
		return store.Session{}, &apperr.NoPendingError{Op: "accept"}
	}
	if validate != nil {
		if err := validate(*e.session.PendingTex); err != nil {
			return store.Session{}, err
		}
	}
	e.session.CurrentTex = *e.session.PendingTex
	e.session.PendingTex = nil
	e.session.History = append(e.session.History, store.HistoryEntry{
		Ts:   time.Now(),
		Kind: store.HistoryAccept,
	})
	return e.session.Clone(), nil
}

// DeclinePending discards the pending proposal.
func (r *SessionRepository) DeclinePending(uid string) (store.Session, error) {
	e := r.entry(uid)
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.session.PendingTex == nil {
		return store.Session{}, &apperr.NoPendingError{Op: "decline"}
	}
	e.session.PendingTex = nil
	e.session.History = append(e.session.History, store.HistoryEntry{
		Ts:   time.Now(),
		Kind: store.HistoryDecline,
	})
	return e.session.Clone(), nil
}
