package store

import "time"

// History event kinds. The history is append-only and purely observational.
const (
	HistorySeed    = "seed"
	HistoryAccept  = "accept"
	HistoryDecline = "decline"
)

// HistoryEntry is one recorded session event. Seed entries record the
// document length in Details, never the content, to bound log size.
type HistoryEntry struct {
	Ts      time.Time              `json:"ts"`
	Kind    string                 `json:"kind"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// Session is the in-memory editing state for one uid.
//
// CurrentTex is the last accepted document (empty until seeded).
// PendingTex is at most one outstanding proposal; a new proposal overwrites
// it unconditionally (last proposal wins, no queue).
//
// Sessions are owned by the session repository, which serializes all
// mutations per uid. Other components receive copies, never the live record.
type Session struct {
	UID        string         `json:"uid"`
	CurrentTex string         `json:"current_tex"`
	PendingTex *string        `json:"pending_tex"`
	History    []HistoryEntry `json:"history"`
}

// HasPending reports whether a proposal is awaiting review.
func (s *Session) HasPending() bool {
	return s.PendingTex != nil
}

// Clone returns a deep copy safe to hand outside the repository.
func (s *Session) Clone() Session {
	out := Session{
		UID:        s.UID,
		CurrentTex: s.CurrentTex,
		History:    make([]HistoryEntry, len(s.History)),
	}
	copy(out.History, s.History)
	if s.PendingTex != nil {
		pending := *s.PendingTex
		out.PendingTex = &pending
	}
	return out
}
