package dto

import "time"

// ProposalOutcome is the visible result of one workflow step. The HTTP path
// returns it directly; the websocket path pushes the same shape as a
// resume:updatePreview event, so every channel converges on one view.
type ProposalOutcome struct {
	ProposedTex *string  `json:"proposedTex"`
	Explanation string   `json:"explanation"`
	Valid       bool     `json:"valid"`
	Errors      []string `json:"errors"`
	Committed   *bool    `json:"committed,omitempty"`
}

type CurrentResumeResponse struct {
	CurrentTex string `json:"currentTex"`
	HasPending bool   `json:"hasPending"`
}

type SeedResumeResponse struct {
	CurrentTex string `json:"currentTex"`
}

type AcceptResumeResponse struct {
	CurrentTex string `json:"currentTex"`
}

type DeclineResumeResponse struct {
	Ok bool `json:"ok"`
}

type HistoryEventResponse struct {
	Ts      time.Time              `json:"ts"`
	Kind    string                 `json:"kind"`
	Details map[string]interface{} `json:"details,omitempty"`
}
