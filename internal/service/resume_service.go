package service

import (
	"context"
	"strings"

	"ai-resumelab-be/internal/apperr"
	"ai-resumelab-be/internal/dto"
	"ai-resumelab-be/internal/pkg/logger"
	"ai-resumelab-be/internal/repository/memory"
	"ai-resumelab-be/pkg/events"
	"ai-resumelab-be/pkg/gro"
	"ai-resumelab-be/pkg/latex"
	"ai-resumelab-be/pkg/templates"
)

// Websocket event names. The frontend dispatches on these.
const (
	EventUpdatePreview = "resume:updatePreview"
	EventCommitted     = "resume:committed"
)

type IResumeService interface {
	SubmitInstruction(ctx context.Context, uid, message string) (*dto.ProposalOutcome, error)
	Accept(ctx context.Context, uid string) (*dto.AcceptResumeResponse, error)
	Decline(ctx context.Context, uid string) (*dto.DeclineResumeResponse, error)
	Current(ctx context.Context, uid string) (*dto.CurrentResumeResponse, error)
	SeedFromTemplate(ctx context.Context, uid, templateID string) (*dto.SeedResumeResponse, error)
	History(ctx context.Context, uid string) ([]*dto.HistoryEventResponse, error)
}

// resumeService is the workflow orchestrator. Per uid there are two states:
// clean (no pending proposal) and pending-review (exactly one). A new
// instruction always produces a pending proposal, valid or not, so the user
// can see why a candidate is invalid; Accept is where validity is enforced.
type resumeService struct {
	sessions  *memory.SessionRepository
	generator gro.Client
	templates *templates.Loader
	publisher IPublisherService
	logger    logger.ILogger
}

func NewResumeService(
	sessions *memory.SessionRepository,
	generator gro.Client,
	loader *templates.Loader,
	publisher IPublisherService,
	log logger.ILogger,
) IResumeService {
	return &resumeService{
		sessions:  sessions,
		generator: generator,
		templates: loader,
		publisher: publisher,
		logger:    log,
	}
}

func (s *resumeService) SubmitInstruction(ctx context.Context, uid, message string) (*dto.ProposalOutcome, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return nil, &apperr.InvalidInputError{Field: "message", Reason: "required"}
	}

	// Snapshot the current document, then release the session entirely for
	// the duration of the generation call. SetPending re-acquires it below.
	session := s.sessions.Ensure(uid)

	proposal, err := s.generator.ProposeUpdate(ctx, message, session.CurrentTex)
	if err != nil {
		s.logger.Error("ResumeService", "Generation failed", map[string]interface{}{"uid": uid, "error": err.Error()})
		// Realtime observers must not be left waiting silently.
		s.publishEvent(ctx, uid, EventUpdatePreview, &dto.ProposalOutcome{
			ProposedTex: nil,
			Explanation: "Error from Gro: " + err.Error(),
			Valid:       false,
			Errors:      []string{err.Error()},
		})
		return nil, err
	}

	validation := latex.Validate(proposal.ProposedTex)

	// Last proposal wins: an earlier unreviewed candidate is overwritten.
	s.sessions.SetPending(uid, proposal.ProposedTex)

	outcome := &dto.ProposalOutcome{
		ProposedTex: &proposal.ProposedTex,
		Explanation: proposal.Explanation,
		Valid:       validation.Valid,
		Errors:      validation.Errors,
	}
	s.publishEvent(ctx, uid, EventUpdatePreview, outcome)

	s.logger.Info("ResumeService", "Proposal stored as pending", map[string]interface{}{
		"uid":   uid,
		"valid": validation.Valid,
	})
	return outcome, nil
}

func (s *resumeService) Accept(ctx context.Context, uid string) (*dto.AcceptResumeResponse, error) {
	// Re-validate the stored pending text inside the session lock; the
	// proposal-time check only informed the preview and the document may
	// have been replaced since.
	session, err := s.sessions.AcceptPending(uid, func(tex string) error {
		if result := latex.Validate(tex); !result.Valid {
			return &apperr.ValidationFailedError{Errors: result.Errors}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	committed := true
	s.publishEvent(ctx, uid, EventUpdatePreview, &dto.ProposalOutcome{
		ProposedTex: nil,
		Explanation: "Committed",
		Valid:       true,
		Errors:      []string{},
		Committed:   &committed,
	})
	s.publishEvent(ctx, uid, EventCommitted, map[string]string{"currentTex": session.CurrentTex})

	return &dto.AcceptResumeResponse{CurrentTex: session.CurrentTex}, nil
}

func (s *resumeService) Decline(ctx context.Context, uid string) (*dto.DeclineResumeResponse, error) {
	if _, err := s.sessions.DeclinePending(uid); err != nil {
		return nil, err
	}

	committed := false
	s.publishEvent(ctx, uid, EventUpdatePreview, &dto.ProposalOutcome{
		ProposedTex: nil,
		Explanation: "Declined",
		Valid:       true,
		Errors:      []string{},
		Committed:   &committed,
	})

	return &dto.DeclineResumeResponse{Ok: true}, nil
}

func (s *resumeService) Current(ctx context.Context, uid string) (*dto.CurrentResumeResponse, error) {
	session := s.sessions.Ensure(uid)
	return &dto.CurrentResumeResponse{
		CurrentTex: session.CurrentTex,
		HasPending: session.HasPending(),
	}, nil
}

func (s *resumeService) SeedFromTemplate(ctx context.Context, uid, templateID string) (*dto.SeedResumeResponse, error) {
	tex, err := s.templates.Load(templateID)
	if err != nil {
		return nil, err
	}

	session := s.sessions.Seed(uid, tex)
	s.publishEvent(ctx, uid, EventCommitted, map[string]string{"currentTex": session.CurrentTex})

	s.logger.Info("ResumeService", "Template seeded", map[string]interface{}{
		"uid":      uid,
		"template": templateID,
		"length":   len(tex),
	})
	return &dto.SeedResumeResponse{CurrentTex: session.CurrentTex}, nil
}

func (s *resumeService) History(ctx context.Context, uid string) ([]*dto.HistoryEventResponse, error) {
	session := s.sessions.Ensure(uid)
	result := make([]*dto.HistoryEventResponse, 0, len(session.History))
	for _, entry := range session.History {
		result = append(result, &dto.HistoryEventResponse{
			Ts:      entry.Ts,
			Kind:    entry.Kind,
			Details: entry.Details,
		})
	}
	return result, nil
}

func (s *resumeService) publishEvent(ctx context.Context, uid, event string, payload interface{}) {
	evt := events.NewBaseEvent(event, map[string]interface{}{
		"uid":     uid,
		"payload": payload,
	})
	if err := s.publisher.Publish(ctx, evt); err != nil {
		s.logger.Warn("ResumeService", "Failed to publish outcome event", map[string]interface{}{
			"uid":   uid,
			"event": event,
			"error": err.Error(),
		})
	}
}
