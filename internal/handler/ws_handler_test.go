package handler

import (
	"context"
	"testing"

	"ai-resumelab-be/internal/apperr"
	"ai-resumelab-be/internal/dto"
	"ai-resumelab-be/internal/service"
	"ai-resumelab-be/pkg/events"

	"github.com/stretchr/testify/require"
)

type wsNopLogger struct{}

func (wsNopLogger) Debug(module, message string, details map[string]interface{}) {}
func (wsNopLogger) Info(module, message string, details map[string]interface{})  {}
func (wsNopLogger) Warn(module, message string, details map[string]interface{})  {}
func (wsNopLogger) Error(module, message string, details map[string]interface{}) {}
func (wsNopLogger) Sync() error                                                  { return nil }

// stubResumeService records which workflow operation was dispatched and
// returns whatever errors the test wires in.
type stubResumeService struct {
	submitted  []string
	accepts    int
	declines   int
	submitErr  error
	acceptErr  error
	declineErr error
}

func (s *stubResumeService) SubmitInstruction(ctx context.Context, uid, message string) (*dto.ProposalOutcome, error) {
	s.submitted = append(s.submitted, message)
	return &dto.ProposalOutcome{}, s.submitErr
}

func (s *stubResumeService) Accept(ctx context.Context, uid string) (*dto.AcceptResumeResponse, error) {
	s.accepts++
	if s.acceptErr != nil {
		return nil, s.acceptErr
	}
	return &dto.AcceptResumeResponse{}, nil
}

func (s *stubResumeService) Decline(ctx context.Context, uid string) (*dto.DeclineResumeResponse, error) {
	s.declines++
	if s.declineErr != nil {
		return nil, s.declineErr
	}
	return &dto.DeclineResumeResponse{Ok: true}, nil
}

func (s *stubResumeService) Current(ctx context.Context, uid string) (*dto.CurrentResumeResponse, error) {
	return nil, nil
}

func (s *stubResumeService) SeedFromTemplate(ctx context.Context, uid, templateID string) (*dto.SeedResumeResponse, error) {
	return nil, nil
}

func (s *stubResumeService) History(ctx context.Context, uid string) ([]*dto.HistoryEventResponse, error) {
	return nil, nil
}

type recordingPublisher struct {
	published []events.Event
}

func (p *recordingPublisher) Publish(ctx context.Context, event events.Event) error {
	p.published = append(p.published, event)
	return nil
}

func newTestWsHandler() (*WsHandler, *stubResumeService, *recordingPublisher) {
	svc := &stubResumeService{}
	pub := &recordingPublisher{}
	return NewWsHandler(svc, pub, nil, wsNopLogger{}), svc, pub
}

func TestHandleInboundUserMessageDispatchesSubmit(t *testing.T) {
	h, svc, pub := newTestWsHandler()

	h.HandleInbound("alice", []byte(`{"type":"chat:userMessage","message":"make the name bigger"}`))

	require.Equal(t, []string{"make the name bigger"}, svc.submitted)
	require.Empty(t, pub.published)
}

func TestHandleInboundSkipsBlankUserMessage(t *testing.T) {
	h, svc, pub := newTestWsHandler()

	h.HandleInbound("alice", []byte(`{"type":"chat:userMessage","message":"   "}`))

	require.Empty(t, svc.submitted)
	require.Empty(t, pub.published)
}

func TestHandleInboundAcceptAndDecline(t *testing.T) {
	h, svc, pub := newTestWsHandler()

	h.HandleInbound("alice", []byte(`{"type":"resume:accept"}`))
	h.HandleInbound("alice", []byte(`{"type":"resume:decline"}`))

	require.Equal(t, 1, svc.accepts)
	require.Equal(t, 1, svc.declines)
	require.Empty(t, pub.published)
}

func TestHandleInboundMirrorsValidationFailure(t *testing.T) {
	h, svc, pub := newTestWsHandler()
	svc.acceptErr = &apperr.ValidationFailedError{Errors: []string{"Missing \\begin{document}"}}

	h.HandleInbound("alice", []byte(`{"type":"resume:accept"}`))

	require.Len(t, pub.published, 1)
	evt := pub.published[0]
	require.Equal(t, service.EventUpdatePreview, evt.EventType())
	require.Equal(t, "alice", evt.Payload()["uid"])

	outcome, ok := evt.Payload()["payload"].(*dto.ProposalOutcome)
	require.True(t, ok)
	require.False(t, outcome.Valid)
	require.Nil(t, outcome.ProposedTex)
	require.Equal(t, []string{"Missing \\begin{document}"}, outcome.Errors)
}

func TestHandleInboundMirrorsNoPendingDecline(t *testing.T) {
	h, svc, pub := newTestWsHandler()
	svc.declineErr = &apperr.NoPendingError{Op: "decline"}

	h.HandleInbound("alice", []byte(`{"type":"resume:decline"}`))

	require.Len(t, pub.published, 1)
	evt := pub.published[0]
	require.Equal(t, service.EventUpdatePreview, evt.EventType())

	outcome, ok := evt.Payload()["payload"].(*dto.ProposalOutcome)
	require.True(t, ok)
	require.False(t, outcome.Valid)
	require.Equal(t, "no pending proposal to decline", outcome.Explanation)
	require.Equal(t, []string{"no pending proposal to decline"}, outcome.Errors)
}

func TestHandleInboundIgnoresUnknownAndMalformed(t *testing.T) {
	h, svc, pub := newTestWsHandler()

	h.HandleInbound("alice", []byte(`{"type":"resume:detonate"}`))
	h.HandleInbound("alice", []byte(`{not json`))

	require.Empty(t, svc.submitted)
	require.Zero(t, svc.accepts)
	require.Zero(t, svc.declines)
	require.Empty(t, pub.published)
}
