package service

import (
	"context"
	"strings"

	"ai-resumelab-be/internal/dto"
	"ai-resumelab-be/internal/pkg/logger"
	"ai-resumelab-be/internal/pkg/mailer"
	"ai-resumelab-be/internal/repository/contract"
)

type ISubscribeService interface {
	Subscribe(ctx context.Context, req *dto.SubscribeRequest) (*dto.SubscribeResponse, error)
}

type subscribeService struct {
	repo   contract.SubscriberRepository
	mailer mailer.IEmailService // nil when SMTP is not configured
	logger logger.ILogger
}

func NewSubscribeService(repo contract.SubscriberRepository, emailService mailer.IEmailService, log logger.ILogger) ISubscribeService {
	return &subscribeService{
		repo:   repo,
		mailer: emailService,
		logger: log,
	}
}

func (s *subscribeService) Subscribe(ctx context.Context, req *dto.SubscribeRequest) (*dto.SubscribeResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	already, err := s.repo.Save(ctx, email)
	if err != nil {
		return nil, err
	}

	if already {
		return &dto.SubscribeResponse{Success: true, Message: "Already subscribed"}, nil
	}

	if s.mailer != nil {
		// Best effort; signup succeeds even when the welcome mail fails.
		go func() {
			if err := s.mailer.SendWelcome(email); err != nil {
				s.logger.Warn("SubscribeService", "Welcome mail failed", map[string]interface{}{"error": err.Error()})
			}
		}()
	}

	s.logger.Info("SubscribeService", "New subscriber", nil)
	return &dto.SubscribeResponse{Success: true, Message: "Email saved!"}, nil
}
