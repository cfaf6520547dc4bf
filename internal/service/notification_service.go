package service

import (
	"context"
	"encoding/json"

	"ai-resumelab-be/internal/pkg/logger"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

// NotificationDelivery defines how to push real-time updates.
// Typically implemented by the WebSocket Hub.
type NotificationDelivery interface {
	Send(uid string, event string, payload interface{})
}

type INotificationService interface {
	Consume(ctx context.Context) error
}

// notificationService bridges the in-process event bus to the websocket
// hub. The request path never waits on it; delivery is fire and forget.
type notificationService struct {
	pubSub    *gochannel.GoChannel
	topicName string
	delivery  NotificationDelivery
	logger    logger.ILogger
}

func NewNotificationService(
	pubSub *gochannel.GoChannel,
	topicName string,
	delivery NotificationDelivery,
	log logger.ILogger,
) INotificationService {
	return &notificationService{
		pubSub:    pubSub,
		topicName: topicName,
		delivery:  delivery,
		logger:    log,
	}
}

func (s *notificationService) Consume(ctx context.Context) error {
	messages, err := s.pubSub.Subscribe(ctx, s.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			s.processMessage(msg)
		}
	}()

	return nil
}

func (s *notificationService) processMessage(msg *message.Message) {
	var envelope struct {
		Type string                 `json:"type"`
		Data map[string]interface{} `json:"data"`
	}
	if err := json.Unmarshal(msg.Payload, &envelope); err != nil {
		s.logger.Error("NotificationService", "Failed to unmarshal event", map[string]interface{}{"error": err.Error()})
		msg.Ack() // invalid payloads are not retriable
		return
	}

	uid, _ := envelope.Data["uid"].(string)
	if uid == "" {
		s.logger.Warn("NotificationService", "Event without uid dropped", map[string]interface{}{"type": envelope.Type})
		msg.Ack()
		return
	}

	s.delivery.Send(uid, envelope.Type, envelope.Data["payload"])
	msg.Ack()
}
