package handler

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"ai-resumelab-be/internal/apperr"
	"ai-resumelab-be/internal/dto"
	"ai-resumelab-be/internal/pkg/logger"
	"ai-resumelab-be/internal/service"
	internalWS "ai-resumelab-be/internal/websocket"
	"ai-resumelab-be/pkg/events"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
)

// WsHandler owns the realtime entry point. Inbound messages trigger the
// same workflow operations as the HTTP controllers; outcomes are answered
// through the hub push rather than a direct reply.
type WsHandler struct {
	resumeService service.IResumeService
	publisher     service.IPublisherService
	hub           *internalWS.Hub
	logger        logger.ILogger
}

func NewWsHandler(
	resumeService service.IResumeService,
	publisher service.IPublisherService,
	hub *internalWS.Hub,
	log logger.ILogger,
) *WsHandler {
	return &WsHandler{
		resumeService: resumeService,
		publisher:     publisher,
		hub:           hub,
		logger:        log,
	}
}

func (h *WsHandler) RegisterRoutes(r fiber.Router) {
	r.Get("/ws", h.ServeWs)
}

// ServeWs upgrades the connection and ties it to an identity: the uid
// cookie set by the HTTP middleware, or a uid query param for clients that
// cannot send cookies. A connection with neither gets a fresh uid pushed
// back as uid:assign.
func (h *WsHandler) ServeWs(c *fiber.Ctx) error {
	uid := c.Cookies("uid")
	if uid == "" {
		uid = c.Query("uid")
	}
	assigned := false
	if uid == "" {
		uid = uuid.NewString()
		assigned = true
	}

	if websocket.IsWebSocketUpgrade(c) {
		return websocket.New(func(conn *websocket.Conn) {
			h.logger.Info("WsHandler", "Starting WebSocket session", map[string]interface{}{"uid": uid})
			internalWS.ServeWs(h.hub, conn, uid, h, assigned)
			h.logger.Info("WsHandler", "WebSocket session ended", map[string]interface{}{"uid": uid})
		})(c)
	}
	return fiber.ErrUpgradeRequired
}

type wsInbound struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// HandleInbound implements websocket.InboundRouter.
func (h *WsHandler) HandleInbound(uid string, raw []byte) {
	var msg wsInbound
	if err := json.Unmarshal(raw, &msg); err != nil {
		h.logger.Warn("WsHandler", "Unparsable inbound message", map[string]interface{}{"uid": uid, "error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 150*time.Second)
	defer cancel()

	switch msg.Type {
	case "chat:userMessage":
		if strings.TrimSpace(msg.Message) == "" {
			return
		}
		// Success and generation-error outcomes are both pushed by the
		// service itself; nothing more to do here.
		if _, err := h.resumeService.SubmitInstruction(ctx, uid, msg.Message); err != nil {
			h.logger.Warn("WsHandler", "SubmitInstruction failed", map[string]interface{}{"uid": uid, "error": err.Error()})
		}
	case "resume:accept":
		if _, err := h.resumeService.Accept(ctx, uid); err != nil {
			h.pushError(ctx, uid, err)
		}
	case "resume:decline":
		if _, err := h.resumeService.Decline(ctx, uid); err != nil {
			h.pushError(ctx, uid, err)
		}
	default:
		h.logger.Warn("WsHandler", "Unknown inbound message type", map[string]interface{}{"uid": uid, "type": msg.Type})
	}
}

// pushError mirrors a failed accept/decline back to the connections, since
// the websocket path has no response to carry it. It goes through the same
// bus as every other outcome so ordering with them is preserved.
func (h *WsHandler) pushError(ctx context.Context, uid string, err error) {
	outcome := &dto.ProposalOutcome{
		ProposedTex: nil,
		Explanation: err.Error(),
		Valid:       false,
		Errors:      []string{err.Error()},
	}
	var validation *apperr.ValidationFailedError
	if errors.As(err, &validation) {
		outcome.Errors = validation.Errors
	}

	evt := events.NewBaseEvent(service.EventUpdatePreview, map[string]interface{}{
		"uid":     uid,
		"payload": outcome,
	})
	if pubErr := h.publisher.Publish(ctx, evt); pubErr != nil {
		h.logger.Warn("WsHandler", "Failed to publish error outcome", map[string]interface{}{"uid": uid, "error": pubErr.Error()})
	}
}
