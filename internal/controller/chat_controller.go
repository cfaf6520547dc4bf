package controller

import (
	"ai-resumelab-be/internal/dto"
	"ai-resumelab-be/internal/pkg/serverutils"
	"ai-resumelab-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IChatController interface {
	RegisterRoutes(r fiber.Router)
	Send(ctx *fiber.Ctx) error
}

type chatController struct {
	resumeService service.IResumeService
}

func NewChatController(resumeService service.IResumeService) IChatController {
	return &chatController{
		resumeService: resumeService,
	}
}

func (c *chatController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/chat/v1")
	h.Post("send", c.Send)
}

// Send is the synchronous submit path. The same outcome is also pushed to
// every live websocket connection of the uid.
func (c *chatController) Send(ctx *fiber.Ctx) error {
	uid := serverutils.UID(ctx)

	var req dto.SendMessageRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.resumeService.SubmitInstruction(ctx.Context(), uid, req.Message)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Proposal generated", res))
}
