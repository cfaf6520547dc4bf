package controller

import (
	"ai-resumelab-be/internal/dto"
	"ai-resumelab-be/internal/pkg/serverutils"
	"ai-resumelab-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ISubscribeController interface {
	RegisterRoutes(r fiber.Router)
	Subscribe(ctx *fiber.Ctx) error
}

type subscribeController struct {
	subscribeService service.ISubscribeService
}

func NewSubscribeController(subscribeService service.ISubscribeService) ISubscribeController {
	return &subscribeController{
		subscribeService: subscribeService,
	}
}

func (c *subscribeController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/subscribe/v1")
	h.Post("", c.Subscribe)
}

func (c *subscribeController) Subscribe(ctx *fiber.Ctx) error {
	var req dto.SubscribeRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.subscribeService.Subscribe(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Subscription saved", res))
}
