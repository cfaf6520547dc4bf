package controller

import (
	"ai-resumelab-be/internal/dto"
	"ai-resumelab-be/internal/pkg/serverutils"
	"ai-resumelab-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IMetricsController interface {
	RegisterRoutes(r fiber.Router)
	Unique(ctx *fiber.Ctx) error
	Active(ctx *fiber.Ctx) error
}

type metricsController struct {
	visitorService service.IVisitorService
}

func NewMetricsController(visitorService service.IVisitorService) IMetricsController {
	return &metricsController{
		visitorService: visitorService,
	}
}

func (c *metricsController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/metrics/v1")
	h.Get("unique", c.Unique)
	h.Get("active", c.Active)
}

func (c *metricsController) Unique(ctx *fiber.Ctx) error {
	count, err := c.visitorService.UniqueCount(ctx.Context())
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Unique visitors", dto.UniqueVisitorsResponse{Unique: count}))
}

func (c *metricsController) Active(ctx *fiber.Ctx) error {
	return ctx.JSON(serverutils.SuccessResponse("Active visitors", dto.ActiveVisitorsResponse{Active: c.visitorService.ActiveCount()}))
}
