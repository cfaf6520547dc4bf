package controller

import (
	"errors"
	"io/fs"

	"ai-resumelab-be/internal/pkg/serverutils"
	"ai-resumelab-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IResumeController interface {
	RegisterRoutes(r fiber.Router)
	Template(ctx *fiber.Ctx) error
	Accept(ctx *fiber.Ctx) error
	Decline(ctx *fiber.Ctx) error
	Current(ctx *fiber.Ctx) error
	History(ctx *fiber.Ctx) error
}

type resumeController struct {
	resumeService service.IResumeService
}

func NewResumeController(resumeService service.IResumeService) IResumeController {
	return &resumeController{
		resumeService: resumeService,
	}
}

func (c *resumeController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/resume/v1")
	h.Get("template/:id", c.Template)
	h.Post("accept", c.Accept)
	h.Post("decline", c.Decline)
	h.Get("current", c.Current)
	h.Get("history", c.History)
}

// Template loads a named seed template and makes it the uid's current
// document, discarding any pending proposal.
func (c *resumeController) Template(ctx *fiber.Ctx) error {
	uid := serverutils.UID(ctx)
	id := ctx.Params("id")

	res, err := c.resumeService.SeedFromTemplate(ctx.Context(), uid, id)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fiber.NewError(fiber.StatusNotFound, "template not found")
		}
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Template seeded", res))
}

func (c *resumeController) Accept(ctx *fiber.Ctx) error {
	uid := serverutils.UID(ctx)

	res, err := c.resumeService.Accept(ctx.Context(), uid)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Proposal committed", res))
}

func (c *resumeController) Decline(ctx *fiber.Ctx) error {
	uid := serverutils.UID(ctx)

	res, err := c.resumeService.Decline(ctx.Context(), uid)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Proposal declined", res))
}

func (c *resumeController) Current(ctx *fiber.Ctx) error {
	uid := serverutils.UID(ctx)

	res, err := c.resumeService.Current(ctx.Context(), uid)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Current resume", res))
}

func (c *resumeController) History(ctx *fiber.Ctx) error {
	uid := serverutils.UID(ctx)

	res, err := c.resumeService.History(ctx.Context(), uid)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Session history", res))
}
