package serverutils

import (
	"errors"

	"ai-resumelab-be/internal/apperr"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandlerMiddleware maps the tagged workflow errors to JSON responses.
// User mistakes (nothing pending, bad input, failed validation) are 400s,
// generation upstream failures are 502s carrying the upstream status.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		var (
			noPending  *apperr.NoPendingError
			validation *apperr.ValidationFailedError
			generation *apperr.GenerationServiceError
			invalid    *apperr.InvalidInputError
			fiberErr   *fiber.Error
		)

		switch {
		case errors.As(err, &invalid):
			return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": invalid.Error(),
			})
		case errors.As(err, &noPending):
			return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": noPending.Error(),
			})
		case errors.As(err, &validation):
			return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error":  validation.Error(),
				"errors": validation.Errors,
			})
		case errors.As(err, &generation):
			return ctx.Status(fiber.StatusBadGateway).JSON(fiber.Map{
				"error":           generation.Error(),
				"upstream_status": generation.StatusCode,
			})
		case errors.As(err, &fiberErr):
			return ctx.Status(fiberErr.Code).JSON(fiber.Map{
				"error": fiberErr.Message,
			})
		default:
			return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
	}
}
