package handlers

import (
	"github.com/gofiber/fiber/v2"

	apperrors "fairrank/resume-screener/internal/errors"
)

// respondError maps the engine's typed failures to distinct status codes.
func respondError(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError

	switch apperrors.TypeOf(err) {
	case apperrors.ErrorTypeNotFound:
		status = fiber.StatusNotFound
	case apperrors.ErrorTypeNoJobDescriptions:
		status = fiber.StatusBadRequest
	case apperrors.ErrorTypeValidation:
		status = fiber.StatusBadRequest
	case apperrors.ErrorTypeEmbedding, apperrors.ErrorTypeEvaluation:
		status = fiber.StatusBadGateway
	}

	return c.Status(status).JSON(fiber.Map{
		"error": err.Error(),
	})
}
