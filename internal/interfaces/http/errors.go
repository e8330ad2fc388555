package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Turismo-api/internal/application/dto"
	"github.com/jhoicas/Turismo-api/internal/domain"
	"github.com/rs/zerolog/log"
)

// respondError mapea los sentinelas de dominio a estado HTTP + código. Cualquier
// error no reconocido se registra y sale como INTERNAL sin filtrar detalle.
func respondError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("VALIDATION", err.Error()))
	case errors.Is(err, domain.ErrPasswordMismatch):
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("PASSWORD_MISMATCH", err.Error()))
	case errors.Is(err, domain.ErrResetTokenInvalid):
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("RESET_TOKEN_INVALID", err.Error()))
	case errors.Is(err, domain.ErrUnauthorized):
		return c.Status(fiber.StatusUnauthorized).JSON(dto.Fail("UNAUTHORIZED", err.Error()))
	case errors.Is(err, domain.ErrWrongPassword):
		return c.Status(fiber.StatusUnauthorized).JSON(dto.Fail("WRONG_PASSWORD", err.Error()))
	case errors.Is(err, domain.ErrUnauthenticated):
		return c.Status(fiber.StatusUnauthorized).JSON(dto.Fail("UNAUTHENTICATED", err.Error()))
	case errors.Is(err, domain.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(dto.Fail("FORBIDDEN", err.Error()))
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrUserNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.Fail("NOT_FOUND", err.Error()))
	case errors.Is(err, domain.ErrEmailAlreadyExists):
		return c.Status(fiber.StatusConflict).JSON(dto.Fail("EMAIL_EXISTS", err.Error()))
	case errors.Is(err, domain.ErrMailDelivery):
		return c.Status(fiber.StatusInternalServerError).JSON(
			dto.Error("MAIL_DELIVERY", domain.ErrMailDelivery.Error()))
	default:
		log.Error().Err(err).Str("path", c.Path()).Msg("error no manejado")
		return c.Status(fiber.StatusInternalServerError).JSON(
			dto.Error("INTERNAL", "algo salió mal, intente más tarde"))
	}
}
