package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Turismo-api/internal/application/dto"
	"github.com/jhoicas/Turismo-api/internal/application/usecase"
)

// TourHandler catálogo de excursiones. Lectura pública; escritura restringida
// a admin y lead-guide vía RequireRole en el router.
type TourHandler struct {
	uc *usecase.TourUseCase
}

// NewTourHandler construye el handler de tours.
func NewTourHandler(uc *usecase.TourUseCase) *TourHandler {
	return &TourHandler{uc: uc}
}

// List lista el catálogo con paginación.
// GET /api/v1/tours
func (h *TourHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("VALIDATION", "paginación inválida"))
	}
	page.DefaultPage()
	tours, err := h.uc.List(c.Context(), page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"status":  "success",
		"results": len(tours),
		"data":    fiber.Map{"tours": tours},
	})
}

// GetByID devuelve una excursión.
// GET /api/v1/tours/:id
func (h *TourHandler) GetByID(c *fiber.Ctx) error {
	tour, err := h.uc.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"status": "success", "data": fiber.Map{"tour": tour}})
}

// Create da de alta una excursión (admin, lead-guide).
// POST /api/v1/tours
func (h *TourHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateTourRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("INVALID_BODY", "cuerpo inválido"))
	}
	tour, err := h.uc.Create(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"status": "success", "message": "excursión creada", "data": fiber.Map{"tour": tour},
	})
}

// Update edición parcial de una excursión (admin, lead-guide).
// PATCH /api/v1/tours/:id
func (h *TourHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateTourRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("INVALID_BODY", "cuerpo inválido"))
	}
	tour, err := h.uc.Update(c.Context(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"status": "success", "message": "excursión actualizada", "data": fiber.Map{"tour": tour}})
}

// Delete elimina una excursión (admin, lead-guide).
// DELETE /api/v1/tours/:id
func (h *TourHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
