package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Turismo-api/internal/application/dto"
	"github.com/jhoicas/Turismo-api/internal/application/usecase"
)

// UserHandler perfil propio y administración de cuentas.
type UserHandler struct {
	uc *usecase.UserUseCase
}

// NewUserHandler construye el handler de usuarios.
func NewUserHandler(uc *usecase.UserUseCase) *UserHandler {
	return &UserHandler{uc: uc}
}

// GetMe devuelve el perfil del usuario autenticado.
// GET /api/v1/users/me
func (h *UserHandler) GetMe(c *fiber.Ctx) error {
	user, err := h.uc.GetByID(c.Context(), GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"status": "success", "data": fiber.Map{"user": user}})
}

// UpdateMe actualiza nombre y/o email del propio usuario. Los campos de
// contraseña se rechazan: ese flujo vive en /changePassword.
// PATCH /api/v1/users/updateMe
func (h *UserHandler) UpdateMe(c *fiber.Ctx) error {
	var in dto.UpdateMeRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("INVALID_BODY", "cuerpo inválido"))
	}
	if in.Password != "" || in.PasswordConfirm != "" {
		return c.Status(fiber.StatusBadRequest).JSON(
			dto.Fail("VALIDATION", "esta ruta no actualiza contraseñas; usa /changePassword"))
	}
	user, err := h.uc.UpdateMe(c.Context(), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"status": "success", "message": "perfil actualizado", "data": fiber.Map{"user": user}})
}

// DeleteMe desactiva la cuenta propia (soft delete).
// DELETE /api/v1/users/deleteMe
func (h *UserHandler) DeleteMe(c *fiber.Ctx) error {
	if err := h.uc.DeleteMe(c.Context(), GetUserID(c)); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// List lista cuentas con paginación (solo admin).
// GET /api/v1/users
func (h *UserHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("VALIDATION", "paginación inválida"))
	}
	page.DefaultPage()
	users, err := h.uc.List(c.Context(), page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"status":  "success",
		"results": len(users),
		"data":    fiber.Map{"users": users},
	})
}

// GetByID devuelve una cuenta por ID (solo admin).
// GET /api/v1/users/:id
func (h *UserHandler) GetByID(c *fiber.Ctx) error {
	user, err := h.uc.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"status": "success", "data": fiber.Map{"user": user}})
}

// Update edición administrativa de una cuenta (nunca la contraseña).
// PATCH /api/v1/users/:id
func (h *UserHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateUserRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("INVALID_BODY", "cuerpo inválido"))
	}
	user, err := h.uc.UpdateUser(c.Context(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"status": "success", "message": "usuario actualizado", "data": fiber.Map{"user": user}})
}

// Delete elimina una cuenta definitivamente (solo admin).
// DELETE /api/v1/users/:id
func (h *UserHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.DeleteUser(c.Context(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
