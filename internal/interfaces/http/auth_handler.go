package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Turismo-api/internal/application/auth"
	"github.com/jhoicas/Turismo-api/internal/application/dto"
)

// CookieConfig opciones de la cookie de sesión.
type CookieConfig struct {
	// Days vigencia de la cookie.
	Days int
	// Secure activa el flag Secure (todo entorno salvo development).
	Secure bool
}

// AuthHandler maneja signup, login, logout y el ciclo de contraseñas.
type AuthHandler struct {
	uc     *auth.AuthUseCase
	cookie CookieConfig
}

// NewAuthHandler construye el handler de auth.
func NewAuthHandler(uc *auth.AuthUseCase, cookie CookieConfig) *AuthHandler {
	if cookie.Days <= 0 {
		cookie.Days = 90
	}
	return &AuthHandler{uc: uc, cookie: cookie}
}

// Signup registra una cuenta nueva y la deja autenticada.
// POST /api/v1/users/signup
func (h *AuthHandler) Signup(c *fiber.Ctx) error {
	var in dto.SignupRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("INVALID_BODY", "cuerpo inválido"))
	}
	out, err := h.uc.Signup(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return h.sendSession(c, fiber.StatusCreated, "usuario registrado correctamente", out)
}

// Login verifica credenciales y emite un token de sesión.
// POST /api/v1/users/login
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("INVALID_BODY", "cuerpo inválido"))
	}
	out, err := h.uc.Login(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return h.sendSession(c, fiber.StatusOK, "sesión iniciada correctamente", out)
}

// Logout pisa la cookie de sesión con un valor inerte de vida corta.
// GET /api/v1/users/logout
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	c.Cookie(&fiber.Cookie{
		Name:     CookieName,
		Value:    "loggedout",
		Expires:  time.Now().Add(10 * time.Second),
		HTTPOnly: true,
		Secure:   h.cookie.Secure,
	})
	return c.JSON(dto.MessageResponse{Status: "success", Message: "sesión cerrada"})
}

// ForgotPassword emite un token de reset y lo envía por correo. La respuesta
// nunca incluye el token: viaja solo por el canal de correo.
// POST /api/v1/users/forgotPassword
func (h *AuthHandler) ForgotPassword(c *fiber.Ctx) error {
	var in dto.ForgotPasswordRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("INVALID_BODY", "cuerpo inválido"))
	}
	if in.Email == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("VALIDATION", "el email es requerido"))
	}
	if err := h.uc.ForgotPassword(c.Context(), in.Email); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.MessageResponse{Status: "success", Message: "token enviado al correo"})
}

// ResetPassword consume el token de reset que llegó por correo (segmento de la
// URL) y fija la nueva contraseña. Deja al usuario autenticado.
// PATCH /api/v1/users/resetPassword/:token
func (h *AuthHandler) ResetPassword(c *fiber.Ctx) error {
	var in dto.ResetPasswordRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("INVALID_BODY", "cuerpo inválido"))
	}
	out, err := h.uc.ResetPassword(c.Context(), c.Params("token"), in)
	if err != nil {
		return respondError(c, err)
	}
	return h.sendSession(c, fiber.StatusOK, "contraseña restablecida correctamente", out)
}

// ChangePassword cambio autenticado de contraseña; exige la vigente. Revoca
// todas las sesiones anteriores y emite un token fresco para esta.
// PATCH /api/v1/users/changePassword
func (h *AuthHandler) ChangePassword(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(
			dto.Fail("NOT_LOGGED_IN", "no has iniciado sesión; inicia sesión para acceder"))
	}
	var in dto.ChangePasswordRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("INVALID_BODY", "cuerpo inválido"))
	}
	out, err := h.uc.ChangePassword(c.Context(), userID, in)
	if err != nil {
		return respondError(c, err)
	}
	return h.sendSession(c, fiber.StatusOK, "contraseña actualizada correctamente", out)
}

// sendSession responde con el shape común de los endpoints de auth y fija la
// cookie http-only. El hash nunca viaja: SessionResult ya lo excluye.
func (h *AuthHandler) sendSession(c *fiber.Ctx, status int, message string, out *auth.SessionResult) error {
	c.Cookie(&fiber.Cookie{
		Name:     CookieName,
		Value:    out.Token,
		Expires:  time.Now().Add(time.Duration(h.cookie.Days) * 24 * time.Hour),
		HTTPOnly: true,
		Secure:   h.cookie.Secure,
	})
	return c.Status(status).JSON(dto.SessionResponse{
		Status:  "success",
		Message: message,
		Token:   out.Token,
		Data:    dto.SessionData{User: out.User},
	})
}
