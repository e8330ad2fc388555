package dto

import "time"

// SignupRequest entrada de registro. La confirmación debe ser igual al password
// y se verifica antes de hashear.
type SignupRequest struct {
	Name            string `json:"name" validate:"required,min=1,max=120"`
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required,min=8"`
	PasswordConfirm string `json:"passwordConfirm" validate:"required,min=8"`
}

// LoginRequest entrada de login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// ChangePasswordRequest cambio de contraseña autenticado: exige la contraseña vigente.
type ChangePasswordRequest struct {
	PasswordCurrent string `json:"passwordCurrent" validate:"required"`
	Password        string `json:"password" validate:"required,min=8"`
	PasswordConfirm string `json:"passwordConfirm" validate:"required,min=8"`
}

// ForgotPasswordRequest solicita un token de reset para el email dado.
type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// ResetPasswordRequest consume el token de reset (el valor crudo va en la URL).
type ResetPasswordRequest struct {
	Password        string `json:"password" validate:"required,min=8"`
	PasswordConfirm string `json:"passwordConfirm" validate:"required,min=8"`
}

// UpdateMeRequest campos de perfil editables por el propio usuario.
// La contraseña nunca se actualiza por esta vía.
type UpdateMeRequest struct {
	Name  string `json:"name" validate:"omitempty,max=120"`
	Email string `json:"email" validate:"omitempty,email"`
	// Password y PasswordConfirm se parsean solo para rechazar el intento con
	// un 400 que apunte a /changePassword.
	Password        string `json:"password"`
	PasswordConfirm string `json:"passwordConfirm"`
}

// UpdateUserRequest edición administrativa de una cuenta (sin contraseña).
type UpdateUserRequest struct {
	Name   string `json:"name" validate:"omitempty,max=120"`
	Email  string `json:"email" validate:"omitempty,email"`
	Role   string `json:"role" validate:"omitempty,oneof=user guide lead-guide admin"`
	Active *bool  `json:"active"`
}

// UserResponse salida de un usuario. Nunca incluye hash ni campos de reset.
type UserResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// SessionData payload de datos de las respuestas de auth.
type SessionData struct {
	User UserResponse `json:"user"`
}

// SessionResponse cuerpo de éxito de los endpoints de auth: discriminador de
// estado, mensaje opcional, token y el usuario sin credenciales.
type SessionResponse struct {
	Status  string      `json:"status"` // "success"
	Message string      `json:"message,omitempty"`
	Token   string      `json:"token"`
	Data    SessionData `json:"data"`
}

// MessageResponse respuesta de éxito sin payload (p.ej. forgotPassword).
type MessageResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}
