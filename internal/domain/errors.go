package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")

	// ErrUnauthorized cubre credenciales de login incorrectas. El mensaje al cliente
	// es el mismo para email inexistente y contraseña errónea (anti-enumeración).
	ErrUnauthorized = errors.New("email o contraseña incorrectos")
	// ErrUnauthenticated cubre sesiones ausentes, inválidas, expiradas o revocadas.
	ErrUnauthenticated = errors.New("no autenticado")
	ErrForbidden       = errors.New("acceso denegado")

	// ErrPasswordMismatch la confirmación no coincide con la contraseña.
	ErrPasswordMismatch = errors.New("las contraseñas no coinciden")
	// ErrWrongPassword la contraseña actual suministrada no es la vigente.
	ErrWrongPassword = errors.New("la contraseña actual es incorrecta")
	// ErrResetTokenInvalid token de reset inexistente o vencido; indistinguibles a propósito.
	ErrResetTokenInvalid = errors.New("token inválido o expirado")
	// ErrMailDelivery fallo del canal de correo; el reset emitido se revierte.
	ErrMailDelivery = errors.New("no se pudo enviar el correo, intente más tarde")
)
