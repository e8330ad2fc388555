package auth

import "context"

// Mailer es el canal de correo saliente consumido por el flujo de reset.
// Un fallo de envío debe ser capturable: nunca tumba al caller, pero sí
// revierte el token de reset emitido.
type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}
