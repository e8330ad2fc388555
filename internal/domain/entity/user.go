package entity

import "time"

// Roles válidos para User.
const (
	RoleUser      = "user"
	RoleGuide     = "guide"
	RoleLeadGuide = "lead-guide"
	RoleAdmin     = "admin"
)

// ValidRole indica si el rol pertenece al conjunto cerrado de roles.
func ValidRole(role string) bool {
	switch role {
	case RoleUser, RoleGuide, RoleLeadGuide, RoleAdmin:
		return true
	}
	return false
}

// User representa una cuenta del sistema de reservas.
type User struct {
	ID           string
	Name         string
	Email        string // único, normalizado a minúsculas
	PasswordHash string // bcrypt, nunca plano ni serializado en respuestas
	Role         string // user, guide, lead-guide, admin

	// PasswordChangedAt se fija solo al modificar la contraseña de una cuenta ya
	// existente; nil significa "nunca cambiada desde la creación". Los tokens de
	// sesión emitidos antes de este instante quedan revocados.
	PasswordChangedAt *time.Time

	// PasswordResetTokenHash y PasswordResetExpires se fijan y se limpian juntos.
	// Solo se persiste el hash SHA-256 del token de reset, nunca el valor crudo.
	PasswordResetTokenHash *string
	PasswordResetExpires   *time.Time

	// Active es el soft-delete; las cuentas inactivas no existen para la autenticación.
	Active bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// PasswordChangedAfter indica si la contraseña cambió después del instante de
// emisión de un token. Es el mecanismo de revocación: no hay blacklist.
func (u *User) PasswordChangedAfter(issuedAt time.Time) bool {
	if u.PasswordChangedAt == nil {
		return false
	}
	// Comparación en segundos: el issued-at del JWT tiene precisión de segundo.
	return issuedAt.Unix() < u.PasswordChangedAt.Unix()
}
