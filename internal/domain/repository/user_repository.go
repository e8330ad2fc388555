package repository

import (
	"context"
	"time"

	"github.com/jhoicas/Turismo-api/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para User (DIP).
//
// Las búsquedas usadas por autenticación (FindByID, FindByEmail,
// FindByResetTokenHash) excluyen siempre las cuentas inactivas; es el análogo
// explícito del filtrado pre-find del modelo original.
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error

	// FindByID devuelve la cuenta activa o nil si no existe.
	FindByID(ctx context.Context, id string) (*entity.User, error)
	// FindByEmail devuelve la cuenta activa incluyendo PasswordHash (el análogo
	// del select("+password") del original) o nil si no existe.
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	// FindByResetTokenHash devuelve la cuenta activa cuyo hash de reset coincide
	// Y cuya expiración aún no pasó. Vencido e inexistente son indistinguibles.
	FindByResetTokenHash(ctx context.Context, tokenHash string) (*entity.User, error)

	// Update persiste nombre, email, rol y active (no toca campos de contraseña).
	Update(ctx context.Context, user *entity.User) error

	// UpdatePassword persiste en una sola sentencia el nuevo hash, el instante de
	// cambio y limpia los campos de reset. Debe ser durable antes de responder al
	// cliente para que el siguiente request observe password_changed_at.
	UpdatePassword(ctx context.Context, id, passwordHash string, changedAt time.Time) error

	// SetResetToken y ClearResetToken son actualizaciones de mantenimiento sobre
	// el par (hash, expiración); siempre se fijan o se limpian juntos.
	SetResetToken(ctx context.Context, id, tokenHash string, expires time.Time) error
	ClearResetToken(ctx context.Context, id string) error

	List(ctx context.Context, limit, offset int) ([]*entity.User, error)
	// Deactivate marca la cuenta como inactiva (soft delete).
	Deactivate(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
}
