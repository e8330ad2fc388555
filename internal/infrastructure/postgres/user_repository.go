package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jhoicas/Turismo-api/internal/domain"
	"github.com/jhoicas/Turismo-api/internal/domain/entity"
	"github.com/jhoicas/Turismo-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo implementación del puerto UserRepository sobre PostgreSQL.
//
// El filtro "active" va embebido en los SELECT usados por autenticación: una
// cuenta desactivada no existe para login, sesión ni reset.
type UserRepo struct {
	pool *pgxpool.Pool
}

// NewUserRepository construye el adaptador de persistencia para usuarios.
func NewUserRepository(pool *pgxpool.Pool) *UserRepo {
	return &UserRepo{pool: pool}
}

const userColumns = `id, name, email, password_hash, role,
	password_changed_at, password_reset_token_hash, password_reset_expires,
	active, created_at, updated_at`

// Create persiste una cuenta nueva. El índice único de email convierte los
// registros duplicados concurrentes en ErrEmailAlreadyExists.
func (r *UserRepo) Create(ctx context.Context, user *entity.User) error {
	query := `
		INSERT INTO users (id, name, email, password_hash, role, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.pool.Exec(ctx, query,
		user.ID, user.Name, user.Email, user.PasswordHash, user.Role, user.Active,
		user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailAlreadyExists
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// FindByID obtiene una cuenta activa por ID (nil si no existe).
func (r *UserRepo) FindByID(ctx context.Context, id string) (*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1 AND active`
	return r.scanOne(ctx, query, id)
}

// FindByEmail obtiene una cuenta activa por email, incluyendo el hash de
// contraseña para la verificación de login.
func (r *UserRepo) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1 AND active LIMIT 1`
	return r.scanOne(ctx, query, email)
}

// FindByResetTokenHash busca por hash de token de reset exigiendo expiración
// vigente en el mismo predicado: vencido e inexistente devuelven ambos nil.
func (r *UserRepo) FindByResetTokenHash(ctx context.Context, tokenHash string) (*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users
		WHERE password_reset_token_hash = $1 AND password_reset_expires > now() AND active`
	return r.scanOne(ctx, query, tokenHash)
}

func (r *UserRepo) scanOne(ctx context.Context, query string, args ...any) (*entity.User, error) {
	var u entity.User
	err := r.pool.QueryRow(ctx, query, args...).Scan(
		&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Role,
		&u.PasswordChangedAt, &u.PasswordResetTokenHash, &u.PasswordResetExpires,
		&u.Active, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return &u, nil
}

// Update persiste nombre, email, rol y active. Los campos de contraseña tienen
// sus propias sentencias para que cada mutación sea explícita.
func (r *UserRepo) Update(ctx context.Context, user *entity.User) error {
	query := `
		UPDATE users SET name = $2, email = $3, role = $4, active = $5, updated_at = now()
		WHERE id = $1`
	_, err := r.pool.Exec(ctx, query, user.ID, user.Name, user.Email, user.Role, user.Active)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailAlreadyExists
		}
		return fmt.Errorf("update user: %w", err)
	}
	return nil
}

// UpdatePassword fija el nuevo hash y password_changed_at, y limpia los campos
// de reset en la misma sentencia: un token de reset consumido no puede
// reutilizarse y las sesiones anteriores quedan revocadas de forma atómica.
func (r *UserRepo) UpdatePassword(ctx context.Context, id, passwordHash string, changedAt time.Time) error {
	query := `
		UPDATE users SET password_hash = $2, password_changed_at = $3,
			password_reset_token_hash = NULL, password_reset_expires = NULL,
			updated_at = now()
		WHERE id = $1`
	_, err := r.pool.Exec(ctx, query, id, passwordHash, changedAt)
	if err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	return nil
}

// SetResetToken fija hash y expiración del token de reset (siempre juntos).
func (r *UserRepo) SetResetToken(ctx context.Context, id, tokenHash string, expires time.Time) error {
	query := `
		UPDATE users SET password_reset_token_hash = $2, password_reset_expires = $3, updated_at = now()
		WHERE id = $1`
	_, err := r.pool.Exec(ctx, query, id, tokenHash, expires)
	if err != nil {
		return fmt.Errorf("set reset token: %w", err)
	}
	return nil
}

// ClearResetToken limpia hash y expiración (rollback de un reset no entregado).
func (r *UserRepo) ClearResetToken(ctx context.Context, id string) error {
	query := `
		UPDATE users SET password_reset_token_hash = NULL, password_reset_expires = NULL, updated_at = now()
		WHERE id = $1`
	_, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("clear reset token: %w", err)
	}
	return nil
}

// List lista cuentas (incluye inactivas: es una vista administrativa).
func (r *UserRepo) List(ctx context.Context, limit, offset int) ([]*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()
	var list []*entity.User
	for rows.Next() {
		var u entity.User
		if err := rows.Scan(
			&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Role,
			&u.PasswordChangedAt, &u.PasswordResetTokenHash, &u.PasswordResetExpires,
			&u.Active, &u.CreatedAt, &u.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		list = append(list, &u)
	}
	return list, rows.Err()
}

// Deactivate marca la cuenta como inactiva (soft delete).
func (r *UserRepo) Deactivate(ctx context.Context, id string) error {
	_, err := r.pool.Exec(ctx, `UPDATE users SET active = FALSE, updated_at = now() WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deactivate user: %w", err)
	}
	return nil
}

// Delete elimina una cuenta por ID.
func (r *UserRepo) Delete(ctx context.Context, id string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	return nil
}
