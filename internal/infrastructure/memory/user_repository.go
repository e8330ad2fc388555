// Package memory provee un UserRepository en memoria para tests y desarrollo
// local sin PostgreSQL. Replica las reglas del adaptador real: filtro de
// cuentas inactivas, índice único de email y expiración del token de reset
// evaluada en la propia búsqueda.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/jhoicas/Turismo-api/internal/domain"
	"github.com/jhoicas/Turismo-api/internal/domain/entity"
	"github.com/jhoicas/Turismo-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo almacén de usuarios en memoria, seguro para uso concurrente.
type UserRepo struct {
	mu    sync.RWMutex
	users map[string]*entity.User // por ID
}

// NewUserRepository construye el almacén vacío.
func NewUserRepository() *UserRepo {
	return &UserRepo{users: make(map[string]*entity.User)}
}

// Create inserta la cuenta; email duplicado devuelve ErrEmailAlreadyExists.
func (r *UserRepo) Create(_ context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == user.Email {
			return domain.ErrEmailAlreadyExists
		}
	}
	cp := *user
	r.users[user.ID] = &cp
	return nil
}

// FindByID devuelve la cuenta activa o nil.
func (r *UserRepo) FindByID(_ context.Context, id string) (*entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.users[id]
	if !ok || !u.Active {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

// FindByEmail devuelve la cuenta activa (con hash) o nil.
func (r *UserRepo) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, u := range r.users {
		if u.Email == email && u.Active {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

// FindByResetTokenHash exige coincidencia de hash y expiración vigente.
func (r *UserRepo) FindByResetTokenHash(_ context.Context, tokenHash string) (*entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	now := time.Now()
	for _, u := range r.users {
		if !u.Active || u.PasswordResetTokenHash == nil || u.PasswordResetExpires == nil {
			continue
		}
		if *u.PasswordResetTokenHash == tokenHash && now.Before(*u.PasswordResetExpires) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

// Update persiste nombre, email, rol y active.
func (r *UserRepo) Update(_ context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[user.ID]
	if !ok {
		return domain.ErrUserNotFound
	}
	for id, other := range r.users {
		if id != user.ID && other.Email == user.Email {
			return domain.ErrEmailAlreadyExists
		}
	}
	u.Name = user.Name
	u.Email = user.Email
	u.Role = user.Role
	u.Active = user.Active
	u.UpdatedAt = time.Now()
	return nil
}

// UpdatePassword fija hash y changed-at, y limpia los campos de reset (atómico
// bajo el lock, como la sentencia única del adaptador real).
func (r *UserRepo) UpdatePassword(_ context.Context, id, passwordHash string, changedAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.PasswordHash = passwordHash
	u.PasswordChangedAt = &changedAt
	u.PasswordResetTokenHash = nil
	u.PasswordResetExpires = nil
	u.UpdatedAt = time.Now()
	return nil
}

// SetResetToken fija el par hash/expiración.
func (r *UserRepo) SetResetToken(_ context.Context, id, tokenHash string, expires time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.PasswordResetTokenHash = &tokenHash
	u.PasswordResetExpires = &expires
	return nil
}

// ClearResetToken limpia el par hash/expiración.
func (r *UserRepo) ClearResetToken(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.PasswordResetTokenHash = nil
	u.PasswordResetExpires = nil
	return nil
}

// List lista todas las cuentas (incluye inactivas, vista administrativa).
func (r *UserRepo) List(_ context.Context, limit, offset int) ([]*entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var all []*entity.User
	for _, u := range r.users {
		cp := *u
		all = append(all, &cp)
	}
	if offset >= len(all) {
		return nil, nil
	}
	all = all[offset:]
	if limit > 0 && limit < len(all) {
		all = all[:limit]
	}
	return all, nil
}

// Deactivate marca la cuenta como inactiva.
func (r *UserRepo) Deactivate(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.Active = false
	return nil
}

// Delete elimina la cuenta.
func (r *UserRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.users, id)
	return nil
}

// Seed inserta una cuenta tal cual, sin pasar por Create (para tests que
// necesitan fijar campos derivados como password_changed_at).
func (r *UserRepo) Seed(user *entity.User) {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *user
	r.users[user.ID] = &cp
}
