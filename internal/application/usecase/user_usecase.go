package usecase

import (
	"context"
	"fmt"
	"net/mail"
	"strings"

	"github.com/jhoicas/Turismo-api/internal/application/dto"
	"github.com/jhoicas/Turismo-api/internal/domain"
	"github.com/jhoicas/Turismo-api/internal/domain/entity"
	"github.com/jhoicas/Turismo-api/internal/domain/repository"
)

// UserUseCase gestión de perfiles y administración de cuentas.
// Todo lo relativo a credenciales (contraseña, reset) vive en application/auth.
type UserUseCase struct {
	userRepo repository.UserRepository
}

// NewUserUseCase construye el caso de uso de usuarios.
func NewUserUseCase(userRepo repository.UserRepository) *UserUseCase {
	return &UserUseCase{userRepo: userRepo}
}

// GetByID devuelve una cuenta activa por ID.
func (uc *UserUseCase) GetByID(ctx context.Context, id string) (*dto.UserResponse, error) {
	user, err := uc.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	resp := toUserResponse(user)
	return &resp, nil
}

// List lista cuentas con paginación (solo admin).
func (uc *UserUseCase) List(ctx context.Context, limit, offset int) ([]dto.UserResponse, error) {
	users, err := uc.userRepo.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, toUserResponse(u))
	}
	return out, nil
}

// UpdateMe actualiza nombre y/o email del propio usuario. La contraseña nunca
// se toca por esta vía; ese flujo exige la contraseña vigente.
func (uc *UserUseCase) UpdateMe(ctx context.Context, userID string, in dto.UpdateMeRequest) (*dto.UserResponse, error) {
	user, err := uc.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if in.Name != "" {
		user.Name = strings.TrimSpace(in.Name)
	}
	if in.Email != "" {
		email, err := normalizeEmail(in.Email)
		if err != nil {
			return nil, err
		}
		user.Email = email
	}
	if err := uc.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	resp := toUserResponse(user)
	return &resp, nil
}

// DeleteMe desactiva la cuenta (soft delete). La cuenta deja de existir para
// cualquier búsqueda usada por autenticación.
func (uc *UserUseCase) DeleteMe(ctx context.Context, userID string) error {
	return uc.userRepo.Deactivate(ctx, userID)
}

// UpdateUser edición administrativa: nombre, email, rol y active.
func (uc *UserUseCase) UpdateUser(ctx context.Context, id string, in dto.UpdateUserRequest) (*dto.UserResponse, error) {
	user, err := uc.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if in.Name != "" {
		user.Name = strings.TrimSpace(in.Name)
	}
	if in.Email != "" {
		email, err := normalizeEmail(in.Email)
		if err != nil {
			return nil, err
		}
		user.Email = email
	}
	if in.Role != "" {
		if !entity.ValidRole(in.Role) {
			return nil, fmt.Errorf("%w: rol desconocido %q", domain.ErrInvalidInput, in.Role)
		}
		user.Role = in.Role
	}
	if in.Active != nil {
		user.Active = *in.Active
	}
	if err := uc.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	resp := toUserResponse(user)
	return &resp, nil
}

// DeleteUser elimina la cuenta definitivamente (solo admin).
func (uc *UserUseCase) DeleteUser(ctx context.Context, id string) error {
	return uc.userRepo.Delete(ctx, id)
}

func normalizeEmail(email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return "", fmt.Errorf("%w: email inválido", domain.ErrInvalidInput)
	}
	return email, nil
}

func toUserResponse(u *entity.User) dto.UserResponse {
	return dto.UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      u.Role,
		Active:    u.Active,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
