package auth

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Turismo-api/internal/application/dto"
	"github.com/jhoicas/Turismo-api/internal/domain"
	"github.com/jhoicas/Turismo-api/internal/domain/entity"
	"github.com/jhoicas/Turismo-api/internal/domain/repository"
	"github.com/jhoicas/Turismo-api/pkg/jwt"
	"golang.org/x/crypto/bcrypt"
)

// JWTConfig configuración para emisión de tokens de sesión.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// Config parámetros del ciclo de vida de credenciales.
type Config struct {
	JWT JWTConfig
	// BcryptCost factor de coste del hash; 12 si es cero.
	BcryptCost int
	// ResetTokenTTL vigencia del token de reset; 10 minutos si es cero.
	ResetTokenTTL time.Duration
	// PasswordMinLen mínimo único para contraseña y confirmación; 8 si es cero.
	PasswordMinLen int
	// ResetBaseURL base del enlace de reset enviado por correo.
	ResetBaseURL string
}

// AuthUseCase casos de uso de autenticación: registro, login, sesión,
// cambio y reset de contraseña.
type AuthUseCase struct {
	userRepo repository.UserRepository
	mailer   Mailer
	cfg      Config

	// dummyHash se compara cuando el email de login no existe, para que ambas
	// causas de fallo cuesten lo mismo (resistencia a enumeración por timing).
	dummyHash []byte
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(userRepo repository.UserRepository, mailer Mailer, cfg Config) *AuthUseCase {
	if cfg.BcryptCost == 0 {
		cfg.BcryptCost = 12
	}
	if cfg.ResetTokenTTL == 0 {
		cfg.ResetTokenTTL = 10 * time.Minute
	}
	if cfg.PasswordMinLen == 0 {
		cfg.PasswordMinLen = 8
	}
	dummy, err := bcrypt.GenerateFromPassword([]byte("timing-equalizer"), cfg.BcryptCost)
	if err != nil {
		// bcrypt solo falla aquí con un coste fuera de rango; sin hash de relleno
		// no se puede garantizar la comparación segura.
		panic("auth: coste de bcrypt inválido: " + err.Error())
	}
	return &AuthUseCase{userRepo: userRepo, mailer: mailer, cfg: cfg, dummyHash: dummy}
}

// SessionResult token de sesión recién emitido más el usuario sin credenciales.
type SessionResult struct {
	Token string
	User  dto.UserResponse
}

// Signup crea la cuenta: valida la confirmación ANTES de hashear, normaliza el
// email, hashea con bcrypt y emite un token de sesión. El rol siempre nace como
// "user"; elevarlo es una operación administrativa aparte.
func (uc *AuthUseCase) Signup(ctx context.Context, in dto.SignupRequest) (*SessionResult, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, fmt.Errorf("%w: el nombre es requerido", domain.ErrInvalidInput)
	}
	email, err := normalizeEmail(in.Email)
	if err != nil {
		return nil, err
	}
	if err := uc.validateNewPassword(in.Password, in.PasswordConfirm); err != nil {
		return nil, err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), uc.cfg.BcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash de contraseña: %w", err)
	}
	now := time.Now()
	user := &entity.User{
		ID:           uuid.New().String(),
		Name:         strings.TrimSpace(in.Name),
		Email:        email,
		PasswordHash: string(hash),
		Role:         entity.RoleUser,
		Active:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	// El índice único de email en el store es la única salvaguarda contra
	// registros duplicados concurrentes.
	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return uc.issueSession(user)
}

// Login verifica email/contraseña y emite un token de sesión. Email inexistente
// y contraseña errónea devuelven exactamente el mismo error.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*SessionResult, error) {
	if in.Email == "" || in.Password == "" {
		return nil, fmt.Errorf("%w: email y contraseña son requeridos", domain.ErrInvalidInput)
	}
	user, err := uc.userRepo.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(in.Email)))
	if err != nil {
		return nil, err
	}
	if user == nil {
		// Comparación de relleno: que el caso "no existe" cueste lo mismo que
		// el caso "contraseña errónea".
		_ = bcrypt.CompareHashAndPassword(uc.dummyHash, []byte(in.Password))
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	return uc.issueSession(user)
}

// ResolveSession valida un token de sesión y lo resuelve a una cuenta viva.
// Rechaza tokens emitidos antes del último cambio de contraseña: esa marca de
// tiempo es el único mecanismo de revocación, no hay blacklist.
func (uc *AuthUseCase) ResolveSession(ctx context.Context, token string) (*entity.User, error) {
	userID, issuedAt, err := jwt.Parse(uc.cfg.JWT.Secret, token)
	if err != nil {
		return nil, fmt.Errorf("%w: token inválido o expirado", domain.ErrUnauthenticated)
	}
	user, err := uc.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fmt.Errorf("%w: el usuario de este token ya no existe", domain.ErrUnauthenticated)
	}
	if user.PasswordChangedAfter(issuedAt) {
		return nil, fmt.Errorf("%w: la contraseña cambió recientemente, inicia sesión de nuevo", domain.ErrUnauthenticated)
	}
	return user, nil
}

// ChangePassword exige la contraseña vigente antes de mutar nada. Al persistir
// se adelanta password_changed_at un segundo hacia atrás para que el token
// fresco emitido aquí mismo no quede auto-revocado.
func (uc *AuthUseCase) ChangePassword(ctx context.Context, userID string, in dto.ChangePasswordRequest) (*SessionResult, error) {
	user, err := uc.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fmt.Errorf("%w: el usuario ya no existe", domain.ErrUnauthenticated)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.PasswordCurrent)); err != nil {
		return nil, domain.ErrWrongPassword
	}
	if err := uc.validateNewPassword(in.Password, in.PasswordConfirm); err != nil {
		return nil, err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), uc.cfg.BcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash de contraseña: %w", err)
	}
	changedAt := time.Now().Add(-time.Second)
	// Durable antes de responder: el siguiente request con el token nuevo debe
	// observar el password_changed_at actualizado.
	if err := uc.userRepo.UpdatePassword(ctx, user.ID, string(hash), changedAt); err != nil {
		return nil, err
	}
	user.PasswordHash = string(hash)
	user.PasswordChangedAt = &changedAt
	return uc.issueSession(user)
}

// ForgotPassword emite un token de reset de un solo uso: 32 bytes aleatorios en
// hex para el correo, y solo su SHA-256 con expiración en el store. Si el envío
// falla, el token emitido se revierte y el estado vuelve a "sin reset pendiente".
func (uc *AuthUseCase) ForgotPassword(ctx context.Context, email string) error {
	user, err := uc.userRepo.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return err
	}
	if user == nil {
		return fmt.Errorf("%w: no hay usuario con ese email", domain.ErrNotFound)
	}

	raw := make([]byte, 32)
	if _, err := rand.Read(raw); err != nil {
		return fmt.Errorf("generar token de reset: %w", err)
	}
	rawToken := hex.EncodeToString(raw)
	tokenHash := hashResetToken(rawToken)
	expires := time.Now().Add(uc.cfg.ResetTokenTTL)

	if err := uc.userRepo.SetResetToken(ctx, user.ID, tokenHash, expires); err != nil {
		return err
	}

	resetURL := fmt.Sprintf("%s/api/v1/users/resetPassword/%s", strings.TrimRight(uc.cfg.ResetBaseURL, "/"), rawToken)
	minutes := int(uc.cfg.ResetTokenTTL / time.Minute)
	subject := fmt.Sprintf("Tu token de reset de contraseña (válido por %d minutos)", minutes)
	body := fmt.Sprintf(
		"¿Olvidaste tu contraseña? Envía una petición PATCH con tu nueva contraseña y su confirmación a: %s\nSi no olvidaste tu contraseña, ignora este correo.",
		resetURL,
	)

	if err := uc.mailer.Send(ctx, user.Email, subject, body); err != nil {
		// Rollback del reset emitido; sin correo entregado el token es inservible.
		if clearErr := uc.userRepo.ClearResetToken(ctx, user.ID); clearErr != nil {
			return fmt.Errorf("revertir token de reset tras fallo de correo: %w", clearErr)
		}
		return fmt.Errorf("%w: %v", domain.ErrMailDelivery, err)
	}
	return nil
}

// ResetPassword consume el token de reset exactamente una vez. La búsqueda exige
// coincidencia de hash Y expiración vigente en un solo predicado, así que un
// token vencido y uno que nunca existió fallan de forma idéntica. Al persistir
// la nueva contraseña se limpian los campos de reset: el replay falla después.
func (uc *AuthUseCase) ResetPassword(ctx context.Context, rawToken string, in dto.ResetPasswordRequest) (*SessionResult, error) {
	if rawToken == "" {
		return nil, domain.ErrResetTokenInvalid
	}
	user, err := uc.userRepo.FindByResetTokenHash(ctx, hashResetToken(rawToken))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrResetTokenInvalid
	}
	if err := uc.validateNewPassword(in.Password, in.PasswordConfirm); err != nil {
		return nil, err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), uc.cfg.BcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash de contraseña: %w", err)
	}
	changedAt := time.Now().Add(-time.Second)
	if err := uc.userRepo.UpdatePassword(ctx, user.ID, string(hash), changedAt); err != nil {
		return nil, err
	}
	user.PasswordHash = string(hash)
	user.PasswordChangedAt = &changedAt
	user.PasswordResetTokenHash = nil
	user.PasswordResetExpires = nil
	return uc.issueSession(user)
}

func (uc *AuthUseCase) issueSession(user *entity.User) (*SessionResult, error) {
	token, err := jwt.Generate(uc.cfg.JWT.Secret, user.ID, uc.cfg.JWT.Issuer, uc.cfg.JWT.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &SessionResult{Token: token, User: ToUserResponse(user)}, nil
}

func (uc *AuthUseCase) validateNewPassword(password, confirm string) error {
	if len(password) < uc.cfg.PasswordMinLen {
		return fmt.Errorf("%w: la contraseña debe tener al menos %d caracteres", domain.ErrInvalidInput, uc.cfg.PasswordMinLen)
	}
	if password != confirm {
		return domain.ErrPasswordMismatch
	}
	return nil
}

// normalizeEmail valida el formato y lo lleva a minúsculas; el store indexa el
// email ya normalizado.
func normalizeEmail(email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return "", fmt.Errorf("%w: email inválido", domain.ErrInvalidInput)
	}
	return email, nil
}

// hashResetToken deriva el valor persistible del token de reset (SHA-256 hex).
func hashResetToken(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}

// ToUserResponse proyecta la cuenta a su forma pública, sin hash ni campos de reset.
func ToUserResponse(u *entity.User) dto.UserResponse {
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
