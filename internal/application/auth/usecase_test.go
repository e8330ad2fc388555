package auth_test

import (
	"context"
	"encoding/json"
	"errors"
	"regexp"
	"testing"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/Turismo-api/internal/application/auth"
	"github.com/jhoicas/Turismo-api/internal/application/dto"
	"github.com/jhoicas/Turismo-api/internal/domain"
	"github.com/jhoicas/Turismo-api/internal/infrastructure/memory"
	pkgjwt "github.com/jhoicas/Turismo-api/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	testSecret = "test-secret-key-for-unit-tests"
	testIssuer = "tours-pro-test"
)

// fakeMailer captura el último correo enviado; con Fail simula un SMTP caído.
type fakeMailer struct {
	To      string
	Subject string
	Body    string
	Fail    error
}

func (m *fakeMailer) Send(_ context.Context, to, subject, body string) error {
	if m.Fail != nil {
		return m.Fail
	}
	m.To, m.Subject, m.Body = to, subject, body
	return nil
}

// newUseCase construye el caso de uso sobre el repo en memoria, con coste de
// bcrypt mínimo para que los tests no paguen el coste de producción.
func newUseCase(mailer auth.Mailer) (*auth.AuthUseCase, *memory.UserRepo) {
	repo := memory.NewUserRepository()
	uc := auth.NewAuthUseCase(repo, mailer, auth.Config{
		JWT: auth.JWTConfig{
			Secret:     testSecret,
			ExpMinutes: 60,
			Issuer:     testIssuer,
		},
		BcryptCost:     bcrypt.MinCost,
		ResetTokenTTL:  10 * time.Minute,
		PasswordMinLen: 8,
		ResetBaseURL:   "http://localhost:8080",
	})
	return uc, repo
}

func signupRequest() dto.SignupRequest {
	return dto.SignupRequest{
		Name:            "Ana Prueba",
		Email:           "a@x.com",
		Password:        "Secret12",
		PasswordConfirm: "Secret12",
	}
}

// tokenWithIssuedAt fabrica un token firmado con un issued-at arbitrario, para
// simular sesiones emitidas en el pasado.
func tokenWithIssuedAt(t *testing.T, userID string, issuedAt time.Time) string {
	t.Helper()
	claims := pkgjwt.Claims{
		RegisteredClaims: jwtlib.RegisteredClaims{
			Issuer:    testIssuer,
			Subject:   userID,
			IssuedAt:  jwtlib.NewNumericDate(issuedAt),
			ExpiresAt: jwtlib.NewNumericDate(time.Now().Add(time.Hour)),
		},
		UserID: userID,
	}
	tok, err := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return tok
}

// resetTokenFromBody extrae el token crudo del cuerpo del correo de reset.
var resetURLRe = regexp.MustCompile(`resetPassword/([0-9a-f]{64})`)

func resetTokenFromBody(t *testing.T, body string) string {
	t.Helper()
	m := resetURLRe.FindStringSubmatch(body)
	require.Len(t, m, 2, "el correo debe contener el enlace de reset")
	return m[1]
}

// ──────────────────────────────────────────────────────────────────────────────
// Signup
// ──────────────────────────────────────────────────────────────────────────────

func TestSignup_RespuestaSinCredenciales(t *testing.T) {
	uc, repo := newUseCase(&fakeMailer{})
	out, err := uc.Signup(context.Background(), signupRequest())
	require.NoError(t, err)
	require.NotEmpty(t, out.Token)

	// La proyección pública nunca serializa password ni hash
	raw, err := json.Marshal(out.User)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "password")
	assert.NotContains(t, string(raw), "Secret12")

	// El store guarda un hash, nunca el texto plano
	stored, err := repo.FindByEmail(context.Background(), "a@x.com")
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.NotEqual(t, "Secret12", stored.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("Secret12")))
	assert.Equal(t, "user", stored.Role, "el rol siempre nace como user")
}

func TestSignup_ConfirmacionDistinta_NoMutaNada(t *testing.T) {
	uc, repo := newUseCase(&fakeMailer{})
	in := signupRequest()
	in.PasswordConfirm = "Distinta12"

	_, err := uc.Signup(context.Background(), in)
	assert.ErrorIs(t, err, domain.ErrPasswordMismatch)

	stored, err := repo.FindByEmail(context.Background(), "a@x.com")
	require.NoError(t, err)
	assert.Nil(t, stored, "no debe quedar registro tras una confirmación fallida")
}

func TestSignup_ContrasenaCorta(t *testing.T) {
	uc, _ := newUseCase(&fakeMailer{})
	in := signupRequest()
	in.Password, in.PasswordConfirm = "corta", "corta"

	_, err := uc.Signup(context.Background(), in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSignup_EmailDuplicado(t *testing.T) {
	uc, _ := newUseCase(&fakeMailer{})
	_, err := uc.Signup(context.Background(), signupRequest())
	require.NoError(t, err)

	_, err = uc.Signup(context.Background(), signupRequest())
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestSignup_EmailNormalizado(t *testing.T) {
	uc, repo := newUseCase(&fakeMailer{})
	in := signupRequest()
	in.Email = "  A@X.COM "

	_, err := uc.Signup(context.Background(), in)
	require.NoError(t, err)

	stored, err := repo.FindByEmail(context.Background(), "a@x.com")
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, "a@x.com", stored.Email)
}

// ──────────────────────────────────────────────────────────────────────────────
// Login
// ──────────────────────────────────────────────────────────────────────────────

func TestLogin_OK(t *testing.T) {
	uc, _ := newUseCase(&fakeMailer{})
	_, err := uc.Signup(context.Background(), signupRequest())
	require.NoError(t, err)

	out, err := uc.Login(context.Background(), dto.LoginRequest{Email: "a@x.com", Password: "Secret12"})
	require.NoError(t, err)
	assert.NotEmpty(t, out.Token)
	assert.Equal(t, "a@x.com", out.User.Email)
}

func TestLogin_MismoErrorParaAmbasCausas(t *testing.T) {
	uc, _ := newUseCase(&fakeMailer{})
	_, err := uc.Signup(context.Background(), signupRequest())
	require.NoError(t, err)

	// Contraseña errónea con email existente
	_, errPwd := uc.Login(context.Background(), dto.LoginRequest{Email: "a@x.com", Password: "Erronea12"})
	// Email inexistente
	_, errMail := uc.Login(context.Background(), dto.LoginRequest{Email: "nadie@x.com", Password: "Secret12"})

	assert.ErrorIs(t, errPwd, domain.ErrUnauthorized)
	assert.ErrorIs(t, errMail, domain.ErrUnauthorized)
	assert.Equal(t, errPwd.Error(), errMail.Error(),
		"ambas causas deben producir exactamente el mismo mensaje (anti-enumeración)")
}

func TestLogin_CamposFaltantes(t *testing.T) {
	uc, _ := newUseCase(&fakeMailer{})
	_, err := uc.Login(context.Background(), dto.LoginRequest{Email: "a@x.com"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Login(context.Background(), dto.LoginRequest{Password: "Secret12"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestLogin_CuentaDesactivadaInvisible(t *testing.T) {
	uc, repo := newUseCase(&fakeMailer{})
	out, err := uc.Signup(context.Background(), signupRequest())
	require.NoError(t, err)
	require.NoError(t, repo.Deactivate(context.Background(), out.User.ID))

	_, err = uc.Login(context.Background(), dto.LoginRequest{Email: "a@x.com", Password: "Secret12"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized,
		"una cuenta desactivada debe fallar igual que una inexistente")
}

// ──────────────────────────────────────────────────────────────────────────────
// Sesión y revocación por cambio de contraseña
// ──────────────────────────────────────────────────────────────────────────────

func TestResolveSession_OK(t *testing.T) {
	uc, _ := newUseCase(&fakeMailer{})
	out, err := uc.Signup(context.Background(), signupRequest())
	require.NoError(t, err)

	user, err := uc.ResolveSession(context.Background(), out.Token)
	require.NoError(t, err)
	assert.Equal(t, out.User.ID, user.ID)
}

func TestResolveSession_TokenInvalido(t *testing.T) {
	uc, _ := newUseCase(&fakeMailer{})
	_, err := uc.ResolveSession(context.Background(), "token.invalido.aqui")
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)
}

func TestResolveSession_UsuarioYaNoExiste(t *testing.T) {
	uc, repo := newUseCase(&fakeMailer{})
	out, err := uc.Signup(context.Background(), signupRequest())
	require.NoError(t, err)
	require.NoError(t, repo.Deactivate(context.Background(), out.User.ID))

	_, err = uc.ResolveSession(context.Background(), out.Token)
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)
}

func TestChangePassword_RevocaSesionesAnteriores(t *testing.T) {
	uc, _ := newUseCase(&fakeMailer{})
	out, err := uc.Signup(context.Background(), signupRequest())
	require.NoError(t, err)

	// Sesión antigua: token emitido dos horas atrás
	oldToken := tokenWithIssuedAt(t, out.User.ID, time.Now().Add(-2*time.Hour))
	_, err = uc.ResolveSession(context.Background(), oldToken)
	require.NoError(t, err, "antes del cambio la sesión antigua es válida")

	fresh, err := uc.ChangePassword(context.Background(), out.User.ID, dto.ChangePasswordRequest{
		PasswordCurrent: "Secret12",
		Password:        "Newpass12",
		PasswordConfirm: "Newpass12",
	})
	require.NoError(t, err)

	// El token antiguo queda revocado de forma permanente
	_, err = uc.ResolveSession(context.Background(), oldToken)
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)

	// El token fresco emitido por el propio cambio sigue siendo válido
	_, err = uc.ResolveSession(context.Background(), fresh.Token)
	assert.NoError(t, err)

	// La contraseña nueva abre sesión; la vieja ya no
	_, err = uc.Login(context.Background(), dto.LoginRequest{Email: "a@x.com", Password: "Newpass12"})
	assert.NoError(t, err)
	_, err = uc.Login(context.Background(), dto.LoginRequest{Email: "a@x.com", Password: "Secret12"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestChangePassword_ActualIncorrecta(t *testing.T) {
	uc, repo := newUseCase(&fakeMailer{})
	out, err := uc.Signup(context.Background(), signupRequest())
	require.NoError(t, err)
	before, err := repo.FindByEmail(context.Background(), "a@x.com")
	require.NoError(t, err)

	_, err = uc.ChangePassword(context.Background(), out.User.ID, dto.ChangePasswordRequest{
		PasswordCurrent: "Erronea12",
		Password:        "Newpass12",
		PasswordConfirm: "Newpass12",
	})
	assert.ErrorIs(t, err, domain.ErrWrongPassword)

	after, err := repo.FindByEmail(context.Background(), "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, before.PasswordHash, after.PasswordHash, "sin contraseña vigente no se muta nada")
}

func TestChangePassword_ConfirmacionDistinta(t *testing.T) {
	uc, _ := newUseCase(&fakeMailer{})
	out, err := uc.Signup(context.Background(), signupRequest())
	require.NoError(t, err)

	_, err = uc.ChangePassword(context.Background(), out.User.ID, dto.ChangePasswordRequest{
		PasswordCurrent: "Secret12",
		Password:        "Newpass12",
		PasswordConfirm: "Distinta12",
	})
	assert.ErrorIs(t, err, domain.ErrPasswordMismatch)
}

// ──────────────────────────────────────────────────────────────────────────────
// Reset de contraseña (forgot + reset)
// ──────────────────────────────────────────────────────────────────────────────

func TestReset_FlujoCompleto(t *testing.T) {
	mailer := &fakeMailer{}
	uc, repo := newUseCase(mailer)
	_, err := uc.Signup(context.Background(), signupRequest())
	require.NoError(t, err)

	require.NoError(t, uc.ForgotPassword(context.Background(), "a@x.com"))
	assert.Equal(t, "a@x.com", mailer.To)

	raw := resetTokenFromBody(t, mailer.Body)

	// El store retiene solo el hash del token, nunca el valor crudo
	stored, err := repo.FindByEmail(context.Background(), "a@x.com")
	require.NoError(t, err)
	require.NotNil(t, stored.PasswordResetTokenHash)
	assert.NotEqual(t, raw, *stored.PasswordResetTokenHash)
	require.NotNil(t, stored.PasswordResetExpires)
	assert.WithinDuration(t, time.Now().Add(10*time.Minute), *stored.PasswordResetExpires, time.Minute)

	out, err := uc.ResetPassword(context.Background(), raw, dto.ResetPasswordRequest{
		Password:        "Fresh123",
		PasswordConfirm: "Fresh123",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, out.Token, "el reset deja al usuario autenticado")

	// Consumido: los campos de reset quedan limpios
	stored, err = repo.FindByEmail(context.Background(), "a@x.com")
	require.NoError(t, err)
	assert.Nil(t, stored.PasswordResetTokenHash)
	assert.Nil(t, stored.PasswordResetExpires)

	// Replay del mismo valor crudo: falla igual que un token inexistente
	_, err = uc.ResetPassword(context.Background(), raw, dto.ResetPasswordRequest{
		Password:        "Otra1234",
		PasswordConfirm: "Otra1234",
	})
	assert.ErrorIs(t, err, domain.ErrResetTokenInvalid)

	// La contraseña nueva funciona
	_, err = uc.Login(context.Background(), dto.LoginRequest{Email: "a@x.com", Password: "Fresh123"})
	assert.NoError(t, err)
}

func TestReset_TokenExpirado_IndistinguibleDeInexistente(t *testing.T) {
	mailer := &fakeMailer{}
	uc, repo := newUseCase(mailer)
	_, err := uc.Signup(context.Background(), signupRequest())
	require.NoError(t, err)
	require.NoError(t, uc.ForgotPassword(context.Background(), "a@x.com"))
	raw := resetTokenFromBody(t, mailer.Body)

	// Vencer el token manualmente
	stored, err := repo.FindByEmail(context.Background(), "a@x.com")
	require.NoError(t, err)
	past := time.Now().Add(-time.Minute)
	stored.PasswordResetExpires = &past
	repo.Seed(stored)

	_, errExpired := uc.ResetPassword(context.Background(), raw, dto.ResetPasswordRequest{
		Password:        "Fresh123",
		PasswordConfirm: "Fresh123",
	})
	_, errUnknown := uc.ResetPassword(context.Background(), "deadbeef", dto.ResetPasswordRequest{
		Password:        "Fresh123",
		PasswordConfirm: "Fresh123",
	})

	assert.ErrorIs(t, errExpired, domain.ErrResetTokenInvalid)
	assert.ErrorIs(t, errUnknown, domain.ErrResetTokenInvalid)
	assert.Equal(t, errExpired.Error(), errUnknown.Error(),
		"vencido e inexistente deben ser indistinguibles")
}

func TestReset_RevocaSesionesAnteriores(t *testing.T) {
	mailer := &fakeMailer{}
	uc, _ := newUseCase(mailer)
	out, err := uc.Signup(context.Background(), signupRequest())
	require.NoError(t, err)
	oldToken := tokenWithIssuedAt(t, out.User.ID, time.Now().Add(-2*time.Hour))

	require.NoError(t, uc.ForgotPassword(context.Background(), "a@x.com"))
	raw := resetTokenFromBody(t, mailer.Body)
	_, err = uc.ResetPassword(context.Background(), raw, dto.ResetPasswordRequest{
		Password:        "Fresh123",
		PasswordConfirm: "Fresh123",
	})
	require.NoError(t, err)

	_, err = uc.ResolveSession(context.Background(), oldToken)
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)
}

func TestForgot_EmailDesconocido(t *testing.T) {
	uc, _ := newUseCase(&fakeMailer{})
	err := uc.ForgotPassword(context.Background(), "nadie@x.com")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestForgot_FalloDeCorreo_RevierteElToken(t *testing.T) {
	mailer := &fakeMailer{Fail: errors.New("smtp caído")}
	uc, repo := newUseCase(mailer)
	_, err := uc.Signup(context.Background(), signupRequest())
	require.NoError(t, err)

	err = uc.ForgotPassword(context.Background(), "a@x.com")
	assert.ErrorIs(t, err, domain.ErrMailDelivery)

	// Rollback: la cuenta vuelve a "sin reset pendiente"
	stored, err := repo.FindByEmail(context.Background(), "a@x.com")
	require.NoError(t, err)
	assert.Nil(t, stored.PasswordResetTokenHash)
	assert.Nil(t, stored.PasswordResetExpires)
}

func TestReset_ConfirmacionDistinta_NoConsume(t *testing.T) {
	mailer := &fakeMailer{}
	uc, _ := newUseCase(mailer)
	_, err := uc.Signup(context.Background(), signupRequest())
	require.NoError(t, err)
	require.NoError(t, uc.ForgotPassword(context.Background(), "a@x.com"))
	raw := resetTokenFromBody(t, mailer.Body)

	_, err = uc.ResetPassword(context.Background(), raw, dto.ResetPasswordRequest{
		Password:        "Fresh123",
		PasswordConfirm: "Distinta12",
	})
	assert.ErrorIs(t, err, domain.ErrPasswordMismatch)

	// La validación falló antes de mutar: el token sigue siendo consumible
	_, err = uc.ResetPassword(context.Background(), raw, dto.ResetPasswordRequest{
		Password:        "Fresh123",
		PasswordConfirm: "Fresh123",
	})
	assert.NoError(t, err)
}
