package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Turismo-api/internal/application/auth"
	"github.com/jhoicas/Turismo-api/internal/application/usecase"
	"github.com/jhoicas/Turismo-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC *auth.AuthUseCase
	UserUC *usecase.UserUseCase
	TourUC *usecase.TourUseCase
	Cookie CookieConfig
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api/v1")

	// Users: auth pública + ciclo de contraseñas
	users := api.Group("/users")
	authHandler := NewAuthHandler(deps.AuthUC, deps.Cookie)
	users.Post("/signup", authHandler.Signup)
	users.Post("/login", authHandler.Login)
	users.Get("/logout", authHandler.Logout)
	users.Post("/forgotPassword", authHandler.ForgotPassword)
	users.Patch("/resetPassword/:token", authHandler.ResetPassword)

	// A partir de aquí hace falta sesión
	users.Use(Protect(deps.AuthUC))
	userHandler := NewUserHandler(deps.UserUC)
	users.Patch("/changePassword", authHandler.ChangePassword)
	users.Get("/me", userHandler.GetMe)
	users.Patch("/updateMe", userHandler.UpdateMe)
	users.Delete("/deleteMe", userHandler.DeleteMe)

	// Administración de cuentas: allow-list declarada en el registro de la ruta
	admin := users.Group("/", RequireRole(entity.RoleAdmin))
	admin.Get("/", userHandler.List)
	admin.Get("/:id", userHandler.GetByID)
	admin.Patch("/:id", userHandler.Update)
	admin.Delete("/:id", userHandler.Delete)

	// Tours: lectura pública, escritura para admin y lead-guide
	tours := api.Group("/tours")
	tourHandler := NewTourHandler(deps.TourUC)
	tours.Get("/", tourHandler.List)
	tours.Get("/:id", tourHandler.GetByID)

	tourWrite := tours.Group("/", Protect(deps.AuthUC), RequireRole(entity.RoleAdmin, entity.RoleLeadGuide))
	tourWrite.Post("/", tourHandler.Create)
	tourWrite.Patch("/:id", tourHandler.Update)
	tourWrite.Delete("/:id", tourHandler.Delete)
}
