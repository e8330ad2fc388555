package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jhoicas/Turismo-api/internal/application/auth"
	"github.com/jhoicas/Turismo-api/internal/application/usecase"
	inframail "github.com/jhoicas/Turismo-api/internal/infrastructure/mail"
	"github.com/jhoicas/Turismo-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/Turismo-api/internal/interfaces/http"
	"github.com/jhoicas/Turismo-api/pkg/config"
	"github.com/jhoicas/Turismo-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	if cfg.JWT.Secret == "" {
		log.Fatal().Msg("JWT_SECRET es obligatorio")
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	tourRepo := postgres.NewTourRepository(pool)
	mailer := inframail.NewSMTPMailer(cfg.SMTP)

	authUC := auth.NewAuthUseCase(userRepo, mailer, auth.Config{
		JWT: auth.JWTConfig{
			Secret:     cfg.JWT.Secret,
			ExpMinutes: cfg.JWT.Expiration,
			Issuer:     cfg.JWT.Issuer,
		},
		BcryptCost:     cfg.Auth.BcryptCost,
		ResetTokenTTL:  cfg.Auth.ResetTokenTTL,
		PasswordMinLen: cfg.Auth.PasswordMinLen,
		ResetBaseURL:   cfg.App.BaseURL,
	})
	userUC := usecase.NewUserUseCase(userRepo)
	tourUC := usecase.NewTourUseCase(tourRepo)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC: authUC,
		UserUC: userUC,
		TourUC: tourUC,
		Cookie: httpRouter.CookieConfig{
			Days:   cfg.JWT.CookieDays,
			Secure: cfg.App.Env != "development",
		},
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
