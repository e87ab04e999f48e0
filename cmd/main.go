package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"session-guard/internal/di"
	"session-guard/internal/session/config"
	apperrors "session-guard/internal/shared/errors"
	"session-guard/internal/shared/logger"

	"github.com/caarlos0/env/v6"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
)

// ServerConfig holds server configuration
type ServerConfig struct {
	Host string `env:"SERVER_HOST" envDefault:"localhost"`
	Port string `env:"SERVER_PORT" envDefault:"3000"`
}

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: Could not load .env file: %v", err)
	}

	serverCfg := &ServerConfig{}
	if err := env.Parse(serverCfg); err != nil {
		log.Fatalf("Failed to load server configuration: %v", err)
	}

	sessionCfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load session configuration: %v", err)
	}

	appLogger := logger.New(sessionCfg.LogBackend, sessionCfg.LogLevel, sessionCfg.LogFormat)
	appLogger.Info("Application configuration loaded successfully")

	container := di.NewContainer(appLogger)
	defer func() {
		if err := container.Close(); err != nil {
			appLogger.Errorf("Failed to close container: %v", err)
		}
	}()

	if err := container.InitializeSession(sessionCfg); err != nil {
		appLogger.Fatalf("Failed to initialize session module: %v", err)
	}
	appLogger.Infof("Session module initialized (cookie %q)", sessionCfg.CookieName)

	app := fiber.New(fiber.Config{
		AppName:      "session-guard",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
		ErrorHandler: errorHandler(appLogger),
	})

	app.Use(recover.New())

	sessionModule := container.GetSessionModule()
	sessionModule.RegisterMiddleware(app)

	app.Get("/health", func(c *fiber.Ctx) error {
		healthCtx, cancel := context.WithTimeout(c.UserContext(), 5*time.Second)
		defer cancel()

		if err := container.HealthCheck(healthCtx); err != nil {
			appLogger.Errorf("Health check failed: %v", err)
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"status": "UNHEALTHY",
				"error":  err.Error(),
			})
		}

		return c.JSON(fiber.Map{
			"status":    "HEALTHY",
			"timestamp": time.Now().UTC(),
		})
	})

	sessionModule.RegisterRoutes(app)
	appLogger.Info("Session routes registered")

	serverAddr := fmt.Sprintf("%s:%s", serverCfg.Host, serverCfg.Port)
	appLogger.Infof("Starting HTTP server on %s", serverAddr)

	serverShutdown := make(chan error, 1)
	go func() {
		serverShutdown <- app.Listen(serverAddr)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverShutdown:
		if err != nil {
			appLogger.Errorf("Server failed: %v", err)
		}
	case sig := <-quit:
		appLogger.Infof("Received shutdown signal: %v", sig)

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			appLogger.Errorf("Server forced to shutdown: %v", err)
		}

		appLogger.Info("HTTP server stopped")
	}
}

// errorHandler maps errors returned by handlers to JSON responses.
// Internal details are logged, never sent.
func errorHandler(appLog logger.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return c.Status(fiberErr.Code).JSON(fiber.Map{"error": fiberErr.Message})
		}

		appErr := apperrors.WrapError(err, "Internal Server Error")
		if appErr.HTTPCode > 0 && appErr.HTTPCode < fiber.StatusInternalServerError {
			return c.Status(appErr.HTTPCode).JSON(fiber.Map{
				"error": appErr.Message,
				"type":  appErr.Type,
				"code":  appErr.Code,
			})
		}

		appLog.WithContext(c.UserContext()).Errorf("HTTP error: %v", err)
		return c.Status(apperrors.HTTPStatus(appErr)).JSON(fiber.Map{
			"error": "Internal Server Error",
		})
	}
}
