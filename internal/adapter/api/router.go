package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
)

type HealthInfo struct {
	Version string
	Env     string
}

func NewApp() *fiber.App {
	return fiber.New(fiber.Config{
		AppName:               "Wanderly Gemini Gateway",
		DisableStartupMessage: true,
	})
}

func SetupRouter(app *fiber.App, handler *ProxyHandler, info HealthInfo) {
	// Middleware
	app.Use(recover.New())
	app.Use(requestid.New(requestid.Config{Generator: uuid.NewString}))
	app.Use(logger.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status":  "healthy",
			"version": info.Version,
			"env":     info.Env,
		})
	})

	// Single method-dispatched endpoint
	app.All("/", handler.Handle)
}
