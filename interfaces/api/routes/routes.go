package routes

import (
	"github.com/gofiber/fiber/v2"

	"taskboard/domain/services"
	"taskboard/interfaces/api/handlers"
)

func SetupRoutes(app *fiber.App, h *handlers.Handlers, authService services.AuthService) {
	SetupHealthRoutes(app)

	api := app.Group("/api")

	SetupAuthRoutes(api, h)
	SetupTaskRoutes(api, h, authService)
}
