package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/docspot/availability-service/controllers"
)

// SetupNotificationRoutes configures all notification related routes
func SetupNotificationRoutes(app *fiber.App) {
	notifications := app.Group("/notifications")
	notifications.Post("/contact", controllers.UpsertNotificationContact)
}
