package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/docspot/availability-service/controllers"
)

// SetupAvailabilityRoutes configures all slot management related routes
func SetupAvailabilityRoutes(app *fiber.App) {
	app.Post("/createTimeSlot", controllers.CreateTimeSlot)
	app.Get("/getTimeSlots/:doctorId", controllers.GetTimeSlots)
	app.Put("/editTimeSlot", controllers.EditTimeSlot)
	app.Patch("/updateSlot/:id", controllers.UpdateSlot)
	app.Patch("/markSlot/:id", controllers.MarkSlot)
	app.Get("/getActiveSlots/:doctorId", controllers.GetActiveSlots)
}
