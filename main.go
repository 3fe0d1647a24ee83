package main

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"github.com/gofiber/fiber/v2/middleware/cors"

	"github.com/docspot/availability-service/cron"

	"github.com/docspot/availability-service/db"

	"github.com/docspot/availability-service/redis"

	"github.com/docspot/availability-service/routes"
)

func main() {
	app := fiber.New()
	db.Migrate()
	redis.InitRedis()
	cron.StartCronJobs()

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
	}))

	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("Availability service up")
	})
	routes.SetupAvailabilityRoutes(app)
	routes.SetupNotificationRoutes(app)

	log.Fatal(app.Listen(":8000"))
}
