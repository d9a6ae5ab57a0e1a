package routes

import (
	"github.com/anjiri1684/course_mentor/handlers"
	"github.com/anjiri1684/course_mentor/middleware"
	"github.com/gofiber/fiber/v2"
)

func OrderRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	orders := api.Group("/orders", middleware.Protected())
	orders.Post("", handlers.CreateOrder)
	orders.Post("/:orderId/capture", handlers.CaptureOrder)
	orders.Get("/courses", handlers.GetCoursesBought)
}
