package routes

import (
	"github.com/anjiri1684/course_mentor/handlers"
	"github.com/anjiri1684/course_mentor/middleware"
	"github.com/gofiber/fiber/v2"
)

func AdminRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	admin := api.Group("/admin", middleware.Protected(), middleware.AdminRequired())
	admin.Get("/instructors", handlers.GetAllInstructors)
	admin.Get("/students", handlers.GetAllStudents)
	admin.Post("/onboard", handlers.OnboardInstructor)
	admin.Get("/stats", handlers.GetAdminStats)
}
