package routes

import (
	"github.com/anjiri1684/course_mentor/handlers"
	"github.com/anjiri1684/course_mentor/middleware"
	"github.com/gofiber/fiber/v2"
)

func ProgressRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	progress := api.Group("/progress", middleware.Protected())
	progress.Get("/:courseId", handlers.GetCourseProgress)
	progress.Post("/:courseId/lectures/:lectureId/viewed", handlers.MarkLectureViewed)
	progress.Post("/:courseId/reset", handlers.ResetCourseProgress)
}
