package routes

import (
	"github.com/anjiri1684/course_mentor/handlers"
	"github.com/anjiri1684/course_mentor/middleware"
	"github.com/gofiber/fiber/v2"
)

func CourseRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	courses := api.Group("/courses")
	courses.Get("", handlers.GetAllCourses)
	courses.Get("/mentors", handlers.GetMentors)
	courses.Get("/:courseId", handlers.GetCourseDetails)
	courses.Get("/:courseId/purchase-info", middleware.Protected(), handlers.CheckCoursePurchaseInfo)

	instructorCourses := api.Group("/instructor/courses", middleware.Protected(), middleware.InstructorRequired())
	instructorCourses.Post("", handlers.AddCourse)
	instructorCourses.Get("/me", handlers.GetMyCourses)
	instructorCourses.Put("/:courseId", handlers.UpdateCourse)
}
