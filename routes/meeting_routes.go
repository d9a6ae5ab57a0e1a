package routes

import (
	"github.com/anjiri1684/course_mentor/handlers"
	"github.com/anjiri1684/course_mentor/middleware"
	"github.com/gofiber/fiber/v2"
)

func MeetingRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	meeting := api.Group("/meetings", middleware.Protected())
	meeting.Post("", handlers.CreateMeeting)
	meeting.Get("/me", handlers.GetMyMeetings)
	meeting.Put("/:meetingId/reschedule", handlers.RequestMeetingReschedule)
	meeting.Put("/:meetingId/accept-reschedule", handlers.AcceptMeetingReschedule)
	meeting.Put("/:meetingId/capture-payment", handlers.CaptureMeetingPayment)
	meeting.Put("/:meetingId/rate", handlers.RateMeeting)

	mentorMeeting := api.Group("/instructor/meetings", middleware.Protected(), middleware.InstructorRequired())
	mentorMeeting.Get("/me", handlers.GetMyMentorMeetings)
	mentorMeeting.Put("/:meetingId/decide", handlers.DecideMeeting)
}
