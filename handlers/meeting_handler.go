package handlers

import (
	"fmt"
	"time"

	"github.com/anjiri1684/course_mentor/database"
	"github.com/anjiri1684/course_mentor/meetings"
	"github.com/anjiri1684/course_mentor/models"
	"github.com/anjiri1684/course_mentor/notifications"
	"github.com/anjiri1684/course_mentor/realtime"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const meetingDateLayout = "2006-01-02"

type CreateMeetingRequest struct {
	MentorID string `json:"mentor_id" validate:"required,uuid"`
	Date     string `json:"date" validate:"required"`
	Time     string `json:"time" validate:"required"`
}

func CreateMeeting(c *fiber.Ctx) error {
	studentID := userIDFromToken(c)

	var req CreateMeetingRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	mentorID, _ := uuid.Parse(req.MentorID)
	var mentor models.User
	if err := database.DB.First(&mentor, "id = ? AND role = ?", mentorID, "instructor").Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Mentor not found"})
	}
	var student models.User
	if err := database.DB.First(&student, "id = ?", studentID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Student not found"})
	}

	date, err := time.Parse(meetingDateLayout, req.Date)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Date must be in YYYY-MM-DD format"})
	}

	meeting, err := meetings.Request(database.DB, meetings.RequestInput{
		MentorID:     mentor.ID,
		MentorName:   mentor.FullName,
		StudentID:    student.ID,
		StudentName:  student.FullName,
		StudentEmail: student.Email,
		Date:         date,
		Time:         req.Time,
	})
	if err != nil {
		return engineError(c, err)
	}

	realtime.PushMeetingEvent(mentor.ID, "meeting_requested", meeting)
	go notifications.SendEmail(mentor.FullName, mentor.Email,
		"New Mentoring Session Request",
		fmt.Sprintf("<h1>New Session Request</h1><p>%s has requested a session on %s at %s. Please log in to accept or reject it.</p>",
			student.FullName, req.Date, req.Time))

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Meeting request sent successfully!",
		"meeting": meeting,
	})
}

func GetMyMeetings(c *fiber.Ctx) error {
	studentID := userIDFromToken(c)

	list, err := meetings.ListForStudent(database.DB, studentID)
	if err != nil {
		return engineError(c, err)
	}
	return c.JSON(list)
}

func GetMyMentorMeetings(c *fiber.Ctx) error {
	mentorID := userIDFromToken(c)

	list, err := meetings.ListForMentor(database.DB, mentorID)
	if err != nil {
		return engineError(c, err)
	}
	return c.JSON(list)
}

type DecideMeetingRequest struct {
	Decision    string `json:"decision" validate:"required,oneof=accept reject"`
	MeetingLink string `json:"meeting_link"`
}

func DecideMeeting(c *fiber.Ctx) error {
	mentorID := userIDFromToken(c)
	meetingID, err := uuid.Parse(c.Params("meetingId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid meeting id"})
	}

	var req DecideMeetingRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	existing, err := meetings.Get(database.DB, meetingID)
	if err != nil {
		return engineError(c, err)
	}
	if existing.MentorID != mentorID {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "You are not the mentor for this meeting"})
	}

	meeting, err := meetings.Decide(database.DB, meetingID, meetings.Decision(req.Decision), req.MeetingLink)
	if err != nil {
		return engineError(c, err)
	}

	realtime.PushMeetingEvent(meeting.StudentID, "meeting_decided", meeting)
	if meeting.Status == models.MeetingAccepted {
		go notifications.SendEmail(meeting.StudentName, meeting.StudentEmail,
			"Your Session Request Was Accepted!",
			fmt.Sprintf("<h1>Session Accepted</h1><p>%s accepted your session request. Complete the payment to confirm your spot.</p>", meeting.MentorName))
	} else {
		go notifications.SendEmail(meeting.StudentName, meeting.StudentEmail,
			"Your Session Request Was Declined",
			fmt.Sprintf("<h1>Session Declined</h1><p>%s is unable to take your session at the requested time.</p>", meeting.MentorName))
	}

	return c.JSON(fiber.Map{
		"message": "Meeting updated successfully!",
		"meeting": meeting,
	})
}

type RescheduleMeetingRequest struct {
	NewDate string `json:"new_date" validate:"required"`
	NewTime string `json:"new_time" validate:"required"`
}

func RequestMeetingReschedule(c *fiber.Ctx) error {
	userID := userIDFromToken(c)
	meetingID, err := uuid.Parse(c.Params("meetingId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid meeting id"})
	}

	var req RescheduleMeetingRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	existing, err := meetings.Get(database.DB, meetingID)
	if err != nil {
		return engineError(c, err)
	}
	proposer := partyOf(existing, userID)
	if proposer == models.RescheduleByNone {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "This is not your meeting"})
	}

	newDate, err := time.Parse(meetingDateLayout, req.NewDate)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Date must be in YYYY-MM-DD format"})
	}

	meeting, err := meetings.RequestReschedule(database.DB, meetingID, proposer, newDate, req.NewTime)
	if err != nil {
		return engineError(c, err)
	}

	notifyCounterparty(meeting, proposer, "reschedule_requested",
		"Reschedule Request",
		fmt.Sprintf("<h1>Reschedule Request</h1><p>The other party has proposed moving your session to %s at %s. Please log in to accept the new time.</p>", req.NewDate, req.NewTime))

	return c.JSON(fiber.Map{
		"message": "Reschedule request sent.",
		"meeting": meeting,
	})
}

func AcceptMeetingReschedule(c *fiber.Ctx) error {
	userID := userIDFromToken(c)
	meetingID, err := uuid.Parse(c.Params("meetingId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid meeting id"})
	}

	existing, err := meetings.Get(database.DB, meetingID)
	if err != nil {
		return engineError(c, err)
	}
	caller := partyOf(existing, userID)
	if caller == models.RescheduleByNone {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "This is not your meeting"})
	}
	// Only the counterparty to the proposal may accept it.
	if caller == existing.RescheduleRequestedBy {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "The proposing party cannot accept its own reschedule"})
	}

	meeting, err := meetings.AcceptReschedule(database.DB, meetingID)
	if err != nil {
		return engineError(c, err)
	}

	notifyCounterparty(meeting, caller, "reschedule_accepted",
		"Reschedule Accepted",
		fmt.Sprintf("<h1>Reschedule Accepted</h1><p>Your session has been confirmed for %s at %s.</p>", meeting.Date.Format(meetingDateLayout), meeting.Time))

	return c.JSON(fiber.Map{
		"message": "Reschedule accepted.",
		"meeting": meeting,
	})
}

func CaptureMeetingPayment(c *fiber.Ctx) error {
	studentID := userIDFromToken(c)
	meetingID, err := uuid.Parse(c.Params("meetingId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid meeting id"})
	}

	existing, err := meetings.Get(database.DB, meetingID)
	if err != nil {
		return engineError(c, err)
	}
	if existing.StudentID != studentID {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "This is not your meeting"})
	}

	meeting, err := meetings.CapturePayment(database.DB, meetingID)
	if err != nil {
		return engineError(c, err)
	}

	realtime.PushMeetingEvent(meeting.MentorID, "meeting_paid", meeting)

	return c.JSON(fiber.Map{
		"message": "Payment captured and meeting confirmed!",
		"meeting": meeting,
	})
}

type RateMeetingRequest struct {
	Rating int    `json:"rating" validate:"required,min=1,max=5"`
	Review string `json:"review"`
}

func RateMeeting(c *fiber.Ctx) error {
	studentID := userIDFromToken(c)
	meetingID, err := uuid.Parse(c.Params("meetingId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid meeting id"})
	}

	var req RateMeetingRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	existing, err := meetings.Get(database.DB, meetingID)
	if err != nil {
		return engineError(c, err)
	}
	if existing.StudentID != studentID {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "This is not your meeting"})
	}

	meeting, err := meetings.Rate(database.DB, meetingID, req.Rating, req.Review)
	if err != nil {
		return engineError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Thank you for your feedback!",
		"meeting": meeting,
	})
}

func partyOf(meeting *models.Meeting, userID uuid.UUID) models.RescheduleParty {
	switch userID {
	case meeting.MentorID:
		return models.RescheduleByMentor
	case meeting.StudentID:
		return models.RescheduleByStudent
	default:
		return models.RescheduleByNone
	}
}

func notifyCounterparty(meeting *models.Meeting, actor models.RescheduleParty, eventType, subject, body string) {
	if actor == models.RescheduleByStudent {
		realtime.PushMeetingEvent(meeting.MentorID, eventType, meeting)
		var mentor models.User
		if err := database.DB.First(&mentor, "id = ?", meeting.MentorID).Error; err == nil {
			go notifications.SendEmail(mentor.FullName, mentor.Email, subject, body)
		}
		return
	}
	realtime.PushMeetingEvent(meeting.StudentID, eventType, meeting)
	go notifications.SendEmail(meeting.StudentName, meeting.StudentEmail, subject, body)
}
