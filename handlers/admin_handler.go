package handlers

import (
	"github.com/anjiri1684/course_mentor/database"
	"github.com/anjiri1684/course_mentor/models"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

func GetAllInstructors(c *fiber.Ctx) error {
	var instructors []models.User
	if err := database.DB.Where("role = ?", "instructor").Find(&instructors).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch instructors"})
	}
	return c.JSON(instructors)
}

func GetAllStudents(c *fiber.Ctx) error {
	var students []models.User
	if err := database.DB.Where("role = ?", "student").Find(&students).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch students"})
	}
	return c.JSON(students)
}

type OnboardInstructorRequest struct {
	UserID string `json:"user_id" validate:"required,uuid"`
}

func OnboardInstructor(c *fiber.Ctx) error {
	var req OnboardInstructorRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	userID, _ := uuid.Parse(req.UserID)

	var user models.User
	if err := database.DB.First(&user, "id = ?", userID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
	}

	user.Role = "instructor"
	if err := database.DB.Save(&user).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to onboard instructor"})
	}

	return c.JSON(fiber.Map{"message": "User onboarded as instructor successfully"})
}

func GetAdminStats(c *fiber.Ctx) error {
	var totalRevenue float64
	database.DB.Model(&models.Order{}).
		Where("status = ?", models.OrderConfirmed).
		Select("COALESCE(SUM(course_pricing), 0)").
		Scan(&totalRevenue)

	var meetingRevenue float64
	database.DB.Model(&models.Meeting{}).
		Where("status = ? AND payment_status = ?", models.MeetingAccepted, models.PaymentPaid).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&meetingRevenue)

	var totalStudents, totalInstructors int64
	database.DB.Model(&models.User{}).Where("role = ?", "student").Count(&totalStudents)
	database.DB.Model(&models.User{}).Where("role = ?", "instructor").Count(&totalInstructors)

	type instructorRevenue struct {
		InstructorID   uuid.UUID `json:"instructor_id"`
		InstructorName string    `json:"instructor_name"`
		Revenue        float64   `json:"revenue"`
	}
	var perInstructor []instructorRevenue
	database.DB.Model(&models.Order{}).
		Where("status = ?", models.OrderConfirmed).
		Select("instructor_id, instructor_name, SUM(course_pricing) as revenue").
		Group("instructor_id, instructor_name").
		Scan(&perInstructor)

	return c.JSON(fiber.Map{
		"total_revenue":          totalRevenue,
		"meeting_revenue":        meetingRevenue,
		"total_students":         totalStudents,
		"total_instructors":      totalInstructors,
		"revenue_per_instructor": perInstructor,
	})
}
