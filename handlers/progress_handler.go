package handlers

import (
	"github.com/anjiri1684/course_mentor/database"
	"github.com/anjiri1684/course_mentor/models"
	"github.com/anjiri1684/course_mentor/progress"
	"github.com/anjiri1684/course_mentor/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// studentHasPurchased reports whether a confirmed order exists for the
// (student, course) pair. Every progress endpoint, reads and writes alike,
// is gated on it.
func studentHasPurchased(studentID, courseID uuid.UUID) (bool, error) {
	var count int64
	err := database.DB.Model(&models.Order{}).
		Where("student_id = ? AND course_id = ? AND status = ?", studentID, courseID, models.OrderConfirmed).
		Count(&count).Error
	return count > 0, err
}

func GetCourseProgress(c *fiber.Ctx) error {
	studentID := userIDFromToken(c)
	courseID, err := uuid.Parse(c.Params("courseId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid course id"})
	}

	purchased, err := studentHasPurchased(studentID, courseID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to check purchase info"})
	}
	if !purchased {
		return c.JSON(fiber.Map{"is_purchased": false})
	}

	var course models.Course
	err = database.DB.
		Preload("Curriculum", func(db *gorm.DB) *gorm.DB {
			return db.Order("position asc")
		}).
		First(&course, "id = ?", courseID).Error
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Course not found"})
	}

	records, err := progress.Records(database.DB, studentID, courseID)
	if err != nil {
		return engineError(c, err)
	}
	current, err := progress.Current(database.DB, studentID, courseID)
	if err != nil {
		return engineError(c, err)
	}
	completed, err := progress.IsComplete(database.DB, studentID, courseID)
	if err != nil {
		return engineError(c, err)
	}

	resp := fiber.Map{
		"is_purchased": true,
		"course":       course,
		"progress":     records,
		"completed":    completed,
	}
	if current != nil {
		resp["current_lecture"] = current
	}
	return c.JSON(resp)
}

func MarkLectureViewed(c *fiber.Ctx) error {
	studentID := userIDFromToken(c)
	courseID, err := uuid.Parse(c.Params("courseId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid course id"})
	}
	lectureID, err := uuid.Parse(c.Params("lectureId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid lecture id"})
	}

	purchased, err := studentHasPurchased(studentID, courseID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to check purchase info"})
	}
	if !purchased {
		return c.Status(fiber.StatusPreconditionFailed).JSON(fiber.Map{"error": "Course has not been purchased"})
	}

	record, err := progress.MarkViewed(database.DB, studentID, courseID, lectureID)
	if err != nil {
		return engineError(c, err)
	}

	go services.CheckAndGenerateCertificate(studentID, courseID)

	return c.JSON(fiber.Map{
		"message":  "Lecture marked as viewed.",
		"progress": record,
	})
}

func ResetCourseProgress(c *fiber.Ctx) error {
	studentID := userIDFromToken(c)
	courseID, err := uuid.Parse(c.Params("courseId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid course id"})
	}

	purchased, err := studentHasPurchased(studentID, courseID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to check purchase info"})
	}
	if !purchased {
		return c.Status(fiber.StatusPreconditionFailed).JSON(fiber.Map{"error": "Course has not been purchased"})
	}

	if err := progress.Reset(database.DB, studentID, courseID); err != nil {
		return engineError(c, err)
	}

	return c.JSON(fiber.Map{"message": "Course progress has been reset."})
}
