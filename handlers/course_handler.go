package handlers

import (
	"strings"

	"github.com/anjiri1684/course_mentor/database"
	"github.com/anjiri1684/course_mentor/models"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

func GetAllCourses(c *fiber.Ctx) error {
	db := database.DB.Model(&models.Course{}).Where("is_published = ?", true)

	if category := c.Query("category"); category != "" {
		db = db.Where("category IN ?", strings.Split(category, ","))
	}
	if level := c.Query("level"); level != "" {
		db = db.Where("level IN ?", strings.Split(level, ","))
	}
	if language := c.Query("primary_language"); language != "" {
		db = db.Where("primary_language IN ?", strings.Split(language, ","))
	}

	switch c.Query("sort_by") {
	case "price-lowtohigh":
		db = db.Order("pricing asc")
	case "price-hightolow":
		db = db.Order("pricing desc")
	case "title-ztoa":
		db = db.Order("title desc")
	default:
		db = db.Order("title asc")
	}

	var courses []models.Course
	if err := db.Find(&courses).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch courses"})
	}

	return c.JSON(courses)
}

func GetCourseDetails(c *fiber.Ctx) error {
	courseID, err := uuid.Parse(c.Params("courseId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid course id"})
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

	return c.JSON(course)
}

func CheckCoursePurchaseInfo(c *fiber.Ctx) error {
	studentID := userIDFromToken(c)
	courseID, err := uuid.Parse(c.Params("courseId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid course id"})
	}

	var count int64
	err = database.DB.Model(&models.Order{}).
		Where("student_id = ? AND course_id = ? AND status = ?", studentID, courseID, models.OrderConfirmed).
		Count(&count).Error
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to check purchase info"})
	}

	return c.JSON(fiber.Map{"purchased": count > 0})
}

func GetMentors(c *fiber.Ctx) error {
	var mentors []models.User
	err := database.DB.Where("role = ?", "instructor").Order("full_name asc").Find(&mentors).Error
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch mentors"})
	}

	return c.JSON(mentors)
}
