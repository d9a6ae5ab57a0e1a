package handlers

import (
	"github.com/anjiri1684/course_mentor/database"
	"github.com/anjiri1684/course_mentor/models"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type LectureRequest struct {
	Title       string `json:"title" validate:"required"`
	VideoURL    string `json:"video_url"`
	FreePreview bool   `json:"free_preview"`
}

type CourseRequest struct {
	Title           string           `json:"title" validate:"required"`
	Subtitle        string           `json:"subtitle"`
	Category        string           `json:"category"`
	Level           string           `json:"level"`
	PrimaryLanguage string           `json:"primary_language"`
	Description     string           `json:"description"`
	ImageURL        string           `json:"image_url"`
	WelcomeMessage  string           `json:"welcome_message"`
	Pricing         float64          `json:"pricing" validate:"min=0"`
	Objectives      string           `json:"objectives"`
	IsPublished     *bool            `json:"is_published"`
	Curriculum      []LectureRequest `json:"curriculum" validate:"dive"`
}

func AddCourse(c *fiber.Ctx) error {
	instructorID := userIDFromToken(c)

	var req CourseRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var instructor models.User
	if err := database.DB.First(&instructor, "id = ?", instructorID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Instructor not found"})
	}

	course := models.Course{
		InstructorID:    instructor.ID,
		InstructorName:  instructor.FullName,
		Title:           req.Title,
		Subtitle:        req.Subtitle,
		Category:        req.Category,
		Level:           req.Level,
		PrimaryLanguage: req.PrimaryLanguage,
		Description:     req.Description,
		ImageURL:        req.ImageURL,
		WelcomeMessage:  req.WelcomeMessage,
		Pricing:         req.Pricing,
		Objectives:      req.Objectives,
		IsPublished:     req.IsPublished == nil || *req.IsPublished,
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&course).Error; err != nil {
			return err
		}
		for i, lecture := range req.Curriculum {
			l := models.Lecture{
				CourseID:    course.ID,
				Title:       lecture.Title,
				VideoURL:    lecture.VideoURL,
				FreePreview: lecture.FreePreview,
				Position:    i + 1,
			}
			if err := tx.Create(&l).Error; err != nil {
				return err
			}
			course.Curriculum = append(course.Curriculum, l)
		}
		return nil
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create course"})
	}

	return c.Status(fiber.StatusCreated).JSON(course)
}

// UpdateCourse replaces the course fields and its curriculum wholesale.
// Progress records pointing at removed lecture ids are not reconciled; those
// ids simply stop appearing in resume and completion computation.
func UpdateCourse(c *fiber.Ctx) error {
	instructorID := userIDFromToken(c)
	courseID, err := uuid.Parse(c.Params("courseId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid course id"})
	}

	var req CourseRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var course models.Course
	if err := database.DB.First(&course, "id = ?", courseID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Course not found"})
	}
	if course.InstructorID != instructorID {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "You are not the instructor for this course"})
	}

	course.Title = req.Title
	course.Subtitle = req.Subtitle
	course.Category = req.Category
	course.Level = req.Level
	course.PrimaryLanguage = req.PrimaryLanguage
	course.Description = req.Description
	course.ImageURL = req.ImageURL
	course.WelcomeMessage = req.WelcomeMessage
	course.Pricing = req.Pricing
	course.Objectives = req.Objectives
	if req.IsPublished != nil {
		course.IsPublished = *req.IsPublished
	}
	course.Curriculum = nil

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&course).Error; err != nil {
			return err
		}
		if err := tx.Where("course_id = ?", course.ID).Delete(&models.Lecture{}).Error; err != nil {
			return err
		}
		for i, lecture := range req.Curriculum {
			l := models.Lecture{
				CourseID:    course.ID,
				Title:       lecture.Title,
				VideoURL:    lecture.VideoURL,
				FreePreview: lecture.FreePreview,
				Position:    i + 1,
			}
			if err := tx.Create(&l).Error; err != nil {
				return err
			}
			course.Curriculum = append(course.Curriculum, l)
		}
		return nil
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update course"})
	}

	return c.JSON(course)
}

func GetMyCourses(c *fiber.Ctx) error {
	instructorID := userIDFromToken(c)

	var courses []models.Course
	err := database.DB.
		Preload("Curriculum", func(db *gorm.DB) *gorm.DB {
			return db.Order("position asc")
		}).
		Where("instructor_id = ?", instructorID).
		Order("created_at desc").
		Find(&courses).Error
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch courses"})
	}

	return c.JSON(courses)
}
