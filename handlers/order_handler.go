package handlers

import (
	"log"

	"github.com/anjiri1684/course_mentor/database"
	"github.com/anjiri1684/course_mentor/models"
	"github.com/anjiri1684/course_mentor/payments"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type CreateOrderRequest struct {
	CourseID string `json:"course_id" validate:"required,uuid"`
}

func CreateOrder(c *fiber.Ctx) error {
	studentID := userIDFromToken(c)

	var req CreateOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	courseID, _ := uuid.Parse(req.CourseID)

	var course models.Course
	if err := database.DB.First(&course, "id = ? AND is_published = ?", courseID, true).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Course not found"})
	}
	var student models.User
	if err := database.DB.First(&student, "id = ?", studentID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Student not found"})
	}

	var alreadyBought int64
	database.DB.Model(&models.Order{}).
		Where("student_id = ? AND course_id = ? AND status = ?", studentID, courseID, models.OrderConfirmed).
		Count(&alreadyBought)
	if alreadyBought > 0 {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "You have already purchased this course"})
	}

	paypalOrder, err := payments.CreatePayPalOrder(course.Pricing, "USD")
	if err != nil {
		log.Printf("🔥 CreatePayPalOrder failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Payment could not be initiated, please try again."})
	}

	order := models.Order{
		StudentID:       student.ID,
		StudentName:     student.FullName,
		InstructorID:    course.InstructorID,
		InstructorName:  course.InstructorName,
		CourseID:        course.ID,
		CourseTitle:     course.Title,
		CourseImageURL:  course.ImageURL,
		CoursePricing:   course.Pricing,
		Provider:        "paypal",
		ProviderOrderID: &paypalOrder.ID,
		Status:          models.OrderPending,
	}
	if err := database.DB.Create(&order).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create order"})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"order":             order,
		"provider_order_id": paypalOrder.ID,
	})
}

func CaptureOrder(c *fiber.Ctx) error {
	studentID := userIDFromToken(c)
	orderID, err := uuid.Parse(c.Params("orderId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid order id"})
	}

	var order models.Order
	if err := database.DB.First(&order, "id = ?", orderID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Order not found"})
	}
	if order.StudentID != studentID {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "This is not your order"})
	}
	if order.Status == models.OrderConfirmed {
		return c.JSON(fiber.Map{"message": "Order already confirmed.", "order": order})
	}

	if order.ProviderOrderID == nil {
		return c.Status(fiber.StatusPreconditionFailed).JSON(fiber.Map{"error": "Order has no provider reference"})
	}
	if _, err := payments.CapturePayPalOrder(*order.ProviderOrderID); err != nil {
		log.Printf("🔥 CapturePayPalOrder failed for order %s: %v", order.ID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Payment capture failed, please try again."})
	}

	order.Status = models.OrderConfirmed
	if err := database.DB.Save(&order).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to confirm order"})
	}

	return c.JSON(fiber.Map{
		"message": "Order confirmed. The course is now available.",
		"order":   order,
	})
}

func GetCoursesBought(c *fiber.Ctx) error {
	studentID := userIDFromToken(c)

	var orders []models.Order
	err := database.DB.
		Where("student_id = ? AND status = ?", studentID, models.OrderConfirmed).
		Order("created_at desc").
		Find(&orders).Error
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch purchased courses"})
	}

	return c.JSON(orders)
}
