package handlers

import (
	"log"

	"github.com/anjiri1684/course_mentor/apperrors"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

var validate = validator.New()

func userIDFromToken(c *fiber.Ctx) uuid.UUID {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	id, _ := uuid.Parse(claims["user_id"].(string))
	return id
}

// engineError translates the engine error taxonomy into HTTP statuses so
// callers can tell the four kinds apart without parsing messages.
func engineError(c *fiber.Ctx, err error) error {
	switch apperrors.KindOf(err) {
	case apperrors.Validation:
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	case apperrors.Precondition:
		return c.Status(fiber.StatusPreconditionFailed).JSON(fiber.Map{"error": err.Error()})
	case apperrors.State:
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
	case apperrors.NotFound:
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	default:
		log.Printf("🔥 Unexpected engine error: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Some error occurred!"})
	}
}
