package handlers_test

import (
	"fmt"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/anjiri1684/course_mentor/database"
	"github.com/anjiri1684/course_mentor/models"
	"github.com/anjiri1684/course_mentor/routes"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const testJWTSecret = "handler-test-secret"

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()
	t.Setenv("JWT_SECRET", testJWTSecret)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Course{},
		&models.Lecture{},
		&models.Meeting{},
		&models.LectureProgress{},
		&models.Order{},
		&models.Certificate{},
	))
	database.DB = db

	app := fiber.New()
	routes.MeetingRoutes(app)
	routes.ProgressRoutes(app)
	return app
}

func signToken(t *testing.T, userID uuid.UUID, role string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": userID.String(),
		"role":    role,
		"exp":     time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte(testJWTSecret))
	require.NoError(t, err)
	return signed
}

func seedPublishedCourse(t *testing.T, lectureCount int) (*models.Course, []models.Lecture) {
	t.Helper()

	course := models.Course{
		InstructorID:   uuid.New(),
		InstructorName: "Asha Mentor",
		Title:          "Practical Backend Engineering",
	}
	require.NoError(t, database.DB.Create(&course).Error)

	lectures := make([]models.Lecture, 0, lectureCount)
	for i := 0; i < lectureCount; i++ {
		lecture := models.Lecture{
			CourseID: course.ID,
			Title:    fmt.Sprintf("Lecture %d", i+1),
			Position: i + 1,
		}
		require.NoError(t, database.DB.Create(&lecture).Error)
		lectures = append(lectures, lecture)
	}
	return &course, lectures
}

func confirmOrder(t *testing.T, studentID uuid.UUID, course *models.Course) {
	t.Helper()
	order := models.Order{
		StudentID:    studentID,
		InstructorID: course.InstructorID,
		CourseID:     course.ID,
		CourseTitle:  course.Title,
		Status:       models.OrderConfirmed,
	}
	require.NoError(t, database.DB.Create(&order).Error)
}

func TestMarkLectureViewedRequiresPurchase(t *testing.T) {
	app := newTestApp(t)
	course, lectures := seedPublishedCourse(t, 2)
	studentID := uuid.New()
	token := signToken(t, studentID, "student")

	url := fmt.Sprintf("/api/v1/progress/%s/lectures/%s/viewed", course.ID, lectures[0].ID)
	req := httptest.NewRequest(fiber.MethodPost, url, nil)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusPreconditionFailed, resp.StatusCode)

	var count int64
	require.NoError(t, database.DB.Model(&models.LectureProgress{}).
		Where("student_id = ?", studentID).Count(&count).Error)
	assert.Zero(t, count)

	confirmOrder(t, studentID, course)

	req = httptest.NewRequest(fiber.MethodPost, url, nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	require.NoError(t, database.DB.Model(&models.LectureProgress{}).
		Where("student_id = ?", studentID).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestResetCourseProgressRequiresPurchase(t *testing.T) {
	app := newTestApp(t)
	course, _ := seedPublishedCourse(t, 1)
	studentID := uuid.New()
	token := signToken(t, studentID, "student")

	url := fmt.Sprintf("/api/v1/progress/%s/reset", course.ID)
	req := httptest.NewRequest(fiber.MethodPost, url, nil)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusPreconditionFailed, resp.StatusCode)

	confirmOrder(t, studentID, course)

	req = httptest.NewRequest(fiber.MethodPost, url, nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}
