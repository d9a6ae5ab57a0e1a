package services

import (
	"fmt"
	"testing"
	"time"

	"github.com/anjiri1684/course_mentor/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Certificate{}))
	return db
}

func TestCertificateIsIssuedAtMostOncePerCourse(t *testing.T) {
	db := newTestDB(t)
	studentID := uuid.New()
	courseID := uuid.New()

	first := models.Certificate{
		StudentID:      studentID,
		CourseID:       courseID,
		Serial:         "AAAAAAAAAA",
		CourseTitle:    "Practical Backend Engineering",
		CompletionDate: time.Now(),
	}
	created, err := createCertificateRecord(db, &first)
	require.NoError(t, err)
	assert.True(t, created)

	// A racing second issue for the same pair is absorbed, even with a
	// fresh serial.
	second := models.Certificate{
		StudentID:      studentID,
		CourseID:       courseID,
		Serial:         "BBBBBBBBBB",
		CourseTitle:    "Practical Backend Engineering",
		CompletionDate: time.Now(),
	}
	created, err = createCertificateRecord(db, &second)
	require.NoError(t, err)
	assert.False(t, created)

	var count int64
	require.NoError(t, db.Model(&models.Certificate{}).
		Where("student_id = ? AND course_id = ?", studentID, courseID).
		Count(&count).Error)
	assert.Equal(t, int64(1), count)

	// A different course for the same student is a separate certificate.
	other := models.Certificate{
		StudentID:      studentID,
		CourseID:       uuid.New(),
		Serial:         "CCCCCCCCCC",
		CourseTitle:    "Advanced Backend Engineering",
		CompletionDate: time.Now(),
	}
	created, err = createCertificateRecord(db, &other)
	require.NoError(t, err)
	assert.True(t, created)
}
