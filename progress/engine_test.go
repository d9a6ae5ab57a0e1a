package progress

import (
	"fmt"
	"testing"

	"github.com/anjiri1684/course_mentor/apperrors"
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
	require.NoError(t, db.AutoMigrate(&models.Course{}, &models.Lecture{}, &models.LectureProgress{}))
	return db
}

func seedCourse(t *testing.T, db *gorm.DB, lectureCount int) (*models.Course, []models.Lecture) {
	t.Helper()

	course := models.Course{
		InstructorID:   uuid.New(),
		InstructorName: "Asha Mentor",
		Title:          "Practical Backend Engineering",
	}
	require.NoError(t, db.Create(&course).Error)

	lectures := make([]models.Lecture, 0, lectureCount)
	for i := 0; i < lectureCount; i++ {
		lecture := models.Lecture{
			CourseID: course.ID,
			Title:    fmt.Sprintf("Lecture %d", i+1),
			Position: i + 1,
		}
		require.NoError(t, db.Create(&lecture).Error)
		lectures = append(lectures, lecture)
	}
	return &course, lectures
}

func TestCurrentBeforeAnyProgressIsFirstLecture(t *testing.T) {
	db := newTestDB(t)
	course, lectures := seedCourse(t, db, 3)
	studentID := uuid.New()

	current, err := Current(db, studentID, course.ID)
	require.NoError(t, err)
	require.NotNil(t, current)
	assert.Equal(t, lectures[0].ID, current.ID)

	complete, err := IsComplete(db, studentID, course.ID)
	require.NoError(t, err)
	assert.False(t, complete)
}

func TestMarkViewedAdvancesResumePosition(t *testing.T) {
	db := newTestDB(t)
	course, lectures := seedCourse(t, db, 3)
	studentID := uuid.New()

	_, err := MarkViewed(db, studentID, course.ID, lectures[0].ID)
	require.NoError(t, err)

	current, err := Current(db, studentID, course.ID)
	require.NoError(t, err)
	require.NotNil(t, current)
	assert.Equal(t, lectures[1].ID, current.ID)
}

func TestResumePositionIsFirstGapNotLastViewed(t *testing.T) {
	db := newTestDB(t)
	course, lectures := seedCourse(t, db, 3)
	studentID := uuid.New()

	// Viewing the last lecture out of order must not move the resume
	// position past the unviewed first lecture.
	_, err := MarkViewed(db, studentID, course.ID, lectures[2].ID)
	require.NoError(t, err)

	current, err := Current(db, studentID, course.ID)
	require.NoError(t, err)
	require.NotNil(t, current)
	assert.Equal(t, lectures[0].ID, current.ID)
}

func TestCompletionAndReset(t *testing.T) {
	db := newTestDB(t)
	course, lectures := seedCourse(t, db, 3)
	studentID := uuid.New()

	for _, lecture := range lectures {
		_, err := MarkViewed(db, studentID, course.ID, lecture.ID)
		require.NoError(t, err)
	}

	current, err := Current(db, studentID, course.ID)
	require.NoError(t, err)
	assert.Nil(t, current)

	complete, err := IsComplete(db, studentID, course.ID)
	require.NoError(t, err)
	assert.True(t, complete)

	require.NoError(t, Reset(db, studentID, course.ID))

	current, err = Current(db, studentID, course.ID)
	require.NoError(t, err)
	require.NotNil(t, current)
	assert.Equal(t, lectures[0].ID, current.ID)

	complete, err = IsComplete(db, studentID, course.ID)
	require.NoError(t, err)
	assert.False(t, complete)

	records, err := Records(db, studentID, course.ID)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestMarkViewedIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	course, lectures := seedCourse(t, db, 2)
	studentID := uuid.New()

	first, err := MarkViewed(db, studentID, course.ID, lectures[0].ID)
	require.NoError(t, err)
	second, err := MarkViewed(db, studentID, course.ID, lectures[0].ID)
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.True(t, second.Viewed)

	var count int64
	require.NoError(t, db.Model(&models.LectureProgress{}).
		Where("student_id = ? AND course_id = ? AND lecture_id = ?", studentID, course.ID, lectures[0].ID).
		Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestMarkViewedRejectsLectureOutsideCurriculum(t *testing.T) {
	db := newTestDB(t)
	course, _ := seedCourse(t, db, 2)
	_, otherLectures := seedCourse(t, db, 1)
	studentID := uuid.New()

	_, err := MarkViewed(db, studentID, course.ID, uuid.New())
	assert.Equal(t, apperrors.Validation, apperrors.KindOf(err))

	// A real lecture id belonging to a different course is just as invalid.
	_, err = MarkViewed(db, studentID, course.ID, otherLectures[0].ID)
	assert.Equal(t, apperrors.Validation, apperrors.KindOf(err))

	var count int64
	require.NoError(t, db.Model(&models.LectureProgress{}).
		Where("student_id = ?", studentID).
		Count(&count).Error)
	assert.Zero(t, count)
}

func TestResetWithoutRecordsSucceeds(t *testing.T) {
	db := newTestDB(t)
	course, _ := seedCourse(t, db, 2)

	assert.NoError(t, Reset(db, uuid.New(), course.ID))
}

func TestEmptyCurriculumIsNeverComplete(t *testing.T) {
	db := newTestDB(t)
	course, _ := seedCourse(t, db, 0)
	studentID := uuid.New()

	complete, err := IsComplete(db, studentID, course.ID)
	require.NoError(t, err)
	assert.False(t, complete)

	current, err := Current(db, studentID, course.ID)
	require.NoError(t, err)
	assert.Nil(t, current)
}

func TestUnknownCourse(t *testing.T) {
	db := newTestDB(t)

	_, err := Current(db, uuid.New(), uuid.New())
	assert.Equal(t, apperrors.NotFound, apperrors.KindOf(err))

	_, err = IsComplete(db, uuid.New(), uuid.New())
	assert.Equal(t, apperrors.NotFound, apperrors.KindOf(err))

	err = Reset(db, uuid.New(), uuid.New())
	assert.Equal(t, apperrors.NotFound, apperrors.KindOf(err))
}

func TestProgressIsPerStudent(t *testing.T) {
	db := newTestDB(t)
	course, lectures := seedCourse(t, db, 2)
	alice := uuid.New()
	bob := uuid.New()

	_, err := MarkViewed(db, alice, course.ID, lectures[0].ID)
	require.NoError(t, err)

	current, err := Current(db, bob, course.ID)
	require.NoError(t, err)
	require.NotNil(t, current)
	assert.Equal(t, lectures[0].ID, current.ID)
}
