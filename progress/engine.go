// Package progress tracks a student's path through a course's ordered
// curriculum. The viewed-set is the only stored state; the resume position
// and completion are derived by a read-time scan so they can never fall out
// of sync with the underlying records.
package progress

import (
	"errors"
	"time"

	"github.com/anjiri1684/course_mentor/apperrors"
	"github.com/anjiri1684/course_mentor/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// MarkViewed records that the student has viewed the lecture. The lecture
// must belong to the course's curriculum. Marking an already-viewed lecture
// is a no-op success; exactly one record per (student, course, lecture)
// triple ever exists.
func MarkViewed(db *gorm.DB, studentID, courseID, lectureID uuid.UUID) (*models.LectureProgress, error) {
	var lecture models.Lecture
	if err := db.First(&lecture, "id = ? AND course_id = ?", lectureID, courseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.Validationf("lecture %s is not part of course %s", lectureID, courseID)
		}
		return nil, err
	}

	record := models.LectureProgress{
		StudentID: studentID,
		CourseID:  courseID,
		LectureID: lectureID,
		Viewed:    true,
		ViewedAt:  time.Now(),
	}
	err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "student_id"}, {Name: "course_id"}, {Name: "lecture_id"}},
		DoNothing: true,
	}).Create(&record).Error
	if err != nil {
		return nil, err
	}

	// Re-read so the caller gets the stored row whether this call created
	// it or an earlier one did.
	var stored models.LectureProgress
	if err := db.First(&stored, "student_id = ? AND course_id = ? AND lecture_id = ?", studentID, courseID, lectureID).Error; err != nil {
		return nil, err
	}
	return &stored, nil
}

// Current resolves the student's resume position: the first lecture, in
// curriculum order, without a viewed record. It returns (nil, nil) when every
// lecture has been viewed.
func Current(db *gorm.DB, studentID, courseID uuid.UUID) (*models.Lecture, error) {
	lectures, err := curriculum(db, courseID)
	if err != nil {
		return nil, err
	}

	viewed, err := viewedSet(db, studentID, courseID)
	if err != nil {
		return nil, err
	}

	for i := range lectures {
		if !viewed[lectures[i].ID] {
			return &lectures[i], nil
		}
	}
	return nil, nil
}

// IsComplete reports whether every lecture of the course has a viewed record.
// A course with an empty curriculum is never complete.
func IsComplete(db *gorm.DB, studentID, courseID uuid.UUID) (bool, error) {
	lectures, err := curriculum(db, courseID)
	if err != nil {
		return false, err
	}
	if len(lectures) == 0 {
		return false, nil
	}

	viewed, err := viewedSet(db, studentID, courseID)
	if err != nil {
		return false, err
	}
	for _, lecture := range lectures {
		if !viewed[lecture.ID] {
			return false, nil
		}
	}
	return true, nil
}

// Reset deletes every progress record for the (student, course) pair. It
// succeeds even when nothing existed.
func Reset(db *gorm.DB, studentID, courseID uuid.UUID) error {
	if err := courseExists(db, courseID); err != nil {
		return err
	}
	return db.Where("student_id = ? AND course_id = ?", studentID, courseID).
		Delete(&models.LectureProgress{}).Error
}

// Records returns the student's viewed records for the course, oldest view
// first, for the progress overview endpoint.
func Records(db *gorm.DB, studentID, courseID uuid.UUID) ([]models.LectureProgress, error) {
	var records []models.LectureProgress
	err := db.Where("student_id = ? AND course_id = ?", studentID, courseID).
		Order("viewed_at asc").
		Find(&records).Error
	return records, err
}

func curriculum(db *gorm.DB, courseID uuid.UUID) ([]models.Lecture, error) {
	if err := courseExists(db, courseID); err != nil {
		return nil, err
	}
	var lectures []models.Lecture
	err := db.Where("course_id = ?", courseID).Order("position asc").Find(&lectures).Error
	return lectures, err
}

func viewedSet(db *gorm.DB, studentID, courseID uuid.UUID) (map[uuid.UUID]bool, error) {
	var lectureIDs []uuid.UUID
	err := db.Model(&models.LectureProgress{}).
		Where("student_id = ? AND course_id = ? AND viewed = ?", studentID, courseID, true).
		Pluck("lecture_id", &lectureIDs).Error
	if err != nil {
		return nil, err
	}
	viewed := make(map[uuid.UUID]bool, len(lectureIDs))
	for _, id := range lectureIDs {
		viewed[id] = true
	}
	return viewed, nil
}

func courseExists(db *gorm.DB, courseID uuid.UUID) error {
	var course models.Course
	if err := db.Select("id").First(&course, "id = ?", courseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.NotFoundf("course %s not found", courseID)
		}
		return err
	}
	return nil
}
