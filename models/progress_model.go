package models

import (
	"time"

	"github.com/google/uuid"
)

// LectureProgress records that a student has viewed one lecture of a course.
// A missing row is equivalent to viewed = false; rows only disappear through
// a full course reset.
type LectureProgress struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	StudentID uuid.UUID `gorm:"not null;index:idx_student_course_lecture,unique;index:idx_student_course" json:"student_id"`
	CourseID  uuid.UUID `gorm:"not null;index:idx_student_course_lecture,unique;index:idx_student_course" json:"course_id"`
	LectureID uuid.UUID `gorm:"not null;index:idx_student_course_lecture,unique" json:"lecture_id"`
	Viewed    bool      `gorm:"not null;default:true" json:"viewed"`
	ViewedAt  time.Time `json:"viewed_at"`
}
