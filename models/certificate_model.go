package models

import (
	"time"

	"github.com/google/uuid"
)

type Certificate struct {
	ID             uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	StudentID      uuid.UUID `gorm:"not null;index:idx_student_course_cert,unique" json:"student_id"`
	CourseID       uuid.UUID `gorm:"not null;index:idx_student_course_cert,unique" json:"course_id"`
	Serial         string    `gorm:"size:20;not null;unique" json:"serial"`
	CourseTitle    string    `gorm:"size:255;not null" json:"course_title"`
	CompletionDate time.Time `gorm:"not null" json:"completion_date"`
	CertificateURL string    `gorm:"size:255" json:"certificate_url"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
