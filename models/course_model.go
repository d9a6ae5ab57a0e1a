package models

import (
	"time"

	"github.com/google/uuid"
)

type Course struct {
	ID             uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	InstructorID   uuid.UUID `gorm:"not null;index" json:"instructor_id"`
	InstructorName string    `gorm:"size:255" json:"instructor_name"`

	Title           string  `gorm:"size:255;not null" json:"title"`
	Subtitle        string  `gorm:"size:255" json:"subtitle"`
	Category        string  `gorm:"size:100" json:"category"`
	Level           string  `gorm:"size:50" json:"level"`
	PrimaryLanguage string  `gorm:"size:50" json:"primary_language"`
	Description     string  `gorm:"type:text" json:"description"`
	ImageURL        string  `gorm:"size:255" json:"image_url"`
	WelcomeMessage  string  `gorm:"type:text" json:"welcome_message"`
	Pricing         float64 `gorm:"type:numeric(10,2);not null;default:0.00" json:"pricing"`
	Objectives      string  `gorm:"type:text" json:"objectives"`
	IsPublished     bool    `gorm:"not null;default:true" json:"is_published"`

	// Ordered by Position; the progress engine treats this as read-only
	// ground truth.
	Curriculum []Lecture `gorm:"foreignkey:CourseID" json:"curriculum,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Lecture struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	CourseID    uuid.UUID `gorm:"not null;index" json:"-"`
	Title       string    `gorm:"size:255;not null" json:"title"`
	VideoURL    string    `gorm:"size:255" json:"video_url"`
	FreePreview bool      `gorm:"not null;default:false" json:"free_preview"`
	Position    int       `gorm:"not null" json:"position"`
}
