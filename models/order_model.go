package models

import (
	"time"

	"github.com/google/uuid"
)

type OrderStatus string

const (
	OrderPending   OrderStatus = "pending"
	OrderConfirmed OrderStatus = "confirmed"
)

type Order struct {
	ID              uuid.UUID   `gorm:"type:uuid;primary_key" json:"id"`
	StudentID       uuid.UUID   `gorm:"not null;index" json:"student_id"`
	StudentName     string      `gorm:"size:255" json:"student_name"`
	InstructorID    uuid.UUID   `gorm:"not null;index" json:"instructor_id"`
	InstructorName  string      `gorm:"size:255" json:"instructor_name"`
	CourseID        uuid.UUID   `gorm:"not null;index" json:"course_id"`
	CourseTitle     string      `gorm:"size:255" json:"course_title"`
	CourseImageURL  string      `gorm:"size:255" json:"course_image_url"`
	CoursePricing   float64     `gorm:"type:numeric(10,2);not null" json:"course_pricing"`
	Provider        string      `gorm:"size:50;not null;default:'paypal'" json:"provider"`
	ProviderOrderID *string     `gorm:"size:255;unique" json:"provider_order_id"`
	Status          OrderStatus `gorm:"size:20;not null;default:'pending'" json:"status"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
