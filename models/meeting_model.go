package models

import (
	"time"

	"github.com/google/uuid"
)

type MeetingStatus string

const (
	MeetingPending             MeetingStatus = "pending"
	MeetingAccepted            MeetingStatus = "accepted"
	MeetingRejected            MeetingStatus = "rejected"
	MeetingRescheduleRequested MeetingStatus = "reschedule_requested"
)

type PaymentStatus string

const (
	PaymentPending PaymentStatus = "pending"
	PaymentPaid    PaymentStatus = "paid"
)

// RescheduleParty identifies which side of a meeting proposed the current
// reschedule. Empty means no proposal is outstanding.
type RescheduleParty string

const (
	RescheduleByMentor  RescheduleParty = "mentor"
	RescheduleByStudent RescheduleParty = "student"
	RescheduleByNone    RescheduleParty = ""
)

const (
	DefaultMeetingDuration = 30
	DefaultMeetingAmount   = 999
)

type Meeting struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	MentorID     uuid.UUID `gorm:"not null;index" json:"mentor_id"`
	MentorName   string    `gorm:"size:255" json:"mentor_name"`
	StudentID    uuid.UUID `gorm:"not null;index" json:"student_id"`
	StudentName  string    `gorm:"size:255" json:"student_name"`
	StudentEmail string    `gorm:"size:255" json:"student_email"`

	Date     time.Time `gorm:"not null" json:"date"`
	Time     string    `gorm:"size:20;not null" json:"time"`
	Duration int       `gorm:"not null;default:30" json:"duration"`
	Amount   float64   `gorm:"type:numeric(10,2);not null;default:999" json:"amount"`

	Status        MeetingStatus `gorm:"size:30;not null;default:'pending'" json:"status"`
	PaymentStatus PaymentStatus `gorm:"size:20;not null;default:'pending'" json:"payment_status"`
	MeetingLink   *string       `gorm:"size:255" json:"meeting_link"`

	RescheduleRequestedBy RescheduleParty `gorm:"size:20;not null;default:''" json:"reschedule_requested_by"`

	Rating int    `gorm:"not null;default:0" json:"rating"`
	Review string `gorm:"type:text" json:"review"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
