// Package meetings implements the lifecycle of a 1:1 mentoring meeting:
// request -> accept/reject -> payment capture -> reschedule negotiation ->
// rating. Every transition runs as a single guarded read-modify-write so two
// concurrent callers can never both move a meeting out of the same state.
package meetings

import (
	"errors"
	"strings"
	"time"

	"github.com/anjiri1684/course_mentor/apperrors"
	"github.com/anjiri1684/course_mentor/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Decision string

const (
	DecisionAccept Decision = "accept"
	DecisionReject Decision = "reject"
)

type RequestInput struct {
	MentorID     uuid.UUID
	MentorName   string
	StudentID    uuid.UUID
	StudentName  string
	StudentEmail string
	Date         time.Time
	Time         string
}

// Request creates a new meeting in the pending state.
func Request(db *gorm.DB, input RequestInput) (*models.Meeting, error) {
	if !ValidSlot(input.Time) {
		return nil, apperrors.Validationf("time %q is not a recognized slot", input.Time)
	}
	if beforeToday(input.Date) {
		return nil, apperrors.Validationf("meeting date cannot be in the past")
	}

	meeting := models.Meeting{
		MentorID:      input.MentorID,
		MentorName:    input.MentorName,
		StudentID:     input.StudentID,
		StudentName:   input.StudentName,
		StudentEmail:  input.StudentEmail,
		Date:          input.Date,
		Time:          input.Time,
		Duration:      models.DefaultMeetingDuration,
		Amount:        models.DefaultMeetingAmount,
		Status:        models.MeetingPending,
		PaymentStatus: models.PaymentPending,
	}
	if err := db.Create(&meeting).Error; err != nil {
		return nil, err
	}
	return &meeting, nil
}

// Decide accepts or rejects a pending meeting. Accepting requires a meeting
// link; rejecting touches nothing but the status. Any other current state
// fails, including a second decide on the same meeting.
func Decide(db *gorm.DB, meetingID uuid.UUID, decision Decision, meetingLink string) (*models.Meeting, error) {
	var meeting models.Meeting
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := loadMeeting(tx, meetingID, &meeting); err != nil {
			return err
		}
		if meeting.Status != models.MeetingPending {
			return apperrors.Statef("meeting is %s, only pending meetings can be decided", meeting.Status)
		}

		updates := map[string]interface{}{}
		switch decision {
		case DecisionAccept:
			link := strings.TrimSpace(meetingLink)
			if link == "" {
				return apperrors.Preconditionf("meeting link required")
			}
			updates["status"] = models.MeetingAccepted
			updates["payment_status"] = models.PaymentPending
			updates["meeting_link"] = link
		case DecisionReject:
			updates["status"] = models.MeetingRejected
		default:
			return apperrors.Validationf("unknown decision %q", decision)
		}

		res := tx.Model(&models.Meeting{}).
			Where("id = ? AND status = ?", meetingID, models.MeetingPending).
			Updates(updates)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return apperrors.Statef("meeting is no longer pending")
		}
		return tx.First(&meeting, "id = ?", meetingID).Error
	})
	if err != nil {
		return nil, err
	}
	return &meeting, nil
}

// RequestReschedule proposes a new date and time for a pending or accepted
// meeting. The proposal replaces the prior schedule wholesale and only one
// proposal may be outstanding at a time. Payment status is untouched.
func RequestReschedule(db *gorm.DB, meetingID uuid.UUID, proposer models.RescheduleParty, newDate time.Time, newTime string) (*models.Meeting, error) {
	if proposer != models.RescheduleByMentor && proposer != models.RescheduleByStudent {
		return nil, apperrors.Validationf("unknown reschedule proposer %q", proposer)
	}
	if !ValidSlot(newTime) {
		return nil, apperrors.Validationf("time %q is not a recognized slot", newTime)
	}
	if beforeToday(newDate) {
		return nil, apperrors.Validationf("proposed date cannot be in the past")
	}

	var meeting models.Meeting
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := loadMeeting(tx, meetingID, &meeting); err != nil {
			return err
		}
		switch meeting.Status {
		case models.MeetingPending, models.MeetingAccepted:
		case models.MeetingRescheduleRequested:
			return apperrors.Statef("a reschedule proposal is already outstanding")
		default:
			return apperrors.Statef("meeting is %s and cannot be rescheduled", meeting.Status)
		}

		res := tx.Model(&models.Meeting{}).
			Where("id = ? AND status IN ?", meetingID, []models.MeetingStatus{models.MeetingPending, models.MeetingAccepted}).
			Updates(map[string]interface{}{
				"status":                  models.MeetingRescheduleRequested,
				"reschedule_requested_by": proposer,
				"date":                    newDate,
				"time":                    newTime,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return apperrors.Statef("meeting can no longer be rescheduled")
		}
		return tx.First(&meeting, "id = ?", meetingID).Error
	})
	if err != nil {
		return nil, err
	}
	return &meeting, nil
}

// AcceptReschedule finalizes the outstanding proposal: the proposed schedule
// becomes the meeting schedule and the meeting returns to accepted. A paid
// meeting stays paid. Which caller may accept is the handler's concern.
func AcceptReschedule(db *gorm.DB, meetingID uuid.UUID) (*models.Meeting, error) {
	var meeting models.Meeting
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := loadMeeting(tx, meetingID, &meeting); err != nil {
			return err
		}
		if meeting.Status != models.MeetingRescheduleRequested {
			return apperrors.Statef("meeting is %s, no reschedule proposal to accept", meeting.Status)
		}

		res := tx.Model(&models.Meeting{}).
			Where("id = ? AND status = ?", meetingID, models.MeetingRescheduleRequested).
			Updates(map[string]interface{}{
				"status":                  models.MeetingAccepted,
				"reschedule_requested_by": models.RescheduleByNone,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return apperrors.Statef("reschedule proposal was already resolved")
		}
		return tx.First(&meeting, "id = ?", meetingID).Error
	})
	if err != nil {
		return nil, err
	}
	return &meeting, nil
}

// CapturePayment marks an accepted meeting as paid. The payment provider has
// already confirmed externally; this is a trusted trigger, not verification.
// Capturing an already-paid meeting is a no-op success.
func CapturePayment(db *gorm.DB, meetingID uuid.UUID) (*models.Meeting, error) {
	var meeting models.Meeting
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := loadMeeting(tx, meetingID, &meeting); err != nil {
			return err
		}
		if meeting.Status != models.MeetingAccepted {
			return apperrors.Statef("meeting is %s, payment can only be captured for accepted meetings", meeting.Status)
		}
		if meeting.PaymentStatus == models.PaymentPaid {
			return nil
		}

		res := tx.Model(&models.Meeting{}).
			Where("id = ? AND status = ? AND payment_status = ?", meetingID, models.MeetingAccepted, models.PaymentPending).
			Update("payment_status", models.PaymentPaid)
		if res.Error != nil {
			return res.Error
		}
		// RowsAffected of zero means a concurrent capture won; the meeting
		// is paid either way.
		return tx.First(&meeting, "id = ?", meetingID).Error
	})
	if err != nil {
		return nil, err
	}
	return &meeting, nil
}

// Rate records the student's one-shot rating of an accepted, paid meeting.
// A rating can never be edited; a second attempt fails.
func Rate(db *gorm.DB, meetingID uuid.UUID, rating int, review string) (*models.Meeting, error) {
	if rating < 1 || rating > 5 {
		return nil, apperrors.Validationf("rating must be between 1 and 5, got %d", rating)
	}

	var meeting models.Meeting
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := loadMeeting(tx, meetingID, &meeting); err != nil {
			return err
		}
		if meeting.Status != models.MeetingAccepted {
			return apperrors.Statef("meeting is %s, only accepted meetings can be rated", meeting.Status)
		}
		if meeting.PaymentStatus != models.PaymentPaid {
			return apperrors.Preconditionf("meeting has not been paid for")
		}
		if meeting.Rating != 0 {
			return apperrors.Preconditionf("meeting has already been rated")
		}

		res := tx.Model(&models.Meeting{}).
			Where("id = ? AND status = ? AND payment_status = ? AND rating = 0",
				meetingID, models.MeetingAccepted, models.PaymentPaid).
			Updates(map[string]interface{}{
				"rating": rating,
				"review": review,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return apperrors.Preconditionf("meeting has already been rated")
		}
		return tx.First(&meeting, "id = ?", meetingID).Error
	})
	if err != nil {
		return nil, err
	}
	return &meeting, nil
}

func ListForMentor(db *gorm.DB, mentorID uuid.UUID) ([]models.Meeting, error) {
	var meetings []models.Meeting
	err := db.Where("mentor_id = ?", mentorID).Order("created_at desc").Find(&meetings).Error
	return meetings, err
}

func ListForStudent(db *gorm.DB, studentID uuid.UUID) ([]models.Meeting, error) {
	var meetings []models.Meeting
	err := db.Where("student_id = ?", studentID).Order("created_at desc").Find(&meetings).Error
	return meetings, err
}

func Get(db *gorm.DB, meetingID uuid.UUID) (*models.Meeting, error) {
	var meeting models.Meeting
	if err := loadMeeting(db, meetingID, &meeting); err != nil {
		return nil, err
	}
	return &meeting, nil
}

func loadMeeting(tx *gorm.DB, meetingID uuid.UUID, dst *models.Meeting) error {
	if err := tx.First(dst, "id = ?", meetingID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.NotFoundf("meeting %s not found", meetingID)
		}
		return err
	}
	return nil
}
