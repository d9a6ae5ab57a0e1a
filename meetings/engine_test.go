package meetings

import (
	"fmt"
	"testing"
	"time"

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
	require.NoError(t, db.AutoMigrate(&models.Meeting{}))
	return db
}

func requestInput() RequestInput {
	return RequestInput{
		MentorID:     uuid.New(),
		MentorName:   "Asha Mentor",
		StudentID:    uuid.New(),
		StudentName:  "Brian Student",
		StudentEmail: "brian@example.com",
		Date:         time.Now().AddDate(0, 0, 3),
		Time:         "10:00 AM",
	}
}

func newPendingMeeting(t *testing.T, db *gorm.DB) *models.Meeting {
	t.Helper()
	meeting, err := Request(db, requestInput())
	require.NoError(t, err)
	return meeting
}

func TestRequestCreatesPendingMeeting(t *testing.T) {
	db := newTestDB(t)

	meeting := newPendingMeeting(t, db)

	assert.Equal(t, models.MeetingPending, meeting.Status)
	assert.Equal(t, models.PaymentPending, meeting.PaymentStatus)
	assert.Equal(t, models.RescheduleByNone, meeting.RescheduleRequestedBy)
	assert.Equal(t, models.DefaultMeetingDuration, meeting.Duration)
	assert.Equal(t, float64(models.DefaultMeetingAmount), meeting.Amount)
	assert.Nil(t, meeting.MeetingLink)
	assert.Zero(t, meeting.Rating)
}

func TestRequestRejectsPastDate(t *testing.T) {
	db := newTestDB(t)

	input := requestInput()
	input.Date = time.Now().AddDate(0, 0, -1)
	_, err := Request(db, input)

	assert.Equal(t, apperrors.Validation, apperrors.KindOf(err))
}

func TestRequestRejectsUnknownSlot(t *testing.T) {
	db := newTestDB(t)

	input := requestInput()
	input.Time = "10:30 AM"
	_, err := Request(db, input)

	assert.Equal(t, apperrors.Validation, apperrors.KindOf(err))
}

func TestDecideAcceptRequiresMeetingLink(t *testing.T) {
	db := newTestDB(t)
	meeting := newPendingMeeting(t, db)

	_, err := Decide(db, meeting.ID, DecisionAccept, "   ")
	assert.Equal(t, apperrors.Precondition, apperrors.KindOf(err))

	// The failed accept must leave the record unchanged.
	stored, err := Get(db, meeting.ID)
	require.NoError(t, err)
	assert.Equal(t, models.MeetingPending, stored.Status)
	assert.Nil(t, stored.MeetingLink)
}

func TestDecideAccept(t *testing.T) {
	db := newTestDB(t)
	meeting := newPendingMeeting(t, db)

	accepted, err := Decide(db, meeting.ID, DecisionAccept, "https://meet.example.com/abc")
	require.NoError(t, err)

	assert.Equal(t, models.MeetingAccepted, accepted.Status)
	assert.Equal(t, models.PaymentPending, accepted.PaymentStatus)
	require.NotNil(t, accepted.MeetingLink)
	assert.Equal(t, "https://meet.example.com/abc", *accepted.MeetingLink)
}

func TestDecideReject(t *testing.T) {
	db := newTestDB(t)
	meeting := newPendingMeeting(t, db)

	rejected, err := Decide(db, meeting.ID, DecisionReject, "")
	require.NoError(t, err)

	assert.Equal(t, models.MeetingRejected, rejected.Status)
	assert.Nil(t, rejected.MeetingLink)
	assert.Equal(t, meeting.Time, rejected.Time)
}

func TestDecideSucceedsExactlyOnce(t *testing.T) {
	db := newTestDB(t)
	meeting := newPendingMeeting(t, db)

	_, err := Decide(db, meeting.ID, DecisionAccept, "https://meet.example.com/abc")
	require.NoError(t, err)

	_, err = Decide(db, meeting.ID, DecisionReject, "")
	assert.Equal(t, apperrors.State, apperrors.KindOf(err))

	stored, err := Get(db, meeting.ID)
	require.NoError(t, err)
	assert.Equal(t, models.MeetingAccepted, stored.Status)
}

func TestDecideUnknownMeeting(t *testing.T) {
	db := newTestDB(t)

	_, err := Decide(db, uuid.New(), DecisionAccept, "https://meet.example.com/abc")
	assert.Equal(t, apperrors.NotFound, apperrors.KindOf(err))
}

func TestDecideUnknownDecision(t *testing.T) {
	db := newTestDB(t)
	meeting := newPendingMeeting(t, db)

	_, err := Decide(db, meeting.ID, Decision("maybe"), "")
	assert.Equal(t, apperrors.Validation, apperrors.KindOf(err))
}

func TestCapturePaymentIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	meeting := newPendingMeeting(t, db)
	_, err := Decide(db, meeting.ID, DecisionAccept, "https://meet.example.com/abc")
	require.NoError(t, err)

	first, err := CapturePayment(db, meeting.ID)
	require.NoError(t, err)
	assert.Equal(t, models.PaymentPaid, first.PaymentStatus)

	second, err := CapturePayment(db, meeting.ID)
	require.NoError(t, err)
	assert.Equal(t, models.PaymentPaid, second.PaymentStatus)
}

func TestCapturePaymentRequiresAcceptedMeeting(t *testing.T) {
	db := newTestDB(t)
	meeting := newPendingMeeting(t, db)

	_, err := CapturePayment(db, meeting.ID)
	assert.Equal(t, apperrors.State, apperrors.KindOf(err))
}

func TestRescheduleReplacesScheduleAndKeepsPayment(t *testing.T) {
	db := newTestDB(t)
	meeting := newPendingMeeting(t, db)
	_, err := Decide(db, meeting.ID, DecisionAccept, "https://meet.example.com/abc")
	require.NoError(t, err)
	_, err = CapturePayment(db, meeting.ID)
	require.NoError(t, err)

	newDate := time.Now().AddDate(0, 0, 7)
	proposed, err := RequestReschedule(db, meeting.ID, models.RescheduleByStudent, newDate, "03:00 PM")
	require.NoError(t, err)

	assert.Equal(t, models.MeetingRescheduleRequested, proposed.Status)
	assert.Equal(t, models.RescheduleByStudent, proposed.RescheduleRequestedBy)
	assert.Equal(t, "03:00 PM", proposed.Time)
	assert.Equal(t, newDate.Format("2006-01-02"), proposed.Date.Format("2006-01-02"))
	assert.Equal(t, models.PaymentPaid, proposed.PaymentStatus)

	final, err := AcceptReschedule(db, meeting.ID)
	require.NoError(t, err)

	assert.Equal(t, models.MeetingAccepted, final.Status)
	assert.Equal(t, models.RescheduleByNone, final.RescheduleRequestedBy)
	assert.Equal(t, "03:00 PM", final.Time)
	assert.Equal(t, models.PaymentPaid, final.PaymentStatus)
}

func TestRescheduleProposalsDoNotStack(t *testing.T) {
	db := newTestDB(t)
	meeting := newPendingMeeting(t, db)

	newDate := time.Now().AddDate(0, 0, 7)
	_, err := RequestReschedule(db, meeting.ID, models.RescheduleByMentor, newDate, "01:00 PM")
	require.NoError(t, err)

	_, err = RequestReschedule(db, meeting.ID, models.RescheduleByStudent, newDate, "02:00 PM")
	assert.Equal(t, apperrors.State, apperrors.KindOf(err))

	stored, err := Get(db, meeting.ID)
	require.NoError(t, err)
	assert.Equal(t, "01:00 PM", stored.Time)
	assert.Equal(t, models.RescheduleByMentor, stored.RescheduleRequestedBy)
}

func TestRescheduleNotAllowedFromRejected(t *testing.T) {
	db := newTestDB(t)
	meeting := newPendingMeeting(t, db)
	_, err := Decide(db, meeting.ID, DecisionReject, "")
	require.NoError(t, err)

	_, err = RequestReschedule(db, meeting.ID, models.RescheduleByStudent, time.Now().AddDate(0, 0, 7), "01:00 PM")
	assert.Equal(t, apperrors.State, apperrors.KindOf(err))
}

func TestRescheduleRejectsUnknownProposer(t *testing.T) {
	db := newTestDB(t)
	meeting := newPendingMeeting(t, db)

	_, err := RequestReschedule(db, meeting.ID, models.RescheduleParty("admin"), time.Now().AddDate(0, 0, 7), "01:00 PM")
	assert.Equal(t, apperrors.Validation, apperrors.KindOf(err))
}

func TestAcceptRescheduleRequiresOutstandingProposal(t *testing.T) {
	db := newTestDB(t)
	meeting := newPendingMeeting(t, db)

	_, err := AcceptReschedule(db, meeting.ID)
	assert.Equal(t, apperrors.State, apperrors.KindOf(err))
}

func TestRateSucceedsExactlyOnce(t *testing.T) {
	db := newTestDB(t)
	meeting := newPendingMeeting(t, db)
	_, err := Decide(db, meeting.ID, DecisionAccept, "https://meet.example.com/abc")
	require.NoError(t, err)
	_, err = CapturePayment(db, meeting.ID)
	require.NoError(t, err)

	rated, err := Rate(db, meeting.ID, 5, "Great session!")
	require.NoError(t, err)
	assert.Equal(t, 5, rated.Rating)
	assert.Equal(t, "Great session!", rated.Review)

	_, err = Rate(db, meeting.ID, 1, "changed my mind")
	assert.Equal(t, apperrors.Precondition, apperrors.KindOf(err))

	stored, err := Get(db, meeting.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, stored.Rating)
	assert.Equal(t, "Great session!", stored.Review)
}

func TestRateRequiresPayment(t *testing.T) {
	db := newTestDB(t)
	meeting := newPendingMeeting(t, db)
	_, err := Decide(db, meeting.ID, DecisionAccept, "https://meet.example.com/abc")
	require.NoError(t, err)

	_, err = Rate(db, meeting.ID, 4, "")
	assert.Equal(t, apperrors.Precondition, apperrors.KindOf(err))
}

func TestRateRequiresAcceptedMeeting(t *testing.T) {
	db := newTestDB(t)
	meeting := newPendingMeeting(t, db)

	_, err := Rate(db, meeting.ID, 4, "")
	assert.Equal(t, apperrors.State, apperrors.KindOf(err))
}

func TestRateValidatesRange(t *testing.T) {
	db := newTestDB(t)
	meeting := newPendingMeeting(t, db)

	for _, rating := range []int{0, -1, 6} {
		_, err := Rate(db, meeting.ID, rating, "")
		assert.Equal(t, apperrors.Validation, apperrors.KindOf(err), "rating %d", rating)
	}
}

func TestListsAreNewestFirst(t *testing.T) {
	db := newTestDB(t)

	input := requestInput()
	first, err := Request(db, input)
	require.NoError(t, err)
	// Force distinct creation timestamps.
	require.NoError(t, db.Model(first).Update("created_at", time.Now().Add(-time.Hour)).Error)
	second, err := Request(db, input)
	require.NoError(t, err)

	forMentor, err := ListForMentor(db, input.MentorID)
	require.NoError(t, err)
	require.Len(t, forMentor, 2)
	assert.Equal(t, second.ID, forMentor[0].ID)

	forStudent, err := ListForStudent(db, input.StudentID)
	require.NoError(t, err)
	require.Len(t, forStudent, 2)
	assert.Equal(t, second.ID, forStudent[0].ID)
}

func TestValidSlot(t *testing.T) {
	for _, slot := range TimeSlots {
		assert.True(t, ValidSlot(slot))
	}
	assert.False(t, ValidSlot("12:00 PM"))
	assert.False(t, ValidSlot(""))
}

func TestSlotStart(t *testing.T) {
	date := time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC)

	start, err := SlotStart(date, "03:00 PM")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 9, 10, 15, 0, 0, 0, time.UTC), start)

	_, err = SlotStart(date, "nonsense")
	assert.Error(t, err)
}
