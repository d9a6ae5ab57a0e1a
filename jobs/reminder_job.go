package jobs

import (
	"fmt"
	"log"
	"time"

	"github.com/anjiri1684/course_mentor/database"
	"github.com/anjiri1684/course_mentor/meetings"
	"github.com/anjiri1684/course_mentor/models"
	"github.com/anjiri1684/course_mentor/notifications"
)

// SendMeetingReminders emails both parties of paid meetings starting in
// roughly one hour. Runs every five minutes; the [60m, 65m) window keeps a
// meeting from being reminded twice.
func SendMeetingReminders() {
	log.Println("Running job: SendMeetingReminders...")

	now := time.Now()
	lowerBound := now.Add(60 * time.Minute)
	upperBound := now.Add(65 * time.Minute)

	var upcoming []models.Meeting
	err := database.DB.
		Where("status = ? AND payment_status = ? AND date BETWEEN ? AND ?",
			models.MeetingAccepted, models.PaymentPaid,
			now.AddDate(0, 0, -1), now.AddDate(0, 0, 1)).
		Find(&upcoming).Error
	if err != nil {
		log.Printf("Error checking for upcoming meetings: %v", err)
		return
	}

	for _, meeting := range upcoming {
		start, err := meetings.SlotStart(meeting.Date, meeting.Time)
		if err != nil {
			log.Printf("Skipping meeting %s with unparseable slot %q: %v", meeting.ID, meeting.Time, err)
			continue
		}
		if start.Before(lowerBound) || !start.Before(upperBound) {
			continue
		}
		if meeting.MeetingLink == nil {
			continue
		}

		log.Printf("Sending reminder for meeting ID: %s", meeting.ID)

		emailSubject := "Reminder: Your Mentoring Session Starts in 1 Hour!"
		emailBody := fmt.Sprintf(
			"<h1>Session Reminder</h1><p>Hi there,</p><p>This is a friendly reminder that your mentoring session is scheduled to start in one hour at %s.</p><p><b>Meeting Link:</b> <a href='%s'>Join Session</a></p>",
			meeting.Time,
			*meeting.MeetingLink,
		)

		go notifications.SendEmail(meeting.StudentName, meeting.StudentEmail, emailSubject, emailBody)

		var mentor models.User
		if err := database.DB.First(&mentor, "id = ?", meeting.MentorID).Error; err == nil {
			go notifications.SendEmail(mentor.FullName, mentor.Email, emailSubject, emailBody)
		}
	}
}
