package services

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"log"
	"time"

	config "github.com/anjiri1684/course_mentor/configs"
	"github.com/anjiri1684/course_mentor/database"
	"github.com/anjiri1684/course_mentor/models"
	"github.com/anjiri1684/course_mentor/progress"
	"github.com/anjiri1684/course_mentor/utils"
	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CheckAndGenerateCertificate issues a completion certificate once a student
// has viewed every lecture of a course. Called in a goroutine after
// mark-viewed; re-checks completion so a stale trigger is harmless.
func CheckAndGenerateCertificate(studentID, courseID uuid.UUID) {
	complete, err := progress.IsComplete(database.DB, studentID, courseID)
	if err != nil {
		log.Printf("🔥 Failed to check course completion for student %s: %v", studentID, err)
		return
	}
	if !complete {
		return
	}

	var existingCert models.Certificate
	if err := database.DB.Where("student_id = ? AND course_id = ?", studentID, courseID).First(&existingCert).Error; err == nil {
		return
	}

	var course models.Course
	if err := database.DB.First(&course, "id = ?", courseID).Error; err != nil {
		log.Printf("🔥 Failed to load course %s for certificate: %v", courseID, err)
		return
	}
	var student models.User
	if err := database.DB.First(&student, "id = ?", studentID).Error; err != nil {
		log.Printf("🔥 Failed to load student %s for certificate: %v", studentID, err)
		return
	}

	serial, err := utils.GenerateUniqueCertificateSerial(database.DB)
	if err != nil {
		log.Printf("🔥 Failed to generate certificate serial: %v", err)
		return
	}

	htmlData, err := generateCertificateHTML(student.FullName, course.InstructorName, course.Title, serial)
	if err != nil {
		log.Printf("🔥 Failed to generate certificate HTML: %v", err)
		return
	}

	pdfBytes, err := generatePDFFromHTML(htmlData)
	if err != nil {
		log.Printf("🔥 Failed to generate PDF: %v", err)
		return
	}

	uploadURL, err := uploadToCloudinary(pdfBytes, studentID.String())
	if err != nil {
		log.Printf("🔥 Failed to upload certificate to Cloudinary: %v", err)
		return
	}

	newCertificate := models.Certificate{
		StudentID:      studentID,
		CourseID:       courseID,
		Serial:         serial,
		CourseTitle:    course.Title,
		CompletionDate: time.Now(),
		CertificateURL: uploadURL,
	}

	created, err := createCertificateRecord(database.DB, &newCertificate)
	if err != nil {
		log.Printf("🔥 Failed to create certificate record for student %s: %v", studentID, err)
		return
	}
	if !created {
		log.Printf("Certificate for student %s and course %s was issued concurrently, skipping.", studentID, courseID)
		return
	}
	log.Printf("✅ Generated and uploaded certificate '%s' for student %s.", course.Title, studentID)
}

// createCertificateRecord inserts the certificate unless one already exists
// for the (student, course) pair. Two final mark-viewed calls can race past
// the completion check; the unique index makes the second insert a no-op.
func createCertificateRecord(db *gorm.DB, cert *models.Certificate) (bool, error) {
	res := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "student_id"}, {Name: "course_id"}},
		DoNothing: true,
	}).Create(cert)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func generateCertificateHTML(studentName, instructorName, courseTitle, serial string) (string, error) {
	tmpl, err := template.ParseFiles("templates/certificate.html")
	if err != nil {
		return "", err
	}

	data := struct {
		StudentName    string
		InstructorName string
		CourseTitle    string
		Serial         string
		CompletionDate string
	}{
		StudentName:    studentName,
		InstructorName: instructorName,
		CourseTitle:    courseTitle,
		Serial:         serial,
		CompletionDate: time.Now().Format("January 2, 2006"),
	}

	var renderedHTML bytes.Buffer
	if err := tmpl.Execute(&renderedHTML, data); err != nil {
		return "", err
	}
	return renderedHTML.String(), nil
}

func generatePDFFromHTML(htmlContent string) ([]byte, error) {
	ctx, cancel := chromedp.NewContext(context.Background())
	defer cancel()

	var pdfBuffer []byte
	err := chromedp.Run(ctx,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			frameTree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(frameTree.Frame.ID, htmlContent).Do(ctx)
		}),
		chromedp.ActionFunc(func(ctx context.Context) error {
			pdf, _, err := page.PrintToPDF().WithPrintBackground(true).Do(ctx)
			if err != nil {
				return err
			}
			pdfBuffer = pdf
			return nil
		}),
	)
	if err != nil {
		return nil, err
	}
	return pdfBuffer, nil
}

func uploadToCloudinary(fileBytes []byte, studentID string) (string, error) {
	cld, err := cloudinary.NewFromURL(config.Config("CLOUDINARY_URL"))
	if err != nil {
		return "", err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	uploadParams := uploader.UploadParams{
		PublicID:     fmt.Sprintf("certificates/%s_%s", studentID, uuid.New().String()),
		Folder:       "course_mentor_certificates",
		ResourceType: "raw",
	}

	uploadResult, err := cld.Upload.Upload(ctx, bytes.NewReader(fileBytes), uploadParams)
	if err != nil {
		return "", err
	}

	return uploadResult.SecureURL, nil
}
