package utils

import (
	"math/rand"
	"time"

	"github.com/anjiri1684/course_mentor/models"
	"gorm.io/gorm"
)

const serialLength = 10
const letterBytes = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

func GenerateUniqueCertificateSerial(tx *gorm.DB) (string, error) {
	seededRand := rand.New(rand.NewSource(time.Now().UnixNano()))

	for {
		b := make([]byte, serialLength)
		for i := range b {
			b[i] = letterBytes[seededRand.Intn(len(letterBytes))]
		}
		serial := string(b)

		var cert models.Certificate
		err := tx.Where("serial = ?", serial).First(&cert).Error
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return serial, nil
			}
			return "", err
		}
	}
}
