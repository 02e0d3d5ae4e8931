package utils

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
)

// ==================== UUID & TOKEN ====================

func GenerateUUID() uuid.UUID {
	return uuid.New()
}

func ParseUUID(uuidStr string) (uuid.UUID, error) {
	return uuid.Parse(uuidStr)
}

func GenerateSessionToken() uuid.UUID {
	return uuid.New()
}

// ==================== TRANSACTION ID ====================

// GenerateTransactionID returns a mock gateway reference.
// Format: PAY-YYYYMMDD-HHMMSS-NNNN
func GenerateTransactionID() string {
	return generateTransactionIDAt(time.Now())
}

func generateTransactionIDAt(now time.Time) string {
	datePart := now.Format("20060102")
	timePart := now.Format("150405")
	randomPart := fmt.Sprintf("%04d", rand.Intn(10000))

	return fmt.Sprintf("PAY-%s-%s-%s", datePart, timePart, randomPart)
}
