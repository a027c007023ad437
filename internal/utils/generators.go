package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"
)

// GenerateOrderID creates an order id in the CRR-<unix-ms>-<4-digit-random>
// format. Uniqueness is not cryptographically guaranteed; collision
// probability is negligible at this traffic scale.
func GenerateOrderID() string {
	timestamp := time.Now().UnixMilli()
	randomNum, _ := rand.Int(rand.Reader, big.NewInt(10000))
	return fmt.Sprintf("CRR-%d-%d", timestamp, randomNum.Int64())
}

// DateStamp formats a time for export filenames (orders-export-2026-08-31.csv).
func DateStamp(t time.Time) string {
	return t.Format("2006-01-02")
}
