// utils/tracking.go
package utils

import (
	"crypto/rand"
	"fmt"
	"time"
)

const trackingCodeCharset = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// GenerateTrackingCode produces a citizen-facing code of the form
// WS-<unix ms>-<6 random base36 chars>. Uniqueness is not guaranteed here;
// the submissions table carries a unique index and the store retries on
// collision.
func GenerateTrackingCode() string {
	buf := make([]byte, 6)
	if _, err := rand.Read(buf); err != nil {
		panic("failed to read random bytes for tracking code")
	}
	for i, b := range buf {
		buf[i] = trackingCodeCharset[int(b)%len(trackingCodeCharset)]
	}
	return fmt.Sprintf("WS-%d-%s", time.Now().UnixMilli(), buf)
}
