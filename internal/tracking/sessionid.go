package tracking

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"
)

// BuildSessionID creates a privacy-first session identifier for clients that
// did not send one. The signature rotates daily at midnight UTC so visitors
// cannot be followed across days. The IP address is only hashed, never stored.
func BuildSessionID(ipAddress, userAgent, salt string) string {
	today := time.Now().UTC().Format("2006-01-02")
	data := fmt.Sprintf("%s-%s.%s.%s", today, salt, ipAddress, userAgent)

	hash := sha256.Sum256([]byte(data))
	return hex.EncodeToString(hash[:])
}
