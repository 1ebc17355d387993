package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"

	"github.com/google/uuid"
)

// GenerateOTP returns a 6-digit numeric code, uniform in [100000, 999999].
func GenerateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}

// NewSessionID builds the opaque server-side session identifier.
func NewSessionID(email string, unixMillis int64) string {
	return fmt.Sprintf("session_%s_%d_%s", email, unixMillis, uuid.NewString())
}

// NormalizeEmail is the single normalization rule used everywhere an email is
// compared or stored.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
