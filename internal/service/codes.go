package service

import (
	"crypto/rand"
	"fmt"
	"strings"
)

// codeLength is the length of email verification and password reset codes
const codeLength = 6

// generateCode returns a random numeric code
func generateCode() (string, error) {
	digits := make([]byte, codeLength)
	if _, err := rand.Read(digits); err != nil {
		return "", fmt.Errorf("failed to generate code: %w", err)
	}

	var builder strings.Builder
	for _, b := range digits {
		builder.WriteByte(b%10 + '0')
	}
	return builder.String(), nil
}
