package service

import (
	"crypto/rand"
	"encoding/hex"
	"strings"
)

// CodeGenerator mints a booking confirmation code.
type CodeGenerator func() (string, error)

// NewConfirmationCode returns 8 uppercase hex characters from 4 random bytes.
// Uniqueness is enforced by the booking register, not here.
func NewConfirmationCode() (string, error) {
	var b [4]byte
	if _, err := rand.Read(b[:]); err != nil {
		return "", err
	}
	return strings.ToUpper(hex.EncodeToString(b[:])), nil
}
