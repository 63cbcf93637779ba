package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidEmail(t *testing.T) {
	valid := []string{"jane@example.com", "a.b+c@sub.domain.co", "  x@y.z  "}
	invalid := []string{"", "not-an-email", "a@b", "@example.com", "a b@example.com", "a@@example.com", "jane@example."}

	for _, e := range valid {
		assert.True(t, IsValidEmail(e), e)
	}
	for _, e := range invalid {
		assert.False(t, IsValidEmail(e), e)
	}
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "jane@example.com", NormalizeEmail("  Jane@Example.COM "))
	assert.Equal(t, "A1B2C3D4", NormalizeCode(" a1b2c3d4 "))
	assert.Equal(t, "Jane", NormalizeString("  Jane\t"))
}
