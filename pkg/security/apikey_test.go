package security

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateAPIKey(t *testing.T) {
	v := NewAPIKeyValidator()

	assert.True(t, v.ValidateAPIKey("ABCDEFGHIJKLMNOP"))
	assert.False(t, v.ValidateAPIKey(""))
	assert.False(t, v.ValidateAPIKey("short"))
	assert.False(t, v.ValidateAPIKey("has spaces in it"))
}

func TestSanitizeAPIKey(t *testing.T) {
	v := NewAPIKeyValidator()

	assert.Equal(t, "abc123", v.SanitizeAPIKey("  abc123\n"))
	assert.Equal(t, "abc123", v.SanitizeAPIKey("abc 123!"))
}

func TestMaskAPIKey(t *testing.T) {
	v := NewAPIKeyValidator()

	assert.Equal(t, "[empty]", v.MaskAPIKey(""))
	assert.Equal(t, "[***]", v.MaskAPIKey("short"))
	assert.Equal(t, "ABC...XYZ", v.MaskAPIKey("ABCDEFGHIJKLMXYZ"))
}

func TestIsValidRealDebridKey(t *testing.T) {
	v := NewAPIKeyValidator()

	assert.True(t, v.IsValidRealDebridKey("ABCDEFGHIJKLMNOPQRSTUVWXYZ234567"))
	assert.False(t, v.IsValidRealDebridKey("tooshort"))
}

func TestIsValidTMDBKey(t *testing.T) {
	v := NewAPIKeyValidator()

	assert.True(t, v.IsValidTMDBKey("0123456789abcdef0123456789abcdef"))
	assert.False(t, v.IsValidTMDBKey("0123456789abcdef"))
	assert.False(t, v.IsValidTMDBKey("0123456789ghijkl0123456789ghijkl"))
}
