// Package security provides validation and safe handling of third-party API keys.
package security

import (
	"crypto/subtle"
	"regexp"
	"strings"
)

var (
	keyPattern      = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)
	keyStripPattern = regexp.MustCompile(`[^a-zA-Z0-9_-]`)
	hexPattern      = regexp.MustCompile(`^[a-fA-F0-9]+$`)
)

// APIKeyValidator validates and sanitizes API keys before they reach
// outbound requests or log lines.
type APIKeyValidator struct {
	minLength int
	maxLength int
}

func NewAPIKeyValidator() *APIKeyValidator {
	return &APIKeyValidator{
		minLength: 8,
		maxLength: 128,
	}
}

// ValidateAPIKey checks generic API key format and length constraints.
func (v *APIKeyValidator) ValidateAPIKey(apiKey string) bool {
	if apiKey == "" {
		return false
	}
	if len(apiKey) < v.minLength || len(apiKey) > v.maxLength {
		return false
	}
	return keyPattern.MatchString(apiKey)
}

// SanitizeAPIKey trims whitespace and drops characters unsafe for URLs
// and headers.
func (v *APIKeyValidator) SanitizeAPIKey(apiKey string) string {
	return keyStripPattern.ReplaceAllString(strings.TrimSpace(apiKey), "")
}

// MaskAPIKey returns a log-safe form showing only the first and last
// few characters.
func (v *APIKeyValidator) MaskAPIKey(apiKey string) string {
	if len(apiKey) == 0 {
		return "[empty]"
	}
	if len(apiKey) <= 8 {
		return "[***]"
	}
	return apiKey[:3] + "..." + apiKey[len(apiKey)-3:]
}

// SecureCompare performs constant-time comparison of two keys.
func (v *APIKeyValidator) SecureCompare(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}

// IsValidRealDebridKey validates Real-Debrid API token format.
// Tokens are long alphanumeric strings, typically around 52 characters.
func (v *APIKeyValidator) IsValidRealDebridKey(apiKey string) bool {
	if !v.ValidateAPIKey(apiKey) {
		return false
	}
	return len(apiKey) >= 16 && len(apiKey) <= 80
}

// IsValidTMDBKey validates TMDB API key format, a 32 character hex string.
func (v *APIKeyValidator) IsValidTMDBKey(apiKey string) bool {
	if !v.ValidateAPIKey(apiKey) {
		return false
	}
	if len(apiKey) != 32 {
		return false
	}
	return hexPattern.MatchString(apiKey)
}
