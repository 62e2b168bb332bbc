package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/david325345/animetoday/internal/constants"
)

func TestValidateFillsDefaults(t *testing.T) {
	cfg := &Config{}

	require.NoError(t, cfg.Validate())

	assert.Equal(t, constants.DefaultPort, cfg.Port)
	assert.Equal(t, constants.SearchTransportRSS, cfg.SearchTransport)
	assert.Equal(t, constants.UnlockModeLazy, cfg.UnlockMode)
	assert.NotEmpty(t, cfg.BaseURL)
}

func TestValidateRejectsUnknownTransport(t *testing.T) {
	cfg := &Config{SearchTransport: "carrier-pigeon"}

	assert.Error(t, cfg.Validate())
}

func TestValidateRejectsUnknownUnlockMode(t *testing.T) {
	cfg := &Config{UnlockMode: "eventually"}

	assert.Error(t, cfg.Validate())
}

func TestRealDebridKeyPrefersUserShortForm(t *testing.T) {
	cfg := &Config{APIKeyRealDebrid: "server-key"}

	assert.Equal(t, "user-key", cfg.RealDebridKey(&UserConfig{RD: "user-key"}))
	assert.Equal(t, "long-key", cfg.RealDebridKey(&UserConfig{RDLong: "long-key"}))
	assert.Equal(t, "server-key", cfg.RealDebridKey(&UserConfig{}))
	assert.Equal(t, "server-key", cfg.RealDebridKey(nil))
}

func TestTMDBKeyFallback(t *testing.T) {
	cfg := &Config{TMDBAPIKey: "server-tmdb"}

	assert.Equal(t, "user-tmdb", cfg.TMDBKey(&UserConfig{TMDB: "user-tmdb"}))
	assert.Equal(t, "server-tmdb", cfg.TMDBKey(nil))
}
