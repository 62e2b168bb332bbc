// Package config provides configuration management for the application.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/david325345/animetoday/internal/constants"
	"github.com/david325345/animetoday/pkg/localip"
)

const (
	defaultConfigFile   = "config.json"
	defaultDatabasePath = "./data.db"
)

// Config holds the application configuration. Values load from environment
// variables and an optional JSON file; environment wins.
type Config struct {
	// API keys. Both can also arrive per-request from the player's
	// configured addon URL.
	TMDBAPIKey       string `json:"TMDB_API_KEY"`
	APIKeyRealDebrid string `json:"API_KEY_REALDEBRID"`

	// Behavior axes
	SearchTransport string `json:"SEARCH_TRANSPORT"` // rss | api
	UnlockMode      string `json:"UNLOCK_MODE"`      // lazy | eager

	// BaseURL is the externally reachable address used to build the /rd
	// redirect links handed to the player.
	BaseURL string `json:"BASE_URL"`

	Port string `json:"PORT"`

	// Storage settings
	DatabasePath string        `json:"DATABASE_PATH"`
	CacheSize    int           `json:"CACHE_SIZE"`
	CacheTTL     time.Duration `json:"CACHE_TTL"`
}

// Load reads configuration from environment variables and an optional JSON
// file, then validates and fills defaults.
func Load() (*Config, error) {
	cfg := &Config{
		CacheSize:    constants.DefaultCacheSize,
		CacheTTL:     time.Duration(constants.DefaultCacheTTL) * time.Hour,
		DatabasePath: getEnvOrDefault("DATABASE_PATH", defaultDatabasePath),
	}

	configFile := getEnvOrDefault("CONFIG_FILE", defaultConfigFile)
	if err := cfg.loadFromFile(configFile); err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to load config file: %w", err)
		}
	}

	cfg.loadFromEnv()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func (c *Config) loadFromEnv() {
	if v := os.Getenv("TMDB_API_KEY"); v != "" {
		c.TMDBAPIKey = v
	}
	if v := os.Getenv("API_KEY_REALDEBRID"); v != "" {
		c.APIKeyRealDebrid = v
	}
	if v := os.Getenv("SEARCH_TRANSPORT"); v != "" {
		c.SearchTransport = v
	}
	if v := os.Getenv("UNLOCK_MODE"); v != "" {
		c.UnlockMode = v
	}
	if v := os.Getenv("BASE_URL"); v != "" {
		c.BaseURL = v
	}
	if v := os.Getenv("PORT"); v != "" {
		c.Port = v
	}
}

func (c *Config) loadFromFile(filename string) error {
	data, err := os.ReadFile(filename)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, c)
}

// Validate checks the configuration and sets defaults for missing optional
// fields.
func (c *Config) Validate() error {
	if c.Port == "" {
		c.Port = constants.DefaultPort
	}

	switch c.SearchTransport {
	case "":
		c.SearchTransport = constants.SearchTransportRSS
	case constants.SearchTransportRSS, constants.SearchTransportAPI:
	default:
		return fmt.Errorf("unknown search transport %q", c.SearchTransport)
	}

	switch c.UnlockMode {
	case "":
		c.UnlockMode = constants.UnlockModeLazy
	case constants.UnlockModeLazy, constants.UnlockModeEager:
	default:
		return fmt.Errorf("unknown unlock mode %q", c.UnlockMode)
	}

	if c.BaseURL == "" {
		c.BaseURL = defaultBaseURL(c.Port)
	}

	return nil
}

// defaultBaseURL builds a reachable address from the host's outbound IP.
// Deployments behind a proxy should set BASE_URL instead.
func defaultBaseURL(port string) string {
	if ip, err := localip.Get(); err == nil {
		return fmt.Sprintf("http://%s:%s", ip, port)
	}
	return fmt.Sprintf("http://localhost:%s", port)
}

// UserConfig is the per-request configuration the player embeds as a base64
// JSON path segment. Short keys match the original install links; the long
// forms mirror the config file.
type UserConfig struct {
	RD       string `json:"rd"`
	TMDB     string `json:"tmdb"`
	RDLong   string `json:"API_KEY_REALDEBRID"`
	TMDBLong string `json:"TMDB_API_KEY"`
}

// RealDebridKey returns the user's debrid credential, falling back to the
// server-side configuration.
func (c *Config) RealDebridKey(user *UserConfig) string {
	if user != nil {
		if user.RD != "" {
			return user.RD
		}
		if user.RDLong != "" {
			return user.RDLong
		}
	}
	return c.APIKeyRealDebrid
}

// TMDBKey returns the user's TMDB credential, falling back to the
// server-side configuration.
func (c *Config) TMDBKey(user *UserConfig) string {
	if user != nil {
		if user.TMDB != "" {
			return user.TMDB
		}
		if user.TMDBLong != "" {
			return user.TMDBLong
		}
	}
	return c.TMDBAPIKey
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
