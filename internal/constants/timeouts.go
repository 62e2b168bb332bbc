// Package constants defines timeout values and retry limits used throughout
// the application.
package constants

import "time"

const (
	// Metadata lookups
	AniListTimeout = 10 * time.Second
	TMDBTimeout    = 5 * time.Second
	MappingTimeout = 5 * time.Second

	// Unlock pipeline: fixed poll interval and bounded attempt budget.
	// Exhausting the budget means "not ready yet", not an error.
	UnlockPollInterval = 2 * time.Second
	UnlockPollAttempts = 10

	// Schedule cache
	RefreshInterval = 15 * time.Minute
	// Delay between per-entry enrichment calls, keeps TMDB happy
	EnrichmentDelay = 300 * time.Millisecond
)
