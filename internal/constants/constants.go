// Package constants defines application-wide constants and default values.
package constants

const (
	// Addon metadata
	AddonID          = "today.anime.nyaa.rd"
	AddonVersion     = "1.3.0"
	AddonName        = "Anime Today + Nyaa"
	AddonDescription = "Today's airing anime with Nyaa torrents through Real-Debrid"

	// Catalog identity
	CatalogID = "anime-today"
	IDPrefix  = "nyaa"

	// Default configuration values
	DefaultPort     = "7000"
	DefaultLogLevel = "info"

	// Cache settings
	DefaultCacheSize = 1000
	DefaultCacheTTL  = 24 // hours

	// Rate limiting
	TMDBRateLimit       = 20 // requests per second
	TMDBRateBurst       = 5  // burst capacity
	RealDebridRateLimit = 10 // requests per second
	RealDebridRateBurst = 2  // burst capacity

	// Shown when neither TMDB nor AniList provide usable artwork
	PlaceholderPoster = "https://via.placeholder.com/230x345/1a1a2e/ffffff?text=No+Image"
)

// Search transport modes for the torrent index.
const (
	SearchTransportRSS = "rss"
	SearchTransportAPI = "api"
)

// Unlock timing modes for debrid resolution.
const (
	UnlockModeLazy  = "lazy"
	UnlockModeEager = "eager"
)
