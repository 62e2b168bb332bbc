package services

import (
	"errors"
	"fmt"
	"time"

	retry "github.com/avast/retry-go/v4"

	"github.com/david325345/animetoday/internal/constants"
	apperrors "github.com/david325345/animetoday/internal/errors"
	"github.com/david325345/animetoday/pkg/logger"
	"github.com/david325345/animetoday/pkg/ratelimiter"
	"github.com/david325345/animetoday/pkg/realdebrid"
	"github.com/david325345/animetoday/pkg/security"
)

// DebridClient is the subset of the Real-Debrid API the unlock service uses.
type DebridClient interface {
	AddMagnet(apiKey, magnet string) (*realdebrid.AddMagnetResponse, error)
	AddTorrent(apiKey string, torrent []byte) (*realdebrid.AddMagnetResponse, error)
	SelectFiles(apiKey, torrentID, files string) error
	GetTorrentInfo(apiKey, torrentID string) (*realdebrid.TorrentInfoResponse, error)
	UnrestrictLink(apiKey, link string) (*realdebrid.UnrestrictResponse, error)
}

var errNotReady = errors.New("torrent not ready")

// RealDebrid turns magnet links into direct HTTP download URLs through the
// Real-Debrid cache. Resolve is the single entry point used by both the
// redirect handler and eager stream resolution.
type RealDebrid struct {
	client       DebridClient
	validator    *security.APIKeyValidator
	rateLimiter  *ratelimiter.TokenBucket
	logger       logger.Logger
	pollInterval time.Duration
	pollAttempts uint
}

func NewRealDebrid(client DebridClient) *RealDebrid {
	return &RealDebrid{
		client:       client,
		validator:    security.NewAPIKeyValidator(),
		rateLimiter:  ratelimiter.NewTokenBucket(constants.RealDebridRateLimit, constants.RealDebridRateBurst),
		logger:       logger.New(),
		pollInterval: constants.UnlockPollInterval,
		pollAttempts: constants.UnlockPollAttempts,
	}
}

// Resolve submits a magnet and waits for Real-Debrid to produce a direct
// download URL. It returns ("", nil) when the torrent was accepted but did
// not finish within the polling budget: the caller treats that as "not
// cached yet", not as a failure. A non-nil error means the unlock cannot
// succeed for this magnet and key.
func (r *RealDebrid) Resolve(magnet, apiKey string) (string, error) {
	apiKey = r.validator.SanitizeAPIKey(apiKey)
	if !r.validator.IsValidRealDebridKey(apiKey) {
		return "", apperrors.NewAPIKeyMissingError("Real-Debrid")
	}

	r.rateLimiter.Wait()
	added, err := r.client.AddMagnet(apiKey, magnet)
	if err != nil {
		return "", apperrors.NewUnlockError("failed to add magnet", err)
	}
	if added == nil || added.ID == "" {
		return "", apperrors.NewUnlockError("no torrent ID returned", nil)
	}

	return r.resolveJob(added.ID, apiKey)
}

// ResolveTorrent is the .torrent-file variant of Resolve.
func (r *RealDebrid) ResolveTorrent(torrent []byte, apiKey string) (string, error) {
	apiKey = r.validator.SanitizeAPIKey(apiKey)
	if !r.validator.IsValidRealDebridKey(apiKey) {
		return "", apperrors.NewAPIKeyMissingError("Real-Debrid")
	}

	r.rateLimiter.Wait()
	added, err := r.client.AddTorrent(apiKey, torrent)
	if err != nil {
		return "", apperrors.NewUnlockError("failed to add torrent", err)
	}
	if added == nil || added.ID == "" {
		return "", apperrors.NewUnlockError("no torrent ID returned", nil)
	}

	return r.resolveJob(added.ID, apiKey)
}

func (r *RealDebrid) resolveJob(torrentID, apiKey string) (string, error) {
	r.rateLimiter.Wait()
	if err := r.client.SelectFiles(apiKey, torrentID, "all"); err != nil {
		return "", apperrors.NewUnlockError("failed to select files", err)
	}

	link, err := r.awaitLink(torrentID, apiKey)
	if errors.Is(err, errNotReady) {
		r.logger.Infof("[RealDebrid] torrent %s not ready after %d polls", torrentID, r.pollAttempts)
		return "", nil
	}
	if err != nil {
		return "", err
	}

	unrestricted, err := r.client.UnrestrictLink(apiKey, link)
	if err != nil {
		return "", apperrors.NewUnlockError("failed to unrestrict link", err)
	}
	if unrestricted.Download == "" {
		return "", apperrors.NewUnlockError("unrestrict returned no download URL", nil)
	}

	r.logger.Debugf("[RealDebrid] unlocked torrent %s", torrentID)
	return unrestricted.Download, nil
}

// awaitLink polls torrent status until a hoster link appears. The fixed
// delay between polls matches the debrid cache's own refresh cadence;
// backing off only makes cached torrents slower to surface.
func (r *RealDebrid) awaitLink(torrentID, apiKey string) (string, error) {
	return retry.DoWithData(
		func() (string, error) {
			info, err := r.client.GetTorrentInfo(apiKey, torrentID)
			if err != nil {
				return "", retry.Unrecoverable(fmt.Errorf("failed to get torrent info: %w", err))
			}
			switch info.Status {
			case "magnet_error", "error", "virus", "dead":
				return "", retry.Unrecoverable(fmt.Errorf("torrent failed with status %q", info.Status))
			}
			if len(info.Links) > 0 {
				return info.Links[0], nil
			}
			return "", errNotReady
		},
		retry.Attempts(r.pollAttempts),
		retry.Delay(r.pollInterval),
		retry.DelayType(retry.FixedDelay),
		retry.LastErrorOnly(true),
	)
}
