package services

import (
	"sort"

	"github.com/david325345/animetoday/internal/constants"
	"github.com/david325345/animetoday/pkg/logger"
	"github.com/david325345/animetoday/pkg/nyaa"
)

// IndexClient is the subset of the nyaa client the search service uses.
type IndexClient interface {
	SearchPage(query string, page int) ([]nyaa.Torrent, error)
	FetchMagnet(torrentID int) (string, error)
}

// Torrents searches the torrent index for an episode. All title variants
// are tried and merged (exhaustive mode): uploaders name shows
// inconsistently, so stopping at the first variant with results misses
// releases the looser variants find.
type Torrents struct {
	index  IndexClient
	logger logger.Logger
}

func NewTorrents(index IndexClient) *Torrents {
	return &Torrents{
		index:  index,
		logger: logger.New(),
	}
}

// Search returns the deduplicated candidates for an episode, ranked by
// seeder count. A failed query for one variant never aborts the rest; it
// counts as zero results. An empty slice means nothing was found anywhere.
func (t *Torrents) Search(title string, episode int) []nyaa.Torrent {
	var results []nyaa.Torrent
	seenHashes := make(map[string]bool)

	for _, query := range nyaa.QueryVariants(title, episode) {
		found := 0
		for page := 1; page <= constants.MaxSearchPages; page++ {
			torrents, err := t.index.SearchPage(query, page)
			if err != nil {
				t.logger.Warnf("[Torrents] search failed for %q page %d: %v", query, page, err)
				break
			}
			if len(torrents) == 0 {
				break
			}

			for _, torrent := range torrents {
				if candidate, ok := t.withMagnet(torrent); ok {
					// First occurrence wins; hashless candidates are
					// never collapsed against each other.
					hash := candidate.InfoHash()
					if hash != "" {
						if seenHashes[hash] {
							continue
						}
						seenHashes[hash] = true
					}
					results = append(results, candidate)
					found++
				}
			}
		}
		if found > 0 {
			t.logger.Infof("[Torrents] found %d torrents for %q", found, query)
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Seeders > results[j].Seeders
	})

	if len(results) > 0 {
		t.logger.Infof("[Torrents] %d unique torrents after dedup", len(results))
	}
	return results
}

// withMagnet ensures the candidate carries a magnet, fetching it from the
// index when the search response omitted one. Candidates whose magnet
// cannot be resolved are dropped, not surfaced as errors.
func (t *Torrents) withMagnet(torrent nyaa.Torrent) (nyaa.Torrent, bool) {
	if torrent.Magnet != "" {
		return torrent, true
	}
	if torrent.ID == 0 {
		return torrent, false
	}

	magnet, err := t.index.FetchMagnet(torrent.ID)
	if err != nil {
		t.logger.Debugf("[Torrents] dropping %q: magnet fetch failed: %v", torrent.Name, err)
		return torrent, false
	}
	torrent.Magnet = magnet
	return torrent, true
}
