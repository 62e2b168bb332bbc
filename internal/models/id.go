package models

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/david325345/animetoday/internal/constants"
)

// EpisodeID is the composite identifier handed to the player:
// "nyaa:<media id>:<episode>". The zero value is not a valid identifier.
type EpisodeID struct {
	MediaID int
	Episode int
}

// ParseEpisodeID parses a composite identifier. It reports ok=false for a
// wrong namespace tag, wrong field count or non-numeric fields instead of
// guessing.
func ParseEpisodeID(s string) (EpisodeID, bool) {
	parts := strings.Split(s, ":")
	if len(parts) != 3 || parts[0] != constants.IDPrefix {
		return EpisodeID{}, false
	}

	mediaID, err := strconv.Atoi(parts[1])
	if err != nil {
		return EpisodeID{}, false
	}
	episode, err := strconv.Atoi(parts[2])
	if err != nil {
		return EpisodeID{}, false
	}

	return EpisodeID{MediaID: mediaID, Episode: episode}, true
}

func (id EpisodeID) String() string {
	return fmt.Sprintf("%s:%d:%d", constants.IDPrefix, id.MediaID, id.Episode)
}
