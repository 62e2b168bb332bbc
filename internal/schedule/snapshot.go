package schedule

import (
	"github.com/david325345/animetoday/internal/models"
)

type episodeKey struct {
	mediaID int
	episode int
}

// Snapshot is an immutable view of one day's airing schedule. Once built
// it is never mutated; readers share it freely without locking.
type Snapshot struct {
	entries []*models.ScheduleEntry
	index   map[episodeKey]*models.ScheduleEntry
}

// NewSnapshot indexes the entries by (media, episode). Duplicate keys keep
// the first entry, matching the order the source returned them in.
func NewSnapshot(entries []*models.ScheduleEntry) *Snapshot {
	s := &Snapshot{
		entries: make([]*models.ScheduleEntry, 0, len(entries)),
		index:   make(map[episodeKey]*models.ScheduleEntry, len(entries)),
	}
	for _, entry := range entries {
		key := episodeKey{mediaID: entry.MediaID, episode: entry.Episode}
		if _, dup := s.index[key]; dup {
			continue
		}
		s.index[key] = entry
		s.entries = append(s.entries, entry)
	}
	return s
}

// Entries returns the schedule in source order. Callers must not modify
// the returned slice.
func (s *Snapshot) Entries() []*models.ScheduleEntry {
	return s.entries
}

func (s *Snapshot) Find(mediaID, episode int) (*models.ScheduleEntry, bool) {
	entry, ok := s.index[episodeKey{mediaID: mediaID, episode: episode}]
	return entry, ok
}

func (s *Snapshot) Len() int {
	return len(s.entries)
}
