package models

import "fmt"

// ScheduleEntry is one airing instance from the daily schedule, enriched
// best-effort with secondary artwork and alternate identifiers. Entries are
// built fresh on every cache refresh and never mutated after publication.
type ScheduleEntry struct {
	MediaID  int
	Episode  int
	AiringAt int64 // epoch seconds

	TitleRomaji  string
	TitleEnglish string
	TitleNative  string

	CoverExtraLarge string
	CoverLarge      string
	Banner          string

	Description string // HTML already stripped
	Genres      []string
	Score       int // 0-100 as reported by the schedule source
	Season      string
	SeasonYear  int

	// Enrichment, absent when the lookups failed or were skipped
	TMDBPoster   string
	TMDBBackdrop string
	IMDBId       string
}

// DisplayTitle returns the first non-empty title, romanized form preferred.
func (e *ScheduleEntry) DisplayTitle() string {
	switch {
	case e.TitleRomaji != "":
		return e.TitleRomaji
	case e.TitleEnglish != "":
		return e.TitleEnglish
	default:
		return e.TitleNative
	}
}

// SearchTitle returns the title used for torrent queries, English preferred
// since that is how uploaders usually name releases.
func (e *ScheduleEntry) SearchTitle() string {
	if e.TitleEnglish != "" {
		return e.TitleEnglish
	}
	return e.TitleRomaji
}

// Rating converts the 0-100 score to the 0.0-10.0 scale, or "" when the
// source reported no score.
func (e *ScheduleEntry) Rating() string {
	if e.Score <= 0 {
		return ""
	}
	return fmt.Sprintf("%.1f", float64(e.Score)/10)
}

// ReleaseInfo formats season, year and episode for display.
func (e *ScheduleEntry) ReleaseInfo() string {
	info := ""
	if e.Season != "" {
		info = e.Season + " "
	}
	if e.SeasonYear > 0 {
		info += fmt.Sprintf("%d ", e.SeasonYear)
	}
	if info != "" {
		info += "- "
	}
	return fmt.Sprintf("%sEp %d", info, e.Episode)
}
