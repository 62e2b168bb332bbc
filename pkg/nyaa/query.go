package nyaa

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	seasonMarkers = []*regexp.Regexp{
		regexp.MustCompile(`(?i)Season \d+`),
		regexp.MustCompile(`(?i)Part \d+`),
		regexp.MustCompile(`(?i)2nd Season`),
		regexp.MustCompile(`(?i)3rd Season`),
	}
	parenthesized  = regexp.MustCompile(`\([^)]*\)`)
	nonAlphanum    = regexp.MustCompile(`[^\w\s]`)
	multipleSpaces = regexp.MustCompile(`\s+`)
)

// QueryVariants produces the ordered, distinct search queries tried for a
// title, each suffixed with the episode number. The verbatim title comes
// first; progressively looser normalizations follow. Variants that would be
// empty after stripping are dropped.
//
// Uploaders name the same show inconsistently (with or without season
// markers, subtitles, punctuation), so a single query misses releases the
// looser forms find.
func QueryVariants(title string, episode int) []string {
	candidates := []string{
		title,
		stripSeasonMarkers(title),
		strings.TrimSpace(strings.SplitN(title, ":", 2)[0]),
		strings.TrimSpace(strings.SplitN(title, "-", 2)[0]),
	}

	if plain := collapseSpecialChars(title); plain != title {
		candidates = append(candidates, plain)
	}

	seen := make(map[string]bool, len(candidates))
	variants := make([]string, 0, len(candidates))
	for _, c := range candidates {
		if c == "" || seen[c] {
			continue
		}
		seen[c] = true
		variants = append(variants, fmt.Sprintf("%s %d", c, episode))
	}
	return variants
}

// stripSeasonMarkers removes season/part markers, parenthesized suffixes
// and colons from a title.
func stripSeasonMarkers(title string) string {
	for _, re := range seasonMarkers {
		title = re.ReplaceAllString(title, "")
	}
	title = parenthesized.ReplaceAllString(title, "")
	title = strings.ReplaceAll(title, ":", "")
	return strings.TrimSpace(multipleSpaces.ReplaceAllString(title, " "))
}

// collapseSpecialChars replaces runs of non-alphanumeric characters with
// single spaces.
func collapseSpecialChars(title string) string {
	title = nonAlphanum.ReplaceAllString(title, " ")
	return strings.TrimSpace(multipleSpaces.ReplaceAllString(title, " "))
}
