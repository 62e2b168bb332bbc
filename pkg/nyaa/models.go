// Package nyaa implements a search client for the Nyaa torrent index.
// It supports the RSS feed and a structured JSON gateway as transports.
package nyaa

import (
	"net/url"
	"regexp"
	"strings"
)

// Torrent is one search result from the index.
type Torrent struct {
	ID      int    // numeric id extracted from the permalink
	Name    string
	Magnet  string // magnet URI, may be empty for gateway items pending a detail fetch
	Size    string // human readable, as declared by the index
	Seeders int
}

var btihPattern = regexp.MustCompile(`btih:([a-zA-Z0-9]+)`)

// InfoHash extracts the btih content hash from the magnet URI. Returns an
// empty string when the magnet is absent or carries no extractable hash.
func (t Torrent) InfoHash() string {
	m := btihPattern.FindStringSubmatch(t.Magnet)
	if len(m) < 2 {
		return ""
	}
	return strings.ToLower(m[1])
}

// Trackers announced in magnets built from bare info hashes. These are the
// open trackers Nyaa itself includes in its magnet links.
var magnetTrackers = []string{
	"http://nyaa.tracker.wf:7777/announce",
	"udp://open.stealth.si:80/announce",
	"udp://tracker.opentrackr.org:1337/announce",
	"udp://exodus.desync.com:6969/announce",
	"udp://tracker.torrent.eu.org:451/announce",
}

// BuildMagnet constructs a magnet URI from an info hash and display name.
func BuildMagnet(infoHash, name string) string {
	var b strings.Builder
	b.WriteString("magnet:?xt=urn:btih:")
	b.WriteString(infoHash)
	b.WriteString("&dn=")
	b.WriteString(url.QueryEscape(name))
	for _, tr := range magnetTrackers {
		b.WriteString("&tr=")
		b.WriteString(url.QueryEscape(tr))
	}
	return b.String()
}
