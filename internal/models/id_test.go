package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseEpisodeID(t *testing.T) {
	id, ok := ParseEpisodeID("nyaa:176301:8")

	assert.True(t, ok)
	assert.Equal(t, 176301, id.MediaID)
	assert.Equal(t, 8, id.Episode)
}

func TestParseEpisodeIDRejectsMalformed(t *testing.T) {
	cases := []string{
		"",
		"nyaa",
		"nyaa:176301",
		"nyaa:176301:8:extra",
		"tt1234567",
		"imdb:176301:8",
		"nyaa:abc:8",
		"nyaa:176301:abc",
	}

	for _, c := range cases {
		_, ok := ParseEpisodeID(c)
		assert.False(t, ok, "expected %q to be rejected", c)
	}
}

func TestEpisodeIDRoundTrip(t *testing.T) {
	id := EpisodeID{MediaID: 42, Episode: 13}

	parsed, ok := ParseEpisodeID(id.String())

	assert.True(t, ok)
	assert.Equal(t, id, parsed)
}
