package schedule

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/david325345/animetoday/internal/models"
)

type fakeSource struct {
	entries []*models.ScheduleEntry
	err     error
}

func (f *fakeSource) TodaySchedule(ctx context.Context) ([]*models.ScheduleEntry, error) {
	return f.entries, f.err
}

type fakeImages struct {
	poster   string
	backdrop string
	err      error
}

func (f *fakeImages) ImagesForShow(title string, year int, mediaID int) (*models.TMDBImages, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &models.TMDBImages{Poster: f.poster, Backdrop: f.backdrop}, nil
}

type fakeIDMapper struct {
	imdbID string
	err    error
}

func (f *fakeIDMapper) IMDBIdFor(mediaID int) (string, error) {
	return f.imdbID, f.err
}

func entry(mediaID, episode int) *models.ScheduleEntry {
	return &models.ScheduleEntry{MediaID: mediaID, Episode: episode, TitleRomaji: "Show"}
}

func newTestCache(source Source) *Cache {
	c := NewCache(source)
	c.enrichDelay = 0
	return c
}

func TestCurrentStartsEmpty(t *testing.T) {
	c := newTestCache(&fakeSource{})

	snapshot := c.Current()

	require.NotNil(t, snapshot)
	assert.Zero(t, snapshot.Len())
}

func TestRefreshPublishesEntries(t *testing.T) {
	source := &fakeSource{entries: []*models.ScheduleEntry{entry(1, 5), entry(2, 1)}}
	c := newTestCache(source)

	require.NoError(t, c.Refresh(context.Background()))

	snapshot := c.Current()
	assert.Equal(t, 2, snapshot.Len())
	found, ok := snapshot.Find(1, 5)
	require.True(t, ok)
	assert.Equal(t, 1, found.MediaID)
}

func TestRefreshFailureKeepsPreviousSnapshot(t *testing.T) {
	source := &fakeSource{entries: []*models.ScheduleEntry{entry(1, 5)}}
	c := newTestCache(source)
	require.NoError(t, c.Refresh(context.Background()))

	source.entries = nil
	source.err = errors.New("upstream down")
	err := c.Refresh(context.Background())

	assert.Error(t, err)
	assert.Equal(t, 1, c.Current().Len())
}

func TestRefreshEmptySuccessPublishesEmptySnapshot(t *testing.T) {
	source := &fakeSource{entries: []*models.ScheduleEntry{entry(1, 5)}}
	c := newTestCache(source)
	require.NoError(t, c.Refresh(context.Background()))

	// a day with no airings is a real state
	source.entries = nil
	require.NoError(t, c.Refresh(context.Background()))

	assert.Zero(t, c.Current().Len())
}

func TestRefreshEnriches(t *testing.T) {
	source := &fakeSource{entries: []*models.ScheduleEntry{entry(7, 2)}}
	c := newTestCache(source)
	c.SetImageProvider(&fakeImages{poster: "https://img/poster.jpg", backdrop: "https://img/backdrop.jpg"})
	c.SetIDMapper(&fakeIDMapper{imdbID: "tt1234567"})

	require.NoError(t, c.Refresh(context.Background()))

	found, ok := c.Current().Find(7, 2)
	require.True(t, ok)
	assert.Equal(t, "https://img/poster.jpg", found.TMDBPoster)
	assert.Equal(t, "https://img/backdrop.jpg", found.TMDBBackdrop)
	assert.Equal(t, "tt1234567", found.IMDBId)
}

func TestRefreshEnrichmentFailureIsSoft(t *testing.T) {
	source := &fakeSource{entries: []*models.ScheduleEntry{entry(7, 2)}}
	c := newTestCache(source)
	c.SetImageProvider(&fakeImages{err: errors.New("no metadata")})
	c.SetIDMapper(&fakeIDMapper{err: errors.New("no mapping")})

	require.NoError(t, c.Refresh(context.Background()))

	found, ok := c.Current().Find(7, 2)
	require.True(t, ok)
	assert.Empty(t, found.TMDBPoster)
	assert.Empty(t, found.IMDBId)
}

func TestSnapshotDedupesFirstWins(t *testing.T) {
	first := entry(1, 5)
	first.TitleRomaji = "First"
	dup := entry(1, 5)
	dup.TitleRomaji = "Duplicate"

	snapshot := NewSnapshot([]*models.ScheduleEntry{first, dup, entry(2, 1)})

	assert.Equal(t, 2, snapshot.Len())
	found, ok := snapshot.Find(1, 5)
	require.True(t, ok)
	assert.Equal(t, "First", found.TitleRomaji)
}

func TestSnapshotFindMiss(t *testing.T) {
	snapshot := NewSnapshot(nil)

	_, ok := snapshot.Find(9, 9)

	assert.False(t, ok)
}
