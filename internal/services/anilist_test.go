package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTodayScheduleWindowIsCalendarDay(t *testing.T) {
	var captured struct {
		Variables map[string]int64 `json:"variables"`
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data":{"Page":{"airingSchedules":[]}}}`))
	}))
	defer srv.Close()

	svc := NewAniList()
	svc.SetEndpoint(srv.URL)
	// 2025-08-29T15:04:05Z, mid-day
	svc.now = func() time.Time { return time.Unix(1756479845, 0) }

	_, err := svc.TodaySchedule(context.Background())

	require.NoError(t, err)
	assert.Equal(t, int64(1756425600), captured.Variables["dayStart"])
	assert.Equal(t, int64(1756512000), captured.Variables["dayEnd"])
}

func TestTodayScheduleConvertsEntries(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data":{"Page":{"airingSchedules":[{
			"id": 1,
			"airingAt": 1756465200,
			"episode": 8,
			"media": {
				"id": 176301,
				"title": {"romaji": "Sousou no Frieren", "english": "Frieren: Beyond Journey's End"},
				"coverImage": {"extraLarge": "https://img/xl.jpg", "large": "https://img/l.jpg"},
				"description": "A story <br>about <i>time</i>.",
				"genres": ["Adventure"],
				"averageScore": 86,
				"season": "FALL",
				"seasonYear": 2025
			}
		}]}}}`))
	}))
	defer srv.Close()

	svc := NewAniList()
	svc.SetEndpoint(srv.URL)

	entries, err := svc.TodaySchedule(context.Background())

	require.NoError(t, err)
	require.Len(t, entries, 1)
	entry := entries[0]
	assert.Equal(t, 176301, entry.MediaID)
	assert.Equal(t, 8, entry.Episode)
	assert.Equal(t, "Sousou no Frieren", entry.TitleRomaji)
	assert.Equal(t, "A story about time.", entry.Description)
	assert.Equal(t, 86, entry.Score)
	assert.Equal(t, 2025, entry.SeasonYear)
}

func TestTodayScheduleGraphQLError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"errors":[{"message":"Too Many Requests"}]}`))
	}))
	defer srv.Close()

	svc := NewAniList()
	svc.SetEndpoint(srv.URL)

	_, err := svc.TodaySchedule(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "Too Many Requests")
}

func TestTodayScheduleUpstreamStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	svc := NewAniList()
	svc.SetEndpoint(srv.URL)

	_, err := svc.TodaySchedule(context.Background())

	assert.Error(t, err)
}
