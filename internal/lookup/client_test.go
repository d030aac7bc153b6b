package lookup_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"
	"time"

	"backline/internal/config"
	"backline/internal/lookup"
)

func TestSearchSongsRanksByTitleAndArtist(t *testing.T) {
	var captured url.Values
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/search" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		captured = r.URL.Query()
		_ = json.NewEncoder(w).Encode(map[string]any{
			"resultCount": 3,
			"results": []map[string]any{
				{"trackId": 1, "trackName": "Paranoid Android", "artistName": "Radiohead", "trackTimeMillis": 383500},
				{"trackId": 2, "trackName": "Paranoid", "artistName": "Black Sabbath", "trackTimeMillis": 168000},
				{"trackId": 3, "trackName": "Iron Man", "artistName": "Black Sabbath", "trackTimeMillis": 356000},
			},
		})
	}))
	defer server.Close()

	client := lookup.New(server.URL, server.URL, lookup.WithLimit(5))
	tracks := client.SearchSongs(context.Background(), "paranoid black sabbath")
	if len(tracks) != 3 {
		t.Fatalf("expected 3 tracks, got %d", len(tracks))
	}
	for i, want := range []int64{2, 3, 1} {
		if tracks[i].ID != want {
			t.Fatalf("position %d: expected track %d, got %+v", i, want, tracks[i])
		}
	}
	if tracks[0].Duration() != 168*time.Second {
		t.Fatalf("unexpected duration %v", tracks[0].Duration())
	}
	if tracks[2].Duration() != 384*time.Second {
		t.Fatalf("expected rounded duration, got %v", tracks[2].Duration())
	}

	if captured.Get("term") != "paranoid black sabbath" {
		t.Fatalf("unexpected term %q", captured.Get("term"))
	}
	if captured.Get("limit") != "5" || captured.Get("entity") != "song" || captured.Get("media") != "music" {
		t.Fatalf("unexpected query %v", captured)
	}
}

func TestSearchSongsRanksTracksWithoutIDs(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"resultCount": 3,
			"results": []map[string]any{
				{"trackName": "Paranoid Android", "artistName": "Radiohead"},
				{"trackName": "Iron Man", "artistName": "Black Sabbath"},
				{"trackName": "Paranoid", "artistName": "Black Sabbath"},
			},
		})
	}))
	defer server.Close()

	tracks := lookup.New(server.URL, server.URL).SearchSongs(context.Background(), "paranoid black sabbath")
	var titles []string
	for _, tr := range tracks {
		titles = append(titles, tr.Title)
	}
	want := []string{"Paranoid", "Iron Man", "Paranoid Android"}
	if len(titles) != len(want) {
		t.Fatalf("got %q, want %q", titles, want)
	}
	for i := range want {
		if titles[i] != want[i] {
			t.Fatalf("got %q, want %q", titles, want)
		}
	}
}

func TestSearchSongsFailuresYieldNothing(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{"server error", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusInternalServerError) }},
		{"bad json", func(w http.ResponseWriter, _ *http.Request) { _, _ = w.Write([]byte("{not json")) }},
		{"empty", func(w http.ResponseWriter, _ *http.Request) { _, _ = w.Write([]byte(`{"resultCount":0,"results":[]}`)) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(tt.handler)
			defer server.Close()
			client := lookup.New(server.URL, server.URL)
			if got := client.SearchSongs(context.Background(), "anything"); len(got) != 0 {
				t.Fatalf("expected no tracks, got %+v", got)
			}
		})
	}
}

func TestSearchSongsBlankTermSkipsRequest(t *testing.T) {
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
	}))
	defer server.Close()

	client := lookup.New(server.URL, server.URL)
	if got := client.SearchSongs(context.Background(), "   "); got != nil {
		t.Fatalf("expected nil, got %+v", got)
	}
	if hits.Load() != 0 {
		t.Fatalf("expected no requests, got %d", hits.Load())
	}
}

func TestBPMSearchesThenReadsDetail(t *testing.T) {
	var query string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/search":
			query = r.URL.Query().Get("q")
			_, _ = w.Write([]byte(`{"data":[{"id":3135556}]}`))
		case "/track/3135556":
			_, _ = w.Write([]byte(`{"id":3135556,"bpm":122.6}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	client := lookup.New(server.URL, server.URL)
	if got := client.BPM(context.Background(), "Harder Better Faster Stronger", "Daft Punk"); got != 123 {
		t.Fatalf("expected 123 bpm, got %d", got)
	}
	if query != `track:"Harder Better Faster Stronger" artist:"Daft Punk"` {
		t.Fatalf("unexpected deezer query %q", query)
	}
}

func TestBPMUnknown(t *testing.T) {
	tests := []struct {
		name   string
		search string
		detail string
		status int
	}{
		{name: "no match", search: `{"data":[]}`, status: http.StatusOK},
		{name: "zero bpm", search: `{"data":[{"id":7}]}`, detail: `{"bpm":0}`, status: http.StatusOK},
		{name: "detail missing", search: `{"data":[{"id":7}]}`, status: http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Path == "/search" {
					_, _ = w.Write([]byte(tt.search))
					return
				}
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.detail))
			}))
			defer server.Close()

			client := lookup.New(server.URL, server.URL)
			if got := client.BPM(context.Background(), "Song", "Artist"); got != 0 {
				t.Fatalf("expected 0, got %d", got)
			}
		})
	}
}

func TestDisabledClientAnswersNothing(t *testing.T) {
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
	}))
	defer server.Close()

	cfg := config.Default()
	cfg.Lookup.Enabled = false
	cfg.Lookup.ITunesBaseURL = server.URL
	cfg.Lookup.DeezerBaseURL = server.URL
	client := lookup.NewFromConfig(&cfg, nil)

	if got := client.SearchSongs(context.Background(), "song"); got != nil {
		t.Fatalf("expected nil search, got %+v", got)
	}
	if got := client.BPM(context.Background(), "song", "artist"); got != 0 {
		t.Fatalf("expected 0 bpm, got %d", got)
	}
	if hits.Load() != 0 {
		t.Fatalf("expected no requests, got %d", hits.Load())
	}
}

func TestCanceledContextYieldsNothing(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"resultCount":1,"results":[{"trackId":1,"trackName":"x"}]}`))
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	client := lookup.New(server.URL, server.URL)
	if got := client.SearchSongs(ctx, "x"); len(got) != 0 {
		t.Fatalf("expected no tracks, got %+v", got)
	}
}
