package lookup

import (
	"cmp"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"net/url"
	"slices"
	"strconv"
	"strings"
	"time"

	"backline/internal/config"
	"backline/internal/logging"
	"backline/internal/textutil"
)

// Track is a song returned by catalog search.
type Track struct {
	ID         int64  `json:"trackId"`
	Title      string `json:"trackName"`
	Artist     string `json:"artistName"`
	Album      string `json:"collectionName"`
	DurationMS int64  `json:"trackTimeMillis"`
	Genre      string `json:"primaryGenreName"`
	ArtworkURL string `json:"artworkUrl60,omitempty"`
	PreviewURL string `json:"previewUrl,omitempty"`
}

// Duration returns the track length rounded to whole seconds.
func (t Track) Duration() time.Duration {
	return time.Duration(math.Round(float64(t.DurationMS)/1000)) * time.Second
}

type itunesResponse struct {
	ResultCount int     `json:"resultCount"`
	Results     []Track `json:"results"`
}

type deezerSearch struct {
	Data []struct {
		ID int64 `json:"id"`
	} `json:"data"`
}

type deezerTrack struct {
	BPM float64 `json:"bpm"`
}

// Client talks to the iTunes and Deezer public APIs.
type Client struct {
	itunesURL  string
	deezerURL  string
	limit      int
	disabled   bool
	httpClient *http.Client
	logger     *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithLogger sets the logger used for debug output.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithLimit caps the number of songs a search returns.
func WithLimit(limit int) Option {
	return func(c *Client) {
		if limit > 0 {
			c.limit = limit
		}
	}
}

// New creates a client against the given base URLs.
func New(itunesURL, deezerURL string, opts ...Option) *Client {
	c := &Client{
		itunesURL:  strings.TrimRight(strings.TrimSpace(itunesURL), "/"),
		deezerURL:  strings.TrimRight(strings.TrimSpace(deezerURL), "/"),
		limit:      8,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	c.logger = logging.NewComponentLogger(c.logger, "lookup")
	return c
}

// NewFromConfig builds a client from the [lookup] section. A disabled
// section yields a client that answers every query with nothing.
func NewFromConfig(cfg *config.Config, logger *slog.Logger) *Client {
	if cfg == nil {
		return &Client{disabled: true, logger: logging.NewNop()}
	}
	c := New(cfg.Lookup.ITunesBaseURL, cfg.Lookup.DeezerBaseURL,
		WithHTTPClient(&http.Client{Timeout: cfg.LookupTimeout()}),
		WithLimit(cfg.Lookup.ResultLimit),
		WithLogger(logger),
	)
	c.disabled = !cfg.Lookup.Enabled
	return c
}

// SearchSongs returns songs matching term, best match first. Results are
// ranked by token similarity between term and "title artist"; ties keep the
// catalog's order.
func (c *Client) SearchSongs(ctx context.Context, term string) []Track {
	term = strings.TrimSpace(term)
	if c == nil || c.disabled || term == "" {
		return nil
	}
	params := url.Values{}
	params.Set("term", term)
	params.Set("media", "music")
	params.Set("entity", "song")
	params.Set("limit", strconv.Itoa(c.limit))

	var resp itunesResponse
	if err := c.getJSON(ctx, c.itunesURL+"/search?"+params.Encode(), &resp); err != nil {
		c.logger.Debug("song search failed", logging.String("term", term), logging.Error(err))
		return nil
	}
	tracks := resp.Results
	if len(tracks) > c.limit {
		tracks = tracks[:c.limit]
	}
	return rank(term, tracks)
}

type scoredTrack struct {
	track Track
	score float64
}

// rank orders tracks by how closely "title artist" matches term. Scores are
// kept per result, so tracks without an id or sharing one rank on their own.
func rank(term string, tracks []Track) []Track {
	query := textutil.NewFingerprint(term)
	scored := make([]scoredTrack, len(tracks))
	for i, t := range tracks {
		scored[i] = scoredTrack{track: t, score: query.Similarity(textutil.NewFingerprint(t.Title + " " + t.Artist))}
	}
	slices.SortStableFunc(scored, func(a, b scoredTrack) int {
		return cmp.Compare(b.score, a.score)
	})
	out := make([]Track, len(scored))
	for i, s := range scored {
		out[i] = s.track
	}
	return out
}

// BPM returns the rounded tempo Deezer reports for the best match of title
// and artist, or 0 when unknown.
func (c *Client) BPM(ctx context.Context, title, artist string) int {
	title = strings.TrimSpace(title)
	if c == nil || c.disabled || title == "" {
		return 0
	}
	params := url.Values{}
	params.Set("q", fmt.Sprintf("track:%q artist:%q", title, strings.TrimSpace(artist)))
	params.Set("limit", "1")

	var search deezerSearch
	if err := c.getJSON(ctx, c.deezerURL+"/search?"+params.Encode(), &search); err != nil {
		c.logger.Debug("bpm search failed", logging.String("title", title), logging.Error(err))
		return 0
	}
	if len(search.Data) == 0 {
		return 0
	}
	var track deezerTrack
	detail := c.deezerURL + "/track/" + strconv.FormatInt(search.Data[0].ID, 10)
	if err := c.getJSON(ctx, detail, &track); err != nil {
		c.logger.Debug("bpm detail failed", logging.String("title", title), logging.Error(err))
		return 0
	}
	if track.BPM <= 0 {
		return 0
	}
	return int(math.Round(track.BPM))
}

func (c *Client) getJSON(ctx context.Context, endpoint string, target any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
