// Spotify API implementation of [Provider]
//
// Response types based on https://developer.spotify.com/documentation/web-api/reference/
package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/charmbracelet/log"
	"github.com/moodify-app/moodify/internal/shared"
	"golang.org/x/time/rate"
)

const (
	spotifyBaseURL = "https://api.spotify.com/v1"

	requestTimeout = 15 * time.Second

	// One burst, a handful of requests per second. Politeness toward
	// the provider, not a retry or backoff mechanism.
	requestsPerSecond = 5
)

// spotifyImage represents an image resource.
type spotifyImage struct {
	URL    string `json:"url"`
	Height int    `json:"height"`
	Width  int    `json:"width"`
}

type externalURLs struct {
	Spotify string `json:"spotify"`
}

// spotifyArtist represents a Spotify artist.
type spotifyArtist struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// spotifyAlbum represents a Spotify album.
type spotifyAlbum struct {
	ID     string         `json:"id"`
	Name   string         `json:"name"`
	Images []spotifyImage `json:"images"`
}

// spotifyTrack represents a Spotify track.
type spotifyTrack struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Artists      []spotifyArtist `json:"artists"`
	Album        spotifyAlbum    `json:"album"`
	DurationMS   int             `json:"duration_ms"`
	ExternalURLs externalURLs    `json:"external_urls"`
}

// spotifyPlaylist represents a simplified playlist object from search results.
type spotifyPlaylist struct {
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	ExternalURLs externalURLs `json:"external_urls"`
}

// playlistTrackItem represents a track within a playlist context.
// Track is a pointer: removed and local tracks come back as null.
type playlistTrackItem struct {
	Track *spotifyTrack `json:"track"`
}

// SpotifyClient implements [Provider] against the Spotify Web API.
//
// Every call fetches a bearer token from the TokenSource, so callers
// never hold stale credentials across the token refresh boundary.
type SpotifyClient struct {
	baseURL    string
	httpClient *http.Client
	tokens     TokenSource
	limiter    *rate.Limiter
	logger     *log.Logger
}

var _ Provider = (*SpotifyClient)(nil)

// SpotifyClientOpts contains configuration options for creating a SpotifyClient.
type SpotifyClientOpts struct {
	Tokens     TokenSource
	HTTPClient *http.Client
	BaseURL    string // overrides the API base URL, for tests
	Logger     *log.Logger
}

// NewSpotifyClient creates a Spotify Web API client.
func NewSpotifyClient(opts SpotifyClientOpts) *SpotifyClient {
	if opts.HTTPClient == nil {
		opts.HTTPClient = &http.Client{Timeout: requestTimeout}
	}
	if opts.BaseURL == "" {
		opts.BaseURL = spotifyBaseURL
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}

	return &SpotifyClient{
		baseURL:    opts.BaseURL,
		httpClient: opts.HTTPClient,
		tokens:     opts.Tokens,
		limiter:    rate.NewLimiter(rate.Limit(requestsPerSecond), 1),
		logger:     opts.Logger,
	}
}

// SearchPlaylists searches playlists matching the query, preserving the
// provider's relevance order. Null placeholder entries are dropped.
func (c *SpotifyClient) SearchPlaylists(ctx context.Context, query string, limit int) ([]Playlist, error) {
	params := url.Values{
		"q":     {query},
		"type":  {"playlist"},
		"limit": {fmt.Sprintf("%d", limit)},
	}

	var response struct {
		Playlists struct {
			Items []*spotifyPlaylist `json:"items"`
		} `json:"playlists"`
	}

	if err := c.get(ctx, "/search", params, &response); err != nil {
		return nil, err
	}

	playlists := make([]Playlist, 0, len(response.Playlists.Items))
	for _, item := range response.Playlists.Items {
		if item == nil {
			continue
		}
		playlists = append(playlists, Playlist{
			ID:   item.ID,
			Name: item.Name,
			URL:  item.ExternalURLs.Spotify,
		})
	}

	return playlists, nil
}

// PlaylistTracks fetches up to limit tracks for the playlist, skipping
// entries whose track object is absent.
func (c *SpotifyClient) PlaylistTracks(ctx context.Context, playlistID string, limit int) ([]Track, error) {
	params := url.Values{"limit": {fmt.Sprintf("%d", limit)}}
	endpoint := fmt.Sprintf("/playlists/%s/tracks", url.PathEscape(playlistID))

	var response struct {
		Items []playlistTrackItem `json:"items"`
	}

	if err := c.get(ctx, endpoint, params, &response); err != nil {
		return nil, err
	}

	tracks := make([]Track, 0, len(response.Items))
	for _, item := range response.Items {
		if item.Track == nil {
			continue
		}
		t := item.Track

		var imageURL string
		if len(t.Album.Images) > 0 {
			imageURL = t.Album.Images[0].URL
		}

		artists := make([]string, 0, len(t.Artists))
		for _, a := range t.Artists {
			artists = append(artists, a.Name)
		}

		tracks = append(tracks, Track{
			Name:       t.Name,
			Artists:    artists,
			Album:      t.Album.Name,
			ImageURL:   imageURL,
			DurationMS: t.DurationMS,
			URL:        t.ExternalURLs.Spotify,
		})
	}

	return tracks, nil
}

// get performs an authenticated GET against the API.
func (c *SpotifyClient) get(ctx context.Context, endpoint string, params url.Values, result any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("%w: %v", shared.ErrNetwork, err)
	}

	token, err := c.tokens.GetValidToken(ctx)
	if err != nil {
		return err
	}

	apiURL := c.baseURL + endpoint
	if len(params) > 0 {
		apiURL += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrNetwork, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: spotify returned status %d", shared.ErrAPIRequest, resp.StatusCode)
	}

	if result != nil {
		if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}
