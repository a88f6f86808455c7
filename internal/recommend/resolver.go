// package recommend resolves a mood/language request into a ranked set
// of presentation-ready tracks.
package recommend

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/moodify-app/moodify/internal/mood"
	"github.com/moodify-app/moodify/internal/services"
	"github.com/moodify-app/moodify/internal/shared"
)

const (
	// searchLimit caps the playlist search; only the first result is used.
	searchLimit = 6

	// DefaultMaxTracks is how many playlist entries are fetched per request.
	DefaultMaxTracks = 20

	// maxResults caps the final sequence handed to the renderer.
	maxResults = 10
)

// TrackView is a presentation-ready track.
type TrackView struct {
	Name     string `json:"name"`
	Artists  string `json:"artists"` // comma-joined
	Album    string `json:"album"`
	Duration string `json:"duration"` // m:ss
	URL      string `json:"url"`
	ImageURL string `json:"image"`
}

// Result is the resolver's output view model.
type Result struct {
	Mood     mood.Bucket       `json:"mood"`
	Language string            `json:"language"` // resolved search hint, e.g. "hindi"
	Playlist services.Playlist `json:"playlist"`
	Tracks   []TrackView       `json:"tracks"`
}

// Resolver orchestrates mood normalization, provider search, and track
// extraction. Each invocation is a single synchronous run with no
// caching across requests.
type Resolver struct {
	tokens    services.TokenSource
	provider  services.Provider
	maxTracks int
	logger    *log.Logger
}

// ResolverOpts contains configuration options for creating a Resolver.
type ResolverOpts struct {
	Tokens    services.TokenSource
	Provider  services.Provider
	MaxTracks int
	Logger    *log.Logger
}

// NewResolver creates a Resolver.
func NewResolver(opts ResolverOpts) *Resolver {
	if opts.MaxTracks <= 0 {
		opts.MaxTracks = DefaultMaxTracks
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	return &Resolver{
		tokens:    opts.Tokens,
		provider:  opts.Provider,
		maxTracks: opts.MaxTracks,
		logger:    opts.Logger,
	}
}

// Recommend runs the pipeline: token check, mood normalization,
// playlist search, track extraction, result shaping. A positive limit
// overrides the configured track fetch cap for this call.
//
// Failure at any stage halts the run with no partial output. The final
// sequence is truncated to the top ten entries in provider order.
func (r *Resolver) Recommend(ctx context.Context, moodText, languageCode string, limit int) (*Result, error) {
	logger := shared.WithLogger(r.logger, "request_id", shared.GenerateID())

	maxTracks := r.maxTracks
	if limit > 0 {
		maxTracks = limit
	}

	// Authentication gate: nothing is searched without a usable token.
	if _, err := r.tokens.GetValidToken(ctx); err != nil {
		return nil, err
	}

	bucket := mood.Normalize(moodText)
	language := mood.Language(languageCode)
	query := fmt.Sprintf("%s %s songs", language, bucket)

	logger.Info("searching playlists", "mood", bucket, "language", language, "query", query)

	playlists, err := r.provider.SearchPlaylists(ctx, query, searchLimit)
	if err != nil {
		return nil, err
	}
	if len(playlists) == 0 {
		return nil, fmt.Errorf("%w: query %q", shared.ErrNoPlaylistFound, query)
	}

	// First result only; provider relevance is the ranking.
	playlist := playlists[0]

	entries, err := r.provider.PlaylistTracks(ctx, playlist.ID, maxTracks)
	if err != nil {
		return nil, err
	}

	tracks := make([]TrackView, 0, len(entries))
	for _, entry := range entries {
		tracks = append(tracks, TrackView{
			Name:     entry.Name,
			Artists:  strings.Join(entry.Artists, ", "),
			Album:    entry.Album,
			Duration: FormatDuration(entry.DurationMS),
			URL:      entry.URL,
			ImageURL: entry.ImageURL,
		})
		if len(tracks) >= maxTracks {
			break
		}
	}

	if len(tracks) == 0 {
		return nil, fmt.Errorf("%w: playlist %q", shared.ErrNoTracksFound, playlist.Name)
	}

	if len(tracks) > maxResults {
		tracks = tracks[:maxResults]
	}

	logger.Info("resolved tracks", "playlist", playlist.Name, "count", len(tracks))

	return &Result{
		Mood:     bucket,
		Language: language,
		Playlist: playlist,
		Tracks:   tracks,
	}, nil
}

// FormatDuration converts milliseconds to "m:ss" using floor division:
// two-digit seconds, no zero-padding of minutes, no rounding.
func FormatDuration(ms int) string {
	s := ms / 1000
	return fmt.Sprintf("%d:%02d", s/60, s%60)
}
