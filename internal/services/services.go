// package services implements HTTP clients for music service providers.
package services

import "context"

// TokenSource supplies a usable bearer token for authenticated calls.
// auth.Manager satisfies this.
type TokenSource interface {
	GetValidToken(ctx context.Context) (string, error)
}

// Provider defines the provider operations the recommendation pipeline
// consumes: playlist search and track listing.
type Provider interface {
	// SearchPlaylists searches playlists by free-text query, capped at limit.
	// Results keep the provider's relevance order.
	SearchPlaylists(ctx context.Context, query string, limit int) ([]Playlist, error)

	// PlaylistTracks fetches up to limit tracks for a playlist.
	// Entries whose underlying track object is absent (removed or local
	// placeholders) are skipped.
	PlaylistTracks(ctx context.Context, playlistID string, limit int) ([]Track, error)
}

// Playlist is a playlist match chosen by provider relevance.
type Playlist struct {
	ID   string
	Name string
	URL  string
}

// Track is a provider track with the fields the pipeline shapes for display.
type Track struct {
	Name       string
	Artists    []string
	Album      string
	ImageURL   string // first album artwork URL, empty when the album has no images
	DurationMS int
	URL        string
}
