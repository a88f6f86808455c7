package recommend

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/moodify-app/moodify/internal/services"
	"github.com/moodify-app/moodify/internal/shared"
)

type fakeTokens struct {
	err   error
	calls int
}

func (f *fakeTokens) GetValidToken(ctx context.Context) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return "token", nil
}

// fakeProvider records calls and serves canned playlists and tracks.
type fakeProvider struct {
	playlists []services.Playlist
	tracks    []services.Track

	searchErr error
	tracksErr error

	lastQuery       string
	lastSearchLimit int
	lastPlaylistID  string
	lastTrackLimit  int
	searchCalls     int
	trackCalls      int
}

func (f *fakeProvider) SearchPlaylists(ctx context.Context, query string, limit int) ([]services.Playlist, error) {
	f.searchCalls++
	f.lastQuery = query
	f.lastSearchLimit = limit
	return f.playlists, f.searchErr
}

func (f *fakeProvider) PlaylistTracks(ctx context.Context, id string, limit int) ([]services.Track, error) {
	f.trackCalls++
	f.lastPlaylistID = id
	f.lastTrackLimit = limit
	return f.tracks, f.tracksErr
}

func someTracks(n int) []services.Track {
	tracks := make([]services.Track, 0, n)
	for i := 0; i < n; i++ {
		tracks = append(tracks, services.Track{
			Name:       fmt.Sprintf("Track %d", i+1),
			Artists:    []string{"Artist A", "Artist B"},
			Album:      "Album",
			DurationMS: 125000,
			URL:        fmt.Sprintf("https://open.spotify.com/track/%d", i+1),
		})
	}
	return tracks
}

func TestResolverRecommend(t *testing.T) {
	playlist := services.Playlist{ID: "p1", Name: "Mood Mix", URL: "https://open.spotify.com/playlist/p1"}

	t.Run("Happy Path", func(t *testing.T) {
		provider := &fakeProvider{
			playlists: []services.Playlist{playlist, {ID: "p2", Name: "Second"}},
			tracks:    someTracks(5),
		}
		r := NewResolver(ResolverOpts{Tokens: &fakeTokens{}, Provider: provider})

		result, err := r.Recommend(context.Background(), "joyful vibes", "en", 0)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if result.Mood != "happy" {
			t.Errorf("expected mood happy, got %q", result.Mood)
		}
		if result.Language != "english" {
			t.Errorf("expected language english, got %q", result.Language)
		}
		if provider.lastQuery != "english happy songs" {
			t.Errorf("unexpected query %q", provider.lastQuery)
		}
		if provider.lastSearchLimit != 6 {
			t.Errorf("expected search limit 6, got %d", provider.lastSearchLimit)
		}
		if result.Playlist.ID != "p1" {
			t.Errorf("expected first playlist, got %q", result.Playlist.ID)
		}
		if provider.lastPlaylistID != "p1" {
			t.Errorf("expected tracks fetched for p1, got %q", provider.lastPlaylistID)
		}
		if provider.lastTrackLimit != DefaultMaxTracks {
			t.Errorf("expected track limit %d, got %d", DefaultMaxTracks, provider.lastTrackLimit)
		}
		if len(result.Tracks) != 5 {
			t.Fatalf("expected 5 tracks, got %d", len(result.Tracks))
		}
		if result.Tracks[0].Artists != "Artist A, Artist B" {
			t.Errorf("unexpected artists %q", result.Tracks[0].Artists)
		}
		if result.Tracks[0].Duration != "2:05" {
			t.Errorf("unexpected duration %q", result.Tracks[0].Duration)
		}
	})

	t.Run("Language Query Shaping", func(t *testing.T) {
		provider := &fakeProvider{playlists: []services.Playlist{playlist}, tracks: someTracks(1)}
		r := NewResolver(ResolverOpts{Tokens: &fakeTokens{}, Provider: provider})

		if _, err := r.Recommend(context.Background(), "feeling down and lonely", "hi", 0); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if provider.lastQuery != "hindi sad songs" {
			t.Errorf("unexpected query %q", provider.lastQuery)
		}
	})

	t.Run("Result Is Capped At Ten Tracks", func(t *testing.T) {
		provider := &fakeProvider{playlists: []services.Playlist{playlist}, tracks: someTracks(20)}
		r := NewResolver(ResolverOpts{Tokens: &fakeTokens{}, Provider: provider})

		result, err := r.Recommend(context.Background(), "energetic", "en", 0)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(result.Tracks) != 10 {
			t.Errorf("expected 10 tracks, got %d", len(result.Tracks))
		}
		if result.Tracks[0].Name != "Track 1" || result.Tracks[9].Name != "Track 10" {
			t.Errorf("expected provider order preserved, got %q .. %q", result.Tracks[0].Name, result.Tracks[9].Name)
		}
	})

	t.Run("Auth Failure Halts Before Any Search", func(t *testing.T) {
		provider := &fakeProvider{}
		tokens := &fakeTokens{err: fmt.Errorf("%w: %w", shared.ErrNotAuthenticated, shared.ErrNoRefreshToken)}
		r := NewResolver(ResolverOpts{Tokens: tokens, Provider: provider})

		_, err := r.Recommend(context.Background(), "happy", "en", 0)
		if !errors.Is(err, shared.ErrNotAuthenticated) {
			t.Errorf("expected ErrNotAuthenticated, got %v", err)
		}
		if provider.searchCalls != 0 {
			t.Errorf("expected no search after auth failure, got %d", provider.searchCalls)
		}
	})

	t.Run("No Playlists Skips Track Fetch", func(t *testing.T) {
		provider := &fakeProvider{playlists: nil}
		r := NewResolver(ResolverOpts{Tokens: &fakeTokens{}, Provider: provider})

		_, err := r.Recommend(context.Background(), "happy", "en", 0)
		if !errors.Is(err, shared.ErrNoPlaylistFound) {
			t.Errorf("expected ErrNoPlaylistFound, got %v", err)
		}
		if provider.trackCalls != 0 {
			t.Errorf("expected no track fetch, got %d", provider.trackCalls)
		}
	})

	t.Run("Empty Playlist Yields ErrNoTracksFound", func(t *testing.T) {
		provider := &fakeProvider{playlists: []services.Playlist{playlist}, tracks: nil}
		r := NewResolver(ResolverOpts{Tokens: &fakeTokens{}, Provider: provider})

		_, err := r.Recommend(context.Background(), "happy", "en", 0)
		if !errors.Is(err, shared.ErrNoTracksFound) {
			t.Errorf("expected ErrNoTracksFound, got %v", err)
		}
	})

	t.Run("Provider Errors Pass Through", func(t *testing.T) {
		provider := &fakeProvider{searchErr: shared.ErrAPIRequest}
		r := NewResolver(ResolverOpts{Tokens: &fakeTokens{}, Provider: provider})

		if _, err := r.Recommend(context.Background(), "happy", "en", 0); !errors.Is(err, shared.ErrAPIRequest) {
			t.Errorf("expected ErrAPIRequest, got %v", err)
		}
	})

	t.Run("Per-Call Limit Overrides The Configured Cap", func(t *testing.T) {
		provider := &fakeProvider{playlists: []services.Playlist{playlist}, tracks: someTracks(20)}
		r := NewResolver(ResolverOpts{Tokens: &fakeTokens{}, Provider: provider, MaxTracks: 20})

		result, err := r.Recommend(context.Background(), "happy", "en", 5)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if provider.lastTrackLimit != 5 {
			t.Errorf("expected track limit 5, got %d", provider.lastTrackLimit)
		}
		if len(result.Tracks) != 5 {
			t.Errorf("expected 5 tracks, got %d", len(result.Tracks))
		}
	})

	t.Run("Configured Max Tracks Below Ten", func(t *testing.T) {
		provider := &fakeProvider{playlists: []services.Playlist{playlist}, tracks: someTracks(20)}
		r := NewResolver(ResolverOpts{Tokens: &fakeTokens{}, Provider: provider, MaxTracks: 3})

		result, err := r.Recommend(context.Background(), "happy", "en", 0)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if provider.lastTrackLimit != 3 {
			t.Errorf("expected track limit 3, got %d", provider.lastTrackLimit)
		}
		if len(result.Tracks) != 3 {
			t.Errorf("expected 3 tracks, got %d", len(result.Tracks))
		}
	})
}

func TestFormatDuration(t *testing.T) {
	cases := map[int]string{
		0:       "0:00",
		999:     "0:00",
		1000:    "0:01",
		65000:   "1:05",
		215000:  "3:35",
		3600000: "60:00",
	}

	for ms, want := range cases {
		if got := FormatDuration(ms); got != want {
			t.Errorf("FormatDuration(%d) = %q, want %q", ms, got, want)
		}
	}
}
