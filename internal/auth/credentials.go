// package auth implements the Spotify authorization-code flow:
// credential validation, consent URL construction and pre-flight,
// and the token lifecycle (exchange, refresh, logout).
package auth

import (
	"fmt"
	"regexp"

	"github.com/moodify-app/moodify/internal/shared"
	"golang.org/x/oauth2"
)

const (
	spotifyAuthURL  = "https://accounts.spotify.com/authorize"
	spotifyTokenURL = "https://accounts.spotify.com/api/token"

	// DefaultScope covers playlist search and track listing.
	DefaultScope = "playlist-read-private user-library-read"
)

// Spotify client ids are 32 hex characters. Anything else still works at
// the provider's discretion, so a mismatch is a warning, not an error.
var clientIDPattern = regexp.MustCompile(`^[0-9a-fA-F]{32}$`)

// Credentials holds the application's provider credentials, loaded once
// at startup and immutable for the process lifetime.
type Credentials struct {
	ClientID     string
	ClientSecret string
	RedirectURI  string
}

// Validate checks credential presence and format.
//
// A missing client id or secret is an error. A client id that does not
// look like a Spotify id produces a non-fatal warning string.
func (c Credentials) Validate() (string, error) {
	if c.ClientID == "" || c.ClientSecret == "" {
		return "", fmt.Errorf("%w: client_id and client_secret must be set", shared.ErrMissingCredentials)
	}
	if !clientIDPattern.MatchString(c.ClientID) {
		return "client_id format looks unusual (expected 32 hex characters); double-check it", nil
	}
	return "", nil
}

// OAuthConfig builds the oauth2 configuration for the given scope.
func (c Credentials) OAuthConfig(scope string) *oauth2.Config {
	if scope == "" {
		scope = DefaultScope
	}
	return &oauth2.Config{
		ClientID:     c.ClientID,
		ClientSecret: c.ClientSecret,
		RedirectURL:  c.RedirectURI,
		Scopes:       []string{scope},
		Endpoint: oauth2.Endpoint{
			AuthURL:  spotifyAuthURL,
			TokenURL: spotifyTokenURL,
		},
	}
}
