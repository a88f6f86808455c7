package shared

import "fmt"

var (
	// Configuration errors
	ErrMissingConfig      = fmt.Errorf("configuration not found")
	ErrInvalidConfig      = fmt.Errorf("invalid configuration")
	ErrMissingCredentials = fmt.Errorf("missing credentials")
	ErrInvalidCredentials = fmt.Errorf("invalid credentials")

	// Authentication errors
	ErrConsentRejected  = fmt.Errorf("consent URL rejected by provider")
	ErrExchangeFailed   = fmt.Errorf("authorization code exchange failed")
	ErrRefreshFailed    = fmt.Errorf("token refresh failed")
	ErrNoRefreshToken   = fmt.Errorf("no refresh token available")
	ErrNotAuthenticated = fmt.Errorf("not authenticated")

	// Pipeline errors
	ErrNoPlaylistFound = fmt.Errorf("no playlist found")
	ErrNoTracksFound   = fmt.Errorf("no tracks found")

	// API and transport errors
	ErrAPIRequest = fmt.Errorf("API request failed")
	ErrNetwork    = fmt.Errorf("network failure")

	// Input validation errors
	ErrInvalidInput    = fmt.Errorf("invalid input")
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrInvalidArgument = fmt.Errorf("invalid argument")
)
