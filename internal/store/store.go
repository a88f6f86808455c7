// package store provides durable persistence for the OAuth token record.
//
// Two backends implement [TokenStore]: a JSON file (the default) and a
// single-row SQLite table. Both round-trip provider-returned fields
// verbatim so nothing the token endpoint sends is lost.
package store

import (
	"encoding/json"
	"fmt"
	"time"
)

// DefaultLifetime is the assumed token lifetime in seconds when the
// provider omits expires_in from its response.
const DefaultLifetime = 3600

// TokenStore defines durable read/write of the token record.
type TokenStore interface {
	// Load returns the persisted record, or (nil, nil) when none exists.
	Load() (*Record, error)
	// Save writes the record, replacing any previous one.
	Save(record *Record) error
	// Delete removes the persisted record. Absence is not an error.
	Delete() error
}

// Record is the persisted token record.
//
// The typed fields cover what the token lifecycle needs; raw keeps the
// full provider response so unknown fields survive a save/load cycle.
type Record struct {
	AccessToken  string
	RefreshToken string
	ExpiresIn    int   // seconds, as returned by the provider (0 when absent)
	ExpiresAt    int64 // computed absolute epoch seconds

	raw map[string]json.RawMessage
}

// ParseProviderResponse builds a Record from a token endpoint response
// body, computing ExpiresAt from now plus the server-reported lifetime
// (DefaultLifetime when the response omits expires_in).
func ParseProviderResponse(body []byte, now time.Time) (*Record, error) {
	var r Record
	if err := json.Unmarshal(body, &r); err != nil {
		return nil, fmt.Errorf("failed to parse token response: %w", err)
	}
	if r.AccessToken == "" {
		return nil, fmt.Errorf("token response has no access_token")
	}

	lifetime := r.ExpiresIn
	if lifetime <= 0 {
		lifetime = DefaultLifetime
	}
	r.ExpiresAt = now.Unix() + int64(lifetime)

	return &r, nil
}

// UnmarshalJSON decodes the typed fields and retains every key of the
// payload in raw.
func (r *Record) UnmarshalJSON(data []byte) error {
	aux := struct {
		AccessToken  string `json:"access_token"`
		RefreshToken string `json:"refresh_token"`
		ExpiresIn    int    `json:"expires_in"`
		ExpiresAt    int64  `json:"expires_at"`
	}{}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	raw := map[string]json.RawMessage{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	r.AccessToken = aux.AccessToken
	r.RefreshToken = aux.RefreshToken
	r.ExpiresIn = aux.ExpiresIn
	r.ExpiresAt = aux.ExpiresAt
	r.raw = raw
	return nil
}

// MarshalJSON emits the raw provider fields with the typed fields
// layered on top, so mutations (retained refresh token, computed
// expires_at) always win over stale raw values.
func (r *Record) MarshalJSON() ([]byte, error) {
	out := make(map[string]json.RawMessage, len(r.raw)+4)
	for k, v := range r.raw {
		out[k] = v
	}

	set := func(key string, value any) error {
		b, err := json.Marshal(value)
		if err != nil {
			return err
		}
		out[key] = b
		return nil
	}

	if err := set("access_token", r.AccessToken); err != nil {
		return nil, err
	}
	if r.RefreshToken != "" {
		if err := set("refresh_token", r.RefreshToken); err != nil {
			return nil, err
		}
	}
	if r.ExpiresIn > 0 {
		if err := set("expires_in", r.ExpiresIn); err != nil {
			return nil, err
		}
	}
	if err := set("expires_at", r.ExpiresAt); err != nil {
		return nil, err
	}

	return json.Marshal(out)
}
