package auth

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/moodify-app/moodify/internal/shared"
	"github.com/moodify-app/moodify/internal/store"
)

const (
	// expirySkew is the safety margin subtracted from expiry so a token
	// cannot expire mid-request.
	expirySkew = 60 * time.Second

	tokenTimeout = 15 * time.Second
)

// Manager owns the process-wide token state: acquisition via code
// exchange, expiry tracking, auto-refresh, persistence, and revocation.
//
// All state access goes through an internal lock so the refresh branch
// cannot race when the manager is shared across goroutines.
type Manager struct {
	creds      Credentials
	store      store.TokenStore
	httpClient *http.Client
	logger     *log.Logger
	tokenURL   string
	now        func() time.Time

	mu    sync.RWMutex
	state *store.Record
}

// ManagerOpts contains configuration options for creating a Manager.
type ManagerOpts struct {
	Credentials Credentials
	Store       store.TokenStore
	HTTPClient  *http.Client
	Logger      *log.Logger
	TokenURL    string // overrides the provider token endpoint, for tests
	Now         func() time.Time

	// SeedRefreshToken is an environment-supplied initial refresh token.
	// It is read and then dropped before first use, so it never reaches
	// the token state. TODO: confirm whether the seed should instead
	// survive until a persisted record exists.
	SeedRefreshToken string
}

// NewManager creates a token lifecycle manager, loading the persisted
// record if one exists. A corrupt or unreadable record is logged and
// ignored rather than failing startup.
func NewManager(opts ManagerOpts) *Manager {
	if opts.HTTPClient == nil {
		opts.HTTPClient = &http.Client{Timeout: tokenTimeout}
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.TokenURL == "" {
		opts.TokenURL = spotifyTokenURL
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	opts.SeedRefreshToken = ""

	m := &Manager{
		creds:      opts.Credentials,
		store:      opts.Store,
		httpClient: opts.HTTPClient,
		logger:     opts.Logger,
		tokenURL:   opts.TokenURL,
		now:        opts.Now,
	}

	record, err := m.store.Load()
	if err != nil {
		m.logger.Warnf("ignoring unreadable token record: %v", err)
	} else {
		m.state = record
	}

	return m
}

// GetValidToken returns a usable access token.
//
// While the current token has more than the expiry skew of lifetime
// left it is returned unchanged with no network call. Otherwise exactly
// one refresh attempt is made; on success the new state is persisted
// and returned. With no refresh token, or on refresh failure, the
// caller gets ErrNotAuthenticated. No retries.
func (m *Manager) GetValidToken(ctx context.Context) (string, error) {
	m.mu.RLock()
	if token, ok := m.usableLocked(); ok {
		m.mu.RUnlock()
		return token, nil
	}
	m.mu.RUnlock()

	m.mu.Lock()
	defer m.mu.Unlock()

	// A concurrent caller may have refreshed while we waited for the lock.
	if token, ok := m.usableLocked(); ok {
		return token, nil
	}

	if m.state == nil || m.state.RefreshToken == "" {
		return "", fmt.Errorf("%w: %w", shared.ErrNotAuthenticated, shared.ErrNoRefreshToken)
	}

	record, err := m.refresh(ctx, m.state.RefreshToken)
	if err != nil {
		return "", fmt.Errorf("%w: %w", shared.ErrNotAuthenticated, err)
	}

	// The provider only rotates the refresh token sometimes; keep the
	// old one when the response omits it.
	if record.RefreshToken == "" {
		record.RefreshToken = m.state.RefreshToken
	}

	if err := m.store.Save(record); err != nil {
		return "", fmt.Errorf("failed to persist refreshed token: %w", err)
	}
	m.state = record

	m.logger.Debug("access token refreshed", "expires_at", record.ExpiresAt)
	return record.AccessToken, nil
}

// ExchangeCode trades an authorization code for the initial token pair.
// Non-200 responses surface the raw provider error body.
func (m *Manager) ExchangeCode(ctx context.Context, code string) (*store.Record, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, fmt.Errorf("%w: authorization code is empty", shared.ErrMissingArgument)
	}

	form := url.Values{
		"grant_type":    {"authorization_code"},
		"code":          {code},
		"redirect_uri":  {m.creds.RedirectURI},
		"client_id":     {m.creds.ClientID},
		"client_secret": {m.creds.ClientSecret},
	}

	body, status, err := m.postForm(ctx, form)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrNetwork, err)
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d: %s", shared.ErrExchangeFailed, status, string(body))
	}

	record, err := store.ParseProviderResponse(body, m.now())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrExchangeFailed, err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.store.Save(record); err != nil {
		return nil, fmt.Errorf("failed to persist token state: %w", err)
	}
	m.state = record

	return record, nil
}

// Logout clears the in-memory token state and deletes the persisted
// record. Idempotent: absence of the record is not an error.
func (m *Manager) Logout() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.state = nil
	if err := m.store.Delete(); err != nil {
		return fmt.Errorf("failed to clear persisted token: %w", err)
	}
	return nil
}

// Status describes the current token state without any network calls.
type Status struct {
	HasToken        bool
	HasRefreshToken bool
	Usable          bool // token has more than the expiry skew of lifetime left
	ExpiresAt       time.Time
}

// Status reports the manager's view of the token state.
func (m *Manager) Status() Status {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var s Status
	if m.state == nil {
		return s
	}
	s.HasToken = m.state.AccessToken != ""
	s.HasRefreshToken = m.state.RefreshToken != ""
	s.ExpiresAt = time.Unix(m.state.ExpiresAt, 0)
	_, s.Usable = m.usableLocked()
	return s
}

// usableLocked reports whether the current access token still has more
// than the expiry skew of lifetime left. Callers must hold the lock.
func (m *Manager) usableLocked() (string, bool) {
	if m.state == nil || m.state.AccessToken == "" {
		return "", false
	}
	if m.now().Unix() < m.state.ExpiresAt-int64(expirySkew.Seconds()) {
		return m.state.AccessToken, true
	}
	return "", false
}

// refresh performs the single refresh attempt against the token endpoint.
func (m *Manager) refresh(ctx context.Context, refreshToken string) (*store.Record, error) {
	form := url.Values{
		"grant_type":    {"refresh_token"},
		"refresh_token": {refreshToken},
		"client_id":     {m.creds.ClientID},
		"client_secret": {m.creds.ClientSecret},
	}

	body, status, err := m.postForm(ctx, form)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrRefreshFailed, err)
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d", shared.ErrRefreshFailed, status)
	}

	record, err := store.ParseProviderResponse(body, m.now())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrRefreshFailed, err)
	}
	return record, nil
}

func (m *Manager) postForm(ctx context.Context, form url.Values) ([]byte, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.tokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, 0, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := m.httpClient.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to read response: %w", err)
	}

	return body, resp.StatusCode, nil
}
