package auth

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/moodify-app/moodify/internal/shared"
	"golang.org/x/oauth2"
)

const (
	preflightTimeout = 8 * time.Second

	// Pre-flight responses are only inspected for known rejection
	// phrases; cap how much of the body we read and quote back.
	preflightBodyLimit = 64 << 10
	rejectionQuoteLen  = 300
)

// BuildConsentURL constructs the provider consent URL for the given
// scope. The show_dialog flag forces the consent dialog to appear even
// for previously authorized users; no state parameter is included since
// the flow relies on manual code paste rather than a callback listener.
func BuildConsentURL(creds Credentials, scope string) string {
	cfg := creds.OAuthConfig(scope)
	return cfg.AuthCodeURL("", oauth2.SetAuthURLParam("show_dialog", "true"))
}

// ConsentProbe performs a best-effort pre-flight check of a consent URL.
//
// This is a diagnostic, not a correctness gate: it matches substrings of
// the provider's response body, which is not a stable contract. Callers
// should warn on rejection and proceed.
type ConsentProbe struct {
	httpClient *http.Client
}

// NewConsentProbe creates a probe. A nil client gets a default with the
// pre-flight timeout applied.
func NewConsentProbe(client *http.Client) *ConsentProbe {
	if client == nil {
		client = &http.Client{Timeout: preflightTimeout}
	}
	return &ConsentProbe{httpClient: client}
}

// Verify issues a GET against the consent URL and reports whether the
// provider rejected it. Known rejection phrases in the body and any
// status outside {200, 302, 303} count as rejection; transport failures
// surface as ErrNetwork.
func (p *ConsentProbe) Verify(ctx context.Context, consentURL string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, consentURL, nil)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrInvalidArgument, err)
	}
	// The authorize page is picky about browserless user agents.
	req.Header.Set("User-Agent", "Mozilla/5.0")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: could not contact provider: %v", shared.ErrNetwork, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, preflightBodyLimit))
	if err != nil {
		return fmt.Errorf("%w: failed to read provider response: %v", shared.ErrNetwork, err)
	}
	body := strings.TrimSpace(string(raw))

	if strings.Contains(body, "INVALID_CLIENT") || strings.Contains(body, "Invalid redirect URI") {
		return fmt.Errorf("%w: %s", shared.ErrConsentRejected, truncate(body, rejectionQuoteLen))
	}

	switch resp.StatusCode {
	case http.StatusOK, http.StatusFound, http.StatusSeeOther:
		return nil
	default:
		return fmt.Errorf("%w: provider returned HTTP %d: %s", shared.ErrConsentRejected, resp.StatusCode, truncate(body, 200))
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
