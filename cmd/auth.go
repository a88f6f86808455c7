package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/moodify-app/moodify/internal/auth"
	"github.com/moodify-app/moodify/internal/shared"
	"github.com/urfave/cli/v3"
)

// AuthLogin validates the credentials, builds the consent URL, runs the
// best-effort pre-flight, and opens the browser. The user pastes the
// code from the redirect back via `auth code`.
func (r *Runner) AuthLogin(ctx context.Context, cmd *cli.Command) error {
	warning, err := r.credentials.Validate()
	if err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	if warning != "" {
		r.logger.Warn(warning)
	}

	consentURL := auth.BuildConsentURL(r.credentials, cmd.String("scope"))

	// Diagnostic only: a rejection here is worth surfacing, but the
	// flow continues since the check matches unstable provider text.
	if err := r.probe.Verify(ctx, consentURL); err != nil {
		if errors.Is(err, shared.ErrConsentRejected) {
			r.logger.Warnf("provider rejected the consent URL; check the app settings in the developer dashboard: %v", err)
		} else {
			r.logger.Warnf("could not verify consent URL: %v", err)
		}
	}

	if !cmd.Bool("no-browser") {
		if err := r.openBrowser(consentURL); err != nil {
			r.logger.Warnf("failed to open browser automatically: %v", err)
		}
	}

	r.writePlainln("→ Authorize in the browser, then run: moodify auth code <code>")
	r.writePlain("If the browser did not open, paste this URL manually:\n\n%s\n", consentURL)

	return nil
}

// AuthCode exchanges a pasted authorization code for the initial tokens.
func (r *Runner) AuthCode(ctx context.Context, cmd *cli.Command) error {
	code := cmd.StringArg("code")
	if code == "" {
		return fmt.Errorf("%w: authorization code", shared.ErrMissingArgument)
	}

	record, err := r.manager.ExchangeCode(ctx, code)
	if err != nil {
		return fmt.Errorf("login failed: %w", err)
	}

	r.logger.Info("authorization code exchanged", "expires_at", record.ExpiresAt)
	r.writePlainln("✓ Login successful, token saved")
	r.writePlain("You can now use: moodify recommend --mood happy\n")

	return nil
}

// AuthStatus reports the token state without any network calls.
func (r *Runner) AuthStatus(ctx context.Context, cmd *cli.Command) error {
	status := r.manager.Status()

	if !status.HasToken {
		r.writePlain("Authentication: ✗ Not logged in\n")
		return nil
	}

	r.writePlain("Authentication: ✓ Token present\n")
	if status.Usable {
		r.writePlain("Status: valid until %s\n", status.ExpiresAt.Format(time.RFC1123))
	} else {
		r.writePlain("Status: expired (will refresh on next use)\n")
	}
	if status.HasRefreshToken {
		r.writePlain("Refresh token: ✓ available\n")
	} else {
		r.writePlain("Refresh token: ✗ missing, a new login will be required\n")
	}

	return nil
}

// AuthLogout clears the token state. Running it twice is fine.
func (r *Runner) AuthLogout(ctx context.Context, cmd *cli.Command) error {
	if err := r.manager.Logout(); err != nil {
		return fmt.Errorf("logout failed: %w", err)
	}

	r.writePlain("🔓 Logged out, token record removed\n")
	return nil
}
