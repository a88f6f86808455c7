package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/moodify-app/moodify/internal/render"
	"github.com/moodify-app/moodify/internal/shared"
	"github.com/urfave/cli/v3"
)

// Recommend runs the pipeline once and renders the result.
func (r *Runner) Recommend(ctx context.Context, cmd *cli.Command) error {
	moodText := cmd.String("mood")
	language := cmd.String("language")
	limit := cmd.Int("limit")
	useJSON := cmd.Bool("json")
	pretty := cmd.Bool("pretty")

	themeName := cmd.String("theme")
	if themeName == "" {
		themeName = r.config.Recommend.Theme
	}

	result, err := r.resolver.Recommend(ctx, moodText, language, limit)
	if err != nil {
		switch {
		case errors.Is(err, shared.ErrNotAuthenticated):
			return fmt.Errorf("not logged in, run: moodify auth login (%w)", err)
		case errors.Is(err, shared.ErrNoPlaylistFound), errors.Is(err, shared.ErrNoTracksFound):
			return fmt.Errorf("no songs found: %w", err)
		default:
			return fmt.Errorf("recommendation failed: %w", err)
		}
	}

	if useJSON {
		return r.writeJSON(result, pretty)
	}

	renderer := render.New(render.ParseTheme(themeName))
	return r.writePlain("%s", renderer.Render(result))
}
