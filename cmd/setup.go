package main

import (
	"context"
	"fmt"

	"github.com/moodify-app/moodify/internal/shared"
	"github.com/urfave/cli/v3"
)

// Setup writes the example config file and, when the sqlite backend is
// selected, creates the database file and runs pending migrations.
func (r *Runner) Setup(ctx context.Context, cmd *cli.Command) error {
	path := cmd.String("config")

	if err := shared.CreateConfigFile(path); err != nil {
		return fmt.Errorf("setup failed: %w", err)
	}
	if err := r.writePlainln("Created config file at %s", path); err != nil {
		return err
	}

	if r.config.Store.Backend == "sqlite" {
		db, err := shared.NewDatabase(r.config.Store.DatabasePath)
		if err != nil {
			return fmt.Errorf("setup failed: %w", err)
		}
		defer db.Close()

		if err := shared.RunMigrations(db); err != nil {
			return fmt.Errorf("setup failed: %w", err)
		}
		if err := r.writePlainln("Initialized database at %s", r.config.Store.DatabasePath); err != nil {
			return err
		}
	}

	return r.writePlainln("Edit the config with your Spotify credentials, then run: moodify auth login")
}
