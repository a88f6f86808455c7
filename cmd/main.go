package main

import (
	"context"
	"os"

	"github.com/moodify-app/moodify/internal/auth"
	"github.com/moodify-app/moodify/internal/recommend"
	"github.com/moodify-app/moodify/internal/services"
	"github.com/moodify-app/moodify/internal/shared"
	"github.com/moodify-app/moodify/internal/store"
	"github.com/urfave/cli/v3"
)

func main() {
	logger := shared.NewLogger(nil)

	config := shared.DefaultConfig()
	if _, err := os.Stat("config.toml"); err == nil {
		if loadedConfig, err := shared.LoadConfig("config.toml"); err == nil {
			config = loadedConfig
		} else {
			logger.Warnf("ignoring unreadable config.toml: %v", err)
		}
	}
	config.ApplyEnv()

	credentials := auth.Credentials{
		ClientID:     config.Credentials.Spotify.ClientID,
		ClientSecret: config.Credentials.Spotify.ClientSecret,
		RedirectURI:  config.Credentials.Spotify.RedirectURI,
	}

	tokenStore, cleanup, err := buildStore(config)
	if err != nil {
		logger.Fatalf("storage init failed: %v", err)
	}
	defer cleanup()

	manager := auth.NewManager(auth.ManagerOpts{
		Credentials:      credentials,
		Store:            tokenStore,
		Logger:           logger,
		SeedRefreshToken: config.Credentials.Spotify.RefreshToken,
	})

	spotify := services.NewSpotifyClient(services.SpotifyClientOpts{
		Tokens: manager,
		Logger: logger,
	})

	resolver := recommend.NewResolver(recommend.ResolverOpts{
		Tokens:    manager,
		Provider:  spotify,
		MaxTracks: config.Recommend.MaxTracks,
		Logger:    logger,
	})

	runner := NewRunner(RunnerOpts{
		Config:      config,
		Credentials: credentials,
		Manager:     manager,
		Resolver:    resolver,
		Probe:       auth.NewConsentProbe(nil),
		Logger:      logger,
	})

	app := &cli.Command{
		Name:    "moodify",
		Usage:   "Mood-based Spotify song recommendations",
		Version: "0.3.0",
		Commands: []*cli.Command{
			setupCommand(runner),
			authCommand(runner),
			recommendCommand(runner),
			tuiCommand(runner),
		},
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		logger.Fatalf("application error: %v", err)
	}
}

// buildStore selects the token persistence backend from config. The
// sqlite backend opens the database and applies pending migrations; the
// file backend is the default.
func buildStore(config *shared.Config) (store.TokenStore, func(), error) {
	noop := func() {}

	switch config.Store.Backend {
	case "sqlite":
		db, err := shared.NewDatabase(config.Store.DatabasePath)
		if err != nil {
			return nil, noop, err
		}
		if err := shared.RunMigrations(db); err != nil {
			db.Close()
			return nil, noop, err
		}
		return store.NewSQLiteStore(db), func() { db.Close() }, nil
	default:
		return store.NewFileStore(config.Store.TokenPath), noop, nil
	}
}
