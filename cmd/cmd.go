// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

// authCommand handles authentication operations
func authCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "auth",
		Usage: "Manage Spotify authentication",
		Commands: []*cli.Command{
			{
				Name:  "login",
				Usage: "Build the consent URL, check it, and open the browser",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "scope",
						Usage: "OAuth scope to request",
					},
					&cli.BoolFlag{
						Name:  "no-browser",
						Usage: "Print the consent URL without opening a browser",
					},
				},
				Action: r.AuthLogin,
			},
			{
				Name:  "code",
				Usage: "Exchange a pasted authorization code for tokens",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "code"},
				},
				Action: r.AuthCode,
			},
			{
				Name:   "status",
				Usage:  "Show current token state without network calls",
				Action: r.AuthStatus,
			},
			{
				Name:   "logout",
				Usage:  "Clear the token state and delete the persisted record",
				Action: r.AuthLogout,
			},
		},
	}
}

// recommendCommand runs the recommendation pipeline once.
func recommendCommand(r *Runner) *cli.Command {
	language := r.config.Recommend.Language
	if language == "" {
		language = "en"
	}

	return &cli.Command{
		Name:    "recommend",
		Aliases: []string{"rec"},
		Usage:   "Resolve a mood into a ranked track list",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "mood",
				Aliases: []string{"m"},
				Usage:   "Free-form mood text",
				Value:   "happy",
			},
			&cli.StringFlag{
				Name:    "language",
				Aliases: []string{"l"},
				Usage:   "Language code (en, hi, ta)",
				Value:   language,
			},
			&cli.IntFlag{
				Name:  "limit",
				Usage: "Maximum number of tracks to fetch for this run",
			},
			&cli.StringFlag{
				Name:  "theme",
				Usage: "Display theme (dark or light)",
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output raw JSON",
			},
			&cli.BoolFlag{
				Name:  "pretty",
				Usage: "Pretty-print JSON output",
				Value: true,
			},
		},
		Action: r.Recommend,
	}
}

// setupCommand handles configuration bootstrap.
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Write an example config and initialize storage",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to configuration file",
				Value:   "config.toml",
			},
		},
		Action: r.Setup,
	}
}

// tuiCommand returns the top-level TUI command for interactive use.
func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "tui",
		Aliases: []string{"interactive", "ui"},
		Usage:   "Launch the interactive mood picker",
		Action:  r.TUI,
	}
}
