package shared

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfig(t *testing.T) {
	t.Run("Valid File", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.toml")
		content := `
[credentials.spotify]
client_id = "abc123"
client_secret = "secret"
redirect_uri = "http://localhost:8888/callback"

[store]
backend = "sqlite"
database_path = "./test.db"

[recommend]
max_tracks = 15
language = "hi"
theme = "light"
`
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatalf("failed to write config: %v", err)
		}

		config, err := LoadConfig(path)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if config.Credentials.Spotify.ClientID != "abc123" {
			t.Errorf("unexpected client id %q", config.Credentials.Spotify.ClientID)
		}
		if config.Store.Backend != "sqlite" {
			t.Errorf("unexpected backend %q", config.Store.Backend)
		}
		if config.Recommend.MaxTracks != 15 {
			t.Errorf("unexpected max_tracks %d", config.Recommend.MaxTracks)
		}
		if config.Recommend.Theme != "light" {
			t.Errorf("unexpected theme %q", config.Recommend.Theme)
		}
	})

	t.Run("Missing File", func(t *testing.T) {
		if _, err := LoadConfig(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
			t.Error("expected error for missing file")
		}
	})

	t.Run("Malformed TOML", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.toml")
		if err := os.WriteFile(path, []byte("[broken"), 0644); err != nil {
			t.Fatalf("failed to write config: %v", err)
		}
		if _, err := LoadConfig(path); err == nil {
			t.Error("expected error for malformed TOML")
		}
	})
}

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	if config.Store.Backend != "file" {
		t.Errorf("expected file backend, got %q", config.Store.Backend)
	}
	if config.Store.TokenPath == "" {
		t.Error("expected a default token path")
	}
	if config.Recommend.MaxTracks != 20 {
		t.Errorf("expected max_tracks 20, got %d", config.Recommend.MaxTracks)
	}
	if config.Recommend.Language != "en" {
		t.Errorf("expected language en, got %q", config.Recommend.Language)
	}
}

func TestCreateConfigFile(t *testing.T) {
	t.Run("Creates File", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.toml")

		if err := CreateConfigFile(path); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if _, err := LoadConfig(path); err != nil {
			t.Errorf("created file should parse: %v", err)
		}
	})

	t.Run("Refuses To Overwrite", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.toml")
		if err := CreateConfigFile(path); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if err := CreateConfigFile(path); err == nil {
			t.Error("expected error for existing file")
		}
	})
}

func TestApplyEnv(t *testing.T) {
	t.Run("Environment Wins Over File", func(t *testing.T) {
		t.Setenv("SPOTIFY_CLIENT_ID", "env-id")
		t.Setenv("SPOTIFY_CLIENT_SECRET", `"env-secret"`)
		t.Setenv("SPOTIFY_REDIRECT_URI", "")
		t.Setenv("SPOTIFY_REFRESH_TOKEN", "env-rt")

		config := DefaultConfig()
		config.Credentials.Spotify.ClientID = "file-id"
		config.Credentials.Spotify.RedirectURI = "file-uri"
		config.ApplyEnv()

		if config.Credentials.Spotify.ClientID != "env-id" {
			t.Errorf("expected env-id, got %q", config.Credentials.Spotify.ClientID)
		}
		if config.Credentials.Spotify.ClientSecret != "env-secret" {
			t.Errorf("expected quotes stripped, got %q", config.Credentials.Spotify.ClientSecret)
		}
		if config.Credentials.Spotify.RedirectURI != "file-uri" {
			t.Errorf("empty env value must not clobber, got %q", config.Credentials.Spotify.RedirectURI)
		}
		if config.Credentials.Spotify.RefreshToken != "env-rt" {
			t.Errorf("expected env-rt, got %q", config.Credentials.Spotify.RefreshToken)
		}
	})
}

func TestGetenvClean(t *testing.T) {
	cases := map[string]string{
		"plain":        "plain",
		"  padded  ":   "padded",
		`"quoted"`:     "quoted",
		`'single'`:     "single",
		`" inner "`:    "inner",
		`"`:            `"`,
		`"mismatched'`: `"mismatched'`,
	}

	for value, want := range cases {
		t.Setenv("MOODIFY_TEST_VAR", value)
		if got := GetenvClean("MOODIFY_TEST_VAR"); got != want {
			t.Errorf("GetenvClean(%q) = %q, want %q", value, got, want)
		}
	}
}
