package shared

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
)

//go:embed config.example.toml
var exampleConf []byte

// Config represents the application configuration loaded from a TOML file.
type Config struct {
	Credentials CredentialsConfig `toml:"credentials"`
	Store       StoreConfig       `toml:"store"`
	Recommend   RecommendConfig   `toml:"recommend"`
}

// CredentialsConfig contains service-specific credentials.
type CredentialsConfig struct {
	Spotify SpotifyConfig `toml:"spotify"`
}

// SpotifyConfig contains Spotify API credentials.
type SpotifyConfig struct {
	ClientID     string `toml:"client_id"`
	ClientSecret string `toml:"client_secret"`
	RedirectURI  string `toml:"redirect_uri"`

	// RefreshToken may be seeded through the environment. It is read
	// during startup but never reaches the token state; see auth.NewManager.
	RefreshToken string `toml:"-"`
}

// StoreConfig selects and configures the token persistence backend.
type StoreConfig struct {
	Backend      string `toml:"backend"`
	TokenPath    string `toml:"token_path"`
	DatabasePath string `toml:"database_path"`
}

// RecommendConfig contains defaults for the recommendation pipeline.
type RecommendConfig struct {
	MaxTracks int    `toml:"max_tracks"`
	Language  string `toml:"language"`
	Theme     string `toml:"theme"`
}

// LoadConfig reads and parses a TOML configuration file from the specified path.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := toml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return &config, nil
}

// DefaultConfig returns a Config with sensible defaults loaded from the embedded example config.
func DefaultConfig() *Config {
	var config Config
	if err := toml.Unmarshal(exampleConf, &config); err != nil {
		panic(fmt.Sprintf("failed to parse embedded default config: %v", err))
	}
	return &config
}

// CreateConfigFile creates a config.toml file at the specified path using the embedded example config.
func CreateConfigFile(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}

	if err := os.WriteFile(path, exampleConf, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// ApplyEnv overlays SPOTIFY_* environment variables onto the config.
// Values win over the file so deployments can keep secrets out of it.
func (c *Config) ApplyEnv() {
	if v := GetenvClean("SPOTIFY_CLIENT_ID"); v != "" {
		c.Credentials.Spotify.ClientID = v
	}
	if v := GetenvClean("SPOTIFY_CLIENT_SECRET"); v != "" {
		c.Credentials.Spotify.ClientSecret = v
	}
	if v := GetenvClean("SPOTIFY_REDIRECT_URI"); v != "" {
		c.Credentials.Spotify.RedirectURI = v
	}
	if v := GetenvClean("SPOTIFY_REFRESH_TOKEN"); v != "" {
		c.Credentials.Spotify.RefreshToken = v
	}
}

// GetenvClean reads an environment variable, trims whitespace, and strips
// one level of matching single or double quotes. Values pasted into .env
// files frequently carry quotes that must not reach the provider.
func GetenvClean(key string) string {
	val := strings.TrimSpace(os.Getenv(key))
	if len(val) >= 2 {
		if (strings.HasPrefix(val, `"`) && strings.HasSuffix(val, `"`)) ||
			(strings.HasPrefix(val, `'`) && strings.HasSuffix(val, `'`)) {
			val = strings.TrimSpace(val[1 : len(val)-1])
		}
	}
	return val
}
