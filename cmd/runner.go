package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/moodify-app/moodify/internal/auth"
	"github.com/moodify-app/moodify/internal/recommend"
	"github.com/moodify-app/moodify/internal/shared"
	"github.com/moodify-app/moodify/internal/store"
)

// TokenManager is the slice of auth.Manager the commands need.
type TokenManager interface {
	ExchangeCode(ctx context.Context, code string) (*store.Record, error)
	Logout() error
	Status() auth.Status
}

// Recommender runs the recommendation pipeline.
type Recommender interface {
	Recommend(ctx context.Context, moodText, languageCode string, limit int) (*recommend.Result, error)
}

// ConsentVerifier performs the best-effort consent URL pre-flight.
type ConsentVerifier interface {
	Verify(ctx context.Context, consentURL string) error
}

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config      *shared.Config
	credentials auth.Credentials
	manager     TokenManager
	resolver    Recommender
	probe       ConsentVerifier
	logger      *log.Logger
	output      io.Writer
	openBrowser func(url string) error
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config      *shared.Config
	Credentials auth.Credentials
	Manager     TokenManager
	Resolver    Recommender
	Probe       ConsentVerifier
	Logger      *log.Logger
	Output      io.Writer
	OpenBrowser func(url string) error
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Config == nil {
		opts.Config = shared.DefaultConfig()
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.OpenBrowser == nil {
		opts.OpenBrowser = shared.OpenBrowser
	}

	return &Runner{
		config:      opts.Config,
		credentials: opts.Credentials,
		manager:     opts.Manager,
		resolver:    opts.Resolver,
		probe:       opts.Probe,
		logger:      opts.Logger,
		output:      opts.Output,
		openBrowser: opts.OpenBrowser,
	}
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	var output []byte
	var err error

	if pretty {
		output, err = json.MarshalIndent(data, "", "  ")
	} else {
		output, err = json.Marshal(data)
	}

	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if _, err := r.output.Write(output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if _, err := r.output.Write([]byte("\n")); err != nil {
		return fmt.Errorf("failed to write newline: %w", err)
	}

	return nil
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainln(format string, args ...any) error {
	text := "\n" + fmt.Sprintf(format, args...) + "\n"
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
