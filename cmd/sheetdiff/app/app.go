// Package app provides the application context and dependency management
// for the sheetdiff CLI. It centralizes configuration, logging and the
// lifecycle of the comparison client.
package app

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/agentstation/sheetdiff"
	"github.com/agentstation/sheetdiff/internal/appcontext"
	"github.com/agentstation/sheetdiff/internal/cmd/cmdutil"
	"github.com/agentstation/sheetdiff/pkg/errors"
)

// App represents the sheetdiff application with all its dependencies.
type App struct {
	version string
	commit  string
	date    string
	builtBy string

	config *Config
	logger *zerolog.Logger

	// client is created lazily and shared
	mu     sync.RWMutex
	client sheetdiff.Client
}

// New creates a new App instance with the given version information.
// The app is initialized with the loaded configuration, which can be
// replaced using functional options.
func New(version, commit, date, builtBy string, opts ...Option) (*App, error) {
	app := &App{
		version: version,
		commit:  commit,
		date:    date,
		builtBy: builtBy,
	}

	config, err := LoadConfig("")
	if err != nil {
		return nil, errors.WrapConfig("config", err)
	}
	app.config = config

	logger := NewLogger(config)
	app.logger = &logger

	for _, opt := range opts {
		if err := opt(app); err != nil {
			return nil, err
		}
	}

	return app, nil
}

// Version returns the version information.
func (a *App) Version() string {
	return a.version
}

// Commit returns the git commit hash.
func (a *App) Commit() string {
	return a.commit
}

// Date returns the build date.
func (a *App) Date() string {
	return a.date
}

// BuiltBy returns the build system identifier.
func (a *App) BuiltBy() string {
	return a.builtBy
}

// Config returns the application configuration.
func (a *App) Config() *Config {
	return a.config
}

// Logger returns the application logger.
func (a *App) Logger() *zerolog.Logger {
	return a.logger
}

// OutputFormat returns the configured summary format.
func (a *App) OutputFormat() string {
	return a.config.Format
}

// NoColor reports whether colored output is disabled.
func (a *App) NoColor() bool {
	return a.config.NoColor
}

// Defaults returns the configured inputs and report path.
func (a *App) Defaults() appcontext.Defaults {
	return appcontext.Defaults{
		Input:  a.config.Input,
		InputB: a.config.InputB,
		SheetA: a.config.SheetA,
		SheetB: a.config.SheetB,
		Output: a.config.Output,
	}
}

// Client returns the client, creating it lazily if needed.
// This is thread-safe and ensures only one instance is created.
func (a *App) Client() (sheetdiff.Client, error) {
	a.mu.RLock()
	if a.client != nil {
		c := a.client
		a.mu.RUnlock()
		return c, nil
	}
	a.mu.RUnlock()

	a.mu.Lock()
	defer a.mu.Unlock()

	if a.client != nil {
		return a.client, nil
	}

	opts, err := a.clientOptions()
	if err != nil {
		return nil, err
	}
	c, err := sheetdiff.New(opts...)
	if err != nil {
		return nil, err
	}

	a.client = c
	return c, nil
}

// ClientWithOptions returns a new client built from the configuration and
// then opts. It is used by commands whose flags override the configuration.
func (a *App) ClientWithOptions(opts ...sheetdiff.Option) (sheetdiff.Client, error) {
	base, err := a.clientOptions()
	if err != nil {
		return nil, err
	}
	return sheetdiff.New(append(base, opts...)...)
}

// Shutdown performs graceful shutdown of the application. A comparison
// holds no background work, so only the log is flushed.
func (a *App) Shutdown(_ context.Context) error {
	a.logger.Debug().Msg("Shutting down")
	return nil
}

// clientOptions constructs client options from the app configuration.
func (a *App) clientOptions() ([]sheetdiff.Option, error) {
	var opts []sheetdiff.Option

	if a.config.Layout != "" {
		opts = append(opts, sheetdiff.WithLayoutFile(a.config.Layout))
	}

	if a.config.SheetA != "" && a.config.SheetB != "" {
		opts = append(opts, sheetdiff.WithSheets(a.config.SheetA, a.config.SheetB))
	}

	if a.config.Now != "" {
		now, err := cmdutil.ParseReferenceTime(a.config.Now)
		if err != nil {
			return nil, err
		}
		opts = append(opts, sheetdiff.WithReferenceTime(now))
	}

	if len(a.config.IgnoredFields) > 0 {
		opts = append(opts, sheetdiff.WithIgnoredFields(a.config.IgnoredFields...))
	}

	return opts, nil
}

// Option is a functional option for configuring the App.
type Option func(*App) error

// WithConfig sets a custom configuration.
func WithConfig(config *Config) Option {
	return func(a *App) error {
		a.config = config
		return nil
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(a *App) error {
		a.logger = logger
		return nil
	}
}

// WithClient sets a custom client (useful for testing).
func WithClient(c sheetdiff.Client) Option {
	return func(a *App) error {
		a.client = c
		return nil
	}
}

var _ appcontext.Interface = (*App)(nil)
