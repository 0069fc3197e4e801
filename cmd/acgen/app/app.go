// Package app provides the application context and dependency management
// for the acgen CLI. It centralizes configuration, logging and the host
// registry the autocomplete commands generate scripts for.
package app

import (
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/agentstation/acgen/cmd/application"
	"github.com/agentstation/acgen/pkg/errors"
	"github.com/agentstation/acgen/pkg/logging"
	"github.com/agentstation/acgen/pkg/registry"
)

// App represents the acgen application with all its dependencies.
type App struct {
	// Version information
	version string
	commit  string
	date    string
	builtBy string

	config *Config
	logger *zerolog.Logger
	fs     afero.Fs
	out    io.Writer

	// root is the command tree Host reads when no manifest is configured
	root *cobra.Command

	// Host registry (lazy-initialized, singleton)
	mu   sync.RWMutex
	host *registry.Config
}

// New creates a new App instance with the given version information.
// The app is initialized with default configuration that can be
// customized using functional options.
func New(version, commit, date, builtBy string, opts ...Option) (*App, error) {
	app := &App{
		version: version,
		commit:  commit,
		date:    date,
		builtBy: builtBy,
		fs:      afero.NewOsFs(),
	}

	config, err := LoadConfig()
	if err != nil {
		return nil, errors.WrapConfig("config", err)
	}
	app.config = config

	logger := NewLogger(config)
	app.logger = &logger
	logging.SetDefault(logger)

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

// Fs returns the filesystem scripts are written to.
func (a *App) Fs() afero.Fs {
	return a.fs
}

// SeparatorOverride returns the AUTOCOMPLETE_TOPIC_SEPARATOR value.
func (a *App) SeparatorOverride() string {
	return a.config.SeparatorOverride
}

// Host returns the host CLI registry, loading it lazily on first use.
// A configured manifest is read from the app filesystem; otherwise the
// registry is derived from acgen's own command tree.
func (a *App) Host() (*registry.Config, error) {
	a.mu.RLock()
	if a.host != nil {
		host := a.host
		a.mu.RUnlock()
		return host, nil
	}
	a.mu.RUnlock()

	a.mu.Lock()
	defer a.mu.Unlock()

	if a.host != nil {
		return a.host, nil
	}

	host, err := a.loadHost()
	if err != nil {
		return nil, err
	}
	if err := host.Validate(); err != nil {
		return nil, err
	}

	a.host = host
	return host, nil
}

// loadHost builds the registry. Config values only fill what the manifest
// leaves empty.
func (a *App) loadHost() (*registry.Config, error) {
	var host *registry.Config
	if a.config.Manifest != "" {
		loaded, err := registry.LoadManifest(a.fs, a.config.Manifest)
		if err != nil {
			return nil, err
		}
		host = loaded
	} else {
		root := a.root
		if root == nil {
			root = a.createRootCommand()
		}
		host = registry.FromCobra(root, registry.CobraOptions{
			Bin:            a.config.Bin,
			TopicSeparator: registry.Separator(a.config.TopicSeparator),
		})
	}

	if host.Shell == "" {
		host.Shell = a.config.Shell
	}
	if host.TopicSeparator == "" {
		host.TopicSeparator = registry.Separator(a.config.TopicSeparator)
	}
	if host.TopicSeparator == "" {
		host.TopicSeparator = registry.SeparatorSpace
	}
	if host.CacheDir == "" {
		dir, err := defaultCacheDir(a.config.CacheDir, host.Bin)
		if err != nil {
			return nil, err
		}
		host.CacheDir = dir
	}
	return host, nil
}

// defaultCacheDir returns configured, or <user cache dir>/<bin>.
func defaultCacheDir(configured, bin string) (string, error) {
	if configured != "" {
		return configured, nil
	}
	base, err := os.UserCacheDir()
	if err != nil {
		return "", errors.NewConfigError("cache_dir", "cannot determine user cache directory", err)
	}
	return filepath.Join(base, bin), nil
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

// WithFs sets the filesystem manifests are read from and scripts written to.
func WithFs(fs afero.Fs) Option {
	return func(a *App) error {
		a.fs = fs
		return nil
	}
}

// WithOutput redirects command output, stdout by default.
func WithOutput(w io.Writer) Option {
	return func(a *App) error {
		a.out = w
		return nil
	}
}

// WithHost sets a fixed host registry (useful for testing).
func WithHost(host *registry.Config) Option {
	return func(a *App) error {
		a.host = host
		return nil
	}
}

// Ensure App implements application.Application at compile time.
var _ application.Application = (*App)(nil)
