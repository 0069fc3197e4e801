package autocomplete

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"

	"github.com/agentstation/acgen/internal/syntaxcheck"
	"github.com/agentstation/acgen/pkg/constants"
	"github.com/agentstation/acgen/pkg/errors"
	"github.com/agentstation/acgen/pkg/logging"
	"github.com/agentstation/acgen/pkg/registry"
)

// Generator renders and writes the completion scripts of one host.
type Generator struct {
	host     *registry.Config
	meta     *Metadata
	paths    Paths
	fs       afero.Fs
	writer   *Writer
	override string
}

// Option configures a Generator.
type Option func(*Generator)

// WithFs sets the filesystem scripts are written to. Defaults to the OS filesystem.
func WithFs(fs afero.Fs) Option {
	return func(g *Generator) {
		g.fs = fs
	}
}

// WithSeparatorOverride forces colon mode when sep is ":", whatever the
// host separator is. Other values are ignored.
func WithSeparatorOverride(sep string) Option {
	return func(g *Generator) {
		g.override = sep
	}
}

// NewGenerator validates host and extracts its metadata once.
func NewGenerator(host *registry.Config, opts ...Option) (*Generator, error) {
	if host == nil {
		return nil, errors.NewValidationError("host", nil, "cannot be nil")
	}
	if err := host.Validate(); err != nil {
		return nil, err
	}
	if host.CacheDir == "" {
		return nil, errors.NewValidationError("cacheDir", host.CacheDir, "cannot be empty")
	}

	g := &Generator{
		host:  host,
		paths: Paths{CacheDir: host.CacheDir},
		fs:    afero.NewOsFs(),
	}
	for _, opt := range opts {
		opt(g)
	}
	g.writer = NewWriter(g.fs)
	g.meta = Extract(host, ResolveSeparator(host.TopicSeparator, g.override))
	return g, nil
}

// Metadata returns the extracted metadata snapshot.
func (g *Generator) Metadata() *Metadata {
	return g.meta
}

// Paths returns the cache layout scripts are written to.
func (g *Generator) Paths() Paths {
	return g.paths
}

// Render returns the artifacts of shell without writing them. Rendered
// bash is parsed before it is returned.
func (g *Generator) Render(shell Shell) (Artifacts, error) {
	r, err := RendererFor(shell)
	if err != nil {
		return Artifacts{}, err
	}
	filename := r.Filename(g.meta.Bin)

	setup, err := r.SetupScript(g.meta, g.paths)
	if err != nil {
		return Artifacts{}, err
	}
	completion, err := r.CompletionScript(g.meta)
	if err != nil {
		return Artifacts{}, err
	}
	if shell == Bash {
		if err := syntaxcheck.Bash(filename, completion); err != nil {
			return Artifacts{}, err
		}
	}

	return Artifacts{
		Shell:            shell,
		SetupPath:        g.paths.SetupFile(shell),
		SetupScript:      setup,
		CompletionPath:   g.paths.CompletionFile(shell, filename),
		CompletionScript: completion,
	}, nil
}

// Create renders and writes the scripts of every shell that applies to the
// host, in the order of Shells. It stops at the first failure or when ctx is
// done, leaving the shells already written in place.
func (g *Generator) Create(ctx context.Context) error {
	ctx = logging.WithBin(ctx, g.meta.Bin)

	activity, closeLog, err := g.openActivityLog()
	if err != nil {
		return err
	}
	defer closeLog()

	for _, shell := range Shells() {
		if err := ctx.Err(); err != nil {
			return err
		}
		r, err := RendererFor(shell)
		if err != nil {
			return err
		}
		logger := logging.FromContext(logging.WithShell(ctx, shell.String()))
		if !r.ShouldGenerate(g.host.Shell, g.meta.Separator) {
			logger.Debug().Msg("Skipping completion")
			continue
		}

		logger.Debug().Msg("Generating completion")
		artifacts, err := g.Render(shell)
		if err != nil {
			return fmt.Errorf("rendering %s completion: %w", shell, err)
		}
		if err := g.writer.Write(artifacts); err != nil {
			return fmt.Errorf("writing %s completion: %w", shell, err)
		}

		logger.Info().
			Str("path", artifacts.CompletionPath).
			Msg("Wrote completion")
		activity.Log().
			Str("shell", shell.String()).
			Str("setup", artifacts.SetupPath).
			Str("completion", artifacts.CompletionPath).
			Msg("generated completion")
	}
	return nil
}

// Script returns the profile snippet for shell, surrounded by a newline and
// a trailing "# <bin> autocomplete setup" comment. An empty shell falls back
// to the host shell.
func (g *Generator) Script(shell string) (string, error) {
	if shell == "" {
		shell = g.host.Shell
	}
	s, err := DetermineShell(shell)
	if err != nil {
		return "", err
	}
	r, err := RendererFor(s)
	if err != nil {
		return "", err
	}
	launch := r.LaunchSetupScript(EnvPrefix(g.meta.Bin), g.paths.SetupFile(s))
	return fmt.Sprintf("\n%s # %s autocomplete setup\n", launch, g.meta.Bin), nil
}

// openActivityLog opens the append-only activity log.
func (g *Generator) openActivityLog() (*zerolog.Logger, func(), error) {
	if err := g.fs.MkdirAll(g.paths.CacheDir, constants.DirPermissions); err != nil {
		return nil, nil, errors.WrapIO("mkdir", g.paths.CacheDir, err)
	}
	path := g.paths.LogFile()
	f, err := g.fs.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, constants.FilePermissions)
	if err != nil {
		return nil, nil, errors.WrapIO("open", path, err)
	}
	logger := logging.NewActivityLogger(f)
	return &logger, func() { _ = f.Close() }, nil
}
