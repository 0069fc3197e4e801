// Package application declares what acgen's command packages need from the
// running app. Commands take an Application instead of *app.App so tests can
// pass cmd/acgen/context.MockContext:
//
//	mock := &context.MockContext{
//	    HostFunc: func() (*registry.Config, error) { return host, nil },
//	}
//	cmd := autocomplete.NewCommand(mock)
//	cmd.SetArgs([]string{"create"})
//	err := cmd.Execute()
//	// scripts are now in mock.Fs()
package application

import (
	"github.com/rs/zerolog"
	"github.com/spf13/afero"

	"github.com/agentstation/acgen/pkg/registry"
)

// Application is implemented by *app.App. Implementations must be safe for
// concurrent use.
type Application interface {
	// Host returns the registry of the CLI completions are generated for.
	// It is loaded on first use and cached.
	Host() (*registry.Config, error)

	// Fs is where manifests are read and completion scripts are written.
	Fs() afero.Fs

	// SeparatorOverride returns AUTOCOMPLETE_TOPIC_SEPARATOR, or "".
	SeparatorOverride() string

	Logger() *zerolog.Logger

	// Build information printed by `version`.
	Version() string
	Commit() string
	Date() string
	BuiltBy() string
}
