// Package context provides test doubles for the application interface.
package context

import (
	"github.com/rs/zerolog"
	"github.com/spf13/afero"

	"github.com/agentstation/acgen/cmd/application"
	"github.com/agentstation/acgen/pkg/logging"
	"github.com/agentstation/acgen/pkg/registry"
)

// MockContext provides a mock implementation of application.Application for testing.
// Each method can be customized by setting the corresponding function field.
// If a function field is nil, the method returns a default/zero value.
//
// Example Usage:
//
//	mock := &context.MockContext{
//	    HostFunc: func() (*registry.Config, error) {
//	        return testHost, nil
//	    },
//	}
//	cmd := autocomplete.NewCommand(mock)
//	// ... test command, then inspect mock.Fs()
type MockContext struct {
	HostFunc              func() (*registry.Config, error)
	FsFunc                func() afero.Fs
	SeparatorOverrideFunc func() string
	LoggerFunc            func() *zerolog.Logger
	VersionFunc           func() string
	CommitFunc            func() string
	DateFunc              func() string
	BuiltByFunc           func() string

	fs afero.Fs
}

// Host returns a registry using the mock function or nil.
func (m *MockContext) Host() (*registry.Config, error) {
	if m.HostFunc != nil {
		return m.HostFunc()
	}
	return nil, nil
}

// Fs returns a filesystem using the mock function or a shared in-memory one.
func (m *MockContext) Fs() afero.Fs {
	if m.FsFunc != nil {
		return m.FsFunc()
	}
	if m.fs == nil {
		m.fs = afero.NewMemMapFs()
	}
	return m.fs
}

// SeparatorOverride returns the override using the mock function or "".
func (m *MockContext) SeparatorOverride() string {
	if m.SeparatorOverrideFunc != nil {
		return m.SeparatorOverrideFunc()
	}
	return ""
}

// Logger returns a logger using the mock function or a no-op logger.
func (m *MockContext) Logger() *zerolog.Logger {
	if m.LoggerFunc != nil {
		return m.LoggerFunc()
	}
	return logging.NewNopLogger()
}

// Version returns version using the mock function or "dev".
func (m *MockContext) Version() string {
	if m.VersionFunc != nil {
		return m.VersionFunc()
	}
	return "dev"
}

// Commit returns commit using the mock function or "unknown".
func (m *MockContext) Commit() string {
	if m.CommitFunc != nil {
		return m.CommitFunc()
	}
	return "unknown"
}

// Date returns date using the mock function or "unknown".
func (m *MockContext) Date() string {
	if m.DateFunc != nil {
		return m.DateFunc()
	}
	return "unknown"
}

// BuiltBy returns builtBy using the mock function or "test".
func (m *MockContext) BuiltBy() string {
	if m.BuiltByFunc != nil {
		return m.BuiltByFunc()
	}
	return "test"
}

// Ensure MockContext implements application.Application at compile time.
var _ application.Application = (*MockContext)(nil)
