// Package errors defines the error types acgen returns. Match them with
// errors.Is against the sentinels below, or errors.As against the types.
package errors

import (
	"errors"
	"fmt"
)

// Sentinels matched by the typed errors' Is methods.
var (
	// ErrInvalidInput marks a registry or argument value acgen cannot use.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnsupportedShell marks a shell name with no renderer.
	ErrUnsupportedShell = errors.New("unsupported shell")

	// ErrInternal marks a broken renderer invariant. A well-formed registry never triggers it.
	ErrInternal = errors.New("internal error")
)

// ValidationError reports a value that failed validation.
type ValidationError struct {
	Field   string
	Value   any
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return "invalid input: " + e.Message
	}
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// Is reports whether target is ErrInvalidInput.
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// NewValidationError creates a new ValidationError.
func NewValidationError(field string, value any, message string) *ValidationError {
	return &ValidationError{Field: field, Value: value, Message: message}
}

// UnsupportedShellError is returned for a shell name that has no renderer.
type UnsupportedShellError struct {
	Shell string
}

func (e *UnsupportedShellError) Error() string {
	return fmt.Sprintf("unsupported shell %q, expected bash, zsh, fish or powershell", e.Shell)
}

// Is reports whether target is ErrUnsupportedShell.
func (e *UnsupportedShellError) Is(target error) bool {
	return target == ErrUnsupportedShell
}

// NewUnsupportedShellError creates a new UnsupportedShellError.
func NewUnsupportedShellError(shell string) *UnsupportedShellError {
	return &UnsupportedShellError{Shell: shell}
}

// InternalError reports an invariant violation inside a renderer.
type InternalError struct {
	Component string
	Message   string
}

func (e *InternalError) Error() string {
	return fmt.Sprintf("%s: internal error: %s", e.Component, e.Message)
}

// Is reports whether target is ErrInternal.
func (e *InternalError) Is(target error) bool {
	return target == ErrInternal
}

// NewInternalError creates a new InternalError.
func NewInternalError(component, message string) *InternalError {
	return &InternalError{Component: component, Message: message}
}

// ConfigError reports a configuration acgen could not load.
type ConfigError struct {
	Key     string
	Message string
	Err     error
}

func (e *ConfigError) Error() string {
	if e.Key == "" {
		return "config: " + e.Message
	}
	return fmt.Sprintf("config %s: %s", e.Key, e.Message)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// NewConfigError creates a new ConfigError.
func NewConfigError(key, message string, err error) *ConfigError {
	return &ConfigError{Key: key, Message: message, Err: err}
}

// ParseError reports a manifest that is not valid YAML or a rendered
// script that is not valid shell.
type ParseError struct {
	Format  string // "yaml", "bash"
	File    string
	Line    int
	Column  int
	Message string
	Err     error
}

func (e *ParseError) Error() string {
	loc := e.File
	if loc != "" && e.Line > 0 {
		loc = fmt.Sprintf("%s:%d:%d", e.File, e.Line, e.Column)
	}
	if loc == "" {
		return fmt.Sprintf("invalid %s: %s", e.Format, e.Message)
	}
	return fmt.Sprintf("invalid %s in %s: %s", e.Format, loc, e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// IOError reports a failed filesystem operation.
type IOError struct {
	Operation string // "read", "write", "mkdir", "open"
	Path      string
	Err       error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Operation, e.Path, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}

// IsValidationError reports whether err is a validation error.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

// IsUnsupportedShell reports whether err is an unsupported shell error.
func IsUnsupportedShell(err error) bool {
	return errors.Is(err, ErrUnsupportedShell)
}

// IsInternal reports whether err is an internal invariant violation.
func IsInternal(err error) bool {
	return errors.Is(err, ErrInternal)
}

// WrapIO wraps a filesystem error as an IOError. It returns nil for a nil err.
func WrapIO(operation, path string, err error) error {
	if err == nil {
		return nil
	}
	return &IOError{Operation: operation, Path: path, Err: err}
}

// WrapParse wraps a decoding error as a ParseError. It returns nil for a nil err.
func WrapParse(format, file string, err error) error {
	if err == nil {
		return nil
	}
	return &ParseError{Format: format, File: file, Message: err.Error(), Err: err}
}

// WrapConfig wraps err as a ConfigError. It returns nil for a nil err.
func WrapConfig(key string, err error) error {
	if err == nil {
		return nil
	}
	return &ConfigError{Key: key, Message: err.Error(), Err: err}
}
