package autocomplete

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/agentstation/acgen/pkg/constants"
	"github.com/agentstation/acgen/pkg/errors"
	"github.com/agentstation/acgen/pkg/registry"
)

// Shell is a shell acgen renders completions for.
type Shell string

// Supported shells, in generation order.
const (
	Bash       Shell = "bash"
	Zsh        Shell = "zsh"
	Fish       Shell = "fish"
	PowerShell Shell = "powershell"
)

// Shells returns every supported shell in generation order.
func Shells() []Shell {
	return []Shell{Bash, Zsh, Fish, PowerShell}
}

// String returns the shell name.
func (s Shell) String() string {
	return string(s)
}

// ParseShell returns the shell with the given name.
func ParseShell(name string) (Shell, error) {
	switch s := Shell(strings.ToLower(name)); s {
	case Bash, Zsh, Fish, PowerShell:
		return s, nil
	}
	return "", errors.NewUnsupportedShellError(name)
}

// DetermineShell resolves the shell a user asked for. An empty name is a
// missing argument, and a Git Bash path on Windows means bash.
func DetermineShell(name string) (Shell, error) {
	switch {
	case name == "":
		return "", errors.NewValidationError("shell", name, "missing required argument shell")
	case strings.HasSuffix(name, `\bash.exe`):
		return Bash, nil
	}
	return ParseShell(name)
}

// Renderer renders the completion artifacts of one shell.
type Renderer interface {
	// Shell returns the shell this renderer targets.
	Shell() Shell

	// ShouldGenerate reports whether `create` writes this shell's scripts
	// for a host configured with the given shell and separator.
	ShouldGenerate(hostShell string, sep registry.Separator) bool

	// LaunchSetupScript returns the profile snippet that sources the setup script.
	LaunchSetupScript(envPrefix, setupPath string) string

	// SetupScript returns the script that loads the completion script,
	// or "" when the shell needs none.
	SetupScript(m *Metadata, paths Paths) (string, error)

	// CompletionScript returns the completion grammar.
	CompletionScript(m *Metadata) (string, error)

	// Filename returns the completion script file name for bin.
	Filename(bin string) string
}

// RendererFor returns the renderer of shell.
func RendererFor(shell Shell) (Renderer, error) {
	switch shell {
	case Bash:
		return bashRenderer{}, nil
	case Zsh:
		return zshRenderer{}, nil
	case Fish:
		return fishRenderer{}, nil
	case PowerShell:
		return powerShellRenderer{}, nil
	}
	return nil, errors.NewUnsupportedShellError(string(shell))
}

// EnvPrefix returns the environment variable prefix derived from bin:
// upper-cased with dashes turned into underscores.
func EnvPrefix(bin string) string {
	return cases.Upper(language.Und).String(strings.ReplaceAll(bin, "-", "_"))
}

// SetupPathVar returns the variable guarding the setup script of shell.
func SetupPathVar(envPrefix string, shell Shell) string {
	return fmt.Sprintf(constants.EnvSetupPathFormat, envPrefix, EnvPrefix(string(shell)))
}

// ResolveSeparator returns the effective topic separator. Space mode is
// only used when the host asks for it and override is not ":".
func ResolveSeparator(host registry.Separator, override string) registry.Separator {
	if registry.Separator(override) == registry.SeparatorColon || host != registry.SeparatorSpace {
		return registry.SeparatorColon
	}
	return registry.SeparatorSpace
}
