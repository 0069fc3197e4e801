package autocomplete

import (
	"path/filepath"

	"github.com/agentstation/acgen/pkg/constants"
)

// Paths is the on-disk layout below the host cache directory:
//
//	<cacheDir>/autocomplete.log
//	<cacheDir>/autocomplete/<shell>_setup
//	<cacheDir>/autocomplete/functions/<shell>/<filename>
type Paths struct {
	CacheDir string
}

// Dir returns the autocomplete directory.
func (p Paths) Dir() string {
	return filepath.Join(p.CacheDir, constants.AutocompleteDir)
}

// SetupFile returns the setup script path of shell.
func (p Paths) SetupFile(shell Shell) string {
	return filepath.Join(p.Dir(), string(shell)+constants.SetupSuffix)
}

// CompletionDir returns the directory holding the completion script of shell.
func (p Paths) CompletionDir(shell Shell) string {
	return filepath.Join(p.Dir(), constants.FunctionsDir, string(shell))
}

// CompletionFile returns the completion script path of shell.
func (p Paths) CompletionFile(shell Shell, filename string) string {
	return filepath.Join(p.CompletionDir(shell), filename)
}

// LogFile returns the activity log path.
func (p Paths) LogFile() string {
	return filepath.Join(p.CacheDir, constants.ActivityLogFile)
}
