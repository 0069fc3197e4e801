// Package constants provides shared constants used throughout acgen.
// This includes file permissions, the completion cache layout and the
// environment variables the generated scripts and the CLI agree on.
package constants

// File permission constants define standard Unix file permissions
const (
	// DirPermissions is the default permission for created directories (rwxr-xr-x)
	DirPermissions = 0755

	// FilePermissions is the default permission for created files (rw-r--r--)
	FilePermissions = 0644
)

// Cache layout constants. Scripts live under <cacheDir>/AutocompleteDir.
const (
	// AutocompleteDir is the directory below the host cache dir holding every artifact
	AutocompleteDir = "autocomplete"

	// FunctionsDir holds one sub-directory of completion scripts per shell
	FunctionsDir = "functions"

	// SetupSuffix is appended to the shell name to form the setup script filename
	SetupSuffix = "_setup"

	// ActivityLogFile is the append-only log written by `autocomplete create`
	ActivityLogFile = "autocomplete.log"
)

// Environment variables
const (
	// EnvTopicSeparator forces colon-delimited completions when set to ":"
	EnvTopicSeparator = "AUTOCOMPLETE_TOPIC_SEPARATOR"

	// EnvSetupPathFormat is the setup-path variable exported by launch snippets.
	// Arguments: env prefix (upper-cased bin), upper-cased shell name.
	EnvSetupPathFormat = "%s_AC_%s_SETUP_PATH"

	// EnvCompFuncPathFormat is the completion-script variable exported by the bash setup script.
	EnvCompFuncPathFormat = "%s_AC_BASH_COMPFUNC_PATH"
)

// DefaultBin is acgen's own name, and the bin of the registry read from its command tree.
const DefaultBin = "acgen"

// HelpSummary is the description attached to the implicit --help flag.
const HelpSummary = "Show help for command"
