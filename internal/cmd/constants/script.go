// Package constants holds values shared by acgen's command packages.
package constants

// Shell arguments accepted by `autocomplete script`. Fish is not one of them;
// its profile line is only printed when fish is the configured shell.
const (
	ScriptArgZsh        = "zsh"
	ScriptArgBash       = "bash"
	ScriptArgPowerShell = "powershell"
)

// ScriptShells lists the accepted arguments in the order help shows them.
var ScriptShells = []string{ScriptArgZsh, ScriptArgBash, ScriptArgPowerShell}
