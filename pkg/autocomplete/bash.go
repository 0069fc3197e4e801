package autocomplete

import (
	"fmt"
	"strings"

	"github.com/agentstation/acgen/pkg/constants"
	"github.com/agentstation/acgen/pkg/registry"
)

type bashRenderer struct{}

func (bashRenderer) Shell() Shell { return Bash }

func (bashRenderer) ShouldGenerate(string, registry.Separator) bool { return true }

func (bashRenderer) Filename(bin string) string { return bin + ".bash" }

func (bashRenderer) LaunchSetupScript(envPrefix, setupPath string) string {
	return sourceGuard(SetupPathVar(envPrefix, Bash), setupPath)
}

func (r bashRenderer) SetupScript(m *Metadata, paths Paths) (string, error) {
	file := paths.CompletionFile(Bash, r.Filename(m.Bin))
	return sourceGuard(fmt.Sprintf(constants.EnvCompFuncPathFormat, EnvPrefix(m.Bin)), file) + "\n", nil
}

func (bashRenderer) CompletionScript(m *Metadata) (string, error) {
	ident := shellIdent(m.Bin)

	var b strings.Builder
	b.WriteString("#!/usr/bin/env bash\n")
	fmt.Fprintf(&b, "# Bash completion for %s\n\n", m.Bin)

	// One row per command: "<id> --flag ...".
	fmt.Fprintf(&b, "__%s_ac_commands=\"\n", ident)
	for _, c := range m.Commands {
		b.WriteString(bashCommandRow(c))
		b.WriteByte('\n')
	}
	b.WriteString("\"\n\n")

	// One row per flag with allowed values: "<id> --flag value ...", and
	// "<id> -c value ..." for its short form.
	fmt.Fprintf(&b, "__%s_ac_flag_values=\"\n", ident)
	for _, c := range m.Commands {
		for _, f := range c.Flags {
			if len(f.Options) == 0 {
				continue
			}
			values := make([]string, len(f.Options))
			for i, v := range f.Options {
				values[i] = bashEscape(v)
			}
			fmt.Fprintf(&b, "%s --%s %s\n", bashEscape(c.ID), f.Name, strings.Join(values, " "))
			if f.Char != "" {
				fmt.Fprintf(&b, "%s -%s %s\n", bashEscape(c.ID), f.Char, strings.Join(values, " "))
			}
		}
	}
	b.WriteString("\"\n\n")

	// One row per command listing the flags that may repeat.
	fmt.Fprintf(&b, "__%s_ac_multiple=\"\n", ident)
	for _, c := range m.Commands {
		var repeatable []string
		for _, f := range c.Flags {
			if f.Multiple {
				repeatable = append(repeatable, "--"+f.Name)
			}
		}
		if len(repeatable) > 0 {
			fmt.Fprintf(&b, "%s %s\n", bashEscape(c.ID), strings.Join(repeatable, " "))
		}
	}
	b.WriteString("\"\n")

	b.WriteString(strings.ReplaceAll(bashHelpers, "{{bin}}", ident))

	if m.Separator == registry.SeparatorSpace {
		b.WriteString(strings.ReplaceAll(bashSpaceFunc, "{{bin}}", ident))
	} else {
		b.WriteString(strings.ReplaceAll(bashColonFunc, "{{bin}}", ident))
	}

	fmt.Fprintf(&b, "\ncomplete -o default -F _%s_autocomplete %s\n", ident, m.Bin)
	for _, alias := range m.BinAliases {
		fmt.Fprintf(&b, "complete -o default -F _%s_autocomplete %s\n", ident, alias)
	}
	return b.String(), nil
}

// bashCommandRow returns "<id> --flag ..." trimmed of trailing blanks.
func bashCommandRow(c CommandCompletion) string {
	fields := []string{bashEscape(c.ID)}
	for _, f := range c.Flags {
		fields = append(fields, "--"+f.Name)
		if f.AllowNo {
			fields = append(fields, "--no-"+f.Name)
		}
	}
	return strings.TrimSpace(strings.Join(fields, " "))
}

var bashEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`, "$", `\$`, "`", "\\`")

// bashEscape escapes s for a double-quoted bash string.
func bashEscape(s string) string {
	return bashEscaper.Replace(s)
}

// shellIdent maps bin to a name usable in shell variable and function names.
func shellIdent(bin string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
			return r
		}
		return '_'
	}, bin)
}

// sourceGuard returns the one-line snippet that exports variable as path
// and sources it when the file exists.
func sourceGuard(variable, path string) string {
	return fmt.Sprintf(`export %[1]s="%[2]s" && test -f "$%[1]s" && source "$%[1]s";`, variable, bashEscape(path))
}

const bashHelpers = `
# Prints the rest of the row of table $1 whose first fields are $2.
__{{bin}}_ac_lookup()
{
  local table="$1" key="$2" row
  while IFS= read -r row; do
    if [[ "$row" == "$key" || "$row" == "$key "* ]]; then
      printf '%s\n' "${row#"$key"}"
      return 0
    fi
  done <<< "$table"
  return 1
}

# Prints the flags of command $1 not already among the words $2...,
# keeping repeatable flags and adding --help unless declared.
__{{bin}}_ac_flags()
{
  local id="$1" flags repeatable flag
  shift
  flags=" $(__{{bin}}_ac_lookup "$__{{bin}}_ac_commands" "$id") "
  if [[ "$flags" != *" --help "* ]]; then
    flags="$flags --help "
  fi
  repeatable=" $(__{{bin}}_ac_lookup "$__{{bin}}_ac_multiple" "$id") "
  for flag in $flags; do
    if [[ "$repeatable" != *" $flag "* && " $* " == *" $flag "* ]]; then
      continue
    fi
    printf '%s\n' "$flag"
  done
}
`

const bashSpaceFunc = `
_{{bin}}_autocomplete()
{
  local cur="${COMP_WORDS[COMP_CWORD]}"
  local prev="${COMP_WORDS[COMP_CWORD-1]}"
  local IFS=$' \t\n'
  local path="" id word row next opts=""
  COMPREPLY=()

  # Typed command path, colon-joined, without flags.
  for word in "${COMP_WORDS[@]:1:COMP_CWORD-1}"; do
    if [[ "$word" != -* ]]; then
      path="${path:+$path:}$word"
    fi
  done

  # Longest prefix of the path that is a command.
  id="$path"
  while [[ -n "$id" ]] && ! __{{bin}}_ac_lookup "$__{{bin}}_ac_commands" "$id" >/dev/null; do
    if [[ "$id" == *:* ]]; then
      id="${id%:*}"
    else
      id=""
    fi
  done

  if [[ -n "$id" && "$prev" == -* ]] && opts="$(__{{bin}}_ac_lookup "$__{{bin}}_ac_flag_values" "$id $prev")"; then
    :
  elif [[ "$cur" == -* ]]; then
    if [[ -n "$id" ]]; then
      opts="$(__{{bin}}_ac_flags "$id" "${COMP_WORDS[@]:1:COMP_CWORD-1}")"
    fi
  else
    # Next segment of every command below the typed path.
    while IFS= read -r row; do
      row="${row%% *}"
      if [[ -z "$row" ]]; then
        continue
      fi
      if [[ -z "$path" ]]; then
        next="${row%%:*}"
      elif [[ "$row" == "$path:"* ]]; then
        next="${row#"$path:"}"
        next="${next%%:*}"
      else
        continue
      fi
      if [[ " $opts " == *" $next "* ]]; then
        continue
      fi
      opts="$opts $next"
    done <<< "$__{{bin}}_ac_commands"
  fi

  COMPREPLY=($(compgen -W "$opts" -- "$cur"))
}
`

// The colon variant relies on _get_comp_words_by_ref and
// __ltrim_colon_completions from the bash-completion package, which undo
// readline's word split on ":".
const bashColonFunc = `
# Requires the bash-completion package (_get_comp_words_by_ref, __ltrim_colon_completions).
_{{bin}}_autocomplete()
{
  local cur prev words cword
  local IFS=$' \t\n'
  local id row opts=""
  COMPREPLY=()

  _get_comp_words_by_ref -n : cur prev words cword
  id="${words[1]}"

  if [[ "$cword" -gt 1 && "$prev" == -* ]] && opts="$(__{{bin}}_ac_lookup "$__{{bin}}_ac_flag_values" "$id $prev")"; then
    :
  elif [[ "$cur" == -* ]]; then
    if [[ "$cword" -gt 1 ]] && __{{bin}}_ac_lookup "$__{{bin}}_ac_commands" "$id" >/dev/null; then
      opts="$(__{{bin}}_ac_flags "$id" "${words[@]:1:cword-1}")"
    fi
  elif [[ "$cword" -eq 1 ]]; then
    while IFS= read -r row; do
      if [[ -n "$row" ]]; then
        opts="$opts ${row%% *}"
      fi
    done <<< "$__{{bin}}_ac_commands"
  fi

  COMPREPLY=($(compgen -W "$opts" -- "$cur"))
  __ltrim_colon_completions "$cur"
  return 0
}
`
