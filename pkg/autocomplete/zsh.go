package autocomplete

import (
	"fmt"
	"strings"

	"github.com/agentstation/acgen/pkg/constants"
	"github.com/agentstation/acgen/pkg/registry"
)

type zshRenderer struct{}

func (zshRenderer) Shell() Shell { return Zsh }

func (zshRenderer) ShouldGenerate(string, registry.Separator) bool { return true }

func (zshRenderer) Filename(bin string) string { return "_" + bin }

func (zshRenderer) LaunchSetupScript(envPrefix, setupPath string) string {
	return sourceGuard(SetupPathVar(envPrefix, Zsh), setupPath)
}

func (zshRenderer) SetupScript(_ *Metadata, paths Paths) (string, error) {
	return fmt.Sprintf("fpath=(\"%s\" $fpath);\nautoload -Uz compinit;\ncompinit;\n",
		bashEscape(paths.CompletionDir(Zsh))), nil
}

func (zshRenderer) CompletionScript(m *Metadata) (string, error) {
	var b strings.Builder
	names := append([]string{m.Bin}, m.BinAliases...)
	fmt.Fprintf(&b, "#compdef %s\n", strings.Join(names, " "))
	fmt.Fprintf(&b, "# Zsh completion for %s\n\n", m.Bin)

	if m.Separator == registry.SeparatorSpace {
		zshSpaceScript(&b, m)
	} else {
		zshColonScript(&b, m)
	}
	return b.String(), nil
}

// zshColonScript renders one flat case statement keyed by command id.
func zshColonScript(b *strings.Builder, m *Metadata) {
	fmt.Fprintf(b, "_%s () {\n", m.Bin)
	b.WriteString("  local _command_id=${words[2]}\n")
	b.WriteString("  local _cur=${words[CURRENT]}\n")
	b.WriteString("  local -a _command_flags=()\n\n")

	b.WriteString("  ## public cli commands & flags\n")
	b.WriteString("  local -a _all_commands=(\n")
	for _, c := range m.Commands {
		fmt.Fprintf(b, "    \"%s:%s\"\n", strings.ReplaceAll(c.ID, ":", `\:`), c.Summary)
	}
	b.WriteString("  )\n\n")

	b.WriteString("  _set_flags () {\n")
	b.WriteString("    case $_command_id in\n")
	for _, c := range m.Commands {
		fmt.Fprintf(b, "      %s)\n", c.ID)
		b.WriteString("        _command_flags=(\n")
		for _, spec := range zshFlagSpecs(c) {
			fmt.Fprintf(b, "          %s\n", spec)
		}
		b.WriteString("        )\n")
		b.WriteString("        ;;\n")
	}
	b.WriteString("    esac\n")
	b.WriteString("  }\n")
	b.WriteString("  ## end public cli commands & flags\n\n")

	b.WriteString("  _complete_commands () {\n")
	b.WriteString("    _describe -t all-commands \"all commands\" _all_commands\n")
	b.WriteString("  }\n\n")

	b.WriteString("  if [ $CURRENT -gt 2 ]; then\n")
	b.WriteString("    if [[ \"$_cur\" == -* ]]; then\n")
	b.WriteString("      _set_flags\n")
	b.WriteString("    else\n")
	b.WriteString("      _path_files\n")
	b.WriteString("    fi\n")
	b.WriteString("  fi\n\n")

	b.WriteString("  _arguments -S '1: :_complete_commands' \\\n")
	b.WriteString("    $_command_flags\n")
	b.WriteString("}\n\n")
	fmt.Fprintf(b, "_%s\n", m.Bin)
}

// zshEntry is one completion candidate of a zsh function and the code
// run once it has been typed.
type zshEntry struct {
	name    string
	summary string
	handler func(b *strings.Builder, indent string)
}

// zshSpaceScript renders one function per topic mirroring the topic tree,
// plus the entry function offering top-level topics and commands.
func zshSpaceScript(b *strings.Builder, m *Metadata) {
	for _, t := range m.Topics {
		zshTopicFunc(b, m, t.Name)
		b.WriteByte('\n')
	}

	var entries []zshEntry
	seen := make(map[string]bool)
	for _, t := range m.childTopics("") {
		seen[t.Name] = true
		entries = append(entries, zshEntry{
			name:    t.Name,
			summary: t.Description,
			handler: zshCallHandler(zshFuncName(m.Bin, t.Name)),
		})
	}
	for _, c := range m.childCommands("") {
		if seen[c.ID] {
			continue
		}
		seen[c.ID] = true
		entries = append(entries, zshEntry{
			name:    c.ID,
			summary: c.Summary,
			handler: zshArgumentsHandler(c),
		})
	}

	fmt.Fprintf(b, "_%s() {\n", m.Bin)
	b.WriteString("  local context state state_descr line\n")
	b.WriteString("  typeset -A opt_args\n\n")
	b.WriteString("  _arguments -C \"1: :->cmds\" \"*::arg:->args\"\n\n")
	b.WriteString("  case \"$state\" in\n")
	b.WriteString("    cmds)\n")
	zshValues(b, entries, "      ")
	b.WriteString("      ;;\n")
	b.WriteString("    args)\n")
	zshCase(b, entries, "      ", nil)
	b.WriteString("      ;;\n")
	b.WriteString("  esac\n")
	b.WriteString("}\n\n")
	fmt.Fprintf(b, "_%s\n", m.Bin)
}

// zshTopicFunc renders the function of topic id. A co-topic function also
// completes the flags of the command sharing its name.
func zshTopicFunc(b *strings.Builder, m *Metadata, id string) {
	name := zshFuncName(m.Bin, id)

	var entries []zshEntry
	seen := make(map[string]bool)
	for _, t := range m.childTopics(id) {
		seg := lastSegment(t.Name)
		seen[seg] = true
		entries = append(entries, zshEntry{
			name:    seg,
			summary: t.Description,
			handler: zshCallHandler(zshFuncName(m.Bin, t.Name)),
		})
	}
	for _, c := range m.childCommands(id) {
		seg := lastSegment(c.ID)
		if seen[seg] || m.IsCommandTopic(c.ID) {
			continue
		}
		seen[seg] = true
		entries = append(entries, zshEntry{
			name:    seg,
			summary: c.Summary,
			handler: zshArgumentsHandler(c),
		})
	}

	cmd, coTopic := m.Command(id)
	coTopic = coTopic && m.IsCommandTopic(id)

	fmt.Fprintf(b, "%s() {\n", name)
	if coTopic {
		fmt.Fprintf(b, "  %s_flags() {\n", name)
		zshArguments(b, cmd, "    ")
		b.WriteString("  }\n\n")
	}
	b.WriteString("  local context state state_descr line\n")
	b.WriteString("  typeset -A opt_args\n\n")
	b.WriteString("  _arguments -C \"1: :->cmds\" \"*::arg:->args\"\n\n")
	b.WriteString("  case \"$state\" in\n")
	b.WriteString("    cmds)\n")
	if coTopic {
		b.WriteString("      if [[ \"${words[CURRENT]}\" == -* ]]; then\n")
		fmt.Fprintf(b, "        %s_flags\n", name)
		b.WriteString("      else\n")
		zshValues(b, entries, "        ")
		b.WriteString("      fi\n")
	} else {
		zshValues(b, entries, "      ")
	}
	b.WriteString("      ;;\n")
	b.WriteString("    args)\n")
	if coTopic {
		zshCase(b, entries, "      ", zshCallHandler(name+"_flags"))
	} else {
		zshCase(b, entries, "      ", nil)
	}
	b.WriteString("      ;;\n")
	b.WriteString("  esac\n")
	b.WriteString("}\n")
}

func zshFuncName(bin, id string) string {
	return "_" + bin + "_" + strings.ReplaceAll(id, ":", "_")
}

func zshCallHandler(fn string) func(*strings.Builder, string) {
	return func(b *strings.Builder, indent string) {
		fmt.Fprintf(b, "%s%s\n", indent, fn)
	}
}

func zshArgumentsHandler(c CommandCompletion) func(*strings.Builder, string) {
	return func(b *strings.Builder, indent string) {
		zshArguments(b, c, indent)
	}
}

// zshValues renders the _values call offering entries.
func zshValues(b *strings.Builder, entries []zshEntry, indent string) {
	if len(entries) == 0 {
		fmt.Fprintf(b, "%s_message \"no more arguments\"\n", indent)
		return
	}
	fmt.Fprintf(b, "%s_values \"completions\" \\\n", indent)
	for i, e := range entries {
		fmt.Fprintf(b, "%s  \"%s[%s]\"", indent, e.name, e.summary)
		if i < len(entries)-1 {
			b.WriteString(" \\")
		}
		b.WriteByte('\n')
	}
}

// zshCase renders the case statement dispatching on the first argument.
func zshCase(b *strings.Builder, entries []zshEntry, indent string, fallback func(*strings.Builder, string)) {
	fmt.Fprintf(b, "%scase $line[1] in\n", indent)
	for _, e := range entries {
		fmt.Fprintf(b, "%s  %s)\n", indent, e.name)
		e.handler(b, indent+"    ")
		fmt.Fprintf(b, "%s    ;;\n", indent)
	}
	if fallback != nil {
		fmt.Fprintf(b, "%s  *)\n", indent)
		fallback(b, indent+"    ")
		fmt.Fprintf(b, "%s    ;;\n", indent)
	}
	fmt.Fprintf(b, "%sesac\n", indent)
}

// zshArguments renders the _arguments call completing the flags of c,
// falling back to files for positional arguments.
func zshArguments(b *strings.Builder, c CommandCompletion, indent string) {
	fmt.Fprintf(b, "%s_arguments -S \\\n", indent)
	for _, spec := range zshFlagSpecs(c) {
		fmt.Fprintf(b, "%s  %s \\\n", indent, spec)
	}
	fmt.Fprintf(b, "%s  \"*: :_files\"\n", indent)
}

// zshFlagSpecs returns the _arguments specs of the visible flags of c,
// followed by --help unless c declares it.
func zshFlagSpecs(c CommandCompletion) []string {
	var specs []string
	for _, f := range c.Flags {
		specs = append(specs, zshFlagSpec(f))
		if f.AllowNo {
			specs = append(specs, fmt.Sprintf(`--no-%s"[%s]"`, f.Name, f.Summary))
		}
	}
	if !c.HelpDeclared {
		specs = append(specs, fmt.Sprintf(`--help"[%s]"`, constants.HelpSummary))
	}
	return specs
}

func zshFlagSpec(f FlagCompletion) string {
	var spec string
	switch {
	case f.Char != "" && f.Multiple:
		spec = fmt.Sprintf(`"*"{-%s,--%s}`, f.Char, f.Name)
	case f.Char != "":
		spec = fmt.Sprintf(`"(-%[1]s --%[2]s)"{-%[1]s,--%[2]s}`, f.Char, f.Name)
	case f.Multiple:
		spec = `"*"--` + f.Name
	default:
		spec = "--" + f.Name
	}

	if f.IsBoolean() {
		return spec + fmt.Sprintf(`"[%s]"`, f.Summary)
	}
	if len(f.Options) > 0 {
		values := make([]string, len(f.Options))
		for i, v := range f.Options {
			values[i] = bashEscape(v)
		}
		return spec + fmt.Sprintf(`"[%s]:%s options:(%s)"`, f.Summary, f.Name, strings.Join(values, " "))
	}
	return spec + fmt.Sprintf(`"[%s]:file:_files"`, f.Summary)
}
