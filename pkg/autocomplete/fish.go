package autocomplete

import (
	"fmt"
	"strings"

	"github.com/agentstation/acgen/pkg/constants"
	"github.com/agentstation/acgen/pkg/registry"
)

type fishRenderer struct{}

func (fishRenderer) Shell() Shell { return Fish }

func (fishRenderer) ShouldGenerate(hostShell string, _ registry.Separator) bool {
	return hostShell == string(Fish)
}

func (fishRenderer) Filename(bin string) string { return bin + ".fish" }

func (fishRenderer) LaunchSetupScript(envPrefix, setupPath string) string {
	return fmt.Sprintf(`set -gx %[1]s "%[2]s" && test -f "$%[1]s" && source "$%[1]s";`,
		SetupPathVar(envPrefix, Fish), fishEscape(setupPath))
}

func (fishRenderer) SetupScript(_ *Metadata, paths Paths) (string, error) {
	dir := fishEscape(paths.CompletionDir(Fish))
	return fmt.Sprintf(`# fish shell completion setup script
# add the completion directory to fish_complete_path unless it is already there
if not contains "%[1]s" $fish_complete_path
    set -gxp fish_complete_path "%[1]s"
end
`, dir), nil
}

func (r fishRenderer) CompletionScript(m *Metadata) (string, error) {
	ident := shellIdent(m.Bin)

	var b strings.Builder
	fmt.Fprintf(&b, "# Fish completion for %s\n", m.Bin)

	ids := make([]string, len(m.Commands))
	for i, c := range m.Commands {
		ids[i] = fishEscape(c.ID)
	}
	fmt.Fprintf(&b, "\nset -g __%s_ac_command_ids %s\n", ident, strings.Join(ids, " "))
	b.WriteString(strings.ReplaceAll(fishHelpers, "{{bin}}", ident))

	for _, c := range m.Commands {
		fmt.Fprintf(&b, "# Create a completion for the command: %s\n", c.ID)
		if m.Separator == registry.SeparatorSpace {
			parent := strings.ReplaceAll(strings.TrimSuffix(c.ID, lastSegment(c.ID)), ":", " ")
			r.command(&b, m.Bin, ident, strings.TrimSpace(parent), lastSegment(c.ID), c)
		} else {
			r.command(&b, m.Bin, ident, "", c.ID, c)
		}
		b.WriteByte('\n')
	}

	if m.Separator == registry.SeparatorSpace {
		for _, t := range m.Topics {
			if m.IsCommandTopic(t.Name) {
				continue
			}
			parent := strings.TrimSpace(strings.ReplaceAll(strings.TrimSuffix(t.Name, lastSegment(t.Name)), ":", " "))
			fmt.Fprintf(&b, "# Create a completion for the topic: %s\n", t.Name)
			fmt.Fprintf(&b, "complete -f -c %s -n '%s' -a %s -d \"%s\"\n\n",
				m.Bin, fishNeedsCommand(ident, parent), lastSegment(t.Name), fishEscape(t.Description))
		}
	}

	for _, alias := range m.BinAliases {
		fmt.Fprintf(&b, "complete -c %s -w %s\n", alias, m.Bin)
	}
	return b.String(), nil
}

// command renders the directive offering arg after the parent words, and
// one directive per flag guarded on the command being typed. Flags that
// cannot repeat are no longer offered once on the line.
func (fishRenderer) command(b *strings.Builder, bin, ident, parent, arg string, c CommandCompletion) {
	fmt.Fprintf(b, "complete -f -c %s -n '%s' -a %s -d \"%s\"\n",
		bin, fishNeedsCommand(ident, parent), arg, fishEscape(c.Summary))

	using := fmt.Sprintf("__%s_ac_using_command %s", ident, c.ID)
	for _, f := range c.Flags {
		directive := []string{"complete"}
		switch {
		case f.IsBoolean():
			directive = append(directive, "-f")
		case len(f.Options) > 0:
			directive = append(directive, "-x")
		default:
			directive = append(directive, "-r")
		}
		directive = append(directive, "-c", bin, "-n", "'"+fishFlagCondition(using, f.Name, f.Char, f.Multiple)+"'", "-l", f.Name)
		if f.Char != "" {
			directive = append(directive, "-s", f.Char)
		}
		if f.Summary != "" {
			directive = append(directive, "-d", `"`+fishEscape(f.Summary)+`"`)
		}
		if len(f.Options) > 0 {
			directive = append(directive, "-a", `"`+fishEscape(strings.Join(f.Options, " "))+`"`)
		}
		b.WriteString(strings.Join(directive, " "))
		b.WriteByte('\n')

		if f.AllowNo {
			fmt.Fprintf(b, "complete -f -c %s -n '%s' -l no-%s\n", bin, fishFlagCondition(using, "no-"+f.Name, "", false), f.Name)
		}
	}
	if !c.HelpDeclared {
		fmt.Fprintf(b, "complete -f -c %s -n '%s' -l help -d \"%s\"\n",
			bin, fishFlagCondition(using, "help", "", false), constants.HelpSummary)
	}
}

// fishFlagCondition extends the command guard with a check that a
// single-use flag is not already on the line.
func fishFlagCondition(using, name, char string, multiple bool) string {
	if multiple {
		return using
	}
	if char != "" {
		return fmt.Sprintf("%s; and not __fish_contains_opt -s %s %s", using, char, name)
	}
	return fmt.Sprintf("%s; and not __fish_contains_opt %s", using, name)
}

func fishNeedsCommand(ident, parent string) string {
	if parent == "" {
		return fmt.Sprintf("__%s_ac_needs_command", ident)
	}
	return fmt.Sprintf("__%s_ac_needs_command %s", ident, parent)
}

var fishEscaper = strings.NewReplacer("$", `\$`)

// fishEscape escapes s for a double-quoted fish string. Quotes and
// backslashes are already escaped by SanitizeSummary.
func fishEscape(s string) string {
	return fishEscaper.Replace(s)
}

const fishHelpers = `
function __{{bin}}_ac_words --description 'Print the typed words after the command name, without flags'
    set -l words (commandline -opc)
    set -e words[1]
    for word in $words
        if not string match -q -- '-*' $word
            echo $word
        end
    end
end

function __{{bin}}_ac_needs_command --description 'Test whether the typed words are exactly the arguments'
    set -l words (__{{bin}}_ac_words)
    test (count $words) -eq (count $argv); or return 1
    for i in (seq (count $argv))
        test "$words[$i]" = "$argv[$i]"; or return 1
    end
    return 0
end

function __{{bin}}_ac_command --description 'Print the longest typed command id'
    set -l id
    set -l found
    for word in (__{{bin}}_ac_words)
        if test -z "$id"
            set id $word
        else
            set id "$id:$word"
        end
        if contains -- $id $__{{bin}}_ac_command_ids
            set found $id
        end
    end
    echo $found
end

function __{{bin}}_ac_using_command --description 'Test whether the typed command is the argument'
    set -l current (__{{bin}}_ac_command)
    test "$current" = "$argv[1]"
end

`
