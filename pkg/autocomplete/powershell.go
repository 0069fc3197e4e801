package autocomplete

import (
	"fmt"
	"strings"

	"github.com/agentstation/acgen/pkg/constants"
	"github.com/agentstation/acgen/pkg/errors"
	"github.com/agentstation/acgen/pkg/registry"
)

type powerShellRenderer struct{}

func (powerShellRenderer) Shell() Shell { return PowerShell }

// ShouldGenerate only holds for powershell hosts using colon separators.
func (powerShellRenderer) ShouldGenerate(hostShell string, sep registry.Separator) bool {
	return hostShell == string(PowerShell) && sep == registry.SeparatorColon
}

func (powerShellRenderer) Filename(bin string) string { return bin + ".ps1" }

func (powerShellRenderer) LaunchSetupScript(_, setupPath string) string {
	p := psQuote(setupPath)
	return fmt.Sprintf("if (Test-Path %s) { . %s }", p, p)
}

func (r powerShellRenderer) SetupScript(m *Metadata, paths Paths) (string, error) {
	return fmt.Sprintf(". %s\n", psQuote(paths.CompletionFile(PowerShell, r.Filename(m.Bin)))), nil
}

func (powerShellRenderer) CompletionScript(m *Metadata) (string, error) {
	tree, err := buildPSTree(m)
	if err != nil {
		return "", err
	}

	var table strings.Builder
	table.WriteString("@{\n")
	for _, node := range tree {
		if err := writePSNode(&table, node, "      "); err != nil {
			return "", err
		}
	}
	table.WriteString("    }")

	names := make([]string, 0, len(m.BinAliases)+1)
	for _, alias := range m.BinAliases {
		names = append(names, psQuote(alias))
	}
	names = append(names, psQuote(m.Bin))
	commandName := names[0]
	if len(names) > 1 {
		commandName = "@(" + strings.Join(names, ",") + ")"
	}

	script := strings.Replace(psScript, "{{commands}}", table.String(), 1)
	script = strings.Replace(script, "{{names}}", commandName, 1)
	return script, nil
}

// writePSNode serializes node as a hashtable entry. Topic nodes hold a
// "_summary" key, command nodes a "_command" key, co-topic nodes both a
// "_command" key and their children.
func writePSNode(b *strings.Builder, node *psNode, indent string) error {
	fmt.Fprintf(b, "%s%s = @{\n", indent, psQuote(node.key))
	inner := indent + "  "

	switch node.kind {
	case psTopic:
		fmt.Fprintf(b, "%s\"_summary\" = %s\n", inner, psQuote(node.summary))
	case psCommand, psCoTopic:
		writePSCommand(b, node.command, inner)
	default:
		return errors.NewInternalError("powershell", fmt.Sprintf("unknown node kind %d for %s", node.kind, node.key))
	}

	for _, child := range node.children {
		if err := writePSNode(b, child, inner); err != nil {
			return err
		}
	}
	fmt.Fprintf(b, "%s}\n", indent)
	return nil
}

func writePSCommand(b *strings.Builder, c CommandCompletion, indent string) {
	fmt.Fprintf(b, "%s\"_command\" = @{\n", indent)
	fmt.Fprintf(b, "%s  \"summary\" = %s\n", indent, psQuote(c.Summary))
	fmt.Fprintf(b, "%s  \"flags\" = @{\n", indent)
	flagIndent := indent + "    "
	for _, f := range c.Flags {
		writePSFlag(b, f.Name, f, flagIndent)
		if f.AllowNo {
			writePSFlag(b, "no-"+f.Name, FlagCompletion{Summary: f.Summary}, flagIndent)
		}
	}
	if !c.HelpDeclared {
		writePSFlag(b, "help", FlagCompletion{Summary: constants.HelpSummary}, flagIndent)
	}
	fmt.Fprintf(b, "%s  }\n", indent)
	fmt.Fprintf(b, "%s}\n", indent)
}

// writePSFlag writes the flag hashtable entry for name. Only the summary
// is always present.
func writePSFlag(b *strings.Builder, name string, f FlagCompletion, indent string) {
	fields := []string{`"summary" = ` + psQuote(f.Summary)}
	if f.Char != "" {
		fields = append(fields, `"char" = `+psQuote(f.Char))
	}
	if f.Multiple {
		fields = append(fields, `"multiple" = $true`)
	}
	if len(f.Options) > 0 {
		values := make([]string, len(f.Options))
		for i, v := range f.Options {
			values[i] = psQuote(v)
		}
		fields = append(fields, `"options" = @(`+strings.Join(values, ",")+`)`)
	}
	fmt.Fprintf(b, "%s%s = @{ %s }\n", indent, psQuote(name), strings.Join(fields, "; "))
}

var psEscaper = strings.NewReplacer("`", "``", `"`, "`\"", "$", "`$")

// psQuote returns s as a double-quoted powershell string.
func psQuote(s string) string {
	return `"` + psEscaper.Replace(s) + `"`
}

const psScript = `using namespace System.Management.Automation
using namespace System.Management.Automation.Language

$scriptblock = {
    param($WordToComplete, $CommandAst, $CursorPosition)

    $Commands = {{commands}}

    # Get the current mode
    $Mode = (Get-PSReadLineKeyHandler | Where-Object { $_.Key -eq "Tab" }).Function

    # Every word after the CLI executable name, without the word being completed.
    $Elements = @($CommandAst.CommandElements | Select-Object -Skip 1 | ForEach-Object { $_.ToString() })
    if ($WordToComplete -ne "" -and $Elements.Count -gt 0) {
        $Elements = @($Elements | Select-Object -SkipLast 1)
    }
    $Previous = if ($Elements.Count -gt 0) { $Elements[$Elements.Count - 1] } else { "" }

    # A partially typed "topic:sub" word completes its last segment.
    $Prefix = ""
    $Word = $WordToComplete
    if (-not $Word.StartsWith("-") -and $Word.Contains(":")) {
        $Index = $Word.LastIndexOf(":")
        $Prefix = $Word.Substring(0, $Index + 1)
        $Word = $Word.Substring($Index + 1)
        $Elements += $Prefix.TrimEnd(":")
    }

    # Flags already on the line, without the leading dashes.
    $Flags = @($Elements | Where-Object { $_ -match "^-{1,2}\w" } | ForEach-Object { $_.TrimStart("-") })

    # Walk the tree following the typed words. Words that are not a child
    # of the current node are arguments or flag values.
    $Node = $Commands
    foreach ($Element in $Elements) {
        if ($Element.StartsWith("-")) {
            continue
        }
        foreach ($Part in $Element.Split(":")) {
            if (-not $Part.StartsWith("_") -and $Node.ContainsKey($Part)) {
                $Node = $Node[$Part]
            }
        }
    }

    $Complete = {
        param($Key, $Summary)
        $Text = if ($Mode -eq "MenuComplete") { "$Key " } else { $Key }
        if (-not $Summary) {
            $Summary = " "
        }
        [CompletionResult]::new($Text, $Key, [CompletionResultType]::ParameterValue, $Summary)
    }

    # Declared values of the flag before the word being completed.
    if ($Previous.StartsWith("-") -and $Node.ContainsKey("_command")) {
        $Name = $Previous.TrimStart("-")
        $Flag = $Node["_command"].flags.GetEnumerator() | Where-Object {
            $_.Key -eq $Name -or $_.Value.char -eq $Name
        } | Select-Object -First 1
        if ($Flag -and $Flag.Value.options) {
            $Flag.Value.options | Where-Object { $_.StartsWith($WordToComplete) } | ForEach-Object {
                & $Complete $_ $Flag.Value.summary
            }
            return
        }
    }

    if ($Word.StartsWith("-")) {
        # Flags of the current command, skipping used ones unless they repeat.
        if ($Node.ContainsKey("_command")) {
            $Node["_command"].flags.GetEnumerator() | Sort-Object -Property Key | Where-Object {
                $_.Key.StartsWith($Word.TrimStart("-")) -and ($_.Value.multiple -eq $true -or
                    ($Flags -notcontains $_.Key -and (-not $_.Value.char -or $Flags -notcontains $_.Value.char)))
            } | ForEach-Object {
                & $Complete "--$($_.Key)" $_.Value.summary
            }
        }
        return
    }

    # Children of the current topic, command or co-topic.
    $Node.GetEnumerator() | Where-Object {
        -not $_.Key.StartsWith("_") -and $_.Key.StartsWith($Word)
    } | Sort-Object -Property Key | ForEach-Object {
        $Summary = $_.Value["_summary"]
        if (-not $Summary -and $_.Value.ContainsKey("_command")) {
            $Summary = $_.Value["_command"].summary
        }
        & $Complete "$Prefix$($_.Key)" $Summary
    }
}

Register-ArgumentCompleter -Native -CommandName {{names}} -ScriptBlock $scriptblock
`
