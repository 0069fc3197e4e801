// Package syntaxcheck parses rendered shell scripts so a broken template is
// reported before it is written to disk.
package syntaxcheck

import (
	"errors"
	"strings"

	"mvdan.cc/sh/v3/syntax"

	acerrors "github.com/agentstation/acgen/pkg/errors"
)

// Bash parses script as bash. name is used in error positions.
// Parse failures are returned as a *errors.ParseError with format "bash".
func Bash(name, script string) error {
	parser := syntax.NewParser(syntax.Variant(syntax.LangBash))
	if _, err := parser.Parse(strings.NewReader(script), name); err != nil {
		var perr syntax.ParseError
		if errors.As(err, &perr) {
			return &acerrors.ParseError{
				Format:  "bash",
				File:    name,
				Line:    int(perr.Pos.Line()),
				Column:  int(perr.Pos.Col()),
				Message: perr.Text,
				Err:     err,
			}
		}
		return acerrors.WrapParse("bash", name, err)
	}
	return nil
}
