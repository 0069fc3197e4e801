package autocomplete

import "strings"

var summaryReplacer = strings.NewReplacer(
	"`", "\\\\\\`",
	`"`, `\\\"`,
	"[", `\\[`,
	"]", `\\]`,
)

// SanitizeSummary returns the first line of s with backticks and double
// quotes escaped by three backslashes and square brackets escaped by two,
// ready to embed in a double-quoted shell literal.
//
// It is not idempotent. Call it once per raw string.
func SanitizeSummary(s string) string {
	if s == "" {
		return ""
	}
	s = summaryReplacer.Replace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i]
	}
	return s
}
