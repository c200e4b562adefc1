package extract

import (
	"strings"
	"unicode"
)

// CleanText normalizes line endings to LF and drops control characters
// other than newline and tab. Spacing, blank lines and letter case are
// kept so keyword matching and length checks see the extracted text as is.
func CleanText(content string) string {
	if content == "" {
		return ""
	}

	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.ReplaceAll(content, "\r", "\n")

	return strings.Map(func(r rune) rune {
		if r == '\n' || r == '\t' {
			return r
		}
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, content)
}
