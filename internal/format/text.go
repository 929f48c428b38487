package format

import "strings"

var htmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#039;",
)

// EscapeHTML replaces & < > " ' with entities. Apply it to user text before
// it reaches markup.
func EscapeHTML(s string) string {
	return htmlEscaper.Replace(s)
}

// TruncateText returns s when it fits in maxLength characters, otherwise
// its first maxLength-3 characters followed by "...". The result never
// exceeds maxLength characters.
func TruncateText(s string, maxLength int) string {
	runes := []rune(s)
	if len(runes) <= maxLength {
		return s
	}
	if maxLength < 3 {
		if maxLength < 0 {
			maxLength = 0
		}
		return string(runes[:maxLength])
	}
	return string(runes[:maxLength-3]) + "..."
}
