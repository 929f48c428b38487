package format

import (
	"regexp"
	"strings"
)

// Applied in order; each pass sees the output of the previous one. Markers
// inside URLs are not protected.
var (
	urlPattern    = regexp.MustCompile(`(https?://[^\s\p{Z}\x{FEFF}]+)`)
	boldPattern   = regexp.MustCompile(`\*\*(.*?)\*\*`)
	italicPattern = regexp.MustCompile(`\*(.*?)\*`)
	codePattern   = regexp.MustCompile("`(.*?)`")
)

// MessageContent converts agent text into display markup: newlines become
// <br>, URLs become links opening in a new tab, and **bold**, *italic* and
// `code` spans become tags. The input is not escaped; callers pass
// EscapeHTML output when the text is untrusted.
func MessageContent(content string) string {
	content = strings.ReplaceAll(content, "\n", "<br>")
	content = urlPattern.ReplaceAllString(content, `<a href="${1}" target="_blank" rel="noopener noreferrer">${1}</a>`)
	content = boldPattern.ReplaceAllString(content, "<strong>${1}</strong>")
	content = italicPattern.ReplaceAllString(content, "<em>${1}</em>")
	content = codePattern.ReplaceAllString(content, "<code>${1}</code>")
	return content
}
