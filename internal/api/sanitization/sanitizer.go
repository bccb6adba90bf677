package sanitization

import "strings"

// htmlEscaper escapes the characters that could change meaning when a
// field is interpolated into an HTML mail body
var htmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#39;",
)

// EscapeHTML renders untrusted text inert for embedding in HTML
func EscapeHTML(input string) string {
	return htmlEscaper.Replace(input)
}

// Truncate cuts a string to at most max bytes
func Truncate(input string, max int) string {
	if len(input) <= max {
		return input
	}
	return input[:max]
}

// SanitizeField prepares a field value for interpolation into an HTML
// mail body: trim, truncate to its maximum length, then escape. This
// runs even for fields the validators already constrain - it is the
// last line of defense against markup injection into outbound mail.
func SanitizeField(input string, max int) string {
	return EscapeHTML(Truncate(strings.TrimSpace(input), max))
}
