package notif

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var englishPrinter = message.NewPrinter(language.English)

// kiloThreshold is where counts switch from separator formatting to the
// one-decimal K suffix.
const kiloThreshold = 100000

// FormatCount renders a large count for notification copy: thousands
// separators below 100,000 and a one-decimal K suffix at or above it.
func FormatCount(n int) string {
	if n < kiloThreshold {
		return englishPrinter.Sprintf("%d", n)
	}
	k := float64(n) / 1000
	s := fmt.Sprintf("%.1f", k)
	s = strings.TrimSuffix(s, ".0")
	return s + "K"
}

const excerptLimit = 300

// excerpt trims comment content for use as a notification description.
func excerpt(content string) string {
	content = strings.TrimSpace(content)
	if len(content) <= excerptLimit {
		return content
	}
	trimmed := content[:excerptLimit]
	if idx := strings.LastIndex(trimmed, " "); idx > 0 {
		trimmed = trimmed[:idx]
	}
	return trimmed + "..."
}

// bold wraps text in the limited inline markup titles may carry.
func bold(text string) string {
	return "<b>" + text + "</b>"
}
