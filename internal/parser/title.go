package parser

import (
	"regexp"
	"strings"
)

// DefaultTitle substitutes for events whose input was nothing but time and
// command tokens.
const DefaultTitle = "New Event"

var (
	connectorWordsRe = regexp.MustCompile(`(?i)\b(at|from|to|until|till|on|tomorrow|tommorow|today)\b`)
	actionVerbsRe    = regexp.MustCompile(`(?i)\b(schedule|add|create|set up|book)\b`)
	spokenIdiomRe    = regexp.MustCompile(`(?i)\b(half past|quarter past|quarter to|o'?clock)\b`)
	leadingPunctRe   = regexp.MustCompile(`^[^a-zA-Z0-9]+`)
)

// ExtractTitle recovers a clean event title from the original text by
// stripping everything the other stages consumed: time phrases, day-part
// keywords, connector words, and scheduling verbs. Works on the raw input so
// the title keeps its original casing.
func ExtractTitle(raw string) string {
	title := TimePatternRe.ReplaceAllString(raw, "")
	title = spokenIdiomRe.ReplaceAllString(title, "")
	title = dayPartRe.ReplaceAllString(title, "")
	title = connectorWordsRe.ReplaceAllString(title, "")
	title = actionVerbsRe.ReplaceAllString(title, "")
	title = strings.TrimSpace(whitespaceRe.ReplaceAllString(title, " "))
	title = leadingPunctRe.ReplaceAllString(title, "")
	title = strings.TrimSpace(title)
	if title == "" {
		return DefaultTitle
	}
	return title
}
