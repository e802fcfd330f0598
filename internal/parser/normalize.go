// Package parser implements the deterministic intent pipeline: text
// normalization, command classification, temporal resolution, and title
// extraction, composed into the local fallback parser.
package parser

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	whitespaceRe = regexp.MustCompile(`\s+`)

	// Voice dictation tends to glue a stray trailing letter onto the
	// meridiem marker ("6 pmm", "7 amn"). Only the known typo shapes are
	// repaired, and only when a digit precedes, so real words that start
	// with am/pm ("5 amp fuse", "6 ambulances") are untouched.
	strayMeridiemRe = regexp.MustCompile(`(\d)\s*([ap])m[mn]\b`)

	dottedTimeRe     = regexp.MustCompile(`\b(\d{1,2})\.(\d{2})\s*([ap]m)\b`)
	spacedMeridiemRe = regexp.MustCompile(`\b(\d{1,2}(?::\d{2})?)\s+([ap]m)\b`)

	halfPastRe    = regexp.MustCompile(`\bhalf past (\d{1,2})\b`)
	quarterPastRe = regexp.MustCompile(`\bquarter past (\d{1,2})\b`)
	quarterToRe   = regexp.MustCompile(`\bquarter to (\d{1,2})\b`)
	oclockRe      = regexp.MustCompile(`\b(\d{1,2})\s*o'?clock\b`)
)

// Normalize cleans raw input into the canonical lowercase form the matching
// stages operate on. It never fails; idioms it does not recognize pass
// through as plain text and fall out of the pipeline as a Task.
func Normalize(raw string) string {
	text := strings.ToLower(raw)
	text = strings.TrimSpace(whitespaceRe.ReplaceAllString(text, " "))

	text = strayMeridiemRe.ReplaceAllString(text, "${1}${2}m")

	text = halfPastRe.ReplaceAllStringFunc(text, func(m string) string {
		h := halfPastRe.FindStringSubmatch(m)[1]
		return h + ":30"
	})
	text = quarterPastRe.ReplaceAllStringFunc(text, func(m string) string {
		h := quarterPastRe.FindStringSubmatch(m)[1]
		return h + ":15"
	})
	text = quarterToRe.ReplaceAllStringFunc(text, func(m string) string {
		h, _ := strconv.Atoi(quarterToRe.FindStringSubmatch(m)[1])
		h--
		if h < 1 {
			h = 12
		}
		return strconv.Itoa(h) + ":45"
	})
	text = oclockRe.ReplaceAllString(text, "$1:00")

	text = dottedTimeRe.ReplaceAllString(text, "$1:$2$3")
	text = spacedMeridiemRe.ReplaceAllString(text, "$1$2")

	return text
}
