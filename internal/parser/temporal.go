package parser

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"tempo/internal/intent"
)

// TimePatternRe matches candidate clock-time references: an hour, optional
// minutes, optional meridiem marker (dotted forms included for dictation
// input). A match is only treated as a real time reference when accepted by
// acceptTimeMatch.
var TimePatternRe = regexp.MustCompile(`(?i)(\d{1,2})(?::(\d{2}))?\s*([ap]m\b|[ap]\.m\.)?`)

var dayPartRe = regexp.MustCompile(`(?i)\b(morning|noon|midday|afternoon|evening|night|midnight)\b`)

// dayPartHours maps vague time-of-day words to fixed clock hours.
var dayPartHours = map[string]int{
	"morning":   9,
	"noon":      12,
	"midday":    12,
	"afternoon": 14,
	"evening":   18,
	"night":     21,
	"midnight":  0,
}

var tomorrowRe = regexp.MustCompile(`(?i)\b(tomorrow|tommorow)\b`)

// meridiemTimeRe is the stricter form used to spot a time phrase left behind
// in an extracted title: the meridiem marker is required.
var meridiemTimeRe = regexp.MustCompile(`(?i)(\d{1,2})(?::(\d{2}))?\s*([ap]m\b|[ap]\.m\.)`)

// HasTomorrow reports whether text contains a relative-tomorrow word,
// including the common misspelling.
func HasTomorrow(text string) bool {
	return tomorrowRe.MatchString(text)
}

// HasTimePhrase reports whether text still contains an explicit
// meridiem-marked clock time.
func HasTimePhrase(text string) bool {
	return meridiemTimeRe.MatchString(text)
}

// TimeSpan is a fully resolved start/end pair.
type TimeSpan struct {
	Start time.Time
	End   time.Time
}

// ResolveTime extracts explicit clock times or day-part keywords from text
// and resolves them against the reference clock. The first accepted time
// match is the start, a second one the end; with no end the event runs one
// hour, wrapping past midnight. Reports false when the text carries no time
// signal at all, which is the caller's cue to classify as a Task.
func ResolveTime(text string, clock intent.ReferenceClock) (TimeSpan, bool) {
	startH, startM := 0, 0
	endH, endM := 0, 0
	matched := false

	var accepted [][]string
	for _, m := range TimePatternRe.FindAllStringSubmatch(text, -1) {
		if acceptTimeMatch(m) {
			accepted = append(accepted, m)
		}
	}

	if len(accepted) > 0 {
		matched = true
		startH, startM = normalizeClockTime(accepted[0])
		if len(accepted) > 1 {
			endH, endM = normalizeClockTime(accepted[1])
		} else {
			endH, endM = (startH+1)%24, startM
		}
	} else if m := dayPartRe.FindStringSubmatch(text); m != nil {
		matched = true
		startH = dayPartHours[strings.ToLower(m[1])]
		endH = (startH + 1) % 24
	}

	if !matched {
		return TimeSpan{}, false
	}

	// A time that has already passed today must mean tomorrow.
	useTomorrow := tomorrowRe.MatchString(text)
	if !useTomorrow {
		nowH, nowM := clock.Now.Hour(), clock.Now.Minute()
		if startH < nowH || (startH == nowH && startM < nowM) {
			useTomorrow = true
		}
	}

	var span TimeSpan
	if useTomorrow {
		span = TimeSpan{Start: clock.TomorrowAt(startH, startM), End: clock.TomorrowAt(endH, endM)}
	} else {
		span = TimeSpan{Start: clock.TodayAt(startH, startM), End: clock.TodayAt(endH, endM)}
	}
	if !span.End.After(span.Start) {
		// The end wrapped past midnight, or equals the start.
		span.End = span.End.AddDate(0, 0, 1)
	}
	return span, true
}

// acceptTimeMatch filters regex candidates down to plausible time
// references: a meridiem marker, an explicit minutes component, or a bare
// number in 1..12 that could be a clock hour.
func acceptTimeMatch(m []string) bool {
	if m[3] != "" || m[2] != "" {
		return true
	}
	h, err := strconv.Atoi(m[1])
	return err == nil && h >= 1 && h <= 12
}

// normalizeClockTime converts a regex match into a 24h hour/minute pair.
// With a meridiem the standard 12h conversion applies; without one, a bare
// hour of 6 or less is assumed PM (business hours). Out-of-range values are
// clamped to noon and :00 rather than rejected.
func normalizeClockTime(m []string) (hour, minute int) {
	hour, _ = strconv.Atoi(m[1])
	if m[2] != "" {
		minute, _ = strconv.Atoi(m[2])
	}

	switch meridiem := strings.ReplaceAll(strings.ToLower(m[3]), ".", ""); meridiem {
	case "pm":
		if hour < 12 {
			hour += 12
		}
	case "am":
		if hour == 12 {
			hour = 0
		}
	default:
		if hour >= 1 && hour <= 6 {
			hour += 12
		}
	}

	if hour > 23 {
		hour = 12
	}
	if minute > 59 {
		minute = 0
	}
	return hour, minute
}
