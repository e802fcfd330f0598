package resolver

import (
	"regexp"
	"strings"
	"time"

	"tempo/internal/intent"
	"tempo/internal/parser"
)

var leadingVerbRe = regexp.MustCompile(`(?i)^(schedule|add|create|set up|book)\s*`)

// correct applies the post-selection correction passes and the final
// invariant repairs. Events get the full treatment; the other variants only
// need their target/description backstops.
func (e *Engine) correct(reqID, raw string, clock intent.ReferenceClock, candidate intent.Intent) intent.Intent {
	switch v := candidate.(type) {
	case intent.Event:
		hasTomorrow := parser.HasTomorrow(raw)
		if hasTomorrow {
			e.logger.Debug("[%s] forcing tomorrow date %s", reqID, clock.Tomorrow)
			v = forceTomorrow(v, clock)
		}
		v = e.repairTitleTime(reqID, v, clock, hasTomorrow)
		return repairEventInvariants(v, clock, raw)
	case intent.Task:
		if v.Description == "" {
			v.Description = raw
		}
		return v
	case intent.Delete:
		if strings.TrimSpace(v.Target) == "" {
			v.Target = "event"
		}
		return v
	case intent.Edit:
		if strings.TrimSpace(v.Target) == "" {
			v.Target = "event"
		}
		if v.Changes == nil {
			v.Changes = map[string]string{}
		}
		return v
	default:
		return candidate
	}
}

// forceTomorrow pins both timestamps to the reference clock's tomorrow,
// preserving whatever time-of-day was resolved. The generative path
// frequently emits a syntactically valid but semantically wrong date when
// relative-day words are present; the raw text is the authority here.
func forceTomorrow(event intent.Event, clock intent.ReferenceClock) intent.Event {
	hour, minute := 10, 0
	if !event.Start.IsZero() {
		hour, minute = event.Start.Hour(), event.Start.Minute()
	}
	event.Start = clock.TomorrowAt(hour, minute)

	if !event.End.IsZero() {
		event.End = clock.TomorrowAt(event.End.Hour(), event.End.Minute())
	} else {
		event.End = event.Start.Add(time.Hour)
	}
	return event
}

// repairTitleTime re-derives the time-of-day when the extracted title still
// contains a time phrase the extractor or model failed to strip. The
// already-decided date is kept; only the clock time is overwritten, and the
// phrase is stripped from the title a second time.
func (e *Engine) repairTitleTime(reqID string, event intent.Event, clock intent.ReferenceClock, hasTomorrow bool) intent.Event {
	if !parser.HasTimePhrase(event.Title) {
		return event
	}

	probe := parser.Normalize(event.Title)
	if hasTomorrow {
		probe += " tomorrow"
	}
	span, ok := parser.ResolveTime(probe, clock)
	if !ok {
		return event
	}

	e.logger.Debug("[%s] re-deriving time from title overlap", reqID)

	day := event.Start
	if day.IsZero() {
		if hasTomorrow {
			day = clock.TomorrowAt(0, 0)
		} else {
			day = clock.TodayAt(0, 0)
		}
	}
	start := time.Date(day.Year(), day.Month(), day.Day(),
		span.Start.Hour(), span.Start.Minute(), 0, 0, day.Location())

	event.Start = start
	event.End = start.Add(time.Hour)
	event.Title = parser.ExtractTitle(event.Title)
	return event
}

// repairEventInvariants enforces the contract every Event leaves with:
// a non-empty title, a concrete start, and an end strictly after it.
func repairEventInvariants(event intent.Event, clock intent.ReferenceClock, raw string) intent.Event {
	if strings.TrimSpace(event.Title) == "" || strings.EqualFold(event.Title, "null") {
		event.Title = fallbackTitle(raw)
	}
	if event.Start.IsZero() {
		event.Start = clock.Now.Add(time.Hour)
	}
	if !event.End.After(event.Start) {
		event.End = event.Start.Add(time.Hour)
	}
	return event
}

// fallbackTitle derives a title from the raw input: leading scheduling verb
// dropped, truncated to 40 runes, placeholder as the last resort.
func fallbackTitle(raw string) string {
	title := strings.TrimSpace(leadingVerbRe.ReplaceAllString(strings.TrimSpace(raw), ""))
	if runes := []rune(title); len(runes) > 40 {
		title = string(runes[:40])
	}
	if title == "" {
		return parser.DefaultTitle
	}
	return title
}
