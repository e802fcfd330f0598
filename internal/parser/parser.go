package parser

import (
	"regexp"
	"strings"

	"tempo/internal/intent"
)

var taskVerbsRe = regexp.MustCompile(`(?i)\b(add|create|remind me to|reminder)\b`)

// ParseLocal is the deterministic fast path: normalize, short-circuit on
// command patterns, then resolve time and title into an Event. Input with no
// command or time signal becomes a Task. It always returns a usable Intent.
func ParseLocal(raw string, clock intent.ReferenceClock) intent.Intent {
	normalized := Normalize(raw)

	if cmd, ok := ClassifyCommand(normalized); ok {
		return cmd
	}

	if span, ok := ResolveTime(normalized, clock); ok {
		return intent.Event{
			Title: ExtractTitle(raw),
			Start: span.Start,
			End:   span.End,
		}
	}

	return intent.Task{Description: TaskDescription(raw)}
}

// TaskDescription strips task verbs ("add", "remind me to") from the input.
// Falls back to the raw text verbatim when stripping empties it, preserving
// the contract that every input yields some output.
func TaskDescription(raw string) string {
	desc := taskVerbsRe.ReplaceAllString(raw, " ")
	desc = strings.TrimSpace(whitespaceRe.ReplaceAllString(desc, " "))
	if desc == "" {
		return raw
	}
	return desc
}
