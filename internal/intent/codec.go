package intent

import (
	"fmt"
	"strings"
	"time"

	"tempo/internal/jsonx"
)

// WireTimeLayout is the timestamp form the execution layer consumes:
// a concrete local calendar date and time-of-day, no zone designator.
const WireTimeLayout = "2006-01-02T15:04:05"

// envelope is the flat wire shape shared by every variant. Field names are
// fixed for compatibility with the execution layer.
type envelope struct {
	Type     string            `json:"type"`
	Title    string            `json:"title,omitempty"`
	Start    string            `json:"start,omitempty"`
	End      string            `json:"end,omitempty"`
	Task     string            `json:"task,omitempty"`
	Target   string            `json:"target,omitempty"`
	Changes  map[string]string `json:"changes,omitempty"`
	Question string            `json:"question,omitempty"`
	Message  string            `json:"message,omitempty"`
}

// Decode parses a wire-format JSON object into an Intent. Timestamps are
// parsed leniently: model output wanders between layouts, and a zero time is
// preferable to a hard failure because the correction layer repairs it.
func Decode(data []byte) (Intent, error) {
	var env envelope
	if err := jsonx.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("decode intent: %w", err)
	}

	switch Kind(strings.ToLower(strings.TrimSpace(env.Type))) {
	case KindEvent:
		return Event{
			Title: env.Title,
			Start: ParseTimestamp(env.Start),
			End:   ParseTimestamp(env.End),
		}, nil
	case KindTask:
		return Task{Description: env.Task}, nil
	case KindDelete:
		return Delete{Target: env.Target}, nil
	case KindEdit:
		changes := env.Changes
		if changes == nil {
			changes = map[string]string{}
		}
		return Edit{Target: env.Target, Changes: changes}, nil
	case KindQuery:
		return Query{Question: env.Question}, nil
	case KindAnswer:
		return Answer{Message: env.Message}, nil
	default:
		return nil, fmt.Errorf("decode intent: unknown type %q", env.Type)
	}
}

// Encode renders an Intent in the flat wire shape.
func Encode(in Intent) ([]byte, error) {
	return jsonx.MarshalIndent(toEnvelope(in), "", "  ")
}

func toEnvelope(in Intent) envelope {
	switch v := in.(type) {
	case Event:
		return envelope{
			Type:  string(KindEvent),
			Title: v.Title,
			Start: v.Start.Format(WireTimeLayout),
			End:   v.End.Format(WireTimeLayout),
		}
	case Task:
		return envelope{Type: string(KindTask), Task: v.Description}
	case Delete:
		return envelope{Type: string(KindDelete), Target: v.Target}
	case Edit:
		return envelope{Type: string(KindEdit), Target: v.Target, Changes: v.Changes}
	case Query:
		return envelope{Type: string(KindQuery), Question: v.Question}
	case Answer:
		return envelope{Type: string(KindAnswer), Message: v.Message}
	default:
		return envelope{}
	}
}

var timestampLayouts = []string{
	WireTimeLayout,
	time.RFC3339,
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseTimestamp tries the known timestamp layouts in order and returns the
// zero time when none match.
func ParseTimestamp(s string) time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}
	}
	for _, layout := range timestampLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t
		}
	}
	return time.Time{}
}
