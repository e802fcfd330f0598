package intent

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tempo/internal/jsonx"
)

func TestEncodeEvent(t *testing.T) {
	data, err := Encode(Event{
		Title: "Gym",
		Start: time.Date(2024, 6, 1, 18, 0, 0, 0, time.Local),
		End:   time.Date(2024, 6, 1, 20, 0, 0, 0, time.Local),
	})
	require.NoError(t, err)

	var env map[string]any
	require.NoError(t, jsonx.Unmarshal(data, &env))
	assert.Equal(t, "event", env["type"])
	assert.Equal(t, "Gym", env["title"])
	assert.Equal(t, "2024-06-01T18:00:00", env["start"])
	assert.Equal(t, "2024-06-01T20:00:00", env["end"])
	assert.NotContains(t, env, "task")
	assert.NotContains(t, env, "target")
}

func TestEncodeOtherVariants(t *testing.T) {
	tests := []struct {
		name string
		in   Intent
		want map[string]any
	}{
		{
			"task", Task{Description: "buy milk"},
			map[string]any{"type": "task", "task": "buy milk"},
		},
		{
			"delete", Delete{Target: "lunch"},
			map[string]any{"type": "delete", "target": "lunch"},
		},
		{
			"query", Query{Question: "what's next"},
			map[string]any{"type": "query", "question": "what's next"},
		},
		{
			"answer", Answer{Message: "nothing scheduled"},
			map[string]any{"type": "answer", "message": "nothing scheduled"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := Encode(tt.in)
			require.NoError(t, err)

			var env map[string]any
			require.NoError(t, jsonx.Unmarshal(data, &env))
			assert.Equal(t, tt.want, env)
		})
	}
}

func TestDecodeEvent(t *testing.T) {
	got, err := Decode([]byte(`{
		"type": "event",
		"title": "Dentist",
		"start": "2024-06-02T09:00:00",
		"end": "2024-06-02T10:00:00"
	}`))
	require.NoError(t, err)
	require.IsType(t, Event{}, got)

	event := got.(Event)
	assert.Equal(t, "Dentist", event.Title)
	assert.Equal(t, time.Date(2024, 6, 2, 9, 0, 0, 0, time.Local), event.Start)
	assert.Equal(t, time.Date(2024, 6, 2, 10, 0, 0, 0, time.Local), event.End)
}

func TestDecodeTypeCaseInsensitive(t *testing.T) {
	got, err := Decode([]byte(`{"type": " Event ", "title": "X"}`))
	require.NoError(t, err)
	assert.Equal(t, KindEvent, got.Kind())
}

func TestDecodeEditDefaultsChanges(t *testing.T) {
	got, err := Decode([]byte(`{"type": "edit", "target": "standup"}`))
	require.NoError(t, err)
	require.IsType(t, Edit{}, got)

	edit := got.(Edit)
	assert.Equal(t, "standup", edit.Target)
	assert.NotNil(t, edit.Changes)
}

func TestDecodeUnknownType(t *testing.T) {
	_, err := Decode([]byte(`{"type": "banana"}`))
	assert.Error(t, err)

	_, err = Decode([]byte(`{"title": "no type at all"}`))
	assert.Error(t, err)
}

func TestDecodeBadTimestampYieldsZero(t *testing.T) {
	got, err := Decode([]byte(`{"type": "event", "title": "X", "start": "sometime soon"}`))
	require.NoError(t, err)
	assert.True(t, got.(Event).Start.IsZero())
}

func TestParseTimestamp(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  time.Time
	}{
		{"wire layout", "2024-06-01T18:00:00", time.Date(2024, 6, 1, 18, 0, 0, 0, time.Local)},
		{"rfc3339 utc", "2024-06-01T18:00:00Z", time.Date(2024, 6, 1, 18, 0, 0, 0, time.UTC)},
		{"no seconds", "2024-06-01T18:00", time.Date(2024, 6, 1, 18, 0, 0, 0, time.Local)},
		{"space separator", "2024-06-01 18:00:00", time.Date(2024, 6, 1, 18, 0, 0, 0, time.Local)},
		{"date only", "2024-06-01", time.Date(2024, 6, 1, 0, 0, 0, 0, time.Local)},
		{"garbage", "not a time", time.Time{}},
		{"empty", "", time.Time{}},
		{"padded", "  2024-06-01T18:00:00  ", time.Date(2024, 6, 1, 18, 0, 0, 0, time.Local)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseTimestamp(tt.input)
			assert.True(t, got.Equal(tt.want), "got %v want %v", got, tt.want)
		})
	}
}
