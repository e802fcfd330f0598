package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tempo/internal/intent"
)

func TestClassifyCommandDelete(t *testing.T) {
	tests := []struct {
		input  string
		target string
	}{
		{"delete lunch", "lunch"},
		{"remove the dentist appointment", "dentist appointment"},
		{"cancel my 3pm meeting", "3pm meeting"},
		{"please delete the gym event", "gym"},
		{"delete", "event"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := ClassifyCommand(tt.input)
			require.True(t, ok)
			require.IsType(t, intent.Delete{}, got)
			assert.Equal(t, tt.target, got.(intent.Delete).Target)
		})
	}
}

func TestClassifyCommandEdit(t *testing.T) {
	tests := []struct {
		input  string
		target string
	}{
		{"change my 3pm meeting", "3pm meeting"},
		{"move the standup", "standup"},
		{"reschedule dentist", "dentist"},
		{"edit", "event"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := ClassifyCommand(tt.input)
			require.True(t, ok)
			require.IsType(t, intent.Edit{}, got)
			edit := got.(intent.Edit)
			assert.Equal(t, tt.target, edit.Target)
			assert.NotNil(t, edit.Changes)
			assert.Empty(t, edit.Changes)
		})
	}
}

func TestClassifyCommandQuery(t *testing.T) {
	inputs := []string{
		"what's on my schedule",
		"when is my next meeting",
		"how many events do i have today",
		"do i have anything tomorrow",
		"show me tomorrow",
		"list my events",
	}
	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			got, ok := ClassifyCommand(input)
			require.True(t, ok)
			require.IsType(t, intent.Query{}, got)
			assert.Equal(t, input, got.(intent.Query).Question)
		})
	}
}

func TestClassifyCommandNoMatch(t *testing.T) {
	inputs := []string{
		"gym from 6pm to 8pm",
		"buy groceries",
		"dentist tomorrow morning",
		"",
		// Query words only match at the start of the input.
		"tell me what i said",
	}
	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			got, ok := ClassifyCommand(input)
			assert.False(t, ok)
			assert.Nil(t, got)
		})
	}
}

// Command detection must win over time extraction, otherwise inputs like
// "change my 3pm meeting" would come back as new events.
func TestClassifyCommandBeatsTimeSignal(t *testing.T) {
	got, ok := ClassifyCommand("change my 3pm meeting")
	require.True(t, ok)
	assert.Equal(t, intent.KindEdit, got.Kind())

	got, ok = ClassifyCommand("cancel dinner at 7pm")
	require.True(t, ok)
	assert.Equal(t, intent.KindDelete, got.Kind())
}
