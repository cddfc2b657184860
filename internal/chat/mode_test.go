package chat

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseMode(t *testing.T) {
	tests := []struct {
		in        string
		wantMode  Mode
		wantQuery string
	}{
		{"[GOALS] write a goal", ModeGoals, "write a goal"},
		{"[feedback] review my note", ModeFeedback, "review my note"},
		{"  [Self] how did I do?  ", ModeSelf, "how did I do?"},
		{"no tag here", ModeGoals, "no tag here"},
		{"[GOALS]missing space", ModeGoals, "[GOALS]missing space"},
		{"[OTHER] unknown tag", ModeGoals, "[OTHER] unknown tag"},
		{"[SELF] line one\nline two", ModeSelf, "line one\nline two"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			mode, query := ParseMode(tt.in)
			assert.Equal(t, tt.wantMode, mode)
			assert.Equal(t, tt.wantQuery, query)
		})
	}
}

func TestProfileFor(t *testing.T) {
	assert.Contains(t, profileFor(ModeFeedback).systemPrompt, "feedback")
	assert.Equal(t, fallbackProfile, profileFor(Mode("unknown")))
	assert.Equal(t, "llama-3.3-70b-instruct", profileFor(ModeGoals).model)
}
