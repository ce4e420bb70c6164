package handler

import (
	"testing"

	"wordbook/internal/domain"
	"wordbook/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanCallbackData(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "normal string",
			input:    "mem_abc",
			expected: "mem_abc",
		},
		{
			name:     "string with whitespace",
			input:    "  mem_abc  ",
			expected: "mem_abc",
		},
		{
			name:     "unique prefix",
			input:    "\fdel_abc",
			expected: "del_abc",
		},
		{
			name:     "string with tab",
			input:    "mem\t_abc",
			expected: "mem_abc",
		},
		{
			name:     "empty string",
			input:    "",
			expected: "",
		},
		{
			name:     "string with unprintable characters",
			input:    "mem_\x00abc\x01",
			expected: "mem_abc",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := cleanCallbackData(tt.input)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestParseWordAction(t *testing.T) {
	id := "3f8c2a9e-0d4b-4a57-9f0e-1c2b3d4e5f60"

	tests := []struct {
		name           string
		data           string
		expectedAction string
		expectedID     string
		expectedOK     bool
	}{
		{name: "memorize", data: "mem_" + id, expectedAction: actionMemorize, expectedID: id, expectedOK: true},
		{name: "unmemorize", data: "unmem_" + id, expectedAction: actionUnmemorize, expectedID: id, expectedOK: true},
		{name: "delete", data: "del_" + id, expectedAction: actionDelete, expectedID: id, expectedOK: true},
		{name: "unknown action", data: "day_20240101", expectedOK: false},
		{name: "missing id", data: "mem_", expectedOK: false},
		{name: "no separator", data: "mem", expectedOK: false},
		{name: "empty", data: "", expectedOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			action, gotID, ok := parseWordAction(tt.data)
			assert.Equal(t, tt.expectedOK, ok)
			assert.Equal(t, tt.expectedAction, action)
			assert.Equal(t, tt.expectedID, gotID)
		})
	}
}

func TestWordActionData_RoundTrip(t *testing.T) {
	data := wordActionData(actionDelete, "abc-123")

	action, id, ok := parseWordAction(cleanCallbackData("\f" + data))

	require.True(t, ok)
	assert.Equal(t, actionDelete, action)
	assert.Equal(t, "abc-123", id)
	assert.LessOrEqual(t, len("\f"+wordActionData(actionUnmemorize, "3f8c2a9e-0d4b-4a57-9f0e-1c2b3d4e5f60")), 64)
}

func TestListMessage(t *testing.T) {
	view := domain.ListView{
		Active: []domain.WordRecord{
			testutil.NewTestWord("b", "jog", "to run slowly", false),
			testutil.NewTestWord("a", "walk", "to move on foot", false),
		},
		Completed: []domain.WordRecord{
			testutil.NewTestWord("c", "run", "to move fast", true),
		},
	}

	text, markup := listMessage(view, false)
	assert.Contains(t, text, "Active words (2)")
	assert.Contains(t, text, "1. jog — to run slowly")
	require.Len(t, markup.InlineKeyboard, 3)
	assert.Equal(t, "mem_b", markup.InlineKeyboard[0][0].Unique)
	assert.Equal(t, "del_b", markup.InlineKeyboard[0][1].Unique)
	assert.Equal(t, "mem_a", markup.InlineKeyboard[1][0].Unique)

	text, markup = listMessage(view, true)
	assert.Contains(t, text, "Completed words (1)")
	require.Len(t, markup.InlineKeyboard, 2)
	assert.Equal(t, "unmem_c", markup.InlineKeyboard[0][0].Unique)
}

func TestMainMenuText(t *testing.T) {
	text := mainMenuText(domain.Stats{Total: 3, Active: 2, Completed: 1})

	assert.Contains(t, text, "Active: 2")
	assert.Contains(t, text, "Completed: 1")
}
