package render

import (
	"testing"

	"wordbook/internal/domain"
	"wordbook/internal/testutil"

	"github.com/stretchr/testify/assert"
)

func TestPartition(t *testing.T) {
	records := []domain.WordRecord{
		testutil.NewTestWord("a", "run", "to move fast", true),
		testutil.NewTestWord("b", "jog", "to run slowly", false),
		testutil.NewTestWord("c", "walk", "to move on foot", false),
		testutil.NewTestWord("d", "sprint", "to run at full speed", true),
	}

	view := Partition(records)

	assert.Equal(t, []string{"c", "b"}, ids(view.Active))
	assert.Equal(t, []string{"d", "a"}, ids(view.Completed))
	assert.Equal(t, []string{"a", "b", "c", "d"}, ids(records), "input must not be reordered")
}

func TestPartition_Empty(t *testing.T) {
	view := Partition(nil)

	assert.Empty(t, view.Active)
	assert.Empty(t, view.Completed)
	assert.NotNil(t, view.Active)
	assert.NotNil(t, view.Completed)
}

func TestRowID(t *testing.T) {
	assert.Equal(t, "word-list-item-1234", RowID("1234"))
}

func TestFormatRow(t *testing.T) {
	tests := []struct {
		name     string
		record   domain.WordRecord
		expected string
	}{
		{
			name:     "without usages",
			record:   testutil.NewTestWord("a", "run", "to move fast", false),
			expected: "run — to move fast",
		},
		{
			name: "with usages",
			record: domain.WordRecord{
				ID:      "a",
				Word:    "run",
				Meaning: "to move fast",
				Usages: []domain.Usage{
					{Expression: "run away", Meaning: "escape"},
					{Expression: "run a shop", Meaning: "manage"},
				},
			},
			expected: "run — to move fast\n    • run away: escape\n    • run a shop: manage",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatRow(tt.record))
		})
	}
}

func TestFormatList(t *testing.T) {
	assert.Equal(t, "Active words\n\nNothing here yet.", FormatList("Active words", nil))

	records := []domain.WordRecord{
		testutil.NewTestWord("b", "jog", "to run slowly", false),
		testutil.NewTestWord("a", "run", "to move fast", false),
	}
	expected := "Active words (2):\n\n1. jog — to run slowly\n\n2. run — to move fast"
	assert.Equal(t, expected, FormatList("Active words", records))
}

func ids(records []domain.WordRecord) []string {
	out := make([]string, 0, len(records))
	for _, r := range records {
		out = append(out, r.ID)
	}
	return out
}
