// Package render reflects the word list into active and completed groupings.
package render

import (
	"fmt"
	"strings"

	"wordbook/internal/domain"

	"github.com/samber/lo"
)

// RowIDPrefix prefixes the element id of every rendered word row
const RowIDPrefix = "word-list-item"

// Partition splits records by memorized flag, newest first within each group
func Partition(records []domain.WordRecord) domain.ListView {
	completed, active := lo.FilterReject(records, func(r domain.WordRecord, _ int) bool {
		return r.IsMarkedAsMemorized
	})

	return domain.ListView{
		Active:    newestFirst(active),
		Completed: newestFirst(completed),
	}
}

func newestFirst(records []domain.WordRecord) []domain.WordRecord {
	out := make([]domain.WordRecord, 0, len(records))
	for i := len(records) - 1; i >= 0; i-- {
		out = append(out, records[i])
	}
	return out
}

// RowID returns the element id used for the row of a word
func RowID(id string) string {
	return RowIDPrefix + "-" + id
}

// FormatRow renders a word as plain text, one usage per indented line
func FormatRow(r domain.WordRecord) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s — %s", r.Word, r.Meaning)
	for _, u := range r.Usages {
		fmt.Fprintf(&b, "\n    • %s: %s", u.Expression, u.Meaning)
	}
	return b.String()
}

// FormatList renders a numbered list of words under a title
func FormatList(title string, records []domain.WordRecord) string {
	if len(records) == 0 {
		return title + "\n\nNothing here yet."
	}

	rows := lo.Map(records, func(r domain.WordRecord, i int) string {
		return fmt.Sprintf("%d. %s", i+1, FormatRow(r))
	})
	return fmt.Sprintf("%s (%d):\n\n%s", title, len(records), strings.Join(rows, "\n\n"))
}
