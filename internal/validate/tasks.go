package validate

import (
	"fmt"

	"github.com/dataloom/preflight/internal/sheet"
)

// ValidateTasks checks the task sheet: required identifier, duplicate
// TaskID, Duration bounds, and skill-list token shape.
func ValidateTasks(rows []sheet.Row) []Issue {
	var is issues

	// Schema pass.
	for i, row := range rows {
		if row[sheet.FieldTaskID] == "" {
			is.add(i, sheet.FieldTaskID, "Task ID is required")
		}
		if d, ok := sheet.IntField(row, sheet.FieldDuration); !ok || d < 1 {
			is.add(i, sheet.FieldDuration,
				fmt.Sprintf("Duration must be an integer >= 1, got %q", row[sheet.FieldDuration]))
		}
	}

	// Duplicate-key pass.
	seen := make(map[string]bool, len(rows))
	for i, row := range rows {
		id := row[sheet.FieldTaskID]
		if id == "" {
			continue
		}
		if seen[id] {
			is.add(i, sheet.FieldTaskID, fmt.Sprintf("Duplicate TaskID %q", id))
		}
		seen[id] = true
	}

	// List-format pass. The skill list may be empty; stray commas inside a
	// non-empty list leave empty tokens behind and are worth a warning.
	for i, row := range rows {
		for _, skill := range sheet.SplitList(row[sheet.FieldRequiredSkills]) {
			if skill == "" {
				is.warn(i, sheet.FieldRequiredSkills, "Empty skill token in RequiredSkills")
			}
		}
	}

	return is.list
}
