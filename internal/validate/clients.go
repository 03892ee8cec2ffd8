package validate

import (
	"encoding/json"
	"fmt"

	"github.com/dataloom/preflight/internal/sheet"
)

// ValidateClients checks the client sheet. Passes run in a fixed order
// (schema, duplicate keys, embedded JSON, list tokens) and each pass walks
// rows in input order, so output is deterministic. A row with several bad
// fields yields one issue per field.
func ValidateClients(rows []sheet.Row) []Issue {
	var is issues

	// Schema pass.
	for i, row := range rows {
		if row[sheet.FieldClientID] == "" {
			is.add(i, sheet.FieldClientID, "Client ID is required")
		}
		if row[sheet.FieldClientName] == "" {
			is.add(i, sheet.FieldClientName, "Client name is required")
		}
		if p, ok := sheet.IntField(row, sheet.FieldPriorityLevel); !ok {
			is.add(i, sheet.FieldPriorityLevel,
				fmt.Sprintf("PriorityLevel must be %d-%d, got %q",
					sheet.MinPriority, sheet.MaxPriority, row[sheet.FieldPriorityLevel]))
		} else if p < sheet.MinPriority || p > sheet.MaxPriority {
			is.add(i, sheet.FieldPriorityLevel,
				fmt.Sprintf("PriorityLevel must be %d-%d, got %d",
					sheet.MinPriority, sheet.MaxPriority, p))
		}
		if row[sheet.FieldRequestedTaskIDs] == "" {
			is.add(i, sheet.FieldRequestedTaskIDs, "Task IDs required")
		}
		if row[sheet.FieldGroupTag] == "" {
			is.add(i, sheet.FieldGroupTag, "Group tag required")
		}
	}

	// Duplicate-key pass. First occurrence wins and is never flagged.
	seen := make(map[string]bool, len(rows))
	for i, row := range rows {
		id := row[sheet.FieldClientID]
		if id == "" {
			continue
		}
		if seen[id] {
			is.add(i, sheet.FieldClientID, fmt.Sprintf("Duplicate ClientID %q", id))
		}
		seen[id] = true
	}

	// Embedded-structure pass.
	for i, row := range rows {
		if attrs := row[sheet.FieldAttributesJSON]; attrs != "" && !json.Valid([]byte(attrs)) {
			is.add(i, sheet.FieldAttributesJSON, "Invalid JSON in AttributesJSON")
		}
	}

	// List-format pass.
	for i, row := range rows {
		for _, id := range sheet.SplitList(row[sheet.FieldRequestedTaskIDs]) {
			if !sheet.TaskIDPattern.MatchString(id) {
				is.add(i, sheet.FieldRequestedTaskIDs, fmt.Sprintf("Invalid TaskID format %q", id))
			}
		}
	}

	return is.list
}
