package validate

import (
	"fmt"

	"github.com/dataloom/preflight/internal/sheet"
)

// ValidateWorkers checks the worker sheet: required identifier, duplicate
// WorkerID, skill-list token shape, and the AvailableSlots embedded array.
func ValidateWorkers(rows []sheet.Row) []Issue {
	var is issues

	// Schema pass.
	for i, row := range rows {
		if row[sheet.FieldWorkerID] == "" {
			is.add(i, sheet.FieldWorkerID, "Worker ID is required")
		}
	}

	// Duplicate-key pass.
	seen := make(map[string]bool, len(rows))
	for i, row := range rows {
		id := row[sheet.FieldWorkerID]
		if id == "" {
			continue
		}
		if seen[id] {
			is.add(i, sheet.FieldWorkerID, fmt.Sprintf("Duplicate WorkerID %q", id))
		}
		seen[id] = true
	}

	// Embedded-structure pass.
	for i, row := range rows {
		checkAvailableSlots(row, i, &is)
	}

	// List-format pass.
	for i, row := range rows {
		for _, skill := range sheet.SplitList(row[sheet.FieldSkills]) {
			if skill == "" {
				is.warn(i, sheet.FieldSkills, "Empty skill token in Skills")
			}
		}
	}

	return is.list
}

// checkAvailableSlots distinguishes "not JSON at all" from "JSON with the
// wrong shape": the former is a parse problem, the latter a shape problem,
// and downstream reporting treats them differently.
func checkAvailableSlots(row sheet.Row, idx int, is *issues) {
	raw := row[sheet.FieldAvailableSlots]
	if raw == "" {
		return
	}
	slots, err := decodeIntSlots(raw)
	switch {
	case err != nil:
		is.add(idx, sheet.FieldAvailableSlots, "Invalid AvailableSlots JSON format")
	case slots == nil:
		is.add(idx, sheet.FieldAvailableSlots, "AvailableSlots must be an array of integers")
	}
}
