package validate

import (
	"fmt"

	"github.com/dataloom/preflight/internal/sheet"
)

// Sheet names used to attribute cross-reference findings.
const (
	SheetClients = "clients"
	SheetTasks   = "tasks"
	SheetWorkers = "workers"
)

// ValidateCrossReferences checks constraints no single sheet can verify
// alone. All three sheets must be supplied; an absent sheet is passed as an
// empty slice, which simply yields no findings for that dimension — zero
// tasks means every requested task is unknown, not a configuration error.
//
// Each issue carries the sheet it is attributed to, since the combined list
// spans all three.
func ValidateCrossReferences(clients, tasks, workers []sheet.Row) []Issue {
	var is issues

	knownTasks := make(map[string]bool, len(tasks))
	for _, t := range tasks {
		if id := t[sheet.FieldTaskID]; id != "" {
			knownTasks[id] = true
		}
	}

	offeredSkills := make(map[string]bool)
	for _, w := range workers {
		for _, skill := range sheet.SplitList(w[sheet.FieldSkills]) {
			if skill != "" {
				offeredSkills[skill] = true
			}
		}
	}

	// Unknown task references, attributed to the client row.
	for i, c := range clients {
		for _, id := range sheet.SplitList(c[sheet.FieldRequestedTaskIDs]) {
			if id != "" && !knownTasks[id] {
				is.add(i, sheet.FieldRequestedTaskIDs,
					fmt.Sprintf("Unknown TaskID %q in RequestedTaskIDs", id))
			}
		}
	}

	// Skill coverage, attributed to the task row. Advisory: the data is
	// well formed, the workforce just cannot satisfy it yet.
	for i, t := range tasks {
		for _, skill := range sheet.SplitList(t[sheet.FieldRequiredSkills]) {
			if skill != "" && !offeredSkills[skill] {
				is.warn(i, sheet.FieldRequiredSkills,
					fmt.Sprintf("Required skill %q not available in any worker", skill))
			}
		}
	}

	// Duration gate, re-asserted here so the cross-reference report is
	// self-contained regardless of whether per-sheet validation ran.
	for i, t := range tasks {
		if d, ok := sheet.IntField(t, sheet.FieldDuration); !ok || d < 1 {
			is.add(i, sheet.FieldDuration,
				fmt.Sprintf("Duration must be an integer >= 1, got %q", t[sheet.FieldDuration]))
		}
	}

	// AvailableSlots gate, same reasoning.
	for i, w := range workers {
		checkAvailableSlots(w, i, &is)
	}

	// Attribute each finding to its sheet. The pass boundaries above are
	// fixed, so the attribution is positional.
	out := is.list
	for j := range out {
		switch out[j].Column {
		case sheet.FieldRequestedTaskIDs:
			out[j].Sheet = SheetClients
		case sheet.FieldRequiredSkills, sheet.FieldDuration:
			out[j].Sheet = SheetTasks
		case sheet.FieldAvailableSlots:
			out[j].Sheet = SheetWorkers
		}
	}
	return out
}
