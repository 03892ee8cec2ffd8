package store

import (
	"github.com/dataloom/preflight/internal/sheet"
)

// Modification is one proposed cell edit, typically suggested by the
// external data-cleaning collaborator. It is untrusted input: out-of-range
// rows are skipped, and the stated OldValue is advisory only.
type Modification struct {
	RowIndex int    `json:"rowIndex"`
	Field    string `json:"field"`
	OldValue string `json:"oldValue"`
	NewValue string `json:"newValue"`
	Reason   string `json:"reason"`
}

// ApplyModifications applies proposed edits to a sheet copy-on-write and
// recomputes all issues. Returns how many edits were actually applied.
func (s *Store) ApplyModifications(name string, mods []Modification) int {
	s.mu.Lock()
	updated := sheet.CloneAll(s.rows[name])
	applied := 0
	for _, mod := range mods {
		if mod.RowIndex < 0 || mod.RowIndex >= len(updated) || mod.Field == "" {
			continue
		}
		updated[mod.RowIndex] = sheet.Set(updated[mod.RowIndex], mod.Field, mod.NewValue)
		applied++
	}
	if applied > 0 {
		s.rows[name] = updated
		s.revalidateLocked()
	}
	s.mu.Unlock()

	if applied > 0 {
		s.bus.Publish(Event{Type: EventSheetReplaced, Sheet: name, Detail: map[string]any{"modified": applied}})
		s.bus.Publish(Event{Type: EventValidationCompleted, Sheet: name})
	}
	return applied
}

// ApplyFix replaces a sheet's rows with the output of an auto-fix function
// and recomputes. The fixer receives a copy and must return a full
// replacement collection.
func (s *Store) ApplyFix(name string, fix func([]sheet.Row) []sheet.Row) {
	s.mu.Lock()
	s.rows[name] = fix(sheet.CloneAll(s.rows[name]))
	s.revalidateLocked()
	s.mu.Unlock()

	s.bus.Publish(Event{Type: EventSheetReplaced, Sheet: name})
	s.bus.Publish(Event{Type: EventValidationCompleted, Sheet: name})
}
