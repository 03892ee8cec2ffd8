// Package store owns the mutable state of a validation session: the row
// collections per sheet, their recomputed issues, the append-only rule set,
// and the weight profile. All mutation goes through Store methods so
// concurrent callers cannot lose updates, and validation state can never
// drift from the data: every row change triggers a full recompute.
package store

import (
	"fmt"
	"sort"
	"sync"

	"github.com/dataloom/preflight/internal/rules"
	"github.com/dataloom/preflight/internal/sheet"
	"github.com/dataloom/preflight/internal/validate"
)

// Store holds one session's sheets, issues, rules and weights.
type Store struct {
	mu      sync.Mutex
	rows    map[string][]sheet.Row
	types   map[string]sheet.Type
	issues  map[string][]validate.Issue
	rules   []rules.Rule
	weights rules.WeightProfile
	bus     *Bus
}

// New creates an empty store.
func New() *Store {
	return &Store{
		rows:    make(map[string][]sheet.Row),
		types:   make(map[string]sheet.Type),
		issues:  make(map[string][]validate.Issue),
		weights: rules.DefaultWeights(),
		bus:     NewBus(0),
	}
}

// Bus exposes the store's event bus for subscribers.
func (s *Store) Bus() *Bus { return s.bus }

// ReplaceRows replaces a sheet's row collection wholesale and recomputes
// every issue list. Rows are copied on the way in; the caller keeps no
// aliasing handle on stored state.
func (s *Store) ReplaceRows(name string, typ sheet.Type, rows []sheet.Row) {
	s.mu.Lock()
	s.rows[name] = sheet.CloneAll(rows)
	s.types[name] = typ
	s.revalidateLocked()
	s.mu.Unlock()

	s.bus.Publish(Event{Type: EventSheetReplaced, Sheet: name, Detail: map[string]any{"rows": len(rows)}})
	s.bus.Publish(Event{Type: EventValidationCompleted, Sheet: name})
}

// revalidateLocked recomputes all issue lists from scratch. Issues are
// replaced, never patched, so they cannot go stale. Cross-reference
// findings are distributed to the sheet they are attributed to; when the
// same entity type was uploaded under several names, each of those sheets
// gets the findings for its own rows.
func (s *Store) revalidateLocked() {
	s.issues = make(map[string][]validate.Issue, len(s.rows))
	for name, rows := range s.rows {
		s.issues[name] = validate.ValidatorFor(s.types[name])(rows)
	}

	clients, clientSheets := s.rowsOfTypeLocked(sheet.TypeClients)
	tasks, taskSheets := s.rowsOfTypeLocked(sheet.TypeTasks)
	workers, workerSheets := s.rowsOfTypeLocked(sheet.TypeWorkers)

	for _, issue := range validate.ValidateCrossReferences(clients, tasks, workers) {
		var name string
		var offset int
		switch issue.Sheet {
		case validate.SheetClients:
			name, offset = locate(clientSheets, issue.Row)
		case validate.SheetTasks:
			name, offset = locate(taskSheets, issue.Row)
		case validate.SheetWorkers:
			name, offset = locate(workerSheets, issue.Row)
		}
		if name == "" {
			continue
		}
		issue.Sheet = ""
		issue.Row -= offset
		s.issues[name] = append(s.issues[name], issue)
	}
}

// sheetSpan records where one named sheet's rows sit inside the
// concatenated per-type slice.
type sheetSpan struct {
	name   string
	offset int
	count  int
}

// rowsOfTypeLocked concatenates all sheets of one type, in stable name
// order, and records each sheet's span for issue attribution.
func (s *Store) rowsOfTypeLocked(t sheet.Type) ([]sheet.Row, []sheetSpan) {
	names := make([]string, 0, len(s.rows))
	for name := range s.rows {
		if s.types[name] == t {
			names = append(names, name)
		}
	}
	sort.Strings(names)

	var all []sheet.Row
	spans := make([]sheetSpan, 0, len(names))
	for _, name := range names {
		rows := s.rows[name]
		spans = append(spans, sheetSpan{name: name, offset: len(all), count: len(rows)})
		all = append(all, rows...)
	}
	return all, spans
}

func locate(spans []sheetSpan, row int) (string, int) {
	for _, sp := range spans {
		if row >= sp.offset && row < sp.offset+sp.count {
			return sp.name, sp.offset
		}
	}
	return "", 0
}

// Rows returns a copy of a sheet's rows.
func (s *Store) Rows(name string) []sheet.Row {
	s.mu.Lock()
	defer s.mu.Unlock()
	return sheet.CloneAll(s.rows[name])
}

// Issues returns a copy of a sheet's current findings.
func (s *Store) Issues(name string) []validate.Issue {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]validate.Issue, len(s.issues[name]))
	copy(out, s.issues[name])
	return out
}

// Report snapshots all findings keyed by sheet name.
func (s *Store) Report() validate.Report {
	s.mu.Lock()
	defer s.mu.Unlock()
	r := make(validate.Report, len(s.issues))
	for name, list := range s.issues {
		cp := make([]validate.Issue, len(list))
		copy(cp, list)
		r[name] = cp
	}
	return r
}

// AddRule validates and appends a rule. Appends are serialized by the
// store lock, so concurrent callers cannot lose an entry. Rules persist
// across sheet replacement until explicitly removed.
func (s *Store) AddRule(r rules.Rule) error {
	if err := r.Validate(); err != nil {
		return fmt.Errorf("add rule: %w", err)
	}
	s.mu.Lock()
	s.rules = append(s.rules, r)
	n := len(s.rules)
	s.mu.Unlock()

	s.bus.Publish(Event{Type: EventRuleAdded, Detail: map[string]any{"count": n}})
	return nil
}

// RemoveRule deletes the rule at index, preserving order.
func (s *Store) RemoveRule(index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if index < 0 || index >= len(s.rules) {
		return fmt.Errorf("remove rule: index %d out of range", index)
	}
	s.rules = append(s.rules[:index], s.rules[index+1:]...)
	return nil
}

// Rules returns a copy of the rule set, in append order.
func (s *Store) Rules() []rules.Rule {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]rules.Rule, len(s.rules))
	copy(out, s.rules)
	return out
}

// ReplaceWeights validates and installs a new weight profile.
func (s *Store) ReplaceWeights(in map[string]int) error {
	w, err := rules.NormalizeWeights(in)
	if err != nil {
		return fmt.Errorf("replace weights: %w", err)
	}
	s.mu.Lock()
	s.weights = w
	s.mu.Unlock()

	s.bus.Publish(Event{Type: EventWeightsReplaced})
	return nil
}

// Export snapshots the downstream hand-off artifact: the ordered rule set
// plus the weight profile.
func (s *Store) Export() rules.Document {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc := rules.Document{
		Rules:   make([]rules.Rule, len(s.rules)),
		Weights: make(rules.WeightProfile, len(s.weights)),
	}
	copy(doc.Rules, s.rules)
	for k, v := range s.weights {
		doc.Weights[k] = v
	}
	return doc
}
