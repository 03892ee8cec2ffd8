// Package sheet defines the tabular data model: rows as parsed from an
// uploaded file, the three record layouts (clients, tasks, workers), and
// helpers for coercing and splitting field values.
package sheet

import (
	"regexp"
	"strconv"
	"strings"
)

// Row is a single parsed record: field name to raw scalar value. Values
// arrive as strings from the decoding layer; an absent key means the field
// was not present in the source. Rows are never mutated in place.
type Row map[string]string

// Clone returns an independent copy of the row.
func Clone(r Row) Row {
	out := make(Row, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// Set returns a copy of the row with one field replaced. The input row is
// left untouched.
func Set(r Row, field, value string) Row {
	out := Clone(r)
	out[field] = value
	return out
}

// CloneAll copies a row collection.
func CloneAll(rows []Row) []Row {
	out := make([]Row, len(rows))
	for i, r := range rows {
		out[i] = Clone(r)
	}
	return out
}

// IntField coerces a declared-numeric field from its textual representation.
// A coercion failure is reported as the field being absent, never an error.
func IntField(r Row, field string) (int, bool) {
	raw := strings.TrimSpace(r[field])
	if raw == "" {
		return 0, false
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return n, true
}

// SplitList splits a comma-separated list field into trimmed tokens.
// An empty input yields no tokens. Empty tokens produced by stray commas
// are kept so validators can flag them.
func SplitList(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	tokens := make([]string, len(parts))
	for i, p := range parts {
		tokens[i] = strings.TrimSpace(p)
	}
	return tokens
}

// TaskIDPattern is the required shape of a task identifier token.
var TaskIDPattern = regexp.MustCompile(`^T\d+$`)
