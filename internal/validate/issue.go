// Package validate checks parsed sheets for structural problems: per-field
// schema violations, duplicate keys, malformed embedded JSON, and dangling
// cross-sheet references. Every function here is pure and total: malformed
// input produces issues, never an error or a panic.
package validate

// Severity classifies how blocking an issue is.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Issue is a single validation finding, attributed to one cell so a
// presentation layer can highlight it. Row is the 0-based position within
// the owning sheet. Sheet is set only on cross-reference findings, where
// the owning sheet is not implied by the list the issue travels in.
type Issue struct {
	Sheet    string   `json:"sheet,omitempty" yaml:"sheet,omitempty"`
	Row      int      `json:"rowIndex" yaml:"rowIndex"`
	Column   string   `json:"column" yaml:"column"`
	Message  string   `json:"message" yaml:"message"`
	Severity Severity `json:"severity" yaml:"severity"`
}

// issues accumulates findings in emission order.
type issues struct {
	list []Issue
}

func (is *issues) add(row int, column, message string) {
	is.list = append(is.list, Issue{Row: row, Column: column, Message: message, Severity: SeverityError})
}

func (is *issues) warn(row int, column, message string) {
	is.list = append(is.list, Issue{Row: row, Column: column, Message: message, Severity: SeverityWarning})
}
