// Package suggest derives actionable follow-ups from validated data:
// automatic fixes for common issues, rule recommendations mined from usage
// patterns, and a guarded client for the external rule-suggestion service.
package suggest

import (
	"encoding/json"
	"strings"

	"github.com/dataloom/preflight/internal/sheet"
	"github.com/dataloom/preflight/internal/validate"
)

// FixSeverity grades how urgent an automatic fix is.
type FixSeverity string

const (
	FixLow    FixSeverity = "low"
	FixMedium FixSeverity = "medium"
	FixHigh   FixSeverity = "high"
)

// Fix is one automated repair: a description for the operator and an Apply
// function that returns a fixed copy of the rows.
type Fix struct {
	Description string
	Severity    FixSeverity
	Apply       func(rows []sheet.Row) []sheet.Row
}

// Fixes inspects a sheet's findings and offers the repairs that can be
// applied mechanically. The returned Apply functions never mutate their
// input.
func Fixes(issues []validate.Issue) []Fix {
	var fixes []Fix

	if anyMessageContains(issues, "Invalid JSON") {
		fixes = append(fixes, Fix{
			Description: "Clear invalid JSON in 'AttributesJSON' fields",
			Severity:    FixHigh,
			Apply:       clearInvalidAttributes,
		})
	}

	if anyMessageContains(issues, "PriorityLevel") {
		fixes = append(fixes, Fix{
			Description: "Clamp out-of-range priority levels to a valid range (1-5)",
			Severity:    FixMedium,
			Apply:       clampPriorities,
		})
	}

	return fixes
}

func anyMessageContains(issues []validate.Issue, substr string) bool {
	for _, issue := range issues {
		if strings.Contains(issue.Message, substr) {
			return true
		}
	}
	return false
}

func clearInvalidAttributes(rows []sheet.Row) []sheet.Row {
	out := make([]sheet.Row, len(rows))
	for i, row := range rows {
		attrs := row[sheet.FieldAttributesJSON]
		if attrs != "" && !json.Valid([]byte(attrs)) {
			out[i] = sheet.Set(row, sheet.FieldAttributesJSON, "{}")
		} else {
			out[i] = row
		}
	}
	return out
}

func clampPriorities(rows []sheet.Row) []sheet.Row {
	out := make([]sheet.Row, len(rows))
	for i, row := range rows {
		p, ok := sheet.IntField(row, sheet.FieldPriorityLevel)
		if !ok {
			out[i] = sheet.Set(row, sheet.FieldPriorityLevel, "1")
			continue
		}
		switch {
		case p < sheet.MinPriority:
			out[i] = sheet.Set(row, sheet.FieldPriorityLevel, "1")
		case p > sheet.MaxPriority:
			out[i] = sheet.Set(row, sheet.FieldPriorityLevel, "5")
		default:
			out[i] = row
		}
	}
	return out
}
