package validate

import "github.com/dataloom/preflight/internal/sheet"

// Report is the issue map handed to any presentation layer: sheet name to
// the ordered findings for that sheet.
type Report map[string][]Issue

// ValidatorFor returns the entity validator for a sheet type. Unknown
// sheets get the client validator, matching the upload path's default.
func ValidatorFor(t sheet.Type) func([]sheet.Row) []Issue {
	switch t {
	case sheet.TypeTasks:
		return ValidateTasks
	case sheet.TypeWorkers:
		return ValidateWorkers
	default:
		return ValidateClients
	}
}

// BuildReport runs all per-sheet validators plus the cross-reference pass
// and distributes every finding to the sheet it is attributed to.
func BuildReport(clients, tasks, workers []sheet.Row) Report {
	r := Report{
		SheetClients: ValidateClients(clients),
		SheetTasks:   ValidateTasks(tasks),
		SheetWorkers: ValidateWorkers(workers),
	}
	for _, issue := range ValidateCrossReferences(clients, tasks, workers) {
		name := issue.Sheet
		issue.Sheet = ""
		r[name] = append(r[name], issue)
	}
	return r
}

// HasErrors reports whether any finding in the report is error severity.
func (r Report) HasErrors() bool {
	for _, list := range r {
		for _, issue := range list {
			if issue.Severity == SeverityError {
				return true
			}
		}
	}
	return false
}

// Count returns the total number of findings.
func (r Report) Count() int {
	n := 0
	for _, list := range r {
		n += len(list)
	}
	return n
}
