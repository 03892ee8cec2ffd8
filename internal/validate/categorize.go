package validate

import "strings"

// Issue categories, in evaluation order. Categorization is a fixed rule
// list checked top to bottom; the first match wins, and every issue lands
// in exactly one category.
const (
	CategoryDuplicates     = "Duplicate Records"
	CategoryJSONFormat     = "JSON Format Issues"
	CategoryTaskReferences = "Invalid Task References"
	CategoryPriorityLevel  = "Priority Level Issues"
	CategoryMissingFields  = "Missing Required Fields"
	CategoryGeneral        = "General Errors"
)

// CategoryNames lists all categories in report order.
var CategoryNames = []string{
	CategoryDuplicates,
	CategoryJSONFormat,
	CategoryTaskReferences,
	CategoryPriorityLevel,
	CategoryMissingFields,
	CategoryGeneral,
}

// CategoryOf classifies a single message.
func CategoryOf(message string) string {
	switch {
	case strings.Contains(message, "Duplicate"):
		return CategoryDuplicates
	case strings.Contains(message, "Invalid JSON"), strings.Contains(message, "JSON format"):
		return CategoryJSONFormat
	case strings.Contains(message, "TaskID format"), strings.Contains(message, "Unknown TaskID"):
		return CategoryTaskReferences
	case strings.Contains(message, "PriorityLevel"):
		return CategoryPriorityLevel
	case strings.Contains(message, "required"):
		return CategoryMissingFields
	default:
		return CategoryGeneral
	}
}

// Categorize regroups a flat issue list by category, preserving the input
// order within each bucket. It is a partition, never a filter: the union of
// all buckets is exactly the input. Categories with no issues are omitted.
func Categorize(list []Issue) map[string][]string {
	groups := make(map[string][]string)
	for _, issue := range list {
		cat := CategoryOf(issue.Message)
		groups[cat] = append(groups[cat], issue.Message)
	}
	return groups
}
