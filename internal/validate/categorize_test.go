package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dataloom/preflight/internal/sheet"
)

func TestCategoryOf(t *testing.T) {
	cases := map[string]string{
		`Duplicate ClientID "C1"`:                      CategoryDuplicates,
		"Invalid JSON in AttributesJSON":               CategoryJSONFormat,
		"Invalid AvailableSlots JSON format":           CategoryJSONFormat,
		`Invalid TaskID format "X9"`:                   CategoryTaskReferences,
		`Unknown TaskID "T002" in RequestedTaskIDs`:    CategoryTaskReferences,
		`PriorityLevel must be 1-5, got 9`:             CategoryPriorityLevel,
		"Client ID is required":                        CategoryMissingFields,
		"Duration must be an integer >= 1, got \"0\"":  CategoryGeneral,
		`Required skill "weld" not available in any worker`: CategoryGeneral,
	}
	for msg, want := range cases {
		assert.Equal(t, want, CategoryOf(msg), "message %q", msg)
	}
}

// A duplicate message also mentions an identifier; the first matching rule
// must win so it never lands in two buckets.
func TestCategorize_FirstMatchWins(t *testing.T) {
	list := []Issue{{Message: `Duplicate TaskID "T001"`}}
	groups := Categorize(list)
	require.Len(t, groups, 1)
	assert.Contains(t, groups, CategoryDuplicates)
}

func TestCategorize_Partition(t *testing.T) {
	list := []Issue{
		{Message: `Duplicate ClientID "C1"`},
		{Message: "Invalid JSON in AttributesJSON"},
		{Message: "Client ID is required"},
		{Message: "something completely different"},
		{Message: `Unknown TaskID "T9" in RequestedTaskIDs`},
	}
	groups := Categorize(list)

	total := 0
	for _, msgs := range groups {
		total += len(msgs)
	}
	assert.Equal(t, len(list), total, "categorization must not lose or duplicate issues")
}

func TestCategorize_EmptyInput(t *testing.T) {
	assert.Empty(t, Categorize(nil))
}

func TestBuildReport(t *testing.T) {
	clients := []sheet.Row{{
		sheet.FieldClientID:         "C1",
		sheet.FieldClientName:       "Acme",
		sheet.FieldPriorityLevel:    "2",
		sheet.FieldRequestedTaskIDs: "T001,T404",
		sheet.FieldGroupTag:         "g",
	}}
	tasks := []sheet.Row{{sheet.FieldTaskID: "T001", sheet.FieldDuration: "1"}}
	workers := []sheet.Row{{sheet.FieldWorkerID: "W1", sheet.FieldSkills: "weld"}}

	report := BuildReport(clients, tasks, workers)

	require.Len(t, report[SheetClients], 1, "cross-reference finding lands on the client sheet")
	assert.Contains(t, report[SheetClients][0].Message, "T404")
	assert.Empty(t, report[SheetClients][0].Sheet, "sheet tag is dropped once distributed")
	assert.Empty(t, report[SheetTasks])
	assert.Empty(t, report[SheetWorkers])
	assert.True(t, report.HasErrors())
	assert.Equal(t, 1, report.Count())
}

func TestBuildReport_CleanData(t *testing.T) {
	clients := []sheet.Row{{
		sheet.FieldClientID:         "C1",
		sheet.FieldClientName:       "Acme",
		sheet.FieldPriorityLevel:    "2",
		sheet.FieldRequestedTaskIDs: "T001",
		sheet.FieldGroupTag:         "g",
	}}
	tasks := []sheet.Row{{sheet.FieldTaskID: "T001", sheet.FieldDuration: "1", sheet.FieldRequiredSkills: "weld"}}
	workers := []sheet.Row{{sheet.FieldWorkerID: "W1", sheet.FieldSkills: "weld"}}

	report := BuildReport(clients, tasks, workers)
	assert.False(t, report.HasErrors())
	assert.Equal(t, 0, report.Count())
}
