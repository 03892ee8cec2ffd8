package validate

import (
	"strings"
	"testing"

	"github.com/dataloom/preflight/internal/sheet"
)

func validClient(id string) sheet.Row {
	return sheet.Row{
		sheet.FieldClientID:         id,
		sheet.FieldClientName:       "Acme " + id,
		sheet.FieldPriorityLevel:    "3",
		sheet.FieldRequestedTaskIDs: "T001,T002",
		sheet.FieldGroupTag:         "GroupA",
	}
}

func TestValidateClients_EmptySheet(t *testing.T) {
	if got := ValidateClients(nil); len(got) != 0 {
		t.Errorf("validating an empty sheet yielded issues: %v", got)
	}
}

func TestValidateClients_Valid(t *testing.T) {
	rows := []sheet.Row{validClient("C1"), validClient("C2")}
	if got := ValidateClients(rows); len(got) != 0 {
		t.Errorf("ValidateClients returned issues for valid rows: %v", got)
	}
}

func TestValidateClients_OneIssuePerBadField(t *testing.T) {
	row := sheet.Row{
		sheet.FieldClientID:         "",
		sheet.FieldClientName:       "",
		sheet.FieldPriorityLevel:    "9",
		sheet.FieldRequestedTaskIDs: "T001",
		sheet.FieldGroupTag:         "g",
	}
	got := ValidateClients([]sheet.Row{row})
	if len(got) != 3 {
		t.Fatalf("expected 3 issues (one per bad field), got %d: %v", len(got), got)
	}
	for _, issue := range got {
		if issue.Row != 0 {
			t.Errorf("issue attributed to row %d, want 0", issue.Row)
		}
	}
}

func TestValidateClients_DuplicateFlagsLaterOccurrenceOnly(t *testing.T) {
	rows := []sheet.Row{validClient("C1"), validClient("C2"), validClient("C1")}
	got := ValidateClients(rows)

	var dups []Issue
	for _, issue := range got {
		if strings.Contains(issue.Message, "Duplicate") {
			dups = append(dups, issue)
		}
	}
	if len(dups) != 1 {
		t.Fatalf("expected exactly one duplicate issue, got %v", dups)
	}
	if dups[0].Row != 2 {
		t.Errorf("duplicate attributed to row %d, want 2 (first occurrence wins)", dups[0].Row)
	}
	if dups[0].Column != sheet.FieldClientID {
		t.Errorf("duplicate attributed to column %q", dups[0].Column)
	}
}

func TestValidateClients_AttributesJSON(t *testing.T) {
	bad := validClient("C1")
	bad[sheet.FieldAttributesJSON] = `{"vip": tru`
	got := ValidateClients([]sheet.Row{bad})
	if len(got) != 1 || !strings.Contains(got[0].Message, "Invalid JSON") {
		t.Fatalf("expected exactly one invalid-JSON issue, got %v", got)
	}
	if got[0].Column != sheet.FieldAttributesJSON {
		t.Errorf("issue attributed to column %q", got[0].Column)
	}

	good := validClient("C2")
	good[sheet.FieldAttributesJSON] = `{"vip": true, "region": "eu"}`
	if got := ValidateClients([]sheet.Row{good}); len(got) != 0 {
		t.Errorf("valid JSON produced issues: %v", got)
	}
}

func TestValidateClients_TaskIDTokens(t *testing.T) {
	row := validClient("C1")
	row[sheet.FieldRequestedTaskIDs] = "T001,X9,T002,"
	got := ValidateClients([]sheet.Row{row})

	var bad []string
	for _, issue := range got {
		if strings.Contains(issue.Message, "TaskID format") {
			bad = append(bad, issue.Message)
		}
	}
	if len(bad) != 2 {
		t.Fatalf("expected one issue per offending token, got %v", bad)
	}
	if !strings.Contains(bad[0], `"X9"`) {
		t.Errorf("first token issue does not name the token: %s", bad[0])
	}
}

func TestValidateClients_PriorityCoercion(t *testing.T) {
	row := validClient("C1")
	row[sheet.FieldPriorityLevel] = "high"
	got := ValidateClients([]sheet.Row{row})
	if len(got) != 1 || !strings.Contains(got[0].Message, "PriorityLevel") {
		t.Fatalf("non-numeric priority should yield one PriorityLevel issue, got %v", got)
	}
}

func TestValidateClients_Idempotent(t *testing.T) {
	rows := []sheet.Row{validClient("C1"), validClient("C2")}
	first := ValidateClients(rows)
	second := ValidateClients(rows)
	if len(first) != 0 || len(second) != 0 {
		t.Errorf("re-running validation on clean rows produced issues: %v / %v", first, second)
	}
}
