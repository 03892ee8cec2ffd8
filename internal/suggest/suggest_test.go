package suggest

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dataloom/preflight/internal/rules"
	"github.com/dataloom/preflight/internal/sheet"
	"github.com/dataloom/preflight/internal/validate"
)

func TestFixes_InvalidJSON(t *testing.T) {
	issues := []validate.Issue{{Message: "Invalid JSON in AttributesJSON"}}
	fixes := Fixes(issues)
	require.Len(t, fixes, 1)
	assert.Equal(t, FixHigh, fixes[0].Severity)

	rows := []sheet.Row{
		{sheet.FieldAttributesJSON: `{"ok": true}`},
		{sheet.FieldAttributesJSON: `{"broken`},
		{},
	}
	fixed := fixes[0].Apply(rows)
	assert.Equal(t, `{"ok": true}`, fixed[0][sheet.FieldAttributesJSON])
	assert.Equal(t, "{}", fixed[1][sheet.FieldAttributesJSON])
	assert.Equal(t, `{"broken`, rows[1][sheet.FieldAttributesJSON], "input rows stay untouched")
}

func TestFixes_ClampPriority(t *testing.T) {
	issues := []validate.Issue{{Message: "PriorityLevel must be 1-5, got 9"}}
	fixes := Fixes(issues)
	require.Len(t, fixes, 1)
	assert.Equal(t, FixMedium, fixes[0].Severity)

	rows := []sheet.Row{
		{sheet.FieldPriorityLevel: "9"},
		{sheet.FieldPriorityLevel: "0"},
		{sheet.FieldPriorityLevel: "3"},
		{sheet.FieldPriorityLevel: "junk"},
	}
	fixed := fixes[0].Apply(rows)
	assert.Equal(t, "5", fixed[0][sheet.FieldPriorityLevel])
	assert.Equal(t, "1", fixed[1][sheet.FieldPriorityLevel])
	assert.Equal(t, "3", fixed[2][sheet.FieldPriorityLevel])
	assert.Equal(t, "1", fixed[3][sheet.FieldPriorityLevel])
}

func TestFixes_NoneWhenClean(t *testing.T) {
	assert.Empty(t, Fixes(nil))
	assert.Empty(t, Fixes([]validate.Issue{{Message: "something else"}}))
}

func TestRuleRecommendations_PairMining(t *testing.T) {
	clients := []sheet.Row{
		{sheet.FieldRequestedTaskIDs: "T001,T002", sheet.FieldPriorityLevel: "2"},
		{sheet.FieldRequestedTaskIDs: "T002,T001", sheet.FieldPriorityLevel: "2"},
		{sheet.FieldRequestedTaskIDs: "T003", sheet.FieldPriorityLevel: "2"},
	}
	got := RuleRecommendations(clients)
	require.Len(t, got, 1)
	assert.Equal(t, "T001 and T002 are requested together 2 times. Add co-run rule?", got[0])
}

func TestRuleRecommendations_HighPriority(t *testing.T) {
	clients := []sheet.Row{
		{sheet.FieldPriorityLevel: "5"},
		{sheet.FieldPriorityLevel: "4"},
		{sheet.FieldPriorityLevel: "1"},
	}
	got := RuleRecommendations(clients)
	require.Len(t, got, 1)
	assert.Contains(t, got[0], "2 high-priority clients")
}

func TestRuleRecommendations_Empty(t *testing.T) {
	assert.Nil(t, RuleRecommendations(nil))
}

func TestCoRunFromRecommendation(t *testing.T) {
	r, ok := CoRunFromRecommendation("T001 and T002 are requested together 2 times. Add co-run rule?")
	require.True(t, ok)
	assert.Equal(t, rules.KindCoRun, r.Kind)
	assert.Equal(t, []string{"T001", "T002"}, r.Tasks)
	assert.NoError(t, r.Validate())

	_, ok = CoRunFromRecommendation("3 high-priority clients detected.")
	assert.False(t, ok)
}

type stubSuggester struct {
	candidate map[string]any
	err       error
	calls     int
}

func (s *stubSuggester) SuggestRule(_ context.Context, _ string) (map[string]any, error) {
	s.calls++
	return s.candidate, s.err
}

func TestCandidateClient_NormalizesResult(t *testing.T) {
	client := NewCandidateClient(&stubSuggester{candidate: map[string]any{
		"name":      "Email Required",
		"condition": map[string]any{"field": "email", "operator": "not_empty", "value": ""},
	}})

	rule, fresh := client.Propose(context.Background(), "email must not be empty")
	assert.True(t, fresh)
	assert.Equal(t, rules.KindCustom, rule.Kind)
	assert.Equal(t, "email", rule.Condition.Field)
	assert.NoError(t, rule.Validate())
}

func TestCandidateClient_FailureDegradesToFallback(t *testing.T) {
	client := NewCandidateClient(&stubSuggester{err: errors.New("service down")})

	rule, fresh := client.Propose(context.Background(), "anything")
	assert.True(t, fresh)
	require.NotNil(t, rule, "collaborator failure must still yield a rule")
	assert.Equal(t, rules.KindFallback, rule.Kind)
	assert.NoError(t, rule.Validate())
}

func TestDataSummary(t *testing.T) {
	lines := DataSummary(make([]sheet.Row, 2), make([]sheet.Row, 3), nil)
	require.NotEmpty(t, lines)
	assert.Equal(t, "Analyzed 2 clients, 3 tasks, 0 workers", lines[0])
}
