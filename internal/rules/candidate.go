package rules

import (
	"fmt"

	"github.com/google/uuid"
)

// UnknownField is the sentinel a candidate carries (or receives) when its
// target field could not be determined.
const UnknownField = "unknown"

// NormalizeCandidate turns a loosely typed rule proposal — typically the
// output of an external suggestion service — into a member of the closed
// rule set. It never fails: a candidate without a recognizable condition
// field degrades to a fallback rule that is always valid, serializable,
// and evaluable, so a malformed suggestion can never block the pipeline.
func NormalizeCandidate(candidate map[string]any) *Rule {
	cond, _ := candidate["condition"].(map[string]any)
	field, _ := cond["field"].(string)

	if field == "" || field == UnknownField {
		return fallbackRule()
	}

	operator, _ := cond["operator"].(string)
	r := &Rule{
		ID:   stringOr(candidate["id"], generateRuleID()),
		Kind: KindCustom,
		Name: stringOr(candidate["name"], ""),
		Condition: &Condition{
			Field:    field,
			Operator: operator,
			Value:    cond["value"],
		},
		Action: stringOr(candidate["action"], "flag"),
		Source: SourceCandidate,
	}
	if w, ok := numberOf(candidate["weight"]); ok {
		r.Weight = weightOf(w)
	}
	r.Description = r.Name
	if r.Description == "" {
		r.Description = fmt.Sprintf("Custom rule on %s", field)
	}
	return r
}

// fallbackRule is the guaranteed-safe default: flag rows where the unknown
// field is empty, neutral weight.
func fallbackRule() *Rule {
	return &Rule{
		ID:   generateRuleID(),
		Kind: KindFallback,
		Name: "Generated Rule",
		Condition: &Condition{
			Field:    UnknownField,
			Operator: "not_empty",
			Value:    "",
		},
		Action:      "flag",
		Weight:      weightOf(DefaultWeight),
		Description: "Generated fallback rule",
		Source:      SourceCandidate,
	}
}

func generateRuleID() string {
	return "rule-" + uuid.NewString()
}

func stringOr(v any, def string) string {
	if s, ok := v.(string); ok && s != "" {
		return s
	}
	return def
}

// numberOf accepts the numeric representations a decoded candidate can
// carry: JSON numbers arrive as float64, hand-built maps may hold int.
func numberOf(v any) (int, bool) {
	switch n := v.(type) {
	case float64:
		return int(n), true
	case int:
		return n, true
	default:
		return 0, false
	}
}
