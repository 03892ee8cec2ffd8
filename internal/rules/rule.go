// Package rules defines the closed set of structured constraint rules a
// downstream scheduler consumes, the deterministic natural-language parser
// that produces them, and the normalizer that turns untrusted externally
// proposed candidates into guaranteed-valid rules.
package rules

import (
	"fmt"
	"strings"
)

// Kind tags a rule variant. The set is closed: every consumer can handle
// all kinds exhaustively, with fallback as the guaranteed-valid default.
type Kind string

const (
	KindCoRun           Kind = "coRun"
	KindLoadLimit       Kind = "loadLimit"
	KindSlotRestriction Kind = "slotRestriction"
	KindPrecedence      Kind = "precedence"
	KindCustom          Kind = "custom"
	KindFallback        Kind = "fallback"
)

// Order directs a precedence rule.
type Order string

const (
	OrderBefore Order = "before"
	OrderAfter  Order = "after"
)

// Rule provenance markers.
const (
	SourceNaturalLanguage = "natural_language"
	SourceCandidate       = "candidate"
	SourceRecommendation  = "recommendation"
)

// Weight bounds for scheduler tie-breaking.
const (
	MinWeight = 0
	MaxWeight = 10
)

// Condition is a structured predicate tree used by custom and fallback
// rules. Leaves carry field/operator/value; branches carry sub-conditions.
type Condition struct {
	Field      string      `json:"field,omitempty" yaml:"field,omitempty"`
	Operator   string      `json:"operator,omitempty" yaml:"operator,omitempty"`
	Value      any         `json:"value" yaml:"value"`
	Conditions []Condition `json:"conditions,omitempty" yaml:"conditions,omitempty"`
}

// Rule is one constraint declaration. Kind selects the variant; only the
// fields of that variant are populated, everything else stays zero and is
// omitted from the serialized form so the document round-trips exactly.
type Rule struct {
	ID          string `json:"id,omitempty" yaml:"id,omitempty"`
	Kind        Kind   `json:"type" yaml:"type"`
	Description string `json:"description" yaml:"description"`
	Weight      *int   `json:"weight,omitempty" yaml:"weight,omitempty"`
	Source      string `json:"source,omitempty" yaml:"source,omitempty"`

	// coRun
	Tasks []string `json:"tasks,omitempty" yaml:"tasks,omitempty"`

	// loadLimit
	MaxSlotsPerPhase int    `json:"maxSlotsPerPhase,omitempty" yaml:"maxSlotsPerPhase,omitempty"`
	Group            string `json:"group,omitempty" yaml:"group,omitempty"`

	// slotRestriction
	Phases []int `json:"phases,omitempty" yaml:"phases,omitempty"`

	// precedence
	FirstTask  string `json:"firstTask,omitempty" yaml:"firstTask,omitempty"`
	SecondTask string `json:"secondTask,omitempty" yaml:"secondTask,omitempty"`
	Order      Order  `json:"order,omitempty" yaml:"order,omitempty"`

	// custom / fallback
	Name      string     `json:"name,omitempty" yaml:"name,omitempty"`
	Condition *Condition `json:"condition,omitempty" yaml:"condition,omitempty"`
	Action    string     `json:"action,omitempty" yaml:"action,omitempty"`
}

// Validate checks the variant invariants. Fallback rules are constructed to
// always pass; nothing that fails here is ever silently repaired.
func (r *Rule) Validate() error {
	if strings.TrimSpace(r.Description) == "" {
		return fmt.Errorf("rule description must not be empty")
	}
	if r.Weight != nil && (*r.Weight < MinWeight || *r.Weight > MaxWeight) {
		return fmt.Errorf("rule weight %d outside %d..%d", *r.Weight, MinWeight, MaxWeight)
	}

	switch r.Kind {
	case KindCoRun:
		if len(r.Tasks) < 2 {
			return fmt.Errorf("coRun rule needs at least two tasks, got %d", len(r.Tasks))
		}
	case KindLoadLimit:
		if r.MaxSlotsPerPhase < 1 {
			return fmt.Errorf("loadLimit maxSlotsPerPhase must be >= 1, got %d", r.MaxSlotsPerPhase)
		}
		if r.Group == "" {
			return fmt.Errorf("loadLimit rule needs a group")
		}
	case KindSlotRestriction:
		if len(r.Phases) == 0 {
			return fmt.Errorf("slotRestriction rule needs at least one phase")
		}
		for _, p := range r.Phases {
			if p < 1 {
				return fmt.Errorf("slotRestriction phase must be >= 1, got %d", p)
			}
		}
	case KindPrecedence:
		if r.FirstTask == "" || r.SecondTask == "" {
			return fmt.Errorf("precedence rule needs two tasks")
		}
		if r.FirstTask == r.SecondTask {
			return fmt.Errorf("precedence rule tasks must differ")
		}
		if r.Order != OrderBefore && r.Order != OrderAfter {
			return fmt.Errorf("precedence order must be %q or %q, got %q", OrderBefore, OrderAfter, r.Order)
		}
	case KindCustom, KindFallback:
		if r.Condition == nil {
			return fmt.Errorf("%s rule needs a condition", r.Kind)
		}
		if r.Condition.Field == "" && len(r.Condition.Conditions) == 0 {
			return fmt.Errorf("%s rule condition needs a field or sub-conditions", r.Kind)
		}
	default:
		return fmt.Errorf("unknown rule kind %q", r.Kind)
	}
	return nil
}

// weightOf returns a pointer to a bounded copy of w.
func weightOf(w int) *int {
	if w < MinWeight {
		w = MinWeight
	}
	if w > MaxWeight {
		w = MaxWeight
	}
	return &w
}
