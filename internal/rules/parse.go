package rules

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var (
	taskIDRe = regexp.MustCompile(`T\d+`)
	numberRe = regexp.MustCompile(`\d+`)
	groupRe  = regexp.MustCompile(`(?i)group[a-z]`)
	phaseRe  = regexp.MustCompile(`(?i)phase\s+(\d+)`)
)

// DefaultMaxSlots is assumed when a load-limit instruction names no number.
const DefaultMaxSlots = 5

// ParseNaturalRule converts free-form rule text into a structured rule.
// Patterns are checked in a fixed priority order so ambiguous text resolves
// predictably:
//
//  1. "co-run" / "together"            -> coRun
//  2. "load limit" / "max load"        -> loadLimit
//  3. "slot restriction" / "phase window" -> slotRestriction
//  4. "precedence" / "before" / "after"   -> precedence
//
// When nothing matches, ok is false and the caller decides whether to
// surface a parse failure or fall back to NormalizeCandidate.
func ParseNaturalRule(text string) (*Rule, bool) {
	lower := strings.ToLower(text)

	if strings.Contains(lower, "co-run") || strings.Contains(lower, "together") {
		tasks := taskIDRe.FindAllString(text, -1)
		return &Rule{
			Kind:        KindCoRun,
			Tasks:       tasks,
			Description: fmt.Sprintf("Tasks %s must run together", strings.Join(tasks, ", ")),
			Source:      SourceNaturalLanguage,
		}, true
	}

	if strings.Contains(lower, "load limit") || strings.Contains(lower, "max load") {
		max := DefaultMaxSlots
		if n := numberRe.FindString(text); n != "" {
			max, _ = strconv.Atoi(n)
		}
		group := groupRe.FindString(text)
		groupLabel := group
		if group == "" {
			group = "all"
			groupLabel = "all groups"
		}
		return &Rule{
			Kind:             KindLoadLimit,
			MaxSlotsPerPhase: max,
			Group:            group,
			Description:      fmt.Sprintf("Maximum %d concurrent slots for %s", max, groupLabel),
			Source:           SourceNaturalLanguage,
		}, true
	}

	if strings.Contains(lower, "slot restriction") || strings.Contains(lower, "phase window") {
		matches := phaseRe.FindAllStringSubmatch(text, -1)
		phases := make([]int, 0, len(matches))
		labels := make([]string, 0, len(matches))
		for _, m := range matches {
			n, err := strconv.Atoi(m[1])
			if err != nil {
				continue
			}
			phases = append(phases, n)
			labels = append(labels, m[0])
		}
		return &Rule{
			Kind:        KindSlotRestriction,
			Phases:      phases,
			Description: fmt.Sprintf("Restrict slots to %s", strings.Join(labels, ", ")),
			Source:      SourceNaturalLanguage,
		}, true
	}

	if strings.Contains(lower, "precedence") || strings.Contains(lower, "before") || strings.Contains(lower, "after") {
		tasks := taskIDRe.FindAllString(text, -1)
		var first, second string
		if len(tasks) > 0 {
			first = tasks[0]
		}
		if len(tasks) > 1 {
			second = tasks[1]
		}
		order := OrderAfter
		if strings.Contains(lower, "before") {
			order = OrderBefore
		}
		return &Rule{
			Kind:        KindPrecedence,
			FirstTask:   first,
			SecondTask:  second,
			Order:       order,
			Description: fmt.Sprintf("%s must run %s %s", first, order, second),
			Source:      SourceNaturalLanguage,
		}, true
	}

	return nil, false
}
