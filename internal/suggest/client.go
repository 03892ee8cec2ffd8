package suggest

import (
	"context"
	"sync/atomic"

	"golang.org/x/sync/singleflight"

	"github.com/dataloom/preflight/internal/rules"
)

// Suggester is the external rule-suggestion collaborator. Given a free-form
// instruction it may return a loosely shaped candidate object. The core
// never trusts it and never requires it to be available.
type Suggester interface {
	SuggestRule(ctx context.Context, prompt string) (map[string]any, error)
}

// CandidateClient guards calls to a Suggester. Identical concurrent prompts
// are collapsed to one in-flight request, and a newer request supersedes an
// older one: a result arriving after a later request started is reported
// stale so the caller discards it instead of applying it out of order.
// Whatever comes back is routed through rules.NormalizeCandidate, so the
// caller always receives a valid rule even when the collaborator fails.
type CandidateClient struct {
	suggester Suggester
	group     singleflight.Group
	seq       atomic.Int64
}

// NewCandidateClient wraps a Suggester.
func NewCandidateClient(s Suggester) *CandidateClient {
	return &CandidateClient{suggester: s}
}

// Propose asks the collaborator for a rule candidate and normalizes the
// answer. fresh is false when a newer Propose call started while this one
// was in flight; the returned rule is then stale and must not be applied.
func (c *CandidateClient) Propose(ctx context.Context, prompt string) (rule *rules.Rule, fresh bool) {
	id := c.seq.Add(1)

	v, err, _ := c.group.Do(prompt, func() (any, error) {
		return c.suggester.SuggestRule(ctx, prompt)
	})

	var candidate map[string]any
	if err == nil {
		candidate, _ = v.(map[string]any)
	}
	rule = rules.NormalizeCandidate(candidate)
	return rule, c.seq.Load() == id
}
