// Package agent holds the heuristic evaluators that fan out over a
// transaction. Each evaluator is a pure function of the context snapshot and
// payload; confidence values are fixed reliability priors, not computed.
package agent

import "txn-decision-engine/pkg/types"

// Agent is the shared evaluator contract. Implementations must be stateless
// and side-effect free so the orchestrator can run them in any order.
type Agent interface {
	Role() string
	Analyze(ctx types.ContextSnapshot, payload types.Payload) types.Verdict
}

// Roster returns the evaluators in registration order. Recommendation
// aggregation follows this order, so it must stay stable.
func Roster() []Agent {
	return []Agent{
		Strategy{},
		Risk{},
		Finance{},
		Operations{},
		Security{},
		UX{},
		Inventory{},
		Resilience{},
		Market{},
		Compliance{},
		Behavior{},
	}
}
