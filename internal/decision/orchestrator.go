// Package decision synthesizes the verdicts of every registered evaluator
// into a single risk decision.
package decision

import (
	"sort"

	"txn-decision-engine/internal/agent"
	"txn-decision-engine/pkg/types"
)

// Risk score thresholds and their decision mapping.
const (
	highRiskScore   = 5
	mediumRiskScore = 2
)

// Orchestrator fans a request out to the evaluator roster and aggregates.
type Orchestrator struct {
	agents []agent.Agent
}

// NewOrchestrator builds an orchestrator over the default roster.
func NewOrchestrator() *Orchestrator {
	return &Orchestrator{agents: agent.Roster()}
}

// NewOrchestratorWith builds an orchestrator over an explicit roster.
// Aggregation order for recommendations follows the given slice order.
func NewOrchestratorWith(agents []agent.Agent) *Orchestrator {
	return &Orchestrator{agents: agents}
}

// Coordinate runs every evaluator against the same context and payload and
// synthesizes the aggregate decision. Concerns are a sorted deduplicated
// union; recommendations keep roster registration order.
func (o *Orchestrator) Coordinate(ctx types.ContextSnapshot, payload types.Payload) types.Result {
	verdicts := make(map[string]types.Verdict, len(o.agents))
	ordered := make([]types.Verdict, 0, len(o.agents))
	for _, a := range o.agents {
		verdict := a.Analyze(ctx, payload)
		verdicts[a.Role()] = verdict
		ordered = append(ordered, verdict)
	}

	var recommendations []string
	restock := false
	score := 0
	concernSet := make(map[string]struct{})
	for _, verdict := range ordered {
		for _, concern := range verdict.Concerns {
			concernSet[concern] = struct{}{}
		}
		if verdict.Recommendation != "" {
			recommendations = append(recommendations, verdict.Recommendation)
		}
		if verdict.Kind == types.KindRestock {
			restock = true
		}
		score += 2*len(verdict.Concerns) + recommendationWeight(verdict)
	}

	concerns := make([]string, 0, len(concernSet))
	for concern := range concernSet {
		concerns = append(concerns, concern)
	}
	sort.Strings(concerns)

	level := riskLevelFor(score)
	signal := types.InventoryStable
	if restock {
		signal = types.InventoryRestockRequired
	}

	return types.Result{
		Decision:        decisionFor(level),
		RiskLevel:       level,
		RiskScore:       score,
		Concerns:        concerns,
		Recommendations: recommendations,
		NegotiationLog:  Resolve(verdicts),
		AgentVerdicts:   verdicts,
		InventorySignal: signal,
		Context:         ctx,
	}
}

func recommendationWeight(verdict types.Verdict) int {
	if verdict.Recommendation != "" {
		return 1
	}
	return 0
}

// riskLevelFor maps an aggregate risk score onto the coarse level buckets.
func riskLevelFor(score int) types.RiskLevel {
	switch {
	case score >= highRiskScore:
		return types.RiskHigh
	case score >= mediumRiskScore:
		return types.RiskMedium
	default:
		return types.RiskLow
	}
}

// decisionFor maps a risk level onto the terminal decision.
func decisionFor(level types.RiskLevel) types.Decision {
	switch level {
	case types.RiskHigh:
		return types.DecisionReview
	case types.RiskMedium:
		return types.DecisionMonitor
	default:
		return types.DecisionApprove
	}
}
