package decision

import (
	"sort"
	"testing"

	"txn-decision-engine/internal/agent"
	"txn-decision-engine/pkg/types"
)

// stubAgent returns a canned verdict, for exercising aggregation in
// isolation from the real rule tables.
type stubAgent struct {
	role    string
	verdict types.Verdict
}

func (s stubAgent) Role() string { return s.role }
func (s stubAgent) Analyze(types.ContextSnapshot, types.Payload) types.Verdict {
	v := s.verdict
	v.Agent = s.role
	return v
}

func TestCoordinateNoSignals(t *testing.T) {
	o := NewOrchestratorWith([]agent.Agent{
		stubAgent{role: "a"},
		stubAgent{role: "b"},
	})

	result := o.Coordinate(types.ContextSnapshot{Role: "customer", SystemState: "marketplace"}, types.Payload{})
	if result.Decision != types.DecisionApprove {
		t.Fatalf("expected APPROVE got %s", result.Decision)
	}
	if result.RiskLevel != types.RiskLow {
		t.Fatalf("expected LOW got %s", result.RiskLevel)
	}
	if result.RiskScore != 0 {
		t.Fatalf("expected zero score got %d", result.RiskScore)
	}
	if result.InventorySignal != types.InventoryStable {
		t.Fatalf("expected STABLE got %s", result.InventorySignal)
	}
	if len(result.NegotiationLog) != 1 || result.NegotiationLog[0] != "All agents in consensus. Standard protocol applied." {
		t.Fatalf("expected consensus log got %v", result.NegotiationLog)
	}
}

func TestCoordinateAggregation(t *testing.T) {
	o := NewOrchestratorWith([]agent.Agent{
		stubAgent{role: "a", verdict: types.Verdict{Concerns: []string{"zeta", "alpha"}, Recommendation: "first"}},
		stubAgent{role: "b", verdict: types.Verdict{Concerns: []string{"alpha"}, Recommendation: "second"}},
		stubAgent{role: "c", verdict: types.Verdict{Recommendation: "third", Kind: types.KindRestock}},
	})

	result := o.Coordinate(types.ContextSnapshot{}, types.Payload{})

	// 2*2 + 1 + 2*1 + 1 + 1 = 9
	if result.RiskScore != 9 {
		t.Fatalf("expected score 9 got %d", result.RiskScore)
	}
	if result.RiskLevel != types.RiskHigh || result.Decision != types.DecisionReview {
		t.Fatalf("expected HIGH/REVIEW got %s/%s", result.RiskLevel, result.Decision)
	}

	wantConcerns := []string{"alpha", "zeta"}
	if len(result.Concerns) != 2 || result.Concerns[0] != wantConcerns[0] || result.Concerns[1] != wantConcerns[1] {
		t.Fatalf("expected deduplicated sorted concerns %v got %v", wantConcerns, result.Concerns)
	}
	if !sort.StringsAreSorted(result.Concerns) {
		t.Fatalf("concerns not sorted: %v", result.Concerns)
	}

	wantRecs := []string{"first", "second", "third"}
	for i, rec := range wantRecs {
		if result.Recommendations[i] != rec {
			t.Fatalf("recommendation order broken: %v", result.Recommendations)
		}
	}

	if result.InventorySignal != types.InventoryRestockRequired {
		t.Fatalf("expected RESTOCK_REQUIRED got %s", result.InventorySignal)
	}
}

func TestRiskScoreMonotonicInConcerns(t *testing.T) {
	score := func(concerns int) int {
		verdict := types.Verdict{Recommendation: "hold"}
		for i := 0; i < concerns; i++ {
			verdict.Concerns = append(verdict.Concerns, string(rune('a'+i)))
		}
		o := NewOrchestratorWith([]agent.Agent{stubAgent{role: "a", verdict: verdict}})
		return o.Coordinate(types.ContextSnapshot{}, types.Payload{}).RiskScore
	}

	prev := score(0)
	for concerns := 1; concerns <= 6; concerns++ {
		current := score(concerns)
		if current < prev {
			t.Fatalf("risk score decreased from %d to %d at %d concerns", prev, current, concerns)
		}
		prev = current
	}
}

func TestRiskLevelThresholds(t *testing.T) {
	tests := []struct {
		score    int
		level    types.RiskLevel
		decision types.Decision
	}{
		{0, types.RiskLow, types.DecisionApprove},
		{1, types.RiskLow, types.DecisionApprove},
		{2, types.RiskMedium, types.DecisionMonitor},
		{4, types.RiskMedium, types.DecisionMonitor},
		{5, types.RiskHigh, types.DecisionReview},
		{11, types.RiskHigh, types.DecisionReview},
	}
	for _, tc := range tests {
		if level := riskLevelFor(tc.score); level != tc.level {
			t.Fatalf("score %d: expected %s got %s", tc.score, tc.level, level)
		}
		if decision := decisionFor(tc.level); decision != tc.decision {
			t.Fatalf("level %s: expected %s got %s", tc.level, tc.decision, decision)
		}
	}
}

func TestCoordinateFraudScenario(t *testing.T) {
	o := NewOrchestrator()
	payload := types.Payload{
		Amount:          6000,
		UserAgeDays:     10,
		IPCountry:       "US",
		BillingCountry:  "FR",
		TxnHistoryCount: 15,
		LoadFactor:      1.0,
	}
	ctx := types.ContextSnapshot{Role: "customer", SystemState: "marketplace", Environment: "online", UrgencyLevel: 5}

	result := o.Coordinate(ctx, payload)

	if result.RiskScore < 5 {
		t.Fatalf("expected risk score >= 5 got %d", result.RiskScore)
	}
	if result.RiskLevel != types.RiskHigh {
		t.Fatalf("expected HIGH got %s", result.RiskLevel)
	}
	if result.Decision != types.DecisionReview {
		t.Fatalf("expected REVIEW got %s", result.Decision)
	}

	wantConcerns := map[string]bool{
		"High transaction amount: $6000":      false,
		"Geographic mismatch detected":        false,
		"New user with significant transaction": false,
		"High transaction velocity":           false,
	}
	for _, concern := range result.Concerns {
		if _, ok := wantConcerns[concern]; ok {
			wantConcerns[concern] = true
		}
	}
	for concern, seen := range wantConcerns {
		if !seen {
			t.Fatalf("missing concern %q in %v", concern, result.Concerns)
		}
	}

	if len(result.AgentVerdicts) != 11 {
		t.Fatalf("expected 11 verdicts got %d", len(result.AgentVerdicts))
	}
}
