package policy

import (
	"testing"

	"txn-decision-engine/pkg/types"
)

func TestEvaluate(t *testing.T) {
	tests := []struct {
		name       string
		action     string
		ctx        types.ContextSnapshot
		payload    types.Payload
		approved   bool
		violations int
	}{
		{
			name:     "clean request",
			action:   ActionProcessTransaction,
			ctx:      types.ContextSnapshot{Role: "customer"},
			payload:  types.Payload{Amount: 100},
			approved: true,
		},
		{
			name:       "high risk as customer",
			action:     ActionProcessTransaction,
			ctx:        types.ContextSnapshot{Role: "customer"},
			payload:    types.Payload{HighRisk: true},
			approved:   false,
			violations: 1,
		},
		{
			name:     "high risk as admin",
			action:   ActionProcessTransaction,
			ctx:      types.ContextSnapshot{Role: "admin"},
			payload:  types.Payload{HighRisk: true},
			approved: true,
		},
		{
			name:     "high risk as owner",
			action:   ActionProcessTransaction,
			ctx:      types.ContextSnapshot{Role: "owner"},
			payload:  types.Payload{HighRisk: true},
			approved: true,
		},
		{
			name:       "pressure tactics on stressed user",
			action:     "pressure_tactics",
			ctx:        types.ContextSnapshot{Role: "customer", EmotionalSignals: []string{"stress"}},
			payload:    types.Payload{},
			approved:   false,
			violations: 1,
		},
		{
			name:     "pressure tactics on calm user",
			action:   "pressure_tactics",
			ctx:      types.ContextSnapshot{Role: "customer"},
			payload:  types.Payload{},
			approved: true,
		},
		{
			name:       "both rules fire",
			action:     "aggressive_selling",
			ctx:        types.ContextSnapshot{Role: "customer", EmotionalSignals: []string{"stress"}},
			payload:    types.Payload{HighRisk: true},
			approved:   false,
			violations: 2,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result := Evaluate(tc.action, tc.ctx, tc.payload)
			if result.Approved != tc.approved {
				t.Fatalf("expected approved=%v got %+v", tc.approved, result)
			}
			if len(result.Violations) != tc.violations {
				t.Fatalf("expected %d violations got %v", tc.violations, result.Violations)
			}
			if tc.approved && result.Reasoning != "Action complies with all ethical guidelines" {
				t.Fatalf("unexpected reasoning %q", result.Reasoning)
			}
			if !tc.approved && result.Reasoning != "Violates ethical guidelines" {
				t.Fatalf("unexpected reasoning %q", result.Reasoning)
			}
		})
	}
}
