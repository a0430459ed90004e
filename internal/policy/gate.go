// Package policy gates proposed actions against an immutable rule list.
// The gate runs before decision synthesis; a rejection terminates the
// pipeline with a BLOCKED response.
package policy

import "txn-decision-engine/pkg/types"

// ActionProcessTransaction is the action label the pipeline gates under.
const ActionProcessTransaction = "process_transaction"

// Result reports whether the action passed and why.
type Result struct {
	Approved   bool     `json:"approved"`
	Violations []string `json:"violations"`
	Reasoning  string   `json:"reasoning"`
}

// rule maps a structured check to the violation it raises.
type rule struct {
	violation string
	applies   func(action string, ctx types.ContextSnapshot, payload types.Payload) bool
}

// The rule list is fixed at compile time; nothing mutates it at runtime.
var rules = []rule{
	{
		violation: "High-risk action requires elevated permissions",
		applies: func(action string, ctx types.ContextSnapshot, payload types.Payload) bool {
			return payload.HighRisk && ctx.Role != "admin" && ctx.Role != "owner"
		},
	},
	{
		violation: "Cannot use pressure tactics on stressed users",
		applies: func(action string, ctx types.ContextSnapshot, payload types.Payload) bool {
			return ctx.HasSignal("stress") &&
				(action == "aggressive_selling" || action == "pressure_tactics")
		},
	},
}

// Evaluate checks the action against every rule and collects violations.
// The action is approved iff no rule fired.
func Evaluate(action string, ctx types.ContextSnapshot, payload types.Payload) Result {
	violations := []string{}
	for _, r := range rules {
		if r.applies(action, ctx, payload) {
			violations = append(violations, r.violation)
		}
	}

	reasoning := "Action complies with all ethical guidelines"
	if len(violations) > 0 {
		reasoning = "Violates ethical guidelines"
	}

	return Result{
		Approved:   len(violations) == 0,
		Violations: violations,
		Reasoning:  reasoning,
	}
}
