package agent

import (
	"strconv"

	"txn-decision-engine/pkg/types"
)

// Risk screens for fraud pressure: oversized amounts and geo mismatches.
type Risk struct{}

func (Risk) Role() string { return "risk" }

func (Risk) Analyze(ctx types.ContextSnapshot, payload types.Payload) types.Verdict {
	verdict := types.Verdict{Agent: "risk", Confidence: 0.92}

	if payload.Amount > 5000 {
		verdict.Concerns = append(verdict.Concerns, "High transaction amount: $"+formatAmount(payload.Amount))
		verdict.Recommendation = "Escalate for manual review"
		verdict.Kind = types.KindManualReview
	}

	if payload.IPCountry != "" && payload.BillingCountry != "" && payload.IPCountry != payload.BillingCountry {
		verdict.Concerns = append(verdict.Concerns, "Geographic mismatch detected")
		verdict.Recommendation = "Verify user identity"
		verdict.Kind = types.KindIdentityCheck
	}

	return verdict
}

// Finance watches spend patterns, flagging significant amounts from new users.
type Finance struct{}

func (Finance) Role() string { return "finance" }

func (Finance) Analyze(ctx types.ContextSnapshot, payload types.Payload) types.Verdict {
	verdict := types.Verdict{Agent: "finance", Confidence: 0.78}

	if payload.Amount > 0 {
		verdict.Insights = append(verdict.Insights, "Transaction value: $"+formatAmount(payload.Amount))
		if payload.Amount > 1000 && payload.UserAgeDays < 30 {
			verdict.Concerns = append(verdict.Concerns, "New user with significant transaction")
			verdict.Recommendation = "Monitor for unusual spending patterns"
			verdict.Kind = types.KindMonitor
		}
	}

	return verdict
}

// Operations checks transaction velocity.
type Operations struct{}

func (Operations) Role() string { return "operations" }

func (Operations) Analyze(ctx types.ContextSnapshot, payload types.Payload) types.Verdict {
	verdict := types.Verdict{Agent: "operations", Confidence: 0.80}

	if payload.TxnHistoryCount > 10 {
		verdict.Concerns = append(verdict.Concerns, "High transaction velocity")
		verdict.Recommendation = "Check for automated or fraudulent activity"
		verdict.Kind = types.KindAdvisory
	}

	return verdict
}

// Security inspects identifier shape and payload size.
type Security struct{}

func (Security) Role() string { return "security" }

func (Security) Analyze(ctx types.ContextSnapshot, payload types.Payload) types.Verdict {
	verdict := types.Verdict{Agent: "security", Confidence: 0.95}

	var issues []string
	if payload.UserID != "" && len(payload.UserID) < 5 {
		issues = append(issues, "Suspicious user ID format")
	}
	if payload.RawSize > 1000 {
		issues = append(issues, "Unusually large payload")
	}

	if len(issues) > 0 {
		verdict.Concerns = append(verdict.Concerns, issues...)
		verdict.Recommendation = "Implement additional security measures"
		verdict.Kind = types.KindAdvisory
	}

	return verdict
}

// formatAmount renders a monetary value the way the rest of the engine
// expects it: no trailing zeros for whole amounts.
func formatAmount(amount float64) string {
	return strconv.FormatFloat(amount, 'f', -1, 64)
}
