package agent

import (
	"fmt"

	"txn-decision-engine/pkg/types"
)

// UX reads emotional signals and urgency from the context.
type UX struct{}

func (UX) Role() string { return "ux" }

func (UX) Analyze(ctx types.ContextSnapshot, payload types.Payload) types.Verdict {
	verdict := types.Verdict{Agent: "ux", Confidence: 0.70}

	if ctx.HasSignal("stress") {
		verdict.Concerns = append(verdict.Concerns, "User appears stressed")
		verdict.Recommendation = "Simplify interface and provide clear guidance"
		verdict.Kind = types.KindAdvisory
	}

	if ctx.UrgencyLevel > 7 {
		verdict.Insights = append(verdict.Insights, "High urgency detected")
		verdict.Recommendation = "Prioritize quick actions and clear instructions"
		verdict.Kind = types.KindAdvisory
	}

	return verdict
}

// Resilience answers chaos signals. Under an active stressor it reports with
// elevated confidence and never raises concerns, so chaos handling does not
// push the decision toward blocking.
type Resilience struct{}

func (Resilience) Role() string { return "resilience" }

func (Resilience) Analyze(ctx types.ContextSnapshot, payload types.Payload) types.Verdict {
	if payload.Chaos || ctx.Environment == "crisis" {
		chaosType := payload.ChaosType
		if chaosType == "" {
			chaosType = "NONE"
		}
		verdict := types.Verdict{Agent: "resilience", Confidence: 0.98}
		verdict.Insights = append(verdict.Insights, fmt.Sprintf("Resilience Mesh active: handling %s", chaosType))
		switch chaosType {
		case "NODE_FAILURE":
			verdict.Recommendation = "Engage Shadow Node failover immediately."
			verdict.Kind = types.KindAdvisory
		case "NETWORK_LATENCY":
			verdict.Recommendation = "Relax timeout thresholds for L3 confirmation."
			verdict.Kind = types.KindAdvisory
		}
		return verdict
	}

	return types.Verdict{
		Agent:      "resilience",
		Confidence: 0.80,
		Insights:   []string{"Normal node operations"},
	}
}

// Compliance applies FX volatility and regional reporting rules.
type Compliance struct{}

func (Compliance) Role() string { return "compliance" }

func (Compliance) Analyze(ctx types.ContextSnapshot, payload types.Payload) types.Verdict {
	verdict := types.Verdict{Agent: "compliance", Confidence: 0.95}

	currency := payload.Currency
	if currency == "" {
		currency = "USD"
	}

	switch {
	case payload.FXDelta > 0.10:
		verdict.Concerns = append(verdict.Concerns,
			fmt.Sprintf("EXTREME VOLATILITY: %s delta is %g%%", currency, payload.FXDelta*100))
		verdict.Recommendation = "PAUSE SETTLEMENT BRIDGE: High risk of institutional slippage."
		verdict.Kind = types.KindAdvisory
	case payload.FXDelta > 0.05:
		verdict.Insights = append(verdict.Insights, fmt.Sprintf("Moderate %s volatility detected.", currency))
		verdict.Recommendation = "Increase volatility buffer to 8%."
		verdict.Kind = types.KindAdvisory
	}

	switch payload.Region {
	case "AE", "SA", "EG":
		verdict.Insights = append(verdict.Insights,
			fmt.Sprintf("Applying %s institutional compliance logic.", payload.Region))
		if payload.Amount > 500000 {
			verdict.Insights = append(verdict.Insights,
				"High-value transaction: Auto-triggering regulatory reporting.")
		}
	}

	return verdict
}
