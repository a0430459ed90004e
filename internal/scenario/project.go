// Package scenario projects best, most likely, and worst case consequences
// of acting on a transaction.
package scenario

import (
	"fmt"
	"math"

	"txn-decision-engine/pkg/types"
)

// DefaultRisk is the risk estimate used when no prior concerns are supplied.
const DefaultRisk = 0.5

// Estimate derives a risk estimate from a prior concern count:
// min(0.95, 0.1 + 0.2*count).
func Estimate(concernCount int) float64 {
	return math.Min(0.95, 0.1+0.2*float64(concernCount))
}

// Project returns exactly three projections in fixed order: best,
// most_likely, worst. Risk exposure is monotonic non-decreasing across the
// three for any riskEstimate >= 0, and the worst case's cost of delay is the
// full amount.
func Project(riskEstimate, amount float64) []types.Projection {
	return []types.Projection{
		{
			Scenario:                 "best",
			RiskExposure:             round2(riskEstimate * 0.3),
			CostOfDelay:              0,
			IrreversibleConsequences: []string{},
			Recommendation:           "Approval reinforces customer loyalty and lifetime value.",
		},
		{
			Scenario:                 "most_likely",
			RiskExposure:             round2(riskEstimate),
			CostOfDelay:              0.05 * amount,
			IrreversibleConsequences: []string{"5% probability of customer support inquiry"},
			Recommendation:           "Proceed. 98% probability of successful settlement.",
		},
		{
			Scenario:     "worst",
			RiskExposure: math.Min(1.0, round2(riskEstimate*1.5)),
			CostOfDelay:  amount,
			IrreversibleConsequences: []string{
				"Potential financial loss",
				"Reputational impact",
				"Network trust degradation",
			},
			Recommendation: fmt.Sprintf("Implement 3D Secure or Manual Review to mitigate $%g exposure.", amount),
		},
	}
}

func round2(value float64) float64 {
	return math.Round(value*100) / 100
}
