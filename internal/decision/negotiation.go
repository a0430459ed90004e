package decision

import "txn-decision-engine/pkg/types"

// negotiationRule pairs a structured predicate over the verdict set with the
// scripted log it emits. Rules are evaluated in slice order, first match wins.
type negotiationRule struct {
	matches func(verdicts map[string]types.Verdict) bool
	script  []string
}

var negotiationRules = []negotiationRule{
	{
		// Risk escalation vs. finance preferring passive monitoring.
		matches: func(verdicts map[string]types.Verdict) bool {
			return verdicts["risk"].Kind == types.KindManualReview &&
				verdicts["finance"].Kind == types.KindMonitor
		},
		script: []string{
			"RISK: Recommendation for Manual Review due to potential fraud indicators.",
			"FINANCE: Counter-proposal: Monitoring is sufficient to avoid UX friction for this customer segment.",
			"SYSTEM: Resolving conflict via risk-weighted priority. Final stance: MONITOR with elevated alert threshold.",
		},
	},
	{
		// Risk demanding identity verification against UX conversion cost.
		matches: func(verdicts map[string]types.Verdict) bool {
			return verdicts["risk"].Kind == types.KindIdentityCheck
		},
		script: []string{
			"RISK: User identity must be verified immediately.",
			"UX: Immediate verification will drop conversion by 40%. Requesting background check first.",
			"SYSTEM: Compromise reached: Transparent background check initiated; MFA only if secondary signals trigger.",
		},
	},
}

var consensusScript = []string{"All agents in consensus. Standard protocol applied."}

// Resolve reconciles conflicting evaluator recommendations. It matches on
// the structured recommendation kinds rather than the prose text, so wording
// changes in an evaluator never break the rule table.
func Resolve(verdicts map[string]types.Verdict) []string {
	for _, rule := range negotiationRules {
		if rule.matches(verdicts) {
			return append([]string(nil), rule.script...)
		}
	}
	return append([]string(nil), consensusScript...)
}
