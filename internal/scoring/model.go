// Package scoring implements the adaptive rule-based transaction scorer.
package scoring

import (
	"fmt"
	"math"
	"sync"

	"txn-decision-engine/internal/notify"
	"txn-decision-engine/pkg/types"
)

// ModelName identifies the weight vector when mirrored outward.
const ModelName = "fraud_v1"

// Score decision thresholds.
const (
	rejectScore = 80
	reviewScore = 50
)

// scoreRule is one additive entry of the scoring table. A rule without a
// reason contributes points silently.
type scoreRule struct {
	points  int
	reason  func(p types.Payload) string
	applies func(p types.Payload) bool
}

var scoreRules = []scoreRule{
	{
		points:  40,
		reason:  func(types.Payload) string { return "High transaction amount" },
		applies: func(p types.Payload) bool { return p.Amount > 5000 },
	},
	{
		points:  20,
		applies: func(p types.Payload) bool { return p.Amount > 1000 && p.Amount <= 5000 },
	},
	{
		points:  20,
		reason:  func(types.Payload) string { return "New user with significant transaction" },
		applies: func(p types.Payload) bool { return p.UserAgeDays < 30 && p.Amount > 500 },
	},
	{
		points: 20,
		reason: func(p types.Payload) string {
			return fmt.Sprintf("IP Location (%s) does not match billing (%s)", p.IPCountry, p.BillingCountry)
		},
		applies: func(p types.Payload) bool {
			return p.IPCountry != "" && p.BillingCountry != "" && p.IPCountry != p.BillingCountry
		},
	},
	{
		points:  15,
		reason:  func(types.Payload) string { return "High transaction velocity" },
		applies: func(p types.Payload) bool { return p.TxnHistoryCount > 10 },
	},
}

// Model couples the pure scoring table with a feedback-tuned weight vector.
// The weight vector is adjusted by outcome feedback and mirrored outward but
// deliberately not read back by Score: scoring stays the stable legacy path
// while the weights carry the learning telemetry.
type Model struct {
	mu       sync.Mutex
	weights  map[string]float64
	notifier notify.Notifier
}

// NewModel builds a model with the default weight vector.
func NewModel(notifier notify.Notifier) *Model {
	if notifier == nil {
		notifier = notify.Disabled{}
	}
	return &Model{
		weights: map[string]float64{
			"amount":   0.4,
			"velocity": 0.3,
			"geo":      0.2,
			"time":     0.1,
		},
		notifier: notifier,
	}
}

// Score computes the additive risk score for a payload. Pure and
// deterministic; capped at 100.
func (m *Model) Score(payload types.Payload) types.ScoreResult {
	score := 0
	reasons := []string{}
	for _, rule := range scoreRules {
		if !rule.applies(payload) {
			continue
		}
		score += rule.points
		if rule.reason != nil {
			reasons = append(reasons, rule.reason(payload))
		}
	}
	if score > 100 {
		score = 100
	}

	return types.ScoreResult{Score: score, Decision: decisionForScore(score), Reasons: reasons}
}

// decisionForScore maps a capped score onto the decision thresholds.
func decisionForScore(score int) types.Decision {
	switch {
	case score >= rejectScore:
		return types.DecisionReject
	case score >= reviewScore:
		return types.DecisionReview
	default:
		return types.DecisionApprove
	}
}

// AdjustWeights nudges every weight by 5% in the requested direction,
// rounding to 4 decimals. The rounding is lossy on purpose: an increase
// followed by a decrease does not restore the original vector. The updated
// vector is mirrored outward best-effort.
func (m *Model) AdjustWeights(increaseSensitivity bool) {
	factor := 0.95
	if increaseSensitivity {
		factor = 1.05
	}

	m.mu.Lock()
	for key, weight := range m.weights {
		m.weights[key] = math.Round(weight*factor*10000) / 10000
	}
	snapshot := copyWeights(m.weights)
	m.mu.Unlock()

	m.notifier.NotifyWeights(ModelName, snapshot)
}

// Weights returns a copy of the current weight vector.
func (m *Model) Weights() map[string]float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return copyWeights(m.weights)
}

func copyWeights(weights map[string]float64) map[string]float64 {
	out := make(map[string]float64, len(weights))
	for key, value := range weights {
		out[key] = value
	}
	return out
}
