package types

import "strings"

// RiskLevel buckets the aggregated concern and recommendation pressure.
type RiskLevel string

const (
	RiskLow    RiskLevel = "LOW"
	RiskMedium RiskLevel = "MEDIUM"
	RiskHigh   RiskLevel = "HIGH"
)

// Decision is the terminal recommendation for a transaction.
type Decision string

const (
	DecisionApprove Decision = "APPROVE"
	DecisionMonitor Decision = "MONITOR"
	DecisionReview  Decision = "REVIEW"
	DecisionReject  Decision = "REJECT"
	DecisionBlocked Decision = "BLOCKED"
)

// Outcome is the delayed feedback label reported for a processed request.
type Outcome string

const (
	OutcomeSuccess  Outcome = "SUCCESS"
	OutcomeFailure  Outcome = "FAILURE"
	OutcomeDisputed Outcome = "DISPUTED"
)

// ParseOutcome validates a caller-supplied outcome label.
func ParseOutcome(value string) (Outcome, bool) {
	switch Outcome(strings.ToUpper(strings.TrimSpace(value))) {
	case OutcomeSuccess:
		return OutcomeSuccess, true
	case OutcomeFailure:
		return OutcomeFailure, true
	case OutcomeDisputed:
		return OutcomeDisputed, true
	}
	return "", false
}

// InventorySignal summarizes whether any evaluator called for restocking.
type InventorySignal string

const (
	InventoryRestockRequired InventorySignal = "RESTOCK_REQUIRED"
	InventoryStable          InventorySignal = "STABLE"
)

// RecommendationKind categorizes an evaluator recommendation so downstream
// rules (negotiation, inventory signal) match on structure instead of prose.
type RecommendationKind string

const (
	KindNone          RecommendationKind = ""
	KindManualReview  RecommendationKind = "manual_review"
	KindIdentityCheck RecommendationKind = "identity_check"
	KindMonitor       RecommendationKind = "monitor"
	KindRestock       RecommendationKind = "restock"
	KindAdvisory      RecommendationKind = "advisory"
)

// ContextSnapshot captures the caller's situation for one request. Immutable
// once normalized by the pipeline.
type ContextSnapshot struct {
	Role             string   `json:"role"`
	Environment      string   `json:"environment"`
	SystemState      string   `json:"system_state"`
	EmotionalSignals []string `json:"emotional_signals"`
	UrgencyLevel     int      `json:"urgency_level"`
}

// MemoryKey derives the per-context key the memory store partitions by.
func (c ContextSnapshot) MemoryKey() string {
	return c.Role + "_" + c.SystemState
}

// HasSignal reports whether the named emotional signal is present.
func (c ContextSnapshot) HasSignal(name string) bool {
	for _, signal := range c.EmotionalSignals {
		if signal == name {
			return true
		}
	}
	return false
}

// BehaviorFactors carries the engagement metrics the behavior evaluator
// clusters on. All values default to zero when the caller omits them.
type BehaviorFactors struct {
	OrderFrequency  float64 `json:"orderFrequency"`
	SpendingPattern float64 `json:"spendingPattern"`
	LoyaltyStreak   float64 `json:"loyaltyStreak"`
}

// Payload is the transaction under evaluation. Every field is optional;
// absent fields decode to their zero value and evaluators treat zero values
// as "unknown" (empty country codes, zero amounts, nil item lists).
type Payload struct {
	Amount          float64         `json:"amount"`
	Currency        string          `json:"currency"`
	UserID          string          `json:"userId"`
	UserAgeDays     int             `json:"userAgeDays"`
	TxnHistoryCount int             `json:"txnHistoryCount"`
	IPCountry       string          `json:"ipCountry"`
	BillingCountry  string          `json:"billingCountry"`
	Items           []string        `json:"items"`
	HighRisk        bool            `json:"high_risk"`
	InventoryLow    bool            `json:"inventory_low"`
	Region          string          `json:"region"`
	FXDelta         float64         `json:"fx_delta"`
	LoadFactor      float64         `json:"load_factor"`
	RecentVolume    int             `json:"recent_volume"`
	Chaos           bool            `json:"is_chaos"`
	ChaosType       string          `json:"chaos_type"`
	Factors         BehaviorFactors `json:"factors"`

	// RawSize is the encoded payload size measured once at ingress; it feeds
	// the security evaluator's oversized-payload check.
	RawSize int `json:"-"`
}

// Verdict is one evaluator's structured opinion for a request.
type Verdict struct {
	Agent          string             `json:"agent"`
	Confidence     float64            `json:"confidence"`
	Insights       []string           `json:"insights"`
	Concerns       []string           `json:"concerns"`
	Recommendation string             `json:"recommendation"`
	Kind           RecommendationKind `json:"kind,omitempty"`
}

// Projection is one deterministic best/likely/worst outcome estimate.
type Projection struct {
	Scenario                 string   `json:"scenario"`
	RiskExposure             float64  `json:"risk_exposure"`
	CostOfDelay              float64  `json:"cost_of_delay"`
	IrreversibleConsequences []string `json:"irreversible_consequences"`
	Recommendation           string   `json:"recommendation"`
}

// ScoreResult is the adaptive scorer's verdict for a payload.
type ScoreResult struct {
	Score    int      `json:"score"`
	Decision Decision `json:"decision"`
	Reasons  []string `json:"reasons"`
}

// Result is the synthesized outcome of one pipeline run.
type Result struct {
	Decision        Decision           `json:"decision"`
	RiskLevel       RiskLevel          `json:"risk_level"`
	RiskScore       int                `json:"risk_score"`
	Concerns        []string           `json:"concerns"`
	Recommendations []string           `json:"recommendations"`
	NegotiationLog  []string           `json:"negotiation_log"`
	AgentVerdicts   map[string]Verdict `json:"agent_insights"`
	InventorySignal InventorySignal    `json:"inventory_signal"`
	Context         ContextSnapshot    `json:"context"`
	Scenarios       []Projection       `json:"future_simulations,omitempty"`
	FraudScore      ScoreResult        `json:"fraud_score"`
	ProcessingMs    int64              `json:"processing_time_ms"`
}

// Response is the pipeline's envelope: a successful run carries Data, a
// policy rejection carries the BLOCKED decision with its violations.
type Response struct {
	Success    bool     `json:"success"`
	Decision   Decision `json:"decision,omitempty"`
	Reason     string   `json:"reason,omitempty"`
	Violations []string `json:"violations,omitempty"`
	Data       *Result  `json:"data,omitempty"`
}
