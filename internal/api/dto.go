package api

import (
	"time"

	"txn-decision-engine/internal/store"
	"txn-decision-engine/pkg/types"
)

// ProcessRequest is the decision request body. Context fields and payload
// fields are all optional; defaults apply downstream. PriorConcerns is
// distinguished between absent (nil) and present-but-empty, which changes
// the scenario risk estimate.
type ProcessRequest struct {
	RequestID     string                `json:"request_id"`
	Transaction   types.Payload         `json:"transaction"`
	Context       types.ContextSnapshot `json:"context"`
	PriorConcerns []string              `json:"prior_concerns"`
}

// ProcessResponse wraps the pipeline envelope with the request identifier
// so callers can correlate outcome feedback later.
type ProcessResponse struct {
	RequestID string `json:"request_id"`
	types.Response
}

// OutcomeRequest reports delayed feedback for a processed request.
type OutcomeRequest struct {
	RequestID string         `json:"request_id"`
	Outcome   string         `json:"outcome"`
	Details   map[string]any `json:"details,omitempty"`
}

// DecisionDTO is one decision history row for listing and export.
type DecisionDTO struct {
	ID              uint      `json:"id"`
	RequestID       string    `json:"request_id"`
	Role            string    `json:"role"`
	SystemState     string    `json:"system_state"`
	Decision        string    `json:"decision"`
	RiskLevel       string    `json:"risk_level"`
	RiskScore       int       `json:"risk_score"`
	FraudScore      int       `json:"fraud_score"`
	Amount          float64   `json:"amount"`
	Currency        string    `json:"currency"`
	Concerns        []string  `json:"concerns"`
	Recommendations []string  `json:"recommendations"`
	InventorySignal string    `json:"inventory_signal"`
	ProcessingMs    int64     `json:"processing_time_ms"`
	CreatedAt       time.Time `json:"created_at"`
}

// DecisionsResponse pages decision history rows.
type DecisionsResponse struct {
	Items []DecisionDTO `json:"items"`
	Total int64         `json:"total"`
}

// FromModel converts a persisted row into its DTO.
func FromModel(record store.DecisionRecord) DecisionDTO {
	return DecisionDTO{
		ID:              record.ID,
		RequestID:       record.RequestID,
		Role:            record.Role,
		SystemState:     record.SystemState,
		Decision:        record.Decision,
		RiskLevel:       record.RiskLevel,
		RiskScore:       record.RiskScore,
		FraudScore:      record.FraudScore,
		Amount:          record.Amount,
		Currency:        record.Currency,
		Concerns:        record.Concerns(),
		Recommendations: record.Recommendations(),
		InventorySignal: record.InventorySignal,
		ProcessingMs:    record.ProcessingTimeMs,
		CreatedAt:       record.CreatedAt,
	}
}
