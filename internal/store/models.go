package store

import (
	"encoding/json"
	"strings"
	"time"
)

// DecisionRecord is the per-request decision history row persisted for
// querying and exporting.
type DecisionRecord struct {
	ID                  uint   `gorm:"primaryKey"`
	RequestID           string `gorm:"size:64;index"`
	Role                string `gorm:"size:64;index"`
	SystemState         string `gorm:"size:64;index"`
	Decision            string `gorm:"size:16;index"`
	RiskLevel           string `gorm:"size:16;index"`
	RiskScore           int
	FraudScore          int
	Amount              float64
	Currency            string `gorm:"size:8"`
	ConcernsJSON        string `gorm:"type:text"`
	RecommendationsJSON string `gorm:"type:text"`
	InventorySignal     string `gorm:"size:32"`
	ProcessingTimeMs    int64
	CreatedAt           time.Time `gorm:"autoCreateTime"`
}

// SetConcerns persists the concern list as JSON.
func (r *DecisionRecord) SetConcerns(concerns []string) {
	r.ConcernsJSON = encodeStrings(concerns)
}

// Concerns returns the decoded concern list.
func (r *DecisionRecord) Concerns() []string {
	return decodeStrings(r.ConcernsJSON)
}

// SetRecommendations persists the recommendation list as JSON.
func (r *DecisionRecord) SetRecommendations(recommendations []string) {
	r.RecommendationsJSON = encodeStrings(recommendations)
}

// Recommendations returns the decoded recommendation list.
func (r *DecisionRecord) Recommendations() []string {
	return decodeStrings(r.RecommendationsJSON)
}

func encodeStrings(values []string) string {
	if values == nil {
		return "[]"
	}
	payload, _ := json.Marshal(values)
	return string(payload)
}

func decodeStrings(payload string) []string {
	if strings.TrimSpace(payload) == "" {
		return nil
	}
	var out []string
	if err := json.Unmarshal([]byte(payload), &out); err != nil {
		return nil
	}
	return out
}
