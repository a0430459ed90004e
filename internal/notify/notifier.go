// Package notify mirrors decisions and weight updates to an external
// persistence service. Every call is best-effort and fire-and-forget: the
// decision pipeline never blocks on, retries, or branches on the outcome.
package notify

import "txn-decision-engine/pkg/types"

// Notifier is the mirroring capability the core depends on abstractly.
type Notifier interface {
	NotifyDecision(requestID string, ctx types.ContextSnapshot, input types.Payload, result types.Result, signal types.InventorySignal)
	NotifyWeights(modelName string, weights map[string]float64)
}

// Disabled is a Notifier that drops everything.
type Disabled struct{}

func (Disabled) NotifyDecision(string, types.ContextSnapshot, types.Payload, types.Result, types.InventorySignal) {
}

func (Disabled) NotifyWeights(string, map[string]float64) {}
