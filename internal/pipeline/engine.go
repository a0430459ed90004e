// Package pipeline sequences the decision flow: context normalization,
// scenario projection, policy gate, orchestration, memory append, mirror.
package pipeline

import (
	"time"

	"github.com/sirupsen/logrus"

	"txn-decision-engine/internal/decision"
	"txn-decision-engine/internal/memory"
	"txn-decision-engine/internal/notify"
	"txn-decision-engine/internal/policy"
	"txn-decision-engine/internal/scenario"
	"txn-decision-engine/internal/scoring"
	"txn-decision-engine/pkg/types"
)

// Request is one decision request at the pipeline boundary. Context fields
// the caller omits are filled with defaults. PriorConcerns drives the
// scenario risk estimate; nil means no prior concerns were supplied at all.
type Request struct {
	RequestID     string
	Payload       types.Payload
	Context       types.ContextSnapshot
	PriorConcerns []string
}

// Engine owns the fixed per-request sequence and the feedback entry point.
type Engine struct {
	orchestrator *decision.Orchestrator
	model        *scoring.Model
	store        *memory.Store
	notifier     notify.Notifier
}

// New wires the pipeline.
func New(orchestrator *decision.Orchestrator, model *scoring.Model, store *memory.Store, notifier notify.Notifier) *Engine {
	if notifier == nil {
		notifier = notify.Disabled{}
	}
	return &Engine{
		orchestrator: orchestrator,
		model:        model,
		store:        store,
		notifier:     notifier,
	}
}

// Process runs the fixed sequence. A policy rejection short-circuits with a
// BLOCKED envelope; nothing after the gate runs. Memory or mirror failures
// never alter the computed decision.
func (e *Engine) Process(req Request) *types.Response {
	start := time.Now()

	ctx := normalizeContext(req.Context)
	payload := normalizePayload(req.Payload)

	estimate := scenario.DefaultRisk
	if req.PriorConcerns != nil {
		estimate = scenario.Estimate(len(req.PriorConcerns))
	}
	scenarios := scenario.Project(estimate, payload.Amount)

	gate := policy.Evaluate(policy.ActionProcessTransaction, ctx, payload)
	if !gate.Approved {
		return &types.Response{
			Success:    false,
			Decision:   types.DecisionBlocked,
			Reason:     gate.Reasoning,
			Violations: gate.Violations,
		}
	}

	result := e.orchestrator.Coordinate(ctx, payload)
	result.Scenarios = scenarios
	result.FraudScore = e.model.Score(payload)
	result.ProcessingMs = time.Since(start).Milliseconds()

	record := memory.Record{
		RequestID: req.RequestID,
		Timestamp: time.Now().UTC(),
		Context:   ctx,
		Input:     payload,
		Result:    result,
	}
	if err := e.store.Append(ctx.MemoryKey(), record); err != nil {
		logrus.WithError(err).WithField("key", ctx.MemoryKey()).Warn("persist memory record")
	}

	if req.RequestID != "" {
		e.notifier.NotifyDecision(req.RequestID, ctx, payload, result, result.InventorySignal)
	}

	return &types.Response{Success: true, Data: &result}
}

// SubmitOutcome applies delayed feedback to the adaptive model. Only two
// combinations act: an approved transaction that failed raises sensitivity,
// a reviewed transaction that succeeded lowers it. Everything else is a
// no-op, including unknown request identifiers.
func (e *Engine) SubmitOutcome(requestID string, outcome types.Outcome) {
	record, err := e.store.FindByRequestID(requestID)
	if err != nil {
		logrus.WithField("request_id", requestID).Info("outcome feedback for unknown request")
		return
	}

	switch {
	case record.Result.Decision == types.DecisionApprove && outcome == types.OutcomeFailure:
		e.model.AdjustWeights(true)
		logrus.WithField("request_id", requestID).Info("feedback: sensitivity increased")
	case record.Result.Decision == types.DecisionReview && outcome == types.OutcomeSuccess:
		e.model.AdjustWeights(false)
		logrus.WithField("request_id", requestID).Info("feedback: sensitivity decreased")
	}
}

// normalizeContext applies the documented defaults for omitted fields.
func normalizeContext(ctx types.ContextSnapshot) types.ContextSnapshot {
	if ctx.Role == "" {
		ctx.Role = "customer"
	}
	if ctx.Environment == "" {
		ctx.Environment = "online"
	}
	if ctx.SystemState == "" {
		ctx.SystemState = "marketplace"
	}
	if ctx.EmotionalSignals == nil {
		ctx.EmotionalSignals = []string{}
	}
	if ctx.UrgencyLevel <= 0 {
		ctx.UrgencyLevel = 5
	}
	return ctx
}

// normalizePayload applies ingress defaults so evaluators never re-derive
// missing-field semantics.
func normalizePayload(payload types.Payload) types.Payload {
	if payload.Currency == "" {
		payload.Currency = "USD"
	}
	if payload.LoadFactor == 0 {
		payload.LoadFactor = 1.0
	}
	if payload.Items == nil {
		payload.Items = []string{}
	}
	return payload
}
