package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"txn-decision-engine/pkg/types"
)

// ErrDisabled signals that no mirror endpoint is configured.
var ErrDisabled = errors.New("mirror notifier disabled")

const defaultTimeout = 2 * time.Second

// Config holds mirror endpoint parameters.
type Config struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

// Client posts decision and weight snapshots to the mirror service.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
}

// NewClient constructs a Client if a base URL is configured.
func NewClient(cfg Config) (*Client, error) {
	cfg.BaseURL = strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if cfg.BaseURL == "" {
		return nil, ErrDisabled
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    cfg.BaseURL,
		apiKey:     strings.TrimSpace(cfg.APIKey),
	}, nil
}

type decisionEnvelope struct {
	RequestID       string                `json:"requestId"`
	Context         types.ContextSnapshot `json:"context"`
	InputData       types.Payload         `json:"inputData"`
	Result          types.Result          `json:"result"`
	InventorySignal types.InventorySignal `json:"inventorySignal"`
}

type weightsEnvelope struct {
	ModelName string             `json:"modelName"`
	Weights   map[string]float64 `json:"weights"`
}

// NotifyDecision mirrors a processed decision. At most once: failures are
// logged and dropped.
func (c *Client) NotifyDecision(requestID string, ctx types.ContextSnapshot, input types.Payload, result types.Result, signal types.InventorySignal) {
	c.post("/api/ai/persist", decisionEnvelope{
		RequestID:       requestID,
		Context:         ctx,
		InputData:       input,
		Result:          result,
		InventorySignal: signal,
	})
}

// NotifyWeights mirrors the adaptive model's weight vector.
func (c *Client) NotifyWeights(modelName string, weights map[string]float64) {
	c.post("/api/ai/sync-weights", weightsEnvelope{ModelName: modelName, Weights: weights})
}

// post ships the payload on a detached goroutine so callers never wait on
// the mirror target.
func (c *Client) post(path string, payload any) {
	if c == nil {
		return
	}
	go func() {
		if err := c.send(path, payload); err != nil {
			logrus.WithError(err).WithField("path", path).Warn("mirror sync failed")
		}
	}()
}

func (c *Client) send(path string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal mirror payload: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), c.httpClient.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create mirror request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("mirror request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("mirror status %d", resp.StatusCode)
	}
	return nil
}
