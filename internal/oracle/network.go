// Package oracle is the boundary to the external evaluation network:
// an untrusted, asynchronous compute service that scores submitted
// answers off-system and reports back through a one-time callback.
package oracle

import (
	"bytes"
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"
)

// EvaluationRequest is the payload handed to the evaluation network.
// Args carries [questionSetID, answersHash, contentHash] for the
// scoring routine.
type EvaluationRequest struct {
	SubscriptionID   uint64   `json:"subscription_id"`
	DONID            string   `json:"don_id"`
	Source           string   `json:"source"`
	EncryptedSecrets []byte   `json:"encrypted_secrets,omitempty"`
	CallbackGasLimit uint32   `json:"callback_gas_limit"`
	Args             []string `json:"args"`
}

// Network sends evaluation requests to the external scoring service.
// Send returns immediately with a request id; the score arrives later
// through the service's callback endpoint, at most once per request.
type Network interface {
	Send(ctx context.Context, req *EvaluationRequest) (requestID string, err error)
}

// NewRequestID mints an opaque 256-bit request handle.
func NewRequestID() (string, error) {
	var b [32]byte
	if _, err := rand.Read(b[:]); err != nil {
		return "", fmt.Errorf("failed to mint request id: %w", err)
	}
	return "0x" + hex.EncodeToString(b[:]), nil
}

// HTTPNetwork delivers evaluation requests to the scoring service over
// HTTP. The request id is minted locally and included so the network
// can address its callback.
type HTTPNetwork struct {
	endpoint string
	client   *http.Client
}

func NewHTTPNetwork(endpoint string) *HTTPNetwork {
	return &HTTPNetwork{
		endpoint: endpoint,
		client:   &http.Client{Timeout: 10 * time.Second},
	}
}

func (n *HTTPNetwork) Send(ctx context.Context, req *EvaluationRequest) (string, error) {
	requestID, err := NewRequestID()
	if err != nil {
		return "", err
	}

	payload := struct {
		RequestID string `json:"request_id"`
		*EvaluationRequest
	}{RequestID: requestID, EvaluationRequest: req}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to marshal evaluation request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, n.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to build evaluation request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("failed to send evaluation request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return "", fmt.Errorf("evaluation network rejected request: status %d", resp.StatusCode)
	}
	return requestID, nil
}

// MockNetwork records sent requests and mints deterministic request
// ids, for tests.
type MockNetwork struct {
	mu       sync.Mutex
	Requests []*EvaluationRequest
	SendErr  error
}

func NewMockNetwork() *MockNetwork {
	return &MockNetwork{}
}

func (m *MockNetwork) Send(_ context.Context, req *EvaluationRequest) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.SendErr != nil {
		return "", m.SendErr
	}
	m.Requests = append(m.Requests, req)
	id := fmt.Sprintf("%064x", len(m.Requests))
	return "0x" + id, nil
}

// LastRequestID returns the id minted for the most recent send.
func (m *MockNetwork) LastRequestID() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return "0x" + fmt.Sprintf("%064x", len(m.Requests))
}
