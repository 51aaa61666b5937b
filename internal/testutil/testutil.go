// Package testutil provides common test utilities and helpers for CareerAI tests.
package testutil

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/alexiou-dev/careerAI-sub001/internal/models"
)

// StaticProvider is a flow.Provider stub that records every invocation and
// replies with a fixed response or error. Safe for concurrent use.
type StaticProvider struct {
	mu sync.Mutex

	Response string
	Err      error

	Prompts     []string
	Attachments [][]models.Attachment
}

// Invoke records the call and returns the configured response or error.
func (p *StaticProvider) Invoke(ctx context.Context, cfg models.ProviderConfig, text string, attachments []models.Attachment, responseSchema map[string]any) (string, error) {
	p.mu.Lock()
	p.Prompts = append(p.Prompts, text)
	p.Attachments = append(p.Attachments, attachments)
	p.mu.Unlock()
	if p.Err != nil {
		return "", p.Err
	}
	return p.Response, nil
}

// PromptCount returns the number of invocations recorded so far.
func (p *StaticProvider) PromptCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.Prompts)
}

// AssertHTTPStatus checks the HTTP status code and fails the test if it doesn't match.
func AssertHTTPStatus(t *testing.T, expected, actual int, context string) {
	t.Helper()
	if actual != expected {
		t.Errorf("%s: expected status %d, got %d", context, expected, actual)
	}
}

// AssertJSONResponse decodes JSON response and validates the status field.
func AssertJSONResponse(t *testing.T, rr *httptest.ResponseRecorder, expectedStatus string) map[string]interface{} {
	t.Helper()
	var response map[string]interface{}
	if err := json.NewDecoder(rr.Body).Decode(&response); err != nil {
		t.Fatalf("failed to decode JSON response: %v", err)
	}

	if status, ok := response["status"].(string); ok {
		if status != expectedStatus {
			t.Errorf("expected status '%s', got '%s'", expectedStatus, status)
		}
	} else {
		t.Error("response missing or invalid 'status' field")
	}

	return response
}

// CreateHTTPRequest creates an HTTP request with optional JSON body for testing.
func CreateHTTPRequest(t *testing.T, method, url string, body interface{}) *http.Request {
	t.Helper()
	var reqBody *bytes.Buffer
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal request body: %v", err)
		}
		reqBody = bytes.NewBuffer(jsonData)
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req, err := http.NewRequest(method, url, reqBody)
	if err != nil {
		t.Fatalf("failed to create HTTP request: %v", err)
	}
	return req
}

// MustMarshalJSON marshals an object to JSON and fails test on error.
func MustMarshalJSON(t *testing.T, v interface{}) []byte {
	t.Helper()
	data, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("failed to marshal JSON: %v", err)
	}
	return data
}

// MustUnmarshalJSON unmarshals JSON data into target and fails test on error.
func MustUnmarshalJSON(t *testing.T, data []byte, target interface{}) {
	t.Helper()
	if err := json.Unmarshal(data, target); err != nil {
		t.Fatalf("failed to unmarshal JSON: %v", err)
	}
}
