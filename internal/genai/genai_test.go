package genai

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/alexiou-dev/careerAI-sub001/internal/models"
)

// mockChatService implements chatService for testing.
type mockChatService struct {
	params openai.ChatCompletionNewParams
	resp   *openai.ChatCompletion
	err    error
}

func (m *mockChatService) New(ctx context.Context, params openai.ChatCompletionNewParams, opts ...option.RequestOption) (*openai.ChatCompletion, error) {
	m.params = params
	return m.resp, m.err
}

func chatResponse(content string) *openai.ChatCompletion {
	return &openai.ChatCompletion{
		Choices: []openai.ChatCompletionChoice{
			{Message: openai.ChatCompletionMessage{Content: content}},
		},
	}
}

func TestInvoke_Success(t *testing.T) {
	mock := &mockChatService{resp: chatResponse(`{"document": "hello"}`)}
	client := &Client{chat: mock, model: DefaultModel}

	out, err := client.Invoke(context.Background(), models.ProviderConfig{}, "prompt text", nil, nil)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if out != `{"document": "hello"}` {
		t.Errorf("unexpected response content: %q", out)
	}
}

func TestInvoke_BuildsMultiPartMessage(t *testing.T) {
	mock := &mockChatService{resp: chatResponse("ok")}
	client := &Client{chat: mock, model: DefaultModel}

	atts := []models.Attachment{
		{MIMEType: "application/pdf", Data: []byte("%PDF"), Name: "resume.pdf"},
		{MIMEType: "image/png", Data: []byte{0x89, 0x50}},
	}
	cfg := models.ProviderConfig{SystemPrompt: "be brief", Temperature: 0.3, MaxTokens: 128}
	if _, err := client.Invoke(context.Background(), cfg, "prompt", atts, map[string]any{"type": "object"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(mock.params.Messages) != 2 {
		t.Fatalf("expected system + user messages, got %d", len(mock.params.Messages))
	}
	user := mock.params.Messages[1].OfUser
	if user == nil {
		t.Fatal("expected a user message")
	}
	parts := user.Content.OfArrayOfContentParts
	if len(parts) != 3 {
		t.Fatalf("expected text + 2 attachment parts, got %d", len(parts))
	}
	if parts[0].OfText == nil || parts[0].OfText.Text != "prompt" {
		t.Error("expected first part to carry the prompt text")
	}
	if parts[1].OfFile == nil {
		t.Error("expected PDF attachment to become a file part")
	}
	if parts[2].OfImageURL == nil {
		t.Error("expected PNG attachment to become an image part")
	}
	if mock.params.ResponseFormat.OfJSONSchema == nil {
		t.Error("expected a JSON schema response format")
	}
}

func TestInvoke_APIErrorBecomesProviderFailure(t *testing.T) {
	mock := &mockChatService{err: &openai.Error{StatusCode: 429, Message: "You exceeded your current quota"}}
	client := &Client{chat: mock, model: DefaultModel}

	_, err := client.Invoke(context.Background(), models.ProviderConfig{}, "prompt", nil, nil)
	var failure *models.ProviderFailure
	if !errors.As(err, &failure) {
		t.Fatalf("expected ProviderFailure, got %T", err)
	}
	if failure.StatusCode != 429 {
		t.Errorf("expected status 429, got %d", failure.StatusCode)
	}
	if !strings.Contains(failure.Message, "quota") {
		t.Errorf("expected message preserved, got %q", failure.Message)
	}
}

func TestInvoke_TransportErrorBecomesProviderFailure(t *testing.T) {
	mock := &mockChatService{err: errors.New("connection refused")}
	client := &Client{chat: mock, model: DefaultModel}

	_, err := client.Invoke(context.Background(), models.ProviderConfig{}, "prompt", nil, nil)
	var failure *models.ProviderFailure
	if !errors.As(err, &failure) {
		t.Fatalf("expected ProviderFailure, got %T", err)
	}
	if failure.StatusCode != 0 {
		t.Errorf("expected zero status for transport error, got %d", failure.StatusCode)
	}
	if !strings.Contains(failure.Message, "connection refused") {
		t.Errorf("expected message preserved, got %q", failure.Message)
	}
}

func TestInvoke_NoChoices(t *testing.T) {
	mock := &mockChatService{resp: &openai.ChatCompletion{Choices: []openai.ChatCompletionChoice{}}}
	client := &Client{chat: mock, model: DefaultModel}

	_, err := client.Invoke(context.Background(), models.ProviderConfig{}, "prompt", nil, nil)
	var failure *models.ProviderFailure
	if !errors.As(err, &failure) {
		t.Fatalf("expected ProviderFailure, got %T", err)
	}
	if !errors.Is(err, ErrNoChoicesReturned) {
		t.Errorf("expected no choices failure, got %v", err)
	}
}

func TestInvoke_FlowModelOverridesDefault(t *testing.T) {
	mock := &mockChatService{resp: chatResponse("ok")}
	client := &Client{chat: mock, model: DefaultModel}

	cfg := models.ProviderConfig{Model: "gpt-4o"}
	if _, err := client.Invoke(context.Background(), cfg, "prompt", nil, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(mock.params.Model) != "gpt-4o" {
		t.Errorf("expected flow model override, got %q", mock.params.Model)
	}
}

func TestNewClient_NoKey(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")
	if _, err := NewClient(); err == nil {
		t.Error("expected error when API key not provided, got nil")
	}
}

func TestNewClient_OptionKey(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")
	client, err := NewClient(WithAPIKey("test-key"), WithModel("gpt-4o-mini"))
	if err != nil {
		t.Fatalf("expected client creation to succeed, got %v", err)
	}
	if client == nil {
		t.Fatal("expected non-nil client")
	}
}
