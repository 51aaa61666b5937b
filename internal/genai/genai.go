// Package genai provides the provider adapter over the OpenAI API.
//
// The adapter constructs one outbound chat-completion request per call from
// the rendered prompt text, binary attachments, and generation parameters.
// It never retries; failures surface as *models.ProviderFailure carrying the
// HTTP status and message so the flow engine's classifier can act on them.
package genai

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/shared"

	"github.com/alexiou-dev/careerAI-sub001/internal/models"
)

// DefaultModel is used when neither the client nor the flow names a model.
var DefaultModel = openai.ChatModelGPT4oMini

// ErrNoChoicesReturned indicates the provider answered without any completion choices.
var ErrNoChoicesReturned = errors.New("no choices returned")

// Opts holds configuration options for the GenAI client.
type Opts struct {
	APIKey  string
	BaseURL string
	Model   string
}

// Option defines a configuration option for the GenAI client.
type Option func(*Opts)

// WithAPIKey sets the OpenAI API key.
func WithAPIKey(key string) Option {
	return func(o *Opts) { o.APIKey = key }
}

// WithBaseURL overrides the API endpoint, e.g. for a compatible proxy.
func WithBaseURL(url string) Option {
	return func(o *Opts) { o.BaseURL = url }
}

// WithModel sets the default model for flows that do not name one.
func WithModel(model string) Option {
	return func(o *Opts) { o.Model = model }
}

// chatService defines the minimal interface for chat completions.
type chatService interface {
	New(ctx context.Context, params openai.ChatCompletionNewParams, opts ...option.RequestOption) (*openai.ChatCompletion, error)
}

// Client wraps the OpenAI chat-completion service.
type Client struct {
	chat  chatService
	model shared.ChatModel
}

// NewClient initializes a GenAI client. The API key falls back to the
// OPENAI_API_KEY environment variable when not supplied as an option.
func NewClient(options ...Option) (*Client, error) {
	var cfg Opts
	for _, opt := range options {
		opt(&cfg)
	}
	if cfg.APIKey == "" {
		cfg.APIKey = os.Getenv("OPENAI_API_KEY")
	}
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY not set")
	}
	reqOpts := []option.RequestOption{option.WithAPIKey(cfg.APIKey)}
	if cfg.BaseURL != "" {
		reqOpts = append(reqOpts, option.WithBaseURL(cfg.BaseURL))
	}
	cli := openai.NewClient(reqOpts...)
	model := DefaultModel
	if cfg.Model != "" {
		model = shared.ChatModel(cfg.Model)
	}
	return &Client{chat: &cli.Chat.Completions, model: model}, nil
}

// Invoke issues one generation call carrying the rendered prompt text, zero
// or more binary attachments, and the flow's generation parameters. When a
// response schema is supplied the provider is instructed to emit JSON
// conforming to it. Retry policy is owned by the caller, never the adapter.
func (c *Client) Invoke(ctx context.Context, cfg models.ProviderConfig, text string, attachments []models.Attachment, responseSchema map[string]any) (string, error) {
	parts := []openai.ChatCompletionContentPartUnionParam{
		openai.TextContentPart(text),
	}
	for i, att := range attachments {
		uri := fmt.Sprintf("data:%s;base64,%s", att.MIMEType, base64.StdEncoding.EncodeToString(att.Data))
		if strings.HasPrefix(att.MIMEType, "image/") {
			parts = append(parts, openai.ImageContentPart(openai.ChatCompletionContentPartImageImageURLParam{URL: uri}))
			continue
		}
		name := att.Name
		if name == "" {
			name = fmt.Sprintf("attachment-%d", i+1)
		}
		parts = append(parts, openai.FileContentPart(openai.ChatCompletionContentPartFileFileParam{
			FileData: openai.String(uri),
			Filename: openai.String(name),
		}))
	}

	var messages []openai.ChatCompletionMessageParamUnion
	if cfg.SystemPrompt != "" {
		messages = append(messages, openai.SystemMessage(cfg.SystemPrompt))
	}
	messages = append(messages, openai.UserMessage(parts))

	model := c.model
	if cfg.Model != "" {
		model = shared.ChatModel(cfg.Model)
	}
	params := openai.ChatCompletionNewParams{
		Model:    model,
		Messages: messages,
	}
	if cfg.Temperature != 0 {
		params.Temperature = openai.Float(cfg.Temperature)
	}
	if cfg.MaxTokens != 0 {
		params.MaxCompletionTokens = openai.Int(cfg.MaxTokens)
	}
	if responseSchema != nil {
		params.ResponseFormat = openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONSchema: &shared.ResponseFormatJSONSchemaParam{
				JSONSchema: shared.ResponseFormatJSONSchemaJSONSchemaParam{
					Name:        "flow_output",
					Description: openai.String("Structured output for the invoked generation flow"),
					Schema:      responseSchema,
				},
			},
		}
	}

	resp, err := c.chat.New(ctx, params)
	if err != nil {
		return "", failureFromError(err)
	}
	if len(resp.Choices) == 0 {
		return "", &models.ProviderFailure{Message: ErrNoChoicesReturned.Error(), Cause: ErrNoChoicesReturned}
	}
	return resp.Choices[0].Message.Content, nil
}

// failureFromError converts transport errors into the structured failure
// record the classifier operates on. API errors keep their HTTP status;
// everything else carries a zero status and the raw message.
func failureFromError(err error) *models.ProviderFailure {
	var apierr *openai.Error
	if errors.As(err, &apierr) {
		msg := apierr.Message
		if msg == "" {
			msg = fmt.Sprintf("http status %d", apierr.StatusCode)
		}
		return &models.ProviderFailure{StatusCode: apierr.StatusCode, Message: msg, Cause: err}
	}
	return &models.ProviderFailure{Message: err.Error(), Cause: err}
}
