package flow

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"

	"github.com/alexiou-dev/careerAI-sub001/internal/models"
	"github.com/alexiou-dev/careerAI-sub001/internal/schema"
)

// Provider abstracts the generation backend the engine invokes once per
// call. Implementations must not retry internally; retry policy belongs to
// the engine's callers.
type Provider interface {
	Invoke(ctx context.Context, cfg models.ProviderConfig, text string, attachments []models.Attachment, responseSchema map[string]any) (string, error)
}

// Engine executes flows: validate input, render the prompt, invoke the
// provider, coerce the response against the output schema. Invocations share
// nothing beyond the read-only registry, so any number may run concurrently.
type Engine struct {
	registry      *Registry
	provider      Provider
	isRateLimited RateLimitPredicate
}

// EngineOption defines a configuration option for the engine.
type EngineOption func(*Engine)

// WithRateLimitPredicate overrides the default quota-exhaustion detection.
func WithRateLimitPredicate(p RateLimitPredicate) EngineOption {
	return func(e *Engine) { e.isRateLimited = p }
}

// NewEngine creates an engine over a populated registry and a provider.
func NewEngine(registry *Registry, provider Provider, opts ...EngineOption) *Engine {
	e := &Engine{registry: registry, provider: provider, isRateLimited: DefaultRateLimitPredicate}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// invocation is the ephemeral per-call record. It is owned by the calling
// goroutine, never persisted, and discarded when Invoke returns.
type invocation struct {
	flow        *Flow
	input       map[string]any
	prompt      string
	attachments []models.Attachment
	raw         string
}

// Invoke runs one flow end to end. Every stage fails closed: the first
// failure is classified and returned, and no partial output is ever produced.
func (e *Engine) Invoke(ctx context.Context, name string, input map[string]any) (map[string]any, error) {
	slog.Debug("Engine.Invoke started", "flow", name)
	f, err := e.registry.Lookup(name)
	if err != nil {
		slog.Error("Engine.Invoke: flow lookup failed", "flow", name, "error", err)
		return nil, err
	}
	inv := &invocation{flow: f, input: input}

	validated, err := schema.Validate(f.Input, input)
	if err != nil {
		slog.Error("Engine.Invoke: input validation failed", "flow", name, "error", err)
		return nil, models.NewClassifiedError(models.ErrorKindValidation, err.Error(), err)
	}

	inv.prompt, inv.attachments, err = f.Template.Render(validated)
	if err != nil {
		slog.Error("Engine.Invoke: template rendering failed", "flow", name, "error", err)
		return nil, models.NewClassifiedError(models.ErrorKindRender, err.Error(), err)
	}
	slog.Debug("Engine.Invoke rendered prompt", "flow", name, "prompt_len", len(inv.prompt), "attachments", len(inv.attachments))

	inv.raw, err = e.provider.Invoke(ctx, f.Provider, inv.prompt, inv.attachments, f.Output.JSONSchema())
	if err != nil {
		var failure *models.ProviderFailure
		if errors.As(err, &failure) {
			classified := Classify(failure, e.isRateLimited)
			slog.Error("Engine.Invoke: provider call failed", "flow", name, "kind", classified.Kind, "status", failure.StatusCode)
			return nil, classified
		}
		slog.Error("Engine.Invoke: provider call failed", "flow", name, "error", err)
		return nil, models.NewClassifiedError(models.ErrorKindProviderUnavailable, err.Error(), err)
	}

	output, err := coerceOutput(f.Output, inv.raw)
	if err != nil {
		slog.Error("Engine.Invoke: output coercion failed", "flow", name, "error", err)
		return nil, err
	}
	slog.Debug("Engine.Invoke completed", "flow", name)
	return output, nil
}

// Registry exposes the engine's read-only flow registry.
func (e *Engine) Registry() *Registry {
	return e.registry
}

// coerceOutput parses the raw provider response and re-validates it against
// the flow's output schema. Absent, empty, or non-conforming responses fail
// with an output_mismatch error carrying the offending field path when the
// validator can name one.
func coerceOutput(s *schema.Schema, raw string) (map[string]any, error) {
	trimmed := stripCodeFence(strings.TrimSpace(raw))
	if trimmed == "" {
		return nil, models.NewClassifiedError(models.ErrorKindOutputMismatch, "provider returned an empty response", nil)
	}
	var value any
	if err := json.Unmarshal([]byte(trimmed), &value); err != nil {
		return nil, models.NewClassifiedError(models.ErrorKindOutputMismatch, "provider response is not valid JSON", err)
	}
	validated, err := schema.Validate(s, value)
	if err != nil {
		return nil, models.NewClassifiedError(models.ErrorKindOutputMismatch, err.Error(), err)
	}
	output, ok := validated.(map[string]any)
	if !ok {
		return nil, models.NewClassifiedError(models.ErrorKindOutputMismatch, "provider response is not an object", nil)
	}
	return output, nil
}

// stripCodeFence removes a surrounding markdown code fence. Models sometimes
// wrap JSON output in one even when asked for bare JSON.
func stripCodeFence(s string) string {
	if !strings.HasPrefix(s, "```") {
		return s
	}
	body := strings.TrimPrefix(s, "```")
	if i := strings.Index(body, "\n"); i >= 0 {
		body = body[i+1:]
	}
	body = strings.TrimSuffix(strings.TrimSpace(body), "```")
	return strings.TrimSpace(body)
}
