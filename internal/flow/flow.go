// Package flow implements the typed prompt-flow execution engine: immutable
// flow definitions, the write-once registry, per-call orchestration, and the
// classifier that maps provider failures into the closed error taxonomy.
package flow

import (
	"fmt"
	"sort"
	"sync"

	"github.com/alexiou-dev/careerAI-sub001/internal/models"
	"github.com/alexiou-dev/careerAI-sub001/internal/schema"
	"github.com/alexiou-dev/careerAI-sub001/internal/template"
)

// Flow is an immutable binding of a name, input and output schemas, a
// compiled prompt template, and provider configuration. Flows are registered
// once during startup and never mutated afterwards.
type Flow struct {
	Name     string
	Input    *schema.Schema
	Output   *schema.Schema
	Template *template.Template
	Provider models.ProviderConfig
}

// Registry is the process-wide mapping from flow name to Flow. It is
// populated during startup and read concurrently thereafter; there is no
// unregistration.
type Registry struct {
	mu    sync.RWMutex
	flows map[string]*Flow
}

// NewRegistry creates an empty flow registry.
func NewRegistry() *Registry {
	return &Registry{flows: make(map[string]*Flow)}
}

// Register adds a flow to the registry. Registering a name twice fails with
// a duplicate_flow error; malformed definitions fail fast here rather than
// on the first invocation.
func (r *Registry) Register(f *Flow) error {
	if f == nil || f.Name == "" {
		return models.NewClassifiedError(models.ErrorKindDuplicateFlow, "flow must have a name", models.ErrEmptyFlowName)
	}
	if f.Input == nil || f.Input.Kind != schema.KindObject {
		return fmt.Errorf("flow %q: input schema must be an object", f.Name)
	}
	if f.Output == nil || f.Output.Kind != schema.KindObject {
		return fmt.Errorf("flow %q: output schema must be an object", f.Name)
	}
	if f.Template == nil {
		return fmt.Errorf("flow %q: template is required", f.Name)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.flows[f.Name]; exists {
		return models.NewClassifiedError(models.ErrorKindDuplicateFlow, fmt.Sprintf("flow %q is already registered", f.Name), nil)
	}
	r.flows[f.Name] = f
	return nil
}

// Lookup retrieves a flow by name.
func (r *Registry) Lookup(name string) (*Flow, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	f, ok := r.flows[name]
	if !ok {
		return nil, models.NewClassifiedError(models.ErrorKindNotFound, fmt.Sprintf("no flow registered under %q", name), nil)
	}
	return f, nil
}

// Names returns the registered flow names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.flows))
	for name := range r.flows {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
