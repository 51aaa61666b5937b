package flow

import (
	"testing"

	"github.com/alexiou-dev/careerAI-sub001/internal/models"
	"github.com/alexiou-dev/careerAI-sub001/internal/schema"
	"github.com/alexiou-dev/careerAI-sub001/internal/template"
)

func minimalFlow(name string) *Flow {
	return &Flow{
		Name:     name,
		Input:    schema.Object("in", map[string]*schema.Schema{"q": schema.String("question").Require()}),
		Output:   schema.Object("out", map[string]*schema.Schema{"a": schema.String("answer").Require()}),
		Template: template.MustCompile("Q: {{q}}"),
	}
}

func TestRegistry_RegisterAndLookup(t *testing.T) {
	r := NewRegistry()
	if err := r.Register(minimalFlow("ask")); err != nil {
		t.Fatalf("expected registration to succeed, got %v", err)
	}
	f, err := r.Lookup("ask")
	if err != nil {
		t.Fatalf("expected lookup to succeed, got %v", err)
	}
	if f.Name != "ask" {
		t.Errorf("expected flow 'ask', got %q", f.Name)
	}
}

func TestRegistry_DuplicateRejected(t *testing.T) {
	r := NewRegistry()
	if err := r.Register(minimalFlow("ask")); err != nil {
		t.Fatalf("first registration failed: %v", err)
	}
	err := r.Register(minimalFlow("ask"))
	if err == nil {
		t.Fatal("expected duplicate registration to fail")
	}
	if !models.IsKind(err, models.ErrorKindDuplicateFlow) {
		t.Errorf("expected duplicate_flow kind, got %v", models.KindOf(err))
	}
}

func TestRegistry_LookupUnknown(t *testing.T) {
	r := NewRegistry()
	_, err := r.Lookup("nope")
	if err == nil {
		t.Fatal("expected lookup of unknown flow to fail")
	}
	if !models.IsKind(err, models.ErrorKindNotFound) {
		t.Errorf("expected not_found kind, got %v", models.KindOf(err))
	}
}

func TestRegistry_RejectsMalformedFlows(t *testing.T) {
	r := NewRegistry()
	broken := minimalFlow("broken")
	broken.Input = schema.String("not an object")
	if err := r.Register(broken); err == nil {
		t.Error("expected non-object input schema to be rejected")
	}
	broken2 := minimalFlow("broken2")
	broken2.Template = nil
	if err := r.Register(broken2); err == nil {
		t.Error("expected flow without template to be rejected")
	}
}

func TestRegistry_Names(t *testing.T) {
	r := NewRegistry()
	for _, name := range []string{"zeta", "alpha", "mid"} {
		if err := r.Register(minimalFlow(name)); err != nil {
			t.Fatalf("registration failed: %v", err)
		}
	}
	names := r.Names()
	if len(names) != 3 || names[0] != "alpha" || names[1] != "mid" || names[2] != "zeta" {
		t.Errorf("expected sorted names, got %v", names)
	}
}
