package template

import (
	"encoding/base64"
	"errors"
	"strings"
	"testing"
)

func TestRender_VariableInterpolation(t *testing.T) {
	tmpl := MustCompile("Hello {{user.name}}, welcome to {{company}}.")
	text, atts, err := tmpl.Render(map[string]any{
		"user":    map[string]any{"name": "Alex"},
		"company": "Initech",
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if text != "Hello Alex, welcome to Initech." {
		t.Errorf("unexpected render output: %q", text)
	}
	if len(atts) != 0 {
		t.Errorf("expected no attachments, got %d", len(atts))
	}
}

func TestRender_UnresolvedVariableFails(t *testing.T) {
	tmpl := MustCompile("Hello {{missing.field}}")
	_, _, err := tmpl.Render(map[string]any{})
	if err == nil {
		t.Fatal("expected error for unresolved reference")
	}
	var re *RenderError
	if !errors.As(err, &re) {
		t.Fatalf("expected RenderError, got %T", err)
	}
	if re.Path != "missing.field" {
		t.Errorf("expected error to name path 'missing.field', got %q", re.Path)
	}
}

func TestRender_ConditionalAbsentFieldRendersNothing(t *testing.T) {
	tmpl := MustCompile("a{{#if flag}}X{{/if}}b")
	text, _, err := tmpl.Render(map[string]any{})
	if err != nil {
		t.Fatalf("conditional on absent field must not error, got %v", err)
	}
	if text != "ab" {
		t.Errorf("expected 'ab', got %q", text)
	}
}

func TestRender_ConditionalTruthiness(t *testing.T) {
	tmpl := MustCompile("{{#if v}}yes{{/if}}")
	cases := []struct {
		name  string
		value any
		want  string
	}{
		{"true bool", true, "yes"},
		{"false bool", false, ""},
		{"non-empty string", "x", "yes"},
		{"empty string", "", ""},
		{"non-zero number", 1.0, "yes"},
		{"zero number", 0.0, ""},
		{"non-empty list", []any{1}, "yes"},
		{"empty list", []any{}, ""},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			text, _, err := tmpl.Render(map[string]any{"v": c.value})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if text != c.want {
				t.Errorf("value %v: expected %q, got %q", c.value, c.want, text)
			}
		})
	}
}

func TestRender_IterationInListOrder(t *testing.T) {
	tmpl := MustCompile("{{#each items}}[{{this}}]{{/each}}")
	text, _, err := tmpl.Render(map[string]any{
		"items": []any{"a", "b", "c"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if text != "[a][b][c]" {
		t.Errorf("expected per-element rendering in order, got %q", text)
	}
}

func TestRender_IterationElementFields(t *testing.T) {
	tmpl := MustCompile("{{#each jobs}}{{title}} at {{company}}; {{/each}}")
	text, _, err := tmpl.Render(map[string]any{
		"jobs": []any{
			map[string]any{"title": "Engineer", "company": "Initech"},
			map[string]any{"title": "Lead", "company": "Globex"},
		},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if text != "Engineer at Initech; Lead at Globex; " {
		t.Errorf("unexpected output: %q", text)
	}
}

func TestRender_IterationFallsBackToRoot(t *testing.T) {
	tmpl := MustCompile("{{#each items}}{{this}}-{{suffix}} {{/each}}")
	text, _, err := tmpl.Render(map[string]any{
		"items":  []any{"a", "b"},
		"suffix": "z",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if text != "a-z b-z " {
		t.Errorf("unexpected output: %q", text)
	}
}

func TestRender_IterationOverNonListRendersNothing(t *testing.T) {
	tmpl := MustCompile("a{{#each items}}X{{/each}}b")
	for _, value := range []map[string]any{
		{},
		{"items": "not a list"},
	} {
		text, _, err := tmpl.Render(value)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if text != "ab" {
			t.Errorf("expected 'ab', got %q", text)
		}
	}
}

func TestRender_MediaAttachment(t *testing.T) {
	payload := []byte("%PDF-1.4 fake pdf")
	uri := "data:application/pdf;base64," + base64.StdEncoding.EncodeToString(payload)
	tmpl := MustCompile("Resume attached.{{media resume}}")
	text, atts, err := tmpl.Render(map[string]any{"resume": uri})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if text != "Resume attached." {
		t.Errorf("media must not leak into the text stream, got %q", text)
	}
	if len(atts) != 1 {
		t.Fatalf("expected one attachment, got %d", len(atts))
	}
	if atts[0].MIMEType != "application/pdf" {
		t.Errorf("expected application/pdf, got %q", atts[0].MIMEType)
	}
	if string(atts[0].Data) != string(payload) {
		t.Error("attachment payload does not round-trip")
	}
}

func TestRender_MediaBadURI(t *testing.T) {
	tmpl := MustCompile("{{media resume}}")
	_, _, err := tmpl.Render(map[string]any{"resume": "not-a-data-uri"})
	var re *RenderError
	if !errors.As(err, &re) {
		t.Fatalf("expected RenderError, got %v", err)
	}
	if re.Path != "resume" {
		t.Errorf("expected error to name path 'resume', got %q", re.Path)
	}
}

func TestRender_Deterministic(t *testing.T) {
	tmpl := MustCompile("{{#each items}}{{this}}:{{/each}}{{#if note}}{{note}}{{/if}}")
	value := map[string]any{
		"items": []any{"x", "y"},
		"note":  "done",
	}
	first, _, err := tmpl.Render(value)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i := 0; i < 10; i++ {
		again, _, err := tmpl.Render(value)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if again != first {
			t.Fatalf("render %d differs: %q vs %q", i, again, first)
		}
	}
}

func TestCompile_Errors(t *testing.T) {
	cases := []struct {
		name string
		src  string
	}{
		{"unclosed tag", "hello {{name"},
		{"empty tag", "hello {{ }}"},
		{"unterminated if", "{{#if x}}body"},
		{"unterminated each", "{{#each x}}body"},
		{"mismatched close", "{{#if x}}{{/each}}"},
		{"stray close", "{{/if}}"},
		{"unknown block", "{{#unless x}}{{/unless}}"},
		{"missing if path", "{{#if}}{{/if}}"},
		{"missing media path", "{{media}}"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if _, err := Compile(c.src); err == nil {
				t.Errorf("expected parse error for %q", c.src)
			}
		})
	}
}

func TestCompile_NestedBlocks(t *testing.T) {
	tmpl := MustCompile("{{#if show}}{{#each items}}{{this}},{{/each}}{{/if}}")
	text, _, err := tmpl.Render(map[string]any{
		"show":  true,
		"items": []any{"1", "2"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if text != "1,2," {
		t.Errorf("unexpected output: %q", text)
	}
}

func TestRender_NumberFormatting(t *testing.T) {
	tmpl := MustCompile("{{n}}")
	text, _, err := tmpl.Render(map[string]any{"n": 4.0})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Contains(text, ".") {
		t.Errorf("whole JSON numbers should render without a decimal point, got %q", text)
	}
}
