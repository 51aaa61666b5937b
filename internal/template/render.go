package template

import (
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/alexiou-dev/careerAI-sub001/internal/models"
)

// renderContext carries the state of one render pass: the root value, the
// current iteration scope, the text being built, and the attachments lifted
// out of the text stream.
type renderContext struct {
	root        any
	scope       any
	text        strings.Builder
	attachments []models.Attachment
}

// Render evaluates the template against a value tree and returns the rendered
// text plus any media attachments. Rendering is deterministic and never
// mutates the value.
func (t *Template) Render(value any) (string, []models.Attachment, error) {
	rc := &renderContext{root: value, scope: value}
	for _, n := range t.nodes {
		if err := n.render(rc); err != nil {
			return "", nil, err
		}
	}
	return rc.text.String(), rc.attachments, nil
}

func (n *literalNode) render(rc *renderContext) error {
	rc.text.WriteString(n.text)
	return nil
}

func (n *variableNode) render(rc *renderContext) error {
	v, ok := rc.resolve(n.path)
	if !ok || v == nil {
		return &RenderError{Path: n.path, Message: "referenced field is absent"}
	}
	rc.text.WriteString(stringify(v))
	return nil
}

func (n *conditionalNode) render(rc *renderContext) error {
	v, ok := rc.resolve(n.path)
	if !ok || !truthy(v) {
		return nil
	}
	for _, child := range n.nodes {
		if err := child.render(rc); err != nil {
			return err
		}
	}
	return nil
}

func (n *iterationNode) render(rc *renderContext) error {
	v, ok := rc.resolve(n.path)
	if !ok {
		return nil
	}
	list, ok := v.([]any)
	if !ok {
		return nil
	}
	outer := rc.scope
	for _, elem := range list {
		rc.scope = elem
		for _, child := range n.nodes {
			if err := child.render(rc); err != nil {
				rc.scope = outer
				return err
			}
		}
	}
	rc.scope = outer
	return nil
}

func (n *mediaNode) render(rc *renderContext) error {
	v, ok := rc.resolve(n.path)
	if !ok || v == nil {
		return &RenderError{Path: n.path, Message: "referenced media field is absent"}
	}
	uri, ok := v.(string)
	if !ok {
		return &RenderError{Path: n.path, Message: fmt.Sprintf("media field must be a data URI string, got %T", v)}
	}
	att, err := parseDataURI(uri)
	if err != nil {
		return &RenderError{Path: n.path, Message: err.Error()}
	}
	rc.attachments = append(rc.attachments, att)
	return nil
}

// resolve looks up a dotted path. Inside an iteration block the current
// element is consulted first; paths that do not start in the element fall
// back to the root value, so loop bodies can still reference top-level
// fields. The path "this" names the iteration element itself.
func (rc *renderContext) resolve(path string) (any, bool) {
	if path == "this" {
		return rc.scope, rc.scope != nil
	}
	if v, ok := lookup(rc.scope, path); ok {
		return v, true
	}
	return lookup(rc.root, path)
}

// lookup walks a dotted path through nested maps.
func lookup(v any, path string) (any, bool) {
	cur := v
	for _, seg := range strings.Split(path, ".") {
		m, ok := cur.(map[string]any)
		if !ok {
			return nil, false
		}
		cur, ok = m[seg]
		if !ok {
			return nil, false
		}
	}
	return cur, true
}

// truthy implements the conditional-block predicate: non-empty string,
// non-zero number, non-empty list, boolean true.
func truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case string:
		return t != ""
	case float64:
		return t != 0
	case int:
		return t != 0
	case int64:
		return t != 0
	case []any:
		return len(t) > 0
	case map[string]any:
		return len(t) > 0
	default:
		return true
	}
}

// stringify renders a scalar for inline interpolation.
func stringify(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		// JSON numbers arrive as float64; print integers without a decimal point.
		if t == float64(int64(t)) {
			return fmt.Sprintf("%d", int64(t))
		}
		return fmt.Sprintf("%v", t)
	default:
		return fmt.Sprintf("%v", t)
	}
}

// parseDataURI decodes a base64 data URI (data:<mime>;base64,<payload>) into
// an attachment descriptor.
func parseDataURI(uri string) (models.Attachment, error) {
	const prefix = "data:"
	if !strings.HasPrefix(uri, prefix) {
		return models.Attachment{}, fmt.Errorf("not a data URI")
	}
	rest := uri[len(prefix):]
	comma := strings.Index(rest, ",")
	if comma < 0 {
		return models.Attachment{}, fmt.Errorf("malformed data URI: missing payload separator")
	}
	meta := rest[:comma]
	payload := rest[comma+1:]
	if !strings.HasSuffix(meta, ";base64") {
		return models.Attachment{}, fmt.Errorf("unsupported data URI encoding: only base64 is accepted")
	}
	mime := strings.TrimSuffix(meta, ";base64")
	if mime == "" {
		mime = "text/plain"
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return models.Attachment{}, fmt.Errorf("invalid base64 payload: %w", err)
	}
	return models.Attachment{MIMEType: mime, Data: data}, nil
}
