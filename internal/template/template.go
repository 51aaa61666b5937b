// Package template implements the prompt template language used by flows.
//
// Template source is plain text with {{...}} tags: variable references with
// dotted paths, conditional blocks, iteration blocks, and media references
// that lift data-URI fields out of the text stream into binary attachments.
// Source is compiled once into a node tree at startup; rendering is a pure
// tree walk with no shared state, so a compiled Template is safe for
// concurrent use.
//
// Supported tags:
//
//	{{path.to.field}}            variable (required; absent value fails the render)
//	{{#if path}}...{{/if}}       rendered iff the field is present and truthy
//	{{#each path}}...{{/each}}   rendered once per list element, element bound as context
//	{{media path}}               data-URI field emitted as a binary attachment
//	{{this}}                     the current iteration element
package template

import (
	"fmt"
	"strings"
)

// ParseError reports invalid template source, detected at compile time.
type ParseError struct {
	Offset  int
	Message string
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	return fmt.Sprintf("template parse error at offset %d: %s", e.Offset, e.Message)
}

// RenderError reports a reference that could not be resolved against the
// value being rendered.
type RenderError struct {
	Path    string
	Message string
}

// Error implements the error interface.
func (e *RenderError) Error() string {
	return fmt.Sprintf("template render error at %q: %s", e.Path, e.Message)
}

// Template is an immutable compiled template.
type Template struct {
	source string
	nodes  []node
}

// Source returns the original template source text.
func (t *Template) Source() string {
	return t.source
}

// node is one element of the compiled tree.
type node interface {
	render(rc *renderContext) error
}

type literalNode struct {
	text string
}

type variableNode struct {
	path string
}

type conditionalNode struct {
	path  string
	nodes []node
}

type iterationNode struct {
	path  string
	nodes []node
}

type mediaNode struct {
	path string
}

const (
	tagOpen  = "{{"
	tagClose = "}}"
)

// Compile parses template source into an immutable node tree.
func Compile(src string) (*Template, error) {
	p := &parser{src: src}
	nodes, err := p.parseNodes("")
	if err != nil {
		return nil, err
	}
	return &Template{source: src, nodes: nodes}, nil
}

// MustCompile is Compile for startup-time template constants; it panics on
// invalid source.
func MustCompile(src string) *Template {
	t, err := Compile(src)
	if err != nil {
		panic(fmt.Sprintf("template: MustCompile: %v", err))
	}
	return t
}

// parser walks the source once, assembling nested block nodes recursively.
type parser struct {
	src string
	pos int
}

// parseNodes consumes nodes until the closing tag for the given block kind
// ("if" or "each"), or until end of input for the root ("").
func (p *parser) parseNodes(blockKind string) ([]node, error) {
	var nodes []node
	for p.pos < len(p.src) {
		open := strings.Index(p.src[p.pos:], tagOpen)
		if open < 0 {
			nodes = append(nodes, &literalNode{text: p.src[p.pos:]})
			p.pos = len(p.src)
			break
		}
		if open > 0 {
			nodes = append(nodes, &literalNode{text: p.src[p.pos : p.pos+open]})
			p.pos += open
		}
		tagStart := p.pos
		end := strings.Index(p.src[p.pos:], tagClose)
		if end < 0 {
			return nil, &ParseError{Offset: tagStart, Message: "unclosed tag"}
		}
		tag := strings.TrimSpace(p.src[p.pos+len(tagOpen) : p.pos+end])
		p.pos += end + len(tagClose)

		fields := strings.Fields(tag)
		if len(fields) == 0 {
			return nil, &ParseError{Offset: tagStart, Message: "empty tag"}
		}
		switch fields[0] {
		case "#if":
			if len(fields) != 2 {
				return nil, &ParseError{Offset: tagStart, Message: "#if requires exactly one field path"}
			}
			children, err := p.parseNodes("if")
			if err != nil {
				return nil, err
			}
			nodes = append(nodes, &conditionalNode{path: fields[1], nodes: children})

		case "#each":
			if len(fields) != 2 {
				return nil, &ParseError{Offset: tagStart, Message: "#each requires exactly one field path"}
			}
			children, err := p.parseNodes("each")
			if err != nil {
				return nil, err
			}
			nodes = append(nodes, &iterationNode{path: fields[1], nodes: children})

		case "/if", "/each":
			kind := strings.TrimPrefix(fields[0], "/")
			if blockKind == "" {
				return nil, &ParseError{Offset: tagStart, Message: fmt.Sprintf("unexpected {{%s}} outside a block", fields[0])}
			}
			if kind != blockKind {
				return nil, &ParseError{Offset: tagStart, Message: fmt.Sprintf("mismatched close: {{%s}} inside #%s block", fields[0], blockKind)}
			}
			return nodes, nil

		case "media":
			if len(fields) != 2 {
				return nil, &ParseError{Offset: tagStart, Message: "media requires exactly one field path"}
			}
			nodes = append(nodes, &mediaNode{path: fields[1]})

		default:
			if strings.HasPrefix(fields[0], "#") {
				return nil, &ParseError{Offset: tagStart, Message: fmt.Sprintf("unknown block %q", fields[0])}
			}
			if len(fields) != 1 {
				return nil, &ParseError{Offset: tagStart, Message: fmt.Sprintf("malformed tag %q", tag)}
			}
			nodes = append(nodes, &variableNode{path: fields[0]})
		}
	}
	if blockKind != "" {
		return nil, &ParseError{Offset: len(p.src), Message: fmt.Sprintf("unterminated #%s block", blockKind)}
	}
	return nodes, nil
}
