// Package canonical produces structure-preserving canonical text for a
// syntax subtree: every identifier becomes a fixed placeholder token and
// every literal value a fixed placeholder value, while operator nesting,
// call arity, and control-flow shape survive unchanged.
//
// The transformation builds new text from the tree; the source tree is
// never mutated.
package canonical

import (
	"fmt"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/clonehound/clonehound/pkg/parser"
)

const (
	identPlaceholder  = "_id"
	stringPlaceholder = "_str"
	numberPlaceholder = "0"
)

const maxDepth = 512

// Error indicates a subtree that could not be canonicalized. The whole
// function owning the subtree is skipped for structural analysis.
type Error struct {
	Kind   string
	Reason string
}

func (e *Error) Error() string {
	return fmt.Sprintf("cannot canonicalize %s node: %s", e.Kind, e.Reason)
}

// identifierKinds covers the grammar family's identifier spellings.
var identifierKinds = map[string]bool{
	"identifier":                            true,
	"property_identifier":                   true,
	"private_property_identifier":           true,
	"shorthand_property_identifier":         true,
	"shorthand_property_identifier_pattern": true,
	"statement_identifier":                  true,
	"type_identifier":                       true,
}

// Node canonicalizes a subtree and returns its canonical text. Identical
// structural shape always yields identical text, regardless of the original
// names and literal values.
func Node(node *sitter.Node, source []byte) (string, error) {
	if node == nil {
		return "", &Error{Kind: "nil", Reason: "no subtree"}
	}
	text, err := canon(node, source, 0)
	if err != nil {
		return "", err
	}
	if text == "" {
		return "", &Error{Kind: node.Type(), Reason: "empty canonical form"}
	}
	return text, nil
}

// canon is an explicit visitor over the documented node kinds, with generic
// recursive descent over child fields for everything else.
func canon(node *sitter.Node, source []byte, depth int) (string, error) {
	if depth > maxDepth {
		return "", &Error{Kind: node.Type(), Reason: "depth bound exceeded"}
	}

	kind := node.Type()
	switch {
	case kind == "comment":
		return "", nil

	case identifierKinds[kind]:
		return identPlaceholder, nil

	case kind == "number":
		return numberPlaceholder, nil

	case kind == "string":
		return `"` + stringPlaceholder + `"`, nil

	case kind == "string_fragment":
		return stringPlaceholder, nil

	case kind == "template_string":
		return canonTemplate(node, source, depth)

	case kind == "binary_expression":
		return canonBinary(node, source, depth)

	case kind == "call_expression":
		return canonCall(node, source, depth)

	case kind == "return_statement":
		return canonChildren(node, source, depth)

	case kind == "if_statement":
		return canonIf(node, source, depth)

	default:
		if node.ChildCount() == 0 {
			return parser.NodeText(node, source), nil
		}
		return canonChildren(node, source, depth)
	}
}

// canonChildren joins the canonical forms of all children in order.
func canonChildren(node *sitter.Node, source []byte, depth int) (string, error) {
	var parts []string
	for i := 0; i < int(node.ChildCount()); i++ {
		part, err := canon(node.Child(i), source, depth+1)
		if err != nil {
			return "", err
		}
		if part != "" {
			parts = append(parts, part)
		}
	}
	return strings.Join(parts, " "), nil
}

// canonTemplate erases template literal fragments while recursively
// canonicalizing each interpolated expression.
func canonTemplate(node *sitter.Node, source []byte, depth int) (string, error) {
	var sb strings.Builder
	sb.WriteString("`")
	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(i)
		switch child.Type() {
		case "string_fragment":
			sb.WriteString(stringPlaceholder)
		case "template_substitution":
			part, err := canonChildren(child, source, depth+1)
			if err != nil {
				return "", err
			}
			sb.WriteString(part)
		}
	}
	sb.WriteString("`")
	return sb.String(), nil
}

func canonBinary(node *sitter.Node, source []byte, depth int) (string, error) {
	left, err := canon(node.ChildByFieldName("left"), source, depth+1)
	if err != nil {
		return "", err
	}
	right, err := canon(node.ChildByFieldName("right"), source, depth+1)
	if err != nil {
		return "", err
	}
	op := parser.NodeText(node.ChildByFieldName("operator"), source)
	if left == "" || op == "" || right == "" {
		return "", &Error{Kind: node.Type(), Reason: "incomplete binary expression"}
	}
	return left + " " + op + " " + right, nil
}

func canonCall(node *sitter.Node, source []byte, depth int) (string, error) {
	callee, err := canon(node.ChildByFieldName("function"), source, depth+1)
	if err != nil {
		return "", err
	}
	args := node.ChildByFieldName("arguments")
	if callee == "" || args == nil {
		return "", &Error{Kind: node.Type(), Reason: "incomplete call expression"}
	}
	argText, err := canonChildren(args, source, depth+1)
	if err != nil {
		return "", err
	}
	return callee + " " + argText, nil
}

func canonIf(node *sitter.Node, source []byte, depth int) (string, error) {
	cond, err := canon(node.ChildByFieldName("condition"), source, depth+1)
	if err != nil {
		return "", err
	}
	cons, err := canon(node.ChildByFieldName("consequence"), source, depth+1)
	if err != nil {
		return "", err
	}
	if cond == "" || cons == "" {
		return "", &Error{Kind: node.Type(), Reason: "incomplete if statement"}
	}

	parts := []string{"if", cond, cons}
	if alt := node.ChildByFieldName("alternative"); alt != nil {
		altText, err := canon(alt, source, depth+1)
		if err != nil {
			return "", err
		}
		if altText != "" {
			parts = append(parts, altText)
		}
	}
	return strings.Join(parts, " "), nil
}
