// Package render converts syntax subtrees back into normalized source text.
//
// The rendering is a single-space-joined stream of the subtree's leaf tokens
// with comments dropped, so two token-identical functions render to identical
// text regardless of their original formatting.
package render

import (
	"fmt"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/clonehound/clonehound/pkg/parser"
)

// Error indicates a subtree that failed to convert back to text.
type Error struct {
	Kind string
}

func (e *Error) Error() string {
	return fmt.Sprintf("cannot render %s node to text", e.Kind)
}

// Node renders a subtree to normalized source text. Comment nodes are
// skipped entirely, including their children. A subtree that yields no
// tokens at all is a render failure, reported to the caller.
func Node(node *sitter.Node, source []byte) (string, error) {
	if node == nil {
		return "", &Error{Kind: "nil"}
	}

	var tokens []string
	err := parser.Walk(node, func(n *sitter.Node) bool {
		if n.Type() == "comment" {
			return false
		}
		if n.ChildCount() == 0 {
			if text := parser.NodeText(n, source); text != "" {
				tokens = append(tokens, text)
			}
		}
		return true
	})
	if err != nil {
		return "", err
	}

	if len(tokens) == 0 {
		return "", &Error{Kind: node.Type()}
	}
	return strings.Join(tokens, " "), nil
}
