package parser

import (
	sitter "github.com/smacker/go-tree-sitter"
)

// functionKinds is the set of function-like node kinds across the JavaScript
// grammar family: named declarations, function expressions (both the old and
// new grammar spelling), arrow functions, methods, and generator variants.
var functionKinds = map[string]bool{
	"function_declaration":           true,
	"function":                       true,
	"function_expression":            true,
	"arrow_function":                 true,
	"method_definition":              true,
	"generator_function":             true,
	"generator_function_declaration": true,
}

// IsFunctionKind reports whether a node kind is function-like.
func IsFunctionKind(kind string) bool {
	return functionKinds[kind]
}

// FunctionNode is a function-like subtree found during extraction.
type FunctionNode struct {
	Name      string
	StartLine uint32
	EndLine   uint32
	Node      *sitter.Node
}

// Functions yields all function-like subtrees of a parse result, depth-first
// in the order child fields are naturally visited. Nested functions are
// yielded after their enclosing function. Returns a *TraversalError only if
// the walker's depth bound trips.
func Functions(result *ParseResult) ([]FunctionNode, error) {
	var functions []FunctionNode

	err := Walk(result.Tree.RootNode(), func(node *sitter.Node) bool {
		if IsFunctionKind(node.Type()) {
			fn := FunctionNode{
				StartLine: node.StartPoint().Row + 1,
				EndLine:   node.EndPoint().Row + 1,
				Node:      node,
			}
			if nameNode := node.ChildByFieldName("name"); nameNode != nil {
				fn.Name = NodeText(nameNode, result.Source)
			}
			functions = append(functions, fn)
		}
		return true
	})
	if err != nil {
		return nil, err
	}

	return functions, nil
}
