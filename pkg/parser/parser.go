package parser

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/javascript"
	"github.com/smacker/go-tree-sitter/typescript/tsx"
	"github.com/smacker/go-tree-sitter/typescript/typescript"
)

// Dialect identifies a supported source dialect of the JavaScript family.
type Dialect string

const (
	DialectJavaScript Dialect = "javascript"
	DialectTypeScript Dialect = "typescript"
	DialectTSX        Dialect = "tsx"
	DialectUnknown    Dialect = "unknown"
)

// maxWalkDepth bounds recursive traversal. Syntax trees are acyclic by
// construction, but the walker must terminate even on a malformed tree.
const maxWalkDepth = 512

// ParseError indicates source text that does not parse under a dialect.
type ParseError struct {
	Path    string
	Dialect Dialect
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: source does not parse as %s", e.Path, e.Dialect)
}

// TraversalError indicates a tree that exceeded the traversal depth bound.
type TraversalError struct {
	Depth int
}

func (e *TraversalError) Error() string {
	return fmt.Sprintf("tree traversal exceeded depth bound %d", e.Depth)
}

// Parser wraps tree-sitter for parsing the JavaScript dialect family.
type Parser struct {
	parser *sitter.Parser
}

// ParseResult contains the parsed tree and the inputs that produced it.
type ParseResult struct {
	Tree    *sitter.Tree
	Dialect Dialect
	Source  []byte
	Path    string
}

// New creates a new parser instance.
func New() *Parser {
	return &Parser{
		parser: sitter.NewParser(),
	}
}

// Parse parses source code with the specified dialect. The returned error is a
// *ParseError when the tree contains syntax errors; tree-sitter itself is
// error-tolerant, so a root error check defines parse failure here.
func (p *Parser) Parse(ctx context.Context, source []byte, dialect Dialect, path string) (*ParseResult, error) {
	lang, err := treeSitterLanguage(dialect)
	if err != nil {
		return nil, err
	}

	p.parser.SetLanguage(lang)
	tree, err := p.parser.ParseCtx(ctx, nil, source)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	if tree.RootNode().HasError() {
		tree.Close()
		return nil, &ParseError{Path: path, Dialect: dialect}
	}

	return &ParseResult{
		Tree:    tree,
		Dialect: dialect,
		Source:  source,
		Path:    path,
	}, nil
}

// Close releases parser resources.
func (p *Parser) Close() {
	p.parser.Close()
}

// Close releases the parsed tree.
func (r *ParseResult) Close() {
	if r.Tree != nil {
		r.Tree.Close()
	}
}

// treeSitterLanguage returns the tree-sitter grammar for a dialect.
func treeSitterLanguage(dialect Dialect) (*sitter.Language, error) {
	switch dialect {
	case DialectJavaScript:
		return javascript.GetLanguage(), nil
	case DialectTypeScript:
		return typescript.GetLanguage(), nil
	case DialectTSX:
		return tsx.GetLanguage(), nil
	default:
		return nil, fmt.Errorf("unsupported dialect: %s", dialect)
	}
}

// Detect determines the dialect from a file path. JSX files use the tsx
// grammar, which is a superset of the embedded-markup syntax.
func Detect(path string) Dialect {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".js", ".mjs", ".cjs":
		return DialectJavaScript
	case ".ts", ".mts", ".cts":
		return DialectTypeScript
	case ".tsx", ".jsx":
		return DialectTSX
	default:
		return DialectUnknown
	}
}

// Visitor visits a node and reports whether traversal should descend into it.
type Visitor func(node *sitter.Node) bool

// Walk traverses the tree depth-first in child order, visiting every node
// including anonymous tokens. Unknown node kinds are descended into like any
// other. Returns a *TraversalError if the depth bound trips.
func Walk(node *sitter.Node, visit Visitor) error {
	return walk(node, visit, 0)
}

func walk(node *sitter.Node, visit Visitor, depth int) error {
	if node == nil {
		return nil
	}
	if depth > maxWalkDepth {
		return &TraversalError{Depth: depth}
	}
	if !visit(node) {
		return nil
	}
	for i := 0; i < int(node.ChildCount()); i++ {
		if err := walk(node.Child(i), visit, depth+1); err != nil {
			return err
		}
	}
	return nil
}

// NodeText extracts the source text for a node. Returns the empty string when
// the node is nil or its byte offsets fall outside the source.
func NodeText(node *sitter.Node, source []byte) string {
	if node == nil {
		return ""
	}
	start := node.StartByte()
	end := node.EndByte()
	if start > end || end > uint32(len(source)) {
		return ""
	}
	return string(source[start:end])
}
