package parser

import (
	"context"
	"errors"
	"testing"

	sitter "github.com/smacker/go-tree-sitter"
)

func TestNew(t *testing.T) {
	p := New()
	if p == nil {
		t.Fatal("New() returned nil")
	}
	if p.parser == nil {
		t.Error("parser field is nil")
	}
	p.Close()
}

func TestDetect(t *testing.T) {
	tests := []struct {
		path string
		want Dialect
	}{
		{"script.js", DialectJavaScript},
		{"module.mjs", DialectJavaScript},
		{"common.cjs", DialectJavaScript},
		{"src/deep/nested.js", DialectJavaScript},

		{"app.ts", DialectTypeScript},
		{"module.mts", DialectTypeScript},
		{"common.cts", DialectTypeScript},

		{"component.tsx", DialectTSX},
		{"component.jsx", DialectTSX}, // JSX uses the TSX grammar

		{"UPPER.JS", DialectJavaScript},

		{"main.go", DialectUnknown},
		{"style.css", DialectUnknown},
		{"README.md", DialectUnknown},
		{"noext", DialectUnknown},
	}

	for _, tt := range tests {
		if got := Detect(tt.path); got != tt.want {
			t.Errorf("Detect(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

func TestParse_ValidJavaScript(t *testing.T) {
	p := New()
	defer p.Close()

	source := []byte(`function add(a, b) { return a + b; }`)
	result, err := p.Parse(context.Background(), source, DialectJavaScript, "add.js")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	defer result.Close()

	if result.Tree == nil {
		t.Fatal("result.Tree is nil")
	}
	if result.Tree.RootNode().Type() != "program" {
		t.Errorf("root node type = %q, want %q", result.Tree.RootNode().Type(), "program")
	}
}

func TestParse_ValidTypeScript(t *testing.T) {
	p := New()
	defer p.Close()

	source := []byte(`function add(a: number, b: number): number { return a + b; }`)
	result, err := p.Parse(context.Background(), source, DialectTypeScript, "add.ts")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	result.Close()
}

func TestParse_SyntaxError(t *testing.T) {
	p := New()
	defer p.Close()

	source := []byte(`function broken( { ][ `)
	_, err := p.Parse(context.Background(), source, DialectJavaScript, "broken.js")
	if err == nil {
		t.Fatal("expected error for malformed source")
	}

	var perr *ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("error = %T, want *ParseError", err)
	}
	if perr.Path != "broken.js" {
		t.Errorf("ParseError.Path = %q, want %q", perr.Path, "broken.js")
	}
	if perr.Dialect != DialectJavaScript {
		t.Errorf("ParseError.Dialect = %v, want %v", perr.Dialect, DialectJavaScript)
	}
}

func TestParse_UnsupportedDialect(t *testing.T) {
	p := New()
	defer p.Close()

	_, err := p.Parse(context.Background(), []byte("x"), DialectUnknown, "x.txt")
	if err == nil {
		t.Fatal("expected error for unsupported dialect")
	}
}

func TestFunctions(t *testing.T) {
	p := New()
	defer p.Close()

	source := []byte(`
function named(a) { return a; }

const arrow = (x) => x * 2;

class Widget {
  render() { return null; }
}

function* gen() { yield 1; }
`)
	result, err := p.Parse(context.Background(), source, DialectJavaScript, "mixed.js")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	defer result.Close()

	functions, err := Functions(result)
	if err != nil {
		t.Fatalf("Functions failed: %v", err)
	}

	if len(functions) != 4 {
		for _, fn := range functions {
			t.Logf("found %q kind %s lines %d-%d", fn.Name, fn.Node.Type(), fn.StartLine, fn.EndLine)
		}
		t.Fatalf("found %d functions, want 4", len(functions))
	}

	if functions[0].Name != "named" {
		t.Errorf("functions[0].Name = %q, want %q", functions[0].Name, "named")
	}
	if functions[0].StartLine != 2 {
		t.Errorf("functions[0].StartLine = %d, want 2", functions[0].StartLine)
	}

	// Arrow functions carry no name field.
	if functions[1].Name != "" {
		t.Errorf("arrow function name = %q, want empty", functions[1].Name)
	}
}

func TestFunctions_Nested(t *testing.T) {
	p := New()
	defer p.Close()

	source := []byte(`function outer() { function inner() { return 1; } return inner; }`)
	result, err := p.Parse(context.Background(), source, DialectJavaScript, "nested.js")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	defer result.Close()

	functions, err := Functions(result)
	if err != nil {
		t.Fatalf("Functions failed: %v", err)
	}

	if len(functions) != 2 {
		t.Fatalf("found %d functions, want 2", len(functions))
	}
	// Depth-first: the enclosing function is yielded before the nested one.
	if functions[0].Name != "outer" || functions[1].Name != "inner" {
		t.Errorf("function order = [%q, %q], want [outer, inner]", functions[0].Name, functions[1].Name)
	}
}

func TestIsFunctionKind(t *testing.T) {
	for _, kind := range []string{
		"function_declaration", "arrow_function", "method_definition",
		"generator_function", "generator_function_declaration",
	} {
		if !IsFunctionKind(kind) {
			t.Errorf("IsFunctionKind(%q) = false, want true", kind)
		}
	}
	for _, kind := range []string{"class_declaration", "identifier", "program", ""} {
		if IsFunctionKind(kind) {
			t.Errorf("IsFunctionKind(%q) = true, want false", kind)
		}
	}
}

func TestWalk_StopsDescent(t *testing.T) {
	p := New()
	defer p.Close()

	source := []byte(`function f() { return 1; }`)
	result, err := p.Parse(context.Background(), source, DialectJavaScript, "f.js")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	defer result.Close()

	visited := 0
	err = Walk(result.Tree.RootNode(), func(node *sitter.Node) bool {
		visited++
		return node.Type() == "program" // descend only from the root
	})
	if err != nil {
		t.Fatalf("Walk failed: %v", err)
	}

	// Root plus its direct children only.
	want := 1 + int(result.Tree.RootNode().ChildCount())
	if visited != want {
		t.Errorf("visited %d nodes, want %d", visited, want)
	}
}

func TestNodeText(t *testing.T) {
	p := New()
	defer p.Close()

	source := []byte(`const x = 42;`)
	result, err := p.Parse(context.Background(), source, DialectJavaScript, "x.js")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	defer result.Close()

	root := result.Tree.RootNode()
	if got := NodeText(root, source); got != "const x = 42;" {
		t.Errorf("NodeText(root) = %q", got)
	}
	if got := NodeText(nil, source); got != "" {
		t.Errorf("NodeText(nil) = %q, want empty", got)
	}
	if got := NodeText(root, source[:3]); got != "" {
		t.Errorf("NodeText with truncated source = %q, want empty", got)
	}
}
