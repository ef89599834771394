package parser

import (
	"errors"
	"strings"
	"testing"

	"github.com/nalgeon/be"

	"github.com/arnavsurve/tacgen/internal/compiler/ast"
	"github.com/arnavsurve/tacgen/internal/compiler/diag"
	"github.com/arnavsurve/tacgen/internal/compiler/lexer"
	"github.com/arnavsurve/tacgen/internal/compiler/symbols"
)

func parse(t *testing.T, input string) *ast.Program {
	t.Helper()
	prog, err := NewParser(lexer.NewLexer(input)).ParseProgram()
	if err != nil {
		t.Fatalf("ParseProgram(%q) returned error: %v", input, err)
	}
	if prog == nil {
		t.Fatalf("ParseProgram(%q) returned nil", input)
	}
	return prog
}

func parseErr(input string) error {
	_, err := NewParser(lexer.NewLexer(input)).ParseProgram()
	return err
}

// first returns the first statement of a block body.
func first(t *testing.T, s ast.Statement) ast.Statement {
	t.Helper()
	seq, ok := s.(*ast.Seq)
	if !ok {
		t.Fatalf("body is not *ast.Seq. got=%T", s)
	}
	return seq.First
}

func TestDeclarations(t *testing.T) {
	prog := parse(t, `{ int a; float b; char c; bool d; int[5][10] m; }`)

	be.Equal(t, len(prog.Decls), 5)
	offsets := []int{0, 4, 12, 13, 14}
	for i, b := range prog.Decls {
		be.Equal(t, b.Offset, offsets[i])
	}
	m := prog.Decls[4]
	be.Equal(t, m.Type.String(), "[5] [10] int")
	be.Equal(t, m.Type.Width, 200)
	be.Equal(t, prog.Used, 214)
	be.True(t, prog.Body == ast.Null)
}

func TestArrayOffset(t *testing.T) {
	prog := parse(t, `{ int[5][10] a; int i; int j; a[i][j] = 7; }`)

	set, ok := first(t, prog.Body).(*ast.SetElem)
	if !ok {
		t.Fatalf("statement is not *ast.SetElem. got=%T", first(t, prog.Body))
	}
	be.Equal(t, set.Access.Offset.String(), "((i * 40) + (j * 4))")
	be.Equal(t, set.Access.Type, symbols.Int)
	be.Equal(t, set.String(), "a [ ((i * 40) + (j * 4)) ] = 7;")
}

func TestPartialIndex(t *testing.T) {
	prog := parse(t, `{ int[5][10] a; int x; x = 1; }`)
	be.Equal(t, len(prog.Decls), 2)

	// a[1] alone selects a row, which cannot be assigned whole.
	err := parseErr(`{ int[5][10] a; a[1] = 3; }`)
	be.True(t, errors.Is(err, diag.ErrType))
}

func TestPrecedence(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"{ int x; int y; x = x + y * 2; }", "x = (x + (y * 2));"},
		{"{ int x; int y; x = (x + y) * 2; }", "x = ((x + y) * 2);"},
		{"{ int x; int y; x = x - y - 1; }", "x = ((x - y) - 1);"},
		{"{ int x; x = -x * 2; }", "x = ((- x) * 2);"},
		{"{ bool b; int x; b = x < 1 || x > 5 && !b; }", "b = ((x < 1) || ((x > 5) && (! b)));"},
		{"{ bool b; int x; b = x == 1 != b; }", "b = ((x == 1) != b);"},
		{"{ char c; c = 'z'; }", "c = 'z';"},
	}
	for _, tt := range tests {
		prog := parse(t, tt.input)
		be.Equal(t, first(t, prog.Body).String(), tt.expected)
	}
}

func TestBreakBindsInnermostLoop(t *testing.T) {
	prog := parse(t, `{ while (true) { do break; while (false); break; } }`)

	outer, ok := first(t, prog.Body).(*ast.While)
	if !ok {
		t.Fatalf("statement is not *ast.While. got=%T", first(t, prog.Body))
	}
	body := outer.Body.(*ast.Seq)
	inner := body.First.(*ast.Do)
	innerBreak := inner.Body.(*ast.Break)
	outerBreak := body.Rest.(*ast.Seq).First.(*ast.Break)

	be.True(t, innerBreak.Loop == ast.Loop(inner))
	be.True(t, outerBreak.Loop == ast.Loop(outer))
}

func TestForParts(t *testing.T) {
	prog := parse(t, `{ int i; int s; for (i = 0; i < 3; i++) s = s + i; }`)

	loop, ok := first(t, prog.Body).(*ast.For)
	if !ok {
		t.Fatalf("statement is not *ast.For. got=%T", first(t, prog.Body))
	}
	be.Equal(t, loop.Setup.String(), "i = 0;")
	be.Equal(t, loop.Cond.String(), "(i < 3)")
	be.Equal(t, loop.Update.String(), "i++;")
	be.Equal(t, loop.Body.String(), "s = (s + i);")

	prog = parse(t, `{ int i; for (; i < 3;) i++; }`)
	loop = first(t, prog.Body).(*ast.For)
	be.True(t, loop.Setup == ast.Null)
	be.True(t, loop.Update == ast.Null)
}

func TestShadowedRefs(t *testing.T) {
	prog := parse(t, `{ int x; x = 1; { float x; x = 2.5; } }`)
	be.Equal(t, len(prog.Decls), 2)
	be.Equal(t, prog.Decls[0].String(), "x")
	be.Equal(t, prog.Decls[1].String(), "x.1")
	be.Equal(t, prog.Decls[1].Offset, 4)
}

func TestErrors(t *testing.T) {
	tests := []struct {
		input string
		kind  error
		msg   string
	}{
		{"{ x = 1; }", diag.ErrUndeclared, "1:3: Undeclared Error: 'x' undeclared"},
		{"{ break; }", diag.ErrIllegalBreak, "unenclosed break"},
		{"{ while (true) ; break; }", diag.ErrIllegalBreak, "unenclosed break"},
		{"{ int x; int x; }", diag.ErrRedeclaration, "'x' already declared"},
		{"{ int x; bool b; x = b; }", diag.ErrType, "cannot assign bool to int"},
		{"{ int x; if (x) x = 1; }", diag.ErrType, "boolean required in if"},
		{"{ int x; while (x + 1) x = 1; }", diag.ErrType, "boolean required in while"},
		{"{ int x; do x = 1; while (x); }", diag.ErrType, "boolean required in do"},
		{"{ int[3] a; int[3] b; a = b; }", diag.ErrType, "cannot assign"},
		{"{ int[3] a; int[3] b; bool c; c = a == b; }", diag.ErrType, "cannot compare arrays"},
		{"{ int i; i[0] = 1; }", diag.ErrType, "not an array"},
		{"{ int[2] a; a[0][1] = 1; }", diag.ErrType, "too many subscripts"},
		{"{ int[2] a; float f; a[f] = 1; }", diag.ErrType, "array index must be an integer"},
		{"{ bool b; b++; }", diag.ErrType, "requires a numeric operand"},
		{"{ bool b; int x; x = x + b; }", diag.ErrType, "requires numeric operands"},
		{"{ bool b; int x; b = b && x; }", diag.ErrType, "requires boolean operands"},
		{"{ bool b; b = !3; }", diag.ErrType, "requires a boolean operand"},
		{"{ bool b; char c; b = b < c; }", diag.ErrType, "cannot compare bool with char"},
		{"{ int x; x = 1 }", diag.ErrSyntax, "expected ';'"},
		{"{ bool b; int a; b = a < 1 < 2; }", diag.ErrSyntax, "expected ';'"},
		{"{ int x; } x", diag.ErrSyntax, "expected end of input"},
		{"int x;", diag.ErrSyntax, "expected '{'"},
		{"{ int[0] a; }", diag.ErrSyntax, "invalid array size"},
		{"{ int x; x = 1; /* open", diag.ErrSyntax, "illegal token"},
		{"{ char c; c = 'ab'; }", diag.ErrSyntax, "illegal token"},
		{"{ int x; x; }", diag.ErrSyntax, "expected assignment after x"},
	}
	for _, tt := range tests {
		err := parseErr(tt.input)
		if err == nil {
			t.Errorf("%q: expected an error", tt.input)
			continue
		}
		if !errors.Is(err, tt.kind) {
			t.Errorf("%q: expected %v, got %v", tt.input, tt.kind, err)
		}
		if !strings.Contains(err.Error(), tt.msg) {
			t.Errorf("%q: expected message containing %q, got %q", tt.input, tt.msg, err.Error())
		}
	}
}

func TestPermissive(t *testing.T) {
	p := NewParser(lexer.NewLexer(`{ int x; float x; x = 1.5; }`))
	p.Permissive = true
	prog, err := p.ParseProgram()
	be.Err(t, err, nil)
	be.Equal(t, len(prog.Decls), 2)
	be.Equal(t, prog.Decls[1].Type, symbols.Float)
	be.Equal(t, prog.Decls[1].String(), "x.1")
	be.Equal(t, prog.Used, 12)
}
