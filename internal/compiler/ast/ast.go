package ast

import (
	"bytes"

	"github.com/arnavsurve/tacgen/internal/compiler/diag"
	"github.com/arnavsurve/tacgen/internal/compiler/symbols"
	"github.com/arnavsurve/tacgen/internal/compiler/token"
)

// --- Interfaces ---

// The node sets are closed: only this package implements the marker
// methods, so a type switch over them in the generator is exhaustive.
type Node interface {
	String() string
}

type Expression interface {
	Node
	expressionNode()
	ResultType() *symbols.Type
}

type Statement interface {
	Node
	statementNode()
}

// Loop is a statement that a break can leave.
type Loop interface {
	Statement
	loopNode()
}

// --- Program ---

// Program is one translation unit: the top-level block, every binding its
// declarations created (in declaration order), and the bytes they claimed.
type Program struct {
	Body  Statement
	Decls []*symbols.Binding
	Used  int
}

func (p *Program) String() string {
	if p.Body == nil {
		return ""
	}
	return p.Body.String()
}

// requireBool enforces a boolean condition at construction time.
func requireBool(tok token.Token, x Expression, what string) error {
	if x.ResultType() != symbols.Bool {
		return diag.Type(tok, "boolean required in %s, got %s", what, x.ResultType())
	}
	return nil
}

// assignable implements the store rule shared by Set and SetElem:
// numeric values widen into numeric slots, anything else must match exactly,
// and whole arrays are never copied.
func assignable(tok token.Token, dst, src *symbols.Type) error {
	if dst.IsArray() || src.IsArray() {
		return diag.Type(tok, "cannot assign %s to %s", src, dst)
	}
	if symbols.Numeric(dst) && symbols.Numeric(src) {
		return nil
	}
	if symbols.Identical(dst, src) {
		return nil
	}
	return diag.Type(tok, "cannot assign %s to %s", src, dst)
}

func paren(parts ...string) string {
	var out bytes.Buffer
	out.WriteString("(")
	for i, p := range parts {
		if i > 0 {
			out.WriteString(" ")
		}
		out.WriteString(p)
	}
	out.WriteString(")")
	return out.String()
}
