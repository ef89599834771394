// Package codegen turns a checked AST into labelled three-address code.
//
// Every statement is generated with two labels: begin, the label placed
// immediately before the statement's code, and after, the label of its
// successor. A statement's code always ends up at after, either by falling
// through or by jumping, so siblings can simply be concatenated.
//
// Boolean expressions are generated as jump code. A label of 0 means
// "fall through to whatever is emitted next" and at most one of the two
// labels passed to jumping may be 0.
package codegen

import (
	"fmt"

	"github.com/arnavsurve/tacgen/internal/compiler/ast"
	"github.com/arnavsurve/tacgen/internal/compiler/emitter"
	"github.com/arnavsurve/tacgen/internal/compiler/token"
)

// Fall is the "no label" sentinel: fall through instead of jumping.
const Fall = 0

// Generator walks one checked tree and appends its code to an emitter.
type Generator struct {
	em *emitter.Emitter

	// after records each loop's exit label once the loop is being generated.
	after map[ast.Loop]int
}

// New returns a generator writing into em.
func New(em *emitter.Emitter) *Generator {
	return &Generator{em: em, after: make(map[ast.Loop]int)}
}

// Translate generates a whole unit into a fresh emitter:
// begin:, root code, after:.
func Translate(root ast.Statement) *emitter.Emitter {
	em := emitter.NewEmitter()
	New(em).Program(root)
	return em
}

// Program emits begin:, the code for root, then after:.
func (g *Generator) Program(root ast.Statement) {
	begin := g.em.NewLabel()
	after := g.em.NewLabel()
	g.em.EmitLabel(begin)
	g.Gen(root, begin, after)
	g.em.EmitLabel(after)
}

// --- Statements ---

// Gen emits s so that its code starts at begin and ends up at after.
func (g *Generator) Gen(s ast.Statement, begin, after int) {
	switch s := s.(type) {
	case *ast.NullStatement:
		// nothing to emit

	case *ast.Seq:
		switch {
		case s.First == ast.Null:
			g.Gen(s.Rest, begin, after)
		case s.Rest == ast.Null:
			g.Gen(s.First, begin, after)
		default:
			label := g.em.NewLabel()
			g.Gen(s.First, begin, label)
			g.em.EmitLabel(label)
			g.Gen(s.Rest, label, after)
		}

	case *ast.If:
		label := g.em.NewLabel()
		g.Jumping(s.Cond, Fall, after)
		g.em.EmitLabel(label)
		g.Gen(s.Then, label, after)

	case *ast.Else:
		label1 := g.em.NewLabel()
		label2 := g.em.NewLabel()
		g.Jumping(s.Cond, Fall, label2)
		g.em.EmitLabel(label1)
		g.Gen(s.Then, label1, after)
		g.em.Goto(after)
		g.em.EmitLabel(label2)
		g.Gen(s.Else, label2, after)

	case *ast.While:
		g.after[s] = after
		g.Jumping(s.Cond, Fall, after)
		label := g.em.NewLabel()
		g.em.EmitLabel(label)
		g.Gen(s.Body, label, begin)
		g.em.Goto(begin)

	case *ast.Do:
		g.after[s] = after
		label := g.em.NewLabel()
		g.Gen(s.Body, begin, label)
		g.em.EmitLabel(label)
		g.Jumping(s.Cond, begin, Fall)

	case *ast.For:
		g.after[s] = after
		test := g.em.NewLabel()
		g.Gen(s.Setup, begin, test)
		g.em.EmitLabel(test)
		g.Jumping(s.Cond, Fall, after)
		body := g.em.NewLabel()
		g.em.EmitLabel(body)
		update := g.em.NewLabel()
		g.Gen(s.Body, body, update)
		g.em.EmitLabel(update)
		g.Gen(s.Update, update, test)
		g.em.Goto(test)

	case *ast.Break:
		g.em.Goto(g.after[s.Loop])

	case *ast.Set:
		g.em.Copy(s.Id.String(), g.Reduce(s.Value).String())

	case *ast.SetElem:
		offset := g.Reduce(s.Access.Offset).String()
		value := g.Reduce(s.Value).String()
		g.em.Emit(emitter.Instr{Op: emitter.OpStore, Dst: s.Access.Array.String(), X: offset, Y: value})

	case *ast.Increment:
		g.em.Emit(emitter.Instr{Op: emitter.OpIncr, Oper: s.Op.Literal, Dst: s.Id.String()})

	default:
		panic(fmt.Sprintf("codegen: unexpected statement %T", s))
	}
}

// --- Expressions: value code ---

// Reduce emits the code computing x and returns a simple expression
// (constant, identifier or temporary) that holds its value.
func (g *Generator) Reduce(x ast.Expression) ast.Expression {
	switch x := x.(type) {
	case *ast.Constant, *ast.Id, *ast.Temp:
		return x

	case *ast.Arith:
		y := g.gen(x).(*ast.Arith)
		t := g.newTemp(x)
		g.em.Emit(emitter.Instr{Op: emitter.OpBinary, Dst: t.Name, X: y.X.String(), Oper: y.Op.Literal, Y: y.Y.String()})
		return t

	case *ast.Unary:
		y := g.gen(x).(*ast.Unary)
		t := g.newTemp(x)
		g.em.Emit(emitter.Instr{Op: emitter.OpUnary, Dst: t.Name, Oper: y.Op.Literal, X: y.X.String()})
		return t

	case *ast.Access:
		y := g.gen(x).(*ast.Access)
		t := g.newTemp(x)
		g.em.Emit(emitter.Instr{Op: emitter.OpLoad, Dst: t.Name, X: y.Array.String(), Y: y.Offset.String()})
		return t

	case *ast.Rel, *ast.And, *ast.Or, *ast.Not:
		return g.gen(x)
	}
	panic(fmt.Sprintf("codegen: unexpected expression %T", x))
}

// gen returns x rewritten over reduced operands, so that it is a single
// instruction's right-hand side. Boolean operators are materialized into a
// temporary through jump code.
func (g *Generator) gen(x ast.Expression) ast.Expression {
	switch x := x.(type) {
	case *ast.Arith:
		return &ast.Arith{Op: x.Op, X: g.Reduce(x.X), Y: g.Reduce(x.Y), Type: x.Type}
	case *ast.Unary:
		return &ast.Unary{Op: x.Op, X: g.Reduce(x.X), Type: x.Type}
	case *ast.Access:
		return &ast.Access{Array: x.Array, Offset: g.Reduce(x.Offset), Type: x.Type}
	case *ast.Rel, *ast.And, *ast.Or, *ast.Not:
		f := g.em.NewLabel()
		a := g.em.NewLabel()
		t := g.newTemp(x)
		g.Jumping(x, Fall, f)
		g.em.Copy(t.Name, ast.True.String())
		g.em.Goto(a)
		g.em.EmitLabel(f)
		g.em.Copy(t.Name, ast.False.String())
		g.em.EmitLabel(a)
		return t
	}
	return x
}

func (g *Generator) newTemp(x ast.Expression) *ast.Temp {
	return &ast.Temp{Name: g.em.NewTemp(), Type: x.ResultType()}
}

// --- Expressions: jump code ---

// Jumping emits code that transfers control to t when x is true and to f
// when it is false. Either label may be Fall, but not both.
func (g *Generator) Jumping(x ast.Expression, t, f int) {
	switch x := x.(type) {
	case *ast.Constant:
		switch {
		case x.Token.Type == token.TokenTrue && t != Fall:
			g.em.Goto(t)
		case x.Token.Type == token.TokenFalse && f != Fall:
			g.em.Goto(f)
		}

	case *ast.Rel:
		a := g.Reduce(x.X)
		b := g.Reduce(x.Y)
		g.emitJumps(a.String(), x.Op.Literal, b.String(), t, f)

	case *ast.Or:
		label := t
		if t == Fall {
			label = g.em.NewLabel()
		}
		g.Jumping(x.X, label, Fall)
		g.Jumping(x.Y, t, f)
		if t == Fall {
			g.em.EmitLabel(label)
		}

	case *ast.And:
		label := f
		if f == Fall {
			label = g.em.NewLabel()
		}
		g.Jumping(x.X, Fall, label)
		g.Jumping(x.Y, t, f)
		if f == Fall {
			g.em.EmitLabel(label)
		}

	case *ast.Not:
		g.Jumping(x.X, f, t)

	default:
		g.emitJumps(g.Reduce(x).String(), "==", ast.True.String(), t, f)
	}
}

// emitJumps tests "x oper y", eliding the half that falls through.
func (g *Generator) emitJumps(x, oper, y string, t, f int) {
	switch {
	case t != Fall && f != Fall:
		g.em.Emit(emitter.Instr{Op: emitter.OpIf, X: x, Oper: oper, Y: y, Target: t})
		g.em.Goto(f)
	case t != Fall:
		g.em.Emit(emitter.Instr{Op: emitter.OpIf, X: x, Oper: oper, Y: y, Target: t})
	case f != Fall:
		g.em.Emit(emitter.Instr{Op: emitter.OpIfFalse, X: x, Oper: oper, Y: y, Target: f})
	}
}
