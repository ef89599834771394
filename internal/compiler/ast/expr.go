package ast

import (
	"strconv"

	"github.com/arnavsurve/tacgen/internal/compiler/diag"
	"github.com/arnavsurve/tacgen/internal/compiler/symbols"
	"github.com/arnavsurve/tacgen/internal/compiler/token"
)

// --- Values ---

// Constant -> 42, 3.5, 'c', true, false
type Constant struct {
	Token token.Token
	Type  *symbols.Type
}

var (
	True  = &Constant{Token: token.Token{Type: token.TokenTrue, Literal: "true"}, Type: symbols.Bool}
	False = &Constant{Token: token.Token{Type: token.TokenFalse, Literal: "false"}, Type: symbols.Bool}
)

// IntConstant builds the integer constants the parser needs for element widths.
func IntConstant(n int) *Constant {
	return &Constant{
		Token: token.Token{Type: token.TokenInt, Literal: strconv.Itoa(n)},
		Type:  symbols.Int,
	}
}

func (c *Constant) expressionNode()           {}
func (c *Constant) ResultType() *symbols.Type { return c.Type }
func (c *Constant) String() string {
	if c.Token.Type == token.TokenChar {
		return "'" + c.Token.Literal + "'"
	}
	return c.Token.Literal
}

// Id -> a use of a declared name. Binding is a lookup result, not owned.
type Id struct {
	Token   token.Token
	Binding *symbols.Binding
}

func (i *Id) expressionNode()           {}
func (i *Id) ResultType() *symbols.Type { return i.Binding.Type }
func (i *Id) String() string            { return i.Binding.String() }

// Temp -> a compiler temporary. Only the generator creates these.
type Temp struct {
	Name string
	Type *symbols.Type
}

func (t *Temp) expressionNode()           {}
func (t *Temp) ResultType() *symbols.Type { return t.Type }
func (t *Temp) String() string            { return t.Name }

// --- Operators ---

// Arith -> x + y, x - y, x * y, x / y
type Arith struct {
	Op   token.Token
	X, Y Expression
	Type *symbols.Type
}

func NewArith(op token.Token, x, y Expression) (*Arith, error) {
	t := symbols.Max(x.ResultType(), y.ResultType())
	if t == nil {
		return nil, diag.Type(op, "operator %s requires numeric operands, got %s and %s", op.Literal, x.ResultType(), y.ResultType())
	}
	return &Arith{Op: op, X: x, Y: y, Type: t}, nil
}

func (a *Arith) expressionNode()           {}
func (a *Arith) ResultType() *symbols.Type { return a.Type }
func (a *Arith) String() string            { return paren(a.X.String(), a.Op.Literal, a.Y.String()) }

// Unary -> -x
type Unary struct {
	Op   token.Token
	X    Expression
	Type *symbols.Type
}

func NewUnary(op token.Token, x Expression) (*Unary, error) {
	t := symbols.Max(symbols.Int, x.ResultType())
	if t == nil {
		return nil, diag.Type(op, "operator %s requires a numeric operand, got %s", op.Literal, x.ResultType())
	}
	return &Unary{Op: op, X: x, Type: t}, nil
}

func (u *Unary) expressionNode()           {}
func (u *Unary) ResultType() *symbols.Type { return u.Type }
func (u *Unary) String() string            { return paren(u.Op.Literal, u.X.String()) }

// Access -> a[i][j]. Offset is a byte offset into Array, not an index.
type Access struct {
	Array  *Id
	Offset Expression
	Type   *symbols.Type
}

func NewAccess(array *Id, offset Expression, elem *symbols.Type) *Access {
	return &Access{Array: array, Offset: offset, Type: elem}
}

func (a *Access) expressionNode()           {}
func (a *Access) ResultType() *symbols.Type { return a.Type }
func (a *Access) String() string            { return a.Array.String() + " [ " + a.Offset.String() + " ]" }

// --- Boolean operators ---

// Rel -> x < y, x <= y, x > y, x >= y, x == y, x != y
type Rel struct {
	Op   token.Token
	X, Y Expression
}

// NewRel accepts two numeric operands, or two operands of one non-array type.
func NewRel(op token.Token, x, y Expression) (*Rel, error) {
	p1, p2 := x.ResultType(), y.ResultType()
	switch {
	case p1.IsArray() || p2.IsArray():
		return nil, diag.Type(op, "operator %s cannot compare arrays", op.Literal)
	case symbols.Numeric(p1) && symbols.Numeric(p2):
	case symbols.Identical(p1, p2):
	default:
		return nil, diag.Type(op, "operator %s cannot compare %s with %s", op.Literal, p1, p2)
	}
	return &Rel{Op: op, X: x, Y: y}, nil
}

func (r *Rel) expressionNode()           {}
func (r *Rel) ResultType() *symbols.Type { return symbols.Bool }
func (r *Rel) String() string            { return paren(r.X.String(), r.Op.Literal, r.Y.String()) }

// And -> x && y
type And struct {
	Op   token.Token
	X, Y Expression
}

func NewAnd(op token.Token, x, y Expression) (*And, error) {
	if err := logical(op, x, y); err != nil {
		return nil, err
	}
	return &And{Op: op, X: x, Y: y}, nil
}

func (a *And) expressionNode()           {}
func (a *And) ResultType() *symbols.Type { return symbols.Bool }
func (a *And) String() string            { return paren(a.X.String(), "&&", a.Y.String()) }

// Or -> x || y
type Or struct {
	Op   token.Token
	X, Y Expression
}

func NewOr(op token.Token, x, y Expression) (*Or, error) {
	if err := logical(op, x, y); err != nil {
		return nil, err
	}
	return &Or{Op: op, X: x, Y: y}, nil
}

func (o *Or) expressionNode()           {}
func (o *Or) ResultType() *symbols.Type { return symbols.Bool }
func (o *Or) String() string            { return paren(o.X.String(), "||", o.Y.String()) }

// Not -> !x
type Not struct {
	Op token.Token
	X  Expression
}

func NewNot(op token.Token, x Expression) (*Not, error) {
	if x.ResultType() != symbols.Bool {
		return nil, diag.Type(op, "operator ! requires a boolean operand, got %s", x.ResultType())
	}
	return &Not{Op: op, X: x}, nil
}

func (n *Not) expressionNode()           {}
func (n *Not) ResultType() *symbols.Type { return symbols.Bool }
func (n *Not) String() string            { return paren("!", n.X.String()) }

func logical(op token.Token, x, y Expression) error {
	if x.ResultType() != symbols.Bool || y.ResultType() != symbols.Bool {
		return diag.Type(op, "operator %s requires boolean operands, got %s and %s", op.Literal, x.ResultType(), y.ResultType())
	}
	return nil
}

// IsSimple reports whether x already names a value: a constant, an
// identifier or a temporary. Reducing a simple expression emits nothing.
func IsSimple(x Expression) bool {
	switch x.(type) {
	case *Constant, *Id, *Temp:
		return true
	}
	return false
}
