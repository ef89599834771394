package ast

import (
	"bytes"

	"github.com/arnavsurve/tacgen/internal/compiler/diag"
	"github.com/arnavsurve/tacgen/internal/compiler/symbols"
	"github.com/arnavsurve/tacgen/internal/compiler/token"
)

// --- Statements ---

// NullStatement -> ; or an empty block
type NullStatement struct{}

var Null Statement = &NullStatement{}

func (n *NullStatement) statementNode() {}
func (n *NullStatement) String() string { return ";" }

// Seq -> s1 s2; Rest is Null at the end of a block
type Seq struct {
	First Statement
	Rest  Statement
}

func NewSeq(first, rest Statement) Statement {
	return &Seq{First: first, Rest: rest}
}

func (s *Seq) statementNode() {}
func (s *Seq) String() string {
	var out bytes.Buffer
	var stmt Statement = s
	for {
		seq, ok := stmt.(*Seq)
		if !ok {
			break
		}
		if seq.First != Null {
			out.WriteString(seq.First.String())
			out.WriteString("\n")
		}
		stmt = seq.Rest
	}
	if stmt != Null {
		out.WriteString(stmt.String())
		out.WriteString("\n")
	}
	return out.String()
}

// If -> if (cond) then
type If struct {
	Token token.Token
	Cond  Expression
	Then  Statement
}

func NewIf(tok token.Token, cond Expression, then Statement) (*If, error) {
	if err := requireBool(tok, cond, "if"); err != nil {
		return nil, err
	}
	return &If{Token: tok, Cond: cond, Then: then}, nil
}

func (s *If) statementNode() {}
func (s *If) String() string {
	return "if " + s.Cond.String() + " " + s.Then.String()
}

// Else -> if (cond) then else otherwise
type Else struct {
	Token token.Token
	Cond  Expression
	Then  Statement
	Else  Statement
}

func NewElse(tok token.Token, cond Expression, then, otherwise Statement) (*Else, error) {
	if err := requireBool(tok, cond, "if"); err != nil {
		return nil, err
	}
	return &Else{Token: tok, Cond: cond, Then: then, Else: otherwise}, nil
}

func (s *Else) statementNode() {}
func (s *Else) String() string {
	return "if " + s.Cond.String() + " " + s.Then.String() + " else " + s.Else.String()
}

// While -> while (cond) body
//
// The node is allocated before its condition and body are parsed so that a
// break inside the body can point at it; Init completes it.
type While struct {
	Token token.Token
	Cond  Expression
	Body  Statement
}

func NewWhile(tok token.Token) *While { return &While{Token: tok} }

func (s *While) Init(cond Expression, body Statement) error {
	if err := requireBool(s.Token, cond, "while"); err != nil {
		return err
	}
	s.Cond, s.Body = cond, body
	return nil
}

func (s *While) statementNode() {}
func (s *While) loopNode()      {}
func (s *While) String() string {
	return "while " + s.Cond.String() + " " + s.Body.String()
}

// Do -> do body while (cond);
type Do struct {
	Token token.Token
	Body  Statement
	Cond  Expression
}

func NewDo(tok token.Token) *Do { return &Do{Token: tok} }

func (s *Do) Init(body Statement, cond Expression) error {
	if err := requireBool(s.Token, cond, "do"); err != nil {
		return err
	}
	s.Body, s.Cond = body, cond
	return nil
}

func (s *Do) statementNode() {}
func (s *Do) loopNode()      {}
func (s *Do) String() string {
	return "do " + s.Body.String() + " while " + s.Cond.String()
}

// For -> for (init; cond; update) body
type For struct {
	Token  token.Token
	Setup  Statement
	Cond   Expression
	Update Statement
	Body   Statement
}

func NewFor(tok token.Token) *For { return &For{Token: tok} }

func (s *For) Init(setup Statement, cond Expression, update, body Statement) error {
	if err := requireBool(s.Token, cond, "for"); err != nil {
		return err
	}
	s.Setup, s.Cond, s.Update, s.Body = setup, cond, update, body
	return nil
}

func (s *For) statementNode() {}
func (s *For) loopNode()      {}
func (s *For) String() string {
	return "for " + paren(s.Setup.String(), s.Cond.String()+";", s.Update.String()) + " " + s.Body.String()
}

// Break -> break; Loop is the innermost enclosing loop, a non-owning edge.
type Break struct {
	Token token.Token
	Loop  Loop
}

func NewBreak(tok token.Token, enclosing Loop) (*Break, error) {
	if enclosing == nil {
		return nil, diag.At(tok, diag.KindIllegalBreak, "unenclosed break")
	}
	return &Break{Token: tok, Loop: enclosing}, nil
}

func (s *Break) statementNode() {}
func (s *Break) String() string { return "break;" }

// Set -> id = expr;
type Set struct {
	Id    *Id
	Value Expression
}

func NewSet(id *Id, value Expression) (*Set, error) {
	if err := assignable(id.Token, id.ResultType(), value.ResultType()); err != nil {
		return nil, err
	}
	return &Set{Id: id, Value: value}, nil
}

func (s *Set) statementNode() {}
func (s *Set) String() string { return s.Id.String() + " = " + s.Value.String() + ";" }

// SetElem -> a[i] = expr;
type SetElem struct {
	Access *Access
	Value  Expression
}

func NewSetElem(access *Access, value Expression) (*SetElem, error) {
	if err := assignable(access.Array.Token, access.Type, value.ResultType()); err != nil {
		return nil, err
	}
	return &SetElem{Access: access, Value: value}, nil
}

func (s *SetElem) statementNode() {}
func (s *SetElem) String() string { return s.Access.String() + " = " + s.Value.String() + ";" }

// Increment -> id++; or id--;
type Increment struct {
	Id *Id
	Op token.Token
}

func NewIncrement(id *Id, op token.Token) (*Increment, error) {
	if !symbols.Numeric(id.ResultType()) {
		return nil, diag.Type(op, "operator %s requires a numeric operand, got %s", op.Literal, id.ResultType())
	}
	return &Increment{Id: id, Op: op}, nil
}

func (s *Increment) statementNode() {}
func (s *Increment) String() string { return s.Id.String() + s.Op.Literal + ";" }
