// Package diag defines the errors a translation can abort with.
package diag

import (
	"errors"
	"fmt"

	"github.com/arnavsurve/tacgen/internal/compiler/token"
)

type Kind int

const (
	KindSyntax Kind = iota
	KindType
	KindUndeclared
	KindRedeclaration
	KindIllegalBreak
)

var (
	ErrSyntax        = errors.New("syntax error")
	ErrType          = errors.New("type error")
	ErrUndeclared    = errors.New("undeclared identifier")
	ErrRedeclaration = errors.New("redeclared identifier")
	ErrIllegalBreak  = errors.New("break outside of loop")
)

var sentinels = map[Kind]error{
	KindSyntax:        ErrSyntax,
	KindType:          ErrType,
	KindUndeclared:    ErrUndeclared,
	KindRedeclaration: ErrRedeclaration,
	KindIllegalBreak:  ErrIllegalBreak,
}

var labels = map[Kind]string{
	KindSyntax:        "Syntax",
	KindType:          "Type",
	KindUndeclared:    "Undeclared",
	KindRedeclaration: "Redeclaration",
	KindIllegalBreak:  "Break",
}

func (k Kind) String() string { return labels[k] }

// Error is a positioned diagnostic. It unwraps to the sentinel of its Kind.
type Error struct {
	Kind   Kind
	Line   int
	Column int
	Msg    string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%d:%d: %s Error: %s", e.Line, e.Column, e.Kind, e.Msg)
}

func (e *Error) Unwrap() error { return sentinels[e.Kind] }

func At(tok token.Token, kind Kind, format string, args ...any) *Error {
	return &Error{
		Kind:   kind,
		Line:   tok.Line,
		Column: tok.Column,
		Msg:    fmt.Sprintf(format, args...),
	}
}

func Syntax(tok token.Token, format string, args ...any) *Error {
	return At(tok, KindSyntax, format, args...)
}

func Type(tok token.Token, format string, args ...any) *Error {
	return At(tok, KindType, format, args...)
}
