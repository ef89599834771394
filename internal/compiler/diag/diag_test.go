package diag

import (
	"errors"
	"fmt"
	"testing"

	"github.com/nalgeon/be"

	"github.com/arnavsurve/tacgen/internal/compiler/token"
)

func TestErrorFormat(t *testing.T) {
	tok := token.Token{Type: token.TokenIdent, Literal: "x", Line: 3, Column: 7}
	err := At(tok, KindUndeclared, "'%s' undeclared", tok.Literal)
	be.Equal(t, err.Error(), "3:7: Undeclared Error: 'x' undeclared")
}

func TestUnwrap(t *testing.T) {
	tok := token.Token{Line: 1, Column: 1}
	tests := []struct {
		err  error
		want error
	}{
		{Syntax(tok, "bad"), ErrSyntax},
		{Type(tok, "bad"), ErrType},
		{At(tok, KindRedeclaration, "bad"), ErrRedeclaration},
		{At(tok, KindIllegalBreak, "bad"), ErrIllegalBreak},
	}
	for _, tt := range tests {
		wrapped := fmt.Errorf("main.tg:%w", tt.err)
		be.True(t, errors.Is(wrapped, tt.want))
		be.True(t, !errors.Is(wrapped, ErrUndeclared))

		var d *Error
		be.True(t, errors.As(wrapped, &d))
		be.Equal(t, d.Line, 1)
	}
}
