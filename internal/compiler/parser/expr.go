package parser

import (
	"github.com/arnavsurve/tacgen/internal/compiler/ast"
	"github.com/arnavsurve/tacgen/internal/compiler/diag"
	"github.com/arnavsurve/tacgen/internal/compiler/symbols"
	"github.com/arnavsurve/tacgen/internal/compiler/token"
)

// --- Expressions ---
//
// Precedence, loosest first:
//   boolExpr ||
//   join     &&
//   equality == !=
//   rel      < <= > >=   (not associative)
//   expr     + -
//   term     * /
//   unary    - !
//   factor

func (p *Parser) boolExpr() ast.Expression {
	x := p.join()
	for p.curIs(token.TokenOr) {
		tok := p.curTok
		p.nextToken()
		x = must(ast.NewOr(tok, x, p.join()))
	}
	return x
}

func (p *Parser) join() ast.Expression {
	x := p.equality()
	for p.curIs(token.TokenAnd) {
		tok := p.curTok
		p.nextToken()
		x = must(ast.NewAnd(tok, x, p.equality()))
	}
	return x
}

func (p *Parser) equality() ast.Expression {
	x := p.rel()
	for p.curIs(token.TokenEQ) || p.curIs(token.TokenNE) {
		tok := p.curTok
		p.nextToken()
		x = must(ast.NewRel(tok, x, p.rel()))
	}
	return x
}

func (p *Parser) rel() ast.Expression {
	x := p.expr()
	switch p.curTok.Type {
	case token.TokenLT, token.TokenLE, token.TokenGT, token.TokenGE:
		tok := p.curTok
		p.nextToken()
		return must(ast.NewRel(tok, x, p.expr()))
	}
	return x
}

func (p *Parser) expr() ast.Expression {
	x := p.term()
	for p.curIs(token.TokenPlus) || p.curIs(token.TokenMinus) {
		tok := p.curTok
		p.nextToken()
		x = must(ast.NewArith(tok, x, p.term()))
	}
	return x
}

func (p *Parser) term() ast.Expression {
	x := p.unary()
	for p.curIs(token.TokenAsterisk) || p.curIs(token.TokenSlash) {
		tok := p.curTok
		p.nextToken()
		x = must(ast.NewArith(tok, x, p.unary()))
	}
	return x
}

func (p *Parser) unary() ast.Expression {
	switch p.curTok.Type {
	case token.TokenMinus:
		tok := p.curTok
		p.nextToken()
		return must(ast.NewUnary(tok, p.unary()))
	case token.TokenBang:
		tok := p.curTok
		p.nextToken()
		return must(ast.NewNot(tok, p.unary()))
	}
	return p.factor()
}

func (p *Parser) factor() ast.Expression {
	tok := p.curTok
	switch tok.Type {
	case token.TokenLParen:
		p.nextToken()
		x := p.boolExpr()
		p.match(token.TokenRParen, "')'")
		return x
	case token.TokenInt:
		p.nextToken()
		return &ast.Constant{Token: tok, Type: symbols.Int}
	case token.TokenReal:
		p.nextToken()
		return &ast.Constant{Token: tok, Type: symbols.Float}
	case token.TokenChar:
		p.nextToken()
		return &ast.Constant{Token: tok, Type: symbols.Char}
	case token.TokenTrue:
		p.nextToken()
		return ast.True
	case token.TokenFalse:
		p.nextToken()
		return ast.False
	case token.TokenIdent:
		id := p.ident()
		if !p.curIs(token.TokenLBracket) {
			return id
		}
		return p.offset(id)
	case token.TokenIllegal:
		p.fail(diag.Syntax(tok, "illegal token %q", tok.Literal))
	}
	p.fail(diag.Syntax(tok, "expected expression, got %q", tok.Literal))
	return nil
}

// offset folds a[i][j]... into the byte offset
//
//	((i * w0) + (j * w1)) + ...
//
// where wN is the width of the element the N-th index selects.
func (p *Parser) offset(a *ast.Id) *ast.Access {
	t := a.ResultType()

	index := func() ast.Expression {
		open := p.match(token.TokenLBracket, "'['")
		if !t.IsArray() {
			p.fail(diag.Type(open, "'%s' indexed with too many subscripts or is not an array", a.Token.Literal))
		}
		i := p.boolExpr()
		p.match(token.TokenRBracket, "']'")
		if k := i.ResultType(); k != symbols.Int && k != symbols.Char {
			p.fail(diag.Type(open, "array index must be an integer, got %s", k))
		}
		t = t.Of
		mul := token.Token{Type: token.TokenAsterisk, Literal: "*", Line: open.Line, Column: open.Column}
		return must(ast.NewArith(mul, i, ast.IntConstant(t.Width)))
	}

	loc := index()
	for p.curIs(token.TokenLBracket) {
		open := p.curTok
		term := index()
		plus := token.Token{Type: token.TokenPlus, Literal: "+", Line: open.Line, Column: open.Column}
		loc = must(ast.NewArith(plus, loc, term))
	}
	return ast.NewAccess(a, loc, t)
}
