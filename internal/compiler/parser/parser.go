package parser

import (
	"strconv"

	"github.com/arnavsurve/tacgen/internal/compiler/ast"
	"github.com/arnavsurve/tacgen/internal/compiler/diag"
	"github.com/arnavsurve/tacgen/internal/compiler/lexer"
	"github.com/arnavsurve/tacgen/internal/compiler/scope"
	"github.com/arnavsurve/tacgen/internal/compiler/symbols"
	"github.com/arnavsurve/tacgen/internal/compiler/token"
)

type Parser struct {
	l       *lexer.Lexer
	curTok  token.Token
	peekTok token.Token

	// Scope management and storage allocation for this unit
	env      *scope.Env
	declared []*symbols.Binding

	// enclosing is the innermost loop under construction; break binds to it.
	// Each loop saves it, installs itself, and restores it when done.
	enclosing ast.Loop

	// Permissive allows redeclaring a name in the same block.
	Permissive bool
}

func NewParser(l *lexer.Lexer) *Parser {
	p := &Parser{
		l:   l,
		env: scope.NewEnv(),
	}
	// Read two tokens, so curTok and peekTok are both set
	p.nextToken()
	p.nextToken()
	return p
}

// --- Error Handling ---

// bailout carries the first error up to ParseProgram. Translation stops
// at the first problem, there is no recovery.
type bailout struct{ err error }

func (p *Parser) fail(err error) {
	panic(bailout{err})
}

// must unwraps a checked constructor, aborting the parse on error.
func must[T any](v T, err error) T {
	if err != nil {
		panic(bailout{err})
	}
	return v
}

// --- Token Handling ---

func (p *Parser) nextToken() {
	p.curTok = p.peekTok
	p.peekTok = p.l.NextToken()
}

func (p *Parser) curIs(t token.TokenType) bool { return p.curTok.Type == t }

// match consumes the current token if it has type t.
func (p *Parser) match(t token.TokenType, what string) token.Token {
	tok := p.curTok
	if tok.Type == token.TokenIllegal {
		p.fail(diag.Syntax(tok, "illegal token %q", tok.Literal))
	}
	if tok.Type != t {
		p.fail(diag.Syntax(tok, "expected %s, got %q", what, tok.Literal))
	}
	p.nextToken()
	return tok
}

// --- Program Parsing ---

// ParseProgram parses one unit: a single top-level block.
func (p *Parser) ParseProgram() (prog *ast.Program, err error) {
	defer func() {
		if r := recover(); r != nil {
			b, ok := r.(bailout)
			if !ok {
				panic(r)
			}
			prog, err = nil, b.err
		}
	}()

	p.env.Permissive = p.Permissive
	body := p.block()
	p.match(token.TokenEOF, "end of input")

	return &ast.Program{Body: body, Used: p.env.Used(), Decls: p.declared}, nil
}

func (p *Parser) block() ast.Statement {
	p.match(token.TokenLBrace, "'{'")
	p.env.Enter()
	p.decls()
	s := p.stmts()
	p.match(token.TokenRBrace, "'}'")
	p.env.Exit()
	return s
}

func (p *Parser) decls() {
	for p.curIs(token.TokenBasic) {
		t := p.typ()
		tok := p.match(token.TokenIdent, "identifier")
		p.match(token.TokenSemicolon, "';'")
		b := must(p.env.Declare(tok, t))
		p.declared = append(p.declared, b)
	}
}

// typ -> basic dims?
func (p *Parser) typ() *symbols.Type {
	tok := p.match(token.TokenBasic, "type")
	t, _ := symbols.Basic(tok.Literal)
	if !p.curIs(token.TokenLBracket) {
		return t
	}
	return p.dims(t)
}

// dims -> [ num ] dims?  (int[5][10] is Array(5, Array(10, int)))
func (p *Parser) dims(t *symbols.Type) *symbols.Type {
	p.match(token.TokenLBracket, "'['")
	tok := p.match(token.TokenInt, "array size")
	p.match(token.TokenRBracket, "']'")
	n, err := strconv.Atoi(tok.Literal)
	if err != nil || n <= 0 {
		p.fail(diag.Syntax(tok, "invalid array size %s", tok.Literal))
	}
	if p.curIs(token.TokenLBracket) {
		t = p.dims(t)
	}
	return symbols.NewArray(n, t)
}

// --- Statements ---

func (p *Parser) stmts() ast.Statement {
	if p.curIs(token.TokenRBrace) || p.curIs(token.TokenEOF) {
		return ast.Null
	}
	first := p.stmt()
	return ast.NewSeq(first, p.stmts())
}

func (p *Parser) stmt() ast.Statement {
	switch p.curTok.Type {
	case token.TokenSemicolon:
		p.nextToken()
		return ast.Null

	case token.TokenIf:
		tok := p.match(token.TokenIf, "if")
		x := p.condition()
		s1 := p.stmt()
		if !p.curIs(token.TokenElse) {
			return must(ast.NewIf(tok, x, s1))
		}
		p.match(token.TokenElse, "else")
		s2 := p.stmt()
		return must(ast.NewElse(tok, x, s1, s2))

	case token.TokenWhile:
		node := ast.NewWhile(p.match(token.TokenWhile, "while"))
		saved := p.enclosing
		p.enclosing = node
		x := p.condition()
		body := p.stmt()
		p.check(node.Init(x, body))
		p.enclosing = saved
		return node

	case token.TokenDo:
		node := ast.NewDo(p.match(token.TokenDo, "do"))
		saved := p.enclosing
		p.enclosing = node
		body := p.stmt()
		p.match(token.TokenWhile, "while")
		x := p.condition()
		p.match(token.TokenSemicolon, "';'")
		p.check(node.Init(body, x))
		p.enclosing = saved
		return node

	case token.TokenFor:
		node := ast.NewFor(p.match(token.TokenFor, "for"))
		saved := p.enclosing
		p.enclosing = node
		p.match(token.TokenLParen, "'('")
		setup := p.stmt()
		x := p.boolExpr()
		p.match(token.TokenSemicolon, "';'")
		update := ast.Null
		if !p.curIs(token.TokenRParen) {
			update = p.simple()
		}
		p.match(token.TokenRParen, "')'")
		body := p.stmt()
		p.check(node.Init(setup, x, update, body))
		p.enclosing = saved
		return node

	case token.TokenBreak:
		tok := p.match(token.TokenBreak, "break")
		p.match(token.TokenSemicolon, "';'")
		return must(ast.NewBreak(tok, p.enclosing))

	case token.TokenLBrace:
		return p.block()

	default:
		s := p.simple()
		p.match(token.TokenSemicolon, "';'")
		return s
	}
}

func (p *Parser) check(err error) {
	if err != nil {
		p.fail(err)
	}
}

// condition -> ( bool )
func (p *Parser) condition() ast.Expression {
	p.match(token.TokenLParen, "'('")
	x := p.boolExpr()
	p.match(token.TokenRParen, "')'")
	return x
}

// simple -> id = bool | id++ | id-- | id[...] = bool   (no trailing ';')
func (p *Parser) simple() ast.Statement {
	id := p.ident()
	switch p.curTok.Type {
	case token.TokenAssign:
		p.nextToken()
		return must(ast.NewSet(id, p.boolExpr()))
	case token.TokenInc, token.TokenDec:
		op := p.curTok
		p.nextToken()
		return must(ast.NewIncrement(id, op))
	case token.TokenLBracket:
		x := p.offset(id)
		p.match(token.TokenAssign, "'='")
		return must(ast.NewSetElem(x, p.boolExpr()))
	}
	p.fail(diag.Syntax(p.curTok, "expected assignment after %s, got %q", id.Token.Literal, p.curTok.Literal))
	return nil
}

func (p *Parser) ident() *ast.Id {
	tok := p.match(token.TokenIdent, "identifier")
	b := must(p.env.Resolve(tok))
	return &ast.Id{Token: tok, Binding: b}
}
