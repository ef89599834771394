package token

import "fmt"

type TokenType string

const (
	// Single character tokens
	TokenLParen    TokenType = "LPAREN"    // (
	TokenRParen    TokenType = "RPAREN"    // )
	TokenLBrace    TokenType = "LBRACE"    // {
	TokenRBrace    TokenType = "RBRACE"    // }
	TokenLBracket  TokenType = "LBRACKET"  // [
	TokenRBracket  TokenType = "RBRACKET"  // ]
	TokenSemicolon TokenType = "SEMICOLON" // ;
	TokenAssign    TokenType = "ASSIGN"    // =
	TokenPlus      TokenType = "PLUS"      // +
	TokenMinus     TokenType = "MINUS"     // -
	TokenAsterisk  TokenType = "ASTERISK"  // *
	TokenSlash     TokenType = "SLASH"     // /
	TokenBang      TokenType = "BANG"      // !
	TokenLT        TokenType = "LT"        // <
	TokenGT        TokenType = "GT"        // >

	// Two character tokens
	TokenEQ  TokenType = "EQ"  // ==
	TokenNE  TokenType = "NE"  // !=
	TokenLE  TokenType = "LE"  // <=
	TokenGE  TokenType = "GE"  // >=
	TokenAnd TokenType = "AND" // &&
	TokenOr  TokenType = "OR"  // ||
	TokenInc TokenType = "INC" // ++
	TokenDec TokenType = "DEC" // --

	// Keywords
	TokenIf    TokenType = "IF"
	TokenElse  TokenType = "ELSE"
	TokenWhile TokenType = "WHILE"
	TokenDo    TokenType = "DO"
	TokenFor   TokenType = "FOR"
	TokenBreak TokenType = "BREAK"
	TokenTrue  TokenType = "TRUE"
	TokenFalse TokenType = "FALSE"

	// Literals & Identifiers
	TokenInt   TokenType = "NUM"   // 43
	TokenReal  TokenType = "REAL"  // 4.5
	TokenChar  TokenType = "CHAR"  // 'a'
	TokenIdent TokenType = "IDENT" // Identifier (e.g. variable name)

	// Types: int, float, char, bool are all lexed as TokenBasic
	TokenBasic TokenType = "BASIC"

	// Special
	TokenEOF     TokenType = "EOF"
	TokenIllegal TokenType = "ILLEGAL"
)

type Token struct {
	Type    TokenType
	Literal string
	Line    int
	Column  int
}

// Pos renders the token position the way diagnostics print it.
func (t Token) Pos() string {
	return fmt.Sprintf("%d:%d", t.Line, t.Column)
}

func (t Token) IsRelational() bool {
	switch t.Type {
	case TokenLT, TokenLE, TokenGT, TokenGE, TokenEQ, TokenNE:
		return true
	}
	return false
}
