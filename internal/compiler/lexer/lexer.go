package lexer

import "github.com/arnavsurve/tacgen/internal/compiler/token"

type Lexer struct {
	input        string
	position     int  // current char index
	readPosition int  // next char index
	ch           byte // current char

	line   int // current line number (1-indexed)
	column int // current column number (1-indexed)
}

func NewLexer(input string) *Lexer {
	l := &Lexer{input: input, line: 1, column: 0}
	l.readChar()
	return l
}

// readChar advances the lexer's position and updates the current character
// It handles EOF and tracks line/column numbers
func (l *Lexer) readChar() {
	if l.readPosition >= len(l.input) {
		l.ch = 0 // ASCII NULL (EOF)
	} else {
		l.ch = l.input[l.readPosition]
	}

	l.position = l.readPosition
	l.readPosition++

	if l.ch == '\n' {
		l.line++
		l.column = 0
	} else if l.ch != 0 {
		l.column++
	}
}

// Returns the next character without consuming it
func (l *Lexer) peekChar() byte {
	if l.readPosition >= len(l.input) {
		return 0
	}
	return l.input[l.readPosition]
}

// twoChar tables map a leading byte and its follower to a combined token.
var twoChar = map[[2]byte]token.TokenType{
	{'=', '='}: token.TokenEQ,
	{'!', '='}: token.TokenNE,
	{'<', '='}: token.TokenLE,
	{'>', '='}: token.TokenGE,
	{'&', '&'}: token.TokenAnd,
	{'|', '|'}: token.TokenOr,
	{'+', '+'}: token.TokenInc,
	{'-', '-'}: token.TokenDec,
}

var oneChar = map[byte]token.TokenType{
	'(': token.TokenLParen,
	')': token.TokenRParen,
	'{': token.TokenLBrace,
	'}': token.TokenRBrace,
	'[': token.TokenLBracket,
	']': token.TokenRBracket,
	';': token.TokenSemicolon,
	'=': token.TokenAssign,
	'+': token.TokenPlus,
	'-': token.TokenMinus,
	'*': token.TokenAsterisk,
	'/': token.TokenSlash,
	'!': token.TokenBang,
	'<': token.TokenLT,
	'>': token.TokenGT,
}

func (l *Lexer) NextToken() token.Token {
	l.skipWhitespace()

	startLine := l.line
	startCol := l.column

	switch {
	case l.ch == '/' && l.peekChar() == '/':
		l.readChar()
		l.readComment()
		return l.NextToken()
	case l.ch == '/' && l.peekChar() == '*':
		l.readChar()
		if !l.readBlockComment() {
			return l.newToken(token.TokenIllegal, "/*", startLine, startCol)
		}
		return l.NextToken()
	case l.ch == 0:
		// Do NOT call l.readChar() here
		return l.newToken(token.TokenEOF, "", startLine, startCol)
	case l.ch == '\'':
		return l.readCharLiteral(startLine, startCol)
	case isLetter(l.ch):
		ident := l.readIdentifier()
		return l.newToken(lookupIdent(ident), ident, startLine, startCol)
	case isDigit(l.ch):
		return l.readNumber(startLine, startCol)
	}

	if tt, ok := twoChar[[2]byte{l.ch, l.peekChar()}]; ok {
		literal := l.input[l.position : l.position+2]
		l.readChar()
		l.readChar()
		return l.newToken(tt, literal, startLine, startCol)
	}
	if tt, ok := oneChar[l.ch]; ok {
		tok := l.newToken(tt, string(l.ch), startLine, startCol)
		l.readChar()
		return tok
	}

	tok := l.newToken(token.TokenIllegal, string(l.ch), startLine, startCol)
	l.readChar()
	return tok
}

// newToken is a helper to create a token.Token struct
func (l *Lexer) newToken(tokenType token.TokenType, literal string, line, col int) token.Token {
	return token.Token{Type: tokenType, Literal: literal, Line: line, Column: col}
}

func (l *Lexer) skipWhitespace() {
	for l.ch == ' ' || l.ch == '\n' || l.ch == '\t' || l.ch == '\r' {
		l.readChar()
	}
}

func (l *Lexer) readComment() {
	for l.ch != '\n' && l.ch != 0 {
		l.readChar()
	}
}

// readBlockComment reports false when EOF arrives before the closing */.
func (l *Lexer) readBlockComment() bool {
	l.readChar() // Consume the opening '*'

	for {
		if l.ch == 0 {
			return false
		}
		if l.ch == '*' && l.peekChar() == '/' {
			l.readChar() // Consume '*'
			l.readChar() // Consume '/'
			return true
		}
		l.readChar()
	}
}

func (l *Lexer) readIdentifier() string {
	start := l.position
	for isLetter(l.ch) || isDigit(l.ch) {
		l.readChar()
	}
	return l.input[start:l.position]
}

// readNumber scans an integer, or a real when a '.' followed by digits appears.
func (l *Lexer) readNumber(startLine, startCol int) token.Token {
	start := l.position
	for isDigit(l.ch) {
		l.readChar()
	}
	if l.ch != '.' || !isDigit(l.peekChar()) {
		return l.newToken(token.TokenInt, l.input[start:l.position], startLine, startCol)
	}
	l.readChar() // Consume '.'
	for isDigit(l.ch) {
		l.readChar()
	}
	return l.newToken(token.TokenReal, l.input[start:l.position], startLine, startCol)
}

// readCharLiteral scans 'c'. The token literal is the character itself.
func (l *Lexer) readCharLiteral(startLine, startCol int) token.Token {
	l.readChar() // Consume opening '
	if l.ch == 0 || l.ch == '\'' || l.peekChar() != '\'' {
		return l.newToken(token.TokenIllegal, "'", startLine, startCol)
	}
	ch := l.ch
	l.readChar()
	l.readChar() // Consume closing '
	return l.newToken(token.TokenChar, string(ch), startLine, startCol)
}

func isLetter(ch byte) bool {
	return ('a' <= ch && ch <= 'z') || ('A' <= ch && ch <= 'Z') || ch == '_'
}

func isDigit(ch byte) bool {
	return '0' <= ch && ch <= '9'
}

// keywords maps identifier strings to their corresponding token types.
var keywords = map[string]token.TokenType{
	"if":    token.TokenIf,
	"else":  token.TokenElse,
	"while": token.TokenWhile,
	"do":    token.TokenDo,
	"for":   token.TokenFor,
	"break": token.TokenBreak,
	"true":  token.TokenTrue,
	"false": token.TokenFalse,
	"int":   token.TokenBasic,
	"float": token.TokenBasic,
	"char":  token.TokenBasic,
	"bool":  token.TokenBasic,
}

// lookupIdent checks if an identifier is a keyword, returning the keyword's
// token type or token.TokenIdent if it's not a keyword.
func lookupIdent(ident string) token.TokenType {
	if tokType, ok := keywords[ident]; ok {
		return tokType
	}
	return token.TokenIdent
}
