package compiler

import "fmt"

// TokenType identifies the category of a lexed token.
type TokenType int

const (
	EOF TokenType = iota // sentinel: end of input

	NUMBER // numeral literal, e.g. 12, 3.5, .35

	LPAREN // (
	RPAREN // )

	PLUS    // +
	MINUS   // - (binary subtraction or unary negation)
	STAR    // *
	SLASH   // /
	CARET   // ^
	PERCENT // %
)

// tokenNames is indexed by TokenType.
var tokenNames = [...]string{
	EOF:     "EOF",
	NUMBER:  "NUMBER",
	LPAREN:  "LPAREN",
	RPAREN:  "RPAREN",
	PLUS:    "PLUS",
	MINUS:   "MINUS",
	STAR:    "STAR",
	SLASH:   "SLASH",
	CARET:   "CARET",
	PERCENT: "PERCENT",
}

func (tt TokenType) String() string {
	if int(tt) >= 0 && int(tt) < len(tokenNames) {
		return tokenNames[tt]
	}
	return fmt.Sprintf("TokenType(%d)", int(tt))
}

// singleCharTokens maps operator and parenthesis characters to their type.
var singleCharTokens = map[rune]TokenType{
	'(': LPAREN,
	')': RPAREN,
	'+': PLUS,
	'-': MINUS,
	'*': STAR,
	'/': SLASH,
	'^': CARET,
	'%': PERCENT,
}

// Token is a single lexical unit produced by the Lexer.
type Token struct {
	Type   TokenType
	Lexeme string  // the exact source text that was matched
	Value  float64 // numeric value, NUMBER only
	Pos    int     // 1-based column of the first character
}

func (t Token) String() string {
	if t.Type == NUMBER {
		return fmt.Sprintf("%-8s %-10q col %d  (%v)", t.Type, t.Lexeme, t.Pos, t.Value)
	}
	return fmt.Sprintf("%-8s %-10q col %d", t.Type, t.Lexeme, t.Pos)
}

// describe renders a token for error messages.
func (t Token) describe() string {
	if t.Type == EOF {
		return "end of input"
	}
	return fmt.Sprintf("%s (%q)", t.Type, t.Lexeme)
}
