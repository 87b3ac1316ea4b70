package compiler

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"gocalc/pkg/calcerr"
)

// Lexer holds all mutable state for a single scanning pass over src.
//
// Scanning mirrors "find every non-overlapping match, left to right":
// characters that cannot start a token are not errors on the spot but are
// collected into leftover, which is checked once the input is exhausted.
type Lexer struct {
	src       []rune
	pos       int // index of the next rune to consume
	leftover  strings.Builder
	leftStart int // 1-based column of the first non-space leftover rune
}

func newLexer(src string) *Lexer {
	return &Lexer{src: []rune(src)}
}

// peek returns the rune at the current position without advancing.
func (l *Lexer) peek() rune {
	return l.peekAt(0)
}

// peekAt returns the rune offset positions ahead of the current position.
func (l *Lexer) peekAt(offset int) rune {
	if l.pos+offset >= len(l.src) {
		return 0
	}
	return l.src[l.pos+offset]
}

// advance consumes one rune and returns it.
func (l *Lexer) advance() rune {
	if l.pos >= len(l.src) {
		return 0
	}
	r := l.src[l.pos]
	l.pos++
	return r
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

// numberLength returns how many runes of a numeral start at the current
// position, or 0 if none does. The fractional form \d*\.\d+ is preferred
// over a bare digit run, so "1.5" is one numeral and "1." is "1" followed
// by an unmatched dot.
func (l *Lexer) numberLength() int {
	n := 0
	for isDigit(l.peekAt(n)) {
		n++
	}
	if l.peekAt(n) == '.' && isDigit(l.peekAt(n+1)) {
		n += 2
		for isDigit(l.peekAt(n)) {
			n++
		}
	}
	return n
}

// scanNumber collects a numeral of length n starting at the current
// position. A leading-dot numeral is normalised to "0.xx" before parsing.
func (l *Lexer) scanNumber(n int) Token {
	col := l.pos + 1
	start := l.pos
	l.pos += n
	lexeme := string(l.src[start:l.pos])

	normalized := lexeme
	if strings.HasPrefix(normalized, ".") {
		normalized = "0" + normalized
	}
	val, err := strconv.ParseFloat(normalized, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		// The scanner only admits digits and one interior dot.
		panic(fmt.Sprintf("lexer accepted malformed numeral %q: %v", lexeme, err))
	}
	return Token{Type: NUMBER, Lexeme: lexeme, Value: val, Pos: col}
}

// skip records the current rune as unmatched input.
func (l *Lexer) skip() {
	col := l.pos + 1
	r := l.advance()
	if l.leftStart == 0 && !isSpace(r) {
		l.leftStart = col
	}
	l.leftover.WriteRune(r)
}

func isSpace(r rune) bool {
	return strings.TrimSpace(string(r)) == ""
}

// nextToken returns the next Token, or ok=false once the input is
// exhausted.
func (l *Lexer) nextToken() (tok Token, ok bool) {
	for l.pos < len(l.src) {
		ch := l.peek()
		if tt, isOp := singleCharTokens[ch]; isOp {
			col := l.pos + 1
			l.advance()
			return Token{Type: tt, Lexeme: string(ch), Pos: col}, true
		}
		if n := l.numberLength(); n > 0 {
			return l.scanNumber(n), true
		}
		l.skip()
	}
	return Token{}, false
}

// Lex tokenises src and returns all tokens followed by a final EOF token.
// Any non-whitespace input that is not part of a token makes Lex fail with
// a Lexing error naming the leftover text.
func Lex(src string) ([]Token, error) {
	l := newLexer(src)
	var tokens []Token
	for {
		tok, ok := l.nextToken()
		if !ok {
			break
		}
		tokens = append(tokens, tok)
	}

	if rest := strings.TrimSpace(l.leftover.String()); rest != "" {
		return nil, calcerr.At(calcerr.Lexing, l.leftStart, "unexpected characters: '%s'", rest)
	}

	tokens = append(tokens, Token{Type: EOF, Pos: len(l.src) + 1})
	return tokens, nil
}
