package compiler

import (
	"fmt"

	"gocalc/pkg/calcerr"
)

// Parser consumes the flat token slice produced by the Lexer and builds an AST.
//
// Grammar (loosest first):
//
//	expression     = factor (("+" | "-") factor)*
//	factor         = exponentiation (("*" | "/" | "%") exponentiation)*
//	exponentiation = negation ("^" exponentiation)?
//	negation       = "-" negation | primary
//	primary        = NUMBER | "(" expression ")"
//
// + - * / % are left-associative, ^ is right-associative, and unary minus
// binds tighter than every binary operator, so -2^2 is (-2)^2.
type Parser struct {
	tokens []Token
	pos    int
}

// NewParser returns a Parser over tokens. A missing trailing EOF token is
// supplied so lookahead never runs off the end.
func NewParser(tokens []Token) *Parser {
	if len(tokens) == 0 || tokens[len(tokens)-1].Type != EOF {
		pos := 1
		if n := len(tokens); n > 0 {
			last := tokens[n-1]
			pos = last.Pos + len([]rune(last.Lexeme))
		}
		tokens = append(tokens[:len(tokens):len(tokens)], Token{Type: EOF, Pos: pos})
	}
	return &Parser{tokens: tokens}
}

func (p *Parser) errorf(tok Token, format string, args ...any) error {
	return calcerr.At(calcerr.Parsing, tok.Pos, format, args...)
}

// peek returns the current token without consuming it.
func (p *Parser) peek() Token {
	return p.tokens[p.pos]
}

// advance consumes and returns the current token. Consuming past the
// trailing EOF means a grammar rule is broken.
func (p *Parser) advance() Token {
	if p.pos >= len(p.tokens)-1 {
		panic(fmt.Sprintf("parser advanced past EOF at token %d", p.pos))
	}
	tok := p.tokens[p.pos]
	p.pos++
	return tok
}

// expect consumes the current token if it matches tt, otherwise returns an error.
func (p *Parser) expect(tt TokenType, what string) (Token, error) {
	tok := p.peek()
	if tok.Type != tt {
		return tok, p.errorf(tok, "expected %s, got %s", what, tok.describe())
	}
	return p.advance(), nil
}

// parseExpression is the entry point for expression parsing and handles + and -.
func (p *Parser) parseExpression() (Expr, error) {
	expr, err := p.parseFactor()
	if err != nil {
		return nil, err
	}

	for {
		var op BinaryOp
		switch p.peek().Type {
		case PLUS:
			op = Add
		case MINUS:
			op = Sub
		default:
			return expr, nil
		}
		p.advance()
		right, err := p.parseFactor()
		if err != nil {
			return nil, err
		}
		expr = &Binary{Op: op, Left: expr, Right: right}
	}
}

// parseFactor handles *, / and %
func (p *Parser) parseFactor() (Expr, error) {
	expr, err := p.parseExponentiation()
	if err != nil {
		return nil, err
	}

	for {
		var op BinaryOp
		switch p.peek().Type {
		case STAR:
			op = Mult
		case SLASH:
			op = Div
		case PERCENT:
			op = Mod
		default:
			return expr, nil
		}
		p.advance()
		right, err := p.parseExponentiation()
		if err != nil {
			return nil, err
		}
		expr = &Binary{Op: op, Left: expr, Right: right}
	}
}

// parseExponentiation handles ^, recursing on the right for right associativity.
func (p *Parser) parseExponentiation() (Expr, error) {
	base, err := p.parseNegation()
	if err != nil {
		return nil, err
	}
	if p.peek().Type != CARET {
		return base, nil
	}
	p.advance()
	exp, err := p.parseExponentiation()
	if err != nil {
		return nil, err
	}
	return &Binary{Op: Pow, Left: base, Right: exp}, nil
}

// parseNegation handles any number of prefix minus signs.
func (p *Parser) parseNegation() (Expr, error) {
	if p.peek().Type != MINUS {
		return p.parsePrimary()
	}
	p.advance()
	operand, err := p.parseNegation()
	if err != nil {
		return nil, err
	}
	return &Neg{Operand: operand}, nil
}

// parsePrimary handles literals and parenthesised groups.
func (p *Parser) parsePrimary() (Expr, error) {
	tok := p.peek()
	switch tok.Type {
	case NUMBER:
		p.advance()
		return &Number{Value: tok.Value}, nil

	case LPAREN:
		return p.parseGroup()

	default:
		return nil, p.errorf(tok, "expected a number or '(', got %s", tok.describe())
	}
}

// parseGroup handles "(" expression ")".
func (p *Parser) parseGroup() (Expr, error) {
	open := p.advance()
	expr, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(RPAREN, fmt.Sprintf("')' to close '(' at column %d", open.Pos)); err != nil {
		return nil, err
	}
	return expr, nil
}

// Parse builds the AST for one complete expression. Tokens left over after
// the expression are a Parsing error.
func Parse(tokens []Token) (Expr, error) {
	p := NewParser(tokens)
	expr, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if tok := p.peek(); tok.Type != EOF {
		return nil, p.errorf(tok, "unexpected %s after expression", tok.describe())
	}
	return expr, nil
}
