package compiler

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"gocalc/pkg/calcerr"
)

func num(v float64) *Number          { return &Number{Value: v} }
func neg(e Expr) *Neg                { return &Neg{Operand: e} }
func bin(op BinaryOp, l, r Expr) Expr { return &Binary{Op: op, Left: l, Right: r} }

func mustParse(t *testing.T, input string) Expr {
	t.Helper()
	tokens, err := Lex(input)
	if err != nil {
		t.Fatalf("Lex(%q) failed: %v", input, err)
	}
	ast, err := Parse(tokens)
	if err != nil {
		t.Fatalf("Parse(%q) failed: %v", input, err)
	}
	return ast
}

// TestParse verifies that Parse produces the correct AST for valid inputs.
func TestParse(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected Expr
	}{
		{
			name:     "Literal",
			input:    "42",
			expected: num(42),
		},
		{
			name:     "Addition",
			input:    "1 + 2",
			expected: bin(Add, num(1), num(2)),
		},
		{
			name:     "Precedence Mult Over Add",
			input:    "2 + 3 * 4",
			expected: bin(Add, num(2), bin(Mult, num(3), num(4))),
		},
		{
			name:     "Parentheses Override Precedence",
			input:    "(2 + 3) * 4",
			expected: bin(Mult, bin(Add, num(2), num(3)), num(4)),
		},
		{
			name:     "Left Associative Subtraction",
			input:    "8 - 3 - 2",
			expected: bin(Sub, bin(Sub, num(8), num(3)), num(2)),
		},
		{
			name:     "Left Associative Division",
			input:    "8 / 4 / 2",
			expected: bin(Div, bin(Div, num(8), num(4)), num(2)),
		},
		{
			name:     "Mod Shares Level With Mult",
			input:    "7 % 4 * 2",
			expected: bin(Mult, bin(Mod, num(7), num(4)), num(2)),
		},
		{
			name:     "Right Associative Power",
			input:    "2 ^ 2 ^ 3",
			expected: bin(Pow, num(2), bin(Pow, num(2), num(3))),
		},
		{
			name:     "Power Binds Tighter Than Mult",
			input:    "2 * 3 ^ 2",
			expected: bin(Mult, num(2), bin(Pow, num(3), num(2))),
		},
		{
			name:     "Double Negation",
			input:    "--5",
			expected: neg(neg(num(5))),
		},
		{
			name:     "Negation Binds Tighter Than Power",
			input:    "-2 ^ 2",
			expected: bin(Pow, neg(num(2)), num(2)),
		},
		{
			name:     "Negated Exponent",
			input:    "2 ^ -1",
			expected: bin(Pow, num(2), neg(num(1))),
		},
		{
			name:     "Binary Then Unary Minus",
			input:    "3 - -2",
			expected: bin(Sub, num(3), neg(num(2))),
		},
		{
			name:     "Negated Group",
			input:    "-(1 + 2)",
			expected: neg(bin(Add, num(1), num(2))),
		},
		{
			name:     "Nested Groups",
			input:    "((.5))",
			expected: num(0.5),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := mustParse(t, tt.input)
			if diff := cmp.Diff(tt.expected, got); diff != "" {
				t.Errorf("Parse(%q) mismatch (-want +got):\n%s", tt.input, diff)
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantMsg string
	}{
		{"Unclosed Paren", "(1 + 2", "expected ')' to close '(' at column 1, got end of input"},
		{"Empty Input", "", "expected a number or '(', got end of input"},
		{"Dangling Operator", "1 +", "expected a number or '(', got end of input"},
		{"Stray Operator", "* 2", "expected a number or '(', got STAR (\"*\")"},
		{"Empty Group", "()", "expected a number or '(', got RPAREN (\")\")"},
		{"Unary Plus", "+3", "expected a number or '(', got PLUS (\"+\")"},
		{"Trailing Number", "1 2", "unexpected NUMBER (\"2\") after expression"},
		{"Extra Close Paren", "(1))", "unexpected RPAREN (\")\") after expression"},
		{"Double Caret", "2 ^ ^ 3", "expected a number or '(', got CARET (\"^\")"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens, err := Lex(tt.input)
			if err != nil {
				t.Fatalf("Lex(%q) failed: %v", tt.input, err)
			}
			_, err = Parse(tokens)
			if err == nil {
				t.Fatalf("Parse(%q): expected error", tt.input)
			}
			if !errors.Is(err, calcerr.ErrParse) {
				t.Errorf("expected ParsingError, got %v", err)
			}
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("error %q does not contain %q", err.Error(), tt.wantMsg)
			}
		})
	}
}

func TestParseErrorPosition(t *testing.T) {
	tokens, err := Lex("1 + (2 * 3")
	if err != nil {
		t.Fatal(err)
	}
	_, err = Parse(tokens)
	var perr *calcerr.Error
	if !errors.As(err, &perr) {
		t.Fatalf("expected *calcerr.Error, got %T", err)
	}
	if perr.Pos != 11 {
		t.Errorf("expected error at column 11 (end of input), got %d", perr.Pos)
	}
}

func TestParseSuppliesMissingEOF(t *testing.T) {
	tokens := []Token{
		{Type: NUMBER, Lexeme: "4", Value: 4, Pos: 1},
		{Type: STAR, Lexeme: "*", Pos: 2},
		{Type: NUMBER, Lexeme: "5", Value: 5, Pos: 3},
	}
	got, err := Parse(tokens)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if diff := cmp.Diff(bin(Mult, num(4), num(5)), got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
	if len(tokens) != 3 {
		t.Errorf("Parse must not modify the caller's slice length")
	}

	_, err = Parse(nil)
	if !errors.Is(err, calcerr.ErrParse) {
		t.Errorf("Parse(nil) should be a ParsingError, got %v", err)
	}
}

func TestASTString(t *testing.T) {
	got := mustParse(t, "-(1 + 2.5) * 3 ^ 2 % 4").String()
	want := "(% (* (neg (+ 1 2.5)) (^ 3 2)) 4)"
	if got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}
