package compiler

import (
	"fmt"
	"strconv"
)

// Expr is implemented by every AST node. The set of implementations is
// closed: *Number, *Neg and *Binary.
type Expr interface {
	exprNode()
	String() string
}

// Number is a numeric literal.
//
//	2 + 3
//	^      Number{Value: 2}
type Number struct {
	Value float64
}

func (*Number) exprNode()        {}
func (n *Number) String() string { return strconv.FormatFloat(n.Value, 'g', -1, 64) }

// Neg is unary negation of its operand.
//
//	--5  =>  Neg{Neg{Number{5}}}
type Neg struct {
	Operand Expr
}

func (*Neg) exprNode()        {}
func (n *Neg) String() string { return fmt.Sprintf("(neg %s)", n.Operand) }

// BinaryOp selects the arithmetic operation of a Binary node.
type BinaryOp int

const (
	Add BinaryOp = iota
	Sub
	Mult
	Div
	Mod
	Pow
)

var binaryOpSymbols = [...]string{
	Add:  "+",
	Sub:  "-",
	Mult: "*",
	Div:  "/",
	Mod:  "%",
	Pow:  "^",
}

func (op BinaryOp) String() string {
	if int(op) >= 0 && int(op) < len(binaryOpSymbols) {
		return binaryOpSymbols[op]
	}
	return fmt.Sprintf("BinaryOp(%d)", int(op))
}

// Binary represents Left Op Right.
//
//	x - 1
//	^ ^ ^
//	| | |
//	| | Right
//	| Op
//	Left
type Binary struct {
	Op    BinaryOp
	Left  Expr
	Right Expr
}

func (*Binary) exprNode() {}
func (b *Binary) String() string {
	return fmt.Sprintf("(%s %s %s)", b.Op, b.Left, b.Right)
}
