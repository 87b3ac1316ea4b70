package compiler

import (
	"fmt"

	"gocalc/pkg/vm"
)

// binaryOpcodes maps each AST operator to the instruction that applies it.
var binaryOpcodes = [...]vm.Opcode{
	Add:  vm.OpADD,
	Sub:  vm.OpSUB,
	Mult: vm.OpMULT,
	Div:  vm.OpDIV,
	Mod:  vm.OpMOD,
	Pow:  vm.OpPOW,
}

// CodeGen walks an AST and emits stack machine instructions.
type CodeGen struct {
	out []vm.Instruction
}

func newCodeGen() *CodeGen {
	return &CodeGen{}
}

func (cg *CodeGen) emit(ins vm.Instruction) {
	cg.out = append(cg.out, ins)
}

// genExpr emits e in post-order: operands first, operator last. Left is
// emitted before Right so the right operand ends up on top of the stack.
func (cg *CodeGen) genExpr(e Expr) {
	switch n := e.(type) {
	case *Number:
		cg.emit(vm.Push(n.Value))

	case *Neg:
		cg.genExpr(n.Operand)
		cg.emit(vm.Instruction{Op: vm.OpNEG})

	case *Binary:
		cg.genExpr(n.Left)
		cg.genExpr(n.Right)
		cg.emit(vm.Instruction{Op: binaryOpcodes[n.Op]})

	default:
		panic(fmt.Sprintf("codegen: unexpected AST node %T", e))
	}
}

// Generate linearises an AST into a program for the stack machine.
func Generate(e Expr) []vm.Instruction {
	cg := newCodeGen()
	cg.genExpr(e)
	return cg.out
}
