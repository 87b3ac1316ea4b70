package main

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"gocalc/pkg/asm"
	"gocalc/pkg/compiler"
	"gocalc/pkg/vm"
)

func TestCompilerAndMachine(t *testing.T) {
	// 1. Define source
	source := `((15 / (7 - (1 + 1))) * 3) - (2 + (1 + 1)) ^ 2 % 5`

	// 2. Lex and Parse
	tokens, err := compiler.Lex(source)
	if err != nil {
		t.Fatalf("Lexing failed: %v", err)
	}

	ast, err := compiler.Parse(tokens)
	if err != nil {
		t.Fatalf("Parsing failed: %v", err)
	}
	t.Logf("AST: %s", ast)

	// 3. Generate bytecode
	program := compiler.Generate(ast)
	t.Logf("Generated bytecode:\n%s", asm.Disassemble(program))

	// 4. Encode and decode, as a build / run round trip would
	decoded, err := vm.DecodeProgram(vm.EncodeProgram(program))
	if err != nil {
		t.Fatalf("Decoding failed: %v", err)
	}
	if diff := cmp.Diff(program, decoded); diff != "" {
		t.Fatalf("binary round trip mismatch (-want +got):\n%s", diff)
	}

	// 5. Listing round trip
	reassembled, _, err := asm.Assemble(asm.Disassemble(decoded))
	if err != nil {
		t.Fatalf("Assembly failed: %v", err)
	}
	if diff := cmp.Diff(program, reassembled); diff != "" {
		t.Fatalf("listing round trip mismatch (-want +got):\n%s", diff)
	}

	// 6. Run, recording every step
	m := vm.NewMachine()
	m.Record = true
	result, err := m.Run(reassembled)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	// 7. Assertions

	// (15/5)*3 - 16 % 5 = 9 - 1 = 8
	if result != 8 {
		t.Errorf("Expected result 8, got %v", result)
	}

	// One trace step per instruction
	if len(m.Steps) != len(program) {
		t.Errorf("Expected %d trace steps, got %d", len(program), len(m.Steps))
	}

	// The stack is empty again after the result has been popped
	if depth := len(m.Stack()); depth != 0 {
		t.Errorf("Expected empty stack after run, got depth %d", depth)
	}

	// The last step leaves exactly the result on the stack
	last := m.Steps[len(m.Steps)-1]
	if diff := cmp.Diff([]float64{8}, last.Stack); diff != "" {
		t.Errorf("final stack mismatch (-want +got):\n%s", diff)
	}
}

func TestHandWrittenListing(t *testing.T) {
	// The same program the compiler emits for "-(2 ^ 3) + 10 % 4"
	listing := `
PUSH 2
PUSH 3
POW
NEG
PUSH 10
PUSH 4
MOD
ADD
`
	program, _, err := asm.Assemble(listing)
	if err != nil {
		t.Fatalf("Assembly failed: %v", err)
	}

	compiled, err := compiler.Compile("-(2 ^ 3) + 10 % 4")
	if err != nil {
		t.Fatalf("Compile failed: %v", err)
	}
	if diff := cmp.Diff(compiled, program); diff != "" {
		t.Errorf("compiled program differs from listing (-want +got):\n%s", diff)
	}

	result, err := vm.SafeExecute(program, nil)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if result != -6 {
		t.Errorf("Expected -6, got %v", result)
	}
}
