package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"gocalc/pkg/asm"
	"gocalc/pkg/calc"
	"gocalc/pkg/compiler"
	"gocalc/pkg/vm"
)

const testSource = `-(2 + 3) * 4 ^ 2 % 7 - .5`

func main() {
	src := testSource
	if len(os.Args) > 1 {
		src = strings.Join(os.Args[1:], " ")
		if src == "-" {
			data, err := io.ReadAll(os.Stdin)
			if err != nil {
				fmt.Fprintln(os.Stderr, "read error:", err)
				os.Exit(1)
			}
			src = strings.TrimSpace(string(data))
		}
	}

	fmt.Printf("Source:\n%s\n\n", src)

	// Lex
	tokens, err := compiler.Lex(src)
	if err != nil {
		fmt.Fprintln(os.Stderr, "lex error:", err)
		os.Exit(1)
	}

	fmt.Printf("Tokens (%d)\n", len(tokens))
	for _, tok := range tokens {
		fmt.Println(" ", tok)
	}
	fmt.Println()

	// Parse
	ast, err := compiler.Parse(tokens)
	if err != nil {
		fmt.Fprintln(os.Stderr, "parse error:", err)
		os.Exit(1)
	}

	fmt.Println("AST")
	fmt.Println(" ", ast)
	fmt.Println()

	// code Generation
	program := compiler.Generate(ast)

	fmt.Printf("Bytecode (%d instructions, %d bytes encoded)\n", len(program), len(vm.EncodeProgram(program)))
	fmt.Print(asm.DisassembleAnnotated(program))
	fmt.Println()

	// Execute, tracing each step
	fmt.Println("Execution")
	m := vm.NewMachine()
	m.Trace = os.Stdout
	result, err := m.Run(program)
	if err != nil {
		fmt.Fprintln(os.Stderr, "runtime error:", err)
		os.Exit(1)
	}
	fmt.Println()
	fmt.Println("Result:", calc.FormatResult(result))
}
