package compiler

import "gocalc/pkg/vm"

// Compile runs the front half of the pipeline: lex, parse and generate.
func Compile(src string) ([]vm.Instruction, error) {
	tokens, err := Lex(src)
	if err != nil {
		return nil, err
	}

	ast, err := Parse(tokens)
	if err != nil {
		return nil, err
	}

	return Generate(ast), nil
}
