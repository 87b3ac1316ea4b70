// Package calc strings the pipeline stages together: lex, parse, generate
// and execute. It owns no evaluation logic of its own.
package calc

import (
	"math"
	"strconv"

	"gocalc/pkg/compiler"
	"gocalc/pkg/vm"
)

// Evaluate computes the value of one arithmetic expression. Errors are
// *calcerr.Error values tagged with the failing stage.
func Evaluate(src string) (float64, error) {
	program, err := compiler.Compile(src)
	if err != nil {
		return 0, err
	}
	return vm.Execute(program)
}

// Report holds every intermediate product of one evaluation. Fields are
// filled up to the stage that failed.
type Report struct {
	Source  string
	Tokens  []compiler.Token
	AST     compiler.Expr
	Program []vm.Instruction
	Trace   []vm.TraceStep
	Result  float64
	Done    bool // Result is valid
}

// Inspect is the verbose variant of Evaluate: the same pipeline, but every
// stage's output is kept in the returned Report. The Report is non-nil
// even when err is set.
func Inspect(src string) (*Report, error) {
	r := &Report{Source: src}

	tokens, err := compiler.Lex(src)
	if err != nil {
		return r, err
	}
	r.Tokens = tokens

	ast, err := compiler.Parse(tokens)
	if err != nil {
		return r, err
	}
	r.AST = ast

	r.Program = compiler.Generate(ast)

	m := vm.NewMachine()
	m.Record = true
	result, err := m.Run(r.Program)
	r.Trace = m.Steps
	if err != nil {
		return r, err
	}
	r.Result = result
	r.Done = true
	return r, nil
}

// FormatResult renders a result the way the front ends print it: the
// shortest decimal that round-trips, or NaN / +Inf / -Inf.
func FormatResult(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "+Inf"
	case math.IsInf(f, -1):
		return "-Inf"
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}
