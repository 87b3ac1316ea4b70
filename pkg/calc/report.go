package calc

import (
	"fmt"
	"io"
	"strings"

	"gocalc/pkg/asm"
)

// WriteReport prints the stages of r in pipeline order, followed by the
// result or err. Sections for stages that never ran are omitted.
func WriteReport(w io.Writer, r *Report, err error) error {
	var b strings.Builder

	if r != nil && r.Tokens != nil {
		b.WriteString("=== TOKENS ===\n")
		for _, tok := range r.Tokens {
			fmt.Fprintf(&b, "  %s\n", tok)
		}
		b.WriteString("\n")
	}

	if r != nil && r.AST != nil {
		fmt.Fprintf(&b, "=== AST ===\n  %s\n\n", r.AST)
	}

	if r != nil && r.Program != nil {
		b.WriteString("=== BYTECODE ===\n")
		for _, line := range strings.SplitAfter(asm.DisassembleAnnotated(r.Program), "\n") {
			if line != "" {
				b.WriteString("  " + line)
			}
		}
		b.WriteString("\n=== EXECUTION ===\n")
		for _, step := range r.Trace {
			fmt.Fprintf(&b, "  %-16s %s\n", step.Instruction, formatStack(step.Stack))
		}
		b.WriteString("\n")
	}

	switch {
	case err != nil:
		fmt.Fprintf(&b, "=== ERROR ===\n  %v\n", err)
	case r != nil && r.Done:
		fmt.Fprintf(&b, "=== RESULT ===\n  %s\n", FormatResult(r.Result))
	}

	_, werr := io.WriteString(w, b.String())
	return werr
}

func formatStack(stack []float64) string {
	parts := make([]string, len(stack))
	for i, v := range stack {
		parts[i] = FormatResult(v)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
