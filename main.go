//go:build !js

package main

import (
	"log"

	"github.com/spf13/cobra"
)

// newRootCmd builds the gocalc command tree. Each call returns fresh flag
// state.
func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "gocalc",
		Short: "Arithmetic expression compiler and stack machine",
		Long: `gocalc compiles arithmetic expressions to stack machine bytecode and runs them.

Expressions use + - * / % ^, unary minus and parentheses, e.g.

  gocalc eval "2 + 3 * (4 - 1) ^ 2"

Bytecode can be written to a binary file, listed, and run later:

  gocalc build -o area.bin "3.14159 * 2 ^ 2"
  gocalc disasm area.bin
  gocalc run area.bin`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(newEvalCmd(), newBuildCmd(), newRunCmd(), newDisasmCmd())
	return rootCmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		log.Fatalf("Error: %v", err)
	}
}
