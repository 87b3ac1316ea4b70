//go:build !js

package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"gocalc/pkg/asm"
	"gocalc/pkg/calc"
	"gocalc/pkg/compiler"
	"gocalc/pkg/utils"
	"gocalc/pkg/vm"
)

func newEvalCmd() *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:   "eval [EXPR...]",
		Short: "Evaluate an expression and print the result",
		Long: `Evaluate the arguments, joined by spaces, as one expression.

Without arguments every line of stdin is evaluated as its own expression.
With -v the tokens, AST, bytecode and execution trace are printed as well.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if len(args) > 0 {
				return evalOne(out, strings.Join(args, " "), verbose)
			}

			failed := 0
			sc := bufio.NewScanner(cmd.InOrStdin())
			for sc.Scan() {
				line := strings.TrimSpace(sc.Text())
				if line == "" {
					continue
				}
				if err := evalOne(out, line, verbose); err != nil {
					fmt.Fprintln(cmd.ErrOrStderr(), err)
					failed++
				}
			}
			if err := sc.Err(); err != nil {
				return fmt.Errorf("reading stdin: %w", err)
			}
			if failed > 0 {
				return fmt.Errorf("%d expression(s) failed", failed)
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "print every pipeline stage")
	return cmd
}

func evalOne(w io.Writer, src string, verbose bool) error {
	if verbose {
		r, err := calc.Inspect(src)
		if werr := calc.WriteReport(w, r, err); werr != nil {
			return werr
		}
		return err
	}

	v, err := calc.Evaluate(src)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, calc.FormatResult(v))
	return err
}

func newBuildCmd() *cobra.Command {
	var (
		inPath  string
		outPath string
		showAsm bool
	)

	cmd := &cobra.Command{
		Use:   "build [EXPR...]",
		Short: "Compile an expression to a bytecode binary",
		Long: `Compile an expression to a bytecode binary.

The expression comes from the arguments or, with -in, from a file. An input
file ending in .asm or .lst is read as a bytecode listing instead.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if inPath != "" && len(args) > 0 {
				return errors.New("use either --in or an expression argument, not both")
			}
			if inPath == "" && len(args) == 0 {
				return errors.New("nothing to do: provide an expression or --in <file>")
			}

			var program []vm.Instruction
			if inPath != "" {
				fullPath, _, err := utils.GetPathInfo(inPath)
				if err != nil {
					return fmt.Errorf("resolving %q: %w", inPath, err)
				}
				source, err := os.ReadFile(fullPath)
				if err != nil {
					return fmt.Errorf("failed to read input file %q: %w", fullPath, err)
				}
				if utils.IsListing(inPath) {
					program, _, err = asm.Assemble(string(source))
					if err != nil {
						return fmt.Errorf("assembly failed: %w", err)
					}
				} else {
					program, err = compiler.Compile(strings.TrimSpace(string(source)))
					if err != nil {
						return fmt.Errorf("compilation failed: %w", err)
					}
				}
			} else {
				var err error
				program, err = compiler.Compile(strings.Join(args, " "))
				if err != nil {
					return fmt.Errorf("compilation failed: %w", err)
				}
			}

			out := cmd.OutOrStdout()
			if showAsm {
				fmt.Fprintf(out, "Generated bytecode:\n%s\n", asm.Disassemble(program))
			}

			output := outPath
			if output == "" {
				output = "out.bin"
				if inPath != "" {
					output = utils.DefaultOutputPath(inPath)
				}
			}

			code := vm.EncodeProgram(program)
			if err := writeBinary(output, code); err != nil {
				return fmt.Errorf("failed to write binary file %q: %w", output, err)
			}
			fmt.Fprintf(out, "compiled %d instructions (%d bytes) -> %s\n", len(program), len(code), output)
			return nil
		},
	}

	cmd.Flags().StringVar(&inPath, "in", "", "input expression or listing file")
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "output binary file path (default: input with .bin extension, or out.bin)")
	cmd.Flags().BoolVar(&showAsm, "show-asm", false, "print the bytecode listing")
	return cmd
}

func newRunCmd() *cobra.Command {
	var trace bool

	cmd := &cobra.Command{
		Use:   "run FILE",
		Short: "Execute a bytecode binary or listing",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			program, err := loadProgram(args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			var traceOut io.Writer
			if trace {
				traceOut = out
			}
			result, err := vm.SafeExecute(program, traceOut)
			if err != nil {
				return fmt.Errorf("run failed for %q: %w", args[0], err)
			}
			_, err = fmt.Fprintln(out, calc.FormatResult(result))
			return err
		},
	}

	cmd.Flags().BoolVar(&trace, "trace", false, "print each instruction and the stack after it")
	return cmd
}

func newDisasmCmd() *cobra.Command {
	var annotated bool

	cmd := &cobra.Command{
		Use:   "disasm FILE",
		Short: "Print the listing of a bytecode binary",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readBinary(args[0])
			if err != nil {
				return err
			}
			program, err := vm.DecodeProgram(data)
			if err != nil {
				return fmt.Errorf("decoding %q: %w", args[0], err)
			}
			listing := asm.Disassemble(program)
			if annotated {
				listing = asm.DisassembleAnnotated(program)
			}
			_, err = io.WriteString(cmd.OutOrStdout(), listing)
			return err
		},
	}

	cmd.Flags().BoolVarP(&annotated, "annotated", "a", false, "prefix each instruction with its index")
	return cmd
}

// loadProgram reads a listing or an encoded binary depending on the file
// extension.
func loadProgram(path string) ([]vm.Instruction, error) {
	if utils.IsListing(path) {
		source, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		program, _, err := asm.Assemble(string(source))
		if err != nil {
			return nil, fmt.Errorf("assembly failed: %w", err)
		}
		return program, nil
	}

	data, err := readBinary(path)
	if err != nil {
		return nil, err
	}
	program, err := vm.DecodeProgram(data)
	if err != nil {
		return nil, fmt.Errorf("decoding %q: %w", path, err)
	}
	return program, nil
}

func writeBinary(path string, data []byte) error {
	return os.WriteFile(path, data, 0o644)
}

func readBinary(path string) ([]byte, error) {
	return os.ReadFile(path)
}
