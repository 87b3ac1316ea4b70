// Package asm reads and writes the textual listing form of stack machine
// programs:
//
//	; 2 + 3 * 4
//	PUSH 2
//	PUSH 3
//	PUSH 4
//	MULT
//	ADD
package asm

import (
	"fmt"
	"strconv"
	"strings"

	"gocalc/pkg/vm"
)

var zeroOperandOps = map[string]vm.Opcode{
	"NEG":  vm.OpNEG,
	"ADD":  vm.OpADD,
	"SUB":  vm.OpSUB,
	"MULT": vm.OpMULT,
	"DIV":  vm.OpDIV,
	"MOD":  vm.OpMOD,
	"POW":  vm.OpPOW,
}

var immediateOps = map[string]vm.Opcode{
	"PUSH": vm.OpPUSH,
}

type parsedLine struct {
	lineNo   int
	mnemonic string
	operands []string
}

// Assemble parses a listing. The returned source map gives the 1-based
// listing line of every instruction index.
func Assemble(code string) ([]vm.Instruction, map[int]int, error) {
	var program []vm.Instruction
	sourceMap := make(map[int]int)

	for i, raw := range strings.Split(code, "\n") {
		lineNo := i + 1
		p := parseLine(raw, lineNo)
		if p.mnemonic == "" {
			continue
		}

		ins, err := assembleLine(p)
		if err != nil {
			return nil, nil, err
		}
		sourceMap[len(program)] = lineNo
		program = append(program, ins)
	}

	return program, sourceMap, nil
}

func assembleLine(p parsedLine) (vm.Instruction, error) {
	if op, ok := zeroOperandOps[p.mnemonic]; ok {
		if len(p.operands) != 0 {
			return vm.Instruction{}, fmt.Errorf("%s takes no operands on line %d", p.mnemonic, p.lineNo)
		}
		return vm.Instruction{Op: op}, nil
	}

	if op, ok := immediateOps[p.mnemonic]; ok {
		if len(p.operands) != 1 {
			return vm.Instruction{}, fmt.Errorf("%s expects exactly one operand on line %d", p.mnemonic, p.lineNo)
		}
		val, err := parseImmediate(p.operands[0], p.lineNo)
		if err != nil {
			return vm.Instruction{}, err
		}
		return vm.Instruction{Op: op, Value: val}, nil
	}

	return vm.Instruction{}, fmt.Errorf("unknown instruction '%s' on line %d", p.mnemonic, p.lineNo)
}

func parseLine(raw string, lineNo int) parsedLine {
	p := parsedLine{lineNo: lineNo}

	line := strings.TrimSpace(stripComments(raw))
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return p
	}

	p.mnemonic = strings.ToUpper(fields[0])
	if len(fields) > 1 {
		p.operands = fields[1:]
	}
	return p
}

func stripComments(line string) string {
	semicolon := strings.Index(line, ";")
	doubleSlash := strings.Index(line, "//")

	cut := -1
	if semicolon >= 0 {
		cut = semicolon
	}
	if doubleSlash >= 0 && (cut == -1 || doubleSlash < cut) {
		cut = doubleSlash
	}
	if cut >= 0 {
		return line[:cut]
	}
	return line
}

// parseImmediate accepts any float syntax strconv understands, including
// NaN, Inf and exponents, so every program Disassemble writes reads back.
func parseImmediate(token string, lineNo int) (float64, error) {
	val, err := strconv.ParseFloat(token, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid immediate '%s' on line %d", token, lineNo)
	}
	return val, nil
}

// Disassemble renders program as a listing that Assemble reads back.
func Disassemble(program []vm.Instruction) string {
	var b strings.Builder
	for _, ins := range program {
		b.WriteString(ins.String())
		b.WriteByte('\n')
	}
	return b.String()
}

// DisassembleAnnotated is Disassemble with each line prefixed by its
// instruction index, as printed by the diagnostic commands.
func DisassembleAnnotated(program []vm.Instruction) string {
	var b strings.Builder
	width := len(strconv.Itoa(len(program) - 1))
	for i, ins := range program {
		fmt.Fprintf(&b, "%*d  %s\n", width, i, ins)
	}
	return b.String()
}
