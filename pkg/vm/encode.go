package vm

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Magic prefixes every encoded program.
var Magic = [4]byte{'G', 'C', 'B', '1'}

// EncodeInstruction appends the binary form of ins to dst: one opcode
// byte, followed for PUSH by the IEEE-754 bits in little-endian order.
func EncodeInstruction(dst []byte, ins Instruction) []byte {
	dst = append(dst, byte(ins.Op))
	if ins.Op == OpPUSH {
		dst = binary.LittleEndian.AppendUint64(dst, math.Float64bits(ins.Value))
	}
	return dst
}

// EncodeProgram serialises program with the Magic header.
func EncodeProgram(program []Instruction) []byte {
	out := make([]byte, 0, len(Magic)+len(program)*2)
	out = append(out, Magic[:]...)
	for _, ins := range program {
		out = EncodeInstruction(out, ins)
	}
	return out
}

// DecodeProgram parses data produced by EncodeProgram.
func DecodeProgram(data []byte) ([]Instruction, error) {
	if len(data) < len(Magic) || !bytes.Equal(data[:len(Magic)], Magic[:]) {
		return nil, fmt.Errorf("not a gocalc bytecode file (bad magic)")
	}

	var program []Instruction
	for off := len(Magic); off < len(data); {
		op := Opcode(data[off])
		if !op.Valid() {
			return nil, fmt.Errorf("unknown opcode 0x%02X at offset %d", byte(op), off)
		}
		off++

		ins := Instruction{Op: op}
		if op == OpPUSH {
			if off+8 > len(data) {
				return nil, fmt.Errorf("truncated PUSH operand at offset %d", off)
			}
			ins.Value = math.Float64frombits(binary.LittleEndian.Uint64(data[off : off+8]))
			off += 8
		}
		program = append(program, ins)
	}
	return program, nil
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}

func formatStack(stack []float64) string {
	parts := make([]string, len(stack))
	for i, v := range stack {
		parts[i] = formatFloat(v)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
