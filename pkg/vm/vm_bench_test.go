package vm

import (
	"io"
	"testing"
)

// chain builds PUSH 1 followed by n repetitions of PUSH 1, op.
func chain(op Opcode, n int) []Instruction {
	program := []Instruction{Push(1)}
	for j := 0; j < n; j++ {
		program = append(program, Push(1), Instruction{Op: op})
	}
	return program
}

// BenchmarkMachine_ADD measures the raw dispatch overhead of the Step loop.
func BenchmarkMachine_ADD(b *testing.B) {
	program := chain(OpADD, 1000)

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := Execute(program); err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkMachine_POW measures the cost of the math.Pow path.
func BenchmarkMachine_POW(b *testing.B) {
	program := chain(OpPOW, 1000)

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := Execute(program); err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkMachine_Trace includes formatting every step to a writer.
func BenchmarkMachine_Trace(b *testing.B) {
	program := chain(OpMULT, 200)

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		m := NewMachine()
		m.Trace = io.Discard
		if _, err := m.Run(program); err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkDecodeProgram measures binary decoding of a long program.
func BenchmarkDecodeProgram(b *testing.B) {
	data := EncodeProgram(chain(OpSUB, 1000))

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := DecodeProgram(data); err != nil {
			b.Fatal(err)
		}
	}
}
