package vm

import (
	"errors"
	"fmt"
	"io"
	"math"

	"gocalc/pkg/calcerr"
)

// Opcode identifies a stack machine instruction.
type Opcode byte

const (
	OpPUSH Opcode = 0x01
	OpNEG  Opcode = 0x02
	OpADD  Opcode = 0x03
	OpSUB  Opcode = 0x04
	OpMULT Opcode = 0x05
	OpDIV  Opcode = 0x06
	OpMOD  Opcode = 0x07
	OpPOW  Opcode = 0x08
)

var opcodeNames = map[Opcode]string{
	OpPUSH: "PUSH",
	OpNEG:  "NEG",
	OpADD:  "ADD",
	OpSUB:  "SUB",
	OpMULT: "MULT",
	OpDIV:  "DIV",
	OpMOD:  "MOD",
	OpPOW:  "POW",
}

func (op Opcode) String() string {
	if name, ok := opcodeNames[op]; ok {
		return name
	}
	return fmt.Sprintf("Opcode(0x%02X)", byte(op))
}

// Valid reports whether op is a known opcode.
func (op Opcode) Valid() bool {
	_, ok := opcodeNames[op]
	return ok
}

// Instruction is one bytecode operation. Value is only meaningful for PUSH.
type Instruction struct {
	Op    Opcode
	Value float64
}

// Push returns a PUSH instruction for v.
func Push(v float64) Instruction { return Instruction{Op: OpPUSH, Value: v} }

func (i Instruction) String() string {
	if i.Op == OpPUSH {
		return fmt.Sprintf("PUSH %s", formatFloat(i.Value))
	}
	return i.Op.String()
}

// ErrInvariant is wrapped by errors returned from SafeExecute when the
// program violated stack discipline.
var ErrInvariant = errors.New("stack machine invariant violated")

// InvariantError is the panic value raised when a program breaks stack
// discipline (pop on empty stack, wrong final depth). It indicates a
// defect in whatever produced the program, never bad user input.
type InvariantError struct {
	Msg string
	PC  int
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("internal fault at instruction %d: %s", e.PC, e.Msg)
}

func (e *InvariantError) Unwrap() error { return ErrInvariant }

// TraceStep records the stack after one executed instruction.
type TraceStep struct {
	Instruction Instruction
	Stack       []float64
}

// Machine executes bytecode on an operand stack. A Machine is not safe
// for concurrent use; build one per evaluation.
type Machine struct {
	stack []float64
	pc    int

	// Trace, if non-nil, receives the instruction and resulting stack
	// after every step.
	Trace io.Writer

	// Steps collects TraceStep values when Record is set.
	Record bool
	Steps  []TraceStep
}

func NewMachine() *Machine {
	return &Machine{}
}

// Stack returns a copy of the operand stack, bottom first.
func (m *Machine) Stack() []float64 {
	out := make([]float64, len(m.stack))
	copy(out, m.stack)
	return out
}

func (m *Machine) push(v float64) {
	m.stack = append(m.stack, v)
}

// pop panics on an empty stack: that can only happen when codegen or a
// hand-written program is broken.
func (m *Machine) pop() float64 {
	n := len(m.stack)
	if n == 0 {
		panic(&InvariantError{Msg: "pop called on an empty runtime stack", PC: m.pc})
	}
	v := m.stack[n-1]
	m.stack = m.stack[:n-1]
	return v
}

// Step executes a single instruction.
func (m *Machine) Step(ins Instruction) error {
	switch ins.Op {
	case OpPUSH:
		m.push(ins.Value)

	case OpNEG:
		m.push(-m.pop())

	case OpADD:
		right, left := m.pop(), m.pop()
		m.push(left + right)

	case OpSUB:
		right, left := m.pop(), m.pop()
		m.push(left - right)

	case OpMULT:
		right, left := m.pop(), m.pop()
		m.push(left * right)

	case OpDIV:
		right, left := m.pop(), m.pop()
		if right == 0.0 {
			return calcerr.Newf(calcerr.Runtime, "division by zero")
		}
		m.push(left / right)

	case OpMOD:
		right, left := m.pop(), m.pop()
		m.push(euclidMod(left, right))

	case OpPOW:
		exp, base := m.pop(), m.pop()
		m.push(math.Pow(base, exp))

	default:
		panic(&InvariantError{Msg: fmt.Sprintf("unknown opcode %s", ins.Op), PC: m.pc})
	}

	if m.Trace != nil {
		fmt.Fprintf(m.Trace, "%s\n%s\n", ins, formatStack(m.stack))
	}
	if m.Record {
		m.Steps = append(m.Steps, TraceStep{Instruction: ins, Stack: m.Stack()})
	}
	return nil
}

// Run executes program from an empty stack and returns the single value
// left on it. The first runtime error aborts execution.
func (m *Machine) Run(program []Instruction) (float64, error) {
	m.stack = m.stack[:0]
	m.Steps = nil
	for i, ins := range program {
		m.pc = i
		if err := m.Step(ins); err != nil {
			return 0, err
		}
	}
	m.pc = len(program)
	if len(m.stack) != 1 {
		panic(&InvariantError{
			Msg: fmt.Sprintf("program finished with %d values on the stack, want 1", len(m.stack)),
			PC:  m.pc,
		})
	}
	return m.pop(), nil
}

// Execute runs program on a fresh Machine.
func Execute(program []Instruction) (float64, error) {
	return NewMachine().Run(program)
}

// SafeExecute is Execute for programs from untrusted sources (listings,
// binary files). A stack discipline violation is returned as an error
// wrapping ErrInvariant instead of crashing the process.
func SafeExecute(program []Instruction, trace io.Writer) (result float64, err error) {
	defer func() {
		if r := recover(); r != nil {
			ie, ok := r.(*InvariantError)
			if !ok {
				panic(r)
			}
			err = ie
		}
	}()
	m := NewMachine()
	m.Trace = trace
	return m.Run(program)
}

// euclidMod returns the Euclidean remainder of a by b; the result is in
// [0, |b|). A zero divisor yields NaN.
func euclidMod(a, b float64) float64 {
	r := math.Mod(a, b)
	if r < 0 {
		r += math.Abs(b)
	}
	return r
}
