package cpu

import (
	"fmt"
	"strconv"
	"strings"
)

// Op is an instruction opcode.
type Op int

//go:generate go tool stringer -linecomment -type=Op
const (
	OP_SET   = Op(0)  // SET
	OP_STORE = Op(1)  // STORE
	OP_LOAD  = Op(2)  // LOAD
	OP_CLEAR = Op(3)  // CLEAR
	OP_MOV   = Op(4)  // MOV
	OP_ADD   = Op(5)  // ADD
	OP_SUB   = Op(6)  // SUB
	OP_MUL   = Op(7)  // MUL
	OP_DIV   = Op(8)  // DIV
	OP_INC   = Op(9)  // INC
	OP_DEC   = Op(10) // DEC
	OP_AND   = Op(11) // AND
	OP_OR    = Op(12) // OR
	OP_XOR   = Op(13) // XOR
	OP_NOT   = Op(14) // NOT
	OP_JMP   = Op(15) // JMP
	OP_CALL  = Op(16) // CALL
	OP_RET   = Op(17) // RET
	OP_PUSH  = Op(18) // PUSH
	OP_POP   = Op(19) // POP
	OP_HALT  = Op(20) // HALT
)

var opMap = map[string]Op{
	"set":   OP_SET,
	"store": OP_STORE,
	"load":  OP_LOAD,
	"clear": OP_CLEAR,
	"mov":   OP_MOV,
	"add":   OP_ADD,
	"sub":   OP_SUB,
	"mul":   OP_MUL,
	"div":   OP_DIV,
	"inc":   OP_INC,
	"dec":   OP_DEC,
	"and":   OP_AND,
	"or":    OP_OR,
	"xor":   OP_XOR,
	"not":   OP_NOT,
	"jmp":   OP_JMP,
	"call":  OP_CALL,
	"ret":   OP_RET,
	"push":  OP_PUSH,
	"pop":   OP_POP,
	"halt":  OP_HALT,
}

// Register names a machine register.
type Register int

//go:generate go tool stringer -linecomment -type=Register
const (
	REG_R0 = Register(0)  // r0
	REG_R1 = Register(1)  // r1
	REG_R2 = Register(2)  // r2
	REG_R3 = Register(3)  // r3
	REG_R4 = Register(4)  // r4
	REG_R5 = Register(5)  // r5
	REG_R6 = Register(6)  // r6
	REG_R7 = Register(7)  // r7
	REG_R8 = Register(8)  // r8
	REG_A  = Register(9)  // a
	REG_F  = Register(10) // f
)

const REGISTER_COUNT = 11

var registerMap = map[string]Register{
	"r0": REG_R0,
	"r1": REG_R1,
	"r2": REG_R2,
	"r3": REG_R3,
	"r4": REG_R4,
	"r5": REG_R5,
	"r6": REG_R6,
	"r7": REG_R7,
	"r8": REG_R8,
	"a":  REG_A,
	"f":  REG_F,
}

// Mode is an operand addressing mode.
type Mode int

//go:generate go tool stringer -linecomment -type=Mode
const (
	MODE_REGISTER = Mode(0) // register
	MODE_DIRECT   = Mode(1) // direct
	MODE_INDIRECT = Mode(2) // indirect
	MODE_LITERAL  = Mode(3) // literal
	MODE_CONSTANT = Mode(4) // constant
	MODE_LABEL    = Mode(5) // label
)

// CompareOp is a jump guard comparison operator.
type CompareOp int

//go:generate go tool stringer -linecomment -type=CompareOp
const (
	CMP_EQ = CompareOp(0) // =
	CMP_NE = CompareOp(1) // !=
	CMP_LT = CompareOp(2) // <
	CMP_LE = CompareOp(3) // <=
	CMP_GT = CompareOp(4) // >
	CMP_GE = CompareOp(5) // >=
)

// Two-character operators come first so a scan never stops short at
// their one-character prefix.
var compareOps = []struct {
	text string
	op   CompareOp
}{
	{"<=", CMP_LE},
	{">=", CMP_GE},
	{"!=", CMP_NE},
	{"=", CMP_EQ},
	{"<", CMP_LT},
	{">", CMP_GT},
}

// Operand is a decoded instruction argument. Mode selects which of the
// remaining fields are meaningful.
type Operand struct {
	Mode  Mode
	Reg   Register // register and indirect modes
	Addr  int64    // direct mode
	Value Value    // literal and constant modes
	Name  string   // constant and label modes
}

func RegisterOperand(reg Register) Operand {
	return Operand{Mode: MODE_REGISTER, Reg: reg}
}

func DirectOperand(addr int64) Operand {
	return Operand{Mode: MODE_DIRECT, Addr: addr}
}

func IndirectOperand(reg Register) Operand {
	return Operand{Mode: MODE_INDIRECT, Reg: reg}
}

func LiteralOperand(value Value) Operand {
	return Operand{Mode: MODE_LITERAL, Value: value}
}

func ConstantOperand(name string, value Value) Operand {
	return Operand{Mode: MODE_CONSTANT, Name: name, Value: value}
}

func LabelOperand(name string) Operand {
	return Operand{Mode: MODE_LABEL, Name: name}
}

// Writable reports whether the operand names a storable location.
func (op Operand) Writable() bool {
	switch op.Mode {
	case MODE_REGISTER, MODE_DIRECT, MODE_INDIRECT:
		return true
	}

	return false
}

// Readable reports whether the operand yields a value.
func (op Operand) Readable() bool {
	return op.Mode != MODE_LABEL
}

// Memory reports whether the operand addresses the memory bank.
func (op Operand) Memory() bool {
	return op.Mode == MODE_DIRECT || op.Mode == MODE_INDIRECT
}

// String renders the operand in source form.
func (op Operand) String() string {
	switch op.Mode {
	case MODE_REGISTER:
		return op.Reg.String()
	case MODE_DIRECT:
		return "%" + strconv.FormatInt(op.Addr, 10)
	case MODE_INDIRECT:
		return "%" + op.Reg.String()
	case MODE_LITERAL:
		return op.Value.String()
	case MODE_CONSTANT:
		return "." + op.Name
	}

	return op.Name
}

// Comparison is an optional jump guard.
type Comparison struct {
	Left  Operand
	Op    CompareOp
	Right Operand
}

func (c Comparison) String() string {
	return fmt.Sprintf("%v %v %v", c.Left, c.Op, c.Right)
}

// Instruction is one decoded statement. Target holds the resolved
// instruction index for JMP and CALL, and -1 otherwise.
type Instruction struct {
	Op       Op
	Operands []Operand
	Compare  *Comparison
	Target   int
	LineNo   int
}

// String renders the instruction in source form.
func (inst Instruction) String() string {
	text := []string{}
	for _, op := range inst.Operands {
		text = append(text, op.String())
	}

	out := inst.Op.String()
	if len(text) > 0 {
		out += " " + strings.Join(text, ", ")
	}
	if inst.Compare != nil {
		out += " " + inst.Compare.String()
	}

	return out
}
