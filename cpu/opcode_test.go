package cpu

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOpNames(t *testing.T) {
	assert := assert.New(t)

	for name, op := range opMap {
		assert.Equal(strings.ToUpper(name), op.String())
	}
	assert.Equal(int(OP_HALT)+1, len(opMap))
}

func TestRegisterNames(t *testing.T) {
	assert := assert.New(t)

	for name, reg := range registerMap {
		assert.Equal(name, reg.String())
	}
	assert.Equal(REGISTER_COUNT, len(registerMap))
}

func TestCompareOpNames(t *testing.T) {
	assert := assert.New(t)

	for _, entry := range compareOps {
		assert.Equal(entry.text, entry.op.String())
	}
}

func TestModeNames(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		mode Mode
		name string
	}){
		{MODE_REGISTER, "register"},
		{MODE_DIRECT, "direct"},
		{MODE_INDIRECT, "indirect"},
		{MODE_LITERAL, "literal"},
		{MODE_CONSTANT, "constant"},
		{MODE_LABEL, "label"},
	}

	for _, entry := range table {
		assert.Equal(entry.name, entry.mode.String())
	}
}

func TestOperandString(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		op   Operand
		text string
	}){
		{RegisterOperand(REG_R3), "r3"},
		{RegisterOperand(REG_A), "a"},
		{RegisterOperand(REG_F), "f"},
		{DirectOperand(16), "%16"},
		{IndirectOperand(REG_R1), "%r1"},
		{LiteralOperand(Integer(-5)), "-5"},
		{LiteralOperand(Text("hi")), `"hi"`},
		{ConstantOperand("LIMIT", Integer(9)), ".LIMIT"},
		{LabelOperand("loop"), "loop"},
	}

	for _, entry := range table {
		assert.Equal(entry.text, entry.op.String())
	}
}

func TestOperandClasses(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		op       Operand
		writable bool
		memory   bool
	}){
		{RegisterOperand(REG_R0), true, false},
		{DirectOperand(4), true, true},
		{IndirectOperand(REG_R1), true, true},
		{LiteralOperand(Integer(1)), false, false},
		{ConstantOperand("C", Integer(1)), false, false},
		{LabelOperand("x"), false, false},
	}

	for _, entry := range table {
		assert.Equal(entry.writable, entry.op.Writable(), entry.op.String())
		assert.Equal(entry.memory, entry.op.Memory(), entry.op.String())
		assert.Equal(entry.op.Mode != MODE_LABEL, entry.op.Readable(), entry.op.String())
	}
}

func TestInstructionString(t *testing.T) {
	assert := assert.New(t)

	inst := Instruction{
		Op:       OP_SET,
		Operands: []Operand{RegisterOperand(REG_R0), LiteralOperand(Integer(5))},
		Target:   -1,
	}
	assert.Equal("SET r0, 5", inst.String())

	jump := Instruction{
		Op:       OP_JMP,
		Operands: []Operand{LabelOperand("loop")},
		Compare: &Comparison{
			Left:  RegisterOperand(REG_R0),
			Op:    CMP_LT,
			Right: LiteralOperand(Integer(10)),
		},
	}
	assert.Equal("JMP loop r0 < 10", jump.String())

	assert.Equal("HALT", Instruction{Op: OP_HALT, Target: -1}.String())
}
