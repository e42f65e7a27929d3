package cpu

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProgramLabels(t *testing.T) {
	assert := assert.New(t)

	program := []string{
		"start:",
		"; a comment line",
		"",
		"\tSET r0, 1",
		"again: INC r0",
		"DEFINE .max 3",
		"last:",
		"\tJMP again r0 < .max",
		"done:",
	}

	prog, err := Parse(strings.Join(program, "\n"))
	assert.NoError(err)
	if err != nil {
		t.Fatal(err)
	}

	assert.Equal(3, len(prog.Instructions))
	assert.Equal(0, prog.Labels["start"])
	assert.Equal(1, prog.Labels["again"])
	assert.Equal(2, prog.Labels["last"])
	assert.Equal(3, prog.Labels["done"])
	assert.Equal(1, prog.Instructions[2].Target)
}

func TestProgramAt(t *testing.T) {
	assert := assert.New(t)

	prog, err := Parse("SET r0, 1\n\nHALT\n")
	assert.NoError(err)
	if err != nil {
		t.Fatal(err)
	}

	assert.Nil(prog.At(-1))
	assert.Nil(prog.At(2))
	assert.Equal(OP_SET, prog.At(0).Op)
	assert.Equal(OP_HALT, prog.At(1).Op)

	assert.Equal(1, prog.LineNo(0))
	assert.Equal(3, prog.LineNo(1))
	assert.Equal(0, prog.LineNo(5))
}

func TestProgramDisassemble(t *testing.T) {
	assert := assert.New(t)

	program := []string{
		"DEFINE .greet \"hi\"",
		"DEFINE .max 3",
		"start:",
		"\tSET r0, .max",
		"loop: DEC r0",
		"\tJMP loop r0 > 0",
		"\tPUSH .greet",
		"end:",
	}

	prog, err := Parse(strings.Join(program, "\n"))
	assert.NoError(err)
	if err != nil {
		t.Fatal(err)
	}

	expected := strings.Join([]string{
		"DEFINE .greet \"hi\"",
		"DEFINE .max 3",
		"start:",
		"\tSET r0, .max",
		"loop:",
		"\tDEC r0",
		"\tJMP loop r0 > 0",
		"\tPUSH .greet",
		"end:",
	}, "\n") + "\n"

	text := prog.Disassemble()
	assert.Equal(expected, text)

	// Disassembly reassembles to the same program.
	again, err := Parse(text)
	assert.NoError(err)
	if err != nil {
		t.Fatal(err)
	}
	assert.Equal(text, again.Disassemble())
}
