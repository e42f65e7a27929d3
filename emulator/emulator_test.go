package emulator

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cogwork/cogvm/cpu"
)

func TestEmulator(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator(Config{})

	assert.False(emu.Verbose)
	assert.NotNil(emu.Program)
	assert.Equal(0, len(emu.Program.Instructions))
}

func doCompile(emu *Emulator, program []string, t *testing.T) {
	assert := assert.New(t)

	err := emu.Compile(strings.NewReader(strings.Join(program, "\n")))
	assert.NoError(err)
	if err != nil {
		t.Fatal(err)
	}
}

func TestEmulatorRun(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator(Config{})
	doCompile(emu, []string{
		"SET r0, 5",
		"SET r1, 10",
		"ADD r0, r1",
		"SET r2, a",
		"HALT",
	}, t)

	err := emu.Run()
	assert.NoError(err)
	assert.Equal(cpu.Integer(15), emu.Machine.Registers[cpu.REG_R2])
	assert.True(emu.Machine.Halted)
}

func TestEmulatorConfigDefine(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator(Config{
		Define: map[string]string{
			"limit": "3",
			"name":  `"cog"`,
		},
	})
	doCompile(emu, []string{
		"SET r0, .limit",
		"SET r1, .name",
		"HALT",
	}, t)

	err := emu.Run()
	assert.NoError(err)
	assert.Equal(cpu.Integer(3), emu.Machine.Registers[cpu.REG_R0])
	assert.Equal(cpu.Text("cog"), emu.Machine.Registers[cpu.REG_R1])
}

func TestEmulatorBadDefine(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator(Config{
		Define: map[string]string{"bad": "zz"},
	})

	err := emu.Compile(strings.NewReader("HALT\n"))
	assert.Error(err)

	var ce *ErrConfig
	assert.True(errors.As(err, &ce))
	if ce != nil {
		assert.Equal("bad", ce.Name)
	}
}

func TestEmulatorDefines(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator(Config{
		Define: map[string]string{"answer": "42"},
	})

	defines := map[string]cpu.Value{}
	for name, value := range emu.Defines() {
		defines[name] = value
	}

	assert.Equal(cpu.Integer(cpu.MEM_SIZE), defines["MEM_SIZE"])
	assert.Equal(cpu.Integer(42), defines["answer"])
}

func TestEmulatorTick(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator(Config{})
	doCompile(emu, []string{
		"SET r0, 1",
		"",
		"SET r1, 2",
		"HALT",
	}, t)

	assert.Equal(1, emu.LineNo())

	done, err := emu.Tick()
	assert.NoError(err)
	assert.False(done)
	assert.Equal(3, emu.LineNo())

	done, err = emu.Tick()
	assert.NoError(err)
	assert.False(done)

	done, err = emu.Tick()
	assert.NoError(err)
	assert.True(done)
	assert.True(emu.Machine.Halted)
}

func TestEmulatorErrRuntime(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator(Config{})
	doCompile(emu, []string{
		"SET r0, 0",
		"DIV 1, r0",
		"HALT",
	}, t)

	err := emu.Run()
	assert.ErrorIs(err, cpu.ErrDivideByZero)

	var re *ErrRuntime
	assert.True(errors.As(err, &re))
	if re != nil {
		assert.Equal(2, re.LineNo)
		assert.Equal(1, re.Pc)
	}
}

func TestEmulatorBudget(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator(Config{MaxInstructions: 8})
	doCompile(emu, []string{
		"spin: JMP spin",
	}, t)

	err := emu.Run()
	assert.ErrorIs(err, cpu.ErrLimit)
	assert.Equal(8, emu.Machine.Steps)
}
