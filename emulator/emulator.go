// Copyright 2025, The cogvm Authors

package emulator

import (
	"io"
	"iter"
	"maps"

	"github.com/cogwork/cogvm/cpu"
	"github.com/cogwork/cogvm/internal"
)

// Emulator couples an assembler and a machine behind one front door,
// with the limits and defines of a Config applied to both.
type Emulator struct {
	Verbose bool // If set, enables verbose logging.

	Assembler cpu.Assembler
	Machine   cpu.Machine
	Program   *cpu.Program
	Config    Config
}

// NewEmulator creates an emulator with the given configuration.
func NewEmulator(conf Config) (emu *Emulator) {
	emu = &Emulator{
		Program: &cpu.Program{},
		Config:  conf,
	}

	return
}

// Defines returns an iterator over every constant a compiled program
// begins with: the system names plus the configured ones.
func (emu *Emulator) Defines() iter.Seq2[string, cpu.Value] {
	defines, _ := emu.Config.defines()

	return internal.IterSeq2Concat(maps.All(cpu.SysDefines()), maps.All(defines))
}

// Compile assembles source into the emulator's program. Configured
// defines are installed first.
func (emu *Emulator) Compile(input io.Reader) error {
	defines, err := emu.Config.defines()
	if err != nil {
		return err
	}
	for name, value := range defines {
		emu.Assembler.Predefine(name, value)
	}

	emu.Assembler.Verbose = emu.Verbose
	prog, err := emu.Assembler.Parse(input)
	if err != nil {
		return err
	}
	emu.Program = prog

	return nil
}

// LineNo returns the source line of the next instruction to execute.
func (emu *Emulator) LineNo() int {
	return emu.Program.LineNo(emu.Machine.Pc)
}

// Tick executes a single instruction.
func (emu *Emulator) Tick() (done bool, err error) {
	emu.Machine.Verbose = emu.Verbose || emu.Config.Trace

	lineno := emu.LineNo()
	pc := emu.Machine.Pc
	defer func() {
		if err != nil {
			err = &ErrRuntime{LineNo: lineno, Pc: pc, Err: err}
		}
	}()

	return emu.Machine.Step(emu.Program)
}

// Run executes the program from reset under the configured limit.
func (emu *Emulator) Run() (err error) {
	emu.Machine.Verbose = emu.Verbose || emu.Config.Trace

	defer func() {
		if err != nil {
			err = &ErrRuntime{
				LineNo: emu.LineNo(),
				Pc:     emu.Machine.Pc,
				Err:    err,
			}
		}
	}()

	return emu.Machine.Run(emu.Program, cpu.RunConfig{
		MaxInstructions: emu.Config.MaxInstructions,
	})
}
