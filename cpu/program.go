package cpu

import (
	"slices"
	"strings"
)

// Program is an assembled unit ready to run. Labels map names to
// instruction indexes and Constants holds every DEFINE that was in
// scope, system names included.
type Program struct {
	Instructions []Instruction
	Labels       map[string]int
	Constants    map[string]Value
}

// At returns the instruction at pc, or nil past either end.
func (p *Program) At(pc int) *Instruction {
	if pc < 0 || pc >= len(p.Instructions) {
		return nil
	}

	return &p.Instructions[pc]
}

// LineNo returns the source line of the instruction at pc, or 0 when
// pc is out of range.
func (p *Program) LineNo(pc int) int {
	if inst := p.At(pc); inst != nil {
		return inst.LineNo
	}

	return 0
}

// Disassemble renders the program back to assembly source. The output
// reassembles to an identical program.
func (p *Program) Disassemble() string {
	var out strings.Builder

	names := []string{}
	for name := range p.Constants {
		if _, ok := sysDefine[name]; ok {
			continue
		}
		names = append(names, name)
	}
	slices.Sort(names)
	for _, name := range names {
		out.WriteString("DEFINE ." + name + " " + p.Constants[name].String() + "\n")
	}

	labels := map[int][]string{}
	for name, pc := range p.Labels {
		labels[pc] = append(labels[pc], name)
	}

	for pc := 0; pc <= len(p.Instructions); pc++ {
		names := labels[pc]
		slices.Sort(names)
		for _, name := range names {
			out.WriteString(name + ":\n")
		}
		if pc < len(p.Instructions) {
			out.WriteString("\t" + p.Instructions[pc].String() + "\n")
		}
	}

	return out.String()
}
