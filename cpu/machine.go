package cpu

import (
	"errors"
	"fmt"
	"log"
	"strings"
)

const (
	MEM_SIZE      = 256   // slots in the memory bank
	DEFAULT_LIMIT = 65536 // instruction budget when none is given
)

// Machine is the execution state: registers, the memory bank, the two
// stacks, and the program counter. The zero Machine is ready to run.
type Machine struct {
	Verbose bool

	Registers [REGISTER_COUNT]Value
	Memory    [MEM_SIZE]Value
	Stack     ValueStack
	Calls     CallStack
	Pc        int
	Halted    bool
	Steps     int
}

// RunConfig bounds a run. A MaxInstructions of zero or less means
// DEFAULT_LIMIT.
type RunConfig struct {
	MaxInstructions int
}

// Reset returns the machine to power-on state.
func (m *Machine) Reset() {
	clear(m.Registers[:])
	clear(m.Memory[:])
	m.Stack.Reset()
	m.Calls.Reset()
	m.Pc = 0
	m.Halted = false
	m.Steps = 0
}

// String renders the registers and stack summary, one row per
// register.
func (m *Machine) String() string {
	var out strings.Builder

	for reg := REG_R0; reg < REGISTER_COUNT; reg++ {
		fmt.Fprintf(&out, "%3v: %v\n", reg, m.Registers[reg])
	}
	fmt.Fprintf(&out, " pc: %v\n", m.Pc)

	top := "----"
	if value, ok := m.Stack.Peek(); ok {
		top = value.String()
	}
	fmt.Fprintf(&out, "top: %v (depth %v)\n", top, m.Stack.Depth())
	fmt.Fprintf(&out, "ret: depth %v\n", m.Calls.Depth())
	fmt.Fprintf(&out, "halted: %v after %v steps\n", m.Halted, m.Steps)

	return out.String()
}

// address resolves a memory operand to a bank index.
func (m *Machine) address(op Operand) (int, error) {
	var addr int64
	switch op.Mode {
	case MODE_DIRECT:
		addr = op.Addr
	case MODE_INDIRECT:
		base := m.Registers[op.Reg]
		if base.Kind != VALUE_INTEGER {
			return 0, ErrTypeMismatch{base}
		}
		addr = base.Int
	}

	if addr < 0 || addr >= MEM_SIZE {
		return 0, ErrAddressRange(addr)
	}

	return int(addr), nil
}

func (m *Machine) load(op Operand) (Value, error) {
	switch op.Mode {
	case MODE_REGISTER:
		return m.Registers[op.Reg], nil
	case MODE_DIRECT, MODE_INDIRECT:
		addr, err := m.address(op)
		if err != nil {
			return Value{}, err
		}
		return m.Memory[addr], nil
	}

	return op.Value, nil
}

func (m *Machine) store(op Operand, value Value) error {
	switch op.Mode {
	case MODE_REGISTER:
		m.Registers[op.Reg] = value
		return nil
	case MODE_DIRECT, MODE_INDIRECT:
		addr, err := m.address(op)
		if err != nil {
			return err
		}
		m.Memory[addr] = value
		return nil
	}

	return ErrTargetInvalid
}

// alu applies a two-operand arithmetic or bitwise instruction. The
// result always lands in the accumulator.
func (m *Machine) alu(inst *Instruction) error {
	left, err := m.load(inst.Operands[0])
	if err != nil {
		return err
	}
	right, err := m.load(inst.Operands[1])
	if err != nil {
		return err
	}

	var result Value
	switch inst.Op {
	case OP_ADD:
		result, err = left.Add(right)
	case OP_SUB:
		result, err = left.Sub(right)
	case OP_MUL:
		result, err = left.Mul(right)
	case OP_DIV:
		result, err = left.Div(right)
	case OP_AND:
		result, err = left.And(right)
	case OP_OR:
		result, err = left.Or(right)
	case OP_XOR:
		result, err = left.Xor(right)
	}
	if err != nil {
		return err
	}

	m.Registers[REG_A] = result
	return nil
}

// bump adds delta to the operand in place.
func (m *Machine) bump(inst *Instruction, delta int64) error {
	op := inst.Operands[0]
	value, err := m.load(op)
	if err != nil {
		return err
	}
	value, err = value.Add(Integer(delta))
	if err != nil {
		return err
	}

	return m.store(op, value)
}

func (m *Machine) condition(cmp *Comparison) (bool, error) {
	left, err := m.load(cmp.Left)
	if err != nil {
		return false, err
	}
	right, err := m.load(cmp.Right)
	if err != nil {
		return false, err
	}

	return left.Compare(right, cmp.Op)
}

// Step executes one instruction. It reports done when the machine
// halts, and leaves Pc on the faulting instruction when it errors.
func (m *Machine) Step(prog *Program) (done bool, err error) {
	if m.Halted {
		return true, nil
	}

	inst := prog.At(m.Pc)
	if inst == nil {
		// Running off either end halts the machine.
		m.Halted = true
		return true, nil
	}

	defer func() {
		if err != nil {
			err = errors.Join(ErrInstruction(*inst), err)
		}
	}()

	if m.Verbose {
		log.Printf("%03d: %v", m.Pc, inst)
	}

	m.Steps++
	next := m.Pc + 1

	switch inst.Op {
	case OP_SET:
		var value Value
		if value, err = m.load(inst.Operands[1]); err != nil {
			return
		}
		if err = m.store(inst.Operands[0], value); err != nil {
			return
		}
	case OP_MOV:
		var value Value
		if value, err = m.load(inst.Operands[0]); err != nil {
			return
		}
		if err = m.store(inst.Operands[1], value); err != nil {
			return
		}
	case OP_STORE:
		if err = m.store(inst.Operands[1], m.Registers[inst.Operands[0].Reg]); err != nil {
			return
		}
	case OP_LOAD:
		var value Value
		if value, err = m.load(inst.Operands[0]); err != nil {
			return
		}
		m.Registers[inst.Operands[1].Reg] = value
	case OP_CLEAR:
		if err = m.store(inst.Operands[0], Value{}); err != nil {
			return
		}
	case OP_ADD, OP_SUB, OP_MUL, OP_DIV, OP_AND, OP_OR, OP_XOR:
		if err = m.alu(inst); err != nil {
			return
		}
	case OP_NOT:
		var value Value
		if value, err = m.load(inst.Operands[0]); err != nil {
			return
		}
		if value, err = value.Not(); err != nil {
			return
		}
		m.Registers[REG_A] = value
	case OP_INC:
		if err = m.bump(inst, 1); err != nil {
			return
		}
	case OP_DEC:
		if err = m.bump(inst, -1); err != nil {
			return
		}
	case OP_JMP:
		taken := true
		if inst.Compare != nil {
			if taken, err = m.condition(inst.Compare); err != nil {
				return
			}
		}
		if taken {
			next = inst.Target
		}
	case OP_CALL:
		m.Calls.Push(m.Pc + 1)
		next = inst.Target
	case OP_RET:
		pc, ok := m.Calls.Pop()
		if !ok {
			err = ErrCallStackEmpty
			return
		}
		next = pc
	case OP_PUSH:
		var value Value
		if value, err = m.load(inst.Operands[0]); err != nil {
			return
		}
		m.Stack.Push(value)
	case OP_POP:
		value, ok := m.Stack.Pop()
		if !ok {
			err = ErrStackEmpty
			return
		}
		if len(inst.Operands) > 0 {
			if err = m.store(inst.Operands[0], value); err != nil {
				return
			}
		}
	case OP_HALT:
		m.Halted = true
		return true, nil
	default:
		panic(inst.Op)
	}

	m.Pc = next
	return false, nil
}

// Run executes from reset until the machine halts, the budget runs
// out, or an instruction faults.
func (m *Machine) Run(prog *Program, conf RunConfig) error {
	limit := conf.MaxInstructions
	if limit <= 0 {
		limit = DEFAULT_LIMIT
	}

	m.Reset()
	for !m.Halted {
		if m.Steps >= limit {
			return ErrLimit
		}
		done, err := m.Step(prog)
		if done || err != nil {
			return err
		}
	}

	return nil
}

// Run executes the program on a fresh machine and returns its final
// state.
func Run(prog *Program, conf RunConfig) (*Machine, error) {
	m := &Machine{}
	err := m.Run(prog, conf)

	return m, err
}
