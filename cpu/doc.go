// Package cpu implements the Cog virtual machine and its assembler.
//
// The machine consists of nine general purpose registers (r0-r8), an
// accumulator (a) that receives every arithmetic and bitwise result, a
// reserved flag register (f), a 256 slot memory bank, a data stack, and a
// call stack. Values are 64-bit integers or text, and execution is fully
// deterministic: the same program and configuration always produce the
// same final state.
//
// The assembler implements the Cog assembly dialect: labels, DEFINE
// constants, direct (%N) and indirect (%Rn) memory addressing, guarded
// jumps, and assembly-time $( ) expression evaluation.
package cpu
