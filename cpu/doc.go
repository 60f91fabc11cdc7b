// Package cpu implements the processor and assembler for a minimal 16-bit
// word, register based instruction set.
//
// An instruction word packs a 4-bit opcode and two operands, each a 2-bit
// addressing mode (register, indirect, immediate) and a 4-bit value. The
// processor owns sixteen registers, a flat memory split at an offset into a
// data region and a program region, a program counter and a one-bit compare
// flag, and executes one instruction per Step.
//
// The assembler turns one source line into one word, resolving labels in a
// first pass. It also supports comments, equates, and compile-time
// expression evaluation.
package cpu
