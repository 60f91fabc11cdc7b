package cpu

import (
	"fmt"
	"strings"
)

// CodeOp is the 4-bit operation selector.
type CodeOp int

const (
	OP_MOV = CodeOp(0x1) // mov
	OP_CMP = CodeOp(0x2) // cmp
	OP_ADD = CodeOp(0x3) // add
	OP_DEC = CodeOp(0x4) // dec
	OP_JLO = CodeOp(0x5) // jlo
	OP_JNZ = CodeOp(0x6) // jnz
	OP_JMP = CodeOp(0x7) // jmp
	OP_NOP = CodeOp(0xf) // nop
)

var opName = map[CodeOp]string{
	OP_MOV: "MOV",
	OP_CMP: "CMP",
	OP_ADD: "ADD",
	OP_DEC: "DEC",
	OP_JLO: "JLO",
	OP_JNZ: "JNZ",
	OP_JMP: "JMP",
	OP_NOP: "NOP",
}

func (op CodeOp) String() string {
	name, ok := opName[op]
	if !ok {
		return fmt.Sprintf("CodeOp(%d)", int(op))
	}
	return name
}

// Jump returns true if the operation takes its source field as a raw
// program position.
func (op CodeOp) Jump() bool {
	return op == OP_JLO || op == OP_JNZ || op == OP_JMP
}

// CodeMode is the 2-bit operand addressing mode tag.
type CodeMode int

const (
	MODE_REGISTER  = CodeMode(0) // Rn
	MODE_INDIRECT  = CodeMode(1) // @Rn
	MODE_IMMEDIATE = CodeMode(2) // #n
)

func (mode CodeMode) String() string {
	switch mode {
	case MODE_REGISTER:
		return "register"
	case MODE_INDIRECT:
		return "indirect"
	case MODE_IMMEDIATE:
		return "immediate"
	}
	return fmt.Sprintf("CodeMode(%d)", int(mode))
}

// Valid returns true for the three defined addressing modes.
func (mode CodeMode) Valid() bool {
	return mode >= MODE_REGISTER && mode <= MODE_IMMEDIATE
}

// Writable returns true if the mode can be used as a destination.
func (mode CodeMode) Writable() bool {
	return mode == MODE_REGISTER || mode == MODE_INDIRECT
}

// Field widths of an instruction word.
const (
	FIELD_BITS = 4                 // Width of an operand value field.
	FIELD_MASK = 1<<FIELD_BITS - 1 // Mask of an operand value field.
	MODE_BITS  = 2                 // Width of an addressing mode tag.
	MODE_MASK  = 1<<MODE_BITS - 1  // Mask of an addressing mode tag.
)

// Code is a single 16-bit instruction word.
//
//	15..12  opcode
//	11..10  source mode
//	 9..6   source value
//	 5..4   destination mode
//	 3..0   destination value
//
// The zero Code is the placeholder word emitted for label lines.
type Code uint16

// CODE_PLACEHOLDER is the no-op word emitted for a label declaration.
const CODE_PLACEHOLDER = Code(0)

// CODE_HALT is the canonical NOP/halt word.
const CODE_HALT = Code(uint16(OP_NOP) << 12)

// operand packs a mode and a value into a 6-bit operand field.
func operand(mode CodeMode, value uint8) uint16 {
	return (uint16(mode)&MODE_MASK)<<FIELD_BITS | uint16(value)&FIELD_MASK
}

// MakeCode creates an instruction word. Each field is masked to its width.
func MakeCode(op CodeOp, src_mode CodeMode, src uint8, dst_mode CodeMode, dst uint8) Code {
	return Code((uint16(op)&0xf)<<12 | operand(src_mode, src)<<6 | operand(dst_mode, dst))
}

// makeCodeUnchecked encodes the way the reference assembler did: the
// operand fields are not masked, so an oversized value spills into the
// neighbouring field.
func makeCodeUnchecked(op CodeOp, src_mode CodeMode, src int, dst_mode CodeMode, dst int) Code {
	word := int(op) << 12
	word |= (int(src_mode)<<FIELD_BITS | src) << 6
	word |= int(dst_mode)<<FIELD_BITS | dst
	return Code(uint16(word))
}

// Op returns the opcode of the instruction word.
func (code Code) Op() CodeOp {
	return CodeOp((code >> 12) & 0xf)
}

// Decode splits the instruction word into its five fields.
func (code Code) Decode() (op CodeOp, src_mode CodeMode, src uint8, dst_mode CodeMode, dst uint8) {
	word := uint16(code)
	op = CodeOp((word >> 12) & 0xf)
	src_mode = CodeMode((word >> 10) & MODE_MASK)
	src = uint8((word >> 6) & FIELD_MASK)
	dst_mode = CodeMode((word >> 4) & MODE_MASK)
	dst = uint8((word >> 0) & FIELD_MASK)
	return
}

// operandString renders an operand in assembler syntax.
func operandString(mode CodeMode, value uint8) string {
	switch mode {
	case MODE_REGISTER:
		return fmt.Sprintf("R%d", value)
	case MODE_INDIRECT:
		return fmt.Sprintf("@R%d", value)
	case MODE_IMMEDIATE:
		return fmt.Sprintf("#%d", value)
	}
	return fmt.Sprintf("?%d:%d", int(mode), value)
}

// String returns the assembly language representation of this instruction.
func (code Code) String() string {
	if code == CODE_PLACEHOLDER {
		return ".word 0"
	}

	op, src_mode, src, dst_mode, dst := code.Decode()

	switch op {
	case OP_NOP:
		return op.String()
	case OP_JLO, OP_JMP, OP_JNZ:
		return fmt.Sprintf("%v %d", op, src)
	case OP_MOV, OP_CMP, OP_ADD, OP_DEC:
		var sb strings.Builder
		sb.WriteString(op.String())
		sb.WriteString(" ")
		sb.WriteString(operandString(src_mode, src))
		sb.WriteString(", ")
		sb.WriteString(operandString(dst_mode, dst))
		return sb.String()
	}

	return fmt.Sprintf(".word 0x%04x", uint16(code))
}
