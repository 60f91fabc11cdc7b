package cpu

import (
	"fmt"
	"iter"
	"strings"
)

// Opcode is one emitted word together with the source line it came from.
type Opcode struct {
	LineNo int      // Source line number, 1 based.
	Ip     int      // Word index relative to the program start.
	Words  []string // Source words (mnemonic and operands).
	Code   Code     // Emitted instruction word.
	Label  string   // Declared label, for placeholder words.
}

// Program is the output of the assembler.
type Program struct {
	Opcodes []Opcode
	Labels  map[string]int
}

// Len returns the number of words in the program.
func (prog *Program) Len() int {
	return len(prog.Opcodes)
}

// Debug returns the opcode at program position ip, or nil.
func (prog *Program) Debug(ip int) (op *Opcode) {
	for n := range prog.Opcodes {
		if prog.Opcodes[n].Ip == ip {
			op = &prog.Opcodes[n]
			break
		}
	}

	return
}

// Words returns the machine words, one per emitted line.
func (prog *Program) Words() (words []uint16) {
	words = make([]uint16, 0, len(prog.Opcodes))
	for _, code := range prog.Codes() {
		words = append(words, uint16(code))
	}

	return
}

// Codes iterates over the program position and word of each opcode.
func (prog *Program) Codes() iter.Seq2[int, Code] {
	return func(yield func(ip int, code Code) bool) {
		for _, op := range prog.Opcodes {
			if !yield(op.Ip, op.Code) {
				return
			}
		}
	}
}

// Listing renders the program as an address, word and source table.
func (prog *Program) Listing() string {
	var sb strings.Builder

	for _, op := range prog.Opcodes {
		source := strings.Join(op.Words, " ")
		if len(op.Label) != 0 {
			source = op.Label + ":"
		}
		fmt.Fprintf(&sb, "%3d: %04x  %-16v ; %v\n", op.Ip, uint16(op.Code), op.Code.String(), source)
	}

	return sb.String()
}
