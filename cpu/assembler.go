// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"maps"
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

// Predefined system equates
var sysEquate = map[string]string{
	"LINENO":      "0",
	"REGISTERS":   fmt.Sprintf("%d", REGISTER_COUNT),
	"MEMORY_SIZE": fmt.Sprintf("%d", MEMORY_SIZE),
	"FIELD_MAX":   fmt.Sprintf("%d", FIELD_MASK),
}

// newOpcodeTable returns the mnemonic table of the instruction set.
func newOpcodeTable() map[string]CodeOp {
	return map[string]CodeOp{
		"MOV": OP_MOV,
		"CMP": OP_CMP,
		"ADD": OP_ADD,
		"DEC": OP_DEC,
		"JLO": OP_JLO,
		"JNZ": OP_JNZ,
		"JMP": OP_JMP,
		"NOP": OP_NOP,
	}
}

var (
	reLabel      = regexp.MustCompile(`^[A-Za-z_.][A-Za-z0-9_.]*$`)
	reRegister   = regexp.MustCompile(`^R[0-9]`)
	reDigits     = regexp.MustCompile(`^[0-9]+$`)
	reExpression = regexp.MustCompile(`\$\([^\$]*\)`)
)

// Assembler is a two pass assembler producing one word per source line.
type Assembler struct {
	Verbose bool // If set, verbosely logs the assembler actions.
	// If set, labels are numbered and operands encoded exactly as the
	// reference assembler did, including silent field overflow.
	Compat bool

	Label  map[string]int    // Map of labels to program positions.
	Equate map[string]string // Map of equates.

	predefine map[string]string // Predefines
	opcodes   map[string]CodeOp // Mnemonic table.
}

// Predefine defines a new equate or redefines an existing equate.
func (asm *Assembler) Predefine(equ string, value string) {
	if asm.predefine == nil {
		asm.predefine = map[string]string{equ: value}
	} else {
		asm.predefine[equ] = value
	}
}

// lineKind classifies a source line.
type lineKind int

const (
	lineBlank = lineKind(iota)
	lineDirective
	lineLabel
	lineInstruction
)

// sourceLine is a comment-stripped, trimmed source line.
type sourceLine struct {
	lineNo int
	text   string
	kind   lineKind
}

func classify(text string) lineKind {
	switch {
	case len(text) == 0:
		return lineBlank
	case strings.HasSuffix(text, ":"):
		return lineLabel
	case strings.HasPrefix(text, "."):
		return lineDirective
	default:
		return lineInstruction
	}
}

// Parse parses an input stream into a Program. Either the whole program
// assembles, or no program is returned.
func (asm *Assembler) Parse(input io.Reader) (prog *Program, err error) {
	var lines []sourceLine

	var line string
	var lineno int

	defer func() {
		if err != nil {
			prog = nil
			err = &ErrSyntax{LineNo: lineno, Line: line, Err: err}
		}
	}()

	if asm.opcodes == nil {
		asm.opcodes = newOpcodeTable()
	}
	asm.Label = make(map[string]int, 16)
	asm.Equate = maps.Clone(sysEquate)
	maps.Copy(asm.Equate, asm.predefine)

	scanner := bufio.NewScanner(input)
	for scanner.Scan() {
		text := scanner.Text()
		lineno += 1

		if asm.Verbose {
			log.Printf("%v: %v\n", lineno, text)
		}

		text, _, _ = strings.Cut(text, ";")
		text = strings.TrimSpace(text)
		lines = append(lines, sourceLine{lineNo: lineno, text: text, kind: classify(text)})
	}
	err = scanner.Err()
	if err != nil {
		return
	}

	// Pass 1: labels.
	var pending []string
	var ip, instructions int
	for _, src := range lines {
		lineno, line = src.lineNo, src.text
		switch src.kind {
		case lineLabel:
			label := strings.TrimSuffix(src.text, ":")
			if !reLabel.MatchString(label) || reRegister.MatchString(label) {
				err = ErrLabelInvalid
				return
			}
			_, ok := asm.Label[label]
			if ok {
				err = ErrLabelDuplicate
				return
			}
			if asm.Compat {
				asm.Label[label] = instructions + len(asm.Label)
			} else {
				asm.Label[label] = -1
				pending = append(pending, label)
			}
			ip++
		case lineInstruction:
			for _, label := range pending {
				asm.Label[label] = ip
			}
			pending = pending[:0]
			instructions++
			ip++
		}
	}
	// Trailing labels mark the end of the program.
	for _, label := range pending {
		asm.Label[label] = ip
	}

	// Pass 2: encode.
	prog = &Program{}
	for _, src := range lines {
		lineno, line = src.lineNo, src.text
		asm.Equate["LINENO"] = strconv.Itoa(lineno)

		switch src.kind {
		case lineBlank:
			continue
		case lineDirective:
			err = asm.parseDirective(src.text)
		case lineLabel:
			prog.Opcodes = append(prog.Opcodes, Opcode{
				LineNo: lineno,
				Ip:     len(prog.Opcodes),
				Code:   CODE_PLACEHOLDER,
				Label:  strings.TrimSuffix(src.text, ":"),
			})
		case lineInstruction:
			var op Opcode
			op, err = asm.parseInstruction(src.text)
			op.LineNo = lineno
			op.Ip = len(prog.Opcodes)
			prog.Opcodes = append(prog.Opcodes, op)
		}
		if err != nil {
			return
		}
	}

	prog.Labels = maps.Clone(asm.Label)

	return
}

// parseDirective handles an assembler directive line.
func (asm *Assembler) parseDirective(text string) (err error) {
	text, err = asm.expand(text)
	if err != nil {
		return
	}

	words := strings.Fields(text)
	switch words[0] {
	case ".equ":
		// .equ CONST VALUE
		if len(words) != 3 {
			err = ErrEquateSyntax
			return
		}
		_, ok := asm.Equate[words[1]]
		if ok {
			err = ErrEquateDuplicate
			return
		}
		_, err = asm.valueOf(words[2])
		if err != nil {
			return
		}
		asm.Equate[words[1]] = words[2]
	default:
		err = ErrInstruction(words[0])
	}

	return
}

// parseInstruction encodes a single `MNEMONIC [src[, dst]]` line.
func (asm *Assembler) parseInstruction(text string) (op Opcode, err error) {
	text, err = asm.expand(text)
	if err != nil {
		return
	}

	mnemonic, operands := text, ""
	if n := strings.IndexFunc(text, unicode.IsSpace); n >= 0 {
		mnemonic, operands = text[:n], strings.TrimSpace(text[n:])
	}

	code, ok := asm.opcodes[strings.ToUpper(mnemonic)]
	if !ok {
		err = ErrInstruction(mnemonic)
		return
	}

	op.Words = []string{mnemonic}

	src_mode, dst_mode := MODE_REGISTER, MODE_REGISTER
	var src, dst int

	if len(operands) != 0 {
		args := strings.Split(operands, ",")
		if len(args) > 2 {
			err = ErrOperandExtra
			return
		}
		for n := range args {
			args[n] = strings.TrimSpace(args[n])
		}
		op.Words = append(op.Words, args...)

		src_mode, src, err = asm.parseOperand(args[0], false)
		if err != nil {
			return
		}
		if len(args) > 1 {
			dst_mode, dst, err = asm.parseOperand(args[1], true)
			if err != nil {
				return
			}
		}
	}

	if asm.Compat {
		op.Code = makeCodeUnchecked(code, src_mode, src, dst_mode, dst)
		return
	}

	for _, value := range []int{src, dst} {
		if value < 0 || value > FIELD_MASK {
			err = ErrOverflow{Value: value, Bits: FIELD_BITS}
			return
		}
	}

	op.Code = MakeCode(code, src_mode, uint8(src), dst_mode, uint8(dst))

	return
}

// parseRegister parses `Rn`, with n in 0..15.
func parseRegister(word string) (value int, err error) {
	if !reDigits.MatchString(word[1:]) {
		err = ErrRegister(word)
		return
	}
	value, err = strconv.Atoi(word[1:])
	if err != nil || value >= REGISTER_COUNT {
		err = ErrRegister(word)
		return
	}

	return
}

// parseOperand returns the addressing mode and field value of an operand.
func (asm *Assembler) parseOperand(word string, is_dst bool) (mode CodeMode, value int, err error) {
	switch {
	case reRegister.MatchString(word):
		mode = MODE_REGISTER
		value, err = parseRegister(word)
	case strings.HasPrefix(word, "@"):
		mode = MODE_INDIRECT
		reg := word[1:]
		switch {
		case reRegister.MatchString(reg):
			value, err = parseRegister(reg)
		case reDigits.MatchString(reg):
			value, err = strconv.Atoi(reg)
			if err != nil || (!asm.Compat && value >= REGISTER_COUNT) {
				err = ErrRegister(word)
			}
		default:
			err = ErrOperand(word)
		}
	case strings.HasPrefix(word, "#"):
		if is_dst {
			err = ErrDestinationImmediate
			return
		}
		mode = MODE_IMMEDIATE
		value, err = asm.valueOf(word[1:])
	default:
		pos, ok := asm.Label[word]
		if !ok {
			if reLabel.MatchString(word) {
				err = ErrLabelMissing(word)
			} else {
				err = ErrOperand(word)
			}
			return
		}
		mode = MODE_REGISTER
		value = pos
	}

	return
}

// valueOf returns the value of a number or numeric equate.
func (asm *Assembler) valueOf(word string) (value int, err error) {
	equate, ok := asm.Equate[word]
	if ok {
		word = equate
	}

	v64, err := strconv.ParseInt(word, 0, 32)
	if err != nil {
		err = ErrParseNumber(word)
		return
	}

	value = int(v64)

	return
}
