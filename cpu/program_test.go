package cpu

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProgram_Debug(t *testing.T) {
	assert := assert.New(t)

	prog := assemble(t, &Assembler{},
		"MOV #1, R0",
		"",
		"loop:",
		"ADD R0, R0",
	)

	dbg := prog.Debug(0)
	if assert.NotNil(dbg) {
		assert.Equal(1, dbg.LineNo)
		assert.Equal([]string{"MOV", "#1", "R0"}, dbg.Words)
	}

	dbg = prog.Debug(1)
	if assert.NotNil(dbg) {
		assert.Equal(3, dbg.LineNo)
		assert.Equal("loop", dbg.Label)
	}

	dbg = prog.Debug(2)
	if assert.NotNil(dbg) {
		assert.Equal(4, dbg.LineNo)
	}

	assert.Nil(prog.Debug(3))
	assert.Nil(prog.Debug(-1))
}

func TestProgram_Codes(t *testing.T) {
	assert := assert.New(t)

	prog := &Program{
		Opcodes: []Opcode{
			{LineNo: 1, Ip: 0, Words: []string{"MOV", "#1", "R0"},
				Code: MakeCode(OP_MOV, MODE_IMMEDIATE, 1, MODE_REGISTER, 0)},
			{LineNo: 2, Ip: 1, Label: "here", Code: CODE_PLACEHOLDER},
			{LineNo: 3, Ip: 2, Words: []string{"NOP"}, Code: CODE_HALT},
		},
	}

	var ips []int
	var codes []Code
	for ip, code := range prog.Codes() {
		ips = append(ips, ip)
		codes = append(codes, code)
		if ip == 1 {
			break
		}
	}
	assert.Equal([]int{0, 1}, ips)
	assert.Equal([]Code{0x1840, CODE_PLACEHOLDER}, codes)

	assert.Equal([]uint16{0x1840, 0x0000, 0xf000}, prog.Words())
	assert.Equal(3, prog.Len())
}

func TestProgram_Listing(t *testing.T) {
	assert := assert.New(t)

	prog := assemble(t, &Assembler{},
		"start:",
		"MOV #5, R0",
		"JMP start",
	)

	lines := strings.Split(strings.TrimSuffix(prog.Listing(), "\n"), "\n")
	assert.Equal(3, len(lines))
	assert.Equal("  0: 0000  .word 0          ; start:", lines[0])
	assert.Equal("  1: 1940  MOV #5, R0       ; MOV #5 R0", lines[1])
	assert.Equal("  2: 7040  JMP 1            ; JMP start", lines[2])
}
