package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCodeDecode(t *testing.T) {
	assert := assert.New(t)

	code := MakeCode(OP_MOV, MODE_IMMEDIATE, 5, MODE_REGISTER, 0)
	assert.Equal(Code((1<<12)|((2<<4|5)<<6)|0), code)
	assert.Equal(Code(0x1940), code)

	op, src_mode, src, dst_mode, dst := code.Decode()
	assert.Equal(OP_MOV, op)
	assert.Equal(MODE_IMMEDIATE, src_mode)
	assert.Equal(uint8(5), src)
	assert.Equal(MODE_REGISTER, dst_mode)
	assert.Equal(uint8(0), dst)
	assert.Equal(OP_MOV, code.Op())
}

func TestCodeMask(t *testing.T) {
	assert := assert.New(t)

	// Oversized values never bleed into the neighbouring field.
	code := MakeCode(OP_ADD, MODE_INDIRECT, 0x13, MODE_REGISTER, 0x1f)
	op, src_mode, src, dst_mode, dst := code.Decode()
	assert.Equal(OP_ADD, op)
	assert.Equal(MODE_INDIRECT, src_mode)
	assert.Equal(uint8(3), src)
	assert.Equal(MODE_REGISTER, dst_mode)
	assert.Equal(uint8(0xf), dst)

	// The unchecked encoder does bleed.
	code = makeCodeUnchecked(OP_JMP, MODE_REGISTER, 17, MODE_REGISTER, 0)
	assert.Equal(Code(0x7440), code)
	_, src_mode, src, _, _ = code.Decode()
	assert.Equal(MODE_INDIRECT, src_mode)
	assert.Equal(uint8(1), src)
}

func TestCodeString(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		code Code
		text string
	}){
		{CODE_PLACEHOLDER, ".word 0"},
		{CODE_HALT, "NOP"},
		{MakeCode(OP_MOV, MODE_IMMEDIATE, 5, MODE_REGISTER, 0), "MOV #5, R0"},
		{MakeCode(OP_ADD, MODE_INDIRECT, 2, MODE_INDIRECT, 15), "ADD @R2, @R15"},
		{MakeCode(OP_CMP, MODE_REGISTER, 1, MODE_REGISTER, 2), "CMP R1, R2"},
		{MakeCode(OP_JMP, MODE_REGISTER, 7, MODE_REGISTER, 0), "JMP 7"},
		{MakeCode(OP_JLO, MODE_REGISTER, 3, MODE_REGISTER, 0), "JLO 3"},
		{Code(0x8123), ".word 0x8123"},
	}

	for _, entry := range table {
		assert.Equal(entry.text, entry.code.String(), entry.text)
	}
}

func TestCodeModes(t *testing.T) {
	assert := assert.New(t)

	assert.True(MODE_REGISTER.Valid())
	assert.True(MODE_INDIRECT.Valid())
	assert.True(MODE_IMMEDIATE.Valid())
	assert.False(CodeMode(3).Valid())

	assert.True(MODE_REGISTER.Writable())
	assert.True(MODE_INDIRECT.Writable())
	assert.False(MODE_IMMEDIATE.Writable())

	assert.True(OP_JMP.Jump())
	assert.True(OP_JLO.Jump())
	assert.False(OP_MOV.Jump())
	assert.Equal("CodeOp(9)", CodeOp(9).String())
}
