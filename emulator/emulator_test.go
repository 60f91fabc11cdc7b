package emulator

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/msp16/cpu"
)

func TestEmulator(t *testing.T) {
	assert := assert.New(t)

	emu, err := NewEmulator([]int{6, 4, 4, 4, 4, 4, 4})
	assert.NoError(err)

	assert.False(emu.Verbose)
	assert.NotNil(emu.Cpu)
	assert.Equal(7, emu.Cpu.Offset())
	assert.Equal([]int{6, 4, 4, 4, 4, 4, 4, 0}, emu.Cpu.State().Memory[:8])
	assert.Equal(0, emu.Program.Len())
}

func doAssemble(emu *Emulator, program []string, t *testing.T) {
	assert := assert.New(t)

	err := emu.Assemble(strings.NewReader(strings.Join(program, "\n")))
	assert.NoError(err)
	if err != nil {
		t.Fatal(err)
	}

	err = emu.Reset()
	assert.NoError(err)
}

func TestEmulatorLineNo(t *testing.T) {
	assert := assert.New(t)

	emu, err := NewEmulator(nil)
	assert.NoError(err)

	program := []string{
		"; count to three",
		"MOV #0, R0",
		"",
		"loop:",
		"ADD #1, R0",
		"CMP #3, R0",
		"JLO loop",
		"NOP",
	}
	doAssemble(emu, program, t)

	var lines []int
	var done bool
	for !done {
		lines = append(lines, emu.LineNo())
		done, err = emu.Tick()
		assert.NoError(err)
		if err != nil {
			t.Fatal(err)
		}
	}

	assert.Equal([]int{2, 4, 5, 6, 7, 5, 6, 7, 5, 6, 7, 8}, lines)
	assert.Equal(3, emu.Cpu.Register(0))
	assert.Equal(0, emu.LineNo())
	assert.Equal(cpu.CODE_PLACEHOLDER, emu.Code())
}

func TestEmulatorCode(t *testing.T) {
	assert := assert.New(t)

	emu, err := NewEmulator([]int{1, 2})
	assert.NoError(err)

	doAssemble(emu, []string{"MOV #5, R0", "NOP"}, t)

	assert.Equal(0, emu.Ip())
	assert.Equal(cpu.Code(0x1940), emu.Code())

	done, err := emu.Tick()
	assert.NoError(err)
	assert.False(done)
	assert.Equal(1, emu.Ip())
	assert.Equal(cpu.CODE_HALT, emu.Code())

	done, err = emu.Tick()
	assert.NoError(err)
	assert.True(done)
}

func TestEmulatorRun(t *testing.T) {
	assert := assert.New(t)

	emu, err := NewEmulator([]int{6, 4, 4, 4, 4, 4, 4, 0})
	assert.NoError(err)

	// Sum the data words, using the first as the count.
	program := []string{
		"MOV #0, R0",  // index
		"MOV @R0, R1", // count
		"MOV #0, R2",  // sum
		"MOV #1, R3",  // step
		"next:",
		"ADD R3, R0",
		"ADD @R0, R2",
		"CMP R1, R0",
		"JLO next",
		"MOV #7, R4",
		"MOV R2, @R4", // store the sum in the last data word
		"NOP",
	}
	doAssemble(emu, program, t)

	err = emu.Run(0)
	assert.NoError(err)

	assert.Equal(6, emu.Cpu.Register(0))
	assert.Equal(24, emu.Cpu.Register(2))
	assert.Equal(24, emu.Cpu.State().Memory[7])
}

func TestEmulatorTickLimit(t *testing.T) {
	assert := assert.New(t)

	emu, err := NewEmulator(nil)
	assert.NoError(err)

	doAssemble(emu, []string{"spin:", "JMP spin"}, t)

	err = emu.Run(10)
	assert.ErrorIs(err, ErrTickLimit)

	var runtime *ErrRuntime
	if assert.True(errors.As(err, &runtime)) {
		assert.Equal(2, runtime.LineNo)
	}
	assert.Equal(10, emu.Cpu.Ticks)
}

func TestEmulatorRuntimeError(t *testing.T) {
	assert := assert.New(t)

	emu, err := NewEmulator(nil)
	assert.NoError(err)

	doAssemble(emu, []string{"MOV #1, R0", "DEC R0", "NOP"}, t)

	err = emu.Run(0)
	assert.ErrorIs(err, cpu.ErrNotImplemented)

	var runtime *ErrRuntime
	if assert.True(errors.As(err, &runtime)) {
		assert.Equal(2, runtime.LineNo)
	}

	// The failing instruction is not skipped.
	done, err := emu.Tick()
	assert.False(done)
	assert.ErrorIs(err, cpu.ErrNotImplemented)

	// Reset rewinds to the start.
	assert.NoError(emu.Reset())
	assert.Equal(1, emu.LineNo())
}

func TestEmulatorAssembleError(t *testing.T) {
	assert := assert.New(t)

	emu, err := NewEmulator(nil)
	assert.NoError(err)

	doAssemble(emu, []string{"MOV #1, R0", "NOP"}, t)
	prog := emu.Program

	err = emu.Assemble(strings.NewReader("MOV #1, R0\nFOO R1"))
	assert.ErrorIs(err, cpu.ErrInstructionUnknown)
	assert.Same(prog, emu.Program)

	err = emu.Assemble(strings.NewReader("\n; nothing\n"))
	assert.ErrorIs(err, ErrEmptyProgram)
	assert.Same(prog, emu.Program)
}

func TestEmulatorData(t *testing.T) {
	assert := assert.New(t)

	data := make([]int, cpu.MEMORY_SIZE+1)
	_, err := NewEmulator(data)
	assert.ErrorIs(err, cpu.ErrCapacity)

	// No room left for any program.
	emu, err := NewEmulator(make([]int, cpu.MEMORY_SIZE))
	assert.NoError(err)
	assert.NoError(emu.Assemble(strings.NewReader("NOP")))
	assert.ErrorIs(emu.Reset(), cpu.ErrCapacity)
}

func TestFinished(t *testing.T) {
	assert := assert.New(t)

	assert.NotEmpty(Finished())
}
