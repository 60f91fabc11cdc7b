// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package emulator

import (
	"io"
	"log"

	"github.com/ezrec/msp16/cpu"
	"github.com/ezrec/msp16/translate"
)

// Emulator state. Assembler + CPU + the program being run.
type Emulator struct {
	Verbose   bool          // If set, enables verbose logging.
	*cpu.Cpu                // Reference to the CPU simulation.
	Assembler cpu.Assembler // Assembler used by Assemble.
	Program   *cpu.Program  // Reference to the currently running program listing.
}

// NewEmulator creates a new emulator. The data words are preloaded at
// address 0, and the program region starts right after them.
func NewEmulator(data []int) (emu *Emulator, err error) {
	proc, err := cpu.NewCpu(cpu.MEMORY_SIZE, len(data))
	if err != nil {
		return
	}

	err = proc.Preload(data)
	if err != nil {
		return
	}

	emu = &Emulator{
		Cpu:     proc,
		Program: &cpu.Program{},
	}

	return
}

// Assemble assembles source text into the emulator's program.
// On failure the previous program is kept.
func (emu *Emulator) Assemble(input io.Reader) (err error) {
	emu.Assembler.Verbose = emu.Verbose

	prog, err := emu.Assembler.Parse(input)
	if err != nil {
		return
	}

	if prog.Len() == 0 {
		err = ErrEmptyProgram
		return
	}

	emu.Program = prog

	return
}

// Reset loads the program into the CPU, and rewinds to its first word.
func (emu *Emulator) Reset() (err error) {
	emu.Cpu.Verbose = emu.Verbose

	if emu.Verbose {
		log.Printf("emulator: reset, %d words", emu.Program.Len())
	}

	err = emu.Cpu.LoadProgram(emu.Program.Words())

	return
}

// Ip returns the program position of the next word to execute.
func (emu *Emulator) Ip() int {
	return emu.Cpu.Pc() - emu.Cpu.Offset()
}

// Code returns the current instruction code.
func (emu *Emulator) Code() cpu.Code {
	op := emu.Program.Debug(emu.Ip())
	if op == nil {
		return cpu.CODE_PLACEHOLDER
	}

	return op.Code
}

// LineNo returns the current line number for the executing opcode.
func (emu *Emulator) LineNo() int {
	op := emu.Program.Debug(emu.Ip())
	if op == nil {
		return 0
	}

	return op.LineNo
}

// Tick performs a single tick of the emulator.
func (emu *Emulator) Tick() (done bool, err error) {
	// Set CPU verbosity
	emu.Cpu.Verbose = emu.Verbose

	lineno := emu.LineNo()
	defer func() {
		if err != nil {
			err = &ErrRuntime{LineNo: lineno, Err: err}
		}
	}()

	status, err := emu.Cpu.Step()
	if err != nil {
		return
	}

	done = status == cpu.STATUS_HALTED
	if done && emu.Verbose {
		log.Printf("emulator: %v", Finished())
	}

	return
}

// Run ticks until the program halts, or limit ticks have elapsed.
// A limit of zero or less runs without limit.
func (emu *Emulator) Run(limit int) (err error) {
	for ticks := 0; limit <= 0 || ticks < limit; ticks++ {
		var done bool
		done, err = emu.Tick()
		if err != nil || done {
			return
		}
	}

	err = &ErrRuntime{LineNo: emu.LineNo(), Err: ErrTickLimit}

	return
}

// Finished returns the notice to show when a program halts.
func Finished() string {
	return translate.From("program finished")
}
