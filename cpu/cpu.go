package cpu

import (
	"errors"
	"fmt"
	"log"
	"slices"
	"strings"
)

// Status is the outcome of a single Step.
type Status int

const (
	STATUS_RUNNING = Status(0) // More instructions may follow.
	STATUS_HALTED  = Status(1) // Program reached its end. Not an error.
	STATUS_FAILED  = Status(2) // Step failed, see the returned error.
)

func (status Status) String() string {
	switch status {
	case STATUS_RUNNING:
		return "running"
	case STATUS_HALTED:
		return "halted"
	case STATUS_FAILED:
		return "failed"
	}
	return fmt.Sprintf("Status(%d)", int(status))
}

// State is a snapshot of the processor, for display.
type State struct {
	Register [REGISTER_COUNT]int // Register file.
	Memory   []int               // Copy of the whole memory.
	Pc       int                 // Program counter.
	Compare  bool                // Compare flag.
}

// Cpu is the simulation context for the processor.
type Cpu struct {
	Verbose bool // Set to enable verbose logging.
	Ticks   int  // Executed instruction counter.

	register [REGISTER_COUNT]int // Register bank.
	memory   []int               // Data region, then program region.
	offset   int                 // Start of the program region.
	length   int                 // Words in the loaded program.
	pc       int                 // Program counter.
	compare  bool                // Set by CMP when dst < src.
}

// NewCpu creates a processor with capacity words of memory, and the
// program region starting at offset.
func NewCpu(capacity int, offset int) (cpu *Cpu, err error) {
	if capacity <= 0 || offset < 0 || offset > capacity {
		err = ErrCapacity
		return
	}

	cpu = &Cpu{
		memory: make([]int, capacity),
		offset: offset,
		pc:     offset,
	}

	return
}

// Preload writes data into the data region, starting at address 0.
func (cpu *Cpu) Preload(data []int) (err error) {
	if len(data) > cpu.offset {
		err = ErrCapacity
		return
	}

	copy(cpu.memory, data)

	return
}

// LoadProgram clears the program region, copies in the words, and resets
// the program counter. Registers and the compare flag are left untouched.
func (cpu *Cpu) LoadProgram(words []uint16) (err error) {
	if len(words) > len(cpu.memory)-cpu.offset {
		err = ErrCapacity
		return
	}

	if cpu.Verbose {
		log.Printf("cpu: load %d words at %d", len(words), cpu.offset)
	}

	region := cpu.memory[cpu.offset:]
	clear(region)
	for n, word := range words {
		region[n] = int(word)
	}

	cpu.length = len(words)
	cpu.pc = cpu.offset
	cpu.Ticks = 0

	return
}

// Pc returns the program counter.
func (cpu *Cpu) Pc() int {
	return cpu.pc
}

// Offset returns the start of the program region.
func (cpu *Cpu) Offset() int {
	return cpu.offset
}

// Len returns the length of the loaded program.
func (cpu *Cpu) Len() int {
	return cpu.length
}

// Compare returns the compare flag.
func (cpu *Cpu) Compare() bool {
	return cpu.compare
}

// Register returns the value of register n.
func (cpu *Cpu) Register(n int) int {
	return cpu.register[n]
}

// State returns a snapshot of the processor.
func (cpu *Cpu) State() State {
	return State{
		Register: cpu.register,
		Memory:   slices.Clone(cpu.memory),
		Pc:       cpu.pc,
		Compare:  cpu.compare,
	}
}

// String returns the current CPU state as a string.
func (cpu *Cpu) String() (text string) {
	var sb strings.Builder

	fmt.Fprintf(&sb, "% 5s: %d\n", "pc", cpu.pc)
	cmp := 0
	if cpu.compare {
		cmp = 1
	}
	fmt.Fprintf(&sb, "% 5s: %d\n", "cmp", cmp)
	for n, val := range cpu.register {
		fmt.Fprintf(&sb, "% 5s: %d\n", fmt.Sprintf("r%d", n), val)
	}

	return sb.String()
}

// Step executes a single fetch-decode-execute cycle.
//
// Reaching the end of the loaded program, or executing NOP, reports
// STATUS_HALTED. On failure the program counter does not advance.
func (cpu *Cpu) Step() (status Status, err error) {
	if cpu.pc < cpu.offset || cpu.pc >= cpu.offset+cpu.length {
		if cpu.Verbose {
			log.Printf("%03d: end of program", cpu.pc)
		}
		status = STATUS_HALTED
		return
	}

	code := Code(uint16(cpu.memory[cpu.pc]))

	status, err = cpu.Execute(code)
	if err != nil {
		return
	}

	cpu.Ticks += 1

	return
}

// Execute executes a single decoded instruction at the current program counter.
func (cpu *Cpu) Execute(code Code) (status Status, err error) {
	defer func() {
		if err != nil {
			status = STATUS_FAILED
			err = errors.Join(ErrOpcode(code), err)
		}
	}()

	if cpu.Verbose {
		log.Printf("%03d: %04x %v", cpu.pc, uint16(code), code)
	}

	if code == CODE_PLACEHOLDER {
		cpu.pc++
		return
	}

	op, src_mode, src, dst_mode, dst := code.Decode()
	if !src_mode.Valid() || !dst_mode.Valid() {
		err = ErrModeInvalid
		return
	}

	next_pc := cpu.pc + 1

	switch op {
	case OP_MOV:
		var value int
		value, err = cpu.getValue(src_mode, src)
		if err != nil {
			return
		}
		err = cpu.setValue(dst_mode, dst, value)
		if err != nil {
			return
		}
	case OP_CMP:
		var a, b int
		a, b, err = cpu.getValues(src_mode, src, dst_mode, dst)
		if err != nil {
			return
		}
		cpu.compare = b-a < 0
	case OP_ADD:
		var a, b int
		a, b, err = cpu.getValues(src_mode, src, dst_mode, dst)
		if err != nil {
			return
		}
		err = cpu.setValue(dst_mode, dst, b+a)
		if err != nil {
			return
		}
	case OP_DEC, OP_JNZ:
		err = ErrNotImplemented
		return
	case OP_JLO:
		if cpu.compare {
			next_pc, err = cpu.jumpTarget(src)
			if err != nil {
				return
			}
		}
	case OP_JMP:
		next_pc, err = cpu.jumpTarget(src)
		if err != nil {
			return
		}
	case OP_NOP:
		status = STATUS_HALTED
	default:
		err = ErrInstructionUnknown
		return
	}

	cpu.pc = next_pc

	return
}

// jumpTarget returns the memory address of program position ip.
// Position Len() is permitted, and ends the program.
func (cpu *Cpu) jumpTarget(ip uint8) (pc int, err error) {
	if int(ip) > cpu.length {
		err = ErrJumpRange
		return
	}

	pc = cpu.offset + int(ip)
	return
}

// address returns the memory address held in register n.
func (cpu *Cpu) address(n uint8) (addr int, err error) {
	addr = cpu.register[n]
	if addr < 0 || addr >= len(cpu.memory) {
		err = ErrAddressRange
		return
	}

	return
}

// getValue resolves an operand to its value.
func (cpu *Cpu) getValue(mode CodeMode, field uint8) (value int, err error) {
	switch mode {
	case MODE_REGISTER:
		value = cpu.register[field]
	case MODE_INDIRECT:
		var addr int
		addr, err = cpu.address(field)
		if err != nil {
			return
		}
		value = cpu.memory[addr]
	case MODE_IMMEDIATE:
		value = int(field)
	default:
		err = ErrModeInvalid
	}

	return
}

// getValues resolves the source and destination operands.
func (cpu *Cpu) getValues(src_mode CodeMode, src uint8, dst_mode CodeMode, dst uint8) (a, b int, err error) {
	a, err = cpu.getValue(src_mode, src)
	if err != nil {
		return
	}
	b, err = cpu.getValue(dst_mode, dst)
	return
}

// setValue writes value through a destination operand.
func (cpu *Cpu) setValue(mode CodeMode, field uint8, value int) (err error) {
	switch mode {
	case MODE_REGISTER:
		cpu.register[field] = value
	case MODE_INDIRECT:
		var addr int
		addr, err = cpu.address(field)
		if err != nil {
			return
		}
		cpu.memory[addr] = value
	case MODE_IMMEDIATE:
		err = ErrDestinationInvalid
	default:
		err = ErrModeInvalid
	}

	return
}
