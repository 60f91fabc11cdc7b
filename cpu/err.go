package cpu

import (
	"errors"

	"github.com/ezrec/msp16/translate"
)

var f = translate.From

var (
	// Cpu errors
	ErrNotImplemented     = errors.New(f("opcode not implemented"))
	ErrModeInvalid        = errors.New(f("addressing mode invalid"))
	ErrDestinationInvalid = errors.New(f("destination not writable"))
	ErrAddressRange       = errors.New(f("address out of range"))
	ErrJumpRange          = errors.New(f("jump out of range"))
	ErrCapacity           = errors.New(f("capacity exceeded"))

	// Shared by the assembler (unknown mnemonic) and the cpu (unknown opcode).
	ErrInstructionUnknown = errors.New(f("instruction unknown"))

	// Assembler errors
	ErrOperandUnknown       = errors.New(f("operand unknown"))
	ErrRegisterRange        = errors.New(f("register out of range"))
	ErrFieldOverflow        = errors.New(f("operand field overflow"))
	ErrDestinationImmediate = errors.New(f("immediate destination"))
	ErrOperandExtra         = errors.New(f("excessive operands"))
	ErrLabelDuplicate       = errors.New(f("label duplicated"))
	ErrLabelInvalid         = errors.New(f("label invalid"))
	ErrEquateSyntax         = errors.New(f(".equ syntax"))
	ErrEquateDuplicate      = errors.New(f(".equ duplicated"))
)

// ErrInstruction is an unknown mnemonic.
type ErrInstruction string

func (err ErrInstruction) Error() string {
	return f("unknown instruction %v", string(err))
}

func (err ErrInstruction) Is(target error) bool {
	return target == ErrInstructionUnknown
}

// ErrOperand is an operand matching none of the operand forms.
type ErrOperand string

func (err ErrOperand) Error() string {
	return f("unknown operand: %v", string(err))
}

func (err ErrOperand) Is(target error) bool {
	return target == ErrOperandUnknown
}

// ErrRegister is a register operand outside R0-R15.
type ErrRegister string

func (err ErrRegister) Error() string {
	return f("unknown register: %v", string(err))
}

func (err ErrRegister) Is(target error) bool {
	return target == ErrRegisterRange
}

// ErrOverflow is a value too wide for its instruction field.
type ErrOverflow struct {
	Value int
	Bits  int
}

func (err ErrOverflow) Error() string {
	return f("value %v does not fit %v bits", err.Value, err.Bits)
}

func (err ErrOverflow) Is(target error) bool {
	return target == ErrFieldOverflow
}

type ErrLabelMissing string

func (el ErrLabelMissing) Error() string {
	return f("label %v missing", string(el))
}

func (el ErrLabelMissing) Is(target error) bool {
	return target == ErrOperandUnknown
}

// ErrOpcode tags a runtime failure with the offending instruction word.
type ErrOpcode Code

func (eo ErrOpcode) Error() string {
	return f("bad opcode 0x%04x %v", uint16(eo), Code(eo).String())
}

func (eo ErrOpcode) Is(err error) (ok bool) {
	_, ok = err.(ErrOpcode)
	return
}

type ErrSyntax struct {
	LineNo int
	Line   string
	Err    error
}

func (err ErrSyntax) Error() string {
	return f("line %d '%v' %v", err.LineNo, err.Line, err.Err)
}

func (err ErrSyntax) Unwrap() error {
	return err.Err
}

type ErrParseNumber string

func (err ErrParseNumber) Error() string {
	return f("'%v' is not a number", string(err))
}

type ErrParseExpression string

func (err ErrParseExpression) Error() string {
	return f("$(%v) is not a valid expression", string(err))
}
