package cpu

import (
	"errors"

	"github.com/ezrec/dcpu16/translate"
)

var f = translate.From

var (
	// Cpu faults
	ErrInvalidOpcode      = errors.New(f("invalid opcode"))
	ErrInvalidWriteTarget = errors.New(f("invalid write target"))
	ErrInterruptOverflow  = errors.New(f("interrupt queue overflow"))
	ErrHalted             = errors.New(f("halted"))

	// Instruction stream errors
	ErrOpcodeImm = errors.New(f("imm"))

	// Program image errors
	ErrProgramSize = errors.New(f("program exceeds memory"))
	ErrProgramOdd  = errors.New(f("program has a trailing byte"))
)

// ErrInstruction is a fault raised while executing the instruction at Pc.
type ErrInstruction struct {
	Pc   uint16
	Code Code
	Err  error
}

func (err *ErrInstruction) Error() string {
	return f("pc 0x%04x: %v: %v", err.Pc, err.Code.String(), err.Err)
}

func (err *ErrInstruction) Unwrap() error {
	return err.Err
}

// ErrHardware is an error returned by the hardware bus for a device.
type ErrHardware struct {
	Index uint16
	Err   error
}

func (err *ErrHardware) Error() string {
	return f("hardware %d: %v", err.Index, err.Err)
}

func (err *ErrHardware) Unwrap() error {
	return err.Err
}
