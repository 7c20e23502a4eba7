package vm

import (
	"errors"

	"github.com/aryanA101a/lc3-sim/translate"
)

var f = translate.From

var (
	// Image loader errors
	ErrEmptyImage     = errors.New(f("image is empty"))
	ErrTruncatedImage = errors.New(f("image ends in the middle of a word"))
	ErrImageOverflow  = errors.New(f("image runs past the end of memory"))

	// Execution errors
	ErrBadOpcode = errors.New(f("bad opcode"))
	ErrBadTrap   = errors.New(f("bad trap vector"))
	ErrDevice    = errors.New(f("console device"))
)

// LoadError is returned when an object file cannot be loaded. Nothing has
// been written to memory when it is returned.
type LoadError struct {
	Origin    Word
	HasOrigin bool // false when the image is too short to hold an origin
	Err       error
}

func (err *LoadError) Error() string {
	if !err.HasOrigin {
		return f("load image: %v", err.Err)
	}
	return f("load image at 0x%04x: %v", uint16(err.Origin), err.Err)
}

func (err *LoadError) Unwrap() error {
	return err.Err
}

// OpcodeError reports a reserved or unimplemented opcode.
type OpcodeError struct {
	PC    Word // address of the failing instruction
	Instr Word
}

func (err *OpcodeError) Error() string {
	return f("%v %v (0x%04x) at 0x%04x", ErrBadOpcode, Opcode(err.Instr>>12), uint16(err.Instr), uint16(err.PC))
}

func (err *OpcodeError) Unwrap() error {
	return ErrBadOpcode
}

// TrapError reports a TRAP to a vector with no service routine.
type TrapError struct {
	PC     Word // address of the TRAP instruction
	Vector Trap
}

func (err *TrapError) Error() string {
	return f("%v 0x%02x at 0x%04x", ErrBadTrap, uint16(err.Vector), uint16(err.PC))
}

func (err *TrapError) Unwrap() error {
	return ErrBadTrap
}

// DeviceError wraps a console failure. It matches both ErrDevice and the
// underlying error.
type DeviceError struct {
	Op  string
	Err error
}

func (err *DeviceError) Error() string {
	return f("%v %v: %v", ErrDevice, err.Op, err.Err)
}

func (err *DeviceError) Unwrap() []error {
	return []error{ErrDevice, err.Err}
}

var errNoDevice = errors.New(f("no input device attached"))
