package vm

import "fmt"

// Flag is the condition code register. Exactly one bit is ever set.
type Flag Word

const (
	FLAG_POS Flag = 1 << 0
	FLAG_ZRO Flag = 1 << 1
	FLAG_NEG Flag = 1 << 2
)

func (fl Flag) String() string {
	switch fl {
	case FLAG_POS:
		return "P"
	case FLAG_ZRO:
		return "Z"
	case FLAG_NEG:
		return "N"
	}
	return fmt.Sprintf("?%03b", Word(fl))
}

// general purpose registers
const (
	R0 = 0b000
	R1 = 0b001
	R2 = 0b010
	R3 = 0b011
	R4 = 0b100
	R5 = 0b101
	R6 = 0b110
	R7 = 0b111
)

// Registers is the register file: eight general purpose registers, the
// program counter and the condition flags.
type Registers struct {
	R    [8]Word
	PC   Word
	Cond Flag
}

func newRegisters() Registers {
	return Registers{PC: UserSpaceStart, Cond: FLAG_ZRO}
}

// Get returns general purpose register r. Only the low three bits of r are
// used.
func (reg *Registers) Get(r Word) Word {
	return reg.R[r&0b111]
}

// Set stores value in general purpose register r.
func (reg *Registers) Set(r, value Word) {
	reg.R[r&0b111] = value
}

// UpdateFlags sets the condition flags from the sign of value.
func (reg *Registers) UpdateFlags(value Word) {
	if value == 0 {
		reg.Cond = FLAG_ZRO
	} else if value>>15 != 0 {
		reg.Cond = FLAG_NEG
	} else {
		reg.Cond = FLAG_POS
	}
}

// setResult writes a result register and updates the flags from it.
func (reg *Registers) setResult(r, value Word) {
	reg.Set(r, value)
	reg.UpdateFlags(value)
}

func (reg *Registers) String() string {
	return fmt.Sprintf("R0=%04x R1=%04x R2=%04x R3=%04x R4=%04x R5=%04x R6=%04x R7=%04x PC=%04x COND=%v",
		reg.R[0], reg.R[1], reg.R[2], reg.R[3], reg.R[4], reg.R[5], reg.R[6], reg.R[7], reg.PC, reg.Cond)
}
