package vm

import "fmt"

// Opcode is the 4-bit operation selector held in bits 15-12.
type Opcode Word

// opcodes
const (
	OP_BR Opcode = iota
	OP_ADD
	OP_LD
	OP_ST
	OP_JSR
	OP_AND
	OP_LDR
	OP_STR
	OP_RTI
	OP_NOT
	OP_LDI
	OP_STI
	OP_JMP
	OP_RES
	OP_LEA
	OP_TRAP
)

var opcodeNames = [...]string{
	OP_BR:   "BR",
	OP_ADD:  "ADD",
	OP_LD:   "LD",
	OP_ST:   "ST",
	OP_JSR:  "JSR",
	OP_AND:  "AND",
	OP_LDR:  "LDR",
	OP_STR:  "STR",
	OP_RTI:  "RTI",
	OP_NOT:  "NOT",
	OP_LDI:  "LDI",
	OP_STI:  "STI",
	OP_JMP:  "JMP",
	OP_RES:  "RES",
	OP_LEA:  "LEA",
	OP_TRAP: "TRAP",
}

func (op Opcode) String() string {
	if int(op) < len(opcodeNames) {
		return opcodeNames[op]
	}
	return fmt.Sprintf("OP(%d)", Word(op))
}

// Instruction is a decoded instruction word. Every field is extracted for
// every word; which fields are meaningful depends on Op.
type Instruction struct {
	Raw Word
	Op  Opcode

	DR  Word // bits 11-9: destination, or source for ST/STI/STR
	SR1 Word // bits 8-6: first source, or base register
	SR2 Word // bits 2-0

	Immediate bool // bit 5 (ADD, AND)
	Imm5      Word // bits 4-0, sign extended

	NZP      Word // bits 11-9 of BR
	Long     bool // bit 11 of JSR: PC relative rather than JSRR
	Offset6  Word // bits 5-0, sign extended
	Offset9  Word // bits 8-0, sign extended
	Offset11 Word // bits 10-0, sign extended

	Vector Trap // bits 7-0
}

// Decode splits an instruction word into its fields. It never fails: the
// reserved opcodes are only rejected when executed.
func Decode(instruction Word) Instruction {
	return Instruction{
		Raw:       instruction,
		Op:        Opcode(instruction >> 12),
		DR:        (instruction >> 9) & 0b111,
		SR1:       (instruction >> 6) & 0b111,
		SR2:       instruction & 0b111,
		Immediate: (instruction>>5)&0b1 == 1,
		Imm5:      sext(instruction, 5),
		NZP:       (instruction >> 9) & 0b111,
		Long:      (instruction>>11)&0b1 == 1,
		Offset6:   sext(instruction, 6),
		Offset9:   sext(instruction, 9),
		Offset11:  sext(instruction, 11),
		Vector:    Trap(instruction & 0xFF),
	}
}
