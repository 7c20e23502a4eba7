package vm

import (
	"errors"
	"testing"
)

func FuzzStep(f *testing.F) {
	for op := range 16 {
		f.Add(uint16(op<<12), uint16(0), uint16(0x1234), "a")
		f.Add(uint16(op<<12|0x0FFF), uint16(0xFFFF), uint16(0x8000), "")
	}
	f.Add(uint16(0xF025), uint16(0), uint16(0), "")

	f.Fuzz(func(t *testing.T, instr uint16, r uint16, pc uint16, input string) {
		if pc >= MemoryMappedRegistersStart && pc <= DDR {
			t.Skip("instruction fetch from a device register")
		}

		in := Decode(Word(instr))
		if in.Raw != Word(instr) || in.Op != Opcode(instr>>12) {
			t.Fatalf("decode 0x%04x: %+v", instr, in)
		}

		vm, _ := newTestVM(input)
		for i := range vm.Registers().R {
			vm.Registers().R[i] = Word(r) + Word(i)
		}
		vm.Registers().PC = Word(pc)
		vm.Memory().Poke(Word(pc), Word(instr))

		err := vm.Step()
		switch {
		case err == nil:
			cond := vm.Registers().Cond
			if cond != FLAG_NEG && cond != FLAG_ZRO && cond != FLAG_POS {
				t.Fatalf("0x%04x: condition flags %03b", instr, Word(cond))
			}
		case errors.Is(err, ErrBadOpcode):
			if in.Op != OP_RTI && in.Op != OP_RES {
				t.Fatalf("0x%04x: %v", instr, err)
			}
		case errors.Is(err, ErrBadTrap), errors.Is(err, ErrDevice):
			if in.Op != OP_TRAP && in.Op != OP_LDI && in.Op != OP_LD && in.Op != OP_LDR && in.Op != OP_STI {
				t.Fatalf("0x%04x: %v", instr, err)
			}
		default:
			t.Fatalf("0x%04x: unexpected error %v", instr, err)
		}
	})
}
