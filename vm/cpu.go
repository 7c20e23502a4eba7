package vm

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

type cpu struct {
	running bool
	memory  *Memory
	reg     Registers
	device  Device
	log     *logrus.Logger
}

func newCpu(memory *Memory, device Device, log *logrus.Logger) cpu {
	return cpu{
		running: true,
		memory:  memory,
		reg:     newRegisters(),
		device:  device,
		log:     log,
	}
}

func (cpu *cpu) stop() {
	cpu.running = false
}

// step fetches, decodes and executes one instruction. Any error stops the
// cpu.
func (cpu *cpu) step() error {
	if !cpu.running {
		return nil
	}

	pc := cpu.reg.PC
	instruction, err := cpu.memory.Read(pc)
	if err != nil {
		cpu.stop()
		return err
	}
	cpu.reg.PC++

	in := Decode(instruction)
	cpu.trace(pc, in)

	if err := cpu.execute(pc, in); err != nil {
		cpu.stop()
		return err
	}
	return nil
}

func (cpu *cpu) execute(pc Word, in Instruction) error {
	reg := &cpu.reg

	switch in.Op {
	case OP_ADD:
		if in.Immediate {
			reg.setResult(in.DR, reg.Get(in.SR1)+in.Imm5)
		} else {
			reg.setResult(in.DR, reg.Get(in.SR1)+reg.Get(in.SR2))
		}

	case OP_AND:
		if in.Immediate {
			reg.setResult(in.DR, reg.Get(in.SR1)&in.Imm5)
		} else {
			reg.setResult(in.DR, reg.Get(in.SR1)&reg.Get(in.SR2))
		}

	case OP_NOT:
		reg.setResult(in.DR, ^reg.Get(in.SR1))

	case OP_BR:
		if in.NZP&Word(reg.Cond) != 0 {
			reg.PC += in.Offset9
		}

	case OP_JMP:
		reg.PC = reg.Get(in.SR1)

	case OP_JSR:
		// the base register is read before R7 is written so JSRR R7 jumps
		// to the old R7
		target := reg.Get(in.SR1)
		if in.Long {
			target = reg.PC + in.Offset11
		}
		reg.Set(R7, reg.PC)
		reg.PC = target

	case OP_LD:
		return cpu.load(in.DR, reg.PC+in.Offset9)

	case OP_LDI:
		addr, err := cpu.memory.Read(reg.PC + in.Offset9)
		if err != nil {
			return err
		}
		return cpu.load(in.DR, addr)

	case OP_LDR:
		return cpu.load(in.DR, reg.Get(in.SR1)+in.Offset6)

	case OP_LEA:
		reg.setResult(in.DR, reg.PC+in.Offset9)

	case OP_ST:
		return cpu.memory.Write(reg.PC+in.Offset9, reg.Get(in.DR))

	case OP_STI:
		addr, err := cpu.memory.Read(reg.PC + in.Offset9)
		if err != nil {
			return err
		}
		return cpu.memory.Write(addr, reg.Get(in.DR))

	case OP_STR:
		return cpu.memory.Write(reg.Get(in.SR1)+in.Offset6, reg.Get(in.DR))

	case OP_TRAP:
		reg.Set(R7, reg.PC)
		return cpu.trap(pc, in.Vector)

	case OP_RTI, OP_RES:
		return &OpcodeError{PC: pc, Instr: in.Raw}
	}

	return nil
}

func (cpu *cpu) load(dr, addr Word) error {
	value, err := cpu.memory.Read(addr)
	if err != nil {
		return err
	}
	cpu.reg.setResult(dr, value)
	return nil
}

func (cpu *cpu) trace(pc Word, in Instruction) {
	if cpu.log == nil || !cpu.log.IsLevelEnabled(logrus.DebugLevel) {
		return
	}

	fields := logrus.Fields{
		"pc":    fmt.Sprintf("0x%04x", uint16(pc)),
		"instr": fmt.Sprintf("0x%04x", uint16(in.Raw)),
		"op":    in.Op.String(),
	}

	switch in.Op {
	case OP_ADD, OP_AND:
		fields["dr"] = in.DR
		fields["sr1"] = in.SR1
		if in.Immediate {
			fields["imm5"] = int16(in.Imm5)
		} else {
			fields["sr2"] = in.SR2
		}
	case OP_NOT:
		fields["dr"] = in.DR
		fields["sr"] = in.SR1
	case OP_BR:
		fields["nzp"] = fmt.Sprintf("%03b", uint16(in.NZP))
		fields["pcoffset9"] = int16(in.Offset9)
	case OP_JMP:
		fields["br"] = in.SR1
	case OP_JSR:
		if in.Long {
			fields["pcoffset11"] = int16(in.Offset11)
		} else {
			fields["br"] = in.SR1
		}
	case OP_LD, OP_LDI, OP_LEA, OP_ST, OP_STI:
		fields["r"] = in.DR
		fields["pcoffset9"] = int16(in.Offset9)
	case OP_LDR, OP_STR:
		fields["r"] = in.DR
		fields["br"] = in.SR1
		fields["offset6"] = int16(in.Offset6)
	case OP_TRAP:
		fields["trap"] = in.Vector.String()
	}

	cpu.log.WithFields(fields).Debug("step")
}
