package vm

import "fmt"

// Trap is a TRAP service routine vector.
type Trap Word

const (
	TRAP_GETC  Trap = 0x20 /* get character from keyboard, not echoed onto the terminal */
	TRAP_OUT   Trap = 0x21 /* output a character */
	TRAP_PUTS  Trap = 0x22 /* output a word string */
	TRAP_IN    Trap = 0x23 /* get character from keyboard, echoed onto the terminal */
	TRAP_PUTSP Trap = 0x24 /* output a byte string */
	TRAP_HALT  Trap = 0x25 /* halt the program */
)

const inPrompt = "Enter a character: "

func (t Trap) String() string {
	switch t {
	case TRAP_GETC:
		return "GETC"
	case TRAP_OUT:
		return "OUT"
	case TRAP_PUTS:
		return "PUTS"
	case TRAP_IN:
		return "IN"
	case TRAP_PUTSP:
		return "PUTSP"
	case TRAP_HALT:
		return "HALT"
	}
	return fmt.Sprintf("x%02X", Word(t))
}

// trap runs the service routine for vector. R7 already holds the return
// address.
func (cpu *cpu) trap(pc Word, vector Trap) error {
	switch vector {
	case TRAP_GETC:
		c, err := cpu.readChar()
		if err != nil {
			return err
		}
		cpu.reg.setResult(R0, Word(c))

	case TRAP_OUT:
		if err := cpu.writeChar(byte(cpu.reg.Get(R0))); err != nil {
			return err
		}
		return cpu.flush()

	case TRAP_PUTS:
		for addr := cpu.reg.Get(R0); ; addr++ {
			c, err := cpu.memory.Read(addr)
			if err != nil {
				return err
			}
			if c == 0 {
				break
			}
			if err := cpu.writeChar(byte(c)); err != nil {
				return err
			}
		}
		return cpu.flush()

	case TRAP_IN:
		for i := 0; i < len(inPrompt); i++ {
			if err := cpu.writeChar(inPrompt[i]); err != nil {
				return err
			}
		}
		if err := cpu.flush(); err != nil {
			return err
		}
		c, err := cpu.readChar()
		if err != nil {
			return err
		}
		if err := cpu.writeChar(c); err != nil {
			return err
		}
		cpu.reg.setResult(R0, Word(c))
		return cpu.flush()

	case TRAP_PUTSP:
	putsp:
		for addr := cpu.reg.Get(R0); ; addr++ {
			w, err := cpu.memory.Read(addr)
			if err != nil {
				return err
			}
			for _, c := range [2]byte{byte(w), byte(w >> 8)} {
				if c == 0 {
					break putsp
				}
				if err := cpu.writeChar(c); err != nil {
					return err
				}
			}
		}
		return cpu.flush()

	case TRAP_HALT:
		for _, c := range []byte("HALT\n") {
			if err := cpu.writeChar(c); err != nil {
				return err
			}
		}
		cpu.stop()
		return cpu.flush()

	default:
		return &TrapError{PC: pc, Vector: vector}
	}

	return nil
}

// readChar consumes the key latched by a KBSR poll first, then blocks on
// the device.
func (cpu *cpu) readChar() (byte, error) {
	if c, ok := cpu.memory.takeKey(); ok {
		return c, nil
	}
	if cpu.device == nil {
		return 0, &DeviceError{Op: "read", Err: errNoDevice}
	}
	c, err := cpu.device.ReadByte()
	if err != nil {
		return 0, &DeviceError{Op: "read", Err: err}
	}
	return c, nil
}

func (cpu *cpu) writeChar(c byte) error {
	if cpu.device == nil {
		return nil
	}
	if err := cpu.device.WriteByte(c); err != nil {
		return &DeviceError{Op: "write", Err: err}
	}
	return nil
}

func (cpu *cpu) flush() error {
	if cpu.device == nil {
		return nil
	}
	if err := cpu.device.Flush(); err != nil {
		return &DeviceError{Op: "flush", Err: err}
	}
	return nil
}
