package vm

const MemorySize = 1 << 16

const (
	TrapVectorTableStart       = 0x0000
	InterruptVectorTableStart  = 0x0100
	SystemSpaceStart           = 0x0200
	UserSpaceStart             = 0x3000
	MemoryMappedRegistersStart = 0xFE00
)

// memory mapped register addresses
const (
	KBSR = MemoryMappedRegistersStart          /* keyboard status register */
	KBDR = MemoryMappedRegistersStart + 0x0002 /* keyboard data register */
	DSR  = MemoryMappedRegistersStart + 0x0004 /* display status register */
	DDR  = MemoryMappedRegistersStart + 0x0006 /* display data register */
)

const statusReady Word = 0x8000

// Device is the console behind the trap routines and the mapped keyboard
// and display registers.
type Device interface {
	// Ready reports whether ReadByte would return without blocking. It
	// must never block.
	Ready() bool
	// ReadByte blocks until a character is available.
	ReadByte() (byte, error)
	WriteByte(c byte) error
	Flush() error
}

// Memory is the 64K word address space. Reads and writes of the mapped
// device registers are routed to the console device; every other address is
// plain storage.
type Memory struct {
	ram    [MemorySize]Word
	device Device
}

// NewMemory returns zeroed memory attached to device. A nil device behaves
// as a keyboard that never has input and a display that discards output.
func NewMemory(device Device) *Memory {
	return &Memory{device: device}
}

// Read returns the word at addr. Reading KBSR, or KBDR with nothing latched,
// polls the keyboard without blocking.
func (mem *Memory) Read(addr Word) (Word, error) {
	switch addr {
	case KBSR:
		if err := mem.pollKeyboard(); err != nil {
			return 0, err
		}
	case KBDR:
		if err := mem.pollKeyboard(); err != nil {
			return 0, err
		}
		mem.ram[KBSR] &^= statusReady
	case DSR:
		return statusReady, nil
	}
	return mem.ram[addr], nil
}

// Write stores value at addr. Writes to the keyboard registers and DSR are
// dropped; a write to DDR prints its low byte.
func (mem *Memory) Write(addr, value Word) error {
	switch addr {
	case KBSR, KBDR, DSR:
		return nil
	case DDR:
		mem.ram[addr] = value
		return mem.display(byte(value))
	}
	mem.ram[addr] = value
	return nil
}

// Peek returns the stored word at addr without any device side effect.
func (mem *Memory) Peek(addr Word) Word {
	return mem.ram[addr]
}

// Poke stores value at addr without any device side effect.
func (mem *Memory) Poke(addr, value Word) {
	mem.ram[addr] = value
}

// pollKeyboard latches a pending key into KBDR and raises the KBSR ready
// bit. A key already latched is left for the program to consume.
func (mem *Memory) pollKeyboard() error {
	if mem.ram[KBSR]&statusReady != 0 || mem.device == nil || !mem.device.Ready() {
		return nil
	}
	c, err := mem.device.ReadByte()
	if err != nil {
		return &DeviceError{Op: "read", Err: err}
	}
	mem.ram[KBDR] = Word(c)
	mem.ram[KBSR] |= statusReady
	return nil
}

// takeKey consumes a key latched in KBDR, clearing the ready bit.
func (mem *Memory) takeKey() (byte, bool) {
	if mem.ram[KBSR]&statusReady == 0 {
		return 0, false
	}
	mem.ram[KBSR] &^= statusReady
	return byte(mem.ram[KBDR]), true
}

func (mem *Memory) display(c byte) error {
	if mem.device == nil {
		return nil
	}
	if err := mem.device.WriteByte(c); err != nil {
		return &DeviceError{Op: "write", Err: err}
	}
	if err := mem.device.Flush(); err != nil {
		return &DeviceError{Op: "flush", Err: err}
	}
	return nil
}
