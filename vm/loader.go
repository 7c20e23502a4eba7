package vm

import (
	"encoding/binary"
	"io"

	"github.com/sirupsen/logrus"
)

// LoadImage reads an object file: a big endian origin word followed by the
// big endian program words, which are stored contiguously from origin. The
// image is validated in full before memory is touched.
func (vm *VM) LoadImage(r io.Reader) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return &LoadError{Err: err}
	}

	if len(data) == 0 {
		return &LoadError{Err: ErrEmptyImage}
	}
	if len(data) < 2 {
		return &LoadError{Err: ErrTruncatedImage}
	}

	origin := Word(binary.BigEndian.Uint16(data))
	if len(data)%2 != 0 {
		return &LoadError{Origin: origin, HasOrigin: true, Err: ErrTruncatedImage}
	}
	words := (len(data) - 2) / 2
	if int(origin)+words > MemorySize {
		return &LoadError{Origin: origin, HasOrigin: true, Err: ErrImageOverflow}
	}

	for i := 0; i < words; i++ {
		vm.memory.ram[int(origin)+i] = Word(binary.BigEndian.Uint16(data[2+2*i:]))
	}

	if vm.cpu.log != nil {
		vm.cpu.log.WithFields(logrus.Fields{
			"origin": uint16(origin),
			"words":  words,
		}).Debug("image loaded")
	}

	return nil
}
