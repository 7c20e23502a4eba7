package vm

import (
	"bytes"
	"io"
)

// fakeDevice is a scripted keyboard and a captured display.
type fakeDevice struct {
	input    []byte
	output   bytes.Buffer
	flushes  int
	writeErr error
}

func (d *fakeDevice) Ready() bool {
	return len(d.input) > 0
}

func (d *fakeDevice) ReadByte() (byte, error) {
	if len(d.input) == 0 {
		return 0, io.EOF
	}
	c := d.input[0]
	d.input = d.input[1:]
	return c, nil
}

func (d *fakeDevice) WriteByte(c byte) error {
	if d.writeErr != nil {
		return d.writeErr
	}
	return d.output.WriteByte(c)
}

func (d *fakeDevice) Flush() error {
	d.flushes++
	return nil
}

// newTestVM returns a machine with program stored from UserSpaceStart.
func newTestVM(input string, program ...Word) (*VM, *fakeDevice) {
	dev := &fakeDevice{input: []byte(input)}
	vm := NewVM(dev)
	for i, w := range program {
		vm.Memory().Poke(Word(UserSpaceStart+i), w)
	}
	return vm, dev
}
