// Package console connects the simulator's keyboard and display to the
// host's standard input and output.
package console

import (
	"bufio"
	"io"
	"os"

	"golang.org/x/sys/unix"
)

// Console is a vm.Device reading from a file and writing to a buffered
// writer. Output is held until Flush.
type Console struct {
	in     *os.File
	reader *bufio.Reader
	writer *bufio.Writer
}

func New(in *os.File, out io.Writer) *Console {
	return &Console{
		in:     in,
		reader: bufio.NewReader(in),
		writer: bufio.NewWriter(out),
	}
}

// Ready polls the input without blocking.
func (c *Console) Ready() bool {
	if c.reader.Buffered() > 0 {
		return true
	}

	fds := []unix.PollFd{{Fd: int32(c.in.Fd()), Events: unix.POLLIN}}
	n, err := unix.Poll(fds, 0)
	if err != nil || n == 0 {
		return false
	}
	return fds[0].Revents&unix.POLLIN != 0
}

// ReadByte blocks until one byte of input is available.
func (c *Console) ReadByte() (byte, error) {
	return c.reader.ReadByte()
}

func (c *Console) WriteByte(b byte) error {
	return c.writer.WriteByte(b)
}

func (c *Console) Flush() error {
	return c.writer.Flush()
}
