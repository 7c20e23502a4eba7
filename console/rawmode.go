package console

import (
	"os"
	"sync"

	"github.com/pkg/term/termios"
	"golang.org/x/sys/unix"
	"golang.org/x/term"
)

// RawMode holds the terminal settings saved by EnableRawMode. Restore puts
// them back and may be called any number of times, from any goroutine.
type RawMode struct {
	fd    uintptr
	saved unix.Termios

	mu     sync.Mutex
	active bool
}

// EnableRawMode turns off line buffering and echo on f so single key
// presses reach the simulator. When f is not a terminal nothing is changed
// and the returned guard is inert.
func EnableRawMode(f *os.File) (*RawMode, error) {
	rm := &RawMode{fd: f.Fd()}
	if !term.IsTerminal(int(rm.fd)) {
		return rm, nil
	}

	if err := termios.Tcgetattr(rm.fd, &rm.saved); err != nil {
		return nil, err
	}

	raw := rm.saved
	raw.Lflag &^= unix.ICANON | unix.ECHO
	if err := termios.Tcsetattr(rm.fd, termios.TCSANOW, &raw); err != nil {
		return nil, err
	}

	rm.active = true
	return rm, nil
}

// Active reports whether the terminal is currently in raw mode.
func (rm *RawMode) Active() bool {
	rm.mu.Lock()
	defer rm.mu.Unlock()
	return rm.active
}

// Restore puts back the settings saved by EnableRawMode.
func (rm *RawMode) Restore() error {
	rm.mu.Lock()
	defer rm.mu.Unlock()

	if !rm.active {
		return nil
	}
	rm.active = false
	return termios.Tcsetattr(rm.fd, termios.TCSANOW, &rm.saved)
}
