// Package vm simulates the LC-3 instruction set: a 64K word memory with
// memory mapped console registers, eight registers, condition flags and the
// standard TRAP service routines.
package vm

import (
	"context"

	"github.com/sirupsen/logrus"
)

// VM owns one Memory and one register file. It is not safe for concurrent
// use.
type VM struct {
	memory *Memory
	cpu    cpu
}

// NewVM returns a machine with zeroed memory, PC at UserSpaceStart and the
// running flag set. device services the console traps and mapped registers.
func NewVM(device Device) *VM {
	log := logrus.New()
	log.SetLevel(logrus.InfoLevel)

	mem := NewMemory(device)
	return &VM{
		memory: mem,
		cpu:    newCpu(mem, device, log),
	}
}

// SetLogger replaces the logger. Instructions are traced at debug level.
func (vm *VM) SetLogger(log *logrus.Logger) {
	vm.cpu.log = log
}

// Step executes exactly one instruction. It is a no-op once the machine has
// halted. Every error is fatal: the machine stops running.
func (vm *VM) Step() error {
	return vm.cpu.step()
}

// IsRunning is false after HALT or after Step returned an error.
func (vm *VM) IsRunning() bool {
	return vm.cpu.running
}

// Run steps until the machine halts, an instruction fails or ctx is
// cancelled. Cancellation is only observed between instructions.
func (vm *VM) Run(ctx context.Context) error {
	for vm.IsRunning() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if err := vm.Step(); err != nil {
			return err
		}
	}
	return nil
}

// Stop clears the running flag without executing anything.
func (vm *VM) Stop() {
	vm.cpu.stop()
}

// Registers returns the live register file.
func (vm *VM) Registers() *Registers {
	return &vm.cpu.reg
}

// Memory returns the live memory.
func (vm *VM) Memory() *Memory {
	return vm.memory
}
