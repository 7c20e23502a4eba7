package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/sirupsen/logrus"

	"github.com/aryanA101a/lc3-sim/console"
	"github.com/aryanA101a/lc3-sim/vm"
)

func main() {
	var verbose bool
	var startPC string

	flag.BoolVar(&verbose, "v", false, "Trace every instruction to stderr")
	flag.StringVar(&startPC, "pc", "0x3000", "Initial program counter (hex)")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %v [-v] [-pc addr] image-file ...\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() < 1 {
		flag.Usage()
		os.Exit(2)
	}

	log := logrus.New()
	log.SetOutput(os.Stderr)
	if verbose {
		log.SetLevel(logrus.DebugLevel)
	}

	pc, err := strconv.ParseUint(strings.TrimPrefix(strings.ToLower(startPC), "0x"), 16, 16)
	if err != nil {
		log.Fatalf("-pc %v: %v", startPC, err)
	}

	cons := console.New(os.Stdin, os.Stdout)
	machine := vm.NewVM(cons)
	machine.SetLogger(log)
	machine.Registers().PC = vm.Word(pc)

	for _, path := range flag.Args() {
		if err := loadImage(machine, path); err != nil {
			log.Fatalf("%v: %v", path, err)
		}
	}

	os.Exit(run(machine, cons, log))
}

func loadImage(machine *vm.VM, path string) error {
	inf, err := os.Open(path)
	if err != nil {
		return err
	}
	defer inf.Close()

	return machine.LoadImage(inf)
}

// run executes the loaded program with the terminal in raw mode and returns
// the process exit status. The terminal is restored before anything is
// reported.
func run(machine *vm.VM, cons *console.Console, log *logrus.Logger) int {
	raw, err := console.EnableRawMode(os.Stdin)
	if err != nil {
		log.Errorf("raw mode: %v", err)
		return 1
	}
	defer raw.Restore()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// the engine may be blocked in GETC, so it runs apart from the signal
	// wait and is abandoned on interrupt
	done := make(chan error, 1)
	go func() {
		done <- machine.Run(ctx)
	}()

	select {
	case err = <-done:
		warnOnError(log, "flush output", cons.Flush())
	case <-ctx.Done():
		err = ctx.Err()
	}

	warnOnError(log, "restore terminal", raw.Restore())

	switch {
	case err == nil:
		return 0
	case errors.Is(err, context.Canceled):
		fmt.Fprintln(os.Stderr)
		return 130
	}

	log.WithField("registers", machine.Registers().String()).Error(err)
	return 1
}

// warnOnError reports a failed cleanup step without changing the exit
// status.
func warnOnError(log *logrus.Logger, what string, err error) {
	if err != nil {
		log.Warnf("%v: %v", what, err)
	}
}
