// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"flag"
	"log"
	"os"

	"golang.org/x/term"

	"github.com/ezrec/dcpu16/cpu"
	"github.com/ezrec/dcpu16/emulator"
)

func main() {
	var image string
	var steps int
	var until string
	var terminal bool
	var verbose bool

	flag.StringVar(&image, "i", "-", "Program image, little endian words")
	flag.IntVar(&steps, "n", 0, "Step limit, 0 for no limit")
	flag.StringVar(&until, "u", "", "Stop condition expression")
	flag.BoolVar(&terminal, "t", false, "Attach the tape to the terminal, in raw mode")
	flag.BoolVar(&verbose, "v", false, "Verbose mode")

	flag.Parse()

	if flag.NArg() != 0 {
		log.Fatalf("%v: Unknown arguments: %v", os.Args[0], flag.Args())
	}

	emu := emulator.NewEmulator()
	emu.Verbose = verbose
	emu.Limit = steps
	emu.Tape.Output = os.Stdout

	if image == "-" {
		if terminal {
			log.Fatalf("%v: -t needs the image from a file", os.Args[0])
		}
		prog, err := cpu.ReadProgram(os.Stdin)
		if err != nil {
			log.Fatalf("%v: %v", "stdin", err)
		}
		emu.Program = prog
	} else {
		inf, err := os.Open(image)
		if err != nil {
			log.Fatalf("%v: %v", image, err)
		}
		prog, err := cpu.ReadProgram(inf)
		inf.Close()
		if err != nil {
			log.Fatalf("%v: %v", image, err)
		}
		emu.Program = prog
		emu.Tape.Input = os.Stdin
	}

	if len(until) != 0 {
		var err error
		emu.Until, err = emulator.NewUntil(until, emu.Defines())
		if err != nil {
			log.Fatalf("%v: %v", until, err)
		}
	}

	restore := func() {}
	if terminal {
		fd := int(os.Stdin.Fd())
		state, err := term.MakeRaw(fd)
		if err != nil {
			log.Fatalf("%v: %v", os.Args[0], err)
		}
		restore = func() {
			_ = term.Restore(fd, state)
		}
	}
	defer restore()

	err := emu.Reset()
	if err != nil {
		restore()
		log.Fatalf("%v: %v", image, err)
	}

	for done, err := emu.Tick(); !done; done, err = emu.Tick() {
		if err != nil {
			restore()
			log.Fatal(err)
		}
	}

	if verbose {
		log.Printf("%v: %d steps", image, emu.Ticks())
	}
}
