// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package emulator

import (
	"fmt"
	"iter"
	"log"
	"maps"

	"github.com/ezrec/dcpu16/cpu"
	"github.com/ezrec/dcpu16/internal"
	"github.com/ezrec/dcpu16/io"
)

const (
	CLOCK_INDEX = 0 // Bus index of the clock.
	TAPE_INDEX  = 1 // Bus index of the tape.
)

var _emulator_defines = map[string]string{
	"CLOCK_INDEX": fmt.Sprintf("%v", CLOCK_INDEX),
	"TAPE_INDEX":  fmt.Sprintf("%v", TAPE_INDEX),
}

// Emulator state. CPU + hardware bus + devices.
type Emulator struct {
	Verbose  bool         // If set, enables verbose logging.
	*cpu.Cpu              // Reference to the CPU simulation.
	Program  *cpu.Program // Reference to the currently loaded program image.

	Bus   io.Bus   // Hardware bus, as seen by the CPU.
	Clock io.Clock // Clock device.
	Tape  io.Tape  // Tape device.

	Limit int    // Step limit, 0 for no limit.
	Until *Until // Stop condition, may be nil.
}

// NewEmulator creates a new emulator.
func NewEmulator() (emu *Emulator) {
	emu = &Emulator{
		Cpu:     cpu.NewCpu(),
		Program: &cpu.Program{},
	}

	emu.Bus.Attach(&emu.Clock)
	emu.Bus.Attach(&emu.Tape)

	emu.Cpu.Hardware = &emu.Bus

	return
}

// Defines returns an iterator over all of the defines
func (emu *Emulator) Defines() iter.Seq2[string, string] {
	return internal.IterSeq2Concat(maps.All(_emulator_defines),
		emu.Cpu.Defines(),
		emu.Clock.Defines(),
		emu.Tape.Defines(),
	)
}

// Reset the machine and reload the program image.
func (emu *Emulator) Reset() (err error) {
	emu.Cpu.Verbose = emu.Verbose

	emu.Bus.Reset()

	return emu.Cpu.LoadProgram(emu.Program)
}

// Ticks returns the total steps since a reset.
func (emu *Emulator) Ticks() int {
	return emu.Cpu.Ticks
}

// Code returns the instruction at PC.
func (emu *Emulator) Code() cpu.Code {
	return emu.Cpu.FetchCode()
}

// waiting is true if a device may still raise an interrupt that the
// CPU would service.
func (emu *Emulator) waiting() bool {
	if emu.Cpu.Ia == 0 {
		return false
	}

	if emu.Clock.Divider != 0 && emu.Clock.Message != 0 {
		return true
	}

	return emu.Tape.Notify != 0
}

// Tick performs a single step of the emulator.
// It is done when the stop condition holds, the step limit is reached,
// or the program jumps to itself with nothing left to wake it.
func (emu *Emulator) Tick() (done bool, err error) {
	// Set CPU verbosity
	emu.Cpu.Verbose = emu.Verbose

	pc := emu.Cpu.Pc
	defer func() {
		if err != nil {
			err = &ErrRuntime{Pc: pc, Err: err}
		}
	}()

	if emu.Limit > 0 && emu.Cpu.Ticks >= emu.Limit {
		done = true
		return
	}

	register := emu.Cpu.Register
	sp := emu.Cpu.Sp
	ex := emu.Cpu.Ex

	err = emu.Cpu.Step()
	if err != nil {
		return
	}

	err = emu.Bus.Tick(emu.Cpu)
	if err != nil {
		return
	}

	if emu.Until != nil {
		done, err = emu.Until.Eval(emu.Cpu)
		if err != nil || done {
			return
		}
	}

	if emu.Limit > 0 && emu.Cpu.Ticks >= emu.Limit {
		if emu.Verbose {
			log.Printf("emulator: step limit %d", emu.Limit)
		}
		done = true
		return
	}

	idle := emu.Cpu.Pc == pc &&
		emu.Cpu.Register == register &&
		emu.Cpu.Sp == sp &&
		emu.Cpu.Ex == ex &&
		emu.Cpu.Queue.Empty() &&
		!emu.waiting()
	if idle {
		if emu.Verbose {
			log.Printf("emulator: halted at 0x%04x", pc)
		}
		done = true
	}

	return
}
