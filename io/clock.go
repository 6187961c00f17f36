// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package io

import (
	"fmt"
	"iter"
	"maps"

	"github.com/ezrec/dcpu16/cpu"
)

// Clock HWI requests, selected by register A.
const (
	CLOCK_SET_DIVIDER = 0 // B: steps per clock tick, 0 stops the clock.
	CLOCK_GET_TICKS   = 1 // C: clock ticks since the divider was set.
	CLOCK_SET_MESSAGE = 2 // B: interrupt message per tick, 0 disables.
)

const (
	CLOCK_ID           = 0x12d0b402
	CLOCK_VERSION      = 1
	CLOCK_MANUFACTURER = 0x1c6c8b36
)

var _clock_defines = map[string]string{
	"CLOCK_SET_DIVIDER": fmt.Sprintf("%d", CLOCK_SET_DIVIDER),
	"CLOCK_GET_TICKS":   fmt.Sprintf("%d", CLOCK_GET_TICKS),
	"CLOCK_SET_MESSAGE": fmt.Sprintf("%d", CLOCK_SET_MESSAGE),
}

// Clock is the generic clock. It counts executed instructions rather than
// wall time, so a run is repeatable.
type Clock struct {
	Divider uint16 // Steps per clock tick.
	Message uint16 // Interrupt message, raised every clock tick.
	Elapsed uint16 // Clock ticks since the divider was set.

	steps uint16
}

// Defines returns an iter of defines for the clock.
func (clk *Clock) Defines() iter.Seq2[string, string] {
	return maps.All(_clock_defines)
}

// Info returns the clock identity.
func (clk *Clock) Info() cpu.DeviceInfo {
	return cpu.DeviceInfo{
		Id:           CLOCK_ID,
		Version:      CLOCK_VERSION,
		Manufacturer: CLOCK_MANUFACTURER,
	}
}

// Reset stops the clock.
func (clk *Clock) Reset() {
	*clk = Clock{}
}

// Interrupt handles the clock requests.
func (clk *Clock) Interrupt(dcpu *cpu.Cpu) (err error) {
	switch dcpu.Register[cpu.REG_A] {
	case CLOCK_SET_DIVIDER:
		clk.Divider = dcpu.Register[cpu.REG_B]
		clk.Elapsed = 0
		clk.steps = 0
	case CLOCK_GET_TICKS:
		dcpu.Register[cpu.REG_C] = clk.Elapsed
	case CLOCK_SET_MESSAGE:
		clk.Message = dcpu.Register[cpu.REG_B]
	}

	return
}

// Tick advances the clock by one step.
func (clk *Clock) Tick(dcpu *cpu.Cpu) (err error) {
	if clk.Divider == 0 {
		return
	}

	clk.steps++
	if clk.steps < clk.Divider {
		return
	}

	clk.steps = 0
	clk.Elapsed++

	if clk.Message != 0 {
		err = dcpu.Interrupt(clk.Message)
	}

	return
}
