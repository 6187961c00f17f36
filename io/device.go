// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package io provides the hardware bus and devices for the DCPU-16 emulator.
// It includes the device Bus reached by HWN, HWQ and HWI, a step counting
// Clock, and a byte serial Tape.
package io

import (
	"github.com/ezrec/dcpu16/cpu"
)

// Device defines the interface for all hardware attached to the Bus.
type Device interface {
	// Info returns the identity reported by HWQ.
	Info() cpu.DeviceInfo
	// Interrupt handles an HWI sent to the device.
	// The device may read and modify the cpu registers and memory.
	Interrupt(dcpu *cpu.Cpu) error
	// Reset returns the device to its power-on state.
	Reset()
}

// Ticker is implemented by devices that act on their own, once per
// executed instruction.
type Ticker interface {
	Tick(dcpu *cpu.Cpu) error
}
