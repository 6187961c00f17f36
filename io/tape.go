package io

import (
	"fmt"
	"io"
	"iter"
	"maps"

	"github.com/ezrec/dcpu16/cpu"
)

// Tape HWI requests, selected by register A.
const (
	TAPE_WRITE      = 0 // Writes the low byte of B.
	TAPE_READ       = 1 // C: the next input byte, or TAPE_EOF.
	TAPE_SET_NOTIFY = 2 // B: interrupt message when input is ready, 0 disables.
)

const (
	TAPE_EOF = 0xffff

	TAPE_ID           = 0x74617065
	TAPE_VERSION      = 1
	TAPE_MANUFACTURER = 0x657a7265
)

var _tape_defines = map[string]string{
	"TAPE_WRITE":      fmt.Sprintf("%d", TAPE_WRITE),
	"TAPE_READ":       fmt.Sprintf("%d", TAPE_READ),
	"TAPE_SET_NOTIFY": fmt.Sprintf("%d", TAPE_SET_NOTIFY),
	"TAPE_EOF":        fmt.Sprintf("0x%x", TAPE_EOF),
}

// Tape provides sequential byte I/O.
// It wraps an io.Reader for input and io.Writer for output.
type Tape struct {
	Input  io.Reader
	Output io.Writer

	Notify uint16 // Interrupt message when input is ready.

	input      chan byte
	hasPending bool
	pending    byte
	eof        bool
}

// Defines returns an iter of defines for the tape.
func (tc *Tape) Defines() iter.Seq2[string, string] {
	return maps.All(_tape_defines)
}

// Info returns the tape identity.
func (tc *Tape) Info() cpu.DeviceInfo {
	return cpu.DeviceInfo{
		Id:           TAPE_ID,
		Version:      TAPE_VERSION,
		Manufacturer: TAPE_MANUFACTURER,
	}
}

// Reset clears the notification message. Rewind is not possible on a tape,
// so buffered input is kept.
func (tc *Tape) Reset() {
	tc.Notify = 0
}

// receive starts the input pump on first use.
// The pump owns Input from then on.
func (tc *Tape) receive() chan byte {
	if tc.input == nil {
		tc.input = make(chan byte)
		go func(r io.Reader, input chan byte) {
			defer close(input)
			if r == nil {
				return
			}
			var one [1]byte
			for {
				_, err := io.ReadFull(r, one[:])
				if err != nil {
					return
				}
				input <- one[0]
			}
		}(tc.Input, tc.input)
	}

	return tc.input
}

// read returns the next input byte, waiting for it if needed.
func (tc *Tape) read() (value uint16) {
	if tc.hasPending {
		tc.hasPending = false
		return uint16(tc.pending)
	}

	if tc.eof {
		return TAPE_EOF
	}

	data, ok := <-tc.receive()
	if !ok {
		tc.eof = true
		return TAPE_EOF
	}

	return uint16(data)
}

// Interrupt handles the tape requests.
func (tc *Tape) Interrupt(dcpu *cpu.Cpu) (err error) {
	switch dcpu.Register[cpu.REG_A] {
	case TAPE_WRITE:
		if tc.Output == nil {
			err = ErrTapeOutput
			return
		}
		_, err = tc.Output.Write([]byte{byte(dcpu.Register[cpu.REG_B])})
	case TAPE_READ:
		dcpu.Register[cpu.REG_C] = tc.read()
	case TAPE_SET_NOTIFY:
		tc.Notify = dcpu.Register[cpu.REG_B]
	}

	return
}

// Tick raises the notification interrupt once per byte that arrives,
// without waiting for input.
func (tc *Tape) Tick(dcpu *cpu.Cpu) (err error) {
	if tc.Notify == 0 || tc.hasPending || tc.eof {
		return
	}

	select {
	case data, ok := <-tc.receive():
		if !ok {
			tc.eof = true
			return
		}
		tc.pending = data
		tc.hasPending = true
		err = dcpu.Interrupt(tc.Notify)
	default:
	}

	return
}
