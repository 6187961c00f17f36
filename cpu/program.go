// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"encoding/binary"
	"io"
	"iter"
)

// Program is a memory image, loaded from address zero.
type Program struct {
	Words []uint16
}

// ReadProgram reads an image of little-endian 16-bit words.
func ReadProgram(r io.Reader) (prog *Program, err error) {
	// One extra byte detects oversized images.
	data, err := io.ReadAll(io.LimitReader(r, MEMORY_SIZE*2+1))
	if err != nil {
		return
	}

	if len(data) > MEMORY_SIZE*2 {
		err = ErrProgramSize
		return
	}

	if len(data)%2 != 0 {
		err = ErrProgramOdd
		return
	}

	prog = &Program{
		Words: make([]uint16, len(data)/2),
	}
	for n := range prog.Words {
		prog.Words[n] = binary.LittleEndian.Uint16(data[n*2:])
	}

	return
}

// Binary returns the image as little-endian bytes.
func (prog *Program) Binary() (bins []byte) {
	bins = make([]byte, 0, len(prog.Words)*2)
	for _, word := range prog.Words {
		bins = binary.LittleEndian.AppendUint16(bins, word)
	}

	return
}

// Codes walks the image as a linear instruction stream.
func (prog *Program) Codes() iter.Seq2[uint16, Code] {
	return func(yield func(addr uint16, code Code) bool) {
		for n := 0; n < len(prog.Words); {
			code := Code{Word: prog.Words[n]}
			for m := range code.ImmediateNeed() {
				if n+1+m < len(prog.Words) {
					code.Immediates = append(code.Immediates, prog.Words[n+1+m])
				}
			}
			if !yield(uint16(n), code) {
				return
			}
			n += int(code.Length())
		}
	}
}

// SetProgram resets the CPU and copies words into the start of memory.
// The rest of memory is zero, and PC is zero.
func (cpu *Cpu) SetProgram(words []uint16) (err error) {
	if len(words) > MEMORY_SIZE {
		err = ErrProgramSize
		return
	}

	cpu.Reset()
	cpu.Memory.Write(0, words)

	return
}

// LoadProgram resets the CPU and loads the program image.
func (cpu *Cpu) LoadProgram(prog *Program) (err error) {
	return cpu.SetProgram(prog.Words)
}
