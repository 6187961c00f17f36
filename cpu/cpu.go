// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"errors"
	"fmt"
	"iter"
	"log"
	"maps"
)

// General register indexes.
const (
	REG_A = iota
	REG_B
	REG_C
	REG_X
	REG_Y
	REG_Z
	REG_I
	REG_J
	REG_COUNT // Number of general registers.
)

var _register_names = [REG_COUNT]string{"A", "B", "C", "X", "Y", "Z", "I", "J"}

var _cpu_defines = map[string]string{
	"MEMORY_SIZE":     fmt.Sprintf("0x%x", MEMORY_SIZE),
	"INTERRUPT_LIMIT": fmt.Sprintf("%d", INTERRUPT_LIMIT),
}

// Cpu is the simulation context for a DCPU-16.
type Cpu struct {
	Verbose bool // Set to enable verbose logging.

	Register [REG_COUNT]uint16 // General register bank.
	Pc       uint16            // Program counter.
	Sp       uint16            // Stack pointer.
	Ex       uint16            // Overflow register.
	Ia       uint16            // Interrupt address.
	Memory   Memory            // Main memory.

	Queue    Queue // Pending interrupt messages.
	Queueing bool  // If set, interrupts are held in the queue.

	Hardware Hardware // Attached device bus, may be nil.

	Ticks int // Executed instruction counter.

	fault error // Fault that halted the CPU.
}

// NewCpu creates a new CPU, with all state zeroed.
func NewCpu() (cpu *Cpu) {
	cpu = &Cpu{}

	return
}

// Defines for the cpu
func (cpu *Cpu) Defines() iter.Seq2[string, string] {
	return maps.All(_cpu_defines)
}

// Registers iterates over every register by name, for inspection.
func (cpu *Cpu) Registers() iter.Seq2[string, uint16] {
	return func(yield func(name string, value uint16) bool) {
		for n, name := range _register_names {
			if !yield(name, cpu.Register[n]) {
				return
			}
		}
		for _, reg := range []struct {
			name  string
			value uint16
		}{
			{"PC", cpu.Pc},
			{"SP", cpu.Sp},
			{"EX", cpu.Ex},
			{"IA", cpu.Ia},
		} {
			if !yield(reg.name, reg.value) {
				return
			}
		}
	}
}

// Fault returns the error that halted the CPU, or nil if it is running.
func (cpu *Cpu) Fault() error {
	return cpu.fault
}

// Reset the CPU state.
// - Clears the registers, memory and interrupt queue.
// - Leaves interrupt queueing disabled.
// - Zeros the tick counter and clears any fault.
func (cpu *Cpu) Reset() {
	if cpu.Verbose {
		log.Printf("cpu: reset")
	}

	clear(cpu.Register[:])
	cpu.Pc = 0
	cpu.Sp = 0
	cpu.Ex = 0
	cpu.Ia = 0
	cpu.Memory.Reset()
	cpu.Queue.Reset()
	cpu.Queueing = false
	cpu.Ticks = 0
	cpu.fault = nil
}

// FetchCode fetches the instruction at PC along with its following words.
// Fetching has no side effects.
func (cpu *Cpu) FetchCode() (code Code) {
	return cpu.FetchCodeAt(cpu.Pc)
}

// FetchCodeAt fetches the instruction at addr along with its following words.
func (cpu *Cpu) FetchCodeAt(addr uint16) (code Code) {
	code = Code{Word: cpu.Memory[addr]}

	for n := range code.ImmediateNeed() {
		code.Immediates = append(code.Immediates, cpu.Memory[addr+1+uint16(n)])
	}

	return
}

// Step executes a single instruction, then services the interrupt queue.
// Any error halts the CPU; later calls return the same fault until Reset.
func (cpu *Cpu) Step() (err error) {
	if cpu.fault != nil {
		return errors.Join(ErrHalted, cpu.fault)
	}

	defer func() {
		if err != nil {
			cpu.fault = err
		}
	}()

	code := cpu.FetchCode()

	err = cpu.Execute(code)
	if err != nil {
		return
	}

	cpu.serviceInterrupt()

	cpu.Ticks++

	return
}

// Execute executes a single fetched instruction located at PC.
// The instruction is validated before any state changes.
func (cpu *Cpu) Execute(code Code) (err error) {
	pc := cpu.Pc

	defer func() {
		if err != nil {
			err = &ErrInstruction{Pc: pc, Code: code, Err: err}
		}
	}()

	if cpu.Verbose {
		log.Printf("%04x: %v", pc, code)
	}

	err = code.Validate()
	if err != nil {
		return
	}

	if len(code.Immediates) != code.ImmediateNeed() {
		err = ErrOpcodeImm
		return
	}

	op, b_sel, a_sel, _ := code.Decode()

	// PC reads as the address of the following instruction.
	cpu.Pc = pc + code.Length()

	imms := code.Immediates

	// a is always resolved before b.
	var a Value
	a, imms, err = cpu.getValue(a_sel, true, imms)
	if err != nil {
		return
	}

	if op == OP_SPECIAL {
		err = cpu.doSpecial(code.Special(), a)
		return
	}

	a_val := cpu.read(a)

	var b Value
	b, imms, err = cpu.getValue(b_sel, false, imms)
	if err != nil {
		return
	}

	b_val := cpu.read(b)

	if op.Conditional() {
		if !doCond(op, b_val, a_val) {
			cpu.skip()
		}
		return
	}

	output, ex := doAlu(op, b_val, a_val, cpu.Ex)
	cpu.Ex = ex

	err = cpu.write(b, output)
	if err != nil {
		return
	}

	switch op {
	case OP_STI:
		cpu.Register[REG_I]++
		cpu.Register[REG_J]++
	case OP_STD:
		cpu.Register[REG_I]--
		cpu.Register[REG_J]--
	}

	return
}

// skip advances PC past the next instruction. Skipped conditionals
// extend the skip to the instruction after them.
func (cpu *Cpu) skip() {
	// Bounded, in case all of memory is conditionals.
	for range MEMORY_SIZE {
		code := cpu.FetchCode()
		cpu.Pc += code.Length()
		if !code.Conditional() {
			return
		}
	}
}

// push pushes a word onto the stack.
func (cpu *Cpu) push(value uint16) {
	cpu.Sp--
	cpu.Memory[cpu.Sp] = value
}

// pop pops a word from the stack.
func (cpu *Cpu) pop() (value uint16) {
	value = cpu.Memory[cpu.Sp]
	cpu.Sp++
	return
}

// doSpecial executes a special opcode on its resolved a operand.
func (cpu *Cpu) doSpecial(op CodeSpecial, a Value) (err error) {
	switch op {
	case SPECIAL_JSR:
		target := cpu.read(a)
		cpu.push(cpu.Pc)
		cpu.Pc = target
	case SPECIAL_INT:
		err = cpu.Interrupt(cpu.read(a))
	case SPECIAL_IAG:
		err = cpu.write(a, cpu.Ia)
	case SPECIAL_IAS:
		cpu.Ia = cpu.read(a)
	case SPECIAL_RFI:
		cpu.Queueing = false
		cpu.Register[REG_A] = cpu.pop()
		cpu.Pc = cpu.pop()
	case SPECIAL_IAQ:
		cpu.Queueing = cpu.read(a) != 0
	case SPECIAL_HWN:
		var count uint16
		if cpu.Hardware != nil {
			count = cpu.Hardware.Count()
		}
		err = cpu.write(a, count)
	case SPECIAL_HWQ:
		cpu.hardwareQuery(cpu.read(a))
	case SPECIAL_HWI:
		err = cpu.hardwareInterrupt(cpu.read(a))
	default:
		err = ErrInvalidOpcode
	}

	return
}

// hardwareQuery sets A and B to the device id, C to the version, and X and Y
// to the manufacturer of the device at index. Missing devices read as zero.
func (cpu *Cpu) hardwareQuery(index uint16) {
	var info DeviceInfo
	if cpu.Hardware != nil {
		info, _ = cpu.Hardware.Query(index)
	}

	cpu.Register[REG_A] = uint16(info.Id)
	cpu.Register[REG_B] = uint16(info.Id >> 16)
	cpu.Register[REG_C] = info.Version
	cpu.Register[REG_X] = uint16(info.Manufacturer)
	cpu.Register[REG_Y] = uint16(info.Manufacturer >> 16)
}

// hardwareInterrupt sends an interrupt to the device at index.
func (cpu *Cpu) hardwareInterrupt(index uint16) (err error) {
	if cpu.Hardware == nil || index >= cpu.Hardware.Count() {
		return
	}

	err = cpu.Hardware.Interrupt(index, cpu)
	if err != nil {
		err = &ErrHardware{Index: index, Err: err}
	}

	return
}
