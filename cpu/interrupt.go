package cpu

import (
	"log"
)

// Interrupt queues an interrupt message, from software (INT) or from
// hardware. Overflowing the queue halts the CPU.
func (cpu *Cpu) Interrupt(message uint16) (err error) {
	if cpu.Queue.Full() {
		err = ErrInterruptOverflow
		if cpu.fault == nil {
			cpu.fault = err
		}
		return
	}

	cpu.Queue.Push(message)

	return
}

// serviceInterrupt triggers at most one queued interrupt, unless queueing
// is enabled. With IA zero the message is discarded.
func (cpu *Cpu) serviceInterrupt() (triggered bool) {
	if cpu.Queueing {
		return
	}

	message, ok := cpu.Queue.Pop()
	if !ok {
		return
	}

	if cpu.Ia == 0 {
		if cpu.Verbose {
			log.Printf("cpu: interrupt 0x%04x dropped", message)
		}
		return
	}

	if cpu.Verbose {
		log.Printf("cpu: interrupt 0x%04x to 0x%04x", message, cpu.Ia)
	}

	cpu.Queueing = true
	cpu.push(cpu.Pc)
	cpu.push(cpu.Register[REG_A])
	cpu.Pc = cpu.Ia
	cpu.Register[REG_A] = message

	triggered = true
	return
}
