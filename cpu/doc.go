// Package cpu implements the DCPU-16 processor core.
//
// The CPU has eight 16-bit general-purpose registers (A, B, C, X, Y, Z, I, J),
// a program counter (PC), stack pointer (SP), overflow register (EX), interrupt
// address register (IA), and 65536 words of memory. Each call to Step fetches,
// decodes and executes one instruction, then delivers at most one queued
// interrupt.
//
// Attached hardware is reached through the Hardware interface; the devices
// themselves live outside this package.
package cpu
